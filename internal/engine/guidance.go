package engine

import (
	"fmt"

	"github.com/Dan9191/finhealth-service/internal/models"
	"github.com/Dan9191/finhealth-service/internal/policy"
)

type guidanceList int

const (
	strength guidanceList = iota
	warning
	recommendation
)

type guidanceInput struct {
	rules     policy.GuidanceRules
	pattern   models.SpendingPattern
	anomalies []models.Anomaly
}

// guidanceRule appends its text to exactly one list when its condition holds
type guidanceRule struct {
	list    guidanceList
	applies func(in guidanceInput) bool
	text    func(g policy.GuidanceRules) string
}

func fixed(s string) func(policy.GuidanceRules) string {
	return func(policy.GuidanceRules) string { return s }
}

var guidanceRules = []guidanceRule{
	{
		list:    recommendation,
		applies: func(in guidanceInput) bool { return hasSeverity(in.anomalies, models.SeverityCritical) },
		text:    fixed("URGENT: Create a strict budget and track every expense."),
	},
	{
		list:    strength,
		applies: func(in guidanceInput) bool { return in.pattern.SavingsRatio >= in.rules.ExcellentSavings },
		text: func(g policy.GuidanceRules) string {
			return fmt.Sprintf("Excellent savings habit! You're saving %s+ of your income.", pct(g.ExcellentSavings))
		},
	},
	{
		list: strength,
		applies: func(in guidanceInput) bool {
			r := in.pattern.SavingsRatio
			return r >= in.rules.GoodSavings && r < in.rules.ExcellentSavings
		},
		text: fixed("Good savings discipline. Keep it up!"),
	},
	{
		list:    strength,
		applies: func(in guidanceInput) bool { return in.pattern.EMIRatio == 0 },
		text:    fixed("No EMI burden - excellent!"),
	},
	{
		list:    strength,
		applies: func(in guidanceInput) bool { return in.pattern.ExpenseRatio <= in.rules.LeanExpense },
		text:    fixed("Your expenses are comfortably within your means."),
	},
	{
		list:    strength,
		applies: func(in guidanceInput) bool { return len(in.anomalies) == 0 },
		text:    fixed("No financial red flags this month. Excellent management!"),
	},
	{
		list:    warning,
		applies: func(in guidanceInput) bool { return in.pattern.SavingsRatio < in.rules.MinSavings },
		text: func(g policy.GuidanceRules) string {
			return fmt.Sprintf("Very low savings rate. Try to save at least %s of income.", pct(g.AutoSaveBelow))
		},
	},
	{
		list:    warning,
		applies: func(in guidanceInput) bool { return in.pattern.ExpenseRatio > in.rules.MaxExpense },
		text: func(g policy.GuidanceRules) string {
			return fmt.Sprintf("You're spending over %s of your income. Review all expenses and cut non-essential spending.", pct(g.MaxExpense))
		},
	},
	{
		list:    warning,
		applies: func(in guidanceInput) bool { return in.pattern.EMIRatio > in.rules.MaxEMI },
		text: func(g policy.GuidanceRules) string {
			return fmt.Sprintf("EMI is consuming over %s of income. Avoid new loans until existing debt is cleared.", pct(g.MaxEMI))
		},
	},
	{
		list:    recommendation,
		applies: func(in guidanceInput) bool { return in.pattern.SavingsRatio < in.rules.AutoSaveBelow },
		text:    fixed("Set up automatic savings transfers on payday."),
	},
	{
		list: recommendation,
		applies: func(in guidanceInput) bool {
			r := in.pattern.ExpenseRatio
			return r > in.rules.TargetExpense && r <= in.rules.MaxExpense
		},
		text: func(g policy.GuidanceRules) string {
			return fmt.Sprintf("Try to reduce total expenses to below %s of income.", pct(g.TargetExpense))
		},
	},
	{
		list: recommendation,
		applies: func(in guidanceInput) bool {
			r := in.pattern.EMIRatio
			return r > in.rules.ConsolidateEMI && r <= in.rules.MaxEMI
		},
		text: fixed("EMI burden is high. Consider debt consolidation."),
	},
	{
		list:    recommendation,
		applies: func(in guidanceInput) bool { return in.pattern.Breakdown.Rent/100 > in.rules.RentShare },
		text: func(g policy.GuidanceRules) string {
			return fmt.Sprintf("Rent is high (over %s of income). Consider finding cheaper accommodation.", pct(g.RentShare))
		},
	},
	{
		list:    recommendation,
		applies: func(in guidanceInput) bool { return in.pattern.Breakdown.Shopping/100 > in.rules.ShoppingShare },
		text:    fixed("Shopping expenses are high. Try to limit discretionary spending."),
	},
}

// Guide turns ratios and anomalies into advisory text
func (e *Engine) Guide(p models.SpendingPattern, anomalies []models.Anomaly) models.Guidance {
	g := models.Guidance{
		Strengths:       []string{},
		Warnings:        []string{},
		Recommendations: []string{},
	}
	in := guidanceInput{rules: e.policy.Guidance, pattern: p, anomalies: anomalies}
	for _, rule := range guidanceRules {
		if !rule.applies(in) {
			continue
		}
		text := rule.text(in.rules)
		switch rule.list {
		case strength:
			g.Strengths = append(g.Strengths, text)
		case warning:
			g.Warnings = append(g.Warnings, text)
		case recommendation:
			g.Recommendations = append(g.Recommendations, text)
		default:
			violate("guidance", "unknown guidance list %d", rule.list)
		}
	}
	return g
}

func hasSeverity(anomalies []models.Anomaly, sev models.Severity) bool {
	for _, a := range anomalies {
		if a.Severity == sev {
			return true
		}
	}
	return false
}
