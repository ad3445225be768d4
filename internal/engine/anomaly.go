package engine

import (
	"fmt"

	"github.com/Dan9191/finhealth-service/internal/models"
	"github.com/Dan9191/finhealth-service/internal/policy"
)

// Anomaly types
const (
	AnomalyOverspending      = "overspending"
	AnomalyOvercommitted     = "overcommitted"
	AnomalyDebtBurden        = "debt_burden"
	AnomalyLowSavings        = "low_savings"
	AnomalyHighExpense       = "high_expense"
	AnomalyExcessiveShopping = "excessive_shopping"
	AnomalyExcessiveTravel   = "excessive_travel"
	AnomalySpendingPriority  = "spending_priority"
)

// anomalyCheck inspects one condition and emits at most one anomaly
type anomalyCheck func(r policy.AnomalyRules, s models.FinancialSnapshot, p models.SpendingPattern) (models.Anomaly, bool)

// anomalyChecks run in this order; the report keeps it
var anomalyChecks = []anomalyCheck{
	checkOverspending,
	checkOvercommitted,
	checkDebtBurden,
	checkLowSavings,
	checkHighExpense,
	checkExcessiveShopping,
	checkExcessiveTravel,
	checkSpendingPriority,
}

// DetectAnomalies runs every rule check against the snapshot's raw ratios
func (e *Engine) DetectAnomalies(s models.FinancialSnapshot, p models.SpendingPattern) []models.Anomaly {
	anomalies := []models.Anomaly{}
	for _, check := range anomalyChecks {
		if a, ok := check(e.policy.Anomalies, s, p); ok {
			anomalies = append(anomalies, a)
		}
	}
	return anomalies
}

func checkOverspending(r policy.AnomalyRules, _ models.FinancialSnapshot, p models.SpendingPattern) (models.Anomaly, bool) {
	if p.ExpenseRatio <= r.OverspendingRatio {
		return models.Anomaly{}, false
	}
	return models.Anomaly{
		Severity: models.SeverityCritical,
		Type:     AnomalyOverspending,
		Message:  fmt.Sprintf("You are spending MORE than you earn: expenses are %s of income. Immediate action needed.", pct(p.ExpenseRatio)),
	}, true
}

func checkOvercommitted(r policy.AnomalyRules, s models.FinancialSnapshot, _ models.SpendingPattern) (models.Anomaly, bool) {
	ratio := s.TotalOutflow() / s.Income
	if ratio <= r.OvercommittedRatio {
		return models.Anomaly{}, false
	}
	return models.Anomaly{
		Severity: models.SeverityMedium,
		Type:     AnomalyOvercommitted,
		Message:  fmt.Sprintf("Expenses plus planned savings add up to %s of income. The savings plan is not fully funded.", pct(ratio)),
	}, true
}

func checkDebtBurden(r policy.AnomalyRules, _ models.FinancialSnapshot, p models.SpendingPattern) (models.Anomaly, bool) {
	sev, ok := above(r.DebtBurden, p.EMIRatio)
	if !ok {
		return models.Anomaly{}, false
	}
	msg := fmt.Sprintf("EMI takes %s of income. Debt repayments are crowding out everything else.", pct(p.EMIRatio))
	if sev == models.SeverityCritical {
		msg = fmt.Sprintf("EMI takes %s of income. Risk of debt trap!", pct(p.EMIRatio))
	}
	return models.Anomaly{Severity: sev, Type: AnomalyDebtBurden, Message: msg}, true
}

func checkLowSavings(r policy.AnomalyRules, s models.FinancialSnapshot, p models.SpendingPattern) (models.Anomaly, bool) {
	sev, ok := below(r.LowSavings, p.SavingsRatio)
	if !ok {
		return models.Anomaly{}, false
	}
	msg := fmt.Sprintf("Only %s of income goes to savings. Your financial cushion is thin.", pct(p.SavingsRatio))
	if s.Savings == 0 {
		msg = "Zero savings detected. You have no financial cushion for emergencies."
	}
	return models.Anomaly{Severity: sev, Type: AnomalyLowSavings, Message: msg}, true
}

func checkHighExpense(r policy.AnomalyRules, _ models.FinancialSnapshot, p models.SpendingPattern) (models.Anomaly, bool) {
	sev, ok := above(r.HighExpense, p.ExpenseRatio)
	if !ok {
		return models.Anomaly{}, false
	}
	return models.Anomaly{
		Severity: sev,
		Type:     AnomalyHighExpense,
		Message:  fmt.Sprintf("Expenses consume %s of income, leaving little room for savings.", pct(p.ExpenseRatio)),
	}, true
}

func checkExcessiveShopping(r policy.AnomalyRules, _ models.FinancialSnapshot, p models.SpendingPattern) (models.Anomaly, bool) {
	share := p.Breakdown.Shopping / 100
	sev, ok := above(r.ExcessiveShopping, share)
	if !ok {
		return models.Anomaly{}, false
	}
	return models.Anomaly{
		Severity: sev,
		Type:     AnomalyExcessiveShopping,
		Message:  fmt.Sprintf("Shopping takes an outsized %s of income.", pct(share)),
	}, true
}

func checkExcessiveTravel(r policy.AnomalyRules, _ models.FinancialSnapshot, p models.SpendingPattern) (models.Anomaly, bool) {
	share := p.Breakdown.Travel / 100
	sev, ok := above(r.ExcessiveTravel, share)
	if !ok {
		return models.Anomaly{}, false
	}
	return models.Anomaly{
		Severity: sev,
		Type:     AnomalyExcessiveTravel,
		Message:  fmt.Sprintf("Travel takes an outsized %s of income.", pct(share)),
	}, true
}

func checkSpendingPriority(r policy.AnomalyRules, s models.FinancialSnapshot, _ models.SpendingPattern) (models.Anomaly, bool) {
	if s.Shopping <= s.Savings || s.Shopping <= r.SpendingPriorityMin {
		return models.Anomaly{}, false
	}
	return models.Anomaly{
		Severity: models.SeverityLow,
		Type:     AnomalySpendingPriority,
		Message:  "Shopping expenses exceed savings. Consider rebalancing priorities.",
	}, true
}

// above returns the severity of the first tier whose threshold the ratio exceeds
func above(tiers []policy.Tier, ratio float64) (models.Severity, bool) {
	for _, t := range tiers {
		if ratio > t.Threshold {
			return t.Severity, true
		}
	}
	return "", false
}

// below returns the severity of the first tier whose threshold the ratio falls under
func below(tiers []policy.Tier, ratio float64) (models.Severity, bool) {
	for _, t := range tiers {
		if ratio < t.Threshold {
			return t.Severity, true
		}
	}
	return "", false
}

func pct(ratio float64) string {
	return fmt.Sprintf("%.0f%%", ratio*100)
}
