package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/Dan9191/finhealth-service/internal/models"
)

// Advise decides investment eligibility and splits the monthly savings across
// the allocation profile for the given tolerance. An empty tolerance is derived
// from the ratios. A positive keyRate is quoted in the reason of low-risk suggestions.
func (e *Engine) Advise(s models.FinancialSnapshot, p models.SpendingPattern, anomalies []models.Anomaly, tolerance models.RiskTolerance, keyRate float64) models.InvestmentAdvice {
	rules := e.policy.Investment
	advice := models.InvestmentAdvice{Suggestions: []models.InvestmentSuggestion{}}

	for _, a := range anomalies {
		if a.Severity == models.SeverityCritical {
			advice.Message = fmt.Sprintf("Investing is not advisable until the %s alert is resolved.", strings.ReplaceAll(a.Type, "_", " "))
			advice.Advice = rules.IneligibleAdvice
			return advice
		}
	}
	if p.SavingsRatio < rules.MinSavingsRatio {
		advice.Message = fmt.Sprintf("Your savings rate of %.1f%% is below the %s needed before investing.", p.SavingsRatio*100, pct(rules.MinSavingsRatio))
		advice.Advice = rules.IneligibleAdvice
		return advice
	}

	if tolerance == "" {
		tolerance = e.deriveTolerance(p)
	}
	profile, ok := rules.Profiles[tolerance]
	if !ok {
		violate("investment", "no allocation profile for tolerance %q", tolerance)
	}

	var invested float64
	for _, a := range profile.Allocations {
		amount := floorCents(s.Savings * a.Fraction)
		invested += amount
		reason := a.Reason
		if keyRate > 0 && a.Risk == models.RiskLow {
			reason = fmt.Sprintf("%s The central bank key rate is %.2f%%, a benchmark for its return.", reason, keyRate)
		}
		advice.Suggestions = append(advice.Suggestions, models.InvestmentSuggestion{
			Type:              a.Type,
			Risk:              a.Risk,
			RecommendedAmount: amount,
			Reason:            reason,
			Suitable:          true,
		})
	}
	advice.Eligible = true
	advice.RiskTolerance = tolerance
	advice.Message = fmt.Sprintf("You can invest %.2f of your %.2f monthly savings.", invested, s.Savings)
	advice.Advice = profile.Advice
	if keyRate > 0 {
		advice.BenchmarkRate = keyRate
	}
	return advice
}

func (e *Engine) deriveTolerance(p models.SpendingPattern) models.RiskTolerance {
	rules := e.policy.Investment
	switch {
	case p.SavingsRatio >= rules.GrowthSavingsRatio && p.EMIRatio < rules.GrowthMaxEMIRatio:
		return models.ToleranceGrowth
	case p.SavingsRatio >= rules.BalancedSavingsRatio:
		return models.ToleranceBalanced
	default:
		return models.ToleranceConservative
	}
}

// floorCents rounds down so allocations never add up to more than the savings.
// The nudge keeps values like 3149.9999999999995 from losing a cent.
func floorCents(v float64) float64 {
	return math.Floor(v*100+1e-6) / 100
}
