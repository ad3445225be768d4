package engine

import (
	"math"

	"github.com/Dan9191/finhealth-service/internal/models"
)

type scoreParts struct {
	savings float64
	expense float64
	debt    float64
	penalty float64
}

func (e *Engine) scoreParts(p models.SpendingPattern) scoreParts {
	m := e.policy.Score
	parts := scoreParts{
		savings: m.Savings.At(p.SavingsRatio),
		expense: m.Expense.At(p.ExpenseRatio),
		debt:    m.Debt.At(p.EMIRatio),
	}
	if p.ExpenseRatio > m.OverspendRatio {
		parts.penalty = m.OverspendPenalty
	}
	return parts
}

// Score maps a spending pattern to a 0-100 score rounded to two decimals
func (e *Engine) Score(p models.SpendingPattern) float64 {
	parts := e.scoreParts(p)
	w := e.policy.Score.Weights
	raw := parts.savings*w.Savings + parts.expense*w.Expense + parts.debt*w.Debt - parts.penalty
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		violate("score", "non-finite score %v for ratios %+v", raw, p)
	}
	return round2(math.Max(0, math.Min(100, raw)))
}

// Breakdown explains the score of a snapshot factor by factor
func (e *Engine) Breakdown(s models.FinancialSnapshot) (*models.ScoreBreakdown, error) {
	pattern, err := CalculateRatios(s)
	if err != nil {
		return nil, err
	}
	parts := e.scoreParts(pattern)
	w := e.policy.Score.Weights

	factor := func(name string, score, weight float64) models.ScoreFactor {
		return models.ScoreFactor{
			Name:         name,
			Score:        round2(score),
			Weight:       weight,
			Contribution: round2(score * weight),
		}
	}
	return &models.ScoreBreakdown{
		OverallScore: e.Score(pattern),
		Factors: []models.ScoreFactor{
			factor("Savings", parts.savings, w.Savings),
			factor("Expense Control", parts.expense, w.Expense),
			factor("Debt Management", parts.debt, w.Debt),
		},
		OverspendPenalty: parts.penalty,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
