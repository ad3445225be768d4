package engine

import (
	"math"

	"github.com/Dan9191/finhealth-service/internal/models"
)

// CalculateRatios derives the spending pattern of a snapshot.
// Ratios are never clamped; values above 1.0 mean the user spends more than they earn.
func CalculateRatios(s models.FinancialSnapshot) (models.SpendingPattern, error) {
	if err := validateSnapshot(s); err != nil {
		return models.SpendingPattern{}, err
	}

	total := s.TotalExpense()
	pattern := models.SpendingPattern{
		TotalExpense: total,
		ExpenseRatio: total / s.Income,
		SavingsRatio: s.Savings / s.Income,
		EMIRatio:     s.EMI / s.Income,
		Breakdown: models.Breakdown{
			Rent:     percentOf(s.Rent, s.Income),
			Food:     percentOf(s.Food, s.Income),
			Travel:   percentOf(s.Travel, s.Income),
			Shopping: percentOf(s.Shopping, s.Income),
			EMI:      percentOf(s.EMI, s.Income),
			Savings:  percentOf(s.Savings, s.Income),
		},
	}
	if err := checkDerived(s, pattern); err != nil {
		return models.SpendingPattern{}, err
	}

	expenses := []struct {
		name   string
		amount float64
	}{
		{"Rent", s.Rent},
		{"Food", s.Food},
		{"Travel", s.Travel},
		{"Shopping", s.Shopping},
		{"EMI", s.EMI},
	}
	pattern.HighestExpenseCategory = expenses[0].name
	pattern.HighestExpenseAmount = expenses[0].amount
	for _, e := range expenses[1:] {
		if e.amount > pattern.HighestExpenseAmount {
			pattern.HighestExpenseCategory = e.name
			pattern.HighestExpenseAmount = e.amount
		}
	}

	return pattern, nil
}

// percentOf multiplies before dividing so whole-percent shares come out exact
func percentOf(amount, income float64) float64 {
	return amount * 100 / income
}

func validateSnapshot(s models.FinancialSnapshot) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"income", s.Income},
		{"rent", s.Rent},
		{"food", s.Food},
		{"travel", s.Travel},
		{"shopping", s.Shopping},
		{"emi", s.EMI},
		{"savings", s.Savings},
	}
	for _, f := range fields {
		if !isFinite(f.value) {
			return &InvalidInputError{Field: f.name, Reason: "must be a finite number"}
		}
		if f.value < 0 {
			return &InvalidInputError{Field: f.name, Reason: "must not be negative"}
		}
	}
	if s.Income == 0 {
		return &InvalidInputError{Field: "income", Reason: "must be greater than zero"}
	}
	return nil
}

// checkDerived rejects finite inputs whose sums or shares overflow
func checkDerived(s models.FinancialSnapshot, p models.SpendingPattern) error {
	derived := []struct {
		field string
		value float64
	}{
		{"total_expense", p.TotalExpense},
		{"total_outflow", s.TotalOutflow()},
		{"total_expense", p.ExpenseRatio},
		{"total_outflow", s.TotalOutflow() / s.Income},
		{"rent", p.Breakdown.Rent},
		{"food", p.Breakdown.Food},
		{"travel", p.Breakdown.Travel},
		{"shopping", p.Breakdown.Shopping},
		{"emi", p.Breakdown.EMI},
		{"savings", p.Breakdown.Savings},
	}
	for _, d := range derived {
		if !isFinite(d.value) {
			return &InvalidInputError{Field: d.field, Reason: "amounts are too large relative to income"}
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
