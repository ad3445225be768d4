package models

// FinancialSnapshot is one month of income and category amounts
type FinancialSnapshot struct {
	Income   float64 `json:"income"`
	Rent     float64 `json:"rent"`
	Food     float64 `json:"food"`
	Travel   float64 `json:"travel"`
	Shopping float64 `json:"shopping"`
	EMI      float64 `json:"emi"`
	Savings  float64 `json:"savings"`
}

// TotalExpense is the sum of the five spending categories (savings excluded)
func (s FinancialSnapshot) TotalExpense() float64 {
	return s.Rent + s.Food + s.Travel + s.Shopping + s.EMI
}

// TotalOutflow is the sum of all six categories
func (s FinancialSnapshot) TotalOutflow() float64 {
	return s.TotalExpense() + s.Savings
}

// Breakdown holds each category as a percentage of income
type Breakdown struct {
	Rent     float64 `json:"rent"`
	Food     float64 `json:"food"`
	Travel   float64 `json:"travel"`
	Shopping float64 `json:"shopping"`
	EMI      float64 `json:"emi"`
	Savings  float64 `json:"savings"`
}

// SpendingPattern represents ratios derived from a snapshot
type SpendingPattern struct {
	TotalExpense           float64   `json:"total_expense"`
	ExpenseRatio           float64   `json:"expense_ratio"`
	SavingsRatio           float64   `json:"savings_ratio"`
	EMIRatio               float64   `json:"emi_ratio"`
	Breakdown              Breakdown `json:"breakdown"`
	HighestExpenseCategory string    `json:"highest_expense_category"`
	HighestExpenseAmount   float64   `json:"highest_expense_amount"`
}
