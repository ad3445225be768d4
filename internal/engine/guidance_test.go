package engine

import (
	"strings"
	"testing"

	"github.com/Dan9191/finhealth-service/internal/models"
	"github.com/Dan9191/finhealth-service/internal/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuide(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name            string
		snapshot        models.FinancialSnapshot
		strengths       []string
		warnings        []string
		recommendations []string
	}{
		{
			name:     "healthy saver without debt",
			snapshot: models.FinancialSnapshot{Income: 100000, Rent: 25000, Food: 10000, Travel: 5000, Shopping: 5000, Savings: 30000},
			strengths: []string{
				"Excellent savings habit! You're saving 25%+ of your income.",
				"No EMI burden - excellent!",
				"Your expenses are comfortably within your means.",
				"No financial red flags this month. Excellent management!",
			},
			warnings:        []string{},
			recommendations: []string{},
		},
		{
			name:      "overspending borrower",
			snapshot:  models.FinancialSnapshot{Income: 50000, Rent: 20000, Food: 8000, Shopping: 10000, EMI: 22500, Savings: 1000},
			strengths: []string{},
			warnings: []string{
				"Very low savings rate. Try to save at least 10% of income.",
				"You're spending over 80% of your income. Review all expenses and cut non-essential spending.",
				"EMI is consuming over 40% of income. Avoid new loans until existing debt is cleared.",
			},
			recommendations: []string{
				"URGENT: Create a strict budget and track every expense.",
				"Set up automatic savings transfers on payday.",
				"Rent is high (over 35% of income). Consider finding cheaper accommodation.",
				"Shopping expenses are high. Try to limit discretionary spending.",
			},
		},
		{
			name:      "moderate spender with consolidation need",
			snapshot:  models.FinancialSnapshot{Income: 100000, Rent: 20000, Food: 10000, EMI: 35000, Savings: 16000},
			strengths: []string{
				"Good savings discipline. Keep it up!",
				"No financial red flags this month. Excellent management!",
			},
			warnings: []string{},
			recommendations: []string{
				"Try to reduce total expenses to below 60% of income.",
				"EMI burden is high. Consider debt consolidation.",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := e.Evaluate(tt.snapshot, "")
			require.NoError(t, err)

			assert.Equal(t, tt.strengths, report.Guidance.Strengths)
			assert.Equal(t, tt.warnings, report.Guidance.Warnings)
			assert.Equal(t, tt.recommendations, report.Guidance.Recommendations)
		})
	}
}

func TestGuide_NeverRepeatsAnomalyMessages(t *testing.T) {
	e := newTestEngine(t)
	snapshots := []models.FinancialSnapshot{
		typical(),
		{Income: 50000, Rent: 30000, Food: 15000, Shopping: 10000},
		{Income: 100000, Rent: 15000, Food: 10000, Travel: 25000, Shopping: 2000, EMI: 45000, Savings: 3000},
		{Income: 20000, Shopping: 9000, EMI: 12000},
	}

	for _, s := range snapshots {
		report, err := e.Evaluate(s, "")
		require.NoError(t, err)

		var texts []string
		texts = append(texts, report.Guidance.Strengths...)
		texts = append(texts, report.Guidance.Warnings...)
		texts = append(texts, report.Guidance.Recommendations...)
		for _, a := range report.Anomalies {
			assert.NotContains(t, texts, a.Message)
		}
	}
}

// Two rules sharing a condition would put one condition into two lists,
// so every pair of rules must disagree somewhere on the grid.
func TestGuide_EachConditionFillsOneList(t *testing.T) {
	rules := policy.Default().Guidance
	medium := []models.Anomaly{{Severity: models.SeverityMedium, Type: AnomalyHighExpense}}
	critical := []models.Anomaly{{Severity: models.SeverityCritical, Type: AnomalyOverspending}}

	var inputs []guidanceInput
	for _, savings := range []float64{0, 0.03, 0.07, 0.12, 0.18, 0.3} {
		for _, expense := range []float64{0.4, 0.55, 0.65, 0.75, 0.85, 1.1} {
			for _, emi := range []float64{0, 0.2, 0.35, 0.45} {
				for _, share := range []float64{10, 40} {
					for _, anomalies := range [][]models.Anomaly{nil, medium, critical} {
						inputs = append(inputs, guidanceInput{
							rules: rules,
							pattern: models.SpendingPattern{
								SavingsRatio: savings,
								ExpenseRatio: expense,
								EMIRatio:     emi,
								Breakdown:    models.Breakdown{Rent: share, Shopping: 50 - share},
							},
							anomalies: anomalies,
						})
					}
				}
			}
		}
	}

	for i := range guidanceRules {
		for j := i + 1; j < len(guidanceRules); j++ {
			same := true
			for _, in := range inputs {
				if guidanceRules[i].applies(in) != guidanceRules[j].applies(in) {
					same = false
					break
				}
			}
			assert.False(t, same, "rules %q and %q fire on the same condition",
				guidanceRules[i].text(rules), guidanceRules[j].text(rules))
		}
	}
}

func TestGuide_OverspendingWarnsOnce(t *testing.T) {
	e := newTestEngine(t)
	report, err := e.Evaluate(models.FinancialSnapshot{Income: 50000, Rent: 20000, Food: 8000, Shopping: 10000, EMI: 22500, Savings: 1000}, "")
	require.NoError(t, err)

	var mentions int
	for _, list := range [][]string{report.Guidance.Strengths, report.Guidance.Warnings, report.Guidance.Recommendations} {
		for _, text := range list {
			if strings.Contains(text, "non-essential") {
				mentions++
			}
		}
	}
	assert.Equal(t, 1, mentions)
	assert.Contains(t, report.Guidance.Warnings, "You're spending over 80% of your income. Review all expenses and cut non-essential spending.")
}
