package policy

import "github.com/Dan9191/finhealth-service/internal/models"

// Default returns the built-in policy tables
func Default() Policy {
	return Policy{
		Score: ScoreModel{
			Weights: Weights{Savings: 0.40, Expense: 0.30, Debt: 0.30},
			Savings: Curve{Direction: Increasing, Points: []Point{
				{X: 0, Y: 0}, {X: 0.10, Y: 50}, {X: 0.20, Y: 80}, {X: 0.30, Y: 100},
			}},
			Expense: Curve{Direction: Decreasing, Points: []Point{
				{X: 0.70, Y: 100}, {X: 0.90, Y: 40}, {X: 1.00, Y: 0},
			}},
			Debt: Curve{Direction: Decreasing, Points: []Point{
				{X: 0.30, Y: 100}, {X: 0.50, Y: 30}, {X: 1.00, Y: 0},
			}},
			OverspendRatio:   1.0,
			OverspendPenalty: 15,
		},
		Bands: []Band{
			{Min: 80, Category: models.CategoryExcellent, Color: "#10b981", Emoji: "🌟",
				Description: "Outstanding financial health! Keep up the great work."},
			{Min: 65, Category: models.CategoryVeryGood, Color: "#3b82f6", Emoji: "✨",
				Description: "Strong financial position with room for minor improvements."},
			{Min: 50, Category: models.CategoryGood, Color: "#f59e0b", Emoji: "👍",
				Description: "Decent financial health, but consider optimizing your spending."},
			{Min: 35, Category: models.CategoryAverage, Color: "#f97316", Emoji: "⚠️",
				Description: "Your finances need attention. Review your expenses carefully."},
			{Min: 0, Category: models.CategoryPoor, Color: "#ef4444", Emoji: "🚨",
				Description: "Critical financial situation. Immediate action required!"},
		},
		Anomalies: AnomalyRules{
			OverspendingRatio:  1.0,
			OvercommittedRatio: 1.0,
			DebtBurden: []Tier{
				{Threshold: 0.50, Severity: models.SeverityCritical},
				{Threshold: 0.40, Severity: models.SeverityHigh},
			},
			LowSavings: []Tier{
				{Threshold: 0.05, Severity: models.SeverityHigh},
				{Threshold: 0.10, Severity: models.SeverityMedium},
			},
			HighExpense: []Tier{
				{Threshold: 0.90, Severity: models.SeverityHigh},
				{Threshold: 0.80, Severity: models.SeverityMedium},
			},
			ExcessiveShopping: []Tier{
				{Threshold: 0.25, Severity: models.SeverityMedium},
				{Threshold: 0.15, Severity: models.SeverityLow},
			},
			ExcessiveTravel: []Tier{
				{Threshold: 0.20, Severity: models.SeverityMedium},
				{Threshold: 0.10, Severity: models.SeverityLow},
			},
			SpendingPriorityMin: 5000,
		},
		Guidance: GuidanceRules{
			ExcellentSavings: 0.25,
			GoodSavings:      0.15,
			MinSavings:       0.05,
			AutoSaveBelow:    0.10,
			LeanExpense:      0.50,
			TargetExpense:    0.60,
			MaxExpense:       0.80,
			ConsolidateEMI:   0.30,
			MaxEMI:           0.40,
			RentShare:        0.35,
			ShoppingShare:    0.15,
		},
		Investment: InvestmentRules{
			MinSavingsRatio:      0.10,
			GrowthSavingsRatio:   0.20,
			GrowthMaxEMIRatio:    0.30,
			BalancedSavingsRatio: 0.15,
			IneligibleAdvice:     "Focus on building an emergency fund of 3-6 months of expenses before investing.",
			Profiles: map[models.RiskTolerance]Profile{
				models.ToleranceConservative: {
					Advice: "Start with low-risk instruments and keep growing your emergency fund.",
					Allocations: []Allocation{
						{Type: "Fixed Deposits", Risk: models.RiskLow, Fraction: 0.50, Reason: "Safe option for your emergency fund."},
						{Type: "Hybrid Mutual Funds", Risk: models.RiskMedium, Fraction: 0.30, Reason: "Balanced exposure for a moderate risk appetite."},
						{Type: "Equity Mutual Funds", Risk: models.RiskHigh, Fraction: 0.10, Reason: "A small growth allocation to start building the habit."},
					},
				},
				models.ToleranceBalanced: {
					Advice: "Diversify investments across equity and debt instruments.",
					Allocations: []Allocation{
						{Type: "Public Provident Fund (PPF)", Risk: models.RiskLow, Fraction: 0.35, Reason: "Tax-saving with guaranteed returns."},
						{Type: "Hybrid Mutual Funds", Risk: models.RiskMedium, Fraction: 0.35, Reason: "Balanced approach for moderate risk appetite."},
						{Type: "Equity Mutual Funds", Risk: models.RiskHigh, Fraction: 0.30, Reason: "Good financial health allows for growth-oriented investments."},
					},
				},
				models.ToleranceGrowth: {
					Advice: "Your finances are strong. Consider growth-oriented strategies for wealth building.",
					Allocations: []Allocation{
						{Type: "Public Provident Fund (PPF)", Risk: models.RiskLow, Fraction: 0.20, Reason: "Tax-saving with guaranteed returns."},
						{Type: "Index Funds", Risk: models.RiskMedium, Fraction: 0.30, Reason: "Low-cost market exposure for long-term compounding."},
						{Type: "Equity Mutual Funds", Risk: models.RiskHigh, Fraction: 0.40, Reason: "Strong savings rate supports growth-oriented investments."},
						{Type: "Direct Equity", Risk: models.RiskHigh, Fraction: 0.10, Reason: "A small satellite allocation for higher-risk opportunities."},
					},
				},
			},
		},
	}
}
