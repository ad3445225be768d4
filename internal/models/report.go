package models

// Category is a financial health band label
type Category string

const (
	CategoryExcellent Category = "Excellent"
	CategoryVeryGood  Category = "Very Good"
	CategoryGood      Category = "Good"
	CategoryAverage   Category = "Average"
	CategoryPoor      Category = "Poor"
)

// Categories lists every category from best to worst
var Categories = []Category{CategoryExcellent, CategoryVeryGood, CategoryGood, CategoryAverage, CategoryPoor}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryExcellent, CategoryVeryGood, CategoryGood, CategoryAverage, CategoryPoor:
		return true
	}
	return false
}

// Classification represents the band a score falls into
type Classification struct {
	Category    Category `json:"category"`
	Color       string   `json:"color"`
	Emoji       string   `json:"emoji"`
	Description string   `json:"description"`
}

// Severity of an anomaly
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Valid reports whether s is one of the known severities
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// Rank orders severities, critical being the highest
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// Anomaly is a severity-tagged alert
type Anomaly struct {
	Severity Severity `json:"severity"`
	Type     string   `json:"type"`
	Message  string   `json:"message"`
}

// Guidance holds advisory text; empty lists are not shown
type Guidance struct {
	Strengths       []string `json:"strengths"`
	Warnings        []string `json:"warnings"`
	Recommendations []string `json:"recommendations"`
}

// RiskLevel of an investment suggestion
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Valid reports whether r is one of the known risk levels
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// RiskTolerance selects an allocation profile
type RiskTolerance string

const (
	ToleranceConservative RiskTolerance = "conservative"
	ToleranceBalanced     RiskTolerance = "balanced"
	ToleranceGrowth       RiskTolerance = "growth"
)

// Valid reports whether t is one of the known tolerances
func (t RiskTolerance) Valid() bool {
	switch t {
	case ToleranceConservative, ToleranceBalanced, ToleranceGrowth:
		return true
	}
	return false
}

// InvestmentSuggestion is one allocation of the monthly surplus
type InvestmentSuggestion struct {
	Type              string    `json:"type"`
	Risk              RiskLevel `json:"risk"`
	RecommendedAmount float64   `json:"recommended_amount"`
	Reason            string    `json:"reason"`
	Suitable          bool      `json:"suitable"`
}

// InvestmentAdvice represents investment eligibility and suggestions
type InvestmentAdvice struct {
	Eligible      bool                   `json:"eligible_for_investment"`
	Message       string                 `json:"message"`
	RiskTolerance RiskTolerance          `json:"risk_tolerance,omitempty"`
	Suggestions   []InvestmentSuggestion `json:"suggestions"`
	Advice        string                 `json:"overall_advice,omitempty"`
	BenchmarkRate float64                `json:"benchmark_rate,omitempty"`
}

// Report is the full evaluation of a single snapshot
type Report struct {
	Score          float64          `json:"score"`
	Classification Classification   `json:"classification"`
	Patterns       SpendingPattern  `json:"patterns"`
	Anomalies      []Anomaly        `json:"anomalies"`
	Guidance       Guidance         `json:"guidance"`
	Investments    InvestmentAdvice `json:"investments"`
}

// Impact of a what-if score delta
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

// SimulationResult compares a current and a modified snapshot
type SimulationResult struct {
	CurrentScore           float64        `json:"current_score"`
	ModifiedScore          float64        `json:"modified_score"`
	ScoreChange            float64        `json:"score_change"`
	Impact                 Impact         `json:"impact"`
	CurrentClassification  Classification `json:"current_classification"`
	ModifiedClassification Classification `json:"modified_classification"`
}

// ScoreFactor is one weighted component of the score
type ScoreFactor struct {
	Name         string  `json:"name"`
	Score        float64 `json:"score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// ScoreBreakdown explains how a score was assembled
type ScoreBreakdown struct {
	OverallScore     float64       `json:"overall_score"`
	Factors          []ScoreFactor `json:"factors"`
	OverspendPenalty float64       `json:"overspend_penalty"`
}
