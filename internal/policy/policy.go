// Package policy holds the scoring tables consumed by the evaluation engine.
// A Policy is built once at startup, validated, and never mutated afterwards.
package policy

import (
	"fmt"
	"math"
	"sort"

	"github.com/Dan9191/finhealth-service/internal/models"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// weightTolerance is the allowed drift of the weight sum from 1.0
const weightTolerance = 1e-9

// Direction tells whether a curve rewards larger or smaller ratios
type Direction string

const (
	Increasing Direction = "increasing"
	Decreasing Direction = "decreasing"
)

// Point is a curve breakpoint: ratio X maps to sub-score Y
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Curve is a piecewise-linear sub-score function, flat beyond its end points
type Curve struct {
	Direction Direction `yaml:"direction" json:"direction"`
	Points    []Point   `yaml:"points" json:"points"`
}

// At evaluates the curve at ratio x
func (c Curve) At(x float64) float64 {
	pts := c.Points
	if x <= pts[0].X {
		return pts[0].Y
	}
	last := pts[len(pts)-1]
	if x >= last.X {
		return last.Y
	}
	i := sort.Search(len(pts), func(i int) bool { return pts[i].X >= x })
	lo, hi := pts[i-1], pts[i]
	return lo.Y + (x-lo.X)/(hi.X-lo.X)*(hi.Y-lo.Y)
}

// Weights of the score factors; they must sum to 1.0
type Weights struct {
	Savings float64 `yaml:"savings" json:"savings"`
	Expense float64 `yaml:"expense" json:"expense"`
	Debt    float64 `yaml:"debt" json:"debt"`
}

// ScoreModel configures the weighted score formula
type ScoreModel struct {
	Weights          Weights `yaml:"weights" json:"weights"`
	Savings          Curve   `yaml:"savings" json:"savings"`
	Expense          Curve   `yaml:"expense" json:"expense"`
	Debt             Curve   `yaml:"debt" json:"debt"`
	OverspendRatio   float64 `yaml:"overspend_ratio" json:"overspend_ratio"`
	OverspendPenalty float64 `yaml:"overspend_penalty" json:"overspend_penalty"`
}

// Band maps scores at or above Min to a classification
type Band struct {
	Min         float64         `yaml:"min" json:"min"`
	Category    models.Category `yaml:"category" json:"category"`
	Color       string          `yaml:"color" json:"color"`
	Emoji       string          `yaml:"emoji" json:"emoji"`
	Description string          `yaml:"description" json:"description"`
}

// Tier is one severity step of a threshold rule
type Tier struct {
	Threshold float64         `yaml:"threshold" json:"threshold"`
	Severity  models.Severity `yaml:"severity" json:"severity"`
}

// AnomalyRules holds the thresholds of every anomaly check.
// "Above" tiers fire when the ratio is strictly greater than the threshold and are
// listed from the highest threshold down; "below" tiers fire when the ratio is
// strictly lower and are listed from the lowest threshold up.
type AnomalyRules struct {
	OverspendingRatio   float64 `yaml:"overspending_ratio" json:"overspending_ratio"`
	OvercommittedRatio  float64 `yaml:"overcommitted_ratio" json:"overcommitted_ratio"`
	DebtBurden          []Tier  `yaml:"debt_burden" json:"debt_burden"`
	LowSavings          []Tier  `yaml:"low_savings" json:"low_savings"`
	HighExpense         []Tier  `yaml:"high_expense" json:"high_expense"`
	ExcessiveShopping   []Tier  `yaml:"excessive_shopping" json:"excessive_shopping"`
	ExcessiveTravel     []Tier  `yaml:"excessive_travel" json:"excessive_travel"`
	SpendingPriorityMin float64 `yaml:"spending_priority_min" json:"spending_priority_min"`
}

// GuidanceRules holds the ratio thresholds behind guidance texts
type GuidanceRules struct {
	ExcellentSavings float64 `yaml:"excellent_savings" json:"excellent_savings"`
	GoodSavings      float64 `yaml:"good_savings" json:"good_savings"`
	MinSavings       float64 `yaml:"min_savings" json:"min_savings"`
	AutoSaveBelow    float64 `yaml:"auto_save_below" json:"auto_save_below"`
	LeanExpense      float64 `yaml:"lean_expense" json:"lean_expense"`
	TargetExpense    float64 `yaml:"target_expense" json:"target_expense"`
	MaxExpense       float64 `yaml:"max_expense" json:"max_expense"`
	ConsolidateEMI   float64 `yaml:"consolidate_emi" json:"consolidate_emi"`
	MaxEMI           float64 `yaml:"max_emi" json:"max_emi"`
	RentShare        float64 `yaml:"rent_share" json:"rent_share"`
	ShoppingShare    float64 `yaml:"shopping_share" json:"shopping_share"`
}

// Allocation is a share of the monthly savings routed to one instrument
type Allocation struct {
	Type     string           `yaml:"type" json:"type"`
	Risk     models.RiskLevel `yaml:"risk" json:"risk"`
	Fraction float64          `yaml:"fraction" json:"fraction"`
	Reason   string           `yaml:"reason" json:"reason"`
}

// Profile is the allocation plan for one risk tolerance
type Profile struct {
	Advice      string       `yaml:"advice" json:"advice"`
	Allocations []Allocation `yaml:"allocations" json:"allocations"`
}

// InvestmentRules configures eligibility and allocation profiles
type InvestmentRules struct {
	MinSavingsRatio      float64                          `yaml:"min_savings_ratio" json:"min_savings_ratio"`
	GrowthSavingsRatio   float64                          `yaml:"growth_savings_ratio" json:"growth_savings_ratio"`
	GrowthMaxEMIRatio    float64                          `yaml:"growth_max_emi_ratio" json:"growth_max_emi_ratio"`
	BalancedSavingsRatio float64                          `yaml:"balanced_savings_ratio" json:"balanced_savings_ratio"`
	IneligibleAdvice     string                           `yaml:"ineligible_advice" json:"ineligible_advice"`
	Profiles             map[models.RiskTolerance]Profile `yaml:"profiles" json:"profiles"`
}

// Policy is the complete set of scoring tables
type Policy struct {
	Score      ScoreModel      `yaml:"score" json:"score"`
	Bands      []Band          `yaml:"bands" json:"bands"`
	Anomalies  AnomalyRules    `yaml:"anomalies" json:"anomalies"`
	Guidance   GuidanceRules   `yaml:"guidance" json:"guidance"`
	Investment InvestmentRules `yaml:"investment" json:"investment"`
}

// ConfigurationError reports an inconsistent policy table
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid policy %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...interface{}) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Clone returns a deep copy so the engine never shares slices or maps with the caller
func (p Policy) Clone() Policy {
	c := p
	c.Score.Savings.Points = append([]Point(nil), p.Score.Savings.Points...)
	c.Score.Expense.Points = append([]Point(nil), p.Score.Expense.Points...)
	c.Score.Debt.Points = append([]Point(nil), p.Score.Debt.Points...)
	c.Bands = append([]Band(nil), p.Bands...)
	c.Anomalies.DebtBurden = append([]Tier(nil), p.Anomalies.DebtBurden...)
	c.Anomalies.LowSavings = append([]Tier(nil), p.Anomalies.LowSavings...)
	c.Anomalies.HighExpense = append([]Tier(nil), p.Anomalies.HighExpense...)
	c.Anomalies.ExcessiveShopping = append([]Tier(nil), p.Anomalies.ExcessiveShopping...)
	c.Anomalies.ExcessiveTravel = append([]Tier(nil), p.Anomalies.ExcessiveTravel...)
	c.Investment.Profiles = make(map[models.RiskTolerance]Profile, len(p.Investment.Profiles))
	for k, v := range p.Investment.Profiles {
		v.Allocations = append([]Allocation(nil), v.Allocations...)
		c.Investment.Profiles[k] = v
	}
	return c
}

// Validate runs the startup self-check over every table
func (p Policy) Validate() error {
	if err := p.Score.validate(); err != nil {
		return err
	}
	if err := validateBands(p.Bands); err != nil {
		return err
	}
	if err := p.Anomalies.validate(); err != nil {
		return err
	}
	if err := p.Guidance.validate(); err != nil {
		return err
	}
	return p.Investment.validate()
}

func (m ScoreModel) validate() error {
	w := []float64{m.Weights.Savings, m.Weights.Expense, m.Weights.Debt}
	for _, v := range w {
		if v < 0 || !isFinite(v) {
			return invalid("score.weights", "weight %v must be a non-negative number", v)
		}
	}
	if sum := floats.Sum(w); !scalar.EqualWithinAbs(sum, 1.0, weightTolerance) {
		return invalid("score.weights", "weights sum to %v, want 1.0", sum)
	}
	if err := m.Savings.validate("score.savings", Increasing); err != nil {
		return err
	}
	if err := m.Expense.validate("score.expense", Decreasing); err != nil {
		return err
	}
	if err := m.Debt.validate("score.debt", Decreasing); err != nil {
		return err
	}
	if m.OverspendRatio <= 0 || !isFinite(m.OverspendRatio) {
		return invalid("score.overspend_ratio", "must be positive, got %v", m.OverspendRatio)
	}
	if !isFinite(m.OverspendPenalty) || m.OverspendPenalty < 0 || m.OverspendPenalty > 100 {
		return invalid("score.overspend_penalty", "must be within [0,100], got %v", m.OverspendPenalty)
	}
	return nil
}

func (c Curve) validate(field string, want Direction) error {
	if c.Direction != want {
		return invalid(field, "direction %q, want %q", c.Direction, want)
	}
	if len(c.Points) < 2 {
		return invalid(field, "needs at least 2 points, got %d", len(c.Points))
	}
	for i, pt := range c.Points {
		if !isFinite(pt.X) || pt.X < 0 {
			return invalid(field, "point %d has invalid ratio %v", i, pt.X)
		}
		if !isFinite(pt.Y) || pt.Y < 0 || pt.Y > 100 {
			return invalid(field, "point %d score %v outside [0,100]", i, pt.Y)
		}
		if i == 0 {
			continue
		}
		prev := c.Points[i-1]
		if pt.X <= prev.X {
			return invalid(field, "ratios must be strictly increasing at point %d", i)
		}
		if want == Increasing && pt.Y < prev.Y {
			return invalid(field, "score decreases at point %d", i)
		}
		if want == Decreasing && pt.Y > prev.Y {
			return invalid(field, "score increases at point %d", i)
		}
	}
	return nil
}

func validateBands(bands []Band) error {
	if len(bands) == 0 {
		return invalid("bands", "no bands configured")
	}
	seen := make(map[models.Category]bool, len(bands))
	for i, b := range bands {
		if !b.Category.Valid() {
			return invalid("bands", "unknown category %q", b.Category)
		}
		if seen[b.Category] {
			return invalid("bands", "category %q appears twice", b.Category)
		}
		seen[b.Category] = true
		if !isFinite(b.Min) || b.Min < 0 || b.Min > 100 {
			return invalid("bands", "band %q minimum %v outside [0,100]", b.Category, b.Min)
		}
		if i > 0 && b.Min >= bands[i-1].Min {
			return invalid("bands", "band %q overlaps %q; minimums must strictly decrease", b.Category, bands[i-1].Category)
		}
	}
	if last := bands[len(bands)-1]; last.Min != 0 {
		return invalid("bands", "lowest band starts at %v, scores below it are unclassified", last.Min)
	}
	return nil
}

func (r AnomalyRules) validate() error {
	if !isFinite(r.OverspendingRatio) || r.OverspendingRatio <= 0 {
		return invalid("anomalies.overspending_ratio", "must be positive")
	}
	if !isFinite(r.OvercommittedRatio) || r.OvercommittedRatio <= 0 {
		return invalid("anomalies.overcommitted_ratio", "must be positive")
	}
	if !isFinite(r.SpendingPriorityMin) || r.SpendingPriorityMin < 0 {
		return invalid("anomalies.spending_priority_min", "must not be negative")
	}
	above := []struct {
		field string
		tiers []Tier
	}{
		{"anomalies.debt_burden", r.DebtBurden},
		{"anomalies.high_expense", r.HighExpense},
		{"anomalies.excessive_shopping", r.ExcessiveShopping},
		{"anomalies.excessive_travel", r.ExcessiveTravel},
	}
	for _, t := range above {
		if err := validateTiers(t.field, t.tiers, true); err != nil {
			return err
		}
	}
	return validateTiers("anomalies.low_savings", r.LowSavings, false)
}

func validateTiers(field string, tiers []Tier, above bool) error {
	if len(tiers) == 0 {
		return invalid(field, "no tiers configured")
	}
	for i, t := range tiers {
		if !t.Severity.Valid() {
			return invalid(field, "unknown severity %q", t.Severity)
		}
		if t.Threshold < 0 || !isFinite(t.Threshold) {
			return invalid(field, "invalid threshold %v", t.Threshold)
		}
		if i == 0 {
			continue
		}
		prev := tiers[i-1]
		if above && t.Threshold >= prev.Threshold {
			return invalid(field, "thresholds must strictly decrease")
		}
		if !above && t.Threshold <= prev.Threshold {
			return invalid(field, "thresholds must strictly increase")
		}
		if t.Severity.Rank() > prev.Severity.Rank() {
			return invalid(field, "tier %d is more severe than the stricter tier before it", i)
		}
	}
	return nil
}

func (g GuidanceRules) validate() error {
	thresholds := []struct {
		field string
		value float64
	}{
		{"guidance.excellent_savings", g.ExcellentSavings},
		{"guidance.good_savings", g.GoodSavings},
		{"guidance.min_savings", g.MinSavings},
		{"guidance.auto_save_below", g.AutoSaveBelow},
		{"guidance.lean_expense", g.LeanExpense},
		{"guidance.target_expense", g.TargetExpense},
		{"guidance.max_expense", g.MaxExpense},
		{"guidance.consolidate_emi", g.ConsolidateEMI},
		{"guidance.max_emi", g.MaxEMI},
		{"guidance.rent_share", g.RentShare},
		{"guidance.shopping_share", g.ShoppingShare},
	}
	for _, t := range thresholds {
		if !isFinite(t.value) || t.value < 0 {
			return invalid(t.field, "must be a non-negative number, got %v", t.value)
		}
	}
	if g.GoodSavings >= g.ExcellentSavings {
		return invalid("guidance", "good_savings must be below excellent_savings")
	}
	if g.MinSavings > g.AutoSaveBelow {
		return invalid("guidance", "min_savings must not exceed auto_save_below")
	}
	if !(g.LeanExpense <= g.TargetExpense && g.TargetExpense < g.MaxExpense) {
		return invalid("guidance", "expense thresholds must satisfy lean <= target < max")
	}
	if g.ConsolidateEMI >= g.MaxEMI {
		return invalid("guidance", "consolidate_emi must be below max_emi")
	}
	return nil
}

func (r InvestmentRules) validate() error {
	ratios := []struct {
		field string
		value float64
	}{
		{"investment.min_savings_ratio", r.MinSavingsRatio},
		{"investment.growth_savings_ratio", r.GrowthSavingsRatio},
		{"investment.growth_max_emi_ratio", r.GrowthMaxEMIRatio},
		{"investment.balanced_savings_ratio", r.BalancedSavingsRatio},
	}
	for _, t := range ratios {
		if !isFinite(t.value) || t.value < 0 {
			return invalid(t.field, "must be a non-negative number, got %v", t.value)
		}
	}
	if r.BalancedSavingsRatio > r.GrowthSavingsRatio {
		return invalid("investment", "balanced_savings_ratio must not exceed growth_savings_ratio")
	}
	for _, t := range []models.RiskTolerance{models.ToleranceConservative, models.ToleranceBalanced, models.ToleranceGrowth} {
		prof, ok := r.Profiles[t]
		if !ok {
			return invalid("investment.profiles", "missing profile %q", t)
		}
		if err := prof.validate(string(t)); err != nil {
			return err
		}
	}
	for t := range r.Profiles {
		if !t.Valid() {
			return invalid("investment.profiles", "unknown risk tolerance %q", t)
		}
	}
	return nil
}

func (p Profile) validate(name string) error {
	field := "investment.profiles." + name
	if n := len(p.Allocations); n < 2 || n > 4 {
		return invalid(field, "needs 2 to 4 allocations, got %d", n)
	}
	fractions := make([]float64, 0, len(p.Allocations))
	risks := make(map[models.RiskLevel]bool, 3)
	for _, a := range p.Allocations {
		if !a.Risk.Valid() {
			return invalid(field, "unknown risk level %q", a.Risk)
		}
		if !isFinite(a.Fraction) || a.Fraction <= 0 {
			return invalid(field, "allocation %q must have a positive fraction", a.Type)
		}
		risks[a.Risk] = true
		fractions = append(fractions, a.Fraction)
	}
	if sum := floats.Sum(fractions); sum > 1.0+weightTolerance {
		return invalid(field, "fractions sum to %v, more than the available savings", sum)
	}
	if !risks[models.RiskLow] || !risks[models.RiskMedium] || !risks[models.RiskHigh] {
		return invalid(field, "allocations must span low, medium and high risk")
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
