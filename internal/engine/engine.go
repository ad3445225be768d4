// Package engine scores a monthly financial snapshot and simulates what-if changes.
// An Engine is immutable after New and safe for concurrent use.
package engine

import (
	"github.com/Dan9191/finhealth-service/internal/models"
	"github.com/Dan9191/finhealth-service/internal/policy"
)

// Engine evaluates snapshots against a fixed policy
type Engine struct {
	policy policy.Policy
}

// New validates the policy and builds an engine over a private copy of it
func New(p policy.Policy) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Engine{policy: p.Clone()}, nil
}

// Policy returns a copy of the tables the engine scores with
func (e *Engine) Policy() policy.Policy {
	return e.policy.Clone()
}

// Evaluate produces the full report for one snapshot. Only invalid input
// returns an error; no partial report is ever returned.
func (e *Engine) Evaluate(s models.FinancialSnapshot, tolerance models.RiskTolerance) (*models.Report, error) {
	return e.EvaluateWithBenchmark(s, tolerance, 0)
}

// EvaluateWithBenchmark is Evaluate with the current key rate, in percent,
// quoted next to low-risk suggestions. Zero means no rate is known.
func (e *Engine) EvaluateWithBenchmark(s models.FinancialSnapshot, tolerance models.RiskTolerance, keyRate float64) (*models.Report, error) {
	if !isFinite(keyRate) || keyRate < 0 {
		return nil, &InvalidInputError{Field: "key_rate", Reason: "must be a non-negative number"}
	}
	if tolerance != "" && !tolerance.Valid() {
		return nil, &InvalidInputError{Field: "risk_tolerance", Reason: "must be conservative, balanced or growth"}
	}
	pattern, err := CalculateRatios(s)
	if err != nil {
		return nil, err
	}

	score := e.Score(pattern)
	anomalies := e.DetectAnomalies(s, pattern)
	return &models.Report{
		Score:          score,
		Classification: e.Classify(score),
		Patterns:       pattern,
		Anomalies:      anomalies,
		Guidance:       e.Guide(pattern, anomalies),
		Investments:    e.Advise(s, pattern, anomalies, tolerance, keyRate),
	}, nil
}
