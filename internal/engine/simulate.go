package engine

import (
	"errors"

	"github.com/Dan9191/finhealth-service/internal/models"
)

// ImpactTolerance is the smallest score change reported as positive or negative.
// Scores carry two decimals, so anything below half a step is rounding noise.
const ImpactTolerance = 0.005

// Simulate evaluates both snapshots independently and reports the score delta
func (e *Engine) Simulate(current, modified models.FinancialSnapshot) (*models.SimulationResult, error) {
	cur, err := e.Evaluate(current, "")
	if err != nil {
		return nil, prefixField("current", err)
	}
	mod, err := e.Evaluate(modified, "")
	if err != nil {
		return nil, prefixField("modified", err)
	}

	change := round2(mod.Score - cur.Score)
	return &models.SimulationResult{
		CurrentScore:           cur.Score,
		ModifiedScore:          mod.Score,
		ScoreChange:            change,
		Impact:                 ImpactOf(change),
		CurrentClassification:  cur.Classification,
		ModifiedClassification: mod.Classification,
	}, nil
}

// ImpactOf classifies a score delta
func ImpactOf(change float64) models.Impact {
	switch {
	case change > ImpactTolerance:
		return models.ImpactPositive
	case change < -ImpactTolerance:
		return models.ImpactNegative
	default:
		return models.ImpactNeutral
	}
}

func prefixField(prefix string, err error) error {
	var inv *InvalidInputError
	if errors.As(err, &inv) {
		return &InvalidInputError{Field: prefix + "." + inv.Field, Reason: inv.Reason}
	}
	return err
}
