package engine

import "github.com/Dan9191/finhealth-service/internal/models"

// Classify maps a score to its band. Bands are ordered by descending minimum,
// so a score exactly on an edge lands in the higher band.
func (e *Engine) Classify(score float64) models.Classification {
	for _, b := range e.policy.Bands {
		if score >= b.Min {
			return models.Classification{
				Category:    b.Category,
				Color:       b.Color,
				Emoji:       b.Emoji,
				Description: b.Description,
			}
		}
	}
	violate("classify", "score %v is below every band", score)
	return models.Classification{}
}
