package priority

import (
	"math"

	"github.com/civic-lab/fixpoint/pkg/domain/model"
)

// Confidence bonuses per supplied optional field
const (
	confidenceBase       = 0.5
	confidenceMajorBonus = 0.1
	confidenceMinorBonus = 0.05
)

// confidence estimates how much of the optional schema was populated.
// It is informational metadata only and does not feed back into the score.
func confidence(input *model.PriorityInput) float64 {
	c := confidenceBase

	if input.Severity != nil {
		c += confidenceMajorBonus
	}
	if input.Occupancy != nil {
		c += confidenceMajorBonus
	}
	if input.AvgResolutionTime != nil {
		c += confidenceMajorBonus
	}
	if input.EscalationRate != nil {
		c += confidenceMajorBonus
	}
	if input.AffectedArea != nil {
		c += confidenceMinorBonus
	}
	if input.PreviousOccurrences != nil {
		c += confidenceMinorBonus
	}

	// Round to two decimals for stable serialized output
	return clampFloat(math.Round(c*100)/100, 0, 1)
}
