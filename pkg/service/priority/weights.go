package priority

import (
	"github.com/civic-lab/fixpoint/pkg/domain/model"
	"github.com/civic-lab/fixpoint/pkg/domain/types"
)

// DefaultWeights returns the built-in category weight table. Each entry
// encodes the baseline urgency of the category, the multiplier applied to
// severity and to the aggregate, and the baseline SLA in hours.
func DefaultWeights() []model.CategoryWeight {
	return []model.CategoryWeight{
		{Category: types.CategorySafety, BaseScore: 85, Multiplier: 1.5, SLAHours: 4},
		{Category: types.CategoryStructural, BaseScore: 80, Multiplier: 1.4, SLAHours: 8},
		{Category: types.CategoryElectrical, BaseScore: 70, Multiplier: 1.3, SLAHours: 12},
		{Category: types.CategoryPlumbing, BaseScore: 65, Multiplier: 1.2, SLAHours: 16},
		{Category: types.CategoryHVAC, BaseScore: 55, Multiplier: 1.1, SLAHours: 24},
		{Category: types.CategoryITEquipment, BaseScore: 50, Multiplier: 1.0, SLAHours: 24},
		{Category: types.CategoryCleaning, BaseScore: 40, Multiplier: 0.9, SLAHours: 48},
		{Category: types.CategoryFurniture, BaseScore: 30, Multiplier: 0.8, SLAHours: 72},
		{Category: types.CategoryLandscaping, BaseScore: 25, Multiplier: 0.8, SLAHours: 96},
		{Category: types.CategoryOther, BaseScore: 35, Multiplier: 1.0, SLAHours: 48},
	}
}

// lookup returns the weight entry for a category, falling back to the
// CategoryOther entry for unrecognized values. Scoring is total: no error
// is raised for unknown categories.
func (e *Engine) lookup(category types.Category) model.CategoryWeight {
	if w, ok := e.weights[category]; ok {
		return w
	}
	return e.weights[types.CategoryOther]
}
