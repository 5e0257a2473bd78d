package priority

import (
	"github.com/civic-lab/fixpoint/pkg/domain/model"
	"github.com/civic-lab/fixpoint/pkg/domain/types"
)

// AggregationWeights documents the weight of each sub-score in the final
// aggregate
type AggregationWeights struct {
	Category   float64 `json:"category" yaml:"category"`
	Severity   float64 `json:"severity" yaml:"severity"`
	Impact     float64 `json:"impact" yaml:"impact"`
	Urgency    float64 `json:"urgency" yaml:"urgency"`
	Context    float64 `json:"context" yaml:"context"`
	Historical float64 `json:"historical" yaml:"historical"`
	Vote       float64 `json:"vote" yaml:"vote"`
}

// TierThreshold documents the minimum score for a priority tier
type TierThreshold struct {
	Priority string `json:"priority" yaml:"priority"`
	MinScore int    `json:"minScore" yaml:"minScore"`
}

// SLACeiling documents a score-driven cap on the recommended SLA
type SLACeiling struct {
	MinScore int `json:"minScore" yaml:"minScore"`
	Hours    int `json:"hours" yaml:"hours"`
}

// Boosters documents the additive booster constants used by the sub-score
// calculators
type Boosters struct {
	CriticalInfrastructure int `json:"criticalInfrastructure" yaml:"criticalInfrastructure"`
	SafetyRisk             int `json:"safetyRisk" yaml:"safetyRisk"`
	BlocksAccess           int `json:"blocksAccess" yaml:"blocksAccess"`
	AffectsAcademics       int `json:"affectsAcademics" yaml:"affectsAcademics"`
	Recurring              int `json:"recurring" yaml:"recurring"`
	WeatherSensitive       int `json:"weatherSensitive" yaml:"weatherSensitive"`
	ExamPeriod             int `json:"examPeriod" yaml:"examPeriod"`
	CurrentSemester        int `json:"currentSemester" yaml:"currentSemester"`
	VoteCap                int `json:"voteCap" yaml:"voteCap"`
}

// Explanation exposes the engine's configuration as data for admin UIs and
// API consumers. It is a static description, not a computation.
type Explanation struct {
	CategoryWeights []model.CategoryWeight `json:"categoryWeights" yaml:"categoryWeights"`
	Aggregation     AggregationWeights     `json:"aggregation" yaml:"aggregation"`
	TierThresholds  []TierThreshold        `json:"tierThresholds" yaml:"tierThresholds"`
	SLACeilings     []SLACeiling           `json:"slaCeilings" yaml:"slaCeilings"`
	Boosters        Boosters               `json:"boosters" yaml:"boosters"`
	DefaultSeverity int                    `json:"defaultSeverity" yaml:"defaultSeverity"`
}

// Explain returns the weight table, thresholds, and booster constants as
// data. Category weights are listed in their display order.
func (e *Engine) Explain() *Explanation {
	weights := make([]model.CategoryWeight, 0, len(e.weights))
	for _, c := range types.Categories() {
		if w, ok := e.weights[c]; ok {
			weights = append(weights, w)
		}
	}

	return &Explanation{
		CategoryWeights: weights,
		Aggregation: AggregationWeights{
			Category:   weightCategory,
			Severity:   weightSeverity,
			Impact:     weightImpact,
			Urgency:    weightUrgency,
			Context:    weightContext,
			Historical: weightHistorical,
			Vote:       weightVote,
		},
		TierThresholds: []TierThreshold{
			{Priority: "CRITICAL", MinScore: thresholdCritical},
			{Priority: "HIGH", MinScore: thresholdHigh},
			{Priority: "MEDIUM", MinScore: thresholdMedium},
			{Priority: "LOW", MinScore: 0},
		},
		SLACeilings: []SLACeiling{
			{MinScore: 90, Hours: 2},
			{MinScore: 80, Hours: 4},
			{MinScore: 70, Hours: 8},
			{MinScore: 60, Hours: 12},
			{MinScore: 50, Hours: 24},
		},
		Boosters: Boosters{
			CriticalInfrastructure: criticalInfraBoost,
			SafetyRisk:             safetyRiskBoost,
			BlocksAccess:           blocksAccessBoost,
			AffectsAcademics:       academicsBoost,
			Recurring:              recurringBoost,
			WeatherSensitive:       weatherBoost,
			ExamPeriod:             examBoost,
			CurrentSemester:        semesterBoost,
			VoteCap:                voteCap,
		},
		DefaultSeverity: defaultSeverity,
	}
}
