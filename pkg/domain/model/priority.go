package model

import (
	"time"

	"github.com/civic-lab/fixpoint/pkg/domain/types"
)

// PriorityInput is the request record for priority scoring. Category and
// ReportedAt are required; every other field is optional and absent-safe.
// Optional numeric fields are pointers so that "not supplied" is
// distinguishable from a zero value.
type PriorityInput struct {
	Category   types.Category `json:"category" yaml:"category"`
	ReportedAt time.Time      `json:"reportedAt" yaml:"reportedAt"`

	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	BuildingID  string `json:"buildingId,omitempty" yaml:"buildingId,omitempty"`
	RoomID      string `json:"roomId,omitempty" yaml:"roomId,omitempty"`

	Severity     *int     `json:"severity,omitempty" yaml:"severity,omitempty"`         // 1-10
	Occupancy    *int     `json:"occupancy,omitempty" yaml:"occupancy,omitempty"`       // people affected
	AffectedArea *float64 `json:"affectedArea,omitempty" yaml:"affectedArea,omitempty"` // square meters

	IsRecurring            bool `json:"isRecurring,omitempty" yaml:"isRecurring,omitempty"`
	BlocksAccess           bool `json:"blocksAccess,omitempty" yaml:"blocksAccess,omitempty"`
	SafetyRisk             bool `json:"safetyRisk,omitempty" yaml:"safetyRisk,omitempty"`
	CriticalInfrastructure bool `json:"criticalInfrastructure,omitempty" yaml:"criticalInfrastructure,omitempty"`
	AffectsAcademics       bool `json:"affectsAcademics,omitempty" yaml:"affectsAcademics,omitempty"`
	WeatherSensitive       bool `json:"weatherSensitive,omitempty" yaml:"weatherSensitive,omitempty"`
	ExamPeriod             bool `json:"examPeriod,omitempty" yaml:"examPeriod,omitempty"`
	CurrentSemester        bool `json:"currentSemester,omitempty" yaml:"currentSemester,omitempty"`

	TimeOfDay types.TimeOfDay `json:"timeOfDay,omitempty" yaml:"timeOfDay,omitempty"`
	DayOfWeek types.DayOfWeek `json:"dayOfWeek,omitempty" yaml:"dayOfWeek,omitempty"`

	PreviousOccurrences *int     `json:"previousOccurrences,omitempty" yaml:"previousOccurrences,omitempty"`
	AvgResolutionTime   *float64 `json:"avgResolutionTime,omitempty" yaml:"avgResolutionTime,omitempty"` // hours
	HistoricalCostAvg   *float64 `json:"historicalCostAvg,omitempty" yaml:"historicalCostAvg,omitempty"`
	EscalationRate      *float64 `json:"escalationRate,omitempty" yaml:"escalationRate,omitempty"` // 0.0-1.0

	VoteCount int `json:"voteCount,omitempty" yaml:"voteCount,omitempty"`
}

// PriorityPatch is a partial PriorityInput for recalculation. Nil fields
// leave the original value unchanged.
type PriorityPatch struct {
	Category   *types.Category `json:"category,omitempty"`
	ReportedAt *time.Time      `json:"reportedAt,omitempty"`

	Severity     *int     `json:"severity,omitempty"`
	Occupancy    *int     `json:"occupancy,omitempty"`
	AffectedArea *float64 `json:"affectedArea,omitempty"`

	IsRecurring            *bool `json:"isRecurring,omitempty"`
	BlocksAccess           *bool `json:"blocksAccess,omitempty"`
	SafetyRisk             *bool `json:"safetyRisk,omitempty"`
	CriticalInfrastructure *bool `json:"criticalInfrastructure,omitempty"`
	AffectsAcademics       *bool `json:"affectsAcademics,omitempty"`
	WeatherSensitive       *bool `json:"weatherSensitive,omitempty"`
	ExamPeriod             *bool `json:"examPeriod,omitempty"`
	CurrentSemester        *bool `json:"currentSemester,omitempty"`

	TimeOfDay *types.TimeOfDay `json:"timeOfDay,omitempty"`
	DayOfWeek *types.DayOfWeek `json:"dayOfWeek,omitempty"`

	PreviousOccurrences *int     `json:"previousOccurrences,omitempty"`
	AvgResolutionTime   *float64 `json:"avgResolutionTime,omitempty"`
	HistoricalCostAvg   *float64 `json:"historicalCostAvg,omitempty"`
	EscalationRate      *float64 `json:"escalationRate,omitempty"`

	VoteCount *int `json:"voteCount,omitempty"`
}

// Apply merges the patch over a copy of the input and returns the merged
// value. The original is not modified.
func (p *PriorityPatch) Apply(input PriorityInput) PriorityInput {
	if p == nil {
		return input
	}
	if p.Category != nil {
		input.Category = *p.Category
	}
	if p.ReportedAt != nil {
		input.ReportedAt = *p.ReportedAt
	}
	if p.Severity != nil {
		input.Severity = p.Severity
	}
	if p.Occupancy != nil {
		input.Occupancy = p.Occupancy
	}
	if p.AffectedArea != nil {
		input.AffectedArea = p.AffectedArea
	}
	if p.IsRecurring != nil {
		input.IsRecurring = *p.IsRecurring
	}
	if p.BlocksAccess != nil {
		input.BlocksAccess = *p.BlocksAccess
	}
	if p.SafetyRisk != nil {
		input.SafetyRisk = *p.SafetyRisk
	}
	if p.CriticalInfrastructure != nil {
		input.CriticalInfrastructure = *p.CriticalInfrastructure
	}
	if p.AffectsAcademics != nil {
		input.AffectsAcademics = *p.AffectsAcademics
	}
	if p.WeatherSensitive != nil {
		input.WeatherSensitive = *p.WeatherSensitive
	}
	if p.ExamPeriod != nil {
		input.ExamPeriod = *p.ExamPeriod
	}
	if p.CurrentSemester != nil {
		input.CurrentSemester = *p.CurrentSemester
	}
	if p.TimeOfDay != nil {
		input.TimeOfDay = *p.TimeOfDay
	}
	if p.DayOfWeek != nil {
		input.DayOfWeek = *p.DayOfWeek
	}
	if p.PreviousOccurrences != nil {
		input.PreviousOccurrences = p.PreviousOccurrences
	}
	if p.AvgResolutionTime != nil {
		input.AvgResolutionTime = p.AvgResolutionTime
	}
	if p.HistoricalCostAvg != nil {
		input.HistoricalCostAvg = p.HistoricalCostAvg
	}
	if p.EscalationRate != nil {
		input.EscalationRate = p.EscalationRate
	}
	if p.VoteCount != nil {
		input.VoteCount = *p.VoteCount
	}
	return input
}

// Breakdown holds the seven sub-scores, each in [0,100]
type Breakdown struct {
	Category   int `json:"category" bson:"category"`
	Severity   int `json:"severity" bson:"severity"`
	Impact     int `json:"impact" bson:"impact"`
	Urgency    int `json:"urgency" bson:"urgency"`
	Context    int `json:"context" bson:"context"`
	Historical int `json:"historical" bson:"historical"`
	Vote       int `json:"vote" bson:"vote"`
}

// ReasonTag identifies the condition that triggered a reasoning line
type ReasonTag string

const (
	ReasonHighRiskCategory       ReasonTag = "high_risk_category"
	ReasonSafetyRisk             ReasonTag = "safety_risk"
	ReasonCriticalInfrastructure ReasonTag = "critical_infrastructure"
	ReasonHighOccupancy          ReasonTag = "high_occupancy"
	ReasonBlocksAccess           ReasonTag = "blocks_access"
	ReasonAcademicDisruption     ReasonTag = "academic_disruption"
	ReasonRecurring              ReasonTag = "recurring"
	ReasonExamPeriod             ReasonTag = "exam_period"
	ReasonEscalating             ReasonTag = "escalating"
	ReasonCommunityVotes         ReasonTag = "community_votes"
	ReasonTierSummary            ReasonTag = "tier_summary"
)

// Reason pairs the triggering condition with a human-readable message so
// consumers can assert on the tag without matching prose.
type Reason struct {
	Tag     ReasonTag `json:"tag" bson:"tag"`
	Message string    `json:"message" bson:"message"`
}

// PriorityScore is the result record of priority scoring
type PriorityScore struct {
	Score          int            `json:"score" bson:"score"`           // 0-100
	Priority       types.Priority `json:"priority" bson:"priority"`     // LOW/MEDIUM/HIGH/CRITICAL
	Confidence     float64        `json:"confidence" bson:"confidence"` // 0.0-1.0
	Breakdown      Breakdown      `json:"breakdown" bson:"breakdown"`
	Reasoning      []Reason       `json:"reasoning" bson:"reasoning"`
	RecommendedSLA int            `json:"recommendedSLA" bson:"recommended_sla"` // hours
	CalculatedAt   time.Time      `json:"calculatedAt" bson:"calculated_at"`
}

// ReasoningMessages returns the reasoning messages in order, for display
func (s *PriorityScore) ReasoningMessages() []string {
	msgs := make([]string, 0, len(s.Reasoning))
	for _, r := range s.Reasoning {
		msgs = append(msgs, r.Message)
	}
	return msgs
}

// HasReason reports whether a reasoning line with the given tag is present
func (s *PriorityScore) HasReason(tag ReasonTag) bool {
	for _, r := range s.Reasoning {
		if r.Tag == tag {
			return true
		}
	}
	return false
}
