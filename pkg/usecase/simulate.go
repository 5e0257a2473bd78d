package usecase

import (
	"context"
	"time"

	"github.com/civic-lab/fixpoint/pkg/domain/model"
	"github.com/civic-lab/fixpoint/pkg/domain/types"
	"github.com/civic-lab/fixpoint/pkg/service/priority"
)

// Scenario pairs a named example input with its computed score
type Scenario struct {
	Name        string               `json:"name" yaml:"name"`
	Description string               `json:"description" yaml:"description"`
	Input       *model.PriorityInput `json:"input" yaml:"input"`
	Score       *model.PriorityScore `json:"score" yaml:"score"`
}

// Simulate implements SimulateUseCase. It scores hypothetical inputs
// through the same engine the persisted issues use, without touching the
// repository.
type Simulate struct {
	engine *priority.Engine
	now    func() time.Time
}

// SimulateOption customizes the Simulate use case
type SimulateOption func(*Simulate)

// WithSimulateClock injects a clock for deterministic tests
func WithSimulateClock(now func() time.Time) SimulateOption {
	return func(s *Simulate) {
		s.now = now
	}
}

// NewSimulate creates a new Simulate use case
func NewSimulate(engine *priority.Engine, opts ...SimulateOption) *Simulate {
	s := &Simulate{
		engine: engine,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Simulate scores a single hypothetical input. A missing ReportedAt is
// defaulted to the current time so that ad-hoc requests score as if the
// issue were reported right now.
func (u *Simulate) Simulate(ctx context.Context, input *model.PriorityInput) *model.PriorityScore {
	if input != nil && input.ReportedAt.IsZero() {
		withNow := *input
		withNow.ReportedAt = u.now()
		input = &withNow
	}
	return u.engine.Calculate(input)
}

// SimulateBatch scores multiple inputs, preserving order
func (u *Simulate) SimulateBatch(ctx context.Context, inputs []*model.PriorityInput) []*model.PriorityScore {
	scores := make([]*model.PriorityScore, 0, len(inputs))
	for _, input := range inputs {
		scores = append(scores, u.Simulate(ctx, input))
	}
	return scores
}

// Explain returns the engine configuration as data
func (u *Simulate) Explain(ctx context.Context) *priority.Explanation {
	return u.engine.Explain()
}

// Scenarios scores the canonical example suite against the current engine
// configuration. The inputs are fixed; the scores reflect whatever weight
// table the engine was built with. Scenario inputs carry no timestamp and
// set their time bands explicitly, so the output is stable across runs.
func (u *Simulate) Scenarios(ctx context.Context) []*Scenario {
	defs := scenarioSuite()
	scenarios := make([]*Scenario, 0, len(defs))
	for _, def := range defs {
		scenarios = append(scenarios, &Scenario{
			Name:        def.Name,
			Description: def.Description,
			Input:       def.Input,
			Score:       u.engine.Calculate(def.Input),
		})
	}
	return scenarios
}

func scenarioSuite() []*Scenario {
	intp := func(v int) *int { return &v }
	floatp := func(v float64) *float64 { return &v }

	return []*Scenario{
		{
			Name:        "gas-leak-science-building",
			Description: "Gas smell near lab benches during the day, building partially evacuated",
			Input: &model.PriorityInput{
				Category:               types.CategorySafety,
				Severity:               intp(9),
				Occupancy:              intp(200),
				AffectedArea:           floatp(600),
				SafetyRisk:             true,
				CriticalInfrastructure: true,
				BlocksAccess:           true,
				TimeOfDay:              types.TimeOfDayMorning,
				DayOfWeek:              types.DayOfWeekWeekday,
			},
		},
		{
			Name:        "hvac-failure-exam-week",
			Description: "No cooling in a lecture hall with finals scheduled all week",
			Input: &model.PriorityInput{
				Category:         types.CategoryHVAC,
				Severity:         intp(6),
				Occupancy:        intp(80),
				AffectsAcademics: true,
				ExamPeriod:       true,
				CurrentSemester:  true,
				TimeOfDay:        types.TimeOfDayAfternoon,
				DayOfWeek:        types.DayOfWeekWeekday,
			},
		},
		{
			Name:        "recurring-leak-library-roof",
			Description: "Roof leak over the stacks, fourth occurrence this year and getting worse",
			Input: &model.PriorityInput{
				Category:            types.CategoryPlumbing,
				Severity:            intp(5),
				IsRecurring:         true,
				WeatherSensitive:    true,
				PreviousOccurrences: intp(4),
				EscalationRate:      floatp(0.6),
				AvgResolutionTime:   floatp(36),
				TimeOfDay:           types.TimeOfDayMorning,
				DayOfWeek:           types.DayOfWeekWeekday,
			},
		},
		{
			Name:        "projector-outage-lecture-hall",
			Description: "Projector dead in a 300-seat hall, heavily upvoted by students",
			Input: &model.PriorityInput{
				Category:         types.CategoryITEquipment,
				Severity:         intp(4),
				Occupancy:        intp(120),
				AffectsAcademics: true,
				CurrentSemester:  true,
				VoteCount:        12,
				TimeOfDay:        types.TimeOfDayMorning,
				DayOfWeek:        types.DayOfWeekWeekday,
			},
		},
		{
			Name:        "broken-chair-dorm-lounge",
			Description: "One wobbly chair in a common room, reported late on a weekend night",
			Input: &model.PriorityInput{
				Category:  types.CategoryFurniture,
				Severity:  intp(2),
				TimeOfDay: types.TimeOfDayNight,
				DayOfWeek: types.DayOfWeekWeekend,
			},
		},
	}
}
