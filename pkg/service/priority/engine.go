// Package priority implements the deterministic priority scoring engine.
// It converts a partially-populated issue description into a reproducible
// urgency score, a priority tier, a recommended resolution deadline, a
// confidence estimate, and tagged human-readable reasoning. The engine is
// pure: it performs no I/O, holds no mutable state, and never fails. It is
// safe for unbounded concurrent use.
package priority

import (
	"math"
	"time"

	"github.com/civic-lab/fixpoint/pkg/domain/model"
	"github.com/civic-lab/fixpoint/pkg/domain/types"
)

// Aggregation weights for the seven sub-scores. They sum to exactly 1.00.
const (
	weightCategory   = 0.22
	weightSeverity   = 0.18
	weightImpact     = 0.22
	weightUrgency    = 0.13
	weightContext    = 0.10
	weightHistorical = 0.05
	weightVote       = 0.10
)

// Tier thresholds, checked in descending order
const (
	thresholdCritical = 80
	thresholdHigh     = 60
	thresholdMedium   = 40
)

// Engine calculates priority scores. It is immutable after construction
// and safe for unsynchronized concurrent reads.
type Engine struct {
	weights map[types.Category]model.CategoryWeight
	now     func() time.Time
}

// Option is a functional option for configuring the Engine
type Option func(*Engine)

// WithWeights overrides the built-in category weight table
func WithWeights(weights []model.CategoryWeight) Option {
	return func(e *Engine) {
		cfg := model.WeightsConfig{Weights: weights}
		e.weights = cfg.Table()
	}
}

// WithClock overrides the clock used for report-age adjustments
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine. Without options it uses the default weight table
// and the system clock. The fallback entry for CategoryOther is always
// present so that scoring stays total.
func New(opts ...Option) *Engine {
	e := &Engine{
		now: time.Now,
	}
	WithWeights(DefaultWeights())(e)

	for _, opt := range opts {
		opt(e)
	}

	if _, ok := e.weights[types.CategoryOther]; !ok {
		e.weights[types.CategoryOther] = model.CategoryWeight{
			Category:   types.CategoryOther,
			BaseScore:  35,
			Multiplier: 1.0,
			SLAHours:   48,
		}
	}

	return e
}

// Calculate scores a single issue description. It is total over its input
// domain: missing optional fields take documented defaults and unknown
// categories fall back to the CategoryOther entry.
func (e *Engine) Calculate(input *model.PriorityInput) *model.PriorityScore {
	if input == nil {
		input = &model.PriorityInput{}
	}

	now := e.now()
	w := e.lookup(input.Category)

	breakdown := model.Breakdown{
		Category:   categoryScore(input, w),
		Severity:   severityScore(input, w),
		Impact:     impactScore(input),
		Urgency:    urgencyScore(input, now),
		Context:    contextScore(input),
		Historical: historicalScore(input),
		Vote:       voteScore(input.VoteCount),
	}

	raw := float64(breakdown.Category)*weightCategory +
		float64(breakdown.Severity)*weightSeverity +
		float64(breakdown.Impact)*weightImpact +
		float64(breakdown.Urgency)*weightUrgency +
		float64(breakdown.Context)*weightContext +
		float64(breakdown.Historical)*weightHistorical +
		float64(breakdown.Vote)*weightVote

	// The category multiplier scales the aggregate so the same weighted sum
	// lands higher for high-risk categories. Clamp before rounding to keep
	// the result within [0,100].
	score := int(math.Round(clampFloat(raw*w.Multiplier, 0, 100)))

	tier := tierFor(score)

	return &model.PriorityScore{
		Score:          score,
		Priority:       tier,
		Confidence:     confidence(input),
		Breakdown:      breakdown,
		Reasoning:      buildReasoning(input, w, score),
		RecommendedSLA: recommendedSLA(score, w.SLAHours),
		CalculatedAt:   now,
	}
}

// BatchCalculate scores multiple inputs, preserving input order
func (e *Engine) BatchCalculate(inputs []*model.PriorityInput) []*model.PriorityScore {
	scores := make([]*model.PriorityScore, len(inputs))
	for i, input := range inputs {
		scores[i] = e.Calculate(input)
	}
	return scores
}

// Recalculate merges the patch over the original input and scores the
// merged value. The engine keeps no memory of prior calls.
func (e *Engine) Recalculate(original *model.PriorityInput, patch *model.PriorityPatch) *model.PriorityScore {
	if original == nil {
		original = &model.PriorityInput{}
	}
	merged := patch.Apply(*original)
	return e.Calculate(&merged)
}

// tierFor maps a final score to a priority tier
func tierFor(score int) types.Priority {
	switch {
	case score >= thresholdCritical:
		return types.PriorityCritical
	case score >= thresholdHigh:
		return types.PriorityHigh
	case score >= thresholdMedium:
		return types.PriorityMedium
	default:
		return types.PriorityLow
	}
}

// recommendedSLA returns the recommended resolution deadline in hours.
// The score-driven ceiling tightens the category baseline but never
// loosens it.
func recommendedSLA(score, baselineHours int) int {
	var ceiling int
	switch {
	case score >= 90:
		ceiling = 2
	case score >= 80:
		ceiling = 4
	case score >= 70:
		ceiling = 8
	case score >= 60:
		ceiling = 12
	case score >= 50:
		ceiling = 24
	default:
		return baselineHours
	}

	if ceiling < baselineHours {
		return ceiling
	}
	return baselineHours
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
