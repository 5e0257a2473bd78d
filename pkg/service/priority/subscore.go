package priority

import (
	"math"
	"time"

	"github.com/civic-lab/fixpoint/pkg/domain/model"
	"github.com/civic-lab/fixpoint/pkg/domain/types"
)

// Booster and default constants shared by the sub-score calculators.
// They are exposed as data through Explain.
const (
	criticalInfraBoost = 15
	safetyRiskBoost    = 20

	defaultSeverity = 5

	blocksAccessBoost = 25
	academicsBoost    = 15

	urgencyBase        = 50
	recurringBoost     = 20
	occurrenceBoost    = 3
	occurrenceBoostCap = 15
	weatherBoost       = 10
	staleDiscount      = 10
	freshBoost         = 10
	staleAge           = 72 * time.Hour
	freshAge           = time.Hour

	contextBase     = 50
	examBoost       = 30
	semesterBoost   = 10
	daytimeBoost    = 10
	nightDiscount   = 10
	weekendDiscount = 15

	historicalBase   = 50
	escalationWeight = 30
	voteScale        = 33
	voteCap          = 70
)

// categoryScore encodes the baseline urgency of the category plus explicit
// risk flags as additive escalators independent of category.
func categoryScore(input *model.PriorityInput, w model.CategoryWeight) int {
	score := w.BaseScore
	if input.CriticalInfrastructure {
		score += criticalInfraBoost
	}
	if input.SafetyRisk {
		score += safetyRiskBoost
	}
	return clampInt(score, 0, 100)
}

// severityScore scales the caller-asserted 1-10 severity by the category
// multiplier so the same value carries more weight for riskier categories.
// Missing severity defaults to the midpoint.
func severityScore(input *model.PriorityInput, w model.CategoryWeight) int {
	severity := defaultSeverity
	if input.Severity != nil {
		severity = *input.Severity
	}
	score := float64(severity) * 10 * w.Multiplier
	return clampInt(int(math.Round(score)), 0, 100)
}

// impactScore sums capped contributions from occupancy, affected area, and
// disruption flags.
func impactScore(input *model.PriorityInput) int {
	score := 0

	occupancy := 0
	if input.Occupancy != nil {
		occupancy = *input.Occupancy
	}
	switch {
	case occupancy > 100:
		score += 40
	case occupancy > 50:
		score += 30
	case occupancy > 20:
		score += 20
	case occupancy > 5:
		score += 10
	default:
		score += 5
	}

	area := 0.0
	if input.AffectedArea != nil {
		area = *input.AffectedArea
	}
	switch {
	case area > 500:
		score += 20
	case area > 200:
		score += 15
	case area > 50:
		score += 10
	default:
		score += 5
	}

	if input.BlocksAccess {
		score += blocksAccessBoost
	}
	if input.AffectsAcademics {
		score += academicsBoost
	}

	return clampInt(score, 0, 100)
}

// urgencyScore captures temporal urgency independent of category and
// impact: recurrence, weather exposure, and report age.
func urgencyScore(input *model.PriorityInput, now time.Time) int {
	score := urgencyBase

	if input.IsRecurring {
		score += recurringBoost
	}
	if input.PreviousOccurrences != nil && *input.PreviousOccurrences > 0 {
		boost := *input.PreviousOccurrences * occurrenceBoost
		if boost > occurrenceBoostCap {
			boost = occurrenceBoostCap
		}
		score += boost
	}
	if input.WeatherSensitive {
		score += weatherBoost
	}

	if !input.ReportedAt.IsZero() {
		age := now.Sub(input.ReportedAt)
		if age > staleAge {
			score -= staleDiscount
		} else if age < freshAge {
			score += freshBoost
		}
	}

	return clampInt(score, 0, 100)
}

// contextScore adjusts for campus calendar and clock context. Safety-relevant
// issues are never discounted for off-hours.
func contextScore(input *model.PriorityInput) int {
	score := contextBase

	if input.ExamPeriod {
		score += examBoost
	}
	if input.CurrentSemester {
		score += semesterBoost
	}

	switch input.TimeOfDay {
	case types.TimeOfDayMorning, types.TimeOfDayAfternoon:
		score += daytimeBoost
	case types.TimeOfDayNight:
		score -= nightDiscount
	}

	if input.DayOfWeek == types.DayOfWeekWeekend && !safetyRelevant(input) {
		score -= weekendDiscount
	}

	return clampInt(score, 0, 100)
}

// safetyRelevant reports whether the issue is exempt from off-hours
// discounts.
func safetyRelevant(input *model.PriorityInput) bool {
	if input.SafetyRisk {
		return true
	}
	return input.Category == types.CategorySafety || input.Category == types.CategoryStructural
}

// historicalScore encodes "issues of this type historically get worse if
// ignored": escalation rate, resolution time, and historical cost.
func historicalScore(input *model.PriorityInput) int {
	score := historicalBase

	if input.EscalationRate != nil {
		rate := clampFloat(*input.EscalationRate, 0, 1)
		score += int(math.Round(rate * escalationWeight))
	}

	resolution := 0.0
	if input.AvgResolutionTime != nil {
		resolution = *input.AvgResolutionTime
	}
	switch {
	case resolution > 72:
		score += 20
	case resolution > 48:
		score += 15
	case resolution > 24:
		score += 10
	default:
		score += 5
	}

	cost := 0.0
	if input.HistoricalCostAvg != nil {
		cost = *input.HistoricalCostAvg
	}
	switch {
	case cost > 50000:
		score += 15
	case cost > 20000:
		score += 10
	case cost > 5000:
		score += 5
	}

	return clampInt(score, 0, 100)
}

// voteScore converts community upvotes with logarithmic diminishing
// returns: early votes matter disproportionately, and the cap keeps
// community sentiment from overriding safety signals.
func voteScore(votes int) int {
	if votes <= 0 {
		return 0
	}
	score := math.Log10(float64(votes)+1) * voteScale
	if score > voteCap {
		score = voteCap
	}
	return int(math.Round(score))
}
