package priority

import (
	"fmt"

	"github.com/civic-lab/fixpoint/pkg/domain/model"
	"github.com/civic-lab/fixpoint/pkg/domain/types"
)

// Reasoning thresholds
const (
	highRiskBaseScore  = 70
	highOccupancy      = 50
	highEscalationRate = 0.5
	strongVoteSupport  = 10
)

// buildReasoning produces the ordered, deterministic reasoning list. Each
// line is gated by one triggered condition and carries a structured tag so
// consumers can assert on conditions without matching prose. The list is
// terminated by exactly one tier-summary line keyed on the final score band.
func buildReasoning(input *model.PriorityInput, w model.CategoryWeight, score int) []model.Reason {
	var reasons []model.Reason

	if w.BaseScore >= highRiskBaseScore {
		reasons = append(reasons, model.Reason{
			Tag:     model.ReasonHighRiskCategory,
			Message: fmt.Sprintf("Category %q carries a high baseline urgency", input.Category),
		})
	}

	if input.SafetyRisk {
		reasons = append(reasons, model.Reason{
			Tag:     model.ReasonSafetyRisk,
			Message: "Reported as a safety risk",
		})
	}

	if input.Occupancy != nil && *input.Occupancy > highOccupancy {
		reasons = append(reasons, model.Reason{
			Tag:     model.ReasonHighOccupancy,
			Message: fmt.Sprintf("Affects a large number of people (%d)", *input.Occupancy),
		})
	}

	if input.BlocksAccess {
		reasons = append(reasons, model.Reason{
			Tag:     model.ReasonBlocksAccess,
			Message: "Blocks access to affected area",
		})
	}

	if input.AffectsAcademics {
		reasons = append(reasons, model.Reason{
			Tag:     model.ReasonAcademicDisruption,
			Message: "Disrupts academic activities",
		})
	}

	if input.IsRecurring {
		msg := "Recurring issue"
		if input.PreviousOccurrences != nil && *input.PreviousOccurrences > 0 {
			msg = fmt.Sprintf("Recurring issue (%d previous occurrences)", *input.PreviousOccurrences)
		}
		reasons = append(reasons, model.Reason{
			Tag:     model.ReasonRecurring,
			Message: msg,
		})
	}

	if input.ExamPeriod {
		reasons = append(reasons, model.Reason{
			Tag:     model.ReasonExamPeriod,
			Message: "Reported during an exam period",
		})
	}

	if input.CriticalInfrastructure {
		reasons = append(reasons, model.Reason{
			Tag:     model.ReasonCriticalInfrastructure,
			Message: "Involves critical infrastructure",
		})
	}

	if input.EscalationRate != nil && *input.EscalationRate >= highEscalationRate {
		reasons = append(reasons, model.Reason{
			Tag:     model.ReasonEscalating,
			Message: fmt.Sprintf("Issues of this type historically escalate (rate %.0f%%)", *input.EscalationRate*100),
		})
	}

	if input.VoteCount >= strongVoteSupport {
		reasons = append(reasons, model.Reason{
			Tag:     model.ReasonCommunityVotes,
			Message: fmt.Sprintf("Strong community support (%d votes)", input.VoteCount),
		})
	} else if input.VoteCount > 0 {
		reasons = append(reasons, model.Reason{
			Tag:     model.ReasonCommunityVotes,
			Message: fmt.Sprintf("Upvoted by the community (%d votes)", input.VoteCount),
		})
	}

	reasons = append(reasons, model.Reason{
		Tag:     model.ReasonTierSummary,
		Message: tierSummary(score),
	})

	return reasons
}

// tierSummary returns the closing summary line for the final score band
func tierSummary(score int) string {
	switch tierFor(score) {
	case types.PriorityCritical:
		return fmt.Sprintf("Critical priority (score %d): immediate response required", score)
	case types.PriorityHigh:
		return fmt.Sprintf("High priority (score %d): respond within the working day", score)
	case types.PriorityMedium:
		return fmt.Sprintf("Medium priority (score %d): schedule for resolution", score)
	default:
		return fmt.Sprintf("Low priority (score %d): handle during routine maintenance", score)
	}
}
