package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/civic-lab/fixpoint/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Issue represents a reported infrastructure issue
type Issue struct {
	ID          types.IssueID     `json:"id" bson:"_id"`
	Title       string            `json:"title" bson:"title"`
	Slug        string            `json:"slug" bson:"slug"` // URL-safe reference (e.g., "iss-12-broken-heater")
	Description string            `json:"description,omitempty" bson:"description,omitempty"`
	Category    types.Category    `json:"category" bson:"category"`
	Status      types.IssueStatus `json:"status" bson:"status"`
	BuildingID  string            `json:"buildingId,omitempty" bson:"building_id,omitempty"`
	RoomID      string            `json:"roomId,omitempty" bson:"room_id,omitempty"`
	ReportedBy  types.UserID      `json:"reportedBy" bson:"reported_by"`
	ReportedAt  time.Time         `json:"reportedAt" bson:"reported_at"`
	UpdatedAt   time.Time         `json:"updatedAt" bson:"updated_at"`

	// Attributes feeding priority scoring
	Severity               *int           `json:"severity,omitempty" bson:"severity,omitempty"`
	Occupancy              *int           `json:"occupancy,omitempty" bson:"occupancy,omitempty"`
	AffectedArea           *float64       `json:"affectedArea,omitempty" bson:"affected_area,omitempty"`
	IsRecurring            bool           `json:"isRecurring,omitempty" bson:"is_recurring,omitempty"`
	BlocksAccess           bool           `json:"blocksAccess,omitempty" bson:"blocks_access,omitempty"`
	SafetyRisk             bool           `json:"safetyRisk,omitempty" bson:"safety_risk,omitempty"`
	CriticalInfrastructure bool           `json:"criticalInfrastructure,omitempty" bson:"critical_infrastructure,omitempty"`
	AffectsAcademics       bool           `json:"affectsAcademics,omitempty" bson:"affects_academics,omitempty"`
	WeatherSensitive       bool           `json:"weatherSensitive,omitempty" bson:"weather_sensitive,omitempty"`
	ExamPeriod             bool           `json:"examPeriod,omitempty" bson:"exam_period,omitempty"`
	CurrentSemester        bool           `json:"currentSemester,omitempty" bson:"current_semester,omitempty"`
	VoteCount              int            `json:"voteCount" bson:"vote_count"`
	Priority               *PriorityScore `json:"priority,omitempty" bson:"priority,omitempty"`
}

// NewIssue creates a new Issue instance
func NewIssue(id types.IssueID, title string, category types.Category, reportedBy types.UserID) (*Issue, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, goerr.New("issue title is required")
	}
	if reportedBy == "" {
		return nil, goerr.New("reporter user ID is required")
	}
	if !category.IsValid() {
		category = types.CategoryOther
	}

	now := time.Now()
	return &Issue{
		ID:         id,
		Title:      title,
		Slug:       formatIssueSlug(id, title),
		Category:   category,
		Status:     types.IssueStatusOpen,
		ReportedBy: reportedBy,
		ReportedAt: now,
		UpdatedAt:  now,
	}, nil
}

// PriorityInput builds the scoring input for this issue. Time-of-day and
// day-of-week bands are derived from the report timestamp. History fields
// (previous occurrences, resolution time, cost, escalation rate) come from
// aggregated records the issue itself does not carry, so the caller supplies
// them through the returned value if available.
func (x *Issue) PriorityInput() *PriorityInput {
	return &PriorityInput{
		Category:               x.Category,
		ReportedAt:             x.ReportedAt,
		Description:            x.Description,
		BuildingID:             x.BuildingID,
		RoomID:                 x.RoomID,
		Severity:               x.Severity,
		Occupancy:              x.Occupancy,
		AffectedArea:           x.AffectedArea,
		IsRecurring:            x.IsRecurring,
		BlocksAccess:           x.BlocksAccess,
		SafetyRisk:             x.SafetyRisk,
		CriticalInfrastructure: x.CriticalInfrastructure,
		AffectsAcademics:       x.AffectsAcademics,
		WeatherSensitive:       x.WeatherSensitive,
		ExamPeriod:             x.ExamPeriod,
		CurrentSemester:        x.CurrentSemester,
		TimeOfDay:              TimeOfDayBand(x.ReportedAt),
		DayOfWeek:              DayOfWeekBand(x.ReportedAt),
		VoteCount:              x.VoteCount,
	}
}

// TimeOfDayBand maps a timestamp to its time-of-day band. A zero timestamp
// yields no band.
func TimeOfDayBand(t time.Time) types.TimeOfDay {
	if t.IsZero() {
		return ""
	}
	switch hour := t.Hour(); {
	case hour >= 6 && hour < 12:
		return types.TimeOfDayMorning
	case hour >= 12 && hour < 18:
		return types.TimeOfDayAfternoon
	case hour >= 18 && hour < 22:
		return types.TimeOfDayEvening
	default:
		return types.TimeOfDayNight
	}
}

// DayOfWeekBand maps a timestamp to its weekday/weekend band. A zero
// timestamp yields no band.
func DayOfWeekBand(t time.Time) types.DayOfWeek {
	if t.IsZero() {
		return ""
	}
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return types.DayOfWeekWeekend
	default:
		return types.DayOfWeekWeekday
	}
}

// formatIssueSlug creates a URL-safe reference from issue ID and title
func formatIssueSlug(id types.IssueID, title string) string {
	base := fmt.Sprintf("iss-%d", id.Int())

	if title == "" {
		return base
	}

	sanitized := sanitizeForSlug(title)
	if sanitized == "" {
		return base
	}

	return fmt.Sprintf("%s-%s", base, sanitized)
}

// sanitizeForSlug converts text to a lowercase, hyphen-separated slug.
// Symbols are replaced with hyphens, multibyte characters are preserved.
// Length limit is interpreted as 80 bytes (safe side).
func sanitizeForSlug(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder

	for _, r := range text {
		switch {
		case unicode.IsSpace(r) || r == '.':
			result.WriteRune('-')
		case r >= 'A' && r <= 'Z':
			result.WriteRune(unicode.ToLower(r))
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_':
			result.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			// Keep multibyte letters and numbers
			result.WriteRune(r)
		default:
			result.WriteRune('-')
		}
	}

	text = result.String()

	// Remove consecutive hyphens
	re := regexp.MustCompile(`-+`)
	text = re.ReplaceAllString(text, "-")

	// Remove leading/trailing hyphens
	text = strings.Trim(text, "-")

	// Limit length (80 bytes total, "iss-XXX-" is 8 bytes, so 72 bytes left for title)
	maxTitleBytes := 72
	if len(text) > maxTitleBytes {
		// Truncate at byte boundary, not character boundary for safety
		text = text[:maxTitleBytes]
	}

	text = strings.TrimRight(text, "-")

	return text
}

// Validate validates the issue
func (x *Issue) Validate() error {
	if err := x.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid issue ID")
	}
	if x.Title == "" {
		return goerr.New("issue title is required")
	}
	if !x.Category.IsValid() {
		return goerr.New("invalid category", goerr.V("category", x.Category))
	}
	if !x.Status.IsValid() {
		return goerr.New("invalid status", goerr.V("status", x.Status))
	}
	if x.ReportedBy == "" {
		return goerr.New("reporter user ID is required")
	}
	if x.Severity != nil && (*x.Severity < 1 || *x.Severity > 10) {
		return goerr.New("severity must be between 1 and 10",
			goerr.V("severity", *x.Severity))
	}
	if x.VoteCount < 0 {
		return goerr.New("vote count must not be negative",
			goerr.V("voteCount", x.VoteCount))
	}
	return nil
}
