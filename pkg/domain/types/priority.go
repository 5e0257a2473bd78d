package types

// Priority represents a priority tier derived from the final score
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// String returns the string representation
func (p Priority) String() string {
	return string(p)
}

// IsValid checks if the priority is valid
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

// TimeOfDay represents the reported time-of-day band
type TimeOfDay string

const (
	TimeOfDayMorning   TimeOfDay = "morning"
	TimeOfDayAfternoon TimeOfDay = "afternoon"
	TimeOfDayEvening   TimeOfDay = "evening"
	TimeOfDayNight     TimeOfDay = "night"
)

// String returns the string representation
func (t TimeOfDay) String() string {
	return string(t)
}

// IsValid checks if the time-of-day band is valid
func (t TimeOfDay) IsValid() bool {
	switch t {
	case TimeOfDayMorning, TimeOfDayAfternoon, TimeOfDayEvening, TimeOfDayNight:
		return true
	default:
		return false
	}
}

// DayOfWeek represents the reported weekday/weekend band
type DayOfWeek string

const (
	DayOfWeekWeekday DayOfWeek = "weekday"
	DayOfWeekWeekend DayOfWeek = "weekend"
)

// String returns the string representation
func (d DayOfWeek) String() string {
	return string(d)
}

// IsValid checks if the day-of-week band is valid
func (d DayOfWeek) IsValid() bool {
	return d == DayOfWeekWeekday || d == DayOfWeekWeekend
}
