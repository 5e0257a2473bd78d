package types

// IssueStatus represents the lifecycle status of an issue
type IssueStatus string

const (
	IssueStatusOpen       IssueStatus = "open"
	IssueStatusTriaged    IssueStatus = "triaged"
	IssueStatusInProgress IssueStatus = "in_progress"
	IssueStatusResolved   IssueStatus = "resolved"
	IssueStatusClosed     IssueStatus = "closed"
)

// String returns the string representation of the status
func (s IssueStatus) String() string {
	return string(s)
}

// IsValid checks if the status is valid
func (s IssueStatus) IsValid() bool {
	switch s {
	case IssueStatusOpen, IssueStatusTriaged, IssueStatusInProgress,
		IssueStatusResolved, IssueStatusClosed:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further transitions are expected
func (s IssueStatus) IsTerminal() bool {
	return s == IssueStatusClosed
}
