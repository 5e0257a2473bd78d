package model

import (
	"time"

	"github.com/civic-lab/fixpoint/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// StatusHistory represents a status change history entry
type StatusHistory struct {
	ID        types.StatusHistoryID `json:"id" bson:"_id"`
	IssueID   types.IssueID         `json:"issueId" bson:"issue_id"`
	Status    types.IssueStatus     `json:"status" bson:"status"`
	ChangedBy types.UserID          `json:"changedBy" bson:"changed_by"`
	ChangedAt time.Time             `json:"changedAt" bson:"changed_at"`
	Note      string                `json:"note,omitempty" bson:"note,omitempty"`
}

// NewStatusHistory creates a new status history entry
func NewStatusHistory(issueID types.IssueID, status types.IssueStatus, changedBy types.UserID, note string) (*StatusHistory, error) {
	if err := issueID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid issue ID")
	}

	if !status.IsValid() {
		return nil, goerr.New("invalid status", goerr.V("status", status))
	}

	if changedBy == "" {
		return nil, goerr.New("changed by user ID is required")
	}

	return &StatusHistory{
		ID:        types.NewStatusHistoryID(),
		IssueID:   issueID,
		Status:    status,
		ChangedBy: changedBy,
		ChangedAt: time.Now(),
		Note:      note,
	}, nil
}

// Validate validates the status history entry
func (sh *StatusHistory) Validate() error {
	if err := sh.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid status history ID")
	}

	if err := sh.IssueID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid issue ID")
	}

	if !sh.Status.IsValid() {
		return goerr.New("invalid status", goerr.V("status", sh.Status))
	}

	if sh.ChangedBy == "" {
		return goerr.New("changed by user ID is required")
	}

	if sh.ChangedAt.IsZero() {
		return goerr.New("changed at timestamp is required")
	}

	return nil
}
