package usecase

import (
	"context"

	"github.com/civic-lab/fixpoint/pkg/domain/interfaces"
	"github.com/civic-lab/fixpoint/pkg/domain/model"
	"github.com/civic-lab/fixpoint/pkg/domain/types"
	"github.com/civic-lab/fixpoint/pkg/service/priority"
)

// IssueUseCase defines the interface for issue lifecycle operations
type IssueUseCase interface {
	// CreateIssue creates a new issue, scores it, and persists it
	CreateIssue(ctx context.Context, req *CreateIssueRequest) (*model.Issue, error)

	// GetIssue retrieves an issue by ID
	GetIssue(ctx context.Context, id types.IssueID) (*model.Issue, error)

	// ListIssues lists issues matching the filter
	ListIssues(ctx context.Context, filter interfaces.IssueFilter) ([]*model.Issue, error)

	// UpdateStatus transitions an issue to a new status and records history
	UpdateStatus(ctx context.Context, id types.IssueID, status types.IssueStatus, changedBy types.UserID, note string) (*model.Issue, error)

	// GetStatusHistory lists the status transitions of an issue
	GetStatusHistory(ctx context.Context, id types.IssueID) ([]*model.StatusHistory, error)
}

// VoteUseCase defines the interface for community voting
type VoteUseCase interface {
	// CastVote records a vote and rescores the issue
	CastVote(ctx context.Context, issueID types.IssueID, userID types.UserID) (*model.Issue, error)
}

// SimulateUseCase defines the interface for admin scoring tooling
type SimulateUseCase interface {
	// Simulate scores an input without persisting anything
	Simulate(ctx context.Context, input *model.PriorityInput) *model.PriorityScore

	// SimulateBatch scores multiple inputs, preserving order
	SimulateBatch(ctx context.Context, inputs []*model.PriorityInput) []*model.PriorityScore

	// Explain returns the engine configuration as data
	Explain(ctx context.Context) *priority.Explanation

	// Scenarios scores the canonical example suite
	Scenarios(ctx context.Context) []*Scenario
}
