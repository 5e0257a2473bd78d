package interfaces

import (
	"context"

	"github.com/civic-lab/fixpoint/pkg/domain/model"
	"github.com/civic-lab/fixpoint/pkg/domain/types"
)

// IssueFilter narrows ListIssues results. Zero values match everything.
type IssueFilter struct {
	Status   types.IssueStatus
	Category types.Category
	Limit    int
}

// Repository defines the interface for data persistence
type Repository interface {
	// Issue operations
	PutIssue(ctx context.Context, issue *model.Issue) error
	GetIssue(ctx context.Context, id types.IssueID) (*model.Issue, error)
	ListIssues(ctx context.Context, filter IssueFilter) ([]*model.Issue, error)
	GetNextIssueNumber(ctx context.Context) (types.IssueID, error)

	// Vote operations
	PutVote(ctx context.Context, vote *model.Vote) error
	CountVotes(ctx context.Context, issueID types.IssueID) (int, error)
	ListVotes(ctx context.Context, issueID types.IssueID) ([]*model.Vote, error)

	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id types.UserID) (*model.User, error)

	// Status history operations
	AddStatusHistory(ctx context.Context, history *model.StatusHistory) error
	ListStatusHistory(ctx context.Context, issueID types.IssueID) ([]*model.StatusHistory, error)

	// Close closes the repository connection
	Close() error
}
