package model

import (
	"time"

	"github.com/civic-lab/fixpoint/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Vote represents a community upvote on an issue. A user may vote at most
// once per issue; the repository enforces uniqueness on (IssueID, UserID).
type Vote struct {
	ID      types.VoteID  `json:"id" bson:"_id"`
	IssueID types.IssueID `json:"issueId" bson:"issue_id"`
	UserID  types.UserID  `json:"userId" bson:"user_id"`
	CastAt  time.Time     `json:"castAt" bson:"cast_at"`
}

// NewVote creates a new Vote instance
func NewVote(issueID types.IssueID, userID types.UserID) (*Vote, error) {
	if err := issueID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid issue ID")
	}
	if userID == "" {
		return nil, goerr.New("voter user ID is required")
	}

	return &Vote{
		ID:      types.NewVoteID(),
		IssueID: issueID,
		UserID:  userID,
		CastAt:  time.Now(),
	}, nil
}
