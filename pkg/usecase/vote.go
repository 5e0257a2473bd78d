package usecase

import (
	"context"
	"time"

	"github.com/civic-lab/fixpoint/pkg/domain/interfaces"
	"github.com/civic-lab/fixpoint/pkg/domain/model"
	"github.com/civic-lab/fixpoint/pkg/domain/types"
	"github.com/civic-lab/fixpoint/pkg/service/priority"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Vote implements VoteUseCase
type Vote struct {
	repo   interfaces.Repository
	engine *priority.Engine
}

// NewVote creates a new Vote use case
func NewVote(repo interfaces.Repository, engine *priority.Engine) *Vote {
	return &Vote{
		repo:   repo,
		engine: engine,
	}
}

// CastVote records a single vote from a user on an issue and rescores the
// issue with the updated vote count. Only the vote-dependent part of the
// score changes; all other attributes are carried over unchanged.
func (u *Vote) CastVote(ctx context.Context, issueID types.IssueID, userID types.UserID) (*model.Issue, error) {
	issue, err := u.repo.GetIssue(ctx, issueID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get issue", goerr.V("id", issueID))
	}

	vote, err := model.NewVote(issueID, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create vote")
	}

	if err := u.repo.PutVote(ctx, vote); err != nil {
		return nil, goerr.Wrap(err, "failed to save vote",
			goerr.V("issueID", issueID),
			goerr.V("userID", userID))
	}

	count, err := u.repo.CountVotes(ctx, issueID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to count votes", goerr.V("issueID", issueID))
	}

	issue.VoteCount = count
	issue.UpdatedAt = time.Now()
	issue.Priority = u.engine.Recalculate(issue.PriorityInput(), &model.PriorityPatch{
		VoteCount: &count,
	})

	if err := u.repo.PutIssue(ctx, issue); err != nil {
		return nil, goerr.Wrap(err, "failed to save issue")
	}

	awardPoints(ctx, u.repo, userID, "", model.PointsCastVote)

	ctxlog.From(ctx).Info("Vote cast",
		"issueID", issueID,
		"userID", userID,
		"voteCount", count,
		"score", issue.Priority.Score,
	)

	return issue, nil
}
