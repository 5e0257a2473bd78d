package repository_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/civic-lab/fixpoint/pkg/domain/interfaces"
	"github.com/civic-lab/fixpoint/pkg/domain/model"
	"github.com/civic-lab/fixpoint/pkg/domain/types"
	"github.com/civic-lab/fixpoint/pkg/repository"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
)

func newTestIssue(t *testing.T, repo interfaces.Repository) *model.Issue {
	t.Helper()

	ctx := context.Background()
	id, err := repo.GetNextIssueNumber(ctx)
	gt.NoError(t, err)

	issue, err := model.NewIssue(id, fmt.Sprintf("leaking pipe %d", time.Now().UnixNano()),
		types.CategoryPlumbing, types.UserID("user-reporter"))
	gt.NoError(t, err)

	return issue
}

func testRepository(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Run("PutAndGetIssue", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		ctx := context.Background()
		issue := newTestIssue(t, repo)

		gt.NoError(t, repo.PutIssue(ctx, issue))

		retrieved, err := repo.GetIssue(ctx, issue.ID)
		gt.NoError(t, err)
		gt.Equal(t, retrieved.ID, issue.ID)
		gt.Equal(t, retrieved.Title, issue.Title)
		gt.Equal(t, retrieved.Slug, issue.Slug)
		gt.Equal(t, retrieved.Category, issue.Category)
		gt.Equal(t, retrieved.Status, types.IssueStatusOpen)
		gt.Equal(t, retrieved.ReportedBy, issue.ReportedBy)
	})

	t.Run("GetIssueNotFound", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		ctx := context.Background()
		_, err := repo.GetIssue(ctx, types.IssueID(999999))
		gt.Error(t, err)
	})

	t.Run("UpdateIssue", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		ctx := context.Background()
		issue := newTestIssue(t, repo)
		gt.NoError(t, repo.PutIssue(ctx, issue))

		issue.Status = types.IssueStatusTriaged
		issue.VoteCount = 5
		gt.NoError(t, repo.PutIssue(ctx, issue))

		retrieved, err := repo.GetIssue(ctx, issue.ID)
		gt.NoError(t, err)
		gt.Equal(t, retrieved.Status, types.IssueStatusTriaged)
		gt.Equal(t, retrieved.VoteCount, 5)
	})

	t.Run("ListIssuesFilter", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		ctx := context.Background()

		open := newTestIssue(t, repo)
		gt.NoError(t, repo.PutIssue(ctx, open))

		closed := newTestIssue(t, repo)
		closed.Status = types.IssueStatusClosed
		gt.NoError(t, repo.PutIssue(ctx, closed))

		issues, err := repo.ListIssues(ctx, interfaces.IssueFilter{Status: types.IssueStatusOpen})
		gt.NoError(t, err)
		for _, issue := range issues {
			gt.Equal(t, issue.Status, types.IssueStatusOpen)
		}

		issues, err = repo.ListIssues(ctx, interfaces.IssueFilter{Category: types.CategoryPlumbing, Limit: 1})
		gt.NoError(t, err)
		gt.True(t, len(issues) <= 1)
	})

	t.Run("NextIssueNumberIncrements", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		ctx := context.Background()
		first, err := repo.GetNextIssueNumber(ctx)
		gt.NoError(t, err)
		second, err := repo.GetNextIssueNumber(ctx)
		gt.NoError(t, err)
		gt.Equal(t, second, first+1)
	})

	t.Run("VoteOncePerUser", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		ctx := context.Background()
		issue := newTestIssue(t, repo)
		gt.NoError(t, repo.PutIssue(ctx, issue))

		vote, err := model.NewVote(issue.ID, types.UserID("voter-1"))
		gt.NoError(t, err)
		gt.NoError(t, repo.PutVote(ctx, vote))

		// Second vote by the same user is rejected
		again, err := model.NewVote(issue.ID, types.UserID("voter-1"))
		gt.NoError(t, err)
		err = repo.PutVote(ctx, again)
		gt.Error(t, err)

		other, err := model.NewVote(issue.ID, types.UserID("voter-2"))
		gt.NoError(t, err)
		gt.NoError(t, repo.PutVote(ctx, other))

		count, err := repo.CountVotes(ctx, issue.ID)
		gt.NoError(t, err)
		gt.Equal(t, count, 2)

		votes, err := repo.ListVotes(ctx, issue.ID)
		gt.NoError(t, err)
		gt.Equal(t, len(votes), 2)
	})

	t.Run("SaveAndGetUser", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		ctx := context.Background()
		user := model.NewUser(types.NewUserID(), "Test Reporter", "reporter@example.edu")
		user.AddPoints(model.PointsReportIssue)

		gt.NoError(t, repo.SaveUser(ctx, user))

		retrieved, err := repo.GetUser(ctx, user.ID)
		gt.NoError(t, err)
		gt.Equal(t, retrieved.Name, user.Name)
		gt.Equal(t, retrieved.Points, model.PointsReportIssue)
	})

	t.Run("StatusHistoryOrder", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		ctx := context.Background()
		issue := newTestIssue(t, repo)
		gt.NoError(t, repo.PutIssue(ctx, issue))

		for _, status := range []types.IssueStatus{
			types.IssueStatusTriaged,
			types.IssueStatusInProgress,
			types.IssueStatusResolved,
		} {
			entry, err := model.NewStatusHistory(issue.ID, status, types.UserID("admin-1"), "")
			gt.NoError(t, err)
			gt.NoError(t, repo.AddStatusHistory(ctx, entry))
			time.Sleep(time.Millisecond)
		}

		entries, err := repo.ListStatusHistory(ctx, issue.ID)
		gt.NoError(t, err)
		gt.Equal(t, len(entries), 3)
		gt.Equal(t, entries[0].Status, types.IssueStatusTriaged)
		gt.Equal(t, entries[2].Status, types.IssueStatusResolved)
	})
}

func TestMemoryRepository(t *testing.T) {
	testRepository(t, func(t *testing.T) interfaces.Repository {
		return repository.NewMemory()
	})
}

func TestFirestoreRepository(t *testing.T) {
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT")
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE")

	if projectID == "" || databaseID == "" {
		t.Skip("Skipping Firestore test: TEST_FIRESTORE_PROJECT and TEST_FIRESTORE_DATABASE must be set")
	}

	testRepository(t, func(t *testing.T) interfaces.Repository {
		ctx := ctxlog.With(context.Background(), slog.Default())
		repo, err := repository.NewFirestore(ctx, projectID, databaseID)
		gt.NoError(t, err)
		return repo
	})
}

func TestMongoRepository(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	database := os.Getenv("TEST_MONGO_DATABASE")

	if uri == "" || database == "" {
		t.Skip("Skipping MongoDB test: TEST_MONGO_URI and TEST_MONGO_DATABASE must be set")
	}

	testRepository(t, func(t *testing.T) interfaces.Repository {
		ctx := ctxlog.With(context.Background(), slog.Default())
		repo, err := repository.NewMongo(ctx, uri, database)
		gt.NoError(t, err)
		return repo
	})
}
