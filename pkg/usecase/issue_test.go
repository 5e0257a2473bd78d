package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/civic-lab/fixpoint/pkg/domain/interfaces"
	"github.com/civic-lab/fixpoint/pkg/domain/model"
	"github.com/civic-lab/fixpoint/pkg/domain/types"
	"github.com/civic-lab/fixpoint/pkg/repository"
	"github.com/civic-lab/fixpoint/pkg/service/priority"
	"github.com/civic-lab/fixpoint/pkg/usecase"
	"github.com/m-mizutani/gt"
)

var testNow = time.Date(2026, 5, 11, 12, 0, 0, 0, time.UTC)

func newEngine() *priority.Engine {
	return priority.New(priority.WithClock(func() time.Time { return testNow }))
}

func intPtr(v int) *int { return &v }

func TestCreateIssue(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	uc := usecase.NewIssue(repo, newEngine())

	reporter := types.NewUserID()
	issue, err := uc.CreateIssue(ctx, &usecase.CreateIssueRequest{
		Title:        "Water leak in stairwell",
		Category:     "plumbing",
		BuildingID:   "bldg-7",
		RoomID:       "stairwell-2",
		ReportedBy:   reporter,
		ReporterName: "Dana",
		Severity:     intPtr(6),
		SafetyRisk:   true,
	})
	gt.NoError(t, err)
	gt.V(t, issue).NotNil()
	gt.Equal(t, issue.ID, types.IssueID(1))
	gt.Equal(t, issue.Status, types.IssueStatusOpen)
	gt.Equal(t, issue.Category, types.CategoryPlumbing)
	gt.V(t, issue.Priority).NotNil()
	gt.True(t, issue.Priority.Score > 0)
	gt.True(t, issue.Priority.HasReason(model.ReasonSafetyRisk))

	// persisted copy matches
	stored, err := repo.GetIssue(ctx, issue.ID)
	gt.NoError(t, err)
	gt.Equal(t, stored.Title, issue.Title)
	gt.Equal(t, stored.Priority.Score, issue.Priority.Score)

	// reporter earned points
	user, err := repo.GetUser(ctx, reporter)
	gt.NoError(t, err)
	gt.Equal(t, user.Points, model.PointsReportIssue)
	gt.Equal(t, user.Name, "Dana")
}

func TestCreateIssueValidation(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewIssue(repository.NewMemory(), newEngine())

	cases := map[string]*usecase.CreateIssueRequest{
		"missing title": {
			Category:   "plumbing",
			ReportedBy: types.NewUserID(),
		},
		"missing category": {
			Title:      "Broken window",
			ReportedBy: types.NewUserID(),
		},
		"missing reporter": {
			Title:    "Broken window",
			Category: "structural",
		},
		"severity out of range": {
			Title:      "Broken window",
			Category:   "structural",
			ReportedBy: types.NewUserID(),
			Severity:   intPtr(11),
		},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.CreateIssue(ctx, req)
			gt.Error(t, err)
		})
	}

	_, err := uc.CreateIssue(ctx, nil)
	gt.Error(t, err)
}

func TestCreateIssueUnknownCategory(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewIssue(repository.NewMemory(), newEngine())

	issue, err := uc.CreateIssue(ctx, &usecase.CreateIssueRequest{
		Title:      "Mystery smell in hallway",
		Category:   "paranormal",
		ReportedBy: types.NewUserID(),
	})
	gt.NoError(t, err)
	gt.Equal(t, issue.Category, types.CategoryOther)
}

func TestCreateIssueSerialIDs(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewIssue(repository.NewMemory(), newEngine())

	for i := 1; i <= 3; i++ {
		issue, err := uc.CreateIssue(ctx, &usecase.CreateIssueRequest{
			Title:      "Flickering light",
			Category:   "electrical",
			ReportedBy: types.NewUserID(),
		})
		gt.NoError(t, err)
		gt.Equal(t, issue.ID, types.IssueID(i))
	}
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	uc := usecase.NewIssue(repo, newEngine())

	created, err := uc.CreateIssue(ctx, &usecase.CreateIssueRequest{
		Title:      "Clogged drain",
		Category:   "plumbing",
		ReportedBy: types.NewUserID(),
	})
	gt.NoError(t, err)

	admin := types.NewUserID()
	updated, err := uc.UpdateStatus(ctx, created.ID, types.IssueStatusTriaged, admin, "assigned to facilities")
	gt.NoError(t, err)
	gt.Equal(t, updated.Status, types.IssueStatusTriaged)

	history, err := uc.GetStatusHistory(ctx, created.ID)
	gt.NoError(t, err)
	gt.Equal(t, len(history), 1)
	gt.Equal(t, history[0].Status, types.IssueStatusTriaged)
	gt.Equal(t, history[0].ChangedBy, admin)
	gt.Equal(t, history[0].Note, "assigned to facilities")
}

func TestUpdateStatusRejectsNoop(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewIssue(repository.NewMemory(), newEngine())

	created, err := uc.CreateIssue(ctx, &usecase.CreateIssueRequest{
		Title:      "Clogged drain",
		Category:   "plumbing",
		ReportedBy: types.NewUserID(),
	})
	gt.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, created.ID, types.IssueStatusOpen, types.NewUserID(), "")
	gt.Error(t, err)

	_, err = uc.UpdateStatus(ctx, created.ID, "archived", types.NewUserID(), "")
	gt.Error(t, err)
}

func TestUpdateStatusRejectsClosed(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewIssue(repository.NewMemory(), newEngine())

	created, err := uc.CreateIssue(ctx, &usecase.CreateIssueRequest{
		Title:      "Clogged drain",
		Category:   "plumbing",
		ReportedBy: types.NewUserID(),
	})
	gt.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, created.ID, types.IssueStatusClosed, types.NewUserID(), "duplicate")
	gt.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, created.ID, types.IssueStatusOpen, types.NewUserID(), "reopen")
	gt.Error(t, err)
}

func TestListIssuesFilter(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	uc := usecase.NewIssue(repo, newEngine())

	for _, category := range []string{"plumbing", "electrical", "plumbing"} {
		_, err := uc.CreateIssue(ctx, &usecase.CreateIssueRequest{
			Title:      "Issue in " + category,
			Category:   category,
			ReportedBy: types.NewUserID(),
		})
		gt.NoError(t, err)
	}

	issues, err := uc.ListIssues(ctx, interfaces.IssueFilter{Category: types.CategoryPlumbing})
	gt.NoError(t, err)
	gt.Equal(t, len(issues), 2)
	for _, issue := range issues {
		gt.Equal(t, issue.Category, types.CategoryPlumbing)
	}
}
