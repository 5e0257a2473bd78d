package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/civic-lab/fixpoint/pkg/domain/interfaces"
	"github.com/civic-lab/fixpoint/pkg/domain/model"
	"github.com/civic-lab/fixpoint/pkg/domain/types"
	"github.com/civic-lab/fixpoint/pkg/service/priority"
	"github.com/civic-lab/fixpoint/pkg/utils/apperr"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// CreateIssueRequest carries the fields of a new issue report
type CreateIssueRequest struct {
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	Category     string       `json:"category"`
	BuildingID   string       `json:"buildingId,omitempty"`
	RoomID       string       `json:"roomId,omitempty"`
	ReportedBy   types.UserID `json:"reportedBy"`
	ReporterName string       `json:"reporterName,omitempty"`

	Severity     *int     `json:"severity,omitempty"`
	Occupancy    *int     `json:"occupancy,omitempty"`
	AffectedArea *float64 `json:"affectedArea,omitempty"`

	IsRecurring            bool `json:"isRecurring,omitempty"`
	BlocksAccess           bool `json:"blocksAccess,omitempty"`
	SafetyRisk             bool `json:"safetyRisk,omitempty"`
	CriticalInfrastructure bool `json:"criticalInfrastructure,omitempty"`
	AffectsAcademics       bool `json:"affectsAcademics,omitempty"`
	WeatherSensitive       bool `json:"weatherSensitive,omitempty"`
	ExamPeriod             bool `json:"examPeriod,omitempty"`
	CurrentSemester        bool `json:"currentSemester,omitempty"`
}

// Validate validates the request. Boundary validation happens here, before
// the scoring engine is invoked: the engine itself is total and never fails.
func (r *CreateIssueRequest) Validate() error {
	if r.Title == "" {
		return goerr.New("issue title is required")
	}
	if r.Category == "" {
		return goerr.New("issue category is required")
	}
	if r.ReportedBy == "" {
		return goerr.New("reporter user ID is required")
	}
	if r.Severity != nil && (*r.Severity < 1 || *r.Severity > 10) {
		return goerr.New("severity must be between 1 and 10",
			goerr.V("severity", *r.Severity))
	}
	if r.Occupancy != nil && *r.Occupancy < 0 {
		return goerr.New("occupancy must not be negative",
			goerr.V("occupancy", *r.Occupancy))
	}
	if r.AffectedArea != nil && *r.AffectedArea < 0 {
		return goerr.New("affected area must not be negative",
			goerr.V("affectedArea", *r.AffectedArea))
	}
	return nil
}

// Issue implements IssueUseCase
type Issue struct {
	repo   interfaces.Repository
	engine *priority.Engine
}

// NewIssue creates a new Issue use case. The engine is injected as a pure
// dependency; the use case holds no scoring state of its own.
func NewIssue(repo interfaces.Repository, engine *priority.Engine) *Issue {
	return &Issue{
		repo:   repo,
		engine: engine,
	}
}

// CreateIssue creates a new issue, scores it, persists it, and awards
// reputation points to the reporter
func (u *Issue) CreateIssue(ctx context.Context, req *CreateIssueRequest) (*model.Issue, error) {
	if req == nil {
		return nil, goerr.New("request is nil")
	}
	if err := req.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid issue request")
	}

	id, err := u.repo.GetNextIssueNumber(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get next issue number")
	}

	issue, err := model.NewIssue(id, req.Title, types.ParseCategory(req.Category), req.ReportedBy)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create issue")
	}

	issue.Description = req.Description
	issue.BuildingID = req.BuildingID
	issue.RoomID = req.RoomID
	issue.Severity = req.Severity
	issue.Occupancy = req.Occupancy
	issue.AffectedArea = req.AffectedArea
	issue.IsRecurring = req.IsRecurring
	issue.BlocksAccess = req.BlocksAccess
	issue.SafetyRisk = req.SafetyRisk
	issue.CriticalInfrastructure = req.CriticalInfrastructure
	issue.AffectsAcademics = req.AffectsAcademics
	issue.WeatherSensitive = req.WeatherSensitive
	issue.ExamPeriod = req.ExamPeriod
	issue.CurrentSemester = req.CurrentSemester

	issue.Priority = u.engine.Calculate(issue.PriorityInput())

	if err := u.repo.PutIssue(ctx, issue); err != nil {
		return nil, goerr.Wrap(err, "failed to save issue")
	}

	u.awardPoints(ctx, req.ReportedBy, req.ReporterName, model.PointsReportIssue)

	ctxlog.From(ctx).Info("Issue created",
		"issueID", issue.ID,
		"slug", issue.Slug,
		"priority", issue.Priority.Priority,
		"score", issue.Priority.Score,
	)

	return issue, nil
}

// GetIssue retrieves an issue by ID
func (u *Issue) GetIssue(ctx context.Context, id types.IssueID) (*model.Issue, error) {
	issue, err := u.repo.GetIssue(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get issue", goerr.V("id", id))
	}
	return issue, nil
}

// ListIssues lists issues matching the filter
func (u *Issue) ListIssues(ctx context.Context, filter interfaces.IssueFilter) ([]*model.Issue, error) {
	issues, err := u.repo.ListIssues(ctx, filter)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list issues")
	}
	return issues, nil
}

// UpdateStatus transitions an issue to a new status, records the change in
// the status history, and rescores the issue since its context changed
func (u *Issue) UpdateStatus(ctx context.Context, id types.IssueID, status types.IssueStatus, changedBy types.UserID, note string) (*model.Issue, error) {
	if !status.IsValid() {
		return nil, goerr.New("invalid status", goerr.V("status", status))
	}

	issue, err := u.repo.GetIssue(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get issue", goerr.V("id", id))
	}

	if issue.Status == status {
		return nil, goerr.Wrap(model.ErrInvalidTransition, "issue is already in the requested status",
			goerr.V("id", id),
			goerr.V("status", status))
	}
	if issue.Status.IsTerminal() {
		return nil, goerr.Wrap(model.ErrInvalidTransition, "issue is closed",
			goerr.V("id", id))
	}

	history, err := model.NewStatusHistory(id, status, changedBy, note)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create status history")
	}

	issue.Status = status
	issue.UpdatedAt = time.Now()
	issue.Priority = u.engine.Calculate(issue.PriorityInput())

	if err := u.repo.PutIssue(ctx, issue); err != nil {
		return nil, goerr.Wrap(err, "failed to save issue")
	}

	if err := u.repo.AddStatusHistory(ctx, history); err != nil {
		return nil, goerr.Wrap(err, "failed to save status history")
	}

	return issue, nil
}

// GetStatusHistory lists the status transitions of an issue
func (u *Issue) GetStatusHistory(ctx context.Context, id types.IssueID) ([]*model.StatusHistory, error) {
	entries, err := u.repo.ListStatusHistory(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list status history", goerr.V("id", id))
	}
	return entries, nil
}

// awardPoints adds reputation points to a user, creating the user record on
// first participation. Point bookkeeping is best-effort: a failure is logged
// but never blocks the main operation.
func (u *Issue) awardPoints(ctx context.Context, userID types.UserID, name string, points int) {
	awardPoints(ctx, u.repo, userID, name, points)
}

func awardPoints(ctx context.Context, repo interfaces.Repository, userID types.UserID, name string, points int) {
	user, err := repo.GetUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, model.ErrUserNotFound) {
			apperr.Handle(ctx, goerr.Wrap(err, "failed to load user for points award",
				goerr.V("userID", userID)))
			return
		}
		user = model.NewUser(userID, name, "")
	}

	user.AddPoints(points)
	if err := repo.SaveUser(ctx, user); err != nil {
		apperr.Handle(ctx, goerr.Wrap(err, "failed to save user points",
			goerr.V("userID", userID)))
	}
}
