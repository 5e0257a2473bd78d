package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	controller "github.com/civic-lab/fixpoint/pkg/controller/http"
	"github.com/civic-lab/fixpoint/pkg/domain/model"
	"github.com/civic-lab/fixpoint/pkg/domain/types"
	"github.com/civic-lab/fixpoint/pkg/repository"
	"github.com/civic-lab/fixpoint/pkg/service/priority"
	"github.com/civic-lab/fixpoint/pkg/usecase"
)

func newTestServer(t *testing.T) *controller.Server {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewMemory()
	engine := priority.New(priority.WithClock(func() time.Time {
		return time.Date(2026, 5, 11, 12, 0, 0, 0, time.UTC)
	}))

	srv, err := controller.NewServer(ctx, ":0",
		usecase.NewIssue(repo, engine),
		usecase.NewVote(repo, engine),
		usecase.NewSimulate(engine),
	)
	gt.NoError(t, err).Required()
	return srv
}

func doJSON(t *testing.T, srv *controller.Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		gt.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)
	return w
}

func createTestIssue(t *testing.T, srv *controller.Server) *model.Issue {
	t.Helper()
	w := doJSON(t, srv, http.MethodPost, "/api/issues", map[string]any{
		"title":      "Burst pipe in basement",
		"category":   "plumbing",
		"reportedBy": types.NewUserID(),
		"severity":   7,
		"safetyRisk": true,
	})
	gt.Equal(t, w.Code, http.StatusCreated)

	var issue model.Issue
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &issue))
	return &issue
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/health", nil)
	gt.Equal(t, w.Code, http.StatusOK)

	var body map[string]string
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	gt.Equal(t, body["status"], "healthy")
	gt.Equal(t, body["service"], "fixpoint")
}

func TestCreateAndGetIssue(t *testing.T) {
	srv := newTestServer(t)

	issue := createTestIssue(t, srv)
	gt.Equal(t, issue.ID, types.IssueID(1))
	gt.V(t, issue.Priority).NotNil()
	gt.True(t, issue.Priority.Score > 0)

	w := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/issues/%d", issue.ID), nil)
	gt.Equal(t, w.Code, http.StatusOK)

	var fetched model.Issue
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	gt.Equal(t, fetched.Title, issue.Title)
	gt.Equal(t, fetched.Priority.Score, issue.Priority.Score)
}

func TestCreateIssueRejectsBadInput(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/issues", map[string]any{
		"category":   "plumbing",
		"reportedBy": types.NewUserID(),
	})
	gt.Equal(t, w.Code, http.StatusBadRequest)

	w = doJSON(t, srv, http.MethodPost, "/api/issues", map[string]any{
		"title":      "Burst pipe",
		"category":   "plumbing",
		"reportedBy": types.NewUserID(),
		"severity":   99,
	})
	gt.Equal(t, w.Code, http.StatusBadRequest)
}

func TestGetIssueErrors(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/issues/999", nil)
	gt.Equal(t, w.Code, http.StatusNotFound)

	w = doJSON(t, srv, http.MethodGet, "/api/issues/abc", nil)
	gt.Equal(t, w.Code, http.StatusBadRequest)
}

func TestListIssues(t *testing.T) {
	srv := newTestServer(t)

	createTestIssue(t, srv)
	createTestIssue(t, srv)

	w := doJSON(t, srv, http.MethodGet, "/api/issues?category=plumbing", nil)
	gt.Equal(t, w.Code, http.StatusOK)

	var body struct {
		Issues []*model.Issue `json:"issues"`
		Count  int            `json:"count"`
	}
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	gt.Equal(t, body.Count, 2)

	w = doJSON(t, srv, http.MethodGet, "/api/issues?category=bogus", nil)
	gt.Equal(t, w.Code, http.StatusBadRequest)

	w = doJSON(t, srv, http.MethodGet, "/api/issues?limit=nope", nil)
	gt.Equal(t, w.Code, http.StatusBadRequest)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	srv := newTestServer(t)
	issue := createTestIssue(t, srv)

	w := doJSON(t, srv, http.MethodPatch, fmt.Sprintf("/api/issues/%d/status", issue.ID), map[string]any{
		"status":    "triaged",
		"changedBy": types.NewUserID(),
		"note":      "assigned to facilities",
	})
	gt.Equal(t, w.Code, http.StatusOK)

	var updated model.Issue
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	gt.Equal(t, updated.Status, types.IssueStatusTriaged)

	// history reflects the transition
	w = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/issues/%d/history", issue.ID), nil)
	gt.Equal(t, w.Code, http.StatusOK)

	var history struct {
		History []*model.StatusHistory `json:"history"`
		Count   int                    `json:"count"`
	}
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	gt.Equal(t, history.Count, 1)
	gt.Equal(t, history.History[0].Status, types.IssueStatusTriaged)

	// invalid status is rejected
	w = doJSON(t, srv, http.MethodPatch, fmt.Sprintf("/api/issues/%d/status", issue.ID), map[string]any{
		"status":    "archived",
		"changedBy": types.NewUserID(),
	})
	gt.Equal(t, w.Code, http.StatusBadRequest)

	// repeating the current status conflicts
	w = doJSON(t, srv, http.MethodPatch, fmt.Sprintf("/api/issues/%d/status", issue.ID), map[string]any{
		"status":    "triaged",
		"changedBy": types.NewUserID(),
	})
	gt.Equal(t, w.Code, http.StatusConflict)
}

func TestCastVoteEndpoint(t *testing.T) {
	srv := newTestServer(t)
	issue := createTestIssue(t, srv)

	voter := types.NewUserID()
	path := fmt.Sprintf("/api/issues/%d/votes", issue.ID)

	w := doJSON(t, srv, http.MethodPost, path, map[string]any{"userId": voter})
	gt.Equal(t, w.Code, http.StatusOK)

	var voted model.Issue
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &voted))
	gt.Equal(t, voted.VoteCount, 1)

	// duplicate vote conflicts
	w = doJSON(t, srv, http.MethodPost, path, map[string]any{"userId": voter})
	gt.Equal(t, w.Code, http.StatusConflict)

	// missing user is rejected
	w = doJSON(t, srv, http.MethodPost, path, map[string]any{})
	gt.Equal(t, w.Code, http.StatusBadRequest)

	// unknown issue is not found
	w = doJSON(t, srv, http.MethodPost, "/api/issues/999/votes", map[string]any{"userId": types.NewUserID()})
	gt.Equal(t, w.Code, http.StatusNotFound)
}

func TestExplainEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/priority/explain", nil)
	gt.Equal(t, w.Code, http.StatusOK)

	var explanation priority.Explanation
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &explanation))
	gt.Equal(t, len(explanation.CategoryWeights), len(types.Categories()))
	gt.True(t, len(explanation.TierThresholds) > 0)
}

func TestSimulateEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/priority/simulate", map[string]any{
		"input": map[string]any{
			"category":   "safety",
			"severity":   9,
			"safetyRisk": true,
		},
	})
	gt.Equal(t, w.Code, http.StatusOK)

	var score model.PriorityScore
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &score))
	gt.True(t, score.Score > 0)
	gt.True(t, score.Priority.IsValid())

	// batch request
	w = doJSON(t, srv, http.MethodPost, "/api/priority/simulate", map[string]any{
		"inputs": []map[string]any{
			{"category": "safety", "severity": 9},
			{"category": "furniture", "severity": 2},
		},
	})
	gt.Equal(t, w.Code, http.StatusOK)

	var batch struct {
		Scores []*model.PriorityScore `json:"scores"`
		Count  int                    `json:"count"`
	}
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &batch))
	gt.Equal(t, batch.Count, 2)
	gt.True(t, batch.Scores[0].Score > batch.Scores[1].Score)

	// empty request is rejected
	w = doJSON(t, srv, http.MethodPost, "/api/priority/simulate", map[string]any{})
	gt.Equal(t, w.Code, http.StatusBadRequest)
}

func TestScenariosEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/priority/scenarios", nil)
	gt.Equal(t, w.Code, http.StatusOK)

	var body struct {
		Scenarios []*usecase.Scenario `json:"scenarios"`
		Count     int                 `json:"count"`
	}
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	gt.True(t, body.Count >= 3)
	for _, sc := range body.Scenarios {
		gt.True(t, sc.Name != "")
		gt.V(t, sc.Score).NotNil()
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/issues", nil)
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)

	gt.Equal(t, w.Code, http.StatusNoContent)
	gt.Equal(t, w.Header().Get("Access-Control-Allow-Origin"), "*")
}
