package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/civic-lab/fixpoint/pkg/domain/interfaces"
	"github.com/civic-lab/fixpoint/pkg/domain/model"
	"github.com/civic-lab/fixpoint/pkg/domain/types"
	"github.com/civic-lab/fixpoint/pkg/usecase"
)

// issueIDFromRequest parses the issueID path parameter
func issueIDFromRequest(r *http.Request) (types.IssueID, error) {
	raw := chi.URLParam(r, "issueID")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, goerr.Wrap(err, "invalid issue ID", goerr.V("issueID", raw))
	}
	id := types.IssueID(n)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// errorStatus maps domain errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrIssueNotFound), errors.Is(err, model.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrAlreadyVoted), errors.Is(err, model.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleCreateIssue(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateIssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	issue, err := s.issueUC.CreateIssue(r.Context(), &req)
	if err != nil {
		writeError(w, err, errorStatus(err))
		return
	}

	writeJSON(w, http.StatusCreated, issue)
}

func (s *Server) handleListIssues(w http.ResponseWriter, r *http.Request) {
	filter := interfaces.IssueFilter{
		Status:   types.IssueStatus(r.URL.Query().Get("status")),
		Category: types.Category(r.URL.Query().Get("category")),
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		writeError(w, goerr.New("invalid status filter",
			goerr.V("status", filter.Status)), http.StatusBadRequest)
		return
	}
	if filter.Category != "" && !filter.Category.IsValid() {
		writeError(w, goerr.New("invalid category filter",
			goerr.V("category", filter.Category)), http.StatusBadRequest)
		return
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeError(w, goerr.New("invalid limit", goerr.V("limit", raw)), http.StatusBadRequest)
			return
		}
		filter.Limit = limit
	}

	issues, err := s.issueUC.ListIssues(r.Context(), filter)
	if err != nil {
		writeError(w, err, errorStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"issues": issues,
		"count":  len(issues),
	})
}

func (s *Server) handleGetIssue(w http.ResponseWriter, r *http.Request) {
	id, err := issueIDFromRequest(r)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	issue, err := s.issueUC.GetIssue(r.Context(), id)
	if err != nil {
		writeError(w, err, errorStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, issue)
}

type updateStatusRequest struct {
	Status    types.IssueStatus `json:"status"`
	ChangedBy types.UserID      `json:"changedBy"`
	Note      string            `json:"note,omitempty"`
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := issueIDFromRequest(r)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}
	if !req.Status.IsValid() {
		writeError(w, goerr.New("invalid status", goerr.V("status", req.Status)), http.StatusBadRequest)
		return
	}
	if req.ChangedBy == "" {
		writeError(w, goerr.New("changedBy is required"), http.StatusBadRequest)
		return
	}

	issue, err := s.issueUC.UpdateStatus(r.Context(), id, req.Status, req.ChangedBy, req.Note)
	if err != nil {
		writeError(w, err, errorStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, issue)
}

func (s *Server) handleStatusHistory(w http.ResponseWriter, r *http.Request) {
	id, err := issueIDFromRequest(r)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	// Confirm the issue exists so a typo does not return an empty history
	if _, err := s.issueUC.GetIssue(r.Context(), id); err != nil {
		writeError(w, err, errorStatus(err))
		return
	}

	history, err := s.issueUC.GetStatusHistory(r.Context(), id)
	if err != nil {
		writeError(w, err, errorStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"history": history,
		"count":   len(history),
	})
}

type castVoteRequest struct {
	UserID types.UserID `json:"userId"`
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	id, err := issueIDFromRequest(r)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		writeError(w, goerr.New("userId is required"), http.StatusBadRequest)
		return
	}

	issue, err := s.voteUC.CastVote(r.Context(), id, req.UserID)
	if err != nil {
		writeError(w, err, errorStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, issue)
}
