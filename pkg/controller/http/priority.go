package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/civic-lab/fixpoint/pkg/domain/model"
)

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.simulateUC.Explain(r.Context()))
}

type simulateRequest struct {
	Input  *model.PriorityInput   `json:"input,omitempty"`
	Inputs []*model.PriorityInput `json:"inputs,omitempty"`
}

// handleSimulate scores one input or a batch without persisting anything.
// The request carries either "input" or "inputs"; the response shape
// follows the request shape.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	switch {
	case req.Input != nil && req.Inputs != nil:
		writeError(w, goerr.New("specify either input or inputs, not both"), http.StatusBadRequest)

	case req.Input != nil:
		writeJSON(w, http.StatusOK, s.simulateUC.Simulate(r.Context(), req.Input))

	case req.Inputs != nil:
		scores := s.simulateUC.SimulateBatch(r.Context(), req.Inputs)
		writeJSON(w, http.StatusOK, map[string]any{
			"scores": scores,
			"count":  len(scores),
		})

	default:
		writeError(w, goerr.New("input or inputs is required"), http.StatusBadRequest)
	}
}

func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios := s.simulateUC.Scenarios(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"scenarios": scenarios,
		"count":     len(scenarios),
	})
}
