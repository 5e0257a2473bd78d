package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/civic-lab/fixpoint/pkg/usecase"
)

// Server represents the HTTP server
type Server struct {
	*http.Server
	router     chi.Router
	issueUC    usecase.IssueUseCase
	voteUC     usecase.VoteUseCase
	simulateUC usecase.SimulateUseCase
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	addr string,
	issueUC usecase.IssueUseCase,
	voteUC usecase.VoteUseCase,
	simulateUC usecase.SimulateUseCase,
) (*Server, error) {
	if issueUC == nil || voteUC == nil || simulateUC == nil {
		return nil, goerr.New("all use cases are required")
	}

	router := chi.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(CORS)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	server := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:     router,
		issueUC:    issueUC,
		voteUC:     voteUC,
		simulateUC: simulateUC,
	}

	// Health check
	router.Get("/health", handleHealth)

	// API routes
	router.Route("/api", func(r chi.Router) {
		r.Route("/issues", func(r chi.Router) {
			r.Post("/", server.handleCreateIssue)
			r.Get("/", server.handleListIssues)

			r.Route("/{issueID}", func(r chi.Router) {
				r.Get("/", server.handleGetIssue)
				r.Patch("/status", server.handleUpdateStatus)
				r.Get("/history", server.handleStatusHistory)
				r.Post("/votes", server.handleCastVote)
			})
		})

		r.Route("/priority", func(r chi.Router) {
			r.Get("/explain", server.handleExplain)
			r.Post("/simulate", server.handleSimulate)
			r.Get("/scenarios", server.handleScenarios)
		})
	})

	router.Get("/*", handleFallbackHome)

	return server, nil
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "fixpoint",
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}

// handleFallbackHome handles the root path
func handleFallbackHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>Fixpoint</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: linear-gradient(135deg, #11998e 0%, #38ef7d 100%);
            color: white;
        }
        .container {
            text-align: center;
            padding: 2rem;
            background: rgba(255, 255, 255, 0.1);
            border-radius: 10px;
            backdrop-filter: blur(10px);
        }
        h1 {
            margin: 0 0 1rem 0;
            font-size: 3rem;
        }
        p {
            margin: 0.5rem 0;
            font-size: 1.2rem;
        }
        a {
            color: white;
            text-decoration: underline;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>&#128295; Fixpoint</h1>
        <p>Campus Issue Priority Service</p>
        <p><a href="/api/priority/explain">Scoring configuration</a></p>
    </div>
</body>
</html>`)); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write fallback home page", "error", err)
	}
}

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.From(context.Background()).Error("Failed to encode response", "error", err)
	}
}

// writeError writes an error response
func writeError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	var message string
	if goErr := goerr.Unwrap(err); goErr != nil {
		message = goErr.Error()
	} else {
		message = err.Error()
	}

	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	}); err != nil {
		// Can't get context here, so use background context
		ctxlog.From(context.Background()).Error("Failed to encode error response", "error", err)
	}
}
