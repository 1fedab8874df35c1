// ABOUTME: Gateway wires the office services behind an HTTP server
// ABOUTME: Manages routes, startup, and graceful shutdown

package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/officehq/office-gateway/internal/meeting"
	"github.com/officehq/office-gateway/internal/roster"
)

// Gateway serves the office HTTP API.
type Gateway struct {
	employees *roster.EmployeeService
	meetings  *roster.MeetingService
	messages  *meeting.MessageService
	logger    *slog.Logger

	httpServer *http.Server
}

// New creates a gateway over the given services.
func New(employees *roster.EmployeeService, meetings *roster.MeetingService, messages *meeting.MessageService, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		employees: employees,
		meetings:  meetings,
		messages:  messages,
		logger:    logger.With("component", "gateway"),
	}
}

// Handler returns the routed HTTP handler. Exposed for tests.
func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", g.handleHealth)

	mux.HandleFunc("POST /employees", g.handleCreateEmployee)
	mux.HandleFunc("GET /employees", g.handleListEmployees)
	mux.HandleFunc("GET /employees/{id}", g.handleGetEmployee)
	mux.HandleFunc("DELETE /employees/{id}", g.handleDeleteEmployee)

	mux.HandleFunc("POST /meetings", g.handleCreateMeeting)
	mux.HandleFunc("GET /meetings", g.handleListMeetings)
	mux.HandleFunc("GET /meetings/{id}", g.handleGetMeeting)

	mux.HandleFunc("GET /meetings/{id}/messages", g.handleListMessages)
	mux.HandleFunc("POST /meetings/{id}/messages", g.handleCreateMessage)
	mux.HandleFunc("POST /meetings/{id}/messages/{employeeID}/respond", g.handleTriggerReply)

	return mux
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// server fails.
func (g *Gateway) Run(ctx context.Context, addr string) error {
	g.httpServer = &http.Server{
		Addr:              addr,
		Handler:           g.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		g.logger.Info("HTTP server listening", "addr", addr)
		if err := g.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		return g.shutdown()
	}
}

func (g *Gateway) shutdown() error {
	g.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return g.httpServer.Shutdown(shutdownCtx)
}
