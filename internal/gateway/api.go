// ABOUTME: HTTP handlers for the employee, meeting, and message endpoints
// ABOUTME: Maps service errors onto status codes; message lists use a data envelope

package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/officehq/office-gateway/internal/meeting"
	"github.com/officehq/office-gateway/internal/office"
	"github.com/officehq/office-gateway/internal/roster"
	"github.com/officehq/office-gateway/internal/store"
)

// MessagesEnvelope wraps message lists; see package doc for why this
// endpoint is enveloped while the others are raw arrays.
type MessagesEnvelope struct {
	Data []*office.Message `json:"data"`
}

// errorResponse is the JSON body for error statuses.
type errorResponse struct {
	Error string `json:"error"`
}

func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	g.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (g *Gateway) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req roster.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		g.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	emp, err := g.employees.Create(r.Context(), req)
	if err != nil {
		g.writeServiceError(w, err)
		return
	}
	g.writeJSON(w, http.StatusCreated, emp)
}

func (g *Gateway) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := g.employees.List(r.Context())
	if err != nil {
		g.writeServiceError(w, err)
		return
	}
	if employees == nil {
		employees = []*office.Employee{}
	}
	g.writeJSON(w, http.StatusOK, employees)
}

func (g *Gateway) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := g.employees.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		g.writeServiceError(w, err)
		return
	}
	g.writeJSON(w, http.StatusOK, emp)
}

func (g *Gateway) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := g.employees.Delete(r.Context(), r.PathValue("id")); err != nil {
		g.writeServiceError(w, err)
		return
	}
	g.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (g *Gateway) handleCreateMeeting(w http.ResponseWriter, r *http.Request) {
	var req roster.CreateMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		g.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	mtg, err := g.meetings.Create(r.Context(), req)
	if err != nil {
		g.writeServiceError(w, err)
		return
	}
	g.writeJSON(w, http.StatusCreated, mtg)
}

func (g *Gateway) handleListMeetings(w http.ResponseWriter, r *http.Request) {
	meetings, err := g.meetings.List(r.Context())
	if err != nil {
		g.writeServiceError(w, err)
		return
	}
	if meetings == nil {
		meetings = []*office.Meeting{}
	}
	g.writeJSON(w, http.StatusOK, meetings)
}

func (g *Gateway) handleGetMeeting(w http.ResponseWriter, r *http.Request) {
	mtg, err := g.meetings.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		g.writeServiceError(w, err)
		return
	}
	g.writeJSON(w, http.StatusOK, mtg)
}

func (g *Gateway) handleListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := g.messages.List(r.Context(), r.PathValue("id"))
	if err != nil {
		g.writeServiceError(w, err)
		return
	}
	if msgs == nil {
		msgs = []*office.Message{}
	}
	g.writeJSON(w, http.StatusOK, MessagesEnvelope{Data: msgs})
}

func (g *Gateway) handleCreateMessage(w http.ResponseWriter, r *http.Request) {
	var req meeting.PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		g.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	msg, err := g.messages.Post(r.Context(), r.PathValue("id"), req)
	if err != nil {
		g.writeServiceError(w, err)
		return
	}
	g.writeJSON(w, http.StatusCreated, msg)
}

func (g *Gateway) handleTriggerReply(w http.ResponseWriter, r *http.Request) {
	msg, err := g.messages.TriggerReply(r.Context(), r.PathValue("id"), r.PathValue("employeeID"))
	if err != nil {
		g.writeServiceError(w, err)
		return
	}
	g.writeJSON(w, http.StatusCreated, msg)
}

// writeServiceError translates service-layer errors into status codes.
func (g *Gateway) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		g.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, roster.ErrInvalid), errors.Is(err, meeting.ErrNoHistory):
		g.writeError(w, http.StatusBadRequest, err.Error())
	default:
		g.logger.Error("request failed", "error", err)
		g.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (g *Gateway) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		g.logger.Error("encoding response", "error", err)
	}
}

func (g *Gateway) writeError(w http.ResponseWriter, status int, msg string) {
	g.writeJSON(w, status, errorResponse{Error: msg})
}
