// ABOUTME: Orchestrator serializes state-mutating backend calls for one session
// ABOUTME: One command at a time; always re-reads authoritative state afterwards

package session

import (
	"context"
	"log/slog"
	"strings"

	"github.com/officehq/office-gateway/internal/office"
)

// MessageWriter is what the orchestrator needs from the backend: the two
// mutating operations. Results are not consumed; the refresh that follows
// every command re-reads authoritative state instead.
type MessageWriter interface {
	CreateMessage(ctx context.Context, meetingID string, req CreateMessageRequest) (office.Message, error)
	TriggerReply(ctx context.Context, meetingID, employeeID string) error
}

// CreateMessageRequest is the payload for the backend's create-message
// operation.
type CreateMessageRequest struct {
	Content    string
	SenderType office.SenderType
}

// Orchestrator is the only component permitted to issue state-mutating
// backend calls for a session. Each operation is a single atomic unit of
// work guarded by the timeline's pending action.
type Orchestrator struct {
	writer     MessageWriter
	reconciler *Reconciler
	timeline   *Timeline
	logger     *slog.Logger
}

// NewOrchestrator creates an orchestrator bound to one timeline and its
// reconciler.
func NewOrchestrator(writer MessageWriter, reconciler *Reconciler, timeline *Timeline, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		writer:     writer,
		reconciler: reconciler,
		timeline:   timeline,
		logger:     logger.With("component", "orchestrator"),
	}
}

// SendUserMessage submits text as a user message to the meeting. Empty
// (after trimming) text or an already-active pending action is rejected
// with *ValidationError before any backend call. The timeline is always
// refreshed afterwards, even when the create call fails: a create that
// timed out after the server persisted it must still show up when
// authoritative state is re-read.
func (o *Orchestrator) SendUserMessage(ctx context.Context, meetingID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return &ValidationError{Reason: "message text is empty"}
	}

	if err := o.timeline.SetPending(PendingAction{Kind: PendingSending}); err != nil {
		return &ValidationError{Reason: err.Error()}
	}
	defer o.clearPending()

	o.timeline.ClearError()

	_, createErr := o.writer.CreateMessage(ctx, meetingID, CreateMessageRequest{
		Content:    text,
		SenderType: office.SenderUser,
	})

	refreshErr := o.reconciler.Refresh(ctx, meetingID)

	if createErr != nil {
		terr := &TransportError{Op: "create message", Err: createErr}
		o.timeline.SetError(terr)
		o.logger.Warn("send failed", "meeting_id", meetingID, "error", createErr)
		return terr
	}
	return refreshErr
}

// RequestEmployeeReply asks the backend to generate employeeID's reply to
// the conversation. Same pending discipline and refresh-always semantics
// as SendUserMessage.
func (o *Orchestrator) RequestEmployeeReply(ctx context.Context, meetingID, employeeID string) error {
	if strings.TrimSpace(employeeID) == "" {
		return &ValidationError{Reason: "employee id is empty"}
	}

	if err := o.timeline.SetPending(PendingAction{Kind: PendingAwaitingReply, EmployeeID: employeeID}); err != nil {
		return &ValidationError{Reason: err.Error()}
	}
	defer o.clearPending()

	o.timeline.ClearError()

	triggerErr := o.writer.TriggerReply(ctx, meetingID, employeeID)

	refreshErr := o.reconciler.Refresh(ctx, meetingID)

	if triggerErr != nil {
		terr := &TransportError{Op: "trigger reply", Err: triggerErr}
		o.timeline.SetError(terr)
		o.logger.Warn("reply request failed",
			"meeting_id", meetingID,
			"employee_id", employeeID,
			"error", triggerErr)
		return terr
	}
	return refreshErr
}

func (o *Orchestrator) clearPending() {
	// Clearing never conflicts.
	_ = o.timeline.SetPending(PendingAction{})
}
