// ABOUTME: MessageService posts messages and triggers employee replies
// ABOUTME: Resolves sender display names and keeps the timeline the source of truth

package meeting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/officehq/office-gateway/internal/office"
	"github.com/officehq/office-gateway/internal/roster"
	"github.com/officehq/office-gateway/internal/store"
)

// ErrNoHistory is returned when a reply is requested for a meeting with
// an empty timeline: there is nothing to respond to yet.
var ErrNoHistory = errors.New("no conversation history")

// UserSenderName is the display name recorded for user messages.
const UserSenderName = "User"

// PostMessageRequest is the payload for posting a message to a meeting.
type PostMessageRequest struct {
	Content    string            `json:"content" validate:"required,max=1000"`
	SenderType office.SenderType `json:"sender_type" validate:"required,oneof=user employee"`
	SenderID   string            `json:"sender_id,omitempty"`
}

// MessageService owns the message pipeline for all meetings.
type MessageService struct {
	store     store.Store
	responder Responder
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewMessageService creates a message service.
func NewMessageService(st store.Store, responder Responder, logger *slog.Logger) *MessageService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MessageService{
		store:     st,
		responder: responder,
		validate:  validator.New(),
		logger:    logger.With("component", "meeting"),
	}
}

// Post records a message in the meeting's timeline. The sender name is
// resolved server-side: "User" for user messages, the employee's roster
// name otherwise.
func (s *MessageService) Post(ctx context.Context, meetingID string, req PostMessageRequest) (*office.Message, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", roster.ErrInvalid, err)
	}

	if _, err := s.store.GetMeeting(ctx, meetingID); err != nil {
		return nil, fmt.Errorf("resolving meeting: %w", err)
	}

	senderName := UserSenderName
	if req.SenderType == office.SenderEmployee {
		if req.SenderID == "" {
			return nil, fmt.Errorf("%w: sender_id is required for employee messages", roster.ErrInvalid)
		}
		emp, err := s.store.GetEmployee(ctx, req.SenderID)
		if err != nil {
			return nil, fmt.Errorf("%w: employee %s: %v", roster.ErrInvalid, req.SenderID, err)
		}
		senderName = emp.Name
	}

	msg := &office.Message{
		ID:         uuid.New().String(),
		MeetingID:  meetingID,
		SenderType: req.SenderType,
		SenderID:   req.SenderID,
		SenderName: senderName,
		Content:    req.Content,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.SaveMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("saving message: %w", err)
	}

	s.logger.Debug("message posted",
		"meeting_id", meetingID,
		"message_id", msg.ID,
		"sender", senderName)
	return msg, nil
}

// List returns a meeting's timeline in (created_at, id) order.
func (s *MessageService) List(ctx context.Context, meetingID string) ([]*office.Message, error) {
	if _, err := s.store.GetMeeting(ctx, meetingID); err != nil {
		return nil, fmt.Errorf("resolving meeting: %w", err)
	}
	return s.store.ListMeetingMessages(ctx, meetingID, 0)
}

// TriggerReply asks the Responder to generate employeeID's contribution
// to the conversation and records it as an employee message. The meeting
// must exist, the employee must be one of its participants, and the
// timeline must not be empty.
func (s *MessageService) TriggerReply(ctx context.Context, meetingID, employeeID string) (*office.Message, error) {
	mtg, err := s.store.GetMeeting(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("resolving meeting: %w", err)
	}

	if !lo.Contains(mtg.EmployeeIDs, employeeID) {
		return nil, fmt.Errorf("%w: employee %s is not a participant", roster.ErrInvalid, employeeID)
	}

	emp, err := s.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("resolving employee: %w", err)
	}

	participants := make([]*office.Employee, 0, len(mtg.EmployeeIDs))
	for _, id := range mtg.EmployeeIDs {
		p, err := s.store.GetEmployee(ctx, id)
		if err == store.ErrNotFound {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolving participants: %w", err)
		}
		participants = append(participants, p)
	}

	history, err := s.store.ListMeetingMessages(ctx, meetingID, 0)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	if len(history) == 0 {
		return nil, ErrNoHistory
	}

	content, err := s.responder.Respond(ctx, mtg, participants, history, employeeID)
	if err != nil {
		return nil, fmt.Errorf("generating reply: %w", err)
	}

	msg := &office.Message{
		ID:         uuid.New().String(),
		MeetingID:  meetingID,
		SenderType: office.SenderEmployee,
		SenderID:   employeeID,
		SenderName: emp.Name,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.SaveMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("saving reply: %w", err)
	}

	s.logger.Info("employee reply recorded",
		"meeting_id", meetingID,
		"employee_id", employeeID,
		"message_id", msg.ID)
	return msg, nil
}
