// ABOUTME: MeetingService creates and lists meetings
// ABOUTME: A meeting needs at least two existing, active employees; the set is fixed at creation

package roster

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/officehq/office-gateway/internal/office"
	"github.com/officehq/office-gateway/internal/store"
)

// CreateMeetingRequest is the payload for creating a meeting.
type CreateMeetingRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description,omitempty"`
	EmployeeIDs []string `json:"employee_ids" validate:"required,min=2,unique"`
}

// MeetingService manages meetings.
type MeetingService struct {
	store    store.Store
	validate *validator.Validate
	logger   *slog.Logger
}

// NewMeetingService creates a meeting service over the given store.
func NewMeetingService(st store.Store, logger *slog.Logger) *MeetingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MeetingService{
		store:    st,
		validate: validator.New(),
		logger:   logger.With("component", "roster"),
	}
}

// Create validates req, checks every participant exists and is active,
// and persists the meeting. The participant set never changes afterwards.
func (s *MeetingService) Create(ctx context.Context, req CreateMeetingRequest) (*office.Meeting, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	for _, id := range req.EmployeeIDs {
		emp, err := s.store.GetEmployee(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%w: employee %s: %v", ErrInvalid, id, err)
		}
		if !emp.IsActive {
			return nil, fmt.Errorf("%w: employee %s is not active", ErrInvalid, id)
		}
	}

	meeting := &office.Meeting{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		EmployeeIDs: req.EmployeeIDs,
		CreatedAt:   time.Now().UTC(),
		IsActive:    true,
	}
	if err := s.store.CreateMeeting(ctx, meeting); err != nil {
		return nil, fmt.Errorf("creating meeting: %w", err)
	}

	s.logger.Info("meeting created",
		"id", meeting.ID,
		"title", meeting.Title,
		"participants", len(meeting.EmployeeIDs))
	return meeting, nil
}

// Get returns one meeting by id.
func (s *MeetingService) Get(ctx context.Context, id string) (*office.Meeting, error) {
	return s.store.GetMeeting(ctx, id)
}

// List returns all meetings.
func (s *MeetingService) List(ctx context.Context) ([]*office.Meeting, error) {
	return s.store.ListMeetings(ctx)
}

// Participants resolves a meeting's employee records, skipping ids whose
// employee no longer exists. Callers render those with a placeholder.
func (s *MeetingService) Participants(ctx context.Context, meeting *office.Meeting) ([]*office.Employee, error) {
	employees := make([]*office.Employee, 0, len(meeting.EmployeeIDs))
	for _, id := range meeting.EmployeeIDs {
		emp, err := s.store.GetEmployee(ctx, id)
		if err == store.ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, nil
}
