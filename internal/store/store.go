// ABOUTME: Store interface and sentinel errors for office-gateway persistence
// ABOUTME: Covers employees, meetings, and meeting messages

package store

import (
	"context"
	"errors"

	"github.com/officehq/office-gateway/internal/office"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateID is returned when an insert collides with an existing id.
var ErrDuplicateID = errors.New("id already exists")

// Store defines the persistence operations the services need.
type Store interface {
	// Employees
	CreateEmployee(ctx context.Context, emp *office.Employee) error
	GetEmployee(ctx context.Context, id string) (*office.Employee, error)
	ListEmployees(ctx context.Context) ([]*office.Employee, error)
	DeactivateEmployee(ctx context.Context, id string) error

	// Meetings
	CreateMeeting(ctx context.Context, meeting *office.Meeting) error
	GetMeeting(ctx context.Context, id string) (*office.Meeting, error)
	ListMeetings(ctx context.Context) ([]*office.Meeting, error)

	// Messages
	SaveMessage(ctx context.Context, msg *office.Message) error
	ListMeetingMessages(ctx context.Context, meetingID string, limit int) ([]*office.Message, error)
}
