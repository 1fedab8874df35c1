// ABOUTME: SQLite operations for meetings
// ABOUTME: Participant ids are stored as a JSON array column, fixed at creation

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/officehq/office-gateway/internal/office"
)

// CreateMeeting inserts a new meeting.
// Returns ErrDuplicateID if the id is already taken.
func (s *SQLiteStore) CreateMeeting(ctx context.Context, meeting *office.Meeting) error {
	employeeIDs, err := json.Marshal(meeting.EmployeeIDs)
	if err != nil {
		return fmt.Errorf("encoding employee ids: %w", err)
	}

	query := `
		INSERT INTO meetings (id, title, description, employee_ids, created_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		meeting.ID,
		meeting.Title,
		nullableString(meeting.Description),
		string(employeeIDs),
		meeting.CreatedAt.UTC().Format(time.RFC3339Nano),
		boolToInt(meeting.IsActive),
	)
	if err != nil {
		if isConstraintViolation(err) {
			return ErrDuplicateID
		}
		return fmt.Errorf("inserting meeting: %w", err)
	}

	s.logger.Debug("created meeting", "id", meeting.ID, "title", meeting.Title)
	return nil
}

// GetMeeting retrieves a meeting by id.
// Returns ErrNotFound if the meeting doesn't exist.
func (s *SQLiteStore) GetMeeting(ctx context.Context, id string) (*office.Meeting, error) {
	query := `
		SELECT id, title, description, employee_ids, created_at, is_active
		FROM meetings
		WHERE id = ?
	`

	meeting, err := scanMeeting(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying meeting: %w", err)
	}
	return meeting, nil
}

// ListMeetings returns all meetings, newest first.
func (s *SQLiteStore) ListMeetings(ctx context.Context) ([]*office.Meeting, error) {
	query := `
		SELECT id, title, description, employee_ids, created_at, is_active
		FROM meetings
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying meetings: %w", err)
	}
	defer rows.Close()

	var meetings []*office.Meeting
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning meeting: %w", err)
		}
		meetings = append(meetings, meeting)
	}
	return meetings, rows.Err()
}

func scanMeeting(row rowScanner) (*office.Meeting, error) {
	var meeting office.Meeting
	var description sql.NullString
	var employeeIDsJSON, createdAtStr string
	var isActive int

	err := row.Scan(
		&meeting.ID,
		&meeting.Title,
		&description,
		&employeeIDsJSON,
		&createdAtStr,
		&isActive,
	)
	if err != nil {
		return nil, err
	}

	meeting.Description = description.String
	if err := json.Unmarshal([]byte(employeeIDsJSON), &meeting.EmployeeIDs); err != nil {
		return nil, fmt.Errorf("decoding employee ids: %w", err)
	}
	meeting.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	meeting.IsActive = isActive != 0
	return &meeting, nil
}
