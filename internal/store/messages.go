// ABOUTME: SQLite operations for meeting messages
// ABOUTME: Listing follows the timeline order: (created_at, id) ascending

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/officehq/office-gateway/internal/office"
)

// SaveMessage inserts a message into a meeting's timeline.
// Returns ErrDuplicateID if the id is already taken.
func (s *SQLiteStore) SaveMessage(ctx context.Context, msg *office.Message) error {
	query := `
		INSERT INTO messages (id, meeting_id, sender_type, sender_id, sender_name, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		msg.ID,
		msg.MeetingID,
		string(msg.SenderType),
		nullableString(msg.SenderID),
		msg.SenderName,
		msg.Content,
		msg.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if isConstraintViolation(err) {
			return ErrDuplicateID
		}
		return fmt.Errorf("inserting message: %w", err)
	}

	s.logger.Debug("saved message",
		"id", msg.ID,
		"meeting_id", msg.MeetingID,
		"sender", msg.SenderName)
	return nil
}

// ListMeetingMessages returns a meeting's messages in timeline order.
// A limit of 0 means no limit.
func (s *SQLiteStore) ListMeetingMessages(ctx context.Context, meetingID string, limit int) ([]*office.Message, error) {
	query := `
		SELECT id, meeting_id, sender_type, sender_id, sender_name, content, created_at
		FROM messages
		WHERE meeting_id = ?
		ORDER BY created_at ASC, id ASC
	`
	args := []any{meetingID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var messages []*office.Message
	for rows.Next() {
		var msg office.Message
		var senderType string
		var senderID sql.NullString
		var createdAtStr string

		err := rows.Scan(
			&msg.ID,
			&msg.MeetingID,
			&senderType,
			&senderID,
			&msg.SenderName,
			&msg.Content,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}

		msg.SenderType = office.SenderType(senderType)
		msg.SenderID = senderID.String
		msg.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		messages = append(messages, &msg)
	}
	return messages, rows.Err()
}
