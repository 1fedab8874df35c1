// ABOUTME: Tests for the SQLite store
// ABOUTME: Covers employee/meeting/message round trips, soft delete, and ordering

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/officehq/office-gateway/internal/office"
)

func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testEmployee(id string) *office.Employee {
	return &office.Employee{
		ID:          id,
		Name:        "Ada",
		Role:        "Engineer",
		Personality: "pragmatic",
		Expertise:   []string{"go", "sql"},
		LLMProvider: office.ProviderAnthropic,
		LLMModel:    "claude-3-5-sonnet",
		CreatedAt:   time.Now().UTC(),
		IsActive:    true,
	}
}

func TestSQLiteStore_EmployeeRoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	emp := testEmployee("emp-1")
	emp.SystemPrompt = "You are terse."
	require.NoError(t, s.CreateEmployee(ctx, emp))

	got, err := s.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, []string{"go", "sql"}, got.Expertise)
	assert.Equal(t, "You are terse.", got.SystemPrompt)
	assert.True(t, got.IsActive)
}

func TestSQLiteStore_CreateEmployee_DuplicateID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateEmployee(ctx, testEmployee("emp-1")))
	err := s.CreateEmployee(ctx, testEmployee("emp-1"))
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestSQLiteStore_GetEmployee_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.GetEmployee(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_DeactivateEmployee(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateEmployee(ctx, testEmployee("emp-1")))
	require.NoError(t, s.DeactivateEmployee(ctx, "emp-1"))

	got, err := s.GetEmployee(ctx, "emp-1")
	require.NoError(t, err, "soft delete keeps the row")
	assert.False(t, got.IsActive)

	assert.ErrorIs(t, s.DeactivateEmployee(ctx, "missing"), ErrNotFound)
}

func TestSQLiteStore_MeetingRoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	meeting := &office.Meeting{
		ID:          "m-1",
		Title:       "Kickoff",
		Description: "First **meeting**",
		EmployeeIDs: []string{"emp-1", "emp-2"},
		CreatedAt:   time.Now().UTC(),
		IsActive:    true,
	}
	require.NoError(t, s.CreateMeeting(ctx, meeting))

	got, err := s.GetMeeting(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, "Kickoff", got.Title)
	assert.Equal(t, []string{"emp-1", "emp-2"}, got.EmployeeIDs)

	_, err = s.GetMeeting(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_ListMeetingMessages_TimelineOrder(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateMeeting(ctx, &office.Meeting{
		ID:          "m-1",
		Title:       "Kickoff",
		EmployeeIDs: []string{"emp-1", "emp-2"},
		CreatedAt:   time.Now().UTC(),
		IsActive:    true,
	}))

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	save := func(id string, at time.Time) {
		require.NoError(t, s.SaveMessage(ctx, &office.Message{
			ID:         id,
			MeetingID:  "m-1",
			SenderType: office.SenderUser,
			SenderName: "User",
			Content:    "msg " + id,
			CreatedAt:  at,
		}))
	}

	// Inserted out of order, with a timestamp tie between ids 3 and 5.
	save("9", base.Add(2*time.Minute))
	save("5", base)
	save("3", base)
	save("7", base.Add(time.Minute))

	msgs, err := s.ListMeetingMessages(ctx, "m-1", 0)
	require.NoError(t, err)
	require.Len(t, msgs, 4)

	ids := []string{msgs[0].ID, msgs[1].ID, msgs[2].ID, msgs[3].ID}
	assert.Equal(t, []string{"3", "5", "7", "9"}, ids)

	limited, err := s.ListMeetingMessages(ctx, "m-1", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSQLiteStore_ListEmployees_ActiveFirst(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first := testEmployee("emp-1")
	first.CreatedAt = time.Now().UTC().Add(-time.Hour)
	second := testEmployee("emp-2")
	require.NoError(t, s.CreateEmployee(ctx, first))
	require.NoError(t, s.CreateEmployee(ctx, second))
	require.NoError(t, s.DeactivateEmployee(ctx, "emp-2"))

	employees, err := s.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, "emp-1", employees[0].ID)
	assert.False(t, employees[1].IsActive)
}
