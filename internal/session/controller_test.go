// ABOUTME: Tests for Controller lifecycle, view projection, and participant resolution
// ABOUTME: Includes the end-to-end send/ask scenario against the fake backend

package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/officehq/office-gateway/internal/office"
)

func testMeeting() office.Meeting {
	return office.Meeting{
		ID:          "m1",
		Title:       "Standup",
		Description: "Daily **sync**",
		EmployeeIDs: []string{"emp-a", "emp-b"},
	}
}

func testEmployees() []office.Employee {
	return []office.Employee{
		{ID: "emp-a", Name: "Ada", Role: "Engineer"},
		{ID: "emp-b", Name: "Bea", Role: "Designer"},
		{ID: "emp-z", Name: "Zoe", Role: "Analyst"}, // not in the meeting
	}
}

func TestController_Open_InitialRefreshAndView(t *testing.T) {
	backend := newFakeBackend()
	backend.seed(msg("1", 100))
	ctrl := NewController(backend, nil)

	require.NoError(t, ctrl.Open(context.Background(), testMeeting(), testEmployees()))

	view, ok := ctrl.View()
	require.True(t, ok)
	assert.Equal(t, "Standup", view.Title)
	assert.Equal(t, "Daily **sync**", view.Description)
	require.Len(t, view.Messages, 1)

	// Participants are the meeting's employees only, in meeting order.
	require.Len(t, view.Participants, 2)
	assert.Equal(t, "Ada", view.Participants[0].Name)
	assert.Equal(t, "Bea", view.Participants[1].Name)
}

func TestController_Open_UnknownParticipantGetsPlaceholder(t *testing.T) {
	backend := newFakeBackend()
	ctrl := NewController(backend, nil)

	meeting := testMeeting()
	meeting.EmployeeIDs = []string{"emp-a", "emp-gone"}
	require.NoError(t, ctrl.Open(context.Background(), meeting, testEmployees()))

	view, ok := ctrl.View()
	require.True(t, ok)
	require.Len(t, view.Participants, 2)
	assert.Equal(t, PlaceholderRole, view.Participants[1].Role)
	assert.Equal(t, "emp-gone", view.Participants[1].Name)
}

func TestController_Open_FailedRefreshLeavesSessionUsable(t *testing.T) {
	backend := newFakeBackend()
	backend.listErr = errors.New("boom")
	ctrl := NewController(backend, nil)

	require.Error(t, ctrl.Open(context.Background(), testMeeting(), testEmployees()))

	view, ok := ctrl.View()
	require.True(t, ok, "session stays open after a failed initial refresh")
	assert.Empty(t, view.Messages)
	assert.Error(t, view.LastError)

	// Recoverable: a later refresh repopulates.
	backend.listErr = nil
	backend.seed(msg("1", 100))
	require.NoError(t, ctrl.Refresh(context.Background()))
	view, _ = ctrl.View()
	assert.Len(t, view.Messages, 1)
}

func TestController_Exit_DiscardsSession(t *testing.T) {
	backend := newFakeBackend()
	ctrl := NewController(backend, nil)
	require.NoError(t, ctrl.Open(context.Background(), testMeeting(), testEmployees()))

	ctrl.Exit()

	_, ok := ctrl.View()
	assert.False(t, ok)

	err := ctrl.SendMessage(context.Background(), "hello")
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	_, create, _ := backend.calls()
	assert.Zero(t, create)
}

func TestController_Open_ReplacesPreviousSession(t *testing.T) {
	backend := newFakeBackend()
	ctrl := NewController(backend, nil)
	require.NoError(t, ctrl.Open(context.Background(), testMeeting(), testEmployees()))

	second := testMeeting()
	second.ID = "m2"
	second.Title = "Retro"
	require.NoError(t, ctrl.Open(context.Background(), second, testEmployees()))

	view, ok := ctrl.View()
	require.True(t, ok)
	assert.Equal(t, "Retro", view.Title)
	assert.Equal(t, "m2", view.MeetingID)
}

func TestController_RequestReply_RejectsNonParticipant(t *testing.T) {
	backend := newFakeBackend()
	ctrl := NewController(backend, nil)
	require.NoError(t, ctrl.Open(context.Background(), testMeeting(), testEmployees()))

	err := ctrl.RequestReply(context.Background(), "emp-z")
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	_, _, trigger := backend.calls()
	assert.Zero(t, trigger)
}

// Scenario from the product brief: one message fetched, user sends a
// second, both render in chronological order.
func TestController_SendMessage_Scenario(t *testing.T) {
	backend := newFakeBackend()
	backend.seed(office.Message{
		ID: "1", MeetingID: "m1", SenderType: office.SenderUser,
		Content: "hi", CreatedAt: backend.now,
	})
	ctrl := NewController(backend, nil)
	require.NoError(t, ctrl.Open(context.Background(), testMeeting(), testEmployees()))

	view, _ := ctrl.View()
	require.Len(t, view.Messages, 1)
	assert.Equal(t, "hi", view.Messages[0].Content)

	require.NoError(t, ctrl.SendMessage(context.Background(), "hello"))

	view, _ = ctrl.View()
	require.Len(t, view.Messages, 2)
	assert.Equal(t, "hi", view.Messages[0].Content)
	assert.Equal(t, "hello", view.Messages[1].Content)
}

func TestController_AskFlow_AppendsEmployeeReply(t *testing.T) {
	backend := newFakeBackend()
	ctrl := NewController(backend, nil)
	require.NoError(t, ctrl.Open(context.Background(), testMeeting(), testEmployees()))

	require.NoError(t, ctrl.SendMessage(context.Background(), "status?"))
	require.NoError(t, ctrl.RequestReply(context.Background(), "emp-a"))

	view, _ := ctrl.View()
	require.Len(t, view.Messages, 2)
	assert.Equal(t, office.SenderEmployee, view.Messages[1].SenderType)
	assert.Equal(t, "emp-a", view.Messages[1].SenderID)
	assert.False(t, view.Pending.Active())
}
