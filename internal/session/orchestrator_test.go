// ABOUTME: Tests for Orchestrator command discipline
// ABOUTME: Verifies pending guard, validation rejections, and refresh-always semantics

package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrchestrator(backend *fakeBackend) (*Orchestrator, *Timeline) {
	tl := NewTimeline()
	rec := NewReconciler(backend, tl, nil)
	return NewOrchestrator(backend, rec, tl, nil), tl
}

func TestOrchestrator_SendUserMessage_AppendsAndRefreshes(t *testing.T) {
	backend := newFakeBackend()
	backend.seed(msg("1", 100))
	orch, tl := newOrchestrator(backend)

	require.NoError(t, orch.SendUserMessage(context.Background(), "m1", "hello"))

	snap := tl.Snapshot()
	require.Len(t, snap.Messages, 2)
	assert.Equal(t, "1", snap.Messages[0].ID)
	assert.Equal(t, "hello", snap.Messages[1].Content)
	assert.False(t, snap.Pending.Active(), "pending must clear after completion")
	assert.NoError(t, snap.LastError)
}

func TestOrchestrator_SendUserMessage_RejectsEmptyText(t *testing.T) {
	backend := newFakeBackend()
	orch, _ := newOrchestrator(backend)

	for _, text := range []string{"", "   ", "\n\t "} {
		err := orch.SendUserMessage(context.Background(), "m1", text)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	}

	list, create, _ := backend.calls()
	assert.Zero(t, create, "rejected sends must never reach the backend")
	assert.Zero(t, list)
}

func TestOrchestrator_SendUserMessage_RejectedWhilePending(t *testing.T) {
	backend := newFakeBackend()
	orch, tl := newOrchestrator(backend)

	// Simulate a command still in flight.
	require.NoError(t, tl.SetPending(PendingAction{Kind: PendingSending}))

	err := orch.SendUserMessage(context.Background(), "m1", "hello")
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	_, create, _ := backend.calls()
	assert.Zero(t, create)
}

func TestOrchestrator_RequestEmployeeReply_RejectedWhilePending(t *testing.T) {
	backend := newFakeBackend()
	orch, tl := newOrchestrator(backend)

	require.NoError(t, tl.SetPending(PendingAction{Kind: PendingSending}))

	err := orch.RequestEmployeeReply(context.Background(), "m1", "emp-a")
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	_, _, trigger := backend.calls()
	assert.Zero(t, trigger, "triggerReply must never be invoked while pending")
}

func TestOrchestrator_RequestEmployeeReply_AppendsReply(t *testing.T) {
	backend := newFakeBackend()
	backend.seed(msg("1", 100))
	orch, tl := newOrchestrator(backend)

	require.NoError(t, orch.RequestEmployeeReply(context.Background(), "m1", "emp-a"))

	snap := tl.Snapshot()
	require.Len(t, snap.Messages, 2)
	assert.Equal(t, "emp-a", snap.Messages[1].SenderID)
	assert.False(t, snap.Pending.Active())
}

func TestOrchestrator_SendUserMessage_CreateFailureStillRefreshes(t *testing.T) {
	backend := newFakeBackend()
	backend.seed(msg("1", 100))
	// Create reports failure but the server persisted the message, as in
	// a network timeout after the write.
	backend.createErr = errors.New("timeout")
	backend.createPersists = true
	orch, tl := newOrchestrator(backend)

	err := orch.SendUserMessage(context.Background(), "m1", "hello")
	require.Error(t, err)

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "create message", terr.Op)

	snap := tl.Snapshot()
	require.Len(t, snap.Messages, 2, "refresh after a failed create must surface the persisted message")
	assert.Error(t, snap.LastError)
	assert.False(t, snap.Pending.Active(), "pending must clear even on failure")
}

func TestOrchestrator_SendUserMessage_RetryAfterFailureSucceeds(t *testing.T) {
	backend := newFakeBackend()
	backend.createErr = errors.New("connection refused")
	orch, tl := newOrchestrator(backend)

	require.Error(t, orch.SendUserMessage(context.Background(), "m1", "hello"))
	require.Error(t, tl.Snapshot().LastError)

	// No automatic retry happened: exactly one create call so far.
	_, create, _ := backend.calls()
	require.Equal(t, 1, create)

	// A user-initiated repetition of the command succeeds and clears the error.
	backend.createErr = nil
	require.NoError(t, orch.SendUserMessage(context.Background(), "m1", "hello"))

	snap := tl.Snapshot()
	assert.Len(t, snap.Messages, 1)
	assert.NoError(t, snap.LastError)
}

func TestOrchestrator_RequestEmployeeReply_TriggerFailureSetsError(t *testing.T) {
	backend := newFakeBackend()
	backend.seed(msg("1", 100))
	backend.triggerErr = errors.New("responder unavailable")
	orch, tl := newOrchestrator(backend)

	err := orch.RequestEmployeeReply(context.Background(), "m1", "emp-a")
	require.Error(t, err)

	snap := tl.Snapshot()
	// The trigger failed but the refresh succeeded: history is intact,
	// not cleared. Clearing is a consequence of refresh failure only.
	assert.Len(t, snap.Messages, 1)
	assert.Error(t, snap.LastError)
}
