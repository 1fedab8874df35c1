// ABOUTME: Tests for Reconciler refresh semantics
// ABOUTME: Covers clear-on-failure, idempotence, and ordering of fetched batches

package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconciler_Refresh_ReplacesTimeline(t *testing.T) {
	backend := newFakeBackend()
	backend.seed(msg("2", 200), msg("1", 100))
	tl := NewTimeline()
	rec := NewReconciler(backend, tl, nil)

	require.NoError(t, rec.Refresh(context.Background(), "m1"))

	snap := tl.Snapshot()
	require.Len(t, snap.Messages, 2)
	assert.Equal(t, "1", snap.Messages[0].ID)
	assert.Equal(t, "2", snap.Messages[1].ID)
}

func TestReconciler_Refresh_Idempotent(t *testing.T) {
	backend := newFakeBackend()
	backend.seed(msg("a", 100), msg("b", 200), msg("c", 150))
	tl := NewTimeline()
	rec := NewReconciler(backend, tl, nil)

	require.NoError(t, rec.Refresh(context.Background(), "m1"))
	first := tl.Snapshot()

	require.NoError(t, rec.Refresh(context.Background(), "m1"))
	second := tl.Snapshot()

	assert.Equal(t, first.Messages, second.Messages)
}

func TestReconciler_Refresh_FailureClearsTimelineAndSetsError(t *testing.T) {
	backend := newFakeBackend()
	backend.seed(msg("a", 100))
	tl := NewTimeline()
	rec := NewReconciler(backend, tl, nil)

	// A successful refresh fills the timeline first.
	require.NoError(t, rec.Refresh(context.Background(), "m1"))
	require.NotEmpty(t, tl.Snapshot().Messages)

	backend.listErr = errors.New("connection refused")
	err := rec.Refresh(context.Background(), "m1")
	require.Error(t, err)

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "list messages", terr.Op)

	snap := tl.Snapshot()
	assert.Empty(t, snap.Messages, "failed refresh must clear the timeline")
	assert.Error(t, snap.LastError)
}

func TestReconciler_Refresh_RecoversAfterFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.seed(msg("a", 100))
	backend.listErr = errors.New("transient blip")
	tl := NewTimeline()
	rec := NewReconciler(backend, tl, nil)

	require.Error(t, rec.Refresh(context.Background(), "m1"))

	backend.listErr = nil
	require.NoError(t, rec.Refresh(context.Background(), "m1"))
	assert.Len(t, tl.Snapshot().Messages, 1)
}
