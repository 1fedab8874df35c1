// ABOUTME: Reconciler merges the backend's authoritative message set into the Timeline
// ABOUTME: A failed refresh clears the timeline so a stale one is never displayed

package session

import (
	"context"
	"log/slog"

	"github.com/officehq/office-gateway/internal/office"
)

// MessageLister is what the reconciler needs from the backend: the
// "list messages for meeting" read. Payload-shape tolerance (raw array vs
// {"data": ...} envelope) is the lister's concern; the reconciler only
// ever sees canonical messages.
type MessageLister interface {
	ListMessages(ctx context.Context, meetingID string) ([]office.Message, error)
}

// Reconciler replaces local timeline state with fetched truth.
type Reconciler struct {
	lister   MessageLister
	timeline *Timeline
	logger   *slog.Logger
}

// NewReconciler creates a reconciler bound to one timeline.
func NewReconciler(lister MessageLister, timeline *Timeline, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		lister:   lister,
		timeline: timeline,
		logger:   logger.With("component", "reconciler"),
	}
}

// Refresh fetches the authoritative message set for meetingID and replaces
// the timeline contents. On failure the timeline is cleared to empty and
// the error recorded, so the UI never renders a stale, possibly
// inconsistent history after a failed fetch. Idempotent: two consecutive
// calls against an unchanged backend yield identical snapshots.
func (r *Reconciler) Refresh(ctx context.Context, meetingID string) error {
	msgs, err := r.lister.ListMessages(ctx, meetingID)
	if err != nil {
		terr := &TransportError{Op: "list messages", Err: err}
		r.timeline.ReplaceAll(nil)
		r.timeline.SetError(terr)
		r.logger.Warn("refresh failed, timeline cleared",
			"meeting_id", meetingID,
			"error", err)
		return terr
	}

	r.timeline.ReplaceAll(msgs)
	r.logger.Debug("timeline refreshed",
		"meeting_id", meetingID,
		"messages", len(msgs))
	return nil
}
