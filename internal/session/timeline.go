// ABOUTME: Timeline is the state container for one open meeting's messages
// ABOUTME: Holds the pending-action guard and last-error flag; never calls the network

package session

import (
	"sync"

	"github.com/officehq/office-gateway/internal/office"
)

// PendingKind enumerates the in-flight command states.
type PendingKind int

const (
	PendingNone PendingKind = iota
	PendingSending
	PendingAwaitingReply
)

// PendingAction is the in-flight command guard. At most one non-none
// action is active per session; it is the sole concurrency control.
type PendingAction struct {
	Kind       PendingKind
	EmployeeID string // set when Kind is PendingAwaitingReply
}

// Active reports whether a command is in flight.
func (p PendingAction) Active() bool {
	return p.Kind != PendingNone
}

func (p PendingAction) String() string {
	switch p.Kind {
	case PendingSending:
		return "sending"
	case PendingAwaitingReply:
		return "awaitingReply:" + p.EmployeeID
	default:
		return "none"
	}
}

// Snapshot is an immutable read-only view of a Timeline for rendering.
// Messages is a private copy; mutating it does not affect the Timeline.
type Snapshot struct {
	Messages  []office.Message
	Pending   PendingAction
	LastError error
}

// Timeline holds the message sequence and command flags for exactly one
// meeting. Safe for concurrent use.
type Timeline struct {
	mu       sync.Mutex
	messages []office.Message
	pending  PendingAction
	lastErr  error
}

// NewTimeline returns an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{}
}

// ReplaceAll atomically replaces the message sequence with a deduplicated
// (by ID, first wins) copy of msgs sorted by (CreatedAt, ID) ascending.
// It never partially applies.
func (t *Timeline) ReplaceAll(msgs []office.Message) {
	next := office.DedupeMessages(msgs)
	office.SortMessages(next)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = next
}

// SetPending transitions the pending action. Setting a non-none action
// while another is active is a conflict: the transition is a no-op and
// ErrActionPending is returned. Clearing (setting none) always succeeds.
func (t *Timeline) SetPending(p PendingAction) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if p.Active() && t.pending.Active() {
		return ErrActionPending
	}
	t.pending = p
	return nil
}

// SetError records err for display. A nil err clears it.
func (t *Timeline) SetError(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastErr = err
}

// ClearError discards any recorded error.
func (t *Timeline) ClearError() {
	t.SetError(nil)
}

// Snapshot returns a copy-on-read view of the current state. The returned
// slice never aliases the timeline's internal storage.
func (t *Timeline) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	msgs := make([]office.Message, len(t.messages))
	copy(msgs, t.messages)
	return Snapshot{
		Messages:  msgs,
		Pending:   t.pending,
		LastError: t.lastErr,
	}
}
