// Package session holds the live, in-memory state for one open meeting
// conversation and serializes every state-mutating backend call against it.
//
// # Components
//
// Four pieces cooperate, leaf-first:
//
//   - Timeline: the state container for the open meeting's messages plus
//     the pending-action and last-error flags. Pure in-memory state; it
//     never touches the network.
//   - Reconciler: fetches the authoritative message set for a meeting and
//     replaces the Timeline contents wholesale.
//   - Orchestrator: the only component allowed to issue mutating backend
//     calls. One command at a time; anything issued while a command is
//     pending is rejected synchronously, never queued.
//   - Controller: the public entry point. Owns the single current-session
//     slot, exposes SendMessage/RequestReply, and projects a read-only
//     View for rendering.
//
// # Ordering
//
// Timelines are a total order by (CreatedAt, ID) ascending, deduplicated
// by ID. Arrival order of fetch responses is irrelevant; a backend may
// return messages out of chronological order or be re-fetched after a gap.
//
// # Failure model
//
// Validation failures (*ValidationError) are rejected before any network
// call and leave state untouched. Transport failures (*TransportError) are
// recoverable: the session stays open, LastError is set for display, and
// the user may retry by repeating the command. A failed refresh clears the
// timeline to empty rather than showing a possibly-inconsistent stale one.
package session
