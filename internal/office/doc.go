// Package office defines the core domain types of the virtual office:
// AI employees, meetings, and the messages exchanged inside a meeting.
//
// The types here are transport-agnostic. Wire-format concerns (alternate
// field names, envelope shapes) are handled at the boundaries: the HTTP
// client normalizes inbound payloads into these canonical records once,
// and nothing downstream branches on shape again.
package office
