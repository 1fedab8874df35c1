// Package client is the HTTP client for the office gateway API. It is
// the backend collaborator the session package talks to.
//
// All inbound payload tolerance lives here: message lists may arrive as
// a raw JSON array or wrapped in a {"data": [...]} envelope, and message
// timestamps may use either the created_at or the legacy timestamp field
// name. Payloads are normalized into office types once, at this
// boundary; nothing downstream branches on shape.
package client
