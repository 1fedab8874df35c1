// Package meeting implements the server-side message pipeline: posting
// messages into a meeting's timeline and generating on-demand employee
// replies through a pluggable Responder.
//
// Message ids and timestamps are minted here, server-side, never by
// clients. The Responder interface keeps actual response generation
// opaque; CannedResponder ships for development and tests.
package meeting
