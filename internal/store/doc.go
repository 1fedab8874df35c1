// Package store provides persistent storage for the office gateway using
// SQLite.
//
// # Architecture
//
// The Store interface covers the three entity families: employees,
// meetings, and messages. SQLiteStore implements it on modernc.org/sqlite
// (pure Go, no cgo) with WAL mode and foreign keys enabled. Schema is
// created automatically on open.
//
// # Data models
//
// Entities are the canonical office types:
//
//   - office.Employee: roster entry; deletes are soft (is_active=0)
//     because messages keep referencing the sender
//   - office.Meeting: room metadata plus its fixed participant id set,
//     stored as a JSON array column
//   - office.Message: timeline entry, listed in (created_at, id) order
//
// # Error handling
//
//   - ErrNotFound: requested entity does not exist
//   - ErrDuplicateID: insert collided with an existing primary key
//
// All methods accept context.Context. Timestamps are stored as RFC3339
// strings in UTC.
package store
