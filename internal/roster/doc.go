// Package roster manages the employee and meeting catalogs: creation,
// lookup, listing, and soft deletion, with struct-tag validation on all
// inbound payloads. Sessions only ever read from the roster.
package roster
