// Package gateway exposes the office HTTP API: employee and meeting
// CRUD, meeting timelines, and on-demand employee replies.
//
// Routes:
//
//	POST   /employees
//	GET    /employees
//	GET    /employees/{id}
//	DELETE /employees/{id}
//	POST   /meetings
//	GET    /meetings
//	GET    /meetings/{id}
//	GET    /meetings/{id}/messages
//	POST   /meetings/{id}/messages
//	POST   /meetings/{id}/messages/{employeeID}/respond
//	GET    /healthz
//
// The message list endpoint responds with a {"data": [...]} envelope;
// the other list endpoints respond with raw arrays. Clients are expected
// to tolerate both shapes.
package gateway
