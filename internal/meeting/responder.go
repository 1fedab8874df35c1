// ABOUTME: Responder is the opaque reply-generation boundary
// ABOUTME: CannedResponder produces deterministic persona-flavored replies for dev and tests

package meeting

import (
	"context"
	"fmt"
	"strings"

	"github.com/officehq/office-gateway/internal/office"
)

// Responder generates an employee's contribution to a conversation.
// Implementations own prompt construction and model calls; this service
// only cares about the resulting text.
type Responder interface {
	Respond(ctx context.Context, meeting *office.Meeting, participants []*office.Employee, history []*office.Message, employeeID string) (string, error)
}

// CannedResponder is a deterministic Responder for development and tests.
// It echoes the latest message through the employee's persona instead of
// calling a model.
type CannedResponder struct{}

// Respond implements Responder.
func (CannedResponder) Respond(ctx context.Context, mtg *office.Meeting, participants []*office.Employee, history []*office.Message, employeeID string) (string, error) {
	var emp *office.Employee
	for _, p := range participants {
		if p.ID == employeeID {
			emp = p
			break
		}
	}
	if emp == nil {
		return "", fmt.Errorf("employee %s not among participants", employeeID)
	}

	last := history[len(history)-1]
	expertise := "general knowledge"
	if len(emp.Expertise) > 0 {
		expertise = strings.Join(emp.Expertise, ", ")
	}

	return fmt.Sprintf("%s (%s) on %q: speaking from %s, my take is that we should discuss this further in %s.",
		emp.Name, emp.Role, last.Content, expertise, mtg.Title), nil
}
