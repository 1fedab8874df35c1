// ABOUTME: Controller owns the single current-session slot and the public command surface
// ABOUTME: Open/Exit are the only lifecycle transitions; View projects read-only state

package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/samber/lo"

	"github.com/officehq/office-gateway/internal/office"
)

// Backend is the full set of backend operations a session consumes.
type Backend interface {
	MessageLister
	MessageWriter
}

// Participant is an employee as rendered inside a meeting view. Employees
// referenced by the meeting but missing from the provided roster get a
// placeholder role instead of causing an error.
type Participant struct {
	ID   string
	Name string
	Role string
}

// PlaceholderRole is rendered for participants whose employee record was
// not found in the roster provided at Open time.
const PlaceholderRole = "Unknown"

// View is the read-only projection handed to the UI collaborator. The
// core never renders markup or formats dates itself.
type View struct {
	MeetingID    string
	Title        string
	Description  string
	Participants []Participant
	Messages     []office.Message
	Pending      PendingAction
	LastError    error
}

// conversationSession is the ephemeral state for one open meeting. It is
// created on Open, lives while the meeting is the active view, and is
// discarded on Exit. Never persisted.
type conversationSession struct {
	meeting      office.Meeting
	participants []Participant
	timeline     *Timeline
	orchestrator *Orchestrator
	reconciler   *Reconciler
}

// Controller is the public entry point for meeting conversations. It owns
// a single current-session slot: no two sessions ever coexist for one
// controller instance.
type Controller struct {
	backend Backend
	logger  *slog.Logger

	mu      sync.Mutex
	current *conversationSession
}

// NewController creates a controller over the given backend.
func NewController(backend Backend, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		backend: backend,
		logger:  logger.With("component", "session"),
	}
}

// Open constructs a fresh session for meeting and performs the initial
// refresh. Any previously open session is discarded first. A failed
// initial refresh leaves the session open with an empty timeline and
// LastError set; the returned error reports the failure but is
// recoverable.
func (c *Controller) Open(ctx context.Context, meeting office.Meeting, employees []office.Employee) error {
	timeline := NewTimeline()
	reconciler := NewReconciler(c.backend, timeline, c.logger)
	sess := &conversationSession{
		meeting:      meeting,
		participants: resolveParticipants(meeting, employees),
		timeline:     timeline,
		orchestrator: NewOrchestrator(c.backend, reconciler, timeline, c.logger),
		reconciler:   reconciler,
	}

	c.mu.Lock()
	c.current = sess
	c.mu.Unlock()

	c.logger.Info("meeting session opened",
		"meeting_id", meeting.ID,
		"participants", len(sess.participants))

	return reconciler.Refresh(ctx, meeting.ID)
}

// Exit discards the current session. No backend call is made; messages
// live server-side and re-entering the meeting re-fetches them.
func (c *Controller) Exit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil {
		c.logger.Info("meeting session closed", "meeting_id", c.current.meeting.ID)
	}
	c.current = nil
}

// SendMessage posts text as the user into the open meeting.
func (c *Controller) SendMessage(ctx context.Context, text string) error {
	sess := c.session()
	if sess == nil {
		return &ValidationError{Reason: ErrNoSession.Error()}
	}
	return sess.orchestrator.SendUserMessage(ctx, sess.meeting.ID, text)
}

// RequestReply asks the given participant to respond to the conversation.
// Employees outside the meeting's participant set are rejected.
func (c *Controller) RequestReply(ctx context.Context, employeeID string) error {
	sess := c.session()
	if sess == nil {
		return &ValidationError{Reason: ErrNoSession.Error()}
	}
	if !lo.Contains(sess.meeting.EmployeeIDs, employeeID) {
		return &ValidationError{Reason: "employee " + employeeID + " is not a participant of this meeting"}
	}
	return sess.orchestrator.RequestEmployeeReply(ctx, sess.meeting.ID, employeeID)
}

// Refresh re-fetches the open meeting's timeline on demand.
func (c *Controller) Refresh(ctx context.Context) error {
	sess := c.session()
	if sess == nil {
		return &ValidationError{Reason: ErrNoSession.Error()}
	}
	return sess.reconciler.Refresh(ctx, sess.meeting.ID)
}

// View returns the current projection for rendering. ok is false when no
// session is open.
func (c *Controller) View() (View, bool) {
	sess := c.session()
	if sess == nil {
		return View{}, false
	}

	snap := sess.timeline.Snapshot()
	return View{
		MeetingID:    sess.meeting.ID,
		Title:        sess.meeting.Title,
		Description:  sess.meeting.Description,
		Participants: sess.participants,
		Messages:     snap.Messages,
		Pending:      snap.Pending,
		LastError:    snap.LastError,
	}, true
}

func (c *Controller) session() *conversationSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// resolveParticipants maps the meeting's employee ids onto the provided
// roster, keeping the meeting's id order. Ids with no matching employee
// are rendered with a placeholder rather than dropped.
func resolveParticipants(meeting office.Meeting, employees []office.Employee) []Participant {
	return lo.Map(meeting.EmployeeIDs, func(id string, _ int) Participant {
		emp, found := lo.Find(employees, func(e office.Employee) bool {
			return e.ID == id
		})
		if !found {
			return Participant{ID: id, Name: id, Role: PlaceholderRole}
		}
		return Participant{ID: emp.ID, Name: emp.Name, Role: emp.Role}
	})
}
