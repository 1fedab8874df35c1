// ABOUTME: Fake backend with call counters shared by the session tests
// ABOUTME: Counters verify that rejected commands never reach the network

package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/officehq/office-gateway/internal/office"
)

// fakeBackend implements Backend in memory. Every call is counted so
// tests can assert that validation rejections never hit the network.
type fakeBackend struct {
	mu       sync.Mutex
	messages []office.Message

	listErr    error
	createErr  error
	triggerErr error

	listCalls    int
	createCalls  int
	triggerCalls int

	// createPersists controls whether a failing CreateMessage still
	// persists its message, simulating a timeout after the server wrote.
	createPersists bool

	now time.Time
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{now: time.Unix(1000, 0).UTC()}
}

func (f *fakeBackend) ListMessages(ctx context.Context, meetingID string) ([]office.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]office.Message, len(f.messages))
	copy(out, f.messages)
	return out, nil
}

func (f *fakeBackend) CreateMessage(ctx context.Context, meetingID string, req CreateMessageRequest) (office.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil && !f.createPersists {
		return office.Message{}, f.createErr
	}

	f.now = f.now.Add(50 * time.Second)
	m := office.Message{
		ID:         uuid.New().String(),
		MeetingID:  meetingID,
		SenderType: req.SenderType,
		SenderName: "User",
		Content:    req.Content,
		CreatedAt:  f.now,
	}
	f.messages = append(f.messages, m)
	if f.createErr != nil {
		return office.Message{}, f.createErr
	}
	return m, nil
}

func (f *fakeBackend) TriggerReply(ctx context.Context, meetingID, employeeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggerCalls++
	if f.triggerErr != nil {
		return f.triggerErr
	}

	f.now = f.now.Add(50 * time.Second)
	f.messages = append(f.messages, office.Message{
		ID:         uuid.New().String(),
		MeetingID:  meetingID,
		SenderType: office.SenderEmployee,
		SenderID:   employeeID,
		SenderName: fmt.Sprintf("employee %s", employeeID),
		Content:    "canned reply",
		CreatedAt:  f.now,
	})
	return nil
}

func (f *fakeBackend) seed(msgs ...office.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msgs...)
}

func (f *fakeBackend) calls() (list, create, trigger int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.createCalls, f.triggerCalls
}
