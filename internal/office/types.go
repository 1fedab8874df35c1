// ABOUTME: Canonical domain types for employees, meetings, and messages
// ABOUTME: Includes the (createdAt, id) ordering rule used by every timeline

package office

import (
	"sort"
	"time"
)

// SenderType identifies who authored a message.
type SenderType string

const (
	SenderUser     SenderType = "user"
	SenderEmployee SenderType = "employee"
)

// LLM provider names accepted for employees.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Employee is a configurable AI participant. Immutable from a session's
// perspective; the roster service owns its lifecycle.
type Employee struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Personality  string    `json:"personality"`
	Expertise    []string  `json:"expertise"`
	LLMProvider  string    `json:"llm_provider"`
	LLMModel     string    `json:"llm_model"`
	SystemPrompt string    `json:"system_prompt,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	IsActive     bool      `json:"is_active"`
}

// Meeting is a conversation room convening two or more employees with the
// user. EmployeeIDs is fixed at creation and never mutated afterwards.
type Meeting struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"` // may contain markdown
	EmployeeIDs []string  `json:"employee_ids"`
	CreatedAt   time.Time `json:"created_at"`
	IsActive    bool      `json:"is_active"`
}

// Message is a single entry in a meeting timeline. IDs are assigned by the
// server; clients never mint them.
type Message struct {
	ID         string     `json:"id"`
	MeetingID  string     `json:"meeting_id"`
	SenderType SenderType `json:"sender_type"`
	SenderID   string     `json:"sender_id,omitempty"` // employee id when SenderType is employee
	SenderName string     `json:"sender_name"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Less reports whether m sorts before other under the timeline order:
// ascending by CreatedAt, ties broken by ID. The tie-break keeps repeated
// refreshes from reordering previously-seen messages when the backend
// hands out coarse timestamps.
func (m Message) Less(other Message) bool {
	if !m.CreatedAt.Equal(other.CreatedAt) {
		return m.CreatedAt.Before(other.CreatedAt)
	}
	return m.ID < other.ID
}

// SortMessages orders msgs in place by (CreatedAt, ID) ascending.
func SortMessages(msgs []Message) {
	sort.Slice(msgs, func(i, j int) bool {
		return msgs[i].Less(msgs[j])
	})
}

// DedupeMessages returns a copy of msgs with duplicate IDs removed, first
// occurrence wins. Order of the input is preserved.
func DedupeMessages(msgs []Message) []Message {
	seen := make(map[string]struct{}, len(msgs))
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	return out
}
