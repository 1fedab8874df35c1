// ABOUTME: HTTP client for the office gateway REST API
// ABOUTME: Implements the session backend plus read access to the roster

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/officehq/office-gateway/internal/office"
	"github.com/officehq/office-gateway/internal/session"
)

// Client talks to the office gateway HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the gateway at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithHTTPClient creates a client with a caller-supplied http.Client,
// for tests and custom transports.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	c := New(baseURL)
	c.http = hc
	return c
}

// ListEmployees returns the full employee roster.
func (c *Client) ListEmployees(ctx context.Context) ([]office.Employee, error) {
	var employees []office.Employee
	if err := c.get(ctx, "/employees", &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// ListMeetings returns all meetings.
func (c *Client) ListMeetings(ctx context.Context) ([]office.Meeting, error) {
	var meetings []office.Meeting
	if err := c.get(ctx, "/meetings", &meetings); err != nil {
		return nil, err
	}
	return meetings, nil
}

// GetMeeting returns one meeting by id.
func (c *Client) GetMeeting(ctx context.Context, id string) (office.Meeting, error) {
	var meeting office.Meeting
	if err := c.get(ctx, "/meetings/"+id, &meeting); err != nil {
		return office.Meeting{}, err
	}
	return meeting, nil
}

// ListMessages returns a meeting's timeline, normalized into canonical
// messages. The server may respond with a raw array or a {"data": [...]}
// envelope; a body that parses as neither yields an empty timeline
// rather than an error.
func (c *Client) ListMessages(ctx context.Context, meetingID string) ([]office.Message, error) {
	body, err := c.doRaw(ctx, http.MethodGet, "/meetings/"+meetingID+"/messages", nil)
	if err != nil {
		return nil, err
	}
	return normalizeMessageList(body), nil
}

// CreateMessage posts a message into a meeting. The result is returned
// for convenience, but callers re-read authoritative state afterwards
// rather than trusting it.
func (c *Client) CreateMessage(ctx context.Context, meetingID string, req session.CreateMessageRequest) (office.Message, error) {
	payload := map[string]any{
		"meeting_id":  meetingID,
		"content":     req.Content,
		"sender_type": string(req.SenderType),
	}

	body, err := c.doRaw(ctx, http.MethodPost, "/meetings/"+meetingID+"/messages", payload)
	if err != nil {
		return office.Message{}, err
	}

	var wire wireMessage
	if err := json.Unmarshal(body, &wire); err != nil {
		// The write succeeded; an odd response body is not a failure.
		return office.Message{}, nil
	}
	return wire.normalize(), nil
}

// TriggerReply asks the gateway to generate employeeID's reply. The
// response body is opaque; the refreshed timeline is the source of truth.
func (c *Client) TriggerReply(ctx context.Context, meetingID, employeeID string) error {
	_, err := c.doRaw(ctx, http.MethodPost, "/meetings/"+meetingID+"/messages/"+employeeID+"/respond", nil)
	return err
}

// get issues a GET and decodes the response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	body, err := c.doRaw(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// doRaw issues a request and returns the response body. Non-2xx statuses
// are errors carrying a snippet of the body.
func (c *Client) doRaw(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, snippet(body))
	}
	return body, nil
}

func snippet(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
