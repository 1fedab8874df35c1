// ABOUTME: Inbound payload normalization for message lists
// ABOUTME: Accepts raw arrays or data envelopes and both timestamp field names

package client

import (
	"encoding/json"
	"time"

	"github.com/samber/lo"

	"github.com/officehq/office-gateway/internal/office"
)

// wireMessage is the tolerant decode target for one message. Older
// deployments emitted the timestamp under "timestamp" instead of
// "created_at"; both are accepted, created_at winning when present.
type wireMessage struct {
	ID         string     `json:"id"`
	MeetingID  string     `json:"meeting_id"`
	SenderType string     `json:"sender_type"`
	SenderID   *string    `json:"sender_id"`
	SenderName string     `json:"sender_name"`
	Content    string     `json:"content"`
	CreatedAt  *time.Time `json:"created_at"`
	Timestamp  *time.Time `json:"timestamp"`
}

func (w wireMessage) normalize() office.Message {
	msg := office.Message{
		ID:         w.ID,
		MeetingID:  w.MeetingID,
		SenderType: office.SenderType(w.SenderType),
		SenderName: w.SenderName,
		Content:    w.Content,
	}
	if w.SenderID != nil {
		msg.SenderID = *w.SenderID
	}
	switch {
	case w.CreatedAt != nil:
		msg.CreatedAt = *w.CreatedAt
	case w.Timestamp != nil:
		msg.CreatedAt = *w.Timestamp
	}
	return msg
}

// messageEnvelope is the {"data": [...]} wrapper shape.
type messageEnvelope struct {
	Data []wireMessage `json:"data"`
}

// normalizeMessageList decodes body as either an envelope or a raw
// array. A body that parses as neither yields an empty list: a refresh
// should degrade to an empty timeline, not fail outright, on a junk
// payload.
func normalizeMessageList(body []byte) []office.Message {
	var wires []wireMessage

	var env messageEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Data != nil {
		wires = env.Data
	} else if err := json.Unmarshal(body, &wires); err != nil {
		return []office.Message{}
	}

	return lo.Map(wires, func(w wireMessage, _ int) office.Message {
		return w.normalize()
	})
}
