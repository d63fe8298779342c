package models

import (
	"encoding/json"
	"time"
)

// Sender identifies who authored a message
type Sender string

const (
	SenderCustomer Sender = "customer"
	SenderAI       Sender = "ai"
)

// IsAI reports whether the message was produced by the assistant
func (s Sender) IsAI() bool {
	return s == SenderAI
}

// Message is one turn of a conversation as returned by the API
type Message struct {
	ID             int64            `json:"id"`
	ConversationID int64            `json:"conversationId"`
	Sender         Sender           `json:"sender"`
	Content        string           `json:"content"`
	Timestamp      time.Time        `json:"timestamp"`
	Metadata       *MessageMetadata `json:"metadata,omitempty"`
}

// Confidence returns the reply confidence and whether it was reported
func (m Message) Confidence() (float64, bool) {
	if m.Metadata == nil || m.Metadata.Confidence == nil {
		return 0, false
	}
	return *m.Metadata.Confidence, true
}

// MessageMetadata is the optional metadata bag attached to a message.
// Keys other than the known ones are kept in Extra.
type MessageMetadata struct {
	Confidence *float64                   `json:"confidence,omitempty"`
	Extra      map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the known keys and keeps the rest. A metadata value
// that is not an object, or a confidence that is not a number, leaves
// Confidence unset instead of failing the message.
func (md *MessageMetadata) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	if v, ok := raw["confidence"]; ok {
		var c *float64
		if json.Unmarshal(v, &c) == nil {
			md.Confidence = c
			delete(raw, "confidence")
		}
	}

	if len(raw) > 0 {
		md.Extra = raw
	}
	return nil
}

// NewMessageRequest is the body of a create-message request
type NewMessageRequest struct {
	Content string `json:"content"`
	Sender  Sender `json:"sender"`
}
