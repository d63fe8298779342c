package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/supportchat/internal/errors"
	"github.com/diogo/supportchat/internal/models"
)

// ListMessages returns the conversation's messages in server order
func (c *SupportClient) ListMessages(ctx context.Context, conversationID int64) ([]models.Message, error) {
	path := models.MessagesPath(conversationID)
	data, err := c.do(ctx, "list messages", http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeMessages(data, path)
}

// SendMessage posts a customer message and returns the created record
func (c *SupportClient) SendMessage(ctx context.Context, conversationID int64, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apierrors.ErrEmptyContent
	}

	body, err := json.Marshal(models.NewMessageRequest{
		Content: content,
		Sender:  models.SenderCustomer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	path := models.MessagesPath(conversationID)
	data, err := c.do(ctx, "send message", http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	return decodeMessage(data, path)
}

// GetConversation returns the conversation snapshot
func (c *SupportClient) GetConversation(ctx context.Context, conversationID int64) (*models.Conversation, error) {
	path := models.ConversationPath(conversationID)
	data, err := c.do(ctx, "get conversation", http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeConversation(data, path)
}

// decodeMessages accepts a bare array or an envelope {"messages": [...]}.
// An empty body or null is an empty thread.
func decodeMessages(data []byte, path string) ([]models.Message, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return []models.Message{}, nil
	}
	if !gjson.ValidBytes(data) {
		return nil, apierrors.NewParseError("response is not valid JSON", path)
	}

	parsed := gjson.ParseBytes(data)
	var raw string
	switch {
	case parsed.Type == gjson.Null:
		return []models.Message{}, nil
	case parsed.IsArray():
		raw = parsed.Raw
	case parsed.Get("messages").IsArray():
		raw = parsed.Get("messages").Raw
	default:
		return nil, apierrors.NewParseError("expected a list of messages", path)
	}

	messages := []models.Message{}
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		return nil, apierrors.NewParseError(fmt.Sprintf("invalid message list: %v", err), path)
	}
	return messages, nil
}

// decodeMessage accepts a bare object or an envelope {"message": {...}}
func decodeMessage(data []byte, path string) (*models.Message, error) {
	raw, err := unwrapObject(data, path, "message")
	if err != nil {
		return nil, err
	}
	var msg models.Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, apierrors.NewParseError(fmt.Sprintf("invalid message: %v", err), path)
	}
	return &msg, nil
}

// decodeConversation accepts a bare object or an envelope {"conversation": {...}}
func decodeConversation(data []byte, path string) (*models.Conversation, error) {
	raw, err := unwrapObject(data, path, "conversation")
	if err != nil {
		return nil, err
	}
	var conv models.Conversation
	if err := json.Unmarshal(raw, &conv); err != nil {
		return nil, apierrors.NewParseError(fmt.Sprintf("invalid conversation: %v", err), path)
	}
	return &conv, nil
}

func unwrapObject(data []byte, path, envelopeKey string) ([]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, apierrors.NewParseError("response is not valid JSON", path)
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return nil, apierrors.NewParseError("expected a JSON object", path)
	}
	if inner := parsed.Get(envelopeKey); inner.IsObject() {
		return []byte(inner.Raw), nil
	}
	return data, nil
}
