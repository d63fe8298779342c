package api

import (
	"context"
	"sync"
	"time"

	"github.com/diogo/supportchat/internal/models"
)

// MockSupportClient is an in-memory implementation of SupportClientInterface
// for tests. It keeps one thread and appends sent messages to it.
type MockSupportClient struct {
	mu sync.Mutex

	// Mock return values
	Conversation    *models.Conversation
	ConversationErr error
	Messages        []models.Message
	ListErr         error
	SendErr         error
	// Reply, when set, is appended after each successful send
	Reply func(sent models.Message) *models.Message

	// Call counters/recorders
	ListCalls   int
	SendCalls   int
	LastContent string
	CloseCalled bool
	nextID      int64
}

var _ SupportClientInterface = (*MockSupportClient)(nil)

// ListMessages implements SupportClientInterface
func (m *MockSupportClient) ListMessages(ctx context.Context, conversationID int64) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]models.Message, len(m.Messages))
	copy(out, m.Messages)
	return out, nil
}

// SendMessage implements SupportClientInterface
func (m *MockSupportClient) SendMessage(ctx context.Context, conversationID int64, content string) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendCalls++
	m.LastContent = content
	if m.SendErr != nil {
		return nil, m.SendErr
	}

	msg := models.Message{
		ID:             m.allocID(),
		ConversationID: conversationID,
		Sender:         models.SenderCustomer,
		Content:        content,
		Timestamp:      time.Now(),
	}
	m.Messages = append(m.Messages, msg)

	if m.Reply != nil {
		if reply := m.Reply(msg); reply != nil {
			r := *reply
			r.ID = m.allocID()
			r.ConversationID = conversationID
			m.Messages = append(m.Messages, r)
		}
	}
	return &msg, nil
}

// GetConversation implements SupportClientInterface
func (m *MockSupportClient) GetConversation(ctx context.Context, conversationID int64) (*models.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ConversationErr != nil {
		return nil, m.ConversationErr
	}
	return m.Conversation, nil
}

// Close implements SupportClientInterface
func (m *MockSupportClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
}

func (m *MockSupportClient) allocID() int64 {
	for _, msg := range m.Messages {
		if msg.ID > m.nextID {
			m.nextID = msg.ID
		}
	}
	m.nextID++
	return m.nextID
}
