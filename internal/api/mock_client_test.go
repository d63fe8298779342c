package api

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogo/supportchat/internal/models"
)

func TestMockSupportClient_SendAppendsReply(t *testing.T) {
	mock := &MockSupportClient{
		Messages: []models.Message{{ID: 4, Sender: models.SenderAI, Content: "Hello"}},
		Reply: func(sent models.Message) *models.Message {
			return &models.Message{Sender: models.SenderAI, Content: "echo: " + sent.Content}
		},
	}

	msg, err := mock.SendMessage(context.Background(), 42, "Need help")
	require.NoError(t, err)
	assert.Equal(t, int64(5), msg.ID)

	messages, err := mock.ListMessages(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "echo: Need help", messages[2].Content)
	assert.Equal(t, int64(6), messages[2].ID)
	assert.Equal(t, 1, mock.SendCalls)
	assert.Equal(t, 1, mock.ListCalls)
}

func TestMockSupportClient_Errors(t *testing.T) {
	boom := errors.New("boom")
	mock := &MockSupportClient{SendErr: boom, ListErr: boom}

	_, err := mock.SendMessage(context.Background(), 1, "x")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "x", mock.LastContent)
	assert.Empty(t, mock.Messages)

	_, err = mock.ListMessages(context.Background(), 1)
	assert.ErrorIs(t, err, boom)

	mock.Close()
	assert.True(t, mock.CloseCalled)
}
