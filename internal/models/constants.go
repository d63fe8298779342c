// Package models contains data types and constants for the support chat API.
package models

import (
	"fmt"
	"time"
)

// Endpoint paths, relative to the configured API base URL
const (
	PathConversation = "/api/conversations/%d"
	PathMessages     = "/api/conversations/%d/messages"
)

// ConversationPath returns the path of a single conversation
func ConversationPath(conversationID int64) string {
	return fmt.Sprintf(PathConversation, conversationID)
}

// MessagesPath returns the path of a conversation's message collection
func MessagesPath(conversationID int64) string {
	return fmt.Sprintf(PathMessages, conversationID)
}

// TypingWindow is how long the typing indicator stays on after a customer
// message is accepted by the server.
const TypingWindow = 2000 * time.Millisecond

// Header fallbacks shown when the conversation snapshot lacks a field
const (
	DefaultCustomerName    = "Customer"
	DefaultCustomerContact = "Customer since March 2024"
	DefaultStatus          = "Active"
)

// Send failure notification text
const (
	SendErrorTitle       = "Error"
	SendErrorDescription = "Failed to send message. Please try again."
)

// DefaultHeaders returns the headers sent with every API request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Accept":       "application/json",
		"Content-Type": "application/json",
		"User-Agent":   "supportchat/" + Version,
	}
}

// Version is the client version reported in the User-Agent header
var Version = "0.1.0"
