package models

import "time"

// Conversation is a customer support thread snapshot
type Conversation struct {
	ID            int64     `json:"id"`
	CustomerName  string    `json:"customerName,omitempty"`
	CustomerEmail string    `json:"customerEmail,omitempty"`
	Status        string    `json:"status,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}

// DisplayName returns the customer name or its fallback.
// Safe to call on a nil snapshot.
func (c *Conversation) DisplayName() string {
	if c == nil || c.CustomerName == "" {
		return DefaultCustomerName
	}
	return c.CustomerName
}

// Contact returns the customer contact string or its fallback
func (c *Conversation) Contact() string {
	if c == nil || c.CustomerEmail == "" {
		return DefaultCustomerContact
	}
	return c.CustomerEmail
}

// StatusLabel returns the conversation status or its fallback
func (c *Conversation) StatusLabel() string {
	if c == nil || c.Status == "" {
		return DefaultStatus
	}
	return c.Status
}
