package domain

import (
	"time"
)

// MessageRole identifies who authored a chat message
type MessageRole string

const (
	MessageRoleCustomer MessageRole = "CUSTOMER"
	MessageRoleAgent    MessageRole = "AGENT"
)

// Message represents a single message in a support conversation
type Message struct {
	Role      MessageRole `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// Chat represents a customer support conversation. Messages are expected
// to be ordered ascending by CreatedAt.
type Chat struct {
	ID         string     `json:"id"`
	OpenedAt   time.Time  `json:"opened_at"`
	PickedUpAt *time.Time `json:"picked_up_at,omitempty"` // first agent assignment
	ResponseAt *time.Time `json:"response_at,omitempty"`  // first agent-authored message
	ClosedAt   *time.Time `json:"closed_at,omitempty"`
	Provider   string     `json:"provider,omitempty"`
	Priority   string     `json:"priority,omitempty"`
	Messages   []Message  `json:"messages,omitempty"`
}

// IsClosed reports whether the conversation has been closed
func (c *Chat) IsClosed() bool {
	return c.ClosedAt != nil
}

// ChatFilter selects chats for recalculation: either a single chat by ID
// or a date range over OpenedAt
type ChatFilter struct {
	ChatID    *string    `json:"chat_id,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// Custom errors
var (
	ErrChatNotFound    = NewDomainError("chat not found")
	ErrSettingNotFound = NewDomainError("setting not found")
	ErrUserNotFound    = NewDomainError("user not found")
)

// DomainError represents a domain-specific error
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}
