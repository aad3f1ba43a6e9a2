package ports

import (
	"context"

	"github.com/slatrack/slatrack/internal/domain"
)

// ChatRepository defines the read side of the chat store
type ChatRepository interface {
	// FindByID retrieves a chat by its ID, without messages
	FindByID(ctx context.Context, id string) (*domain.Chat, error)

	// Count returns the number of chats matching the filter
	Count(ctx context.Context, filter domain.ChatFilter) (int, error)

	// ListAfter retrieves up to limit chats matching the filter whose ID is
	// strictly greater than afterID, ordered by ID ascending. Pass an empty
	// afterID for the first page. Messages are not loaded.
	ListAfter(ctx context.Context, filter domain.ChatFilter, afterID string, limit int) ([]*domain.Chat, error)
}

// MessageRepository defines the read side of the message store
type MessageRepository interface {
	// ListByChat retrieves a chat's messages ordered ascending by creation
	// time
	ListByChat(ctx context.Context, chatID string) ([]domain.Message, error)
}

// SLAMetricsRepository is the persistence sink for computed metrics.
// Metrics are derived values: writes overwrite, last writer wins.
type SLAMetricsRepository interface {
	// Upsert stores the metrics for a chat, replacing any previous row
	Upsert(ctx context.Context, metrics *domain.SLAMetrics) error

	// FindByChat retrieves the stored metrics for a chat
	FindByChat(ctx context.Context, chatID string) (*domain.SLAMetrics, error)
}

// SettingsRepository reads configuration values from the key/value settings
// store. Values are string-encoded JSON.
type SettingsRepository interface {
	// Get returns the raw value for a key, or domain.ErrSettingNotFound
	Get(ctx context.Context, key string) (string, error)
}

// UserRepository defines the read side of the operator account store
type UserRepository interface {
	// FindByEmail retrieves a user by email, or domain.ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
