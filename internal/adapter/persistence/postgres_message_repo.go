package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/slatrack/slatrack/internal/domain"
	"github.com/slatrack/slatrack/internal/ports"
)

// PostgresMessageRepository implements MessageRepository using PostgreSQL
type PostgresMessageRepository struct {
	db *sql.DB
}

// NewPostgresMessageRepository creates a new PostgreSQL message repository
func NewPostgresMessageRepository(db *sql.DB) ports.MessageRepository {
	return &PostgresMessageRepository{db: db}
}

// ListByChat retrieves a chat's messages ordered ascending by creation time
func (r *PostgresMessageRepository) ListByChat(ctx context.Context, chatID string) ([]domain.Message, error) {
	query := `
		SELECT role, created_at
		FROM chat_messages
		WHERE chat_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.Role, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	return messages, nil
}
