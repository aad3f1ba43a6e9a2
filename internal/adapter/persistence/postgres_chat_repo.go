package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/slatrack/slatrack/internal/domain"
	"github.com/slatrack/slatrack/internal/ports"
)

// PostgresChatRepository implements ChatRepository using PostgreSQL
type PostgresChatRepository struct {
	db *sql.DB
}

// NewPostgresChatRepository creates a new PostgreSQL chat repository
func NewPostgresChatRepository(db *sql.DB) ports.ChatRepository {
	return &PostgresChatRepository{db: db}
}

const chatColumns = "id, opened_at, picked_up_at, response_at, closed_at, provider, priority"

// FindByID retrieves a chat by its ID, without messages
func (r *PostgresChatRepository) FindByID(ctx context.Context, id string) (*domain.Chat, error) {
	query := fmt.Sprintf("SELECT %s FROM chats WHERE id = $1", chatColumns)

	chat, err := scanChat(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrChatNotFound
		}
		return nil, fmt.Errorf("failed to find chat: %w", err)
	}

	return chat, nil
}

// Count returns the number of chats matching the filter
func (r *PostgresChatRepository) Count(ctx context.Context, filter domain.ChatFilter) (int, error) {
	query := "SELECT COUNT(*) FROM chats"
	where, args := buildChatFilter(filter, 0)
	if where != "" {
		query += " WHERE " + where
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count chats: %w", err)
	}

	return count, nil
}

// ListAfter retrieves up to limit chats with ID strictly greater than
// afterID, ordered by ID ascending. This is the keyset pagination step the
// recalculation driver advances batch by batch.
func (r *PostgresChatRepository) ListAfter(ctx context.Context, filter domain.ChatFilter, afterID string, limit int) ([]*domain.Chat, error) {
	conditions := []string{}
	args := []interface{}{}

	where, filterArgs := buildChatFilter(filter, 0)
	if where != "" {
		conditions = append(conditions, where)
		args = append(args, filterArgs...)
	}

	if afterID != "" {
		conditions = append(conditions, fmt.Sprintf("id > $%d", len(args)+1))
		args = append(args, afterID)
	}

	query := fmt.Sprintf("SELECT %s FROM chats", chatColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY id ASC LIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer rows.Close()

	var chats []*domain.Chat
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		chats = append(chats, chat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chats: %w", err)
	}

	return chats, nil
}

// buildChatFilter renders the filter's WHERE conditions with placeholders
// starting after offset
func buildChatFilter(filter domain.ChatFilter, offset int) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}

	if filter.ChatID != nil {
		args = append(args, *filter.ChatID)
		conditions = append(conditions, fmt.Sprintf("id = $%d", offset+len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("opened_at >= $%d", offset+len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("opened_at <= $%d", offset+len(args)))
	}

	return strings.Join(conditions, " AND "), args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanChat(row rowScanner) (*domain.Chat, error) {
	var chat domain.Chat
	var pickedUpAt, responseAt, closedAt sql.NullTime
	var provider, priority sql.NullString

	if err := row.Scan(
		&chat.ID,
		&chat.OpenedAt,
		&pickedUpAt,
		&responseAt,
		&closedAt,
		&provider,
		&priority,
	); err != nil {
		return nil, err
	}

	if pickedUpAt.Valid {
		chat.PickedUpAt = &pickedUpAt.Time
	}
	if responseAt.Valid {
		chat.ResponseAt = &responseAt.Time
	}
	if closedAt.Valid {
		chat.ClosedAt = &closedAt.Time
	}
	chat.Provider = provider.String
	chat.Priority = priority.String

	return &chat, nil
}
