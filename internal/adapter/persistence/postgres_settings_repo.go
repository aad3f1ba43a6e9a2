package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/slatrack/slatrack/internal/domain"
	"github.com/slatrack/slatrack/internal/ports"
)

// PostgresSettingsRepository implements SettingsRepository using
// PostgreSQL. Settings live in a key/value table whose values are
// string-encoded JSON.
type PostgresSettingsRepository struct {
	db *sql.DB
}

// NewPostgresSettingsRepository creates a new PostgreSQL settings repository
func NewPostgresSettingsRepository(db *sql.DB) ports.SettingsRepository {
	return &PostgresSettingsRepository{db: db}
}

// Get returns the raw value for a key
func (r *PostgresSettingsRepository) Get(ctx context.Context, key string) (string, error) {
	query := "SELECT value FROM app_settings WHERE key = $1"

	var value string
	if err := r.db.QueryRowContext(ctx, query, key).Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", domain.ErrSettingNotFound
		}
		return "", fmt.Errorf("failed to read setting: %w", err)
	}

	return value, nil
}
