package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/slatrack/slatrack/internal/domain"
	"github.com/slatrack/slatrack/internal/ports"
)

// PostgresSLAMetricsRepository implements SLAMetricsRepository using
// PostgreSQL. Metrics are derived values keyed by chat, so writes are
// upserts and the last writer wins.
type PostgresSLAMetricsRepository struct {
	db *sql.DB
}

// NewPostgresSLAMetricsRepository creates a new PostgreSQL metrics repository
func NewPostgresSLAMetricsRepository(db *sql.DB) ports.SLAMetricsRepository {
	return &PostgresSLAMetricsRepository{db: db}
}

// Upsert stores the metrics for a chat, replacing any previous row
func (r *PostgresSLAMetricsRepository) Upsert(ctx context.Context, metrics *domain.SLAMetrics) error {
	query := `
		INSERT INTO chat_sla_metrics (
			chat_id,
			pickup_seconds, first_response_seconds, avg_response_seconds, resolution_seconds,
			pickup_sla, first_response_sla, avg_response_sla, resolution_sla, overall_sla,
			pickup_seconds_bh, first_response_seconds_bh, avg_response_seconds_bh, resolution_seconds_bh,
			pickup_sla_bh, first_response_sla_bh, avg_response_sla_bh, resolution_sla_bh, overall_sla_bh,
			calculated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (chat_id) DO UPDATE SET
			pickup_seconds = EXCLUDED.pickup_seconds,
			first_response_seconds = EXCLUDED.first_response_seconds,
			avg_response_seconds = EXCLUDED.avg_response_seconds,
			resolution_seconds = EXCLUDED.resolution_seconds,
			pickup_sla = EXCLUDED.pickup_sla,
			first_response_sla = EXCLUDED.first_response_sla,
			avg_response_sla = EXCLUDED.avg_response_sla,
			resolution_sla = EXCLUDED.resolution_sla,
			overall_sla = EXCLUDED.overall_sla,
			pickup_seconds_bh = EXCLUDED.pickup_seconds_bh,
			first_response_seconds_bh = EXCLUDED.first_response_seconds_bh,
			avg_response_seconds_bh = EXCLUDED.avg_response_seconds_bh,
			resolution_seconds_bh = EXCLUDED.resolution_seconds_bh,
			pickup_sla_bh = EXCLUDED.pickup_sla_bh,
			first_response_sla_bh = EXCLUDED.first_response_sla_bh,
			avg_response_sla_bh = EXCLUDED.avg_response_sla_bh,
			resolution_sla_bh = EXCLUDED.resolution_sla_bh,
			overall_sla_bh = EXCLUDED.overall_sla_bh,
			calculated_at = EXCLUDED.calculated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		metrics.ChatID,
		nullInt64(metrics.PickupSeconds),
		nullInt64(metrics.FirstResponseSeconds),
		nullFloat64(metrics.AvgResponseSeconds),
		nullInt64(metrics.ResolutionSeconds),
		string(metrics.PickupSLA),
		string(metrics.FirstResponseSLA),
		string(metrics.AvgResponseSLA),
		string(metrics.ResolutionSLA),
		string(metrics.OverallSLA),
		nullInt64(metrics.PickupSecondsBH),
		nullInt64(metrics.FirstResponseSecondsBH),
		nullFloat64(metrics.AvgResponseSecondsBH),
		nullInt64(metrics.ResolutionSecondsBH),
		string(metrics.PickupSLABH),
		string(metrics.FirstResponseSLABH),
		string(metrics.AvgResponseSLABH),
		string(metrics.ResolutionSLABH),
		string(metrics.OverallSLABH),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert metrics: %w", err)
	}

	return nil
}

// FindByChat retrieves the stored metrics for a chat
func (r *PostgresSLAMetricsRepository) FindByChat(ctx context.Context, chatID string) (*domain.SLAMetrics, error) {
	query := `
		SELECT
			chat_id,
			pickup_seconds, first_response_seconds, avg_response_seconds, resolution_seconds,
			pickup_sla, first_response_sla, avg_response_sla, resolution_sla, overall_sla,
			pickup_seconds_bh, first_response_seconds_bh, avg_response_seconds_bh, resolution_seconds_bh,
			pickup_sla_bh, first_response_sla_bh, avg_response_sla_bh, resolution_sla_bh, overall_sla_bh
		FROM chat_sla_metrics
		WHERE chat_id = $1
	`

	var m domain.SLAMetrics
	var pickup, firstResponse, resolution sql.NullInt64
	var avgResponse sql.NullFloat64
	var pickupBH, firstResponseBH, resolutionBH sql.NullInt64
	var avgResponseBH sql.NullFloat64

	err := r.db.QueryRowContext(ctx, query, chatID).Scan(
		&m.ChatID,
		&pickup, &firstResponse, &avgResponse, &resolution,
		&m.PickupSLA, &m.FirstResponseSLA, &m.AvgResponseSLA, &m.ResolutionSLA, &m.OverallSLA,
		&pickupBH, &firstResponseBH, &avgResponseBH, &resolutionBH,
		&m.PickupSLABH, &m.FirstResponseSLABH, &m.AvgResponseSLABH, &m.ResolutionSLABH, &m.OverallSLABH,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrChatNotFound
		}
		return nil, fmt.Errorf("failed to find metrics: %w", err)
	}

	m.PickupSeconds = int64Ptr(pickup)
	m.FirstResponseSeconds = int64Ptr(firstResponse)
	m.AvgResponseSeconds = float64Ptr(avgResponse)
	m.ResolutionSeconds = int64Ptr(resolution)
	m.PickupSecondsBH = int64Ptr(pickupBH)
	m.FirstResponseSecondsBH = int64Ptr(firstResponseBH)
	m.AvgResponseSecondsBH = float64Ptr(avgResponseBH)
	m.ResolutionSecondsBH = int64Ptr(resolutionBH)

	return &m, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullFloat64(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func float64Ptr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
