package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/slatrack/slatrack/internal/domain"
	"github.com/slatrack/slatrack/internal/ports"
	"github.com/slatrack/slatrack/internal/service/logger"
	"github.com/slatrack/slatrack/internal/sla"
)

const (
	// DefaultBatchSize is used when the caller does not specify one
	DefaultBatchSize = 500

	// MaxBatchSize caps how many chats a single batch may request
	MaxBatchSize = 2000
)

// RecalculationRequest selects which chats to recalculate: either a single
// chat by ID or a date range over OpenedAt. Inputs are assumed validated by
// the trigger surface.
type RecalculationRequest struct {
	Filter    domain.ChatFilter
	BatchSize int
}

// RecalculationError records one chat that could not be processed
type RecalculationError struct {
	ChatID  string `json:"chat_id"`
	Message string `json:"message"`
}

// RecalculationResult summarizes a recalculation run. When the run aborts
// on an infrastructure failure the counts cover the work completed up to
// that point.
type RecalculationResult struct {
	RunID     string               `json:"run_id"`
	Processed int                  `json:"processed"`
	Failed    int                  `json:"failed"`
	Total     int                  `json:"total"`
	Batches   int                  `json:"batches"`
	Errors    []RecalculationError `json:"errors,omitempty"`
}

// RecalculationUseCase re-derives and persists SLA metrics for historical
// chats in keyset-paginated batches. Memory stays bounded by the batch
// size regardless of how many chats match.
type RecalculationUseCase struct {
	chatRepo    ports.ChatRepository
	messageRepo ports.MessageRepository
	metricsRepo ports.SLAMetricsRepository
	settings    *SettingsUseCase
	engine      *sla.Engine
	logger      logger.Logger
}

// NewRecalculationUseCase creates a new recalculation use case
func NewRecalculationUseCase(
	chatRepo ports.ChatRepository,
	messageRepo ports.MessageRepository,
	metricsRepo ports.SLAMetricsRepository,
	settings *SettingsUseCase,
	engine *sla.Engine,
	log logger.Logger,
) *RecalculationUseCase {
	return &RecalculationUseCase{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		metricsRepo: metricsRepo,
		settings:    settings,
		engine:      engine,
		logger:      log,
	}
}

// Recalculate runs the batch recalculation. Configuration is loaded once so
// every chat in the run sees the same snapshot. Chats inside a batch are
// processed with bounded concurrent fan-out; batches run strictly one after
// another because each cursor depends on the previous batch's last row.
//
// A failure on a single chat is recorded and never aborts the run. Failing
// to fetch the next batch is fatal: the partial result is returned together
// with the error. Context cancellation is observed between batches.
func (uc *RecalculationUseCase) Recalculate(ctx context.Context, req RecalculationRequest) (*RecalculationResult, error) {
	batchSize := req.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if batchSize > MaxBatchSize {
		batchSize = MaxBatchSize
	}

	snapshot, err := uc.settings.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sla settings: %w", err)
	}

	total, err := uc.chatRepo.Count(ctx, req.Filter)
	if err != nil {
		return nil, fmt.Errorf("count chats: %w", err)
	}

	result := &RecalculationResult{
		RunID: uuid.NewString(),
		Total: total,
	}

	uc.logger.Info(ctx, "Recalculation run started", map[string]interface{}{
		"run_id":     result.RunID,
		"total":      total,
		"batch_size": batchSize,
	})

	var mu sync.Mutex
	cursor := ""
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		chats, err := uc.chatRepo.ListAfter(ctx, req.Filter, cursor, batchSize)
		if err != nil {
			return result, fmt.Errorf("fetch batch %d: %w", result.Batches+1, err)
		}
		if len(chats) == 0 {
			break
		}
		result.Batches++

		group := new(errgroup.Group)
		group.SetLimit(batchSize)
		for _, chat := range chats {
			chat := chat
			group.Go(func() error {
				procErr := uc.processChat(ctx, chat, snapshot)

				mu.Lock()
				defer mu.Unlock()
				if procErr != nil {
					result.Failed++
					result.Errors = append(result.Errors, RecalculationError{
						ChatID:  chat.ID,
						Message: procErr.Error(),
					})
				} else {
					result.Processed++
				}
				return nil
			})
		}
		// Workers never return errors, per-chat failures are recorded above
		_ = group.Wait()

		uc.reportProgress(ctx, result)

		cursor = chats[len(chats)-1].ID
		if len(chats) < batchSize {
			break
		}
	}

	uc.logger.Info(ctx, "Recalculation run finished", map[string]interface{}{
		"run_id":    result.RunID,
		"processed": result.Processed,
		"failed":    result.Failed,
		"batches":   result.Batches,
	})

	return result, nil
}

// processChat loads one chat's messages, recomputes its metrics and
// persists them. A panic in the computation is converted to a per-chat
// error so it cannot take down the batch.
func (uc *RecalculationUseCase) processChat(ctx context.Context, chat *domain.Chat, snapshot SettingsSnapshot) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while processing chat: %v", r)
		}
	}()

	messages, err := uc.messageRepo.ListByChat(ctx, chat.ID)
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}
	chat.Messages = messages

	metrics, err := uc.engine.CalculateAllMetricsWithBusinessHours(*chat, snapshot.SLA, snapshot.OfficeHours, snapshot.Enabled)
	if err != nil {
		return fmt.Errorf("calculate metrics: %w", err)
	}

	if err := uc.metricsRepo.Upsert(ctx, &metrics); err != nil {
		return fmt.Errorf("persist metrics: %w", err)
	}

	return nil
}

func (uc *RecalculationUseCase) reportProgress(ctx context.Context, result *RecalculationResult) {
	done := result.Processed + result.Failed
	percent := 100.0
	if result.Total > 0 {
		percent = float64(done) / float64(result.Total) * 100
	}

	uc.logger.Info(ctx, "Recalculation progress", map[string]interface{}{
		"run_id":    result.RunID,
		"batch":     result.Batches,
		"processed": result.Processed,
		"failed":    result.Failed,
		"total":     result.Total,
		"percent":   fmt.Sprintf("%.1f", percent),
	})
}
