package usecase

import (
	"context"
	"fmt"

	"github.com/slatrack/slatrack/internal/domain"
	"github.com/slatrack/slatrack/internal/ports"
	"github.com/slatrack/slatrack/internal/sla"
)

// SLAUseCase computes and persists metrics for a single chat. This is the
// on-demand path, invoked after a message or a state transition.
type SLAUseCase struct {
	chatRepo    ports.ChatRepository
	messageRepo ports.MessageRepository
	metricsRepo ports.SLAMetricsRepository
	settings    *SettingsUseCase
	engine      *sla.Engine
}

// NewSLAUseCase creates a new SLA use case
func NewSLAUseCase(
	chatRepo ports.ChatRepository,
	messageRepo ports.MessageRepository,
	metricsRepo ports.SLAMetricsRepository,
	settings *SettingsUseCase,
	engine *sla.Engine,
) *SLAUseCase {
	return &SLAUseCase{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		metricsRepo: metricsRepo,
		settings:    settings,
		engine:      engine,
	}
}

// RecalculateChat recomputes the metrics for one chat, stores them and
// returns the result. Recomputation is idempotent: unchanged inputs
// overwrite with identical values.
func (uc *SLAUseCase) RecalculateChat(ctx context.Context, chatID string) (*domain.SLAMetrics, error) {
	if chatID == "" {
		return nil, fmt.Errorf("chat ID is required")
	}

	chat, err := uc.chatRepo.FindByID(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}

	messages, err := uc.messageRepo.ListByChat(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	chat.Messages = messages

	snapshot, err := uc.settings.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sla settings: %w", err)
	}

	metrics, err := uc.engine.CalculateAllMetricsWithBusinessHours(*chat, snapshot.SLA, snapshot.OfficeHours, snapshot.Enabled)
	if err != nil {
		return nil, fmt.Errorf("calculate metrics: %w", err)
	}

	if err := uc.metricsRepo.Upsert(ctx, &metrics); err != nil {
		return nil, fmt.Errorf("persist metrics: %w", err)
	}

	return &metrics, nil
}

// GetChatMetrics returns the stored metrics for a chat without recomputing
func (uc *SLAUseCase) GetChatMetrics(ctx context.Context, chatID string) (*domain.SLAMetrics, error) {
	if chatID == "" {
		return nil, fmt.Errorf("chat ID is required")
	}

	metrics, err := uc.metricsRepo.FindByChat(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics: %w", err)
	}

	return metrics, nil
}
