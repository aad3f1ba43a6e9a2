package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/slatrack/slatrack/internal/domain"
	"github.com/slatrack/slatrack/internal/ports"
	"github.com/slatrack/slatrack/internal/service/logger"
)

// SettingsSnapshot is a consistent view of the SLA configuration, resolved
// once and then shared across a whole computation or recalculation run
type SettingsSnapshot struct {
	SLA         domain.SLAConfig
	OfficeHours domain.OfficeHoursConfig
	Enabled     domain.EnabledMetrics
}

// SettingsUseCase resolves typed SLA configuration from the key/value
// settings store
type SettingsUseCase struct {
	settingsRepo ports.SettingsRepository
	logger       logger.Logger
}

// NewSettingsUseCase creates a new settings use case
func NewSettingsUseCase(settingsRepo ports.SettingsRepository, log logger.Logger) *SettingsUseCase {
	return &SettingsUseCase{
		settingsRepo: settingsRepo,
		logger:       log,
	}
}

// LoadSnapshot reads all three configuration values. Missing keys fall back
// to the documented defaults; unknown keys inside a stored value are logged
// and skipped, never applied.
func (uc *SettingsUseCase) LoadSnapshot(ctx context.Context) (SettingsSnapshot, error) {
	snapshot := SettingsSnapshot{
		SLA:         domain.DefaultSLAConfig(),
		OfficeHours: domain.DefaultOfficeHoursConfig(),
		Enabled:     domain.DefaultEnabledMetrics(),
	}

	if err := uc.load(ctx, domain.SettingKeySLAConfig, func(raw string) ([]string, error) {
		return domain.ApplySLAConfigJSON(&snapshot.SLA, raw)
	}); err != nil {
		return snapshot, err
	}

	if err := uc.load(ctx, domain.SettingKeyOfficeHours, func(raw string) ([]string, error) {
		return domain.ApplyOfficeHoursJSON(&snapshot.OfficeHours, raw)
	}); err != nil {
		return snapshot, err
	}

	if err := uc.load(ctx, domain.SettingKeyEnabledMetrics, func(raw string) ([]string, error) {
		return domain.ApplyEnabledMetricsJSON(&snapshot.Enabled, raw)
	}); err != nil {
		return snapshot, err
	}

	return snapshot, nil
}

func (uc *SettingsUseCase) load(ctx context.Context, key string, apply func(raw string) ([]string, error)) error {
	raw, err := uc.settingsRepo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrSettingNotFound) {
			return nil
		}
		return fmt.Errorf("read setting %s: %w", key, err)
	}

	unknown, err := apply(raw)
	if err != nil {
		return fmt.Errorf("apply setting %s: %w", key, err)
	}
	if len(unknown) > 0 {
		uc.logger.Warn(ctx, "Ignoring unknown settings keys", map[string]interface{}{
			"setting":      key,
			"unknown_keys": unknown,
		})
	}

	return nil
}
