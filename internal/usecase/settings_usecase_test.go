package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/slatrack/slatrack/internal/domain"
)

func TestLoadSnapshot_DefaultsWhenUnset(t *testing.T) {
	settingsRepo := new(MockSettingsRepository)
	emptySettings(settingsRepo)

	uc := NewSettingsUseCase(settingsRepo, nopLogger{})
	snapshot, err := uc.LoadSnapshot(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, domain.DefaultSLAConfig(), snapshot.SLA)
	assert.Equal(t, domain.DefaultOfficeHoursConfig(), snapshot.OfficeHours)
	assert.Equal(t, domain.DefaultEnabledMetrics(), snapshot.Enabled)
}

func TestLoadSnapshot_AppliesStoredValues(t *testing.T) {
	settingsRepo := new(MockSettingsRepository)
	settingsRepo.On("Get", mock.Anything, domain.SettingKeySLAConfig).
		Return(`{"pickupTarget":60,"resolutionTarget":3600}`, nil)
	settingsRepo.On("Get", mock.Anything, domain.SettingKeyOfficeHours).
		Return(`{"timezone":"America/New_York"}`, nil)
	settingsRepo.On("Get", mock.Anything, domain.SettingKeyEnabledMetrics).
		Return(`{"resolution":true}`, nil)

	uc := NewSettingsUseCase(settingsRepo, nopLogger{})
	snapshot, err := uc.LoadSnapshot(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(60), snapshot.SLA.PickupTarget)
	assert.Equal(t, int64(3600), snapshot.SLA.ResolutionTarget)
	// Keys absent from the stored value keep their defaults
	assert.Equal(t, domain.DefaultSLAConfig().FirstResponseTarget, snapshot.SLA.FirstResponseTarget)
	assert.Equal(t, "America/New_York", snapshot.OfficeHours.Timezone)
	assert.Equal(t, domain.DefaultOfficeHoursConfig().Start, snapshot.OfficeHours.Start)
	assert.True(t, snapshot.Enabled.Resolution)
	assert.True(t, snapshot.Enabled.Pickup)
}

func TestLoadSnapshot_UnknownKeysSkipped(t *testing.T) {
	settingsRepo := new(MockSettingsRepository)
	settingsRepo.On("Get", mock.Anything, domain.SettingKeySLAConfig).
		Return(`{"pickupTarget":90,"legacyEscalationTarget":15}`, nil)
	settingsRepo.On("Get", mock.Anything, domain.SettingKeyOfficeHours).
		Return("", domain.ErrSettingNotFound)
	settingsRepo.On("Get", mock.Anything, domain.SettingKeyEnabledMetrics).
		Return("", domain.ErrSettingNotFound)

	uc := NewSettingsUseCase(settingsRepo, nopLogger{})
	snapshot, err := uc.LoadSnapshot(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(90), snapshot.SLA.PickupTarget)
}

func TestLoadSnapshot_MalformedValue(t *testing.T) {
	settingsRepo := new(MockSettingsRepository)
	settingsRepo.On("Get", mock.Anything, domain.SettingKeySLAConfig).
		Return(`{"pickupTarget":"soon"}`, nil)

	uc := NewSettingsUseCase(settingsRepo, nopLogger{})
	_, err := uc.LoadSnapshot(context.Background())

	assert.Error(t, err)
}

func TestLoadSnapshot_RepositoryError(t *testing.T) {
	settingsRepo := new(MockSettingsRepository)
	settingsRepo.On("Get", mock.Anything, domain.SettingKeySLAConfig).
		Return("", assert.AnError)

	uc := NewSettingsUseCase(settingsRepo, nopLogger{})
	_, err := uc.LoadSnapshot(context.Background())

	assert.ErrorIs(t, err, assert.AnError)
}
