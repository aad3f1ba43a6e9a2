package sla

import (
	"testing"

	"github.com/slatrack/slatrack/internal/domain"
)

func int64Ptr(v int64) *int64 { return &v }

func float64Ptr(v float64) *float64 { return &v }

func TestEvaluateCompliance(t *testing.T) {
	// Boundary is inclusive
	if got := EvaluateCompliance(float64Ptr(120), 120); got != domain.ComplianceCompliant {
		t.Errorf("expected COMPLIANT on boundary, got %s", got)
	}
	if got := EvaluateCompliance(float64Ptr(121), 120); got != domain.ComplianceBreached {
		t.Errorf("expected BREACHED above target, got %s", got)
	}
	if got := EvaluateCompliance(nil, 120); got != domain.ComplianceIndeterminate {
		t.Errorf("expected INDETERMINATE for missing actual, got %s", got)
	}
}

func TestEvaluateComplianceSeconds(t *testing.T) {
	if got := EvaluateComplianceSeconds(int64Ptr(0), 120); got != domain.ComplianceCompliant {
		t.Errorf("expected COMPLIANT at zero, got %s", got)
	}
	if got := EvaluateComplianceSeconds(nil, 120); got != domain.ComplianceIndeterminate {
		t.Errorf("expected INDETERMINATE for missing actual, got %s", got)
	}
}

func TestResolveThresholds_Defaults(t *testing.T) {
	cfg := domain.DefaultSLAConfig()

	got := ResolveThresholds(cfg, "webchat", "HIGH")
	if got.Pickup != cfg.PickupTarget || got.Resolution != cfg.ResolutionTarget {
		t.Errorf("expected defaults without overrides, got %+v", got)
	}
}

func TestResolveThresholds_ChannelOverride(t *testing.T) {
	cfg := domain.DefaultSLAConfig()
	cfg.ChannelOverrides = map[string]domain.ThresholdOverride{
		"whatsapp": {PickupTarget: int64Ptr(60)},
	}

	got := ResolveThresholds(cfg, "whatsapp", "")
	if got.Pickup != 60 {
		t.Errorf("expected channel override pickup 60, got %d", got.Pickup)
	}
	if got.FirstResponse != cfg.FirstResponseTarget {
		t.Errorf("expected untouched first response target, got %d", got.FirstResponse)
	}

	// Other channels keep the defaults
	got = ResolveThresholds(cfg, "webchat", "")
	if got.Pickup != cfg.PickupTarget {
		t.Errorf("expected default pickup for other channel, got %d", got.Pickup)
	}
}

func TestResolveThresholds_PriorityWinsOverChannel(t *testing.T) {
	cfg := domain.DefaultSLAConfig()
	cfg.ChannelOverrides = map[string]domain.ThresholdOverride{
		"whatsapp": {PickupTarget: int64Ptr(60), ResolutionTarget: int64Ptr(3600)},
	}
	cfg.PriorityOverrides = map[string]domain.ThresholdOverride{
		"URGENT": {PickupTarget: int64Ptr(30)},
	}

	got := ResolveThresholds(cfg, "whatsapp", "URGENT")
	if got.Pickup != 30 {
		t.Errorf("expected priority override to win, got %d", got.Pickup)
	}
	// Channel override survives for fields the priority override leaves unset
	if got.Resolution != 3600 {
		t.Errorf("expected channel resolution override to survive, got %d", got.Resolution)
	}
}

func TestOverallCompliance(t *testing.T) {
	allEnabled := domain.EnabledMetrics{Pickup: true, FirstResponse: true, AvgResponse: true, Resolution: true}

	got := OverallCompliance(allEnabled,
		domain.ComplianceCompliant, domain.ComplianceCompliant, domain.ComplianceCompliant, domain.ComplianceCompliant)
	if got != domain.ComplianceCompliant {
		t.Errorf("expected COMPLIANT, got %s", got)
	}

	got = OverallCompliance(allEnabled,
		domain.ComplianceCompliant, domain.ComplianceBreached, domain.ComplianceCompliant, domain.ComplianceCompliant)
	if got != domain.ComplianceBreached {
		t.Errorf("expected BREACHED, got %s", got)
	}

	got = OverallCompliance(allEnabled,
		domain.ComplianceCompliant, domain.ComplianceIndeterminate, domain.ComplianceBreached, domain.ComplianceCompliant)
	if got != domain.ComplianceIndeterminate {
		t.Errorf("expected INDETERMINATE to dominate, got %s", got)
	}
}

func TestOverallCompliance_DisabledMetricsIgnored(t *testing.T) {
	// Pickup breaches but is disabled; the only enabled metric passes
	enabled := domain.EnabledMetrics{FirstResponse: true}

	got := OverallCompliance(enabled,
		domain.ComplianceBreached, domain.ComplianceCompliant, domain.ComplianceIndeterminate, domain.ComplianceIndeterminate)
	if got != domain.ComplianceCompliant {
		t.Errorf("expected COMPLIANT despite disabled breach, got %s", got)
	}
}

func TestOverallCompliance_NoneEnabled(t *testing.T) {
	got := OverallCompliance(domain.EnabledMetrics{},
		domain.ComplianceCompliant, domain.ComplianceCompliant, domain.ComplianceCompliant, domain.ComplianceCompliant)
	if got != domain.ComplianceIndeterminate {
		t.Errorf("expected INDETERMINATE with no enabled metrics, got %s", got)
	}
}
