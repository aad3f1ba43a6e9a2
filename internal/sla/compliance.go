package sla

import (
	"github.com/slatrack/slatrack/internal/domain"
)

// Thresholds are the per-chat SLA targets after override resolution,
// all in seconds
type Thresholds struct {
	Pickup        int64
	FirstResponse int64
	AvgResponse   int64
	Resolution    int64
}

// ResolveThresholds resolves the effective targets for a chat: start from
// the configured defaults, apply the channel override for the chat's
// provider if one exists, then apply the priority override on top. When
// both overrides set the same field the priority override wins.
func ResolveThresholds(cfg domain.SLAConfig, provider, priority string) Thresholds {
	t := Thresholds{
		Pickup:        cfg.PickupTarget,
		FirstResponse: cfg.FirstResponseTarget,
		AvgResponse:   cfg.AvgResponseTarget,
		Resolution:    cfg.ResolutionTarget,
	}
	if ov, ok := cfg.ChannelOverrides[provider]; ok {
		t.apply(ov)
	}
	if ov, ok := cfg.PriorityOverrides[priority]; ok {
		t.apply(ov)
	}
	return t
}

func (t *Thresholds) apply(ov domain.ThresholdOverride) {
	if ov.PickupTarget != nil {
		t.Pickup = *ov.PickupTarget
	}
	if ov.FirstResponseTarget != nil {
		t.FirstResponse = *ov.FirstResponseTarget
	}
	if ov.AvgResponseTarget != nil {
		t.AvgResponse = *ov.AvgResponseTarget
	}
	if ov.ResolutionTarget != nil {
		t.Resolution = *ov.ResolutionTarget
	}
}

// EvaluateCompliance compares an actual duration against its target.
// The boundary is inclusive: actual == target is compliant. A nil actual
// propagates to Indeterminate.
func EvaluateCompliance(actual *float64, target int64) domain.Compliance {
	if actual == nil {
		return domain.ComplianceIndeterminate
	}
	if *actual <= float64(target) {
		return domain.ComplianceCompliant
	}
	return domain.ComplianceBreached
}

// EvaluateComplianceSeconds is EvaluateCompliance for whole-second durations
func EvaluateComplianceSeconds(actual *int64, target int64) domain.Compliance {
	if actual == nil {
		return domain.ComplianceIndeterminate
	}
	if *actual <= target {
		return domain.ComplianceCompliant
	}
	return domain.ComplianceBreached
}

// OverallCompliance aggregates the per-metric verdicts under the enabled
// metrics policy. The result is Indeterminate when no metric is enabled or
// when any enabled metric is itself Indeterminate; otherwise it is the
// conjunction of the enabled verdicts.
func OverallCompliance(enabled domain.EnabledMetrics, pickup, firstResponse, avgResponse, resolution domain.Compliance) domain.Compliance {
	verdicts := []struct {
		on bool
		c  domain.Compliance
	}{
		{enabled.Pickup, pickup},
		{enabled.FirstResponse, firstResponse},
		{enabled.AvgResponse, avgResponse},
		{enabled.Resolution, resolution},
	}

	overall := domain.ComplianceCompliant
	anyEnabled := false
	for _, v := range verdicts {
		if !v.on {
			continue
		}
		anyEnabled = true
		if v.c == domain.ComplianceIndeterminate {
			return domain.ComplianceIndeterminate
		}
		if v.c == domain.ComplianceBreached {
			overall = domain.ComplianceBreached
		}
	}
	if !anyEnabled {
		return domain.ComplianceIndeterminate
	}
	return overall
}
