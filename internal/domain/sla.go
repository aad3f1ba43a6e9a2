package domain

// Compliance is the tri-state outcome of comparing an actual duration
// against its target. Indeterminate means a required input instant was
// missing, so the metric cannot be evaluated yet.
type Compliance string

const (
	ComplianceCompliant     Compliance = "COMPLIANT"
	ComplianceBreached      Compliance = "BREACHED"
	ComplianceIndeterminate Compliance = "INDETERMINATE"
)

// IsDetermined reports whether the compliance value carries a verdict
func (c Compliance) IsDetermined() bool {
	return c == ComplianceCompliant || c == ComplianceBreached
}

// ThresholdOverride is a partial set of SLA targets. Nil fields keep the
// default value.
type ThresholdOverride struct {
	PickupTarget        *int64 `json:"pickupTarget,omitempty"`
	FirstResponseTarget *int64 `json:"firstResponseTarget,omitempty"`
	AvgResponseTarget   *int64 `json:"avgResponseTarget,omitempty"`
	ResolutionTarget    *int64 `json:"resolutionTarget,omitempty"`
}

// SLAConfig holds the SLA targets (seconds, except ComplianceTarget which
// is a percentage) plus per-channel and per-priority overrides
type SLAConfig struct {
	PickupTarget        int64   `json:"pickupTarget"`
	FirstResponseTarget int64   `json:"firstResponseTarget"`
	AvgResponseTarget   int64   `json:"avgResponseTarget"`
	ResolutionTarget    int64   `json:"resolutionTarget"`
	ComplianceTarget    float64 `json:"complianceTarget"`

	ChannelOverrides  map[string]ThresholdOverride `json:"channelOverrides,omitempty"`
	PriorityOverrides map[string]ThresholdOverride `json:"priorityOverrides,omitempty"`
}

// DefaultSLAConfig returns the targets used when no configuration row exists
func DefaultSLAConfig() SLAConfig {
	return SLAConfig{
		PickupTarget:        120,
		FirstResponseTarget: 300,
		AvgResponseTarget:   300,
		ResolutionTarget:    7200,
		ComplianceTarget:    90,
	}
}

// OfficeHoursConfig describes the business-hours window. Start and End use
// the "HH:mm" form, WorkingDays holds ISO weekdays (1 = Monday .. 7 = Sunday)
// and Timezone is an IANA zone name.
type OfficeHoursConfig struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	WorkingDays []int  `json:"workingDays"`
	Timezone    string `json:"timezone"`
}

// DefaultOfficeHoursConfig returns Monday-Friday 09:00-17:00 UTC
func DefaultOfficeHoursConfig() OfficeHoursConfig {
	return OfficeHoursConfig{
		Start:       "09:00",
		End:         "17:00",
		WorkingDays: []int{1, 2, 3, 4, 5},
		Timezone:    "UTC",
	}
}

// EnabledMetrics selects which metrics count toward the overall SLA verdict
type EnabledMetrics struct {
	Pickup        bool `json:"pickup"`
	FirstResponse bool `json:"firstResponse"`
	AvgResponse   bool `json:"avgResponse"`
	Resolution    bool `json:"resolution"`
}

// DefaultEnabledMetrics returns the documented default policy: pickup and
// first response count, average response and resolution do not
func DefaultEnabledMetrics() EnabledMetrics {
	return EnabledMetrics{
		Pickup:        true,
		FirstResponse: true,
		AvgResponse:   false,
		Resolution:    false,
	}
}

// SLAMetrics is the derived per-chat result: four durations and compliance
// verdicts measured in wall-clock time, the same set measured in business
// hours (BH suffix), and the two overall verdicts. Durations are nil when a
// required input instant is missing.
type SLAMetrics struct {
	ChatID string `json:"chat_id"`

	PickupSeconds        *int64   `json:"pickup_seconds,omitempty"`
	FirstResponseSeconds *int64   `json:"first_response_seconds,omitempty"`
	AvgResponseSeconds   *float64 `json:"avg_response_seconds,omitempty"`
	ResolutionSeconds    *int64   `json:"resolution_seconds,omitempty"`

	PickupSLA        Compliance `json:"pickup_sla"`
	FirstResponseSLA Compliance `json:"first_response_sla"`
	AvgResponseSLA   Compliance `json:"avg_response_sla"`
	ResolutionSLA    Compliance `json:"resolution_sla"`
	OverallSLA       Compliance `json:"overall_sla"`

	PickupSecondsBH        *int64   `json:"pickup_seconds_bh,omitempty"`
	FirstResponseSecondsBH *int64   `json:"first_response_seconds_bh,omitempty"`
	AvgResponseSecondsBH   *float64 `json:"avg_response_seconds_bh,omitempty"`
	ResolutionSecondsBH    *int64   `json:"resolution_seconds_bh,omitempty"`

	PickupSLABH        Compliance `json:"pickup_sla_bh"`
	FirstResponseSLABH Compliance `json:"first_response_sla_bh"`
	AvgResponseSLABH   Compliance `json:"avg_response_sla_bh"`
	ResolutionSLABH    Compliance `json:"resolution_sla_bh"`
	OverallSLABH       Compliance `json:"overall_sla_bh"`
}
