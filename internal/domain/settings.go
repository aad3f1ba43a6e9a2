package domain

import (
	"encoding/json"
	"fmt"
)

// Setting keys in the app_settings key/value store. Values are
// string-encoded JSON objects.
const (
	SettingKeySLAConfig      = "sla_config"
	SettingKeyOfficeHours    = "office_hours_config"
	SettingKeyEnabledMetrics = "enabled_metrics"
)

// Settings arrive as JSON objects whose keys are applied individually.
// Each config type carries an explicit dispatch table from field name to
// setter, so only known keys are applied and unknown keys are surfaced to
// the caller instead of silently dropped.

var slaConfigSetters = map[string]func(*SLAConfig, json.RawMessage) error{
	"pickupTarget":        func(c *SLAConfig, v json.RawMessage) error { return json.Unmarshal(v, &c.PickupTarget) },
	"firstResponseTarget": func(c *SLAConfig, v json.RawMessage) error { return json.Unmarshal(v, &c.FirstResponseTarget) },
	"avgResponseTarget":   func(c *SLAConfig, v json.RawMessage) error { return json.Unmarshal(v, &c.AvgResponseTarget) },
	"resolutionTarget":    func(c *SLAConfig, v json.RawMessage) error { return json.Unmarshal(v, &c.ResolutionTarget) },
	"complianceTarget":    func(c *SLAConfig, v json.RawMessage) error { return json.Unmarshal(v, &c.ComplianceTarget) },
	"channelOverrides":    func(c *SLAConfig, v json.RawMessage) error { return json.Unmarshal(v, &c.ChannelOverrides) },
	"priorityOverrides":   func(c *SLAConfig, v json.RawMessage) error { return json.Unmarshal(v, &c.PriorityOverrides) },
}

var officeHoursSetters = map[string]func(*OfficeHoursConfig, json.RawMessage) error{
	"start":       func(c *OfficeHoursConfig, v json.RawMessage) error { return json.Unmarshal(v, &c.Start) },
	"end":         func(c *OfficeHoursConfig, v json.RawMessage) error { return json.Unmarshal(v, &c.End) },
	"workingDays": func(c *OfficeHoursConfig, v json.RawMessage) error { return json.Unmarshal(v, &c.WorkingDays) },
	"timezone":    func(c *OfficeHoursConfig, v json.RawMessage) error { return json.Unmarshal(v, &c.Timezone) },
}

var enabledMetricsSetters = map[string]func(*EnabledMetrics, json.RawMessage) error{
	"pickup":        func(c *EnabledMetrics, v json.RawMessage) error { return json.Unmarshal(v, &c.Pickup) },
	"firstResponse": func(c *EnabledMetrics, v json.RawMessage) error { return json.Unmarshal(v, &c.FirstResponse) },
	"avgResponse":   func(c *EnabledMetrics, v json.RawMessage) error { return json.Unmarshal(v, &c.AvgResponse) },
	"resolution":    func(c *EnabledMetrics, v json.RawMessage) error { return json.Unmarshal(v, &c.Resolution) },
}

// ApplySLAConfigJSON applies a stored JSON value on top of cfg and returns
// the keys it did not recognize
func ApplySLAConfigJSON(cfg *SLAConfig, raw string) ([]string, error) {
	return applyJSON(cfg, raw, slaConfigSetters)
}

// ApplyOfficeHoursJSON applies a stored JSON value on top of cfg and returns
// the keys it did not recognize
func ApplyOfficeHoursJSON(cfg *OfficeHoursConfig, raw string) ([]string, error) {
	return applyJSON(cfg, raw, officeHoursSetters)
}

// ApplyEnabledMetricsJSON applies a stored JSON value on top of cfg and
// returns the keys it did not recognize
func ApplyEnabledMetricsJSON(cfg *EnabledMetrics, raw string) ([]string, error) {
	return applyJSON(cfg, raw, enabledMetricsSetters)
}

func applyJSON[T any](cfg *T, raw string, setters map[string]func(*T, json.RawMessage) error) ([]string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("invalid settings payload: %w", err)
	}

	var unknown []string
	for key, value := range fields {
		setter, ok := setters[key]
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		if err := setter(cfg, value); err != nil {
			return unknown, fmt.Errorf("invalid value for %q: %w", key, err)
		}
	}

	return unknown, nil
}
