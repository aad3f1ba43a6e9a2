package sla

import (
	"fmt"
	"time"

	"github.com/slatrack/slatrack/internal/domain"
)

// Engine computes the full set of SLA metrics for a chat. It is stateless:
// identical inputs always produce identical outputs and it is safe to call
// concurrently across chats.
type Engine struct{}

// NewEngine creates a new SLA metrics engine
func NewEngine() *Engine {
	return &Engine{}
}

// CalculateAllMetrics computes the wall-clock durations and compliance
// verdicts for a chat. The business-hours fields of the result are left
// Indeterminate.
func (e *Engine) CalculateAllMetrics(chat domain.Chat, cfg domain.SLAConfig, enabled domain.EnabledMetrics) domain.SLAMetrics {
	messages := SortMessages(chat.Messages)
	thresholds := ResolveThresholds(cfg, chat.Provider, chat.Priority)

	m := domain.SLAMetrics{
		ChatID:               chat.ID,
		PickupSeconds:        PickupTime(chat.OpenedAt, chat.PickedUpAt),
		FirstResponseSeconds: FirstResponseTime(chat.OpenedAt, chat.ResponseAt),
		AvgResponseSeconds:   AvgResponseTime(messages),
		ResolutionSeconds:    ResolutionTime(chat.OpenedAt, chat.ClosedAt),

		PickupSLABH:        domain.ComplianceIndeterminate,
		FirstResponseSLABH: domain.ComplianceIndeterminate,
		AvgResponseSLABH:   domain.ComplianceIndeterminate,
		ResolutionSLABH:    domain.ComplianceIndeterminate,
		OverallSLABH:       domain.ComplianceIndeterminate,
	}

	m.PickupSLA = EvaluateComplianceSeconds(m.PickupSeconds, thresholds.Pickup)
	m.FirstResponseSLA = EvaluateComplianceSeconds(m.FirstResponseSeconds, thresholds.FirstResponse)
	m.AvgResponseSLA = EvaluateCompliance(m.AvgResponseSeconds, thresholds.AvgResponse)
	m.ResolutionSLA = EvaluateComplianceSeconds(m.ResolutionSeconds, thresholds.Resolution)
	m.OverallSLA = OverallCompliance(enabled, m.PickupSLA, m.FirstResponseSLA, m.AvgResponseSLA, m.ResolutionSLA)

	return m
}

// CalculateAllMetricsWithBusinessHours computes both the wall-clock and the
// business-hours variant of every metric in one pass. The same interval
// endpoints feed both variants; the business-hours branch runs each
// interval through the office-hours clock instead of raw subtraction.
// An error means the office-hours configuration itself is unusable.
func (e *Engine) CalculateAllMetricsWithBusinessHours(chat domain.Chat, cfg domain.SLAConfig, office domain.OfficeHoursConfig, enabled domain.EnabledMetrics) (domain.SLAMetrics, error) {
	m := e.CalculateAllMetrics(chat, cfg, enabled)
	thresholds := ResolveThresholds(cfg, chat.Provider, chat.Priority)

	var err error
	if m.PickupSecondsBH, err = businessSecondsSince(chat.OpenedAt, chat.PickedUpAt, office); err != nil {
		return m, fmt.Errorf("pickup interval: %w", err)
	}
	if m.FirstResponseSecondsBH, err = businessSecondsSince(chat.OpenedAt, chat.ResponseAt, office); err != nil {
		return m, fmt.Errorf("first response interval: %w", err)
	}
	if m.AvgResponseSecondsBH, err = avgBusinessResponseTime(SortMessages(chat.Messages), office); err != nil {
		return m, fmt.Errorf("response intervals: %w", err)
	}
	if m.ResolutionSecondsBH, err = businessSecondsSince(chat.OpenedAt, chat.ClosedAt, office); err != nil {
		return m, fmt.Errorf("resolution interval: %w", err)
	}

	m.PickupSLABH = EvaluateComplianceSeconds(m.PickupSecondsBH, thresholds.Pickup)
	m.FirstResponseSLABH = EvaluateComplianceSeconds(m.FirstResponseSecondsBH, thresholds.FirstResponse)
	m.AvgResponseSLABH = EvaluateCompliance(m.AvgResponseSecondsBH, thresholds.AvgResponse)
	m.ResolutionSLABH = EvaluateComplianceSeconds(m.ResolutionSecondsBH, thresholds.Resolution)
	m.OverallSLABH = OverallCompliance(enabled, m.PickupSLABH, m.FirstResponseSLABH, m.AvgResponseSLABH, m.ResolutionSLABH)

	return m, nil
}

// businessSecondsSince measures openedAt..until through the office-hours
// clock, or nil when the end instant is missing
func businessSecondsSince(openedAt time.Time, until *time.Time, office domain.OfficeHoursConfig) (*int64, error) {
	if until == nil {
		return nil, nil
	}
	secs, err := ElapsedBusinessSeconds(openedAt, *until, office)
	if err != nil {
		return nil, err
	}
	return &secs, nil
}

// avgBusinessResponseTime averages the per-response segments measured in
// business hours, mirroring the wall-clock aggregation
func avgBusinessResponseTime(messages []domain.Message, office domain.OfficeHoursConfig) (*float64, error) {
	intervals := ResponseIntervals(messages)
	if len(intervals) == 0 {
		return nil, nil
	}

	var total float64
	for _, iv := range intervals {
		secs, err := ElapsedBusinessSeconds(iv.From, iv.To, office)
		if err != nil {
			return nil, err
		}
		total += float64(secs)
	}
	avg := total / float64(len(intervals))
	return &avg, nil
}
