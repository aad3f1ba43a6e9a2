package sla

import (
	"reflect"
	"testing"

	"github.com/slatrack/slatrack/internal/domain"
)

func closedChat(t *testing.T) domain.Chat {
	t.Helper()
	return domain.Chat{
		ID:         "chat-1",
		OpenedAt:   ts(t, "2026-03-02T10:00:00Z"),
		PickedUpAt: tsPtr(t, "2026-03-02T10:01:00Z"),
		ResponseAt: tsPtr(t, "2026-03-02T10:03:00Z"),
		ClosedAt:   tsPtr(t, "2026-03-02T12:00:00Z"),
		Provider:   "webchat",
		Priority:   "MEDIUM",
		Messages: []domain.Message{
			customerAt(t, "2026-03-02T10:00:00Z"),
			agentAt(t, "2026-03-02T10:03:00Z"), // 180s
			customerAt(t, "2026-03-02T10:04:00Z"),
			agentAt(t, "2026-03-02T10:08:00Z"), // 240s
		},
	}
}

func allMetricsEnabled() domain.EnabledMetrics {
	return domain.EnabledMetrics{Pickup: true, FirstResponse: true, AvgResponse: true, Resolution: true}
}

func TestCalculateAllMetrics_ClosedChat(t *testing.T) {
	engine := NewEngine()
	chat := closedChat(t)

	m := engine.CalculateAllMetrics(chat, domain.DefaultSLAConfig(), allMetricsEnabled())

	if m.ChatID != chat.ID {
		t.Errorf("expected chat id %s, got %s", chat.ID, m.ChatID)
	}
	if m.PickupSeconds == nil || *m.PickupSeconds != 60 {
		t.Errorf("expected pickup 60, got %v", m.PickupSeconds)
	}
	if m.FirstResponseSeconds == nil || *m.FirstResponseSeconds != 180 {
		t.Errorf("expected first response 180, got %v", m.FirstResponseSeconds)
	}
	if m.AvgResponseSeconds == nil || *m.AvgResponseSeconds != 210 {
		t.Errorf("expected avg response 210, got %v", m.AvgResponseSeconds)
	}
	if m.ResolutionSeconds == nil || *m.ResolutionSeconds != 7200 {
		t.Errorf("expected resolution 7200, got %v", m.ResolutionSeconds)
	}

	// All durations fall inside the default targets (120/300/300/7200)
	for name, verdict := range map[string]domain.Compliance{
		"pickup":         m.PickupSLA,
		"first response": m.FirstResponseSLA,
		"avg response":   m.AvgResponseSLA,
		"resolution":     m.ResolutionSLA,
		"overall":        m.OverallSLA,
	} {
		if verdict != domain.ComplianceCompliant {
			t.Errorf("expected %s COMPLIANT, got %s", name, verdict)
		}
	}

	// Business-hours verdicts are untouched by the wall-clock pass
	if m.PickupSLABH != domain.ComplianceIndeterminate || m.OverallSLABH != domain.ComplianceIndeterminate {
		t.Error("expected business-hours verdicts to stay INDETERMINATE")
	}
}

func TestCalculateAllMetrics_OpenChat(t *testing.T) {
	engine := NewEngine()
	chat := domain.Chat{
		ID:       "chat-open",
		OpenedAt: ts(t, "2026-03-02T10:00:00Z"),
		Provider: "webchat",
		Messages: []domain.Message{customerAt(t, "2026-03-02T10:00:00Z")},
	}

	m := engine.CalculateAllMetrics(chat, domain.DefaultSLAConfig(), allMetricsEnabled())

	if m.PickupSeconds != nil || m.FirstResponseSeconds != nil || m.AvgResponseSeconds != nil || m.ResolutionSeconds != nil {
		t.Errorf("expected nil durations for an untouched open chat, got %+v", m)
	}
	if m.OverallSLA != domain.ComplianceIndeterminate {
		t.Errorf("expected overall INDETERMINATE, got %s", m.OverallSLA)
	}
}

func TestCalculateAllMetrics_UnsortedMessages(t *testing.T) {
	engine := NewEngine()
	chat := closedChat(t)
	// Reverse the messages; the engine must sort before pairing
	for i, j := 0, len(chat.Messages)-1; i < j; i, j = i+1, j-1 {
		chat.Messages[i], chat.Messages[j] = chat.Messages[j], chat.Messages[i]
	}

	m := engine.CalculateAllMetrics(chat, domain.DefaultSLAConfig(), allMetricsEnabled())
	if m.AvgResponseSeconds == nil || *m.AvgResponseSeconds != 210 {
		t.Errorf("expected avg response 210 from unsorted input, got %v", m.AvgResponseSeconds)
	}
}

func TestCalculateAllMetricsWithBusinessHours(t *testing.T) {
	engine := NewEngine()
	// Opened at Friday close, resolved Monday mid-morning. The wall clock
	// sees 66 hours; the office-hours clock sees only Monday 09:00-11:00.
	chat := domain.Chat{
		ID:       "chat-weekend",
		OpenedAt: ts(t, "2026-01-09T17:00:00Z"),
		ClosedAt: tsPtr(t, "2026-01-12T11:00:00Z"),
		Provider: "webchat",
	}
	enabled := domain.EnabledMetrics{Resolution: true}

	m, err := engine.CalculateAllMetricsWithBusinessHours(chat, domain.DefaultSLAConfig(), weekdayOffice(), enabled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.ResolutionSeconds == nil || *m.ResolutionSeconds != 237600 {
		t.Errorf("expected wall-clock resolution 237600, got %v", m.ResolutionSeconds)
	}
	if m.ResolutionSecondsBH == nil || *m.ResolutionSecondsBH != 7200 {
		t.Errorf("expected business-hours resolution 7200, got %v", m.ResolutionSecondsBH)
	}

	// 237600 > 7200 target, but the business-hours clock forgives the weekend
	if m.ResolutionSLA != domain.ComplianceBreached {
		t.Errorf("expected wall-clock resolution BREACHED, got %s", m.ResolutionSLA)
	}
	if m.ResolutionSLABH != domain.ComplianceCompliant {
		t.Errorf("expected business-hours resolution COMPLIANT, got %s", m.ResolutionSLABH)
	}
	if m.OverallSLA != domain.ComplianceBreached || m.OverallSLABH != domain.ComplianceCompliant {
		t.Errorf("expected overall BREACHED/COMPLIANT, got %s/%s", m.OverallSLA, m.OverallSLABH)
	}
}

func TestCalculateAllMetricsWithBusinessHours_BadOfficeConfig(t *testing.T) {
	engine := NewEngine()
	chat := closedChat(t)

	office := weekdayOffice()
	office.Timezone = "Not/AZone"

	if _, err := engine.CalculateAllMetricsWithBusinessHours(chat, domain.DefaultSLAConfig(), office, allMetricsEnabled()); err == nil {
		t.Error("expected error for unusable office-hours config")
	}
}

func TestEngine_Deterministic(t *testing.T) {
	engine := NewEngine()
	chat := closedChat(t)
	cfg := domain.DefaultSLAConfig()
	office := weekdayOffice()
	enabled := allMetricsEnabled()

	first, err := engine.CalculateAllMetricsWithBusinessHours(chat, cfg, office, enabled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := engine.CalculateAllMetricsWithBusinessHours(chat, cfg, office, enabled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical results across runs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
