package sla

import (
	"sort"
	"time"

	"github.com/slatrack/slatrack/internal/domain"
)

// Duration calculators are pure functions over chat timestamps. A nil
// result means a required input instant is missing and the metric cannot
// be computed yet.

// PickupTime returns the whole seconds from chat open to first agent
// assignment, or nil if the chat was never picked up
func PickupTime(openedAt time.Time, pickedUpAt *time.Time) *int64 {
	if pickedUpAt == nil {
		return nil
	}
	return wholeSeconds(openedAt, *pickedUpAt)
}

// FirstResponseTime returns the whole seconds from chat open to the first
// agent-authored message, or nil if no agent has replied
func FirstResponseTime(openedAt time.Time, responseAt *time.Time) *int64 {
	if responseAt == nil {
		return nil
	}
	return wholeSeconds(openedAt, *responseAt)
}

// ResolutionTime returns the whole seconds from chat open to close, or nil
// if the chat is still open
func ResolutionTime(openedAt time.Time, closedAt *time.Time) *int64 {
	if closedAt == nil {
		return nil
	}
	return wholeSeconds(openedAt, *closedAt)
}

// ResponseInterval is one customer-message-to-agent-reply span
type ResponseInterval struct {
	From time.Time
	To   time.Time
}

// ResponseIntervals scans messages in order and pairs each agent reply with
// the latest unanswered customer message. A newer customer message replaces
// an unanswered one; a consecutive agent message with no customer message
// in between contributes nothing.
func ResponseIntervals(messages []domain.Message) []ResponseInterval {
	var intervals []ResponseInterval
	var pending *time.Time

	for _, msg := range messages {
		switch msg.Role {
		case domain.MessageRoleCustomer:
			at := msg.CreatedAt
			pending = &at
		case domain.MessageRoleAgent:
			if pending != nil {
				intervals = append(intervals, ResponseInterval{From: *pending, To: msg.CreatedAt})
				pending = nil
			}
		}
	}

	return intervals
}

// AvgResponseTime returns the arithmetic mean of the response intervals in
// seconds, fractional values allowed, or nil when no interval was recorded
func AvgResponseTime(messages []domain.Message) *float64 {
	intervals := ResponseIntervals(messages)
	if len(intervals) == 0 {
		return nil
	}

	var total float64
	for _, iv := range intervals {
		total += iv.To.Sub(iv.From).Seconds()
	}
	avg := total / float64(len(intervals))
	return &avg
}

// SortMessages returns a copy of messages ordered ascending by CreatedAt.
// The ascending order is a documented precondition of the calculators; the
// engine sorts defensively to avoid silent miscomputation on unordered
// input.
func SortMessages(messages []domain.Message) []domain.Message {
	sorted := make([]domain.Message, len(messages))
	copy(sorted, messages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted
}

// wholeSeconds truncates the elapsed time between from and to down to whole
// seconds, matching a millisecond-epoch subtraction followed by /1000
func wholeSeconds(from, to time.Time) *int64 {
	secs := to.Sub(from).Milliseconds() / 1000
	return &secs
}
