package observability

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects and aggregates counters for inbound chat events.
type Metrics struct {
	mu sync.Mutex

	// Counters
	eventTotal  atomic.Int64
	eventFailed atomic.Int64

	// Per event-type metrics
	eventMetrics map[string]*EventMetrics
}

// EventMetrics represents counters for a specific event type
// (start, answer, photo, completion).
type EventMetrics struct {
	count         atomic.Int64
	totalDuration atomic.Int64 // milliseconds
	errorCount    atomic.Int64
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		eventMetrics: make(map[string]*EventMetrics),
	}
}

// Global metrics instance.
var globalMetrics = NewMetrics()

// GlobalMetrics returns the global metrics instance.
func GlobalMetrics() *Metrics {
	return globalMetrics
}

// RecordEvent records an inbound event.
func (m *Metrics) RecordEvent(eventType string) {
	m.eventTotal.Add(1)
	m.getEventMetrics(eventType).count.Add(1)
}

// RecordFailure records a failed event.
func (m *Metrics) RecordFailure(eventType string) {
	m.eventFailed.Add(1)
	m.getEventMetrics(eventType).errorCount.Add(1)
}

// RecordDuration records an event handling duration.
func (m *Metrics) RecordDuration(eventType string, duration time.Duration) {
	m.getEventMetrics(eventType).totalDuration.Add(duration.Milliseconds())
}

// GetEventTotal returns the total number of events.
func (m *Metrics) GetEventTotal() int64 {
	return m.eventTotal.Load()
}

// GetEventFailed returns the total number of failed events.
func (m *Metrics) GetEventFailed() int64 {
	return m.eventFailed.Load()
}

// GetAverageDuration returns the average duration in milliseconds for an event type.
func (m *Metrics) GetAverageDuration(eventType string) int64 {
	em := m.getEventMetrics(eventType)
	count := em.count.Load()
	if count == 0 {
		return 0
	}
	return em.totalDuration.Load() / count
}

// getEventMetrics gets or creates event metrics.
func (m *Metrics) getEventMetrics(eventType string) *EventMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	em, ok := m.eventMetrics[eventType]
	if !ok {
		em = &EventMetrics{}
		m.eventMetrics[eventType] = em
	}
	return em
}

// Reset resets all metrics (useful for testing).
func (m *Metrics) Reset() {
	m.eventTotal.Store(0)
	m.eventFailed.Store(0)

	m.mu.Lock()
	m.eventMetrics = make(map[string]*EventMetrics)
	m.mu.Unlock()
}

// Snapshot returns a point-in-time snapshot of metrics.
func (m *Metrics) Snapshot() *MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	eventSnapshots := make(map[string]*EventMetricsSnapshot, len(m.eventMetrics))
	for eventType, em := range m.eventMetrics {
		count := em.count.Load()
		snapshot := &EventMetricsSnapshot{
			Count:         count,
			TotalDuration: em.totalDuration.Load(),
			ErrorCount:    em.errorCount.Load(),
		}
		if count > 0 {
			snapshot.AverageDuration = snapshot.TotalDuration / count
		}
		eventSnapshots[eventType] = snapshot
	}

	return &MetricsSnapshot{
		EventTotal:   m.eventTotal.Load(),
		EventFailed:  m.eventFailed.Load(),
		EventMetrics: eventSnapshots,
	}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics.
type MetricsSnapshot struct {
	EventTotal   int64
	EventFailed  int64
	EventMetrics map[string]*EventMetricsSnapshot
}

// EventMetricsSnapshot represents counters for a specific event type.
type EventMetricsSnapshot struct {
	Count           int64
	TotalDuration   int64
	ErrorCount      int64
	AverageDuration int64
}

// SuccessRate returns the success rate as a percentage (0-100).
func (s *MetricsSnapshot) SuccessRate() float64 {
	if s.EventTotal == 0 {
		return 100.0
	}
	return float64(s.EventTotal-s.EventFailed) / float64(s.EventTotal) * 100.0
}
