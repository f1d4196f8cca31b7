package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adotepet/adotepet/internal/observability"
)

// MetricsResponse is a point-in-time view of event counters.
type MetricsResponse struct {
	EventTotal     int64                                          `json:"event_total"`
	EventFailed    int64                                          `json:"event_failed"`
	SuccessRate    float64                                        `json:"success_rate"`
	ActiveSessions int                                            `json:"active_sessions"`
	Events         map[string]*observability.EventMetricsSnapshot `json:"events"`
}

// GetMetrics reports aggregated event counters and current session count.
func (s *APIV1Service) GetMetrics(c echo.Context) error {
	snapshot := observability.GlobalMetrics().Snapshot()
	return c.JSON(http.StatusOK, &MetricsResponse{
		EventTotal:     snapshot.EventTotal,
		EventFailed:    snapshot.EventFailed,
		SuccessRate:    snapshot.SuccessRate(),
		ActiveSessions: s.Interview.Sessions().Len(),
		Events:         snapshot.EventMetrics,
	})
}
