package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"aquawatch/analysis"
	"aquawatch/api"
	"aquawatch/models"
	"aquawatch/poller"
)

// DashboardSource is the poller surface the handlers read from.
// This allows for mocking in tests.
type DashboardSource interface {
	Snapshot() poller.Snapshot
	RefreshHistory(ctx context.Context, period models.Period) ([]models.HistoryPoint, error)
	PeriodTrends(period models.Period) analysis.TrendSet
}

// PingService is the backend surface for community reports.
type PingService interface {
	Pings(ctx context.Context) ([]models.Ping, error)
	CreatePing(ctx context.Context, sub models.PingSubmission) (models.Ping, error)
}

type DashboardHandler struct {
	source DashboardSource
	pings  PingService
}

func NewDashboardHandler(source DashboardSource, pings PingService) *DashboardHandler {
	return &DashboardHandler{
		source: source,
		pings:  pings,
	}
}

// HandleDashboard returns the current derived dashboard snapshot: reading,
// per-metric statuses, confidence, and insight text. Errors in the snapshot
// are non-blocking state, not HTTP failures; the last good reading stays
// visible alongside them.
func (h *DashboardHandler) HandleDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.source.Snapshot())
}

type historyResponse struct {
	Period models.Period         `json:"period"`
	Key    string                `json:"key"`
	Series []models.HistoryPoint `json:"series"`
	Trends analysis.TrendSet     `json:"trends"`
}

// HandleHistory refreshes and returns the series for one period. A refresh
// failure degrades to an empty series rather than an error page, matching
// the per-slot "no data" semantics of the poller.
func (h *DashboardHandler) HandleHistory(c *gin.Context) {
	period, err := models.ParsePeriod(c.Param("period"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	series, err := h.source.RefreshHistory(c.Request.Context(), period)
	if errors.Is(err, api.ErrInvalidPeriod) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, historyResponse{
		Period: period,
		Key:    period.Key(),
		Series: series,
		Trends: h.source.PeriodTrends(period),
	})
}

// HandleListPings returns community reports. With ?mappable=true, reports
// without coordinates are dropped, since they cannot be plotted.
func (h *DashboardHandler) HandleListPings(c *gin.Context) {
	pings, err := h.pings.Pings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if c.Query("mappable") == "true" {
		pings = models.FilterMappable(pings)
	}
	c.JSON(http.StatusOK, pings)
}

// HandleCreatePing validates a submission locally and forwards it to the
// backend. Backend rejections pass through with their status and detail.
func (h *DashboardHandler) HandleCreatePing(c *gin.Context) {
	var sub models.PingSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if sub.Status == "" {
		sub.Status = string(models.PingPending)
	}
	if err := sub.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.pings.CreatePing(c.Request.Context(), sub)
	if err != nil {
		var remote *api.RemoteError
		if errors.As(err, &remote) {
			c.JSON(remote.StatusCode, gin.H{"error": remote.Detail})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// HealthCheck returns the health status of the service
func (h *DashboardHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
}
