package handler

import (
	"time"

	"art-critique-service/cache"
	"art-critique-service/controller/respond"
	"art-critique-service/wallet"

	"github.com/gin-gonic/gin"
)

// StatsHandler gateway runtime statistics
type StatsHandler struct {
	sessions  *wallet.SessionContext
	snapshots *cache.SnapshotCache
}

// NewStatsHandler create stats handler instance
func NewStatsHandler(sessions *wallet.SessionContext, snapshots *cache.SnapshotCache) *StatsHandler {
	return &StatsHandler{
		sessions:  sessions,
		snapshots: snapshots,
	}
}

// StatsResponse gateway statistics response structure
type StatsResponse struct {
	ActiveSessions    int        `json:"active_sessions" example:"3"`
	GallerySnapshot   int        `json:"gallery_snapshot" example:"40"`
	GalleryFetchedAt  *time.Time `json:"gallery_fetched_at,omitempty"`
	MarketSnapshot    int        `json:"market_snapshot" example:"12"`
	MarketFetchedAt   *time.Time `json:"market_fetched_at,omitempty"`
}

// GetStats gateway statistics
// @Summary Gateway statistics
// @Description Active session count and snapshot cache state
// @Tags Stats
// @Accept json
// @Produce json
// @Success 200 {object} respond.Response{data=handler.StatsResponse}
// @Router /api/v1/stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats := StatsResponse{
		ActiveSessions: h.sessions.ActiveSessions(),
	}

	if artworks, fetchedAt, err := h.snapshots.Gallery(); err == nil {
		stats.GallerySnapshot = len(artworks)
		if !fetchedAt.IsZero() {
			stats.GalleryFetchedAt = &fetchedAt
		}
	}
	if listings, fetchedAt, err := h.snapshots.Market(); err == nil {
		stats.MarketSnapshot = len(listings)
		if !fetchedAt.IsZero() {
			stats.MarketFetchedAt = &fetchedAt
		}
	}

	respond.Success(c, stats)
}
