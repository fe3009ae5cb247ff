// Package api holds the Gin handlers for the advisor's single-page form and
// JSON endpoints.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/osu-soilwater/cover-crop-advisor/internal/dataset"
	"github.com/osu-soilwater/cover-crop-advisor/internal/filter"
	"github.com/osu-soilwater/cover-crop-advisor/internal/logger"
	"github.com/osu-soilwater/cover-crop-advisor/internal/metrics"
	"github.com/osu-soilwater/cover-crop-advisor/internal/session"
)

const sessionCookie = "advisor_session"

// Recommender is the outbound completion service seen from the handlers.
type Recommender interface {
	Recommend(ctx context.Context, records []dataset.CoverCropRecord, goals []dataset.Goal, crops []string) (string, error)
}

type Handler struct {
	records   []dataset.CoverCropRecord
	cropNames []string
	advisor   Recommender
	sessions  *session.Store
	logger    logger.Logger
}

func NewHandler(records []dataset.CoverCropRecord, advisor Recommender, sessions *session.Store, log logger.Logger) *Handler {
	return &Handler{
		records:   records,
		cropNames: dataset.CashCropOptions(records),
		advisor:   advisor,
		sessions:  sessions,
		logger:    log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

// GetOptions serves the fixed goal vocabulary and the cash crop names found
// in the dataset.
func (h *Handler) GetOptions(c *gin.Context) {
	goals := make([]string, 0, len(dataset.Goals))
	for _, g := range dataset.Goals {
		goals = append(goals, string(g))
	}
	c.JSON(http.StatusOK, OptionsResponse{
		Goals:     goals,
		CashCrops: h.cropNames,
	})
}

// Recommend filters the cover crop table by the submitted selections and
// asks the completion service for a recommendation.
func (h *Handler) Recommend(c *gin.Context) {
	metrics.RecommendationsRequested.Inc()

	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.RecommendationsFailed.WithLabelValues(metrics.ReasonBadSelection).Inc()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body."})
		return
	}

	// Selection omission is reported inline; the filter is never invoked.
	if len(req.Goals) == 0 || len(req.Crops) == 0 {
		metrics.RecommendationsFailed.WithLabelValues(metrics.ReasonBadSelection).Inc()
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Please select at least one goal and one or more cash crops.",
		})
		return
	}

	goals := make([]dataset.Goal, 0, len(req.Goals))
	for _, name := range req.Goals {
		g, ok := dataset.ParseGoal(name)
		if !ok {
			metrics.RecommendationsFailed.WithLabelValues(metrics.ReasonBadSelection).Inc()
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: fmt.Sprintf("Unknown farming goal: %s", name),
			})
			return
		}
		goals = append(goals, g)
	}

	matched := filter.Apply(h.records, goals, req.Crops)
	metrics.CoverCropsMatched.Observe(float64(len(matched)))

	if len(matched) == 0 {
		metrics.RecommendationsFailed.WithLabelValues(metrics.ReasonNoMatch).Inc()
		c.JSON(http.StatusOK, RecommendResponse{
			Match:   false,
			Message: "No matching cover crops found.",
		})
		return
	}

	h.logger.Info("requesting recommendation", map[string]interface{}{
		"goals":   req.Goals,
		"crops":   req.Crops,
		"matched": len(matched),
	})

	start := time.Now()
	text, err := h.advisor.Recommend(c.Request.Context(), matched, goals, req.Crops)
	metrics.RecommendationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		// The fault is surfaced once with its description; no retry, and the
		// session's previous recommendation is left in place.
		metrics.RecommendationsFailed.WithLabelValues(metrics.ReasonService).Inc()
		h.logger.WithError(err).Error("recommendation service fault", nil)
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: fmt.Sprintf("AI Error: %v", err),
		})
		return
	}

	h.sessions.Put(h.sessionID(c), text)

	c.JSON(http.StatusOK, RecommendResponse{
		Match:          true,
		Message:        fmt.Sprintf("Found %d matching cover crop(s).", len(matched)),
		Matches:        toMatchedCoverCrops(matched),
		Recommendation: text,
	})
}

// Replay serves the session's last recommendation so the page can speak it
// again without re-querying the completion service.
func (h *Handler) Replay(c *gin.Context) {
	id, err := c.Cookie(sessionCookie)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "No recommendation available yet."})
		return
	}
	text, ok := h.sessions.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "No recommendation available yet."})
		return
	}
	c.JSON(http.StatusOK, ReplayResponse{Recommendation: text})
}

// sessionID returns the request's session cookie, minting one when absent.
func (h *Handler) sessionID(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	id := uuid.New().String()
	c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	return id
}
