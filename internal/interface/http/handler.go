package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/nutrition-recommender/internal/domain/nutrition"
	"github.com/yanqian/nutrition-recommender/internal/domain/recommender"
)

// Handler wires the HTTP transport to the recommender service.
type Handler struct {
	svc    recommender.Service
	logger *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(svc recommender.Service, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger.With("component", "http.handler"),
	}
}

// Recommend returns calorie targets and the best matching foods.
func (h *Handler) Recommend(c *gin.Context) {
	var req recommender.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(err))
		return
	}

	resp, err := h.svc.Recommend(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// EstimateCalories returns BMR, daily calories and macro targets only.
func (h *Handler) EstimateCalories(c *gin.Context) {
	var req recommender.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(err))
		return
	}

	resp, err := h.svc.Estimate(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ActivityLevels lists the selectable activity levels.
func (h *Handler) ActivityLevels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"activityLevels": nutrition.ActivityLevels()})
}

// Health reports readiness and the loaded dataset.
func (h *Handler) Health(c *gin.Context) {
	info := h.svc.Dataset()
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"dataset":  info.Source,
		"foods":    info.Foods,
		"loadedAt": info.LoadedAt,
	})
}
