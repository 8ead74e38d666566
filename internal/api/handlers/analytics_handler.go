package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hirestage/hirestage/internal/services"
)

type AnalyticsHandler struct {
	svc        services.AnalyticsService
	activities services.ActivityService
}

func NewAnalyticsHandler(svc services.AnalyticsService, activities services.ActivityService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc, activities: activities}
}

func (h *AnalyticsHandler) InterviewAnalytics(c *gin.Context) {
	out, err := h.svc.InterviewAnalytics(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AnalyticsHandler) ListCandidates(c *gin.Context) {
	rows, err := h.svc.ListCandidates(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ListActivities returns the newest activity log entries across all users.
func (h *AnalyticsHandler) ListActivities(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)
	rows, err := h.activities.ListAll(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
