package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hirestage/hirestage/internal/models"
	"github.com/hirestage/hirestage/internal/services"
)

type ActivityHandler struct {
	svc services.ActivityService
}

func NewActivityHandler(svc services.ActivityService) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

// List returns the activity log newest first: candidates see their own
// entries, admins see everyone's.
func (h *ActivityHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)

	var (
		rows []models.Activity
		err  error
	)
	if isAdmin(c) {
		rows, err = h.svc.ListAll(c.Request.Context(), limit)
	} else {
		rows, err = h.svc.ListForUser(c.Request.Context(), userID, limit)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
