package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hirestage/hirestage/internal/models"
	"github.com/hirestage/hirestage/internal/services"
	"github.com/hirestage/hirestage/internal/utils"
)

type InterviewHandler struct {
	svc         services.InterviewService
	transcripts services.TranscriptService
}

func NewInterviewHandler(svc services.InterviewService, transcripts services.TranscriptService) *InterviewHandler {
	return &InterviewHandler{svc: svc, transcripts: transcripts}
}

// loadOwned fetches the interview and enforces that the caller owns it
// or is an admin.
func (h *InterviewHandler) loadOwned(c *gin.Context, op string) (*models.Interview, bool) {
	userID, ok := requireUserID(c)
	if !ok {
		return nil, false
	}

	iv, err := h.svc.Get(c.Request.Context(), c.Param("interview_id"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if iv.CandidateID != userID && !isAdmin(c) {
		writeError(c, utils.E(utils.CodeForbidden, op, "forbidden", nil))
		return nil, false
	}
	return iv, true
}

type ScheduleRequest struct {
	JobID       string    `json:"job_id" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

func (h *InterviewHandler) Schedule(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.Schedule", "invalid request body", err))
		return
	}

	iv, err := h.svc.Schedule(c.Request.Context(), userID, req.JobID, req.ScheduledAt)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, iv)
}

// List returns the caller's interviews; admins get everything.
func (h *InterviewHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if isAdmin(c) {
		rows, err := h.svc.ListAll(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, rows)
		return
	}

	rows, err := h.svc.ListForCandidate(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *InterviewHandler) Get(c *gin.Context) {
	iv, ok := h.loadOwned(c, "InterviewHandler.Get")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, iv)
}

func (h *InterviewHandler) Cancel(c *gin.Context) {
	if _, ok := h.loadOwned(c, "InterviewHandler.Cancel"); !ok {
		return
	}

	iv, err := h.svc.Cancel(c.Request.Context(), c.GetString("user_id"), c.Param("interview_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, iv)
}

type CompleteRequest struct {
	AISummary        string `json:"ai_summary"`
	PerformanceScore int    `json:"performance_score"`
	Feedback         string `json:"feedback"`
}

func (h *InterviewHandler) Complete(c *gin.Context) {
	if _, ok := h.loadOwned(c, "InterviewHandler.Complete"); !ok {
		return
	}

	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.Complete", "invalid request body", err))
		return
	}

	iv, err := h.svc.Complete(c.Request.Context(), c.GetString("user_id"), c.Param("interview_id"),
		req.AISummary, req.PerformanceScore, req.Feedback)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, iv)
}

type PostMessageRequest struct {
	Sender  string `json:"sender" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// PostMessage appends a transcript entry outside the answer loop, e.g.
// small talk the client records between questions.
func (h *InterviewHandler) PostMessage(c *gin.Context) {
	if _, ok := h.loadOwned(c, "InterviewHandler.PostMessage"); !ok {
		return
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.PostMessage", "invalid request body", err))
		return
	}

	m, err := h.transcripts.Append(c.Request.Context(), c.Param("interview_id"),
		models.Sender(req.Sender), req.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *InterviewHandler) Messages(c *gin.Context) {
	if _, ok := h.loadOwned(c, "InterviewHandler.Messages"); !ok {
		return
	}

	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)
	rows, err := h.transcripts.ListByInterview(c.Request.Context(), c.Param("interview_id"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
