package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hirestage/hirestage/internal/models"
	"github.com/hirestage/hirestage/internal/services"
	"github.com/hirestage/hirestage/internal/utils"
)

type JobHandler struct {
	svc services.JobService
}

func NewJobHandler(svc services.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

type JobRequest struct {
	Title        string           `json:"title" binding:"required"`
	Company      string           `json:"company" binding:"required"`
	Description  string           `json:"description" binding:"required"`
	TechStack    utils.StringList `json:"tech_stack" binding:"required"`
	Requirements utils.StringList `json:"requirements"`
	Location     string           `json:"location" binding:"required"`
	Type         string           `json:"type" binding:"required"`
	SalaryRange  string           `json:"salary_range"`
}

func (r JobRequest) toInput() services.JobInput {
	return services.JobInput{
		Title:        r.Title,
		Company:      r.Company,
		Description:  r.Description,
		TechStack:    r.TechStack,
		Requirements: r.Requirements,
		Location:     r.Location,
		Type:         models.EmploymentType(r.Type),
		SalaryRange:  r.SalaryRange,
	}
}

func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.svc.Get(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Create(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.Create", "invalid request body", err))
		return
	}

	job, err := h.svc.Create(c.Request.Context(), adminID, req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.Update", "invalid request body", err))
		return
	}

	job, err := h.svc.Update(c.Request.Context(), adminID, c.Param("job_id"), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), adminID, c.Param("job_id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
