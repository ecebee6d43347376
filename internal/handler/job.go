package handler

import (
	"net/http"

	"alumnihub/internal/model"
	"alumnihub/internal/service"

	"github.com/gin-gonic/gin"
)

// JobHandler handles job board HTTP requests
type JobHandler struct {
	jobs *service.JobService
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobs *service.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// Create handles POST /api/jobs
func (h *JobHandler) Create(c *gin.Context) {
	var form model.JobForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), &form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// List handles GET /api/jobs
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobs.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// Update handles PATCH /api/jobs/:id
func (h *JobHandler) Update(c *gin.Context) {
	var form model.JobForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	job, err := h.jobs.Update(c.Request.Context(), c.Param("id"), &form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// Delete handles DELETE /api/jobs/:id
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.jobs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Job removed", nil))
}
