package job

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"workbridge/internal/api"
	"workbridge/internal/auth"
	"workbridge/internal/credit"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// PostJob godoc
// @Summary      Post a job
// @Description  Client-only: debits the posting fee (30 credits) and creates an active job. The debit and the insert are atomic.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      PostJobRequest  true  "Job payload"
// @Success      201      {object}  PostJobResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      402      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /jobs [post]
func (h *Handler) PostJob(c *gin.Context) {
	clientID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Account not authenticated"})
		return
	}

	var req PostJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	job, record, err := h.service.PostJob(c.Request.Context(), clientID, req)
	if err != nil {
		if errors.Is(err, credit.ErrInsufficientCredits) {
			c.JSON(http.StatusPaymentRequired, api.ErrorResponse{Error: "Not enough credits to post a job"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to post job"})
		return
	}

	c.JSON(http.StatusCreated, PostJobResponse{
		Job:            job,
		BalanceCredits: record.BalanceAfter,
	})
}

// ListJobs godoc
// @Summary      List active jobs
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        category  query  string  false  "Category filter"
// @Param        limit     query  int     false  "Page size"   default(50)
// @Param        offset    query  int     false  "Page offset" default(0)
// @Success      200  {array}   Job
// @Failure      500  {object}  api.ErrorResponse
// @Router       /jobs [get]
func (h *Handler) ListJobs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	jobs, err := h.service.ListActive(c.Request.Context(), c.Query("category"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load jobs"})
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// GetJob godoc
// @Summary      Job details
// @Description  Contractor views are counted on the posting.
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        jobID  path  string  true  "Job id"
// @Success      200  {object}  Job
// @Failure      404  {object}  api.ErrorResponse
// @Router       /jobs/{jobID} [get]
func (h *Handler) GetJob(c *gin.Context) {
	role, _ := auth.GetAccountRole(c)
	recordView := role == auth.RoleContractor

	job, err := h.service.GetJob(c.Request.Context(), c.Param("jobID"), recordView)
	if err != nil {
		if errors.Is(err, ErrJobNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load job"})
		return
	}

	c.JSON(http.StatusOK, job)
}

// ListMyJobs godoc
// @Summary      Jobs posted by the calling client
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   Job
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /my/jobs [get]
func (h *Handler) ListMyJobs(c *gin.Context) {
	clientID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Account not authenticated"})
		return
	}

	jobs, err := h.service.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load jobs"})
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// CloseJob godoc
// @Summary      Close a job
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        jobID  path  string  true  "Job id"
// @Success      200  {object}  api.MessageResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /jobs/{jobID}/close [post]
func (h *Handler) CloseJob(c *gin.Context) {
	h.setStatus(c, h.service.CloseJob, "Job closed")
}

// CompleteJob godoc
// @Summary      Mark a job completed
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        jobID  path  string  true  "Job id"
// @Success      200  {object}  api.MessageResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /jobs/{jobID}/complete [post]
func (h *Handler) CompleteJob(c *gin.Context) {
	h.setStatus(c, h.service.CompleteJob, "Job completed")
}

// DeleteJob godoc
// @Summary      Delete a job
// @Description  Owner-only. The posting fee is not refunded.
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        jobID  path  string  true  "Job id"
// @Success      200  {object}  api.MessageResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /jobs/{jobID} [delete]
func (h *Handler) DeleteJob(c *gin.Context) {
	h.setStatus(c, h.service.DeleteJob, "Job deleted")
}

func (h *Handler) setStatus(c *gin.Context, op func(ctx context.Context, clientID, jobID string) error, message string) {
	clientID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Account not authenticated"})
		return
	}

	err := op(c.Request.Context(), clientID, c.Param("jobID"))
	if err != nil {
		switch {
		case errors.Is(err, ErrJobNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Job not found"})
		case errors.Is(err, ErrNotJobOwner):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Only the posting client can modify this job"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update job"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: message})
}
