package application

import (
	"errors"
	"net/http"

	"workbridge/internal/api"
	"workbridge/internal/auth"
	"workbridge/internal/job"

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

// Apply godoc
// @Summary      Apply to a job
// @Description  Contractor-only: requires a prior contact unlock for this job. A contractor can apply to a job once.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        jobID    path  string        true   "Job id"
// @Param        request  body  ApplyRequest  false  "Optional message to the poster"
// @Success      201  {object}  ApplyResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /jobs/{jobID}/apply [post]
func (h *Handler) Apply(c *gin.Context) {
	contractorID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Account not authenticated"})
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	app, err := h.service.Apply(c.Request.Context(), c.Param("jobID"), contractorID, req)
	if err != nil {
		switch {
		case errors.Is(err, job.ErrJobNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Job not found"})
		case errors.Is(err, ErrContactNotUnlocked):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Unlock this job before applying"})
		case errors.Is(err, ErrAlreadyApplied):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "You have already applied to this job"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to apply"})
		}
		return
	}

	c.JSON(http.StatusCreated, ApplyResponse{
		Application: app,
		Message:     "Application submitted",
	})
}

// ListApplications godoc
// @Summary      Applications for a job
// @Description  Job owner only.
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        jobID  path  string  true  "Job id"
// @Success      200  {array}   Application
// @Failure      401  {object}  api.ErrorResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /jobs/{jobID}/applications [get]
func (h *Handler) ListApplications(c *gin.Context) {
	clientID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Account not authenticated"})
		return
	}

	apps, err := h.service.ListByJob(c.Request.Context(), clientID, c.Param("jobID"))
	if err != nil {
		switch {
		case errors.Is(err, job.ErrJobNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Job not found"})
		case errors.Is(err, job.ErrNotJobOwner):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Only the job owner can view applications"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load applications"})
		}
		return
	}

	c.JSON(http.StatusOK, apps)
}

// MyApplications godoc
// @Summary      Calling contractor's applications
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   Application
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /my/applications [get]
func (h *Handler) MyApplications(c *gin.Context) {
	contractorID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Account not authenticated"})
		return
	}

	apps, err := h.service.ListByContractor(c.Request.Context(), contractorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load applications"})
		return
	}

	c.JSON(http.StatusOK, apps)
}
