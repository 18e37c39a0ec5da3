package unlock

import (
	"errors"
	"net/http"

	"workbridge/internal/api"
	"workbridge/internal/auth"
	"workbridge/internal/credit"
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

// UnlockContact godoc
// @Summary      Unlock a job poster's contact details
// @Description  Contractor-only: debits 10 credits once per job. Calling again for the same job is free and returns the existing unlock.
// @Tags         unlocks
// @Produce      json
// @Security     BearerAuth
// @Param        jobID  path  string  true  "Job id"
// @Success      200  {object}  UnlockResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      402  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /jobs/{jobID}/unlock [post]
func (h *Handler) UnlockContact(c *gin.Context) {
	contractorID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Account not authenticated"})
		return
	}

	rec, balance, charged, err := h.service.UnlockContact(c.Request.Context(), c.Param("jobID"), contractorID)
	if err != nil {
		switch {
		case errors.Is(err, job.ErrJobNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Job not found"})
		case errors.Is(err, credit.ErrInsufficientCredits):
			c.JSON(http.StatusPaymentRequired, api.ErrorResponse{Error: "Not enough credits to unlock contact"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to unlock contact"})
		}
		return
	}

	c.JSON(http.StatusOK, UnlockResponse{
		Unlock:          rec,
		BalanceCredits:  balance,
		AlreadyUnlocked: !charged,
	})
}

// GetContact godoc
// @Summary      Job poster's contact details
// @Description  Available only after the calling contractor has unlocked this job.
// @Tags         unlocks
// @Produce      json
// @Security     BearerAuth
// @Param        jobID  path  string  true  "Job id"
// @Success      200  {object}  Contact
// @Failure      401  {object}  api.ErrorResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /jobs/{jobID}/contact [get]
func (h *Handler) GetContact(c *gin.Context) {
	contractorID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Account not authenticated"})
		return
	}

	contact, err := h.service.GetContact(c.Request.Context(), c.Param("jobID"), contractorID)
	if err != nil {
		switch {
		case errors.Is(err, ErrContactLocked):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Unlock this job to see contact details"})
		case errors.Is(err, job.ErrJobNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Job not found"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load contact"})
		}
		return
	}

	c.JSON(http.StatusOK, contact)
}

// ListUnlocks godoc
// @Summary      Contractors who unlocked a job
// @Tags         unlocks
// @Produce      json
// @Security     BearerAuth
// @Param        jobID  path  string  true  "Job id"
// @Success      200  {array}   Record
// @Failure      403  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /jobs/{jobID}/unlocks [get]
func (h *Handler) ListUnlocks(c *gin.Context) {
	clientID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Account not authenticated"})
		return
	}

	records, err := h.service.ListByJob(c.Request.Context(), clientID, c.Param("jobID"))
	if err != nil {
		switch {
		case errors.Is(err, job.ErrJobNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Job not found"})
		case errors.Is(err, job.ErrNotJobOwner):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Only the posting client can see unlocks"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load unlocks"})
		}
		return
	}

	c.JSON(http.StatusOK, records)
}
