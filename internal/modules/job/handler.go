package job

import (
	"context"
	"net/http"
	"strconv"

	"boatwork/internal/domain"
	"boatwork/internal/middleware"
	"boatwork/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/jobs", middleware.ProviderOnly())
	{
		g.GET("/assigned", h.ListAssigned)
		g.POST("/:id/start", h.Start)
		g.POST("/:id/complete", h.Complete)
		g.POST("/:id/cancel", h.Cancel)
	}
}

func (h *Handler) Start(c *gin.Context) {
	h.transition(c, h.service.Start)
}

func (h *Handler) Complete(c *gin.Context) {
	h.transition(c, h.service.Complete)
}

func (h *Handler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

func (h *Handler) ListAssigned(c *gin.Context) {
	providerID := c.GetInt64("user_id")

	jobs, err := h.service.ListAssigned(c.Request.Context(), providerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list assigned jobs")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"jobs": jobs})
}

func (h *Handler) transition(c *gin.Context, op func(ctx context.Context, jobID, callerID int64) (*domain.ServiceRequest, error)) {
	callerID := c.GetInt64("user_id")

	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || jobID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid job ID")
		return
	}

	job, err := op(c.Request.Context(), jobID, callerID)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Job not found")
		case ErrUnauthorized:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the assigned provider can do this")
		case ErrInvalidTransition:
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Job is not in a state that allows this")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update job")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"job": job})
}
