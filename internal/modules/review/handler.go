package review

import (
	"net/http"
	"strconv"

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
	rg.POST("/reviews", middleware.OwnerOnly(), h.SubmitReview)
	rg.GET("/providers/:id/reviews", h.ListByProvider)
}

func (h *Handler) SubmitReview(c *gin.Context) {
	ownerID := c.GetInt64("user_id")

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body")
		return
	}

	rv, err := h.service.SubmitReview(c.Request.Context(), req.JobID, req.ProviderID, ownerID, req.Rating, req.Comment)
	if err != nil {
		switch err {
		case ErrInvalidInput:
			response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Missing or malformed fields")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Job not found")
		case ErrUnauthorized:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the job owner can review")
		case ErrNotReady:
			response.Error(c, http.StatusConflict, "NOT_READY", "Job is not ready for review yet")
		case ErrAlreadyReviewed:
			response.Error(c, http.StatusConflict, "ALREADY_REVIEWED", "This job has already been reviewed")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit review")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"review": rv})
}

func (h *Handler) ListByProvider(c *gin.Context) {
	providerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || providerID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid provider ID")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.ListByProvider(c.Request.Context(), providerID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list reviews")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reviews": list})
}
