package recommend

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
	rg.GET("/requests/:id/recommendation", middleware.OwnerOnly(), h.Recommend)
}

func (h *Handler) Recommend(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || jobID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid request ID")
		return
	}

	callerID := c.GetInt64("user_id")

	rec, err := h.service.Recommend(c.Request.Context(), jobID, callerID)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Request not found")
		case ErrUnauthorized:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the request owner can ask for a recommendation")
		case ErrNoBids:
			response.Error(c, http.StatusNotFound, "NO_BIDS", "No bids to recommend yet")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build recommendation")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"recommendation": rec})
}
