package bid

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
	g := rg.Group("/requests/:id/bids")
	{
		g.GET("", h.ListBids)
		g.POST("", middleware.ProviderOnly(), h.SubmitBid)
		g.POST("/:bidId/accept", middleware.OwnerOnly(), h.AcceptBid)
	}
}

func (h *Handler) SubmitBid(c *gin.Context) {
	providerID := c.GetInt64("user_id")

	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || jobID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid request ID")
		return
	}

	var req SubmitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body")
		return
	}

	b, err := h.service.SubmitBid(c.Request.Context(), jobID, providerID, req.Price, req.Message)
	if err != nil {
		switch err {
		case ErrInvalidInput:
			response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Price must be a positive amount")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service request not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit bid")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"bid": b})
}

func (h *Handler) ListBids(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || jobID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid request ID")
		return
	}

	bids, err := h.service.ListBids(c.Request.Context(), jobID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bids")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bids": bids})
}

func (h *Handler) AcceptBid(c *gin.Context) {
	callerID := c.GetInt64("user_id")

	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || jobID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid request ID")
		return
	}
	bidID, err := strconv.ParseInt(c.Param("bidId"), 10, 64)
	if err != nil || bidID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid bid ID")
		return
	}

	job, err := h.service.AcceptBid(c.Request.Context(), jobID, bidID, callerID)
	if err != nil {
		switch err {
		case ErrInvalidInput:
			response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid accept request")
		case ErrUnauthorized:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the request owner can accept a bid")
		case ErrAlreadyAssigned:
			response.Error(c, http.StatusConflict, "ALREADY_ASSIGNED", "Request already has an accepted bid")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Request or bid not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to accept bid")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"request": job})
}
