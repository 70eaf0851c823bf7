package request

import (
	"net/http"
	"strconv"

	"boatwork/internal/middleware"
	"boatwork/internal/pkg/response"
	"boatwork/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/requests")
	{
		g.GET("", h.List)
		g.GET("/mine", middleware.OwnerOnly(), h.ListMine)
		g.GET("/:id", h.Get)
		g.POST("", middleware.OwnerOnly(), h.Create)
	}
}

func (h *Handler) Create(c *gin.Context) {
	ownerID := c.GetInt64("user_id")

	var dto CreateRequestDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body")
		return
	}
	if violations := validator.Validate(dto); violations != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_INPUT", "Validation failed", violations)
		return
	}

	req, err := h.service.Create(c.Request.Context(), ownerID, dto)
	if err != nil {
		if err == ErrInvalidInput {
			response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Missing or malformed fields")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create request")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"request": req})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid request ID")
		return
	}

	req, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service request not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load request")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"request": req})
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.List(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		if err == ErrInvalidInput {
			response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown status filter")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list requests")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": list})
}

func (h *Handler) ListMine(c *gin.Context) {
	ownerID := c.GetInt64("user_id")

	list, err := h.service.ListMine(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list requests")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": list})
}
