package payment

import (
	"encoding/json"
	"io"
	"net/http"

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
	rg.POST("/payments/intent", middleware.OwnerOnly(), h.CreateIntent)
	rg.GET("/payouts", middleware.ProviderOnly(), h.ListPayouts)
}

// RegisterWebhookRoutes wires the gateway callback outside the auth
// middleware; authenticity comes from the HMAC signature instead.
func (h *Handler) RegisterWebhookRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/payment", h.Webhook)
}

func (h *Handler) CreateIntent(c *gin.Context) {
	callerID := c.GetInt64("user_id")

	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body")
		return
	}

	intent, err := h.service.CreateIntent(c.Request.Context(), req.JobID, callerID)
	if err != nil {
		switch err {
		case ErrInvalidInput:
			response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid payment request")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Job not found")
		case ErrUnauthorized:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the job owner can pay")
		case ErrNotPayable:
			response.Error(c, http.StatusConflict, "NOT_READY", "Job is not completed yet")
		case ErrExternalService:
			response.Error(c, http.StatusBadGateway, "EXTERNAL_SERVICE_ERROR", "Payment gateway unavailable, try again")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create payment intent")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"intent": intent})
}

// Webhook always acknowledges the gateway once the signature checks out;
// internal settlement failures are logged and left to redelivery, so the
// gateway does not build a retry storm against us.
func (h *Handler) Webhook(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Unreadable body")
		return
	}

	signature := c.GetHeader("X-Webhook-Signature")
	if !h.service.VerifySignature(raw, signature) {
		response.Error(c, http.StatusUnauthorized, "INVALID_SIGNATURE", "Webhook signature mismatch")
		return
	}

	var ev WebhookEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Malformed event payload")
		return
	}

	if err := h.service.Settle(c.Request.Context(), ev); err != nil {
		h.service.loggerf("level=error msg=webhook settlement failed txn_id=%s err=%v", ev.TxnID, err)
	}

	response.Success(c, http.StatusOK, gin.H{"received": true})
}

func (h *Handler) ListPayouts(c *gin.Context) {
	providerID := c.GetInt64("user_id")

	payouts, err := h.service.ListPayouts(c.Request.Context(), providerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list payouts")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payouts": payouts})
}
