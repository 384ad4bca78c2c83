package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/ports/services"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/dto"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// webhookHandler handles normalized gateway events. The adapter layer has
// already flattened gateway-specific payloads before they arrive here.
type webhookHandler struct {
	postingService  portssvc.PostingSvcFacade
	reversalService portssvc.ReversalSvcFacade
}

// newWebhookHandler creates a new webhookHandler.
func newWebhookHandler(ps portssvc.PostingSvcFacade, rs portssvc.ReversalSvcFacade) *webhookHandler {
	return &webhookHandler{
		postingService:  ps,
		reversalService: rs,
	}
}

// registerWebhookRoutes registers the gateway event endpoints.
func registerWebhookRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade, reversalService portssvc.ReversalSvcFacade) {
	h := newWebhookHandler(postingService, reversalService)

	rg.POST("/payment-confirmed", h.paymentConfirmed)
	rg.POST("/refund", h.refundRequested)
}

// paymentConfirmed runs the split poster for a paid sale. Redeliveries return
// the same result with alreadyPosted set; the gateway can retry freely.
func (h *webhookHandler) paymentConfirmed(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PaymentConfirmedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for payment-confirmed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.postingService.PostSale(c.Request.Context(), req.ToDomain(), actorID)
	if err != nil {
		respondWithServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostingResponse(result))
}

// refundRequested runs the reverser for a refund or chargeback relayed by the
// gateway adapter.
func (h *webhookHandler) refundRequested(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RefundRequestedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for refund webhook", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.reversalService.ReverseSale(c.Request.Context(), req.ToDomain(), actorID)
	if err != nil {
		respondWithServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReversalResponse(result))
}
