package handlers

import (
	"log/slog"
	"net/http"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
	portssvc "github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/ports/services"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/dto"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// saleHandler handles the admin-facing per-sale operations: manual reversals,
// affiliate attribution and the ledger read endpoints.
type saleHandler struct {
	postingService   portssvc.PostingSvcFacade
	reversalService  portssvc.ReversalSvcFacade
	reportingService portssvc.ReportingSvcFacade
}

// newSaleHandler creates a new saleHandler.
func newSaleHandler(ps portssvc.PostingSvcFacade, rs portssvc.ReversalSvcFacade, reps portssvc.ReportingSvcFacade) *saleHandler {
	return &saleHandler{
		postingService:   ps,
		reversalService:  rs,
		reportingService: reps,
	}
}

// registerSaleRoutes registers routes nested under a specific sale.
func registerSaleRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade, reversalService portssvc.ReversalSvcFacade, reportingService portssvc.ReportingSvcFacade) {
	h := newSaleHandler(postingService, reversalService, reportingService)

	sale := rg.Group("/sales/:sale_id")
	{
		sale.POST("/reversals", h.createReversal)
		sale.POST("/affiliate-split", h.attachAffiliateSplit)
		sale.GET("/splits", h.getSaleSplits)
		sale.GET("/transactions", h.getSaleTransactions)
	}
}

// createReversal triggers a manual refund or chargeback reversal for a sale.
func (h *saleHandler) createReversal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("sale_id")

	var req dto.RefundRequestedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reversal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if req.SaleID != saleID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sale ID in path and body must match"})
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

// attachAffiliateSplit records the affiliate allocation for a sale before its
// payment confirms.
func (h *saleHandler) attachAffiliateSplit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("sale_id")

	var req dto.AttachAffiliateSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for affiliate split", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	split, err := h.postingService.AttachAffiliateSplit(c.Request.Context(), saleID, req, actorID)
	if err != nil {
		respondWithServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSplitResponses([]domain.Split{*split})[0])
}

// getSaleSplits returns every split row for a sale.
func (h *saleHandler) getSaleSplits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("sale_id")

	splits, err := h.reportingService.GetSaleSplits(c.Request.Context(), saleID)
	if err != nil {
		respondWithServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"splits": dto.ToSplitResponses(splits)})
}

// getSaleTransactions returns every ledger entry originating from a sale.
func (h *saleHandler) getSaleTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("sale_id")

	txns, err := h.reportingService.GetSaleTransactions(c.Request.Context(), saleID)
	if err != nil {
		respondWithServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": dto.ToTransactionResponses(txns)})
}
