package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finacct/backend/internal/core/ports/services"
	"github.com/finacct/backend/internal/dto"
	"github.com/finacct/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// refundHandler handles HTTP requests for the refund lifecycle.
type refundHandler struct {
	refundSvc portssvc.RefundSvcFacade
}

// RegisterRefundRoutes registers routes related to refunds.
func RegisterRefundRoutes(rg *gin.RouterGroup, refundSvc portssvc.RefundSvcFacade) {
	h := &refundHandler{refundSvc: refundSvc}

	refunds := rg.Group("/refunds")
	{
		refunds.POST("", h.requestRefund)
		refunds.GET("", h.listRefunds)
		refunds.GET("/:id", h.getRefund)
		refunds.POST("/:id/approve", h.approveRefund)
		refunds.POST("/:id/release", h.releaseRefund)
		refunds.POST("/:id/fail", h.failRefund)
	}
}

// requestRefund godoc
// @Summary Request a refund
// @Description Opens a refund request against a posted transaction. A transaction carries at most one active refund.
// @Tags refunds
// @Accept  json
// @Produce  json
// @Param   refund body dto.RequestRefundRequest true "Refund details"
// @Success 201 {object} dto.RefundResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Original transaction not found"
// @Failure 409 {object} map[string]string "Active refund already exists"
// @Security BearerAuth
// @Router /refunds [post]
func (h *refundHandler) requestRefund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RequestRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for requestRefund", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	refund, err := h.refundSvc.RequestRefund(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to request refund")
		return
	}

	c.JSON(http.StatusCreated, dto.ToRefundResponse(refund))
}

// approveRefund godoc
// @Summary Approve a refund
// @Description Approves a requested refund and posts its proportional reversal transaction atomically
// @Tags refunds
// @Produce  json
// @Param   id path string true "Refund ID"
// @Success 200 {object} dto.ApproveRefundResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Refund not found"
// @Failure 409 {object} map[string]string "Refund not in requested state"
// @Security BearerAuth
// @Router /refunds/{id}/approve [post]
func (h *refundHandler) approveRefund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	refundID := c.Param("id")

	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	refund, reversal, err := h.refundSvc.ApproveRefund(c.Request.Context(), tenantID, refundID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to approve refund")
		return
	}

	c.JSON(http.StatusOK, dto.ApproveRefundResponse{
		RefundID:              refund.RefundID,
		Status:                string(refund.Status),
		ReversalTransactionID: reversal.TransactionID,
	})
}

// releaseRefund godoc
// @Summary Release a refund
// @Description Marks an approved refund as settled externally
// @Tags refunds
// @Produce  json
// @Param   id path string true "Refund ID"
// @Success 200 {object} dto.RefundResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Refund not found"
// @Failure 409 {object} map[string]string "Refund not in approved state"
// @Security BearerAuth
// @Router /refunds/{id}/release [post]
func (h *refundHandler) releaseRefund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	refundID := c.Param("id")

	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	refund, err := h.refundSvc.ReleaseRefund(c.Request.Context(), tenantID, refundID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to release refund")
		return
	}

	c.JSON(http.StatusOK, dto.ToRefundResponse(refund))
}

// failRefund godoc
// @Summary Fail a refund
// @Description Marks a requested or approved refund as failed
// @Tags refunds
// @Produce  json
// @Param   id path string true "Refund ID"
// @Success 200 {object} dto.RefundResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Refund not found"
// @Failure 409 {object} map[string]string "Refund already terminal"
// @Security BearerAuth
// @Router /refunds/{id}/fail [post]
func (h *refundHandler) failRefund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	refundID := c.Param("id")

	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	refund, err := h.refundSvc.FailRefund(c.Request.Context(), tenantID, refundID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to fail refund")
		return
	}

	c.JSON(http.StatusOK, dto.ToRefundResponse(refund))
}

// getRefund godoc
// @Summary Get a refund by ID
// @Tags refunds
// @Produce  json
// @Param   id path string true "Refund ID"
// @Success 200 {object} dto.RefundResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Refund not found"
// @Security BearerAuth
// @Router /refunds/{id} [get]
func (h *refundHandler) getRefund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	refundID := c.Param("id")

	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	refund, err := h.refundSvc.GetRefundByID(c.Request.Context(), tenantID, refundID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve refund")
		return
	}

	c.JSON(http.StatusOK, dto.ToRefundResponse(refund))
}

// listRefunds godoc
// @Summary List refunds
// @Description Lists the tenant's refunds, newest first
// @Tags refunds
// @Produce  json
// @Success 200 {array} dto.RefundResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /refunds [get]
func (h *refundHandler) listRefunds(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	refunds, err := h.refundSvc.ListRefunds(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, logger, err, "Failed to list refunds")
		return
	}

	c.JSON(http.StatusOK, dto.ToRefundResponses(refunds))
}
