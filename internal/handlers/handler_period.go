package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finacct/backend/internal/core/ports/services"
	"github.com/finacct/backend/internal/dto"
	"github.com/finacct/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// periodHandler handles HTTP requests for accounting period closes.
type periodHandler struct {
	periodSvc portssvc.PeriodSvcFacade
}

// RegisterPeriodRoutes registers routes related to accounting periods.
func RegisterPeriodRoutes(rg *gin.RouterGroup, periodSvc portssvc.PeriodSvcFacade) {
	h := &periodHandler{periodSvc: periodSvc}

	periods := rg.Group("/periods")
	{
		periods.POST("/close", h.closePeriod)
		periods.GET("", h.listClosedPeriods)
	}
}

// closePeriod godoc
// @Summary Close an accounting period
// @Description Locks the date range against postings and sweeps net income into retained earnings. Closing is atomic and terminal.
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   period body dto.ClosePeriodRequest true "Period to close"
// @Success 200 {object} dto.ClosePeriodResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Period already closed"
// @Failure 422 {object} map[string]string "Required system account missing"
// @Security BearerAuth
// @Router /periods/close [post]
func (h *periodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ClosePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for closePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	result, err := h.periodSvc.ClosePeriod(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to close period")
		return
	}

	c.JSON(http.StatusOK, dto.ClosePeriodResponse{
		Status:    string(result.Status),
		Period:    result.Period,
		NetIncome: result.NetIncome,
	})
}

// listClosedPeriods godoc
// @Summary List closed periods
// @Description Lists the tenant's period closures, newest first
// @Tags periods
// @Produce  json
// @Success 200 {array} dto.PeriodCloseResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /periods [get]
func (h *periodHandler) listClosedPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	closes, err := h.periodSvc.ListClosedPeriods(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, logger, err, "Failed to list closed periods")
		return
	}

	responses := make([]dto.PeriodCloseResponse, len(closes))
	for i := range closes {
		responses[i] = dto.ToPeriodCloseResponse(&closes[i])
	}
	c.JSON(http.StatusOK, responses)
}
