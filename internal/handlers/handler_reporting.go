package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/finacct/backend/internal/core/ports/services"
	"github.com/finacct/backend/internal/dto"
	"github.com/finacct/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for ledger reports.
type reportingHandler struct {
	reportingSvc portssvc.ReportingSvcFacade
}

// RegisterReportingRoutes registers routes for reports and ledger listings.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingSvc portssvc.ReportingSvcFacade) {
	h := &reportingHandler{reportingSvc: reportingSvc}

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/balance-sheet", h.balanceSheet)
		reports.GET("/income-statement", h.incomeStatement)
		reports.GET("/cash-flow", h.cashFlow)
	}
	rg.GET("/accounts/:id/ledger", h.listLedger)
}

// bindRange parses the start/end query parameters as YYYY-MM-DD dates.
func bindRange(c *gin.Context) (time.Time, time.Time, bool) {
	var params dto.ReportRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return time.Time{}, time.Time{}, false
	}
	start, err := time.Parse(time.DateOnly, params.Start)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(time.DateOnly, params.End)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must not precede start"})
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// trialBalance godoc
// @Summary Trial balance report
// @Description Aggregates per-account debit/credit activity over a date range and reports whether the books balance
// @Tags reports
// @Produce  json
// @Param   start query string true "Range start (YYYY-MM-DD)"
// @Param   end query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} domain.TrialBalanceReport
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	start, end, ok := bindRange(c)
	if !ok {
		return
	}
	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	report, err := h.reportingSvc.GetTrialBalance(c.Request.Context(), tenantID, start, end)
	if err != nil {
		respondError(c, logger, err, "Failed to compute trial balance")
		return
	}
	c.JSON(http.StatusOK, report)
}

// balanceSheet godoc
// @Summary Balance sheet report
// @Description Reports assets, liabilities and equity as of a date
// @Tags reports
// @Produce  json
// @Param   asOf query string true "As-of date (YYYY-MM-DD)"
// @Success 200 {object} domain.BalanceSheetReport
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) balanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	asOf, err := time.Parse(time.DateOnly, params.AsOf)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
		return
	}

	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	report, err := h.reportingSvc.GetBalanceSheet(c.Request.Context(), tenantID, asOf)
	if err != nil {
		respondError(c, logger, err, "Failed to compute balance sheet")
		return
	}
	c.JSON(http.StatusOK, report)
}

// incomeStatement godoc
// @Summary Income statement report
// @Description Reports revenue, expenses and net income over a date range
// @Tags reports
// @Produce  json
// @Param   start query string true "Range start (YYYY-MM-DD)"
// @Param   end query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} domain.IncomeStatementReport
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /reports/income-statement [get]
func (h *reportingHandler) incomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	start, end, ok := bindRange(c)
	if !ok {
		return
	}
	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	report, err := h.reportingSvc.GetIncomeStatement(c.Request.Context(), tenantID, start, end)
	if err != nil {
		respondError(c, logger, err, "Failed to compute income statement")
		return
	}
	c.JSON(http.StatusOK, report)
}

// cashFlow godoc
// @Summary Cash flow report
// @Description Reports inflows and outflows over the tenant's cash accounts for a date range
// @Tags reports
// @Produce  json
// @Param   start query string true "Range start (YYYY-MM-DD)"
// @Param   end query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} domain.CashFlowReport
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /reports/cash-flow [get]
func (h *reportingHandler) cashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	start, end, ok := bindRange(c)
	if !ok {
		return
	}
	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	report, err := h.reportingSvc.GetCashFlow(c.Request.Context(), tenantID, start, end)
	if err != nil {
		respondError(c, logger, err, "Failed to compute cash flow")
		return
	}
	c.JSON(http.StatusOK, report)
}

// listLedger godoc
// @Summary List an account's ledger lines
// @Description Lists the account's entry legs joined with their transactions, date ascending, token paginated
// @Tags reports
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Continuation token"
// @Success 200 {object} dto.ListLedgerResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/ledger [get]
func (h *reportingHandler) listLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var params dto.ListLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	lines, nextToken, err := h.reportingSvc.ListLedgerLines(c.Request.Context(), tenantID, accountID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list ledger lines")
		return
	}

	resp := dto.ListLedgerResponse{Lines: lines}
	if nextToken != "" {
		resp.NextToken = &nextToken
	}
	c.JSON(http.StatusOK, resp)
}
