package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finacct/backend/internal/core/ports/services"
	"github.com/finacct/backend/internal/dto"
	"github.com/finacct/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// postingHandler handles HTTP requests for journal transactions.
type postingHandler struct {
	postingSvc portssvc.PostingSvcFacade
}

// RegisterPostingRoutes registers routes related to transactions.
func RegisterPostingRoutes(rg *gin.RouterGroup, postingSvc portssvc.PostingSvcFacade) {
	h := &postingHandler{postingSvc: postingSvc}

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.postTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
	}
}

// postTransaction godoc
// @Summary Post a balanced journal transaction
// @Description Posts a transaction whose debit and credit legs balance. Fails if the date falls in a closed period.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.PostTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input or unbalanced entries"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Referenced account not found"
// @Failure 409 {object} map[string]string "Period is closed"
// @Security BearerAuth
// @Router /transactions [post]
func (h *postingHandler) postTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for postTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	transaction, err := h.postingSvc.PostTransaction(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to post transaction")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(transaction))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists the tenant's transactions newest first with token pagination
// @Tags transactions
// @Produce  json
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Continuation token"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /transactions [get]
func (h *postingHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	transactions, nextToken, err := h.postingSvc.ListTransactions(c.Request.Context(), tenantID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}

	resp := dto.ListTransactionsResponse{Transactions: dto.ToTransactionResponses(transactions)}
	if nextToken != "" {
		resp.NextToken = &nextToken
	}
	c.JSON(http.StatusOK, resp)
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Description Retrieves a transaction with all its entry legs
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *postingHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	tenantID, _, ok := requestIdentity(c)
	if !ok {
		return
	}

	transaction, err := h.postingSvc.GetTransactionByID(c.Request.Context(), tenantID, transactionID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(transaction))
}
