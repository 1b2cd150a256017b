package handlers

import (
	"net/http"

	"github.com/mphinance/ulty-tracker/internal/api/request"
	"github.com/mphinance/ulty-tracker/internal/api/response"
	"github.com/mphinance/ulty-tracker/internal/service"
	"github.com/mphinance/ulty-tracker/internal/validation"
)

// HoldingsHandler handles HTTP requests for the replace-holdings shortcut.
type HoldingsHandler struct {
	transactionService *service.TransactionService
}

// NewHoldingsHandler creates a new HoldingsHandler with the provided service dependency.
func NewHoldingsHandler(transactionService *service.TransactionService) *HoldingsHandler {
	return &HoldingsHandler{
		transactionService: transactionService,
	}
}

// ReplaceHoldings handles PUT requests to collapse the transaction history
// into a single synthetic buy dated today. Per-lot history is discarded.
//
// Endpoint: PUT /api/holdings
// Request Body: ReplaceHoldingsRequest (shares, avgPrice)
// Response: 200 OK with the synthetic Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the swap fails
func (h *HoldingsHandler) ReplaceHoldings(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ReplaceHoldingsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateReplaceHoldings(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionService.ReplaceHoldings(r.Context(), req.Shares, req.AvgPrice)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to replace holdings", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}
