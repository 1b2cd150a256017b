package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mphinance/ulty-tracker/internal/api/request"
	"github.com/mphinance/ulty-tracker/internal/api/response"
	"github.com/mphinance/ulty-tracker/internal/apperrors"
	"github.com/mphinance/ulty-tracker/internal/service"
	"github.com/mphinance/ulty-tracker/internal/validation"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
	importService      *service.ImportService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependencies.
func NewTransactionHandler(transactionService *service.TransactionService, importService *service.ImportService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		importService:      importService,
	}
}

// AllTransactions handles GET requests to retrieve the full transaction history.
// Transactions are returned ascending by date, the same order the evaluator uses.
//
// Endpoint: GET /api/transaction
// Response: 200 OK with array of Transaction
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) AllTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactionService.GetTransactions(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetTransaction handles GET requests to retrieve a single transaction by ID.
//
// Endpoint: GET /api/transaction/{uuid}
// Response: 200 OK with Transaction
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	transaction, err := h.transactionService.GetTransaction(r.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransaction.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CreateTransaction handles POST requests to record a new buy or sell.
//
// Endpoint: POST /api/transaction
// Request Body: CreateTransactionRequest (date, type, quantity, price)
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionService.CreateTransaction(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// ReplaceTransaction handles PUT requests to edit an existing transaction.
// Edits replace every field under the same ID.
//
// Endpoint: PUT /api/transaction/{uuid}
// Request Body: ReplaceTransactionRequest (date, type, quantity, price)
// Response: 200 OK with updated Transaction
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if update fails
func (h *TransactionHandler) ReplaceTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.ReplaceTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateReplaceTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionService.ReplaceTransaction(r.Context(), transactionID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}

		response.RespondError(w, http.StatusInternalServerError, "failed to replace transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE requests to remove a transaction.
//
// Endpoint: DELETE /api/transaction/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if deletion fails
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	err := h.transactionService.DeleteTransaction(r.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}

		response.RespondError(w, http.StatusInternalServerError, "failed to delete transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// DeleteAllTransactions handles DELETE requests to clear the entire history.
//
// Endpoint: DELETE /api/transaction
// Response: 204 No Content
// Error: 500 Internal Server Error if deletion fails
func (h *TransactionHandler) DeleteAllTransactions(w http.ResponseWriter, r *http.Request) {
	if err := h.transactionService.DeleteAllTransactions(r.Context()); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to delete transactions", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// ImportTransactions handles POST requests to bulk-import transactions from CSV.
// Valid rows are stored even when other rows fail; the response reports both.
//
// Endpoint: POST /api/transaction/import
// Request Body: CSV with header "date,type,quantity,price"
// Response: 200 OK with ImportResult (imported count plus per-row errors)
// Error: 400 Bad Request if the CSV headers are wrong
// Error: 500 Internal Server Error if storage fails
func (h *TransactionHandler) ImportTransactions(w http.ResponseWriter, r *http.Request) {
	result, err := h.importService.ImportCSV(r.Context(), r.Body)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCSVHeaders) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidCSVHeaders.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToImportTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
