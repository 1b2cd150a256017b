package handlers

import (
	"net/http"

	"github.com/mphinance/ulty-tracker/internal/api/response"
	"github.com/mphinance/ulty-tracker/internal/apperrors"
	"github.com/mphinance/ulty-tracker/internal/service"
)

// InvestmentHandler handles HTTP requests for the evaluated investment view.
type InvestmentHandler struct {
	portfolioService *service.PortfolioService
}

// NewInvestmentHandler creates a new InvestmentHandler with the provided service dependency.
func NewInvestmentHandler(portfolioService *service.PortfolioService) *InvestmentHandler {
	return &InvestmentHandler{
		portfolioService: portfolioService,
	}
}

// GetInvestment handles GET requests for the full evaluation: the per-pay-date
// snapshot sequence and the aggregate investment view. The investment field is
// null when no transactions exist.
//
// Endpoint: GET /api/investment
// Response: 200 OK with ledger.Result {snapshots, investment}
// Error: 500 Internal Server Error if evaluation fails
func (h *InvestmentHandler) GetInvestment(w http.ResponseWriter, r *http.Request) {
	result, err := h.portfolioService.Evaluate(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToEvaluateInvestment.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
