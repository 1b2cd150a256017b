package handlers

import (
	"errors"
	"net/http"

	"github.com/mphinance/ulty-tracker/internal/api/response"
	"github.com/mphinance/ulty-tracker/internal/apperrors"
	"github.com/mphinance/ulty-tracker/internal/service"
)

// DistributionHandler handles HTTP requests for the distribution schedule.
type DistributionHandler struct {
	dividendService *service.DividendService
}

// NewDistributionHandler creates a new DistributionHandler with the provided service dependency.
func NewDistributionHandler(dividendService *service.DividendService) *DistributionHandler {
	return &DistributionHandler{
		dividendService: dividendService,
	}
}

// Schedule handles GET requests for the full distribution schedule: the
// historical table extended with weekly estimated entries through the horizon.
//
// Endpoint: GET /api/distribution/schedule
// Response: 200 OK with array of DividendRate
// Error: 422 Unprocessable Entity if no historical data exists to estimate from
// Error: 500 Internal Server Error if retrieval fails
func (h *DistributionHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.dividendService.GetSchedule(r.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientDividendData) {
			response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrInsufficientDividendData.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSchedule.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, schedule)
}

// RefreshResponse reports how many new entries a refresh recorded.
type RefreshResponse struct {
	Merged int `json:"merged"`
}

// Refresh handles POST requests to fetch newly announced distributions and
// merge them into the historical table.
//
// Endpoint: POST /api/distribution/refresh
// Response: 200 OK with RefreshResponse
// Error: 502 Bad Gateway if the upstream fetch fails
func (h *DistributionHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	merged, err := h.dividendService.RefreshDistributions(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToRefreshDistributions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, RefreshResponse{Merged: merged})
}
