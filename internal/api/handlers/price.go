package handlers

import (
	"errors"
	"net/http"

	"github.com/mphinance/ulty-tracker/internal/api/request"
	"github.com/mphinance/ulty-tracker/internal/api/response"
	"github.com/mphinance/ulty-tracker/internal/apperrors"
	"github.com/mphinance/ulty-tracker/internal/service"
	"github.com/mphinance/ulty-tracker/internal/validation"
)

// PriceHandler handles HTTP requests for the current price.
type PriceHandler struct {
	priceService *service.PriceService
}

// NewPriceHandler creates a new PriceHandler with the provided service dependency.
func NewPriceHandler(priceService *service.PriceService) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
	}
}

// PriceResponse wraps a price value.
type PriceResponse struct {
	Price float64 `json:"price"`
}

// GetPrice handles GET requests for the stored current price.
//
// Endpoint: GET /api/price
// Response: 200 OK with PriceResponse
// Error: 404 Not Found if no price has been set or fetched yet
// Error: 500 Internal Server Error if retrieval fails
func (h *PriceHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	price, err := h.priceService.GetCurrentPrice(r.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNoCurrentPrice) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrNoCurrentPrice.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePrice.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, PriceResponse{Price: price})
}

// SetPrice handles PUT requests to manually set the current price.
//
// Endpoint: PUT /api/price
// Request Body: SetPriceRequest (price)
// Response: 200 OK with PriceResponse
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if storage fails
func (h *PriceHandler) SetPrice(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetPriceRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSetPrice(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	if err := h.priceService.SetCurrentPrice(r.Context(), req.Price); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to set price", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, PriceResponse{Price: req.Price})
}

// RefreshPrice handles POST requests to fetch the latest quote and store it.
//
// Endpoint: POST /api/price/refresh
// Response: 200 OK with PriceResponse (the fetched price)
// Error: 502 Bad Gateway if the upstream fetch fails
func (h *PriceHandler) RefreshPrice(w http.ResponseWriter, r *http.Request) {
	price, err := h.priceService.RefreshPrice(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToRefreshPrice.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, PriceResponse{Price: price})
}
