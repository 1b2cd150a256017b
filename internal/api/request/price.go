package request

// SetPriceRequest is the body for manually setting the current price.
type SetPriceRequest struct {
	Price float64 `json:"price"`
}
