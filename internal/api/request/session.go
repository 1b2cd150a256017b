package request

// RestoreSessionRequest carries a share token produced by the share endpoint.
type RestoreSessionRequest struct {
	Token string `json:"token"`
}
