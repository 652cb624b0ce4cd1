package types

// MessageResponse is the body returned by delete-style endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the wire shape for every failed request. Detail is only
// populated outside production.
type ErrorResponse struct {
	Message string `json:"message"`
	Detail  any    `json:"error,omitempty"`
}
