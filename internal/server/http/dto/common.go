package dto

// ErrorResponse is returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a status message and an optional order.
type MessageResponse struct {
	Message string         `json:"message"`
	Order   *OrderResponse `json:"order,omitempty"`
}
