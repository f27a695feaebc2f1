package dto

// CheckoutRequest starts a ticket purchase.
type CheckoutRequest struct {
	EventID string `json:"eventId" binding:"required"`
}

// CheckoutResponse points the buyer to the hosted payment page.
type CheckoutResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
