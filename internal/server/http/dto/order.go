package dto

import (
	"time"

	"github.com/polkiloo/eventhub/internal/domain/model"
)

// OrderResponse describes a stored order.
type OrderResponse struct {
	StripeID    string            `json:"stripeId"`
	EventID     string            `json:"eventId"`
	BuyerID     string            `json:"buyerId"`
	TotalAmount string            `json:"totalAmount,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   *time.Time        `json:"createdAt,omitempty"`
}

// OrderViewResponse is an order joined with event and buyer fields.
type OrderViewResponse struct {
	OrderResponse
	EventTitle    string            `json:"eventTitle,omitempty"`
	EventStartsAt *time.Time        `json:"eventStartsAt,omitempty"`
	Buyer         *BuyerResponse    `json:"buyer,omitempty"`
	Metadata      map[string]string `json:"metadata"`
}

// BuyerResponse holds the display fields of the buyer.
type BuyerResponse struct {
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// OrderPageResponse is one page of the caller's orders.
type OrderPageResponse struct {
	Data       []OrderViewResponse `json:"data"`
	TotalPages int                 `json:"totalPages"`
}

// RegistrantsResponse lists orders of an event.
type RegistrantsResponse struct {
	Data []OrderViewResponse `json:"data"`
}

// NewOrderResponse converts a domain order.
func NewOrderResponse(o *model.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	resp := &OrderResponse{
		StripeID:    o.StripeID,
		EventID:     o.EventID,
		BuyerID:     o.BuyerID,
		TotalAmount: o.TotalAmount,
		Metadata:    o.Metadata,
	}
	if !o.CreatedAt.IsZero() {
		created := o.CreatedAt
		resp.CreatedAt = &created
	}
	return resp
}

// NewOrderViewResponse converts a joined order view.
func NewOrderViewResponse(v model.OrderView) OrderViewResponse {
	resp := OrderViewResponse{
		OrderResponse: *NewOrderResponse(&v.Order),
		EventTitle:    v.EventTitle,
		Metadata:      v.Metadata,
	}
	if resp.Metadata == nil {
		resp.Metadata = map[string]string{}
	}
	if !v.EventStartsAt.IsZero() {
		starts := v.EventStartsAt
		resp.EventStartsAt = &starts
	}
	if v.BuyerEmail != "" || v.BuyerUsername != "" || v.BuyerFirstName != "" || v.BuyerLastName != "" {
		resp.Buyer = &BuyerResponse{
			Email:     v.BuyerEmail,
			Username:  v.BuyerUsername,
			FirstName: v.BuyerFirstName,
			LastName:  v.BuyerLastName,
		}
	}
	return resp
}

// NewOrderViewsResponse converts a list of order views.
func NewOrderViewsResponse(views []model.OrderView) []OrderViewResponse {
	out := make([]OrderViewResponse, 0, len(views))
	for _, v := range views {
		out = append(out, NewOrderViewResponse(v))
	}
	return out
}
