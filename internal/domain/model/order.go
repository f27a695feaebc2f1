package model

import "time"

// ProfileMetadata is a snapshot of free-form buyer profile fields.
// A nil map means no snapshot was taken; an empty map means the lookup yielded nothing.
type ProfileMetadata map[string]string

// Order is the durable record of one buyer's completed payment for one event.
type Order struct {
	StripeID    string
	EventID     string
	BuyerID     string
	TotalAmount string
	Metadata    ProfileMetadata
	CreatedAt   time.Time
}

// OrderView joins an order with event and buyer display fields.
type OrderView struct {
	Order
	EventTitle     string
	EventStartsAt  time.Time
	BuyerEmail     string
	BuyerUsername  string
	BuyerFirstName string
	BuyerLastName  string
}

// OrderPage is one page of a buyer's orders.
type OrderPage struct {
	Items      []OrderView
	TotalPages int
}
