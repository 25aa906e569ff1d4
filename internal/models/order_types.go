package models

import (
	"database/sql"
	"fmt"
	"time"
)

// Order statuses. Every order is born 'pending'; an administrator moves
// it to exactly one of the two terminal states. Terminal states never
// revert, and repeating a terminal transition is rejected, not ignored.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderCancelled = "cancelled"
)

// ErrInvalidTransition is returned when an order-status change breaks
// the pending -> {confirmed, cancelled} rule.
type ErrInvalidTransition struct {
	From string
	To   string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("invalid order status transition: %s -> %s", e.From, e.To)
}

// CheckTransition validates a requested status change. It returns nil
// only for pending -> confirmed and pending -> cancelled.
func CheckTransition(from, to string) error {
	if from != OrderPending {
		return &ErrInvalidTransition{From: from, To: to}
	}
	if to != OrderConfirmed && to != OrderCancelled {
		return &ErrInvalidTransition{From: from, To: to}
	}
	return nil
}

// Order is the model for the 'orders' table.
//
// Customer contact and item name are snapshots captured at booking time,
// not live links: later edits to the user or the catalog entry must not
// rewrite history. TotalPrice is fixed at creation (base currency) and
// never recomputed.
type Order struct {
	ID        int64  `json:"id" db:"id"`
	Reference string `json:"reference" db:"reference"` // e.g. VC-4f9a2c1e
	UserID    int64  `json:"userId" db:"user_id"`

	// Contact snapshot
	CustomerName  string `json:"customerName" db:"customer_name"`
	CustomerEmail string `json:"customerEmail" db:"customer_email"`
	CustomerPhone string `json:"customerPhone" db:"customer_phone"`

	BookingType string `json:"bookingType" db:"booking_type"` // hotel | tour
	ItemID      int64  `json:"itemId" db:"item_id"`
	ItemName    string `json:"itemName" db:"item_name"` // snapshot

	BookedAt   time.Time `json:"bookedAt" db:"booked_at"`
	TravelDate time.Time `json:"travelDate" db:"travel_date"`
	Guests     int       `json:"guests" db:"guests"`
	TotalPrice float64   `json:"totalPrice" db:"total_price"` // base currency

	Notes  sql.NullString `json:"notes,omitempty" db:"notes"`
	Status string         `json:"status" db:"status"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
