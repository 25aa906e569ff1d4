package models

import (
	"database/sql"
	"time"
)

// Notification is the model for the 'notifications' table.
// Rows are written by the booking notifier (one per administrator when
// a new order lands) and read back through the notification handlers.
type Notification struct {
	ID        int64          `json:"id" db:"id"`
	UserID    int64          `json:"userId" db:"user_id"`
	Kind      string         `json:"kind" db:"kind"` // e.g. new_booking
	Message   string         `json:"message" db:"message"`
	Link      sql.NullString `json:"link,omitempty" db:"link"`
	IsRead    bool           `json:"isRead" db:"is_read"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
}
