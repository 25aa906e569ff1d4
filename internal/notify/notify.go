// Package notify delivers best-effort admin notifications for new
// bookings. Delivery is fire-and-forget by contract: a failed or
// dropped notification is logged and forgotten, and must never bubble
// back into the booking that triggered it (at-most-once, not
// at-least-once).
package notify

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"
)

// Notification kinds.
const KindNewBooking = "new_booking"

// OrderSnapshot is the slice of a freshly created order a notification
// carries. It is a copy taken at creation time, so later status changes
// do not alter what the admin was told.
type OrderSnapshot struct {
	OrderID      int64
	Reference    string
	CustomerName string
	BookingType  string
	ItemName     string
	TravelDate   time.Time
	Guests       int
	TotalPrice   float64
}

// Sink is the one-way delivery target. Implementations acknowledge
// success or failure; the notifier logs failures and moves on.
type Sink interface {
	Deliver(kind string, snap OrderSnapshot) error
}

type envelope struct {
	kind string
	snap OrderSnapshot
}

// Notifier queues snapshots for a background worker so the booking
// request never waits on delivery.
type Notifier struct {
	queue chan envelope
	sink  Sink

	mu     sync.Mutex
	closed bool
}

// New starts a Notifier with a single delivery worker.
func New(sink Sink) *Notifier {
	n := &Notifier{
		queue: make(chan envelope, 64),
		sink:  sink,
	}
	go n.run()
	return n
}

func (n *Notifier) run() {
	for env := range n.queue {
		if err := n.sink.Deliver(env.kind, env.snap); err != nil {
			log.Printf("notification delivery failed (order %d): %v", env.snap.OrderID, err)
		}
	}
}

// NotifyOrderCreated enqueues a new-booking notification. It never
// blocks: if the queue is full, or the notifier is already closed, the
// notification is dropped and logged.
func (n *Notifier) NotifyOrderCreated(snap OrderSnapshot) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		log.Printf("notifier closed, dropping notification for order %d", snap.OrderID)
		return
	}
	select {
	case n.queue <- envelope{kind: KindNewBooking, snap: snap}:
	default:
		log.Printf("notification queue full, dropping notification for order %d", snap.OrderID)
	}
}

// Close stops accepting notifications. Anything already queued is still
// delivered by the worker. Safe to call more than once.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	close(n.queue)
}

//
// --- Database Sink ---
//

// DBSink writes one notification row per administrator into the
// 'notifications' table, which the admin back-office polls.
type DBSink struct {
	DB *sql.DB
}

func (s *DBSink) Deliver(kind string, snap OrderSnapshot) error {
	// 1. --- Find the administrators ---
	rows, err := s.DB.Query("SELECT id FROM users WHERE role = 'administrator'")
	if err != nil {
		return fmt.Errorf("failed to load administrators: %w", err)
	}
	defer rows.Close()

	var adminIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan administrator id: %w", err)
		}
		adminIDs = append(adminIDs, id)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating administrators: %w", err)
	}

	// 2. --- Insert one notification per admin ---
	message := fmt.Sprintf("New %s booking %s: %s for %s, %d guest(s), total %.2f",
		snap.BookingType, snap.Reference, snap.ItemName, snap.CustomerName, snap.Guests, snap.TotalPrice)
	link := fmt.Sprintf("/admin/orders/%d", snap.OrderID)

	query := `
		INSERT INTO notifications
		(user_id, kind, message, link, is_read, created_at)
		VALUES (?, ?, ?, ?, 0, ?)`

	for _, adminID := range adminIDs {
		if _, err := s.DB.Exec(query, adminID, kind, message, link, time.Now()); err != nil {
			return fmt.Errorf("failed to add notification: %w", err)
		}
	}
	return nil
}
