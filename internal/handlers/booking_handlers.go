package handlers

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/voyageclub/voyageclub-golang/internal/models"
	"github.com/voyageclub/voyageclub-golang/internal/notify"
	"github.com/voyageclub/voyageclub-golang/internal/pricing"
)

//
// --- Booking Handlers (Members) ---
//

// TravelDateLayout is the wire format for travel dates.
const TravelDateLayout = "2006-01-02"

// CreateBookingInput is the JSON body for POST /v1/bookings.
// The 'futuredate' rule is our custom validation registered on gin's
// binding engine: parseable and not in the past.
type CreateBookingInput struct {
	BookingType  string `json:"bookingType" binding:"required,oneof=hotel tour"`
	ItemID       int64  `json:"itemId" binding:"required"`
	TravelDate   string `json:"travelDate" binding:"required,futuredate"`
	Guests       int    `json:"guests" binding:"required,min=1"`
	ContactPhone string `json:"contactPhone" binding:"required"`
	Notes        string `json:"notes"`
}

// CreateBooking is the handler for POST /v1/bookings
//
// Only active members reach this handler (AuthMiddleware). The order is
// persisted with status 'pending' and a total computed from the item's
// member price and the caller's tier; the admin notification afterwards
// is fire-and-forget and can never fail the booking.
//
// There is deliberately no availability check on either item type: the
// club sells from an uncapped catalog, so two members can book the same
// limited deal. Known gap, preserved on purpose.
func (h *Handlers) CreateBooking(c *gin.Context) {
	// 1. --- Get Member Identity ---
	userID_raw, _ := c.Get("userID")
	userID := userID_raw.(int64)
	tier_raw, _ := c.Get("userTier")
	tier := tier_raw.(string)

	// A member row with a broken tier must fail loudly, not price as
	// some default tier.
	if !models.ValidTier(tier) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Your membership tier is not configured correctly. Please contact support."})
		return
	}

	// 2. --- Bind & Validate JSON ---
	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	travelDate, err := time.Parse(TravelDateLayout, input.TravelDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid travel date, expected YYYY-MM-DD"})
		return
	}

	// 3. --- Contact Snapshot ---
	// Name and email are frozen onto the order at booking time; later
	// profile edits must not rewrite old bookings.
	var customerName, customerEmail string
	err = h.DB.QueryRow("SELECT full_name, email FROM users WHERE id = ?", userID).
		Scan(&customerName, &customerEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load your profile"})
		return
	}

	// 4. --- Load the Item (dispatch by kind tag) ---
	var item models.BookablePricingFields
	switch input.BookingType {
	case models.KindHotel:
		var deal models.HotelDeal
		err = h.DB.QueryRow("SELECT id, name, regular_price, member_price FROM hotel_deals WHERE id = ?", input.ItemID).
			Scan(&deal.ID, &deal.Name, &deal.Regular, &deal.Member)
		item = deal
	case models.KindTour:
		var pkg models.TourPackage
		err = h.DB.QueryRow("SELECT id, name, regular_price, member_price FROM tour_packages WHERE id = ?", input.ItemID).
			Scan(&pkg.ID, &pkg.Name, &pkg.Regular, &pkg.Member)
		item = pkg
	}
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "The selected item no longer exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load the selected item"})
		return
	}

	// 5. --- Compute the Total (base currency, fixed at creation) ---
	totalPrice, err := pricing.TotalPrice(input.BookingType, item.MemberPrice(), tier, input.Guests)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 6. --- Persist the Order (status = pending) ---
	now := time.Now()
	reference := "VC-" + strings.Split(uuid.NewString(), "-")[0]

	var notes sql.NullString
	if input.Notes != "" {
		notes = sql.NullString{String: input.Notes, Valid: true}
	}

	query := `
		INSERT INTO orders
		(reference, user_id, customer_name, customer_email, customer_phone,
		 booking_type, item_id, item_name, booked_at, travel_date, guests,
		 total_price, notes, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := h.DB.Exec(query,
		reference, userID, customerName, customerEmail, input.ContactPhone,
		input.BookingType, input.ItemID, item.ItemName(), now, travelDate, input.Guests,
		totalPrice, notes, models.OrderPending, now, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}
	orderID, err := result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get new booking ID"})
		return
	}

	// 7. --- Notify the Back Office (best effort, never blocks) ---
	h.Notifier.NotifyOrderCreated(notify.OrderSnapshot{
		OrderID:      orderID,
		Reference:    reference,
		CustomerName: customerName,
		BookingType:  input.BookingType,
		ItemName:     item.ItemName(),
		TravelDate:   travelDate,
		Guests:       input.Guests,
		TotalPrice:   totalPrice,
	})

	// 8. --- Send Success Response ---
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Booking placed successfully. Our concierge team will confirm it shortly.",
		"orderId":    orderID,
		"reference":  reference,
		"status":     models.OrderPending,
		"totalPrice": totalPrice,
	})
}

// orderColumns is the full select list for the 'orders' table.
const orderColumns = `id, reference, user_id, customer_name, customer_email, customer_phone,
	booking_type, item_id, item_name, booked_at, travel_date, guests,
	total_price, notes, status, created_at, updated_at`

func scanOrder(row interface{ Scan(...interface{}) error }) (models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID, &o.Reference, &o.UserID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.BookingType, &o.ItemID, &o.ItemName, &o.BookedAt, &o.TravelDate, &o.Guests,
		&o.TotalPrice, &o.Notes, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

// GetMyBookings is the handler for GET /v1/bookings
// It returns only the caller's orders, newest first.
func (h *Handlers) GetMyBookings(c *gin.Context) {
	// 1. --- Get Member ID ---
	userID_raw, _ := c.Get("userID")
	userID := userID_raw.(int64)

	// 2. --- Query Orders ---
	rows, err := h.DB.Query(`SELECT `+orderColumns+` FROM orders WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}
	defer rows.Close()

	// 3. --- Scan Rows ---
	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan booking row"})
			return
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating booking rows"})
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": orders})
}

// GetBookingDetails is the handler for GET /v1/bookings/:id
// Ownership is enforced in the WHERE clause: asking for someone else's
// booking looks identical to asking for one that does not exist.
func (h *Handlers) GetBookingDetails(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	userID := userID_raw.(int64)

	row := h.DB.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id = ? AND user_id = ?`, c.Param("id"), userID)
	o, err := scanOrder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": o})
}
