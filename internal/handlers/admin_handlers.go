package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/voyageclub/voyageclub-golang/internal/models"
)

//
// --- Admin: Order Management ---
//

// GetAllOrders is the handler for GET /v1/admin/orders
// Unrestricted listing, newest first. No pagination: a full scan is
// fine at club scale.
func (h *Handlers) GetAllOrders(c *gin.Context) {
	// 1. --- Query Database ---
	// Optional ?status= filter for the back-office tabs.
	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []interface{}
	if status := c.Query("status"); status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	// 2. --- Scan Rows ---
	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan order row"})
			return
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating order rows"})
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// UpdateOrderStatusInput defines the JSON input for a status change.
type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required,oneof=confirmed cancelled"`
}

// UpdateOrderStatus is the handler for PATCH /v1/admin/orders/:id/status
//
// The only legal moves are pending -> confirmed and pending -> cancelled.
// Anything else — including repeating a terminal status — is rejected
// with 409 and leaves the row untouched.
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	orderIDStr := c.Param("id")

	// 1. --- Bind & Validate JSON ---
	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Read the Current Status ---
	var currentStatus string
	err := h.DB.QueryRow("SELECT status FROM orders WHERE id = ?", orderIDStr).Scan(&currentStatus)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	// 3. --- Check the Transition ---
	if err := models.CheckTransition(currentStatus, input.Status); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "currentStatus": currentStatus})
		return
	}

	// 4. --- Apply It (guarded by the current status) ---
	// The WHERE status = 'pending' clause makes the update atomic: if
	// another admin got there first, zero rows change and we report the
	// conflict instead of overwriting a terminal state.
	result, err := h.DB.Exec(
		"UPDATE orders SET status = ?, updated_at = ? WHERE id = ? AND status = ?",
		input.Status, time.Now(), orderIDStr, models.OrderPending)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check affected rows"})
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Order is no longer pending"})
		return
	}

	// 5. --- Return the Updated Order ---
	row := h.DB.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id = ?`, orderIDStr)
	o, err := scanOrder(row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Status updated but failed to reload order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
		"order":   o,
	})
}

//
// --- Admin: Member Management ---
//

// GetAllUsers is the handler for GET /v1/admin/users
func (h *Handlers) GetAllUsers(c *gin.Context) {
	query := `
		SELECT id, role, status, email, full_name, membership_tier, points, phone_number, created_at, updated_at
		FROM users
		ORDER BY created_at DESC`

	rows, err := h.DB.Query(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Role, &u.Status, &u.Email, &u.FullName,
			&u.MembershipTier, &u.Points, &u.PhoneNumber,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan user row"})
			return
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating user rows"})
		return
	}

	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// UpdateUserStatusInput defines the JSON input for (de)activation.
type UpdateUserStatusInput struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

// UpdateUserStatus is the handler for PATCH /v1/admin/users/:id/status
// Deactivation is the soft end of the member lifecycle: tier and points
// survive, route access does not.
func (h *Handlers) UpdateUserStatus(c *gin.Context) {
	var input UpdateUserStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.DB.Exec(
		"UPDATE users SET status = ?, updated_at = ? WHERE id = ?",
		input.Status, time.Now(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user status"})
		return
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check affected rows"})
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User status updated"})
}

// UpdateUserTierInput defines the JSON input for a tier change.
type UpdateUserTierInput struct {
	MembershipTier string `json:"membershipTier" binding:"required,membertier"`
}

// UpdateUserTier is the handler for PATCH /v1/admin/users/:id/tier
// Tier changes only affect future bookings; existing orders keep the
// total that was computed when they were placed.
func (h *Handlers) UpdateUserTier(c *gin.Context) {
	var input UpdateUserTierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.DB.Exec(
		"UPDATE users SET membership_tier = ?, updated_at = ? WHERE id = ?",
		input.MembershipTier, time.Now(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update membership tier"})
		return
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check affected rows"})
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Membership tier updated"})
}

// AdjustUserPointsInput defines the JSON input for a points adjustment.
// Delta may be negative; the balance is not allowed below zero.
type AdjustUserPointsInput struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// AdjustUserPoints is the handler for PATCH /v1/admin/users/:id/points
func (h *Handlers) AdjustUserPoints(c *gin.Context) {
	var input AdjustUserPointsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Single guarded UPDATE: the balance check and the write are one
	// statement, so concurrent adjustments cannot drive it negative.
	result, err := h.DB.Exec(
		"UPDATE users SET points = points + ?, updated_at = ? WHERE id = ? AND points + ? >= 0",
		input.Delta, time.Now(), c.Param("id"), input.Delta)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust points"})
		return
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check affected rows"})
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "User not found or adjustment would make the balance negative"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Points adjusted"})
}
