package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
)

//
// --- Admin Dashboard Stats ---
//

type AdminStats struct {
	PendingOrders    int     `json:"pendingOrders"`
	ConfirmedOrders  int     `json:"confirmedOrders"`
	ActiveMembers    int     `json:"activeMembers"`
	HotelDeals       int     `json:"hotelDeals"`
	TourPackages     int     `json:"tourPackages"`
	ConfirmedRevenue float64 `json:"confirmedRevenue"` // base currency
}

// GetAdminStats returns KPI data for the back-office dashboard.
// GET /v1/admin/dashboard-stats
func (h *Handlers) GetAdminStats(c *gin.Context) {
	stats := AdminStats{}

	// 1. Order counts by status
	err := h.DB.QueryRow("SELECT COUNT(*) FROM orders WHERE status = 'pending'").Scan(&stats.PendingOrders)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count pending orders"})
		return
	}
	err = h.DB.QueryRow("SELECT COUNT(*) FROM orders WHERE status = 'confirmed'").Scan(&stats.ConfirmedOrders)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count confirmed orders"})
		return
	}

	// 2. Membership and catalog sizes
	err = h.DB.QueryRow("SELECT COUNT(*) FROM users WHERE status = 'active' AND role = 'member'").Scan(&stats.ActiveMembers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count active members"})
		return
	}
	err = h.DB.QueryRow("SELECT COUNT(*) FROM hotel_deals").Scan(&stats.HotelDeals)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count hotel deals"})
		return
	}
	err = h.DB.QueryRow("SELECT COUNT(*) FROM tour_packages").Scan(&stats.TourPackages)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count tour packages"})
		return
	}

	// 3. Confirmed revenue (SUM is NULL when there are no rows)
	var revenue sql.NullFloat64
	err = h.DB.QueryRow("SELECT SUM(total_price) FROM orders WHERE status = 'confirmed'").Scan(&revenue)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sum confirmed revenue"})
		return
	}
	stats.ConfirmedRevenue = revenue.Float64

	c.JSON(http.StatusOK, stats)
}
