package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voyageclub/voyageclub-golang/internal/models"
	"github.com/voyageclub/voyageclub-golang/internal/pricing"
)

//
// --- Public Catalog Handlers ---
//
// Anyone may browse the catalog; booking is what sits behind the auth
// gate. Prices are stored in the base currency. When the client asks
// for a display currency (?currency=EUR) we attach converted display
// prices next to the stored ones — the stored values are what pricing
// and orders run on.
//

// displayRate resolves the optional ?currency= query parameter to a
// fixed conversion rate. Unknown currencies fall back to no conversion.
func (h *Handlers) displayRate(c *gin.Context) (string, float64) {
	code := c.Query("currency")
	if code == "" {
		return "", 0
	}
	rate, ok := h.FXRates[code]
	if !ok {
		return "", 0
	}
	return code, rate
}

// catalogEntry wraps a catalog row with optional display-currency
// price fields.
type catalogEntry struct {
	Item            models.BookablePricingFields `json:"item"`
	DisplayCurrency string                       `json:"displayCurrency,omitempty"`
	DisplayRegular  float64                      `json:"displayRegularPrice,omitempty"`
	DisplayMember   float64                      `json:"displayMemberPrice,omitempty"`
}

func wrapEntry(item models.BookablePricingFields, code string, rate float64) catalogEntry {
	entry := catalogEntry{Item: item}
	if code != "" {
		entry.DisplayCurrency = code
		entry.DisplayRegular = pricing.Display(item.RegularPrice(), rate)
		entry.DisplayMember = pricing.Display(item.MemberPrice(), rate)
	}
	return entry
}

const hotelDealColumns = `id, name, slug, location, image_url, rating, deal_tag, regular_price, member_price, duration, description, created_at, updated_at`

func scanHotelDeal(row interface{ Scan(...interface{}) error }) (models.HotelDeal, error) {
	var d models.HotelDeal
	err := row.Scan(
		&d.ID, &d.Name, &d.Slug, &d.Location, &d.ImageURL, &d.Rating,
		&d.DealTag, &d.Regular, &d.Member, &d.Duration, &d.Description,
		&d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

const tourPackageColumns = hotelDealColumns // identical shape, independent table

func scanTourPackage(row interface{ Scan(...interface{}) error }) (models.TourPackage, error) {
	var p models.TourPackage
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Location, &p.ImageURL, &p.Rating,
		&p.DealTag, &p.Regular, &p.Member, &p.Duration, &p.Description,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// GetHotelDeals is the handler for GET /v1/hotel-deals
func (h *Handlers) GetHotelDeals(c *gin.Context) {
	// 1. --- Query Database ---
	rows, err := h.DB.Query(`SELECT ` + hotelDealColumns + ` FROM hotel_deals ORDER BY created_at DESC`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	// 2. --- Scan Rows ---
	code, rate := h.displayRate(c)
	var deals []catalogEntry
	for rows.Next() {
		d, err := scanHotelDeal(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan hotel deal row"})
			return
		}
		deals = append(deals, wrapEntry(d, code, rate))
	}
	if err = rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating hotel deal rows"})
		return
	}

	if deals == nil {
		deals = []catalogEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"hotelDeals": deals})
}

// GetHotelDeal is the handler for GET /v1/hotel-deals/:id
func (h *Handlers) GetHotelDeal(c *gin.Context) {
	row := h.DB.QueryRow(`SELECT `+hotelDealColumns+` FROM hotel_deals WHERE id = ?`, c.Param("id"))
	d, err := scanHotelDeal(row)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Hotel deal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch hotel deal"})
		return
	}

	code, rate := h.displayRate(c)
	c.JSON(http.StatusOK, gin.H{"hotelDeal": wrapEntry(d, code, rate)})
}

// GetTourPackages is the handler for GET /v1/tour-packages
func (h *Handlers) GetTourPackages(c *gin.Context) {
	rows, err := h.DB.Query(`SELECT ` + tourPackageColumns + ` FROM tour_packages ORDER BY created_at DESC`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	code, rate := h.displayRate(c)
	var packages []catalogEntry
	for rows.Next() {
		p, err := scanTourPackage(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan tour package row"})
			return
		}
		packages = append(packages, wrapEntry(p, code, rate))
	}
	if err = rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating tour package rows"})
		return
	}

	if packages == nil {
		packages = []catalogEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"tourPackages": packages})
}

// GetTourPackage is the handler for GET /v1/tour-packages/:id
func (h *Handlers) GetTourPackage(c *gin.Context) {
	row := h.DB.QueryRow(`SELECT `+tourPackageColumns+` FROM tour_packages WHERE id = ?`, c.Param("id"))
	p, err := scanTourPackage(row)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tour package not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tour package"})
		return
	}

	code, rate := h.displayRate(c)
	c.JSON(http.StatusOK, gin.H{"tourPackage": wrapEntry(p, code, rate)})
}
