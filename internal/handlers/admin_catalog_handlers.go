package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
)

//
// --- Admin: Catalog Management ---
//
// Hotel deals and tour packages share one shape but live in separate
// tables with independent id sequences, so the handlers delegate to
// shared helpers parameterized by table.
//

// CatalogItemInput is the JSON body for creating or updating either
// catalog variant.
type CatalogItemInput struct {
	Name        string  `json:"name" binding:"required"`
	Location    string  `json:"location" binding:"required"`
	ImageURL    string  `json:"imageUrl" binding:"required"`
	Rating      int     `json:"rating" binding:"required,min=1,max=5"`
	DealTag     string  `json:"dealTag"`
	Regular     float64 `json:"regularPrice" binding:"required,gt=0"`
	Member      float64 `json:"memberPrice" binding:"required,gt=0"`
	Duration    string  `json:"duration" binding:"required"`
	Description string  `json:"description"`
}

// checkPrices enforces the catalog invariant the pricing engine leans
// on: the member price never exceeds the regular price.
func (in *CatalogItemInput) checkPrices() bool {
	return in.Member <= in.Regular
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func (h *Handlers) createCatalogItem(c *gin.Context, table, label string) {
	// 1. --- Bind & Validate JSON ---
	var input CatalogItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !input.checkPrices() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Member price cannot exceed the regular price"})
		return
	}

	// 2. --- Insert ---
	now := time.Now()
	query := `
		INSERT INTO ` + table + `
		(name, slug, location, image_url, rating, deal_tag, regular_price, member_price, duration, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := h.DB.Exec(query,
		input.Name, slug.Make(input.Name), input.Location, input.ImageURL, input.Rating,
		nullable(input.DealTag), input.Regular, input.Member, input.Duration,
		nullable(input.Description), now, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create " + label})
		return
	}
	id, err := result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get new " + label + " ID"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": label + " created successfully",
		"id":      id,
	})
}

func (h *Handlers) updateCatalogItem(c *gin.Context, table, label string) {
	// 1. --- Bind & Validate JSON ---
	var input CatalogItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !input.checkPrices() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Member price cannot exceed the regular price"})
		return
	}

	// 2. --- Update (slug follows the name) ---
	query := `
		UPDATE ` + table + `
		SET name = ?, slug = ?, location = ?, image_url = ?, rating = ?, deal_tag = ?,
		    regular_price = ?, member_price = ?, duration = ?, description = ?, updated_at = ?
		WHERE id = ?`

	result, err := h.DB.Exec(query,
		input.Name, slug.Make(input.Name), input.Location, input.ImageURL, input.Rating,
		nullable(input.DealTag), input.Regular, input.Member, input.Duration,
		nullable(input.Description), time.Now(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update " + label})
		return
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check affected rows"})
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": label + " not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": label + " updated successfully"})
}

func (h *Handlers) deleteCatalogItem(c *gin.Context, table, label string) {
	// Orders survive catalog deletion: they carry their own snapshot of
	// the item name and price.
	result, err := h.DB.Exec(`DELETE FROM `+table+` WHERE id = ?`, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete " + label})
		return
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check affected rows"})
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": label + " not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": label + " deleted"})
}

// CreateHotelDeal is the handler for POST /v1/admin/hotel-deals
func (h *Handlers) CreateHotelDeal(c *gin.Context) {
	h.createCatalogItem(c, "hotel_deals", "Hotel deal")
}

// UpdateHotelDeal is the handler for PUT /v1/admin/hotel-deals/:id
func (h *Handlers) UpdateHotelDeal(c *gin.Context) {
	h.updateCatalogItem(c, "hotel_deals", "Hotel deal")
}

// DeleteHotelDeal is the handler for DELETE /v1/admin/hotel-deals/:id
func (h *Handlers) DeleteHotelDeal(c *gin.Context) {
	h.deleteCatalogItem(c, "hotel_deals", "Hotel deal")
}

// CreateTourPackage is the handler for POST /v1/admin/tour-packages
func (h *Handlers) CreateTourPackage(c *gin.Context) {
	h.createCatalogItem(c, "tour_packages", "Tour package")
}

// UpdateTourPackage is the handler for PUT /v1/admin/tour-packages/:id
func (h *Handlers) UpdateTourPackage(c *gin.Context) {
	h.updateCatalogItem(c, "tour_packages", "Tour package")
}

// DeleteTourPackage is the handler for DELETE /v1/admin/tour-packages/:id
func (h *Handlers) DeleteTourPackage(c *gin.Context) {
	h.deleteCatalogItem(c, "tour_packages", "Tour package")
}
