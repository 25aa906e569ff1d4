package models

import (
	"database/sql"
	"time"
)

// Booking kinds. Hotel deals and tour packages live in separate tables
// with independent id sequences, so every order carries an explicit kind
// tag next to the item id. Dispatch is always by this tag, never by
// guessing from the shape of the data.
const (
	KindHotel = "hotel"
	KindTour  = "tour"
)

// ValidKind reports whether k is a known booking kind.
func ValidKind(k string) bool {
	return k == KindHotel || k == KindTour
}

// BookablePricingFields is the slice of catalog data the pricing engine
// needs. Both catalog variants satisfy it.
type BookablePricingFields interface {
	ItemName() string
	RegularPrice() float64
	MemberPrice() float64
}

// HotelDeal is the model for the 'hotel_deals' table.
type HotelDeal struct {
	ID          int64          `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Slug        string         `json:"slug" db:"slug"`
	Location    string         `json:"location" db:"location"`
	ImageURL    string         `json:"imageUrl" db:"image_url"`
	Rating      int            `json:"rating" db:"rating"` // 1..5 stars
	DealTag     sql.NullString `json:"dealTag,omitempty" db:"deal_tag"`
	Regular     float64        `json:"regularPrice" db:"regular_price"`
	Member      float64        `json:"memberPrice" db:"member_price"`
	Duration    string         `json:"duration" db:"duration"` // free text, e.g. "per night"
	Description sql.NullString `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}

func (d HotelDeal) ItemName() string      { return d.Name }
func (d HotelDeal) RegularPrice() float64 { return d.Regular }
func (d HotelDeal) MemberPrice() float64  { return d.Member }

// TourPackage is the model for the 'tour_packages' table.
type TourPackage struct {
	ID          int64          `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Slug        string         `json:"slug" db:"slug"`
	Location    string         `json:"location" db:"location"`
	ImageURL    string         `json:"imageUrl" db:"image_url"`
	Rating      int            `json:"rating" db:"rating"` // 1..5 stars
	DealTag     sql.NullString `json:"dealTag,omitempty" db:"deal_tag"`
	Regular     float64        `json:"regularPrice" db:"regular_price"`
	Member      float64        `json:"memberPrice" db:"member_price"`
	Duration    string         `json:"duration" db:"duration"` // free text, e.g. "7 days / 6 nights"
	Description sql.NullString `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}

func (p TourPackage) ItemName() string      { return p.Name }
func (p TourPackage) RegularPrice() float64 { return p.Regular }
func (p TourPackage) MemberPrice() float64  { return p.Member }
