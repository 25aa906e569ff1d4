// Package pricing derives the price a member actually pays for a
// bookable item. It is pure computation: no I/O, no database access,
// total over its documented domain.
package pricing

import (
	"errors"
	"fmt"

	"github.com/voyageclub/voyageclub-golang/internal/models"
)

// SilverDiscountRate is the extra reduction Silver members get on top
// of the member price. Gold and Platinum benefits are service-level
// perks, not a programmatic discount.
const SilverDiscountRate = 0.10

// ErrInvalidGuestCount is returned for a traveler/guest count below 1.
// Counts are rejected, never clamped.
var ErrInvalidGuestCount = errors.New("guest count must be at least 1")

// ErrUnknownTier is returned when the caller's membership tier is
// missing or not one of Silver/Gold/Platinum. We refuse to guess a
// default tier for pricing.
var ErrUnknownTier = errors.New("unknown membership tier")

// UnitPrice returns the per-unit price a member on the given tier pays
// for an item. The member price already carries the generic member
// discount from the catalog; Silver gets an additional 10% off it.
func UnitPrice(memberPrice float64, tier string) (float64, error) {
	if !models.ValidTier(tier) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
	if tier == models.TierSilver {
		return memberPrice * (1 - SilverDiscountRate), nil
	}
	return memberPrice, nil
}

// TotalPrice computes the amount persisted on an order, in the base
// currency.
//
// Tour bookings scale by traveler count. Hotel bookings persist the
// single per-night rate: the number of nights is captured on the order
// as free context but deliberately not multiplied in (billing per stay
// length is an unresolved product decision, see DESIGN.md).
func TotalPrice(kind string, memberPrice float64, tier string, guests int) (float64, error) {
	if guests < 1 {
		return 0, ErrInvalidGuestCount
	}
	if !models.ValidKind(kind) {
		return 0, fmt.Errorf("unknown booking kind: %q", kind)
	}
	unit, err := UnitPrice(memberPrice, tier)
	if err != nil {
		return 0, err
	}
	if kind == models.KindTour {
		return unit * float64(guests), nil
	}
	return unit, nil
}

// Display converts a base-currency amount into a display currency with
// a fixed multiplicative rate. Presentation only: the result must never
// be persisted as an order total.
func Display(amount, rate float64) float64 {
	if rate <= 0 {
		return amount
	}
	return amount * rate
}
