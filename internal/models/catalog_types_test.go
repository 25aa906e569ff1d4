package models

import "testing"

func TestCatalogVariantsExposePricingFields(t *testing.T) {
	// Both variants must answer as BookablePricingFields; the booking
	// flow prices items through this interface, dispatching only on
	// the kind tag.
	var items = []struct {
		kind string
		item BookablePricingFields
	}{
		{KindHotel, HotelDeal{Name: "Riad Andalus", Regular: 1200, Member: 850}},
		{KindTour, TourPackage{Name: "Kyoto in Bloom", Regular: 4100, Member: 3200}},
	}

	for _, tc := range items {
		if !ValidKind(tc.kind) {
			t.Errorf("ValidKind(%q) = false, want true", tc.kind)
		}
		if tc.item.ItemName() == "" {
			t.Errorf("%s: ItemName() is empty", tc.kind)
		}
		if tc.item.MemberPrice() > tc.item.RegularPrice() {
			t.Errorf("%s: member price %v exceeds regular price %v",
				tc.kind, tc.item.MemberPrice(), tc.item.RegularPrice())
		}
	}
}

func TestValidKindRejectsUnknownKinds(t *testing.T) {
	for _, kind := range []string{"", "cruise", "Hotel"} {
		if ValidKind(kind) {
			t.Errorf("ValidKind(%q) = true, want false", kind)
		}
	}
}
