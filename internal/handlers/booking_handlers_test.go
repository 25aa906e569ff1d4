package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/voyageclub/voyageclub-golang/internal/handlers"
	"github.com/voyageclub/voyageclub-golang/internal/models"
	"github.com/voyageclub/voyageclub-golang/internal/routes"
)

// These tests drive CreateBooking up to its validation boundary.
// Validation failures must reject the request before any write is
// attempted, which is why a Handlers with no database at all works
// here: reaching the persistence layer would panic the test.

func bookingContext(t *testing.T, tier, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	routes.RegisterValidations()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/v1/bookings", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("userID", int64(1))
	c.Set("userTier", tier)
	return c, w
}

func futureDate() string {
	return time.Now().AddDate(0, 1, 0).Format(handlers.TravelDateLayout)
}

func bookingBody(kind string, guests int, travelDate string) string {
	return fmt.Sprintf(`{
		"bookingType": %q,
		"itemId": 3,
		"travelDate": %q,
		"guests": %d,
		"contactPhone": "+1 555 0100"
	}`, kind, travelDate, guests)
}

func TestCreateBookingRejectsNonPositiveGuests(t *testing.T) {
	h := &handlers.Handlers{}
	for _, guests := range []int{0, -2} {
		c, w := bookingContext(t, models.TierSilver, bookingBody("tour", guests, futureDate()))
		h.CreateBooking(c)
		if w.Code != http.StatusBadRequest {
			t.Errorf("guests=%d: status = %d, want %d", guests, w.Code, http.StatusBadRequest)
		}
	}
}

func TestCreateBookingRejectsPastTravelDate(t *testing.T) {
	h := &handlers.Handlers{}
	past := time.Now().AddDate(0, 0, -7).Format(handlers.TravelDateLayout)
	c, w := bookingContext(t, models.TierSilver, bookingBody("hotel", 2, past))
	h.CreateBooking(c)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCreateBookingRejectsUnparseableTravelDate(t *testing.T) {
	h := &handlers.Handlers{}
	c, w := bookingContext(t, models.TierSilver, bookingBody("hotel", 2, "next tuesday"))
	h.CreateBooking(c)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCreateBookingRejectsUnknownBookingType(t *testing.T) {
	h := &handlers.Handlers{}
	c, w := bookingContext(t, models.TierGold, bookingBody("cruise", 2, futureDate()))
	h.CreateBooking(c)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCreateBookingFailsLoudlyOnBrokenTier(t *testing.T) {
	// A missing or unknown tier is an error condition, never a silent
	// default to Silver pricing.
	h := &handlers.Handlers{}
	for _, tier := range []string{"", "VIP"} {
		c, w := bookingContext(t, tier, bookingBody("tour", 2, futureDate()))
		h.CreateBooking(c)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("tier %q: status = %d, want %d", tier, w.Code, http.StatusInternalServerError)
		}
		var resp map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("tier %q: bad response body: %v", tier, err)
		}
		if _, ok := resp["error"]; !ok {
			t.Errorf("tier %q: response carries no error message", tier)
		}
	}
}
