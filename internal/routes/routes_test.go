package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/voyageclub/voyageclub-golang/internal/handlers"
)

func TestPingRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := SetupRouter(&handlers.Handlers{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/v1/ping", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestPreflightRequestIsAnswered(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := SetupRouter(&handlers.Handlers{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/v1/bookings", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Error("preflight response is missing Access-Control-Allow-Origin")
	}
}

func TestFutureDateValidation(t *testing.T) {
	RegisterValidations()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		t.Fatal("binding engine is not validator.Validate")
	}

	// Today must be bookable regardless of the server's timezone.
	today := time.Now().Format(handlers.TravelDateLayout)
	if err := v.Var(today, "futuredate"); err != nil {
		t.Errorf("today (%s) rejected: %v", today, err)
	}

	tomorrow := time.Now().AddDate(0, 0, 1).Format(handlers.TravelDateLayout)
	if err := v.Var(tomorrow, "futuredate"); err != nil {
		t.Errorf("tomorrow (%s) rejected: %v", tomorrow, err)
	}

	yesterday := time.Now().AddDate(0, 0, -1).Format(handlers.TravelDateLayout)
	if err := v.Var(yesterday, "futuredate"); err == nil {
		t.Errorf("yesterday (%s) accepted, want rejection", yesterday)
	}

	if err := v.Var("next tuesday", "futuredate"); err == nil {
		t.Error("unparseable date accepted, want rejection")
	}
}

func TestBookingRouteRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := SetupRouter(&handlers.Handlers{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/v1/bookings", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := SetupRouter(&handlers.Handlers{})

	for _, route := range []struct{ method, path string }{
		{"GET", "/v1/admin/orders"},
		{"PATCH", "/v1/admin/orders/1/status"},
		{"POST", "/v1/admin/hotel-deals"},
		{"GET", "/v1/admin/users"},
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(route.method, route.path, nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want %d", route.method, route.path, w.Code, http.StatusUnauthorized)
		}
	}
}
