package handlers

import (
	"database/sql"

	"github.com/voyageclub/voyageclub-golang/internal/notify"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	DB       *sql.DB          // Read/Write connection pool
	Notifier *notify.Notifier // Fire-and-forget admin notifications

	// FXRates maps a display currency code to its fixed conversion
	// rate from the base currency. Presentation only; orders are
	// always persisted in the base currency.
	FXRates map[string]float64
}
