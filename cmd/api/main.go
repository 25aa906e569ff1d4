package main

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/voyageclub/voyageclub-golang/internal/database"
	"github.com/voyageclub/voyageclub-golang/internal/handlers"
	"github.com/voyageclub/voyageclub-golang/internal/notify"
	"github.com/voyageclub/voyageclub-golang/internal/routes"
)

// loadFXRates parses DISPLAY_FX_RATES ("EUR=0.92,GBP=0.79") into the
// fixed display-conversion table. Catalog prices stay in the base
// currency; these rates only dress them up for presentation.
func loadFXRates() map[string]float64 {
	rates := make(map[string]float64)
	raw := os.Getenv("DISPLAY_FX_RATES")
	if raw == "" {
		return rates
	}
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 {
			continue
		}
		rate, err := strconv.ParseFloat(parts[1], 64)
		if err != nil || rate <= 0 {
			log.Printf("WARNING: Ignoring invalid display FX rate %q", pair)
			continue
		}
		rates[parts[0]] = rate
	}
	return rates
}

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	// 1. --- Database Connection ---
	db, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// 2. --- Booking Notifier ---
	// One background worker delivers admin notifications so bookings
	// never wait on them.
	notifier := notify.New(&notify.DBSink{DB: db})
	defer notifier.Close()

	// --- Application Setup ---
	// Inject all dependencies into the Handlers struct.
	app := &handlers.Handlers{
		DB:       db,
		Notifier: notifier,
		FXRates:  loadFXRates(),
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app)

	// --- Start Server ---
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting VoyageClub API server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
