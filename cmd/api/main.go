package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Chanakan5591/FlavorFind/internal/canteen"
	"github.com/Chanakan5591/FlavorFind/internal/db"
	"github.com/Chanakan5591/FlavorFind/internal/fingerprint"
	"github.com/Chanakan5591/FlavorFind/internal/plan"
	"github.com/Chanakan5591/FlavorFind/internal/ratelimit"
	"github.com/Chanakan5591/FlavorFind/internal/rating"
	"github.com/Chanakan5591/FlavorFind/internal/router"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"DATABASE_URL",
		"REDIS_ADDR",
		"HMAC_SECRET_KEY",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── REDIS ─────────────────────────
	rdb := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
	})

	// ───────────────────────── CORE REPOS ─────────────────────────
	canteenRepo := canteen.NewPostgresRepository(pgDB)
	planRepo := plan.NewPostgresRepository(pgDB)
	ratingRepo := rating.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES ─────────────────────────
	canteenService := canteen.NewService(canteenRepo)
	planService := plan.NewService(planRepo)
	ratingService := rating.NewService(ratingRepo)

	signer := fingerprint.NewSigner(os.Getenv("HMAC_SECRET_KEY"))
	limiter := ratelimit.NewLimiter(rdb)

	// ───────────────────────── HANDLERS ─────────────────────────
	canteenHandler := canteen.NewHandler(canteenService)
	planHandler := plan.NewHandler(planService)
	ratingHandler := rating.NewHandler(ratingService, limiter, signer)
	fingerprintHandler := fingerprint.NewHandler(signer)

	// ───────────────────────── START ─────────────────────────
	r := router.NewRouter(canteenHandler, planHandler, ratingHandler, fingerprintHandler)

	addr := ":8000"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	log.Printf("API running at http://localhost%s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
