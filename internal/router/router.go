package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Chanakan5591/FlavorFind/internal/canteen"
	"github.com/Chanakan5591/FlavorFind/internal/fingerprint"
	"github.com/Chanakan5591/FlavorFind/internal/plan"
	"github.com/Chanakan5591/FlavorFind/internal/rating"
)

func NewRouter(
	canteenHandler *canteen.Handler,
	planHandler *plan.Handler,
	ratingHandler *rating.Handler,
	fingerprintHandler *fingerprint.Handler,
) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── BROWSE ─────────────────────────
	r.GET("/canteens", canteenHandler.ListCanteens)

	// ───────────────────────── PLANNING ─────────────────────────
	r.POST("/plans", planHandler.CreatePlan)
	r.GET("/plan/:encodedParams/:planId", planHandler.GetPlan)

	// ───────────────────────── RATINGS & IDENTITY ─────────────────────────
	r.POST("/ratings", ratingHandler.SubmitRating)
	r.POST("/api/science/new_experiment", fingerprintHandler.NewExperiment)

	return r
}
