package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"smart-parkir-backend/internal/engine"
	"smart-parkir-backend/internal/mw"
	"smart-parkir-backend/internal/store"
)

// RouterConfig carries the tunables for the HTTP layer.
type RouterConfig struct {
	RateLimitPerSec float64
	RateLimitBurst  int
	CacheTTL        time.Duration
	Timezone        *time.Location
}

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, eng *engine.Engine, webpushOptions *webpush.Options, cfg RouterConfig) *gin.Engine {
	r := gin.Default()

	if cfg.RateLimitPerSec <= 0 {
		cfg.RateLimitPerSec = 10
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = 5
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheStore := cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	caching := mw.Cache(cacheStore, cfg.CacheTTL)

	handler := NewHandler(s, eng, cacheStore, webpushOptions, cfg.Timezone)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Spot registry
		api.GET("/spots", caching, handler.GetSpots)
		api.GET("/spots/:spot_id", handler.GetSpot)
		api.PATCH("/spots/:spot_id", handler.PatchSpot)

		// Occupancy engine
		api.POST("/spots/:spot_id/vehicle", handler.RegisterVehicle)
		api.DELETE("/spots/:spot_id/vehicle", handler.ReleaseVehicle)
		api.GET("/tokens/:token", handler.ValidateToken)
		api.POST("/exits", handler.ConfirmExit)
		api.GET("/vehicles", handler.GetActiveVehicles)

		// History ledger and reporting
		api.GET("/history", handler.GetHistory)
		api.GET("/reports/daily", caching, handler.GetDailyReport)

		// Directories
		api.GET("/customers", handler.GetCustomers)
		api.GET("/customers/:customer_id", handler.GetCustomer)
		api.GET("/guards", handler.GetGuards)
		api.GET("/guards/:guard_id", handler.GetGuard)

		// Push subscriptions
		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
