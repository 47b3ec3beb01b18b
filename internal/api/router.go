package api

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/mileage-cart/config"
	_ "github.com/d60-Lab/mileage-cart/docs"
	"github.com/d60-Lab/mileage-cart/internal/api/handler"
	"github.com/d60-Lab/mileage-cart/internal/api/middleware"
)

// NewRouter 组装中间件与路由
func NewRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/health", h.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	if cfg.RateLimit.RPS > 0 {
		v1.Use(middleware.RateLimit(middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)))
	}

	carts := v1.Group("/carts")
	{
		carts.GET("", h.GetCartItems)
		carts.POST("", h.AddCartItem)
		carts.DELETE("", h.ClearCart)
		carts.DELETE("/active", h.DeleteActiveItems)
		carts.GET("/total", h.GetTotalMileage)
		carts.PATCH("/items/active", h.ToggleActive)
		carts.PATCH("/items/:itemId/active", h.ToggleActive)
	}

	return r
}
