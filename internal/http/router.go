package api

import (
	"database/sql"
	stdhttp "net/http"

	"gateway/internal/config"
	h "gateway/internal/http/handlers"
	"gateway/internal/http/middleware"
	"gateway/internal/listquery"
	"gateway/internal/metrics"
	"gateway/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// NewRouter wires every endpoint. limiter may be shared with a cleanup loop
// owned by the caller.
func NewRouter(cfg config.Config, db *sql.DB, limiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.Metrics(), middleware.CORS(cfg.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn().Err(err).Msg("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	hs := h.Handlers{
		DB:        db,
		Limits:    services.ListLimits{MaxPageSize: cfg.MaxPageSize},
		JWTSecret: []byte(cfg.JWTSecret),
		JWTTTL:    cfg.JWTTTL,
	}
	list := func(fn listquery.Handler) gin.HandlerFunc {
		return listquery.Handle(fn, h.ListQueryError)
	}
	write := middleware.RequireRoles("admin", "dispatcher")

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", hs.DBCheck)
		api.GET("/routes-table", h.Routes)

		auth := api.Group("/auth")
		auth.POST("/login", limiter.Middleware(), hs.Login)

		protected := api.Group("")
		protected.Use(middleware.Auth([]byte(cfg.JWTSecret)), limiter.Middleware())

		orders := protected.Group("/orders")
		orders.GET("", list(hs.ListOrders))
		orders.POST("/query", list(hs.QueryOrders))
		orders.GET("/:id", hs.GetOrder)
		orders.POST("", write, hs.CreateOrder)
		orders.PUT("/:id/status", write, hs.UpdateOrderStatus)
		orders.DELETE("/:id", write, hs.DeleteOrder)

		drivers := protected.Group("/drivers")
		drivers.GET("", list(hs.ListDrivers))
		drivers.GET("/:id", hs.GetDriver)
		drivers.POST("", write, hs.CreateDriver)
		drivers.PUT("/:id", write, hs.UpdateDriver)
		drivers.DELETE("/:id", write, hs.DeleteDriver)

		vehicles := protected.Group("/vehicles")
		vehicles.GET("", list(hs.ListVehicles))
		vehicles.GET("/:id", hs.GetVehicle)
		vehicles.POST("", write, hs.CreateVehicle)
		vehicles.PUT("/:id", write, hs.UpdateVehicle)
		vehicles.DELETE("/:id", write, hs.DeleteVehicle)

		routes := protected.Group("/routes")
		routes.GET("", list(hs.ListRoutes))
		routes.GET("/:id", hs.GetRoute)
		routes.POST("", write, hs.CreateRoute)
		routes.PUT("/:id", write, hs.UpdateRoute)
		routes.DELETE("/:id", write, hs.DeleteRoute)

		dispatch := protected.Group("/dispatch")
		dispatch.POST("", write, hs.Dispatch)
		dispatch.GET("/drivers/:id/manifest", hs.DriverManifest)

		protected.GET("/dashboard", hs.Dashboard)
	}

	h.SetRouter(r)
	return r
}
