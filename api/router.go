// Package api wires the HTTP surface: middleware chain, route groups,
// controllers.
package api

import (
	"github.com/gin-gonic/gin"

	"huerto/api/health"
	"huerto/api/middleware"
	"huerto/api/order"
	"huerto/api/product"
	"huerto/api/sale"
	"huerto/config"
)

type Router struct {
	engine            *gin.Engine
	config            *config.Config
	healthController  *health.Controller
	orderController   *order.Controller
	saleController    *sale.Controller
	productController *product.Controller
}

func NewRouter(
	cfg *config.Config,
	healthController *health.Controller,
	orderController *order.Controller,
	saleController *sale.Controller,
	productController *product.Controller,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Ordering matters: the request id must exist before anything logs,
	// and recovery must wrap everything that can panic.
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logging())
	engine.Use(middleware.CORS(&cfg.CORS))
	engine.Use(middleware.RateLimit(&cfg.Server.RateLimit))
	engine.Use(middleware.Principal())

	return &Router{
		engine:            engine,
		config:            cfg,
		healthController:  healthController,
		orderController:   orderController,
		saleController:    saleController,
		productController: productController,
	}
}

// SetupRoutes registers every route group under /api/v1.
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		r.healthController.RegisterRoutes(apiGroup)
		r.orderController.RegisterRoutes(apiGroup)
		r.saleController.RegisterRoutes(apiGroup)
		r.productController.RegisterRoutes(apiGroup)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine returns the configured gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
