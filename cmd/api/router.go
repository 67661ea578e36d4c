package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kiosk-backend/internal/shared/middleware"
	res "kiosk-backend/internal/shared/response"
	"kiosk-backend/pkg/container"
)

func setupRouter(c *container.Container) *gin.Engine {
	if c.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	router.GET("/health", func(ctx *gin.Context) {
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			res.Error(ctx, http.StatusServiceUnavailable, "UNHEALTHY", "Database unreachable")
			return
		}
		res.Success(ctx, http.StatusOK, gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
		})
	})

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.GET("/verify", middleware.RequireAuth(c.JWTManager), c.UserHandler.Verify)
	}

	menu := v1.Group("/menu")
	{
		menu.GET("", c.MenuHandler.GetMenu)
		menu.GET("/products/:id", c.MenuHandler.GetProduct)

		staff := menu.Group("", middleware.RequireAuth(c.JWTManager), middleware.RequireStaff())
		{
			staff.POST("/products", c.MenuHandler.CreateProduct)
			staff.PATCH("/products/:id/availability", c.MenuHandler.SetAvailability)
		}
	}

	orders := v1.Group("/orders", middleware.OptionalAuth(c.JWTManager))
	{
		orders.POST("", c.OrderHandler.CreateOrder)
		orders.GET("", c.OrderHandler.ListOrders)
		orders.GET("/:id", c.OrderHandler.GetOrder)
	}

	promos := v1.Group("/promos")
	{
		promos.GET("/:code", c.PromoHandler.CheckPromo)
		promos.POST("", middleware.RequireAuth(c.JWTManager), middleware.RequireStaff(), c.PromoHandler.CreatePromo)
	}

	payments := v1.Group("/payments", middleware.OptionalAuth(c.JWTManager))
	{
		payments.POST("", c.PaymentHandler.Charge)
		payments.GET("/:orderID", c.PaymentHandler.GetByOrder)
	}

	loyalty := v1.Group("/loyalty", middleware.RequireAuth(c.JWTManager))
	{
		loyalty.GET("/balance", c.LoyaltyHandler.GetBalance)
		loyalty.GET("/history", c.LoyaltyHandler.GetHistory)
		loyalty.GET("/top-products", c.LoyaltyHandler.GetTopProducts)
	}

	return router
}
