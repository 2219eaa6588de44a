// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"currypoint/internal/delivery/api/middleware"
	"currypoint/internal/delivery/api/router/handler"
	"currypoint/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	MeHandler       *handler.MeHandler
	PaymentHandler  *handler.PaymentHandler
	EventsHandler   *handler.EventsHandler
	CustomerHandler *handler.CustomerHandler
	CouponHandler   *handler.CouponHandler
	AdminHandler    *handler.AdminHandler
	SyncHandler     *handler.SyncHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	meHandler       *handler.MeHandler
	paymentHandler  *handler.PaymentHandler
	eventsHandler   *handler.EventsHandler
	customerHandler *handler.CustomerHandler
	couponHandler   *handler.CouponHandler
	adminHandler    *handler.AdminHandler
	syncHandler     *handler.SyncHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		meHandler:       params.MeHandler,
		paymentHandler:  params.PaymentHandler,
		eventsHandler:   params.EventsHandler,
		customerHandler: params.CustomerHandler,
		couponHandler:   params.CouponHandler,
		adminHandler:    params.AdminHandler,
		syncHandler:     params.SyncHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
	}

	// API v1 routes
	apiV1 := e.Group("/api/v1")
	apiV1.Use(r.authMiddleware.Authenticate) // All API v1 routes require authentication

	meGroup := apiV1.Group("/me")
	{
		meGroup.GET("", r.meHandler.GetProfile)
		meGroup.GET("/dashboard", r.meHandler.GetDashboard)
		meGroup.GET("/coupons", r.meHandler.GetCoupons)
	}

	paymentsGroup := apiV1.Group("/payments")
	{
		paymentsGroup.POST("", r.paymentHandler.RecordPayment)
		paymentsGroup.POST("/quote", r.paymentHandler.Quote)
		paymentsGroup.GET("/qr", r.paymentHandler.PaymentQR)
	}

	apiV1.POST("/redemptions", r.paymentHandler.RedeemPoints)
	apiV1.GET("/events", r.eventsHandler.Stream)

	// Admin routes (require admin role)
	adminGroup := apiV1.Group("/admin")
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/dashboard", r.adminHandler.GetDashboard)
		adminGroup.GET("/transactions", r.adminHandler.ListTransactions)
		adminGroup.GET("/settings", r.adminHandler.GetSettings)
		adminGroup.PUT("/settings", r.adminHandler.UpdateSettings)
		adminGroup.GET("/slabs", r.adminHandler.ListSlabs)
		adminGroup.PUT("/slabs", r.adminHandler.ReplaceSlabs)
	}

	customersGroup := adminGroup.Group("/customers")
	{
		customersGroup.GET("", r.customerHandler.ListCustomers)
		customersGroup.POST("", r.customerHandler.CreateCustomer)
		customersGroup.PUT("/:id", r.customerHandler.UpdateCustomer)
		customersGroup.DELETE("/:id", r.customerHandler.DeleteCustomer)
		customersGroup.POST("/:id/toggle", r.customerHandler.ToggleCustomerActive)
	}

	couponsGroup := adminGroup.Group("/coupons")
	{
		couponsGroup.GET("", r.couponHandler.ListCoupons)
		couponsGroup.POST("", r.couponHandler.CreateCoupon)
		couponsGroup.PUT("/:id", r.couponHandler.UpdateCoupon)
		couponsGroup.DELETE("/:id", r.couponHandler.DeleteCoupon)
		couponsGroup.POST("/:id/toggle", r.couponHandler.ToggleCouponActive)
	}

	syncGroup := adminGroup.Group("/sync")
	{
		syncGroup.GET("/status", r.syncHandler.Status)
		syncGroup.POST("/mode", r.syncHandler.ToggleMode)
		syncGroup.POST("/push", r.syncHandler.Push)
		syncGroup.POST("/pull", r.syncHandler.Pull)
	}

	dataGroup := adminGroup.Group("/data")
	{
		dataGroup.GET("/export", r.syncHandler.Export)
		dataGroup.POST("/import", r.syncHandler.Import)
		dataGroup.POST("/reset", r.syncHandler.Reset)
	}
}
