package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/weinhaus/storefront/docs"
	"github.com/weinhaus/storefront/internal/api/handler"
	"github.com/weinhaus/storefront/internal/api/middleware"
	"github.com/weinhaus/storefront/internal/core/domain"
	"github.com/weinhaus/storefront/internal/core/ports"
)

// Deps carries everything the HTTP layer needs.
type Deps struct {
	Auth      ports.AuthService
	Resolver  ports.IdentityResolver
	Gateway   ports.QueryGateway
	Lifecycle ports.OrderLifecycle
	Users     ports.UserService
	Sommelier ports.SommelierService
	Health    map[string]handler.HealthCheck
	Cookie    handler.CookieConfig
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddleware("storefront"))
	e.Use(middleware.Guard())
	e.Use(middleware.Session(d.Resolver, d.Log))

	authHandler := handler.NewAuthHandler(d.Auth, d.Cookie)
	pageHandler := handler.NewPageHandler(d.Gateway)
	orderHandler := handler.NewOrderHandler(d.Lifecycle)
	adminHandler := handler.NewAdminHandler(d.Users)
	sommelierHandler := handler.NewSommelierHandler(d.Sommelier)
	healthHandler := handler.NewHealthHandler(d.Health)

	// --- Auth ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	e.GET("/get-session", authHandler.Session)

	// --- Public pages ---
	e.GET("/login", pageHandler.Login)
	e.GET("/register", pageHandler.Register)

	// --- Customer area (any signed-in role) ---
	customer := e.Group("/dashboard", middleware.RBAC(domain.RoleCustomer, domain.RoleEmployee, domain.RoleAdmin))
	customer.GET("", pageHandler.CustomerDashboard)
	customer.POST("/orders", orderHandler.Place)
	customer.POST("/sommelier", sommelierHandler.Pair)

	// --- Staff area ---
	employee := e.Group("/employee", middleware.RBAC(domain.RoleEmployee, domain.RoleAdmin))
	employee.GET("/scanner", pageHandler.Scanner)
	employee.GET("/orders", pageHandler.StaffOrders)
	employee.POST("/orders/:id/picking", orderHandler.StartPicking)
	employee.POST("/orders/:id/picked", orderHandler.FinishPicking)
	employee.POST("/orders/:id/pay", orderHandler.MarkPaid)
	employee.POST("/orders/:id/cancel", orderHandler.Cancel)

	// --- Admin area ---
	admin := e.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	admin.GET("/dashboard", pageHandler.AdminDashboard)
	admin.PATCH("/users/:id/role", adminHandler.ChangeRole)

	// --- Ops (never classified by the guard) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
