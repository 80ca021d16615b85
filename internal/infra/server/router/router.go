// Package router sets up the HTTP routing for the application.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	budgetController      *controller.BudgetController
	reportController      *controller.ReportController
	dashboardController   *controller.DashboardController
	loginRateLimiter      *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
	httpRecorder          middleware.HTTPRecorder
	metricsHandler        http.Handler
}

// Controllers groups the HTTP handlers mounted by the router.
type Controllers struct {
	Health      *controller.HealthController
	Auth        *controller.AuthController
	Category    *controller.CategoryController
	Transaction *controller.TransactionController
	Budget      *controller.BudgetController
	Report      *controller.ReportController
	Dashboard   *controller.DashboardController
}

// NewRouter creates a new router instance with all dependencies.
// httpRecorder and metricsHandler may be nil, in which case /metrics is not mounted.
func NewRouter(
	controllers Controllers,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	httpRecorder middleware.HTTPRecorder,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		healthController:      controllers.Health,
		authController:        controllers.Auth,
		categoryController:    controllers.Category,
		transactionController: controllers.Transaction,
		budgetController:      controllers.Budget,
		reportController:      controllers.Report,
		dashboardController:   controllers.Dashboard,
		loginRateLimiter:      loginRateLimiter,
		authMiddleware:        authMiddleware,
		httpRecorder:          httpRecorder,
		metricsHandler:        metricsHandler,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery(), middleware.RequestLogger())
	if r.httpRecorder != nil {
		r.engine.Use(middleware.Metrics(r.httpRecorder))
	}

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check and metrics endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
	if r.metricsHandler != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metricsHandler))
	}
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	authenticated := r.authMiddleware.Authenticate()

	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.authController.Register)
		auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
		auth.POST("/refresh", r.authController.RefreshToken)
		auth.POST("/logout", r.authMiddleware.OptionalAuthenticate(), r.authController.Logout)
		auth.GET("/profile", authenticated, r.authController.Profile)
		auth.GET("/check-email", r.authController.CheckEmail)
		auth.GET("/google", r.authController.GoogleLogin)
		auth.GET("/google/callback", r.authController.GoogleCallback)
		auth.POST("/forgot-password", r.authController.ForgotPassword)
		auth.POST("/reset-password", r.authController.ResetPassword)
	}

	categories := v1.Group("/categories")
	categories.Use(authenticated)
	{
		categories.GET("", r.categoryController.List)
		categories.POST("", r.categoryController.Create)
		categories.POST("/initialize", r.categoryController.Initialize)
		categories.PUT("/:id", r.categoryController.Update)
		categories.DELETE("/:id", r.categoryController.Delete)
	}

	transactions := v1.Group("/transactions")
	transactions.Use(authenticated)
	{
		transactions.GET("", r.transactionController.List)
		transactions.POST("", r.transactionController.Create)
		transactions.GET("/:id", r.transactionController.Get)
		transactions.PUT("/:id", r.transactionController.Update)
		transactions.DELETE("/:id", r.transactionController.Delete)
		transactions.POST("/:id/receipt", r.transactionController.UploadReceipt)
		transactions.GET("/:id/receipt", r.transactionController.GetReceipt)
	}

	budgets := v1.Group("/budgets")
	budgets.Use(authenticated)
	{
		budgets.GET("", r.budgetController.List)
		budgets.POST("", r.budgetController.Create)
		budgets.GET("/:id", r.budgetController.Get)
		budgets.PUT("/:id", r.budgetController.Update)
		budgets.DELETE("/:id", r.budgetController.Delete)
	}

	reports := v1.Group("/reports")
	reports.Use(authenticated)
	{
		reports.GET("/monthly", r.reportController.GetMonthly)
		reports.GET("/yearly", r.reportController.GetYearly)
		reports.GET("/category", r.reportController.GetCategory)
	}

	dashboard := v1.Group("/dashboard")
	dashboard.Use(authenticated)
	{
		dashboard.GET("", r.dashboardController.GetSummary)
		dashboard.GET("/monthly", r.dashboardController.GetMonthlySummary)
	}
}

// Engine returns the configured Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
