// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/auth"
	"github.com/expense-tracker/backend/internal/application/usecase/budget"
	"github.com/expense-tracker/backend/internal/application/usecase/category"
	"github.com/expense-tracker/backend/internal/application/usecase/dashboard"
	"github.com/expense-tracker/backend/internal/application/usecase/report"
	"github.com/expense-tracker/backend/internal/application/usecase/transaction"
	"github.com/expense-tracker/backend/internal/infra/observability"
	"github.com/expense-tracker/backend/internal/infra/server/router"
	"github.com/expense-tracker/backend/internal/integration/adapters"
	"github.com/expense-tracker/backend/internal/integration/email"
	"github.com/expense-tracker/backend/internal/integration/email/templates"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/expense-tracker/backend/internal/integration/persistence"
)

// Infrastructure holds the external resources the application is built on.
// Only DB and Redis are required.
type Infrastructure struct {
	DB    *gorm.DB
	Redis *redis.Client

	// Clock defaults to adapter.SystemClock.
	Clock adapter.Clock
	// EmailSender defaults to a sender that only logs.
	EmailSender adapter.EmailSender
	// OAuthProvider is nil when Google sign-in is not configured.
	OAuthProvider adapter.OAuthProvider
	// Metrics is optional; without it /metrics is not served.
	Metrics *observability.Metrics
}

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	EmailWorker *email.Worker
	RateLimiter *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, infra Infrastructure) (*Injector, error) {
	clock := infra.Clock
	if clock == nil {
		clock = adapter.SystemClock{}
	}
	var sender adapter.EmailSender = email.NewLogSender()
	if infra.EmailSender != nil {
		sender = infra.EmailSender
	}

	var (
		httpRecorder   middleware.HTTPRecorder
		rejections     middleware.RejectionRecorder
		metricsHandler http.Handler
	)
	if infra.Metrics != nil {
		if err := infra.Metrics.InstrumentGorm(infra.DB); err != nil {
			return nil, fmt.Errorf("failed to instrument database: %w", err)
		}
		httpRecorder = infra.Metrics
		rejections = infra.Metrics
		metricsHandler = infra.Metrics.Handler()
	}

	// Create repositories
	store := persistence.NewStore(infra.DB, cfg.Database.QueryTimeout)
	userRepo := persistence.NewUserRepository(store)
	tokenRepo := persistence.NewTokenRepository(store)
	categoryRepo := persistence.NewCategoryRepository(store)
	transactionRepo := persistence.NewTransactionRepository(store)
	budgetRepo := persistence.NewBudgetRepository(store)
	reportRepo := persistence.NewReportRepository(store)
	emailQueueRepo := persistence.NewEmailQueueRepository(store)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo, adapters.NewRedisTokenDenylist(infra.Redis))
	resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo)
	oauthStateStore := adapters.NewRedisOAuthStateStore(infra.Redis)
	receiptStorage, err := adapters.NewLocalReceiptStorage(cfg.Storage.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare receipt storage: %w", err)
	}

	emailService := email.NewService(emailQueueRepo)
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	emailWorker := email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
		PollInterval:    cfg.Email.PollInterval,
		BatchSize:       cfg.Email.BatchSize,
		RetentionDays:   cfg.Email.RetentionDays,
		CleanupInterval: cfg.Email.CleanupInterval,
	})

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService, emailService, cfg.Email.AppBaseURL)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(userRepo, tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, cfg.Email.AppBaseURL)
	resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService, tokenService)
	getProfileUseCase := auth.NewGetProfileUseCase(userRepo)
	checkEmailUseCase := auth.NewCheckEmailUseCase(userRepo)
	googleAuthURLUseCase := auth.NewGoogleAuthURLUseCase(infra.OAuthProvider, oauthStateStore)
	googleCallbackUseCase := auth.NewGoogleCallbackUseCase(infra.OAuthProvider, oauthStateStore, userRepo, tokenService)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)
	initializeCategoriesUseCase := category.NewInitializeCategoriesUseCase(categoryRepo)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, receiptStorage)
	uploadReceiptUseCase := transaction.NewUploadReceiptUseCase(transactionRepo, receiptStorage, cfg.Storage.MaxReceiptBytes)
	getReceiptUseCase := transaction.NewGetReceiptUseCase(transactionRepo, receiptStorage)

	// Create budget use cases
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo, categoryRepo)
	getBudgetUseCase := budget.NewGetBudgetUseCase(budgetRepo, categoryRepo)
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, categoryRepo)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo, categoryRepo)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo)

	// Create report and dashboard use cases
	monthlyReportUseCase := report.NewGetMonthlyReportUseCase(reportRepo, clock)
	yearlyMonthlyReportUseCase := report.NewGetYearlyMonthlyReportUseCase(monthlyReportUseCase)
	yearlyReportUseCase := report.NewGetYearlyReportUseCase(reportRepo, clock)
	categoryReportUseCase := report.NewGetCategoryReportUseCase(reportRepo, clock)
	summaryUseCase := dashboard.NewGetSummaryUseCase(reportRepo, transactionRepo)
	monthlySummaryUseCase := dashboard.NewGetMonthlySummaryUseCase(reportRepo)

	// Create controllers
	healthController := controller.NewHealthController(
		func(ctx context.Context) bool {
			sqlDB, err := infra.DB.DB()
			if err != nil {
				return false
			}
			return sqlDB.PingContext(ctx) == nil
		},
		func(ctx context.Context) bool {
			return infra.Redis.Ping(ctx).Err() == nil
		},
	)

	controllers := router.Controllers{
		Health: healthController,
		Auth: controller.NewAuthController(
			registerUseCase,
			loginUseCase,
			refreshTokenUseCase,
			logoutUseCase,
			forgotPasswordUseCase,
			resetPasswordUseCase,
			getProfileUseCase,
			checkEmailUseCase,
			googleAuthURLUseCase,
			googleCallbackUseCase,
			cfg.Frontend.URL,
		),
		Category: controller.NewCategoryController(
			listCategoriesUseCase,
			createCategoryUseCase,
			updateCategoryUseCase,
			deleteCategoryUseCase,
			initializeCategoriesUseCase,
		),
		Transaction: controller.NewTransactionController(
			listTransactionsUseCase,
			getTransactionUseCase,
			createTransactionUseCase,
			updateTransactionUseCase,
			deleteTransactionUseCase,
			uploadReceiptUseCase,
			getReceiptUseCase,
			cfg.Storage.MaxReceiptBytes,
		),
		Budget: controller.NewBudgetController(
			listBudgetsUseCase,
			getBudgetUseCase,
			createBudgetUseCase,
			updateBudgetUseCase,
			deleteBudgetUseCase,
		),
		Report: controller.NewReportController(
			monthlyReportUseCase,
			yearlyMonthlyReportUseCase,
			yearlyReportUseCase,
			categoryReportUseCase,
		),
		Dashboard: controller.NewDashboardController(
			summaryUseCase,
			monthlySummaryUseCase,
		),
	}

	// Create middleware
	loginRateLimiter := middleware.NewRateLimiter(infra.Redis, middleware.RateLimiterConfig{
		Name:           "login",
		MaxAttempts:    cfg.RateLimit.LoginLimit,
		WindowDuration: cfg.RateLimit.LoginWindow,
		Enabled:        cfg.RateLimit.Enabled,
	}, rejections)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(controllers, loginRateLimiter, authMiddleware, httpRecorder, metricsHandler)

	return &Injector{
		Config:      cfg,
		DB:          infra.DB,
		Router:      r,
		EmailWorker: emailWorker,
		RateLimiter: loginRateLimiter,
	}, nil
}
