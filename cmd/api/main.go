package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Shiva143-debug/backend-exp/internal/agent"
	"github.com/Shiva143-debug/backend-exp/internal/config"
	"github.com/Shiva143-debug/backend-exp/internal/database"
	_ "github.com/Shiva143-debug/backend-exp/internal/docs" // Import swagger docs
	"github.com/Shiva143-debug/backend-exp/internal/handlers"
	"github.com/Shiva143-debug/backend-exp/internal/llm"
	"github.com/Shiva143-debug/backend-exp/internal/logger"
	"github.com/Shiva143-debug/backend-exp/internal/middleware"
	"github.com/Shiva143-debug/backend-exp/internal/services"
	"github.com/Shiva143-debug/backend-exp/internal/validator"
)

// @title           Expense Tracker API
// @version         1.0
// @description     Expense, income and savings ledgers with a natural-language agent.

// @host      localhost:3005
// @BasePath  /api/v1

func main() {
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Init(appConfig.Env, appConfig.LogLevel)
	log := logger.Get()

	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Create database manager
	dbManager, err := database.NewManager(ctx, database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	gen, err := llm.NewFromConfig(ctx, appConfig)
	if err != nil {
		return fmt.Errorf("failed to create language model client: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	auditService := services.NewAuditService(db)
	categoryService := services.NewCategoryService(db)
	productService := services.NewProductService(db)
	expenseService := services.NewExpenseService(db)
	incomeService := services.NewIncomeService(db)
	savingsService := services.NewSavingsService(db)

	interpreter := agent.NewInterpreter(dbManager.Gateway(), auditService, appConfig.CurrencySymbol)
	expenseAgent := agent.New(gen, interpreter, appConfig.LLMTimeout, nil)

	// Initialize handlers
	agentHandler := handlers.NewAgentHandler(expenseAgent)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	productHandler := handlers.NewProductHandler(productService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	incomeHandler := handlers.NewIncomeHandler(incomeService, auditService)
	savingsHandler := handlers.NewSavingsHandler(savingsService, auditService)

	validator.Register()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(appConfig.CORSAllowOrigin))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Agent routes answer with the reply envelope even on panics
	agentRoutes := v1.Group("/agent", middleware.ReplyRecovery("Something went wrong. Please try again."))
	agentRoutes.POST("", agentHandler.Handle)
	agentRoutes.GET("/health", agentHandler.Health)

	user := v1.Group("/users/:userId", middleware.UserScope("userId"))

	// Category routes
	categories := user.Group("/categories")
	categories.GET("", categoryHandler.GetUserCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.PUT("/:id", categoryHandler.RenameCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Subcategory routes
	products := user.Group("/products")
	products.GET("", productHandler.GetCategoryProducts)
	products.POST("", productHandler.CreateProduct)

	// Expense routes
	expenses := user.Group("/expenses")
	expenses.GET("", expenseHandler.GetUserExpenses)
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Income routes
	income := user.Group("/income")
	income.GET("", incomeHandler.GetUserIncome)
	income.POST("", incomeHandler.CreateIncome)
	income.PUT("/:id", incomeHandler.UpdateIncome)
	income.DELETE("/:id", incomeHandler.DeleteIncome)

	// Savings routes
	savings := user.Group("/savings")
	savings.GET("", savingsHandler.GetUserSavings)
	savings.POST("", savingsHandler.CreateSavings)
	savings.PUT("/:id", savingsHandler.UpdateSavings)
	savings.DELETE("/:id", savingsHandler.DeleteSavings)

	log.Infof("Starting expense tracker server on port %s (llm provider %s)", appConfig.Port, appConfig.LLMProvider)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
