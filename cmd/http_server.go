package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/fintrack/finance-tracker/internal"
	"github.com/fintrack/finance-tracker/internal/auth"
	authPostgres "github.com/fintrack/finance-tracker/internal/auth/postgres"
	"github.com/fintrack/finance-tracker/internal/budget"
	budgetPostgres "github.com/fintrack/finance-tracker/internal/budget/postgres"
	"github.com/fintrack/finance-tracker/internal/category"
	categoryPostgres "github.com/fintrack/finance-tracker/internal/category/postgres"
	"github.com/fintrack/finance-tracker/internal/transaction"
	transactionPostgres "github.com/fintrack/finance-tracker/internal/transaction/postgres"
	"github.com/fintrack/finance-tracker/internal/transport/rest"
	"github.com/fintrack/finance-tracker/internal/user"
	userPostgres "github.com/fintrack/finance-tracker/internal/user/postgres"
	"github.com/fintrack/finance-tracker/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

func startHTTPServer() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Format, cfg.Logging.Level)
	lg := logger.LoggerWrapper()

	sqlDB, gormDB, err := initDB(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}

	tokens := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.TokenDuration)

	authService := auth.NewService(authPostgres.NewRepository(gormDB), tokens, cfg.Security.BCryptCost, lg)
	userService := user.NewService(userPostgres.NewUserRepository(gormDB), lg)
	categoryService := category.NewService(categoryPostgres.NewCategoryRepository(gormDB), lg)
	transactionService := transaction.NewService(transactionPostgres.NewTransactionRepository(gormDB), categoryService, lg)
	budgetService := budget.NewService(budgetPostgres.NewBudgetRepository(gormDB), categoryService, lg)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.RouterDeps{
		DB:                 sqlDB.DB,
		AuthHandler:        auth.NewHandler(authService),
		UserHandler:        user.NewHandler(userService),
		CategoryHandler:    category.NewHandler(categoryService),
		TransactionHandler: transaction.NewHandler(transactionService),
		BudgetHandler:      budget.NewHandler(budgetService),
		AllowedOrigins:     cfg.Server.AllowedOrigins,
		Logger:             lg,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := sqlDB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

// initDB opens the connection pool through the pgx stdlib driver and wraps the
// same pool for gorm, so the health check and the repositories share it.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, *gorm.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: dbConn.DB}), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	return dbConn, gormDB, nil
}
