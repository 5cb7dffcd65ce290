package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/leaveflow/internal"
	"github.com/frahmantamala/leaveflow/internal/audit"
	auditPostgres "github.com/frahmantamala/leaveflow/internal/audit/postgres"
	"github.com/frahmantamala/leaveflow/internal/auth"
	authPostgres "github.com/frahmantamala/leaveflow/internal/auth/postgres"
	"github.com/frahmantamala/leaveflow/internal/core/events"
	"github.com/frahmantamala/leaveflow/internal/leave"
	leavePostgres "github.com/frahmantamala/leaveflow/internal/leave/postgres"
	"github.com/frahmantamala/leaveflow/internal/transport/rest"
	"github.com/frahmantamala/leaveflow/internal/transport/swagger"
	"github.com/frahmantamala/leaveflow/internal/user"
	userPostgres "github.com/frahmantamala/leaveflow/internal/user/postgres"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	GormDB   *gorm.DB
	DB       *sql.DB
	Router   *chi.Mux
	EventBus *events.EventBus
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
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
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	cfg := deps.Config

	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.JWTSecret,
		cfg.Security.JWTIssuer,
		cfg.Security.JWTAudience,
		cfg.Security.AccessTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewRepository(deps.GormDB), tokenGen, cfg.Security.BCryptCost, deps.Logger)
	userService := user.NewService(userPostgres.NewUserRepository(deps.GormDB), deps.Logger)
	leaveService := leave.NewService(leavePostgres.NewLeaveRepository(deps.GormDB), deps.EventBus, deps.Logger)
	auditService := audit.NewService(auditPostgres.NewAuditRepository(deps.GormDB), deps.Logger)

	rest.RegisterAllRoutes(deps.Router, rest.Dependencies{
		DB:             deps.DB,
		DBDriver:       cfg.Database.GetDriver(),
		AllowedOrigins: cfg.Server.Origins(),
		RequestTimeout: cfg.Server.RequestTimeout,
		AuthHandler:    auth.NewHandler(authService, deps.Logger),
		UserHandler:    user.NewHandler(userService, deps.Logger),
		LeaveHandler:   leave.NewHandler(leaveService, deps.Logger),
		AuditHandler:   audit.NewHandler(auditService, deps.Logger),
		Logger:         deps.Logger,
	})
}

func initializeDependencies() (*Dependencies, error) {
	config, log, err := setup()
	if err != nil {
		return nil, err
	}

	if _, err := swagger.Load(context.Background()); err != nil {
		return nil, err
	}

	gdb, sqlDB, err := initDB(config.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	bus := events.NewEventBus(log)
	bus.Subscribe(events.EventTypeLeaveSubmitted, events.LogHandler(log))
	bus.Subscribe(events.EventTypeLeaveReviewed, events.LogHandler(log))

	return &Dependencies{
		Config:   config,
		Logger:   log,
		GormDB:   gdb,
		DB:       sqlDB,
		Router:   chi.NewRouter(),
		EventBus: bus,
	}, nil
}
