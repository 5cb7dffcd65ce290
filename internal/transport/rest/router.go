package rest

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/frahmantamala/leaveflow/internal/audit"
	"github.com/frahmantamala/leaveflow/internal/auth"
	"github.com/frahmantamala/leaveflow/internal/leave"
	"github.com/frahmantamala/leaveflow/internal/transport/middleware"
	"github.com/frahmantamala/leaveflow/internal/transport/swagger"
	"github.com/frahmantamala/leaveflow/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Dependencies carries the handlers and infrastructure the router mounts.
type Dependencies struct {
	DB             *sql.DB
	DBDriver       string
	AllowedOrigins []string
	RequestTimeout time.Duration
	AuthHandler    *auth.Handler
	UserHandler    *user.Handler
	LeaveHandler   *leave.Handler
	AuditHandler   *audit.Handler
	Logger         *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, deps Dependencies) {
	healthHandler := NewHealthHandler(deps.DB, deps.DBDriver)
	rbac := auth.NewRBACAuthorization(deps.Logger)

	// Apply global middleware
	router.Use(middleware.CORS(deps.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID(deps.Logger))
	router.Use(middleware.RecoveryMiddleware(deps.Logger))
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	router.Use(middleware.Timeout(deps.RequestTimeout))

	router.Get(swagger.SpecPath, swagger.SpecHandler())
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match the OpenAPI server url
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if deps.AuthHandler == nil {
			return
		}

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", deps.AuthHandler.Register)
			sr.Post("/login", deps.AuthHandler.Login)
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(deps.AuthHandler.AuthMiddleware)

			if deps.UserHandler != nil {
				pr.Get("/users/me", deps.UserHandler.GetCurrentUser)
			}

			pr.Route("/leaves", func(lr chi.Router) {
				if deps.LeaveHandler != nil {
					lr.Post("/", deps.LeaveHandler.CreateLeave)
					lr.Get("/my", deps.LeaveHandler.GetMyLeaves)
				}

				// Manager routes
				lr.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireManager())
					if deps.LeaveHandler != nil {
						mr.Get("/", deps.LeaveHandler.GetAllLeaves)
						mr.Patch("/{id}/review", deps.LeaveHandler.ReviewLeave)
					}
					if deps.AuditHandler != nil {
						mr.Get("/audit", deps.AuditHandler.GetAuditLogs)
					}
				})
			})
		})
	})
}
