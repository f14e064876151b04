package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	mw "mina/internal/middleware"
	"mina/internal/services"
	"mina/internal/store"
)

// Deps is what the router wires into handlers.
type Deps struct {
	Store     store.Store
	Insights  *services.InsightService
	JWTSecret []byte
	TokenTTL  time.Duration
	Location  *time.Location
	Logger    *zap.Logger
}

func NewRouter(d Deps) http.Handler {
	logger := orNop(d.Logger)
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}

	authHandler := NewAuthHandler(d.Store, d.JWTSecret, d.TokenTTL, loc.String(), logger)
	userHandler := NewUserHandler(d.Store, logger)
	journalHandler := NewJournalHandler(d.Store, d.Store, d.Insights, loc, logger)
	importHandler := NewImportHandler(d.Store, d.Store, loc, logger)
	insightHandler := NewInsightHandler(d.Insights, d.Store, loc, logger)
	authMW := mw.NewAuthMiddleware(d.JWTSecret)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(mw.ZapRequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", healthz(d.Store))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/signup", authHandler.Signup)
		api.Post("/auth/login", authHandler.Login)
		api.Group(func(pr chi.Router) {
			pr.Use(authMW.RequireAuth)
			pr.Get("/me", userHandler.GetMe)

			pr.Post("/journal", journalHandler.CreateEntry)
			pr.Get("/journal", journalHandler.ListEntries)
			pr.Post("/journal/import", importHandler.ImportEntries)
			pr.Get("/journal/streak", journalHandler.Streak)
			pr.Delete("/journal/{id}", journalHandler.DeleteEntry)

			pr.Get("/insights", insightHandler.GetInsights)
			pr.Post("/insights/analysis", insightHandler.Analysis)
		})
	})
	return r
}

func healthz(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
