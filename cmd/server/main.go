package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"mina/internal/config"
	"mina/internal/db"
	"mina/internal/handlers"
	"mina/internal/insights"
	"mina/internal/services"
	"mina/internal/store"
	"mina/internal/store/memory"
	"mina/internal/store/postgres"
)

func newLogger(env config.Environment) (*zap.Logger, error) {
	if env == config.EnvProduction {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not configured yet.
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Environment)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer closeStore()

	loc := cfg.Location()
	if cfg.SeedDemoData {
		if mem, ok := st.(*memory.Store); ok {
			if err := seedDemo(ctx, mem, cfg, loc, logger); err != nil {
				logger.Error("demo seed failed", zap.Error(err))
			}
		} else {
			logger.Warn("SEED_DEMO_DATA ignored; demo data is only loaded into the in-memory store")
		}
	}

	router := handlers.NewRouter(handlers.Deps{
		Store:     st,
		Insights:  services.NewInsightService(st, logger.Named("insights")),
		JWTSecret: []byte(cfg.JWTSecret),
		TokenTTL:  cfg.TokenTTL,
		Location:  loc,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("environment", string(cfg.Environment)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}

// openStore picks Postgres when DATABASE_URL is set, otherwise process memory.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set; entries are kept in memory and lost on restart")
		return memory.NewStore(), func() {}, nil
	}

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	encSvc, err := services.NewEncryptionService(cfg.EncryptionKey, cfg.BlindIndexKey)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	if !encSvc.Enabled() {
		logger.Warn("field encryption disabled; ENCRYPTION_KEY and BLIND_INDEX_KEY are not set")
	}
	return postgres.New(conn, encSvc), func() { _ = conn.Close() }, nil
}

// seedDemo creates the demo account with six months of generated entries.
func seedDemo(ctx context.Context, st *memory.Store, cfg *config.Config, loc *time.Location, logger *zap.Logger) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user, err := st.CreateUser(ctx, cfg.DemoEmail, string(hashed), loc.String())
	if err != nil {
		return err
	}
	n, err := st.Seed(ctx, user.ID, insights.DayOf(time.Now(), loc), loc)
	if err != nil {
		return err
	}
	logger.Info("demo data seeded", zap.String("email", cfg.DemoEmail), zap.Int("entries", n))
	return nil
}
