package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"neurowatch/internal/accounts"
	"neurowatch/internal/analysis"
	"neurowatch/internal/appointments"
	"neurowatch/internal/config"
	"neurowatch/internal/db"
	"neurowatch/internal/handlers"
	"neurowatch/internal/history"
	"neurowatch/internal/lifestyle"
	mw "neurowatch/internal/middleware"
	"neurowatch/internal/store"
	"neurowatch/internal/vitals"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is required")
	}

	recordStore, cleanup, err := buildStore(cfg, logger)
	if err != nil {
		logger.Fatal("failed to set up record store", zap.Error(err))
	}
	defer cleanup()

	directory := accounts.NewDirectory(recordStore)
	lifestyleLog := lifestyle.NewLog(recordStore)
	monitor := vitals.NewMonitor(recordStore, logger)
	reporter := history.NewReporter(monitor, lifestyleLog)
	analyzer := analysis.NewAnalyzer(recordStore)
	book := appointments.NewBook(recordStore)

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	go monitor.Run(monitorCtx)

	authHandler := handlers.NewAuthHandler(directory, []byte(cfg.JWTSecret))
	profileHandler := handlers.NewProfileHandler(directory)
	vitalsHandler := handlers.NewVitalsHandler(monitor)
	analysisHandler := handlers.NewAnalysisHandler(analyzer)
	lifestyleHandler := handlers.NewLifestyleHandler(lifestyleLog)
	historyHandler := handlers.NewHistoryHandler(reporter)
	apptsHandler := handlers.NewAppointmentsHandler(book)
	authMW := mw.NewAuthMiddleware([]byte(cfg.JWTSecret))

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/signup", authHandler.Signup)
		api.Post("/auth/login", authHandler.Login)
		api.Post("/auth/forgot-password", authHandler.ForgotPassword)
		api.Group(func(pr chi.Router) {
			pr.Use(authMW.RequireAuth)
			pr.Get("/me", profileHandler.GetMe)
			pr.Put("/me/notifications", profileHandler.UpdateNotifications)
			pr.Get("/vitals", vitalsHandler.Get)
			pr.Post("/analysis/voice", analysisHandler.Voice)
			pr.Post("/analysis/gait", analysisHandler.Gait)
			pr.Post("/lifestyle", lifestyleHandler.Save)
			pr.Get("/lifestyle", lifestyleHandler.List)
			pr.Get("/history", historyHandler.Report)
			pr.Get("/history/export", historyHandler.Export)
			pr.Post("/appointments", apptsHandler.Schedule)
			pr.Get("/appointments", apptsHandler.List)
			pr.Get("/appointments/doctors", apptsHandler.Doctors)
		})
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown initiated")
	stopMonitor()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info("server stopped")
}

// buildStore picks the record-store backend: hosted HTTP store when
// STORE_URL is set, Postgres documents when DATABASE_URL is set, otherwise
// in-memory (dev only; state is lost on restart).
func buildStore(cfg config.Config, logger *zap.Logger) (store.RecordStore, func(), error) {
	switch {
	case cfg.Dev:
		logger.Info("DEV_MODE set; using in-memory store")
		return store.NewMemStore(), func() {}, nil
	case cfg.StoreURL != "":
		logger.Info("using hosted record store", zap.String("url", cfg.StoreURL))
		return store.NewHTTPStore(cfg.StoreURL, cfg.StoreAuth, cfg.WatchPollInterval), func() {}, nil
	case cfg.DatabaseURL != "":
		dbConn, err := sqlx.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		dbConn.SetMaxOpenConns(10)
		dbConn.SetConnMaxLifetime(2 * time.Hour)
		if err := dbConn.Ping(); err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(dbConn); err != nil {
			return nil, nil, err
		}
		logger.Info("using postgres record store")
		return store.NewPGStore(dbConn, cfg.WatchPollInterval), func() { _ = dbConn.Close() }, nil
	default:
		logger.Warn("no STORE_URL or DATABASE_URL set; using in-memory store")
		return store.NewMemStore(), func() {}, nil
	}
}
