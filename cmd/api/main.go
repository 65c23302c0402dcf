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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/parkeasy/parkeasy-api/internal/config"
	"github.com/parkeasy/parkeasy-api/internal/domain/auth"
	"github.com/parkeasy/parkeasy-api/internal/domain/booking"
	"github.com/parkeasy/parkeasy-api/internal/domain/dashboard"
	"github.com/parkeasy/parkeasy-api/internal/domain/lot"
	"github.com/parkeasy/parkeasy-api/internal/domain/report"
	"github.com/parkeasy/parkeasy-api/internal/domain/user"
	"github.com/parkeasy/parkeasy-api/internal/middleware"
	"github.com/parkeasy/parkeasy-api/internal/pkg/database"
	pkgresponse "github.com/parkeasy/parkeasy-api/internal/pkg/response"
	"github.com/parkeasy/parkeasy-api/internal/pkg/session"
	"github.com/parkeasy/parkeasy-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting ParkEasy API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	sessions := session.NewService(cfg.SessionSecret, cfg.SessionTTL, redis)

	adminCreds, err := auth.NewAdminCredentials(cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare admin credentials")
	}

	// Export archival is optional; without a bucket the CSV endpoints
	// still serve downloads directly.
	var exportArchive *storage.S3Storage
	if cfg.ExportBucketName != "" {
		exportArchive, err = storage.NewS3Storage(storage.Config{
			Bucket:    cfg.ExportBucketName,
			Region:    cfg.ExportBucketRegion,
			AccessKey: cfg.ExportAccessKeyID,
			SecretKey: cfg.ExportAccessKeySecret,
			Endpoint:  cfg.ExportEndpoint,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create export storage")
		}
	}

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	lotRepo := lot.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	reportRepo := report.NewRepository(db)

	// ---------- Services ----------
	authService := auth.NewService(userRepo, sessions, adminCreds)
	lotService := lot.NewService(lotRepo)
	bookingService := booking.NewService(bookingRepo, lotRepo, cfg.MaxBookingHours)
	dashboardService := dashboard.NewService(bookingService, lotService)
	reportService := report.NewService(reportRepo, exportArchive)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	lotHandler := lot.NewHandler(lotService)
	bookingHandler := booking.NewHandler(bookingService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	reportHandler := report.NewHandler(reportService)

	authMiddleware := middleware.Auth(sessions)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))
	r.Use(authMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	authHandler.Routes(r)
	dashboardHandler.Routes(r)
	bookingHandler.UserRoutes(r)
	lotHandler.UserRoutes(r)

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", authHandler.AdminLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			lotHandler.AdminRoutes(r)
			bookingHandler.AdminRoutes(r)
			reportHandler.Routes(r)
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
