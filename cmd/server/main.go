package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"meetup-point-service/internal/adapters/cache"
	"meetup-point-service/internal/adapters/googlemaps"
	"meetup-point-service/internal/adapters/repositories"
	"meetup-point-service/internal/api"
	"meetup-point-service/internal/config"
	"meetup-point-service/internal/platform/db"
	"meetup-point-service/internal/platform/obs"
	"meetup-point-service/internal/ports"
	"meetup-point-service/internal/services"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (SQL, Redis, Google Maps) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(os.Getenv("MEETUP_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}

	logger, err := obs.NewLogger(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if err := run(cfg); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dsn := cfg.DB.Path
	if cfg.DB.Driver == db.DriverPostgres {
		dsn = cfg.DB.URL
	}
	conn, err := db.Open(cfg.DB.Driver, dsn)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := repositories.InitSchema(ctx, conn, cfg.DB.Driver); err != nil {
		return err
	}

	opts := []googlemaps.Option{
		googlemaps.WithGeocodeCache(geocodeCache(conn, cfg.DB.Driver)),
		googlemaps.WithDetailsCache(cache.NewDetailsCache(cfg.Cache.DetailsSize, cfg.Cache.DetailsTTL)),
	}
	if cfg.Redis.URL != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		opts = append(opts, googlemaps.WithDurationCache(cache.NewRedisDurationCache(rdb, cfg.Redis.TTL)))
	} else {
		zap.L().Info("redis url not set, travel-duration cache disabled")
	}

	provider, err := googlemaps.NewProvider(googlemaps.Config{
		APIKey:            cfg.Google.APIKey,
		BaseURL:           cfg.Google.BaseURL,
		RequestsPerSecond: cfg.Google.RequestsPerSecond,
		Timeout:           cfg.Google.Timeout,
	}, opts...)
	if err != nil {
		return err
	}

	policy, err := services.ParseScoringPolicy(cfg.Scoring.Policy)
	if err != nil {
		return err
	}
	sessions, err := services.NewSessionStore(cfg.Sessions.MaxSessions)
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}

	svc := services.NewMeetupService(
		services.NewPipeline(provider, policy, cfg.Scoring.MaxConcurrency),
		provider,
		sessions,
		repositories.NewSQLMeetupRepository(conn, cfg.DB.Driver),
	)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           api.NewRouter(svc),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("server listening", zap.String("addr", srv.Addr), zap.String("db", cfg.DB.Driver))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	zap.L().Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func geocodeCache(conn *sql.DB, driver string) ports.GeocodeCache {
	if driver == db.DriverPostgres {
		return cache.NewSQLGeocodeCache(conn)
	}
	return cache.NewSqliteGeocodeCache(conn)
}
