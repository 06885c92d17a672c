package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/me/baraza/internal/api"
	"github.com/me/baraza/internal/cache"
	"github.com/me/baraza/internal/config"
	"github.com/me/baraza/internal/logging"
	"github.com/me/baraza/internal/server"
	"github.com/me/baraza/internal/storage"
	"github.com/me/baraza/internal/store"
)

func main() {
	// Local .env is optional; real deployments set the environment.
	_ = godotenv.Load()

	var configFile string
	flag.StringVar(&configFile, "config", "", "Path to YAML config file")

	cfg := config.DefaultServerConfig()
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Database path (default ~/.baraza/baraza.db)")
	flag.StringVar(&cfg.PlatformURL, "platform", cfg.PlatformURL, "Platform API base URL")
	flag.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Cookie session lifetime")
	flag.BoolVar(&cfg.SecureCookies, "secure-cookies", cfg.SecureCookies, "Set the Secure flag on session cookies")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")
	flag.Parse()

	if configFile != "" {
		loaded, err := config.LoadServerConfig(configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
		loaded.SessionTTL = cfg.SessionTTL
		cfg = loaded
	}
	if *debug {
		cfg.LogLevel = "debug"
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	// Resolve database path.
	dbPath := cfg.DBPath
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot determine home directory: %v\n", err)
			os.Exit(1)
		}
		dir := filepath.Join(home, ".baraza")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "cannot create %s: %v\n", dir, err)
			os.Exit(1)
		}
		dbPath = filepath.Join(dir, "baraza.db")
	}

	// Open store and run migrations.
	st, err := store.NewSQLiteStore(dbPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Migrate(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "migrate database: %v\n", err)
		os.Exit(1)
	}
	logger.Info("database ready", "path", dbPath)

	platform := api.NewClient(api.Config{BaseURL: cfg.PlatformURL}, logger)

	var serverOpts []server.Option

	// Redis cache for dashboard aggregates, when configured.
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedis(context.Background(), cfg.RedisAddr, cfg.RedisPassword, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "connect redis: %v\n", err)
			os.Exit(1)
		}
		defer rc.Close()
		serverOpts = append(serverOpts, server.WithCache(rc))
		logger.Info("dashboard cache enabled", "addr", cfg.RedisAddr)
	}

	// S3 document storage, when configured.
	if cfg.S3Bucket != "" {
		uploader, err := storage.NewS3Uploader(context.Background(), cfg.S3Bucket, cfg.S3Region, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "configure s3: %v\n", err)
			os.Exit(1)
		}
		serverOpts = append(serverOpts, server.WithUploader(uploader))
		logger.Info("document storage enabled", "bucket", cfg.S3Bucket)
	}

	srv := server.New(cfg, st, platform, logger, serverOpts...)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Handler(),
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Sweep expired sessions in the background.
	sessions := server.NewSessionManager(st, cfg.SessionTTL)
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n, err := sessions.CleanupExpiredSessions(ctx); err != nil {
					logger.Error("session cleanup failed", "error", err)
				} else if n > 0 {
					logger.Info("expired sessions removed", "count", n)
				}
			}
		}
	}()

	go func() {
		logger.Info("server starting", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
