// Package main provides the entry point for the SQL Runner server.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sqlrunner/cmd/server/config"
	"sqlrunner/cmd/server/middleware"
	"sqlrunner/pkg/handlers"
	"sqlrunner/pkg/infrastructure/metrics"
	"sqlrunner/pkg/repositories/sqlite"
	"sqlrunner/pkg/services"

	_ "github.com/mattn/go-sqlite3"
)

var (
	// Version information (set by build flags)
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "sqlrunner",
	Short: "SQL Runner server",
	Long: `An HTTP server that lets authenticated users run SQL statements
against a shared SQLite database and inspect the results.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SQL Runner server",
	Long: `Start the SQL Runner server with the specified configuration.

Example:
  sqlrunner serve --address 0.0.0.0:8000 --database sql_runner.db
  sqlrunner serve --jwt-secret change-me --history-size 100`,
	RunE: runServer,
}

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Initialize the database schema and demo dataset",
	Long: `Create the account table and seed the demo dataset, then exit.
Safe to run repeatedly: an already-seeded database is left untouched.

Example:
  sqlrunner init-db --database sql_runner.db`,
	RunE: runInitDB,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initDBCmd)

	initDBCmd.Flags().String("database", "sql_runner.db", "SQLite database path")
	initDBCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	serveCmd.Flags().String("address", "0.0.0.0:8000", "server listen address")
	serveCmd.Flags().String("database", "sql_runner.db", "SQLite database path")
	serveCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	serveCmd.Flags().String("jwt-secret", "", "secret used to sign access tokens")
	serveCmd.Flags().Duration("token-ttl", 8*time.Hour, "access token lifetime")
	serveCmd.Flags().Int("history-size", 50, "per-user query history size")
	serveCmd.Flags().Int("max-result-rows", 0, "maximum rows returned per query (0 = unlimited)")
	serveCmd.Flags().StringSlice("cors-origins", []string{"*"}, "allowed CORS origins")
	serveCmd.Flags().Bool("metrics", true, "enable Prometheus metrics")
	serveCmd.Flags().String("metrics-path", "/metrics", "metrics endpoint path")
	serveCmd.Flags().Bool("seed-data", true, "seed demo tables on startup")
	serveCmd.Flags().Duration("shutdown-timeout", 30*time.Second, "graceful shutdown timeout")

	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		panic(fmt.Errorf("failed to bind flags: %w", err))
	}
	viper.SetEnvPrefix("SQLRUNNER")
	viper.AutomaticEnv()

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("SQL Runner\n")
			fmt.Printf("Version:    %s\n", version)
			fmt.Printf("Commit:     %s\n", commit)
			fmt.Printf("Build Date: %s\n", buildDate)
		},
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := setupLogging(cfg.LogLevel)
	logger.Info().
		Str("version", version).
		Str("commit", commit).
		Str("build_date", buildDate).
		Msg("Starting SQL Runner server")

	db, err := openDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	var collector metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewPrometheusCollector(nil)
	} else {
		collector = metrics.NewNoOpCollector()
	}

	router := buildRouter(cfg, db, collector, logger)

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, os.Interrupt, syscall.SIGTERM)

	serverErrCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("address", cfg.Address).
			Str("database", cfg.Database).
			Bool("metrics", cfg.Metrics.Enabled).
			Msg("Server listening")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-shutdownCh:
		logger.Info().Msg("Received shutdown signal")
	case err := <-serverErrCh:
		return err
	}

	logger.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("Starting graceful shutdown")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Error during server shutdown")
		return err
	}

	logger.Info().Msg("Server stopped")
	return nil
}

func runInitDB(cmd *cobra.Command, args []string) error {
	path, err := cmd.Flags().GetString("database")
	if err != nil {
		return err
	}
	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return err
	}
	logger := setupLogging(level)

	if err := initDatabase(path); err != nil {
		return err
	}

	logger.Info().Str("database", path).Msg("Database initialized")
	return nil
}

// initDatabase applies the schema and seeds the demo dataset. Idempotent.
func initDatabase(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := sqlite.EnsureSchema(ctx, db); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := sqlite.SeedSampleData(ctx, db); err != nil {
		return fmt.Errorf("failed to seed sample data: %w", err)
	}

	return nil
}

// openDatabase opens the SQLite store, applies the schema, and seeds the
// demo tables when configured.
func openDatabase(cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx := context.Background()
	if err := sqlite.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if cfg.SeedData {
		if err := sqlite.SeedSampleData(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to seed sample data: %w", err)
		}
		logger.Info().Msg("Sample data ready")
	}

	return db, nil
}

// buildRouter wires repositories, services, and handlers behind the
// middleware chain.
func buildRouter(cfg *config.Config, db *sql.DB, collector metrics.Collector, logger zerolog.Logger) chi.Router {
	queryRepo := sqlite.NewQueryRepository(db, cfg.MaxResultRows, logger)
	metadataRepo := sqlite.NewMetadataRepository(db, logger)
	userRepo := sqlite.NewUserRepository(db, logger)

	historySvc := services.NewHistoryService(cfg.HistorySize, logger)
	querySvc := services.NewQueryService(queryRepo, historySvc, logger, collector)
	metadataSvc := services.NewMetadataService(metadataRepo, logger)
	authSvc := services.NewAuthService(userRepo, cfg.Auth.Secret, cfg.Auth.TokenTTL, logger)

	h := handlers.New(querySvc, historySvc, metadataSvc, authSvc, logger, version)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics(collector))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler())
	}

	r.Mount("/", h.Routes(authSvc))

	return r
}

// loadConfig builds the configuration from flags and environment.
func loadConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Address = viper.GetString("address")
	cfg.Database = viper.GetString("database")
	cfg.LogLevel = viper.GetString("log-level")
	cfg.ShutdownTimeout = viper.GetDuration("shutdown-timeout")
	cfg.MaxResultRows = viper.GetInt("max-result-rows")
	cfg.HistorySize = viper.GetInt("history-size")
	cfg.Auth.Secret = viper.GetString("jwt-secret")
	cfg.Auth.TokenTTL = viper.GetDuration("token-ttl")
	cfg.CORS.AllowedOrigins = viper.GetStringSlice("cors-origins")
	cfg.Metrics.Enabled = viper.GetBool("metrics")
	cfg.Metrics.Path = viper.GetString("metrics-path")
	cfg.SeedData = viper.GetBool("seed-data")
	return cfg
}

// setupLogging configures the global zerolog logger.
func setupLogging(level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond

	var logLevel zerolog.Level
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stdout).
		Level(logLevel).
		With().
		Timestamp().
		Logger()

	if logLevel == zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}

	return logger
}
