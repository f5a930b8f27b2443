// Package main provides the inventory command: the HTTP service plus one-shot maintenance commands
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/amirphl/retail-inventory/app/dto"
	"github.com/amirphl/retail-inventory/app/handlers"
	"github.com/amirphl/retail-inventory/app/router"
	businessflow "github.com/amirphl/retail-inventory/business_flow"
	"github.com/amirphl/retail-inventory/config"
	"github.com/amirphl/retail-inventory/logger"
	"github.com/amirphl/retail-inventory/repository"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const usage = `usage: inventory <command> [flags]

commands:
  serve                         migrate, optionally seed, and serve HTTP (default)
  migrate                       create the tables
  seed                          load the deterministic dataset
  generate -records N -seed S   load a generated dataset
  report [-verbose] [-xlsx PATH] run every query and print timings
  indexes create|drop|list      manage the report indexes
`

// Application holds the connections and flows shared by every command
type Application struct {
	config  *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	redis   *redis.Client
	report  businessflow.ReportFlow
	fixture businessflow.FixtureFlow
	schema  businessflow.SchemaFlow
	catalog businessflow.CatalogFlow

	stopFuncs []func()
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "inventory:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	command := "serve"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command, args = args[0], args[1:]
	}
	if command == "help" {
		fmt.Print(usage)
		return nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	app, err := initializeApplication(cfg, log)
	if err != nil {
		log.Error("failed to initialize application", zap.Error(err))
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch command {
	case "serve":
		return app.serve(ctx)
	case "migrate":
		_, err := app.schema.Migrate(ctx)
		return err
	case "seed":
		return app.seed(ctx)
	case "generate":
		return app.generate(ctx, args)
	case "report":
		return app.runReport(ctx, args)
	case "indexes":
		return app.indexes(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.NewGormLogger(log, cfg.SlowQueryLog, cfg.SlowQueryTime),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name),
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns))

	return db, nil
}

// initializeCache connects to redis when the cache is enabled; nil otherwise
func initializeCache(cfg config.CacheConfig, log *zap.Logger) (*redis.Client, error) {
	if !cfg.Enabled || cfg.Provider != "redis" {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("redis connection established", zap.String("addr", opt.Addr), zap.Int("db", cfg.RedisDB))
	return rc, nil
}

func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration, log *zap.Logger) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Warn("redis healthcheck failed", zap.Error(err))
				}
				c()
			}
		}
	}()
	return cancel
}

func initializeApplication(cfg *config.Config, log *zap.Logger) (*Application, error) {
	db, err := initializeDatabase(cfg.Database, log)
	if err != nil {
		return nil, err
	}

	rc, err := initializeCache(cfg.Cache, log)
	if err != nil {
		return nil, err
	}

	app := &Application{config: cfg, logger: log, db: db, redis: rc}
	if rc != nil {
		app.stopFuncs = append(app.stopFuncs, startCacheHealthMonitor(context.Background(), rc, cfg.Cache.HealthInterval, log))
	}

	tx := repository.NewTransactor(db)
	lock := businessflow.NewReloadLock(rc, cfg.Cache.RedisPrefix, cfg.Fixtures.LockTTL, log)

	app.report = businessflow.NewReportFlow(repository.NewReportRepository(db), tx, log)
	app.fixture = businessflow.NewFixtureFlow(businessflow.NewFixtureRepositories(db), tx, lock, cfg.Fixtures.DefaultRecords, log)
	app.schema = businessflow.NewSchemaFlow(repository.NewSchemaRepository(db), log)
	app.catalog = businessflow.NewCatalogFlow(repository.NewStoreRepository(db), repository.NewDepartmentRepository(db))

	return app, nil
}

// Close stops background workers and releases connections
func (a *Application) Close() {
	for _, fn := range a.stopFuncs {
		fn()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func (a *Application) serve(ctx context.Context) error {
	if _, err := a.schema.Migrate(ctx); err != nil {
		return err
	}
	if a.config.Fixtures.SeedOnStart {
		if err := a.seed(ctx); err != nil {
			return err
		}
	}

	timeout := a.config.Server.RequestTimeout
	h := router.Handlers{
		Report:  handlers.NewReportHandler(a.report, a.logger, timeout),
		Catalog: handlers.NewCatalogHandler(a.catalog, a.logger, timeout),
		Admin:   handlers.NewAdminHandler(a.fixture, a.schema, a.logger, timeout),
	}

	checks := map[string]router.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := a.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	var storage fiber.Storage
	if a.redis != nil {
		storage = router.NewRedisStorage(a.redis, a.config.Cache.RedisPrefix+"http:")
		checks["cache"] = func(ctx context.Context) error { return a.redis.Ping(ctx).Err() }
	}

	appRouter := router.NewFiberRouter(a.config, h, storage, checks, a.logger)
	appRouter.SetupRoutes()

	errCh := make(chan error, 1)
	go func() {
		address := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
		errCh <- appRouter.Start(address)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()
	if err := appRouter.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("error during shutdown", zap.Error(err))
		return err
	}
	a.logger.Info("server stopped")
	return nil
}

func (a *Application) seed(ctx context.Context) error {
	report, err := a.fixture.LoadSeed(ctx)
	if err != nil {
		// another replica seeding at the same time is fine
		if businessflow.IsReloadInProgress(err) {
			a.logger.Warn("seed skipped, reload already running")
			return nil
		}
		return err
	}
	printLoadReport(report)
	return nil
}

func (a *Application) generate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	records := fs.Int("records", a.config.Fixtures.DefaultRecords, "approximate number of rows per parent table")
	seed := fs.Uint64("seed", 0, "generator seed; 0 picks one from the clock")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s := *seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	report, err := a.fixture.LoadRandom(ctx, dto.LoadRandomFixturesRequest{Records: records, Seed: s})
	if err != nil {
		return err
	}
	printLoadReport(report)
	fmt.Printf("seed: %d\n", s)
	return nil
}

func (a *Application) runReport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	verbose := fs.Bool("verbose", false, "log every result table")
	xlsxPath := fs.String("xlsx", "", "also write the results to this workbook")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := a.report.RunAll(ctx, *verbose)
	if err != nil {
		return err
	}
	for _, r := range res.Results {
		fmt.Printf("%-30s %6d rows %10.6fs\n", r.Query, r.RowCount, r.ElapsedSeconds)
	}
	fmt.Printf("%-30s %17.6fs\n", "total", res.TotalElapsedSeconds)

	if *xlsxPath == "" {
		return nil
	}
	_, data, err := a.report.ExportXLSX(ctx)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*xlsxPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", *xlsxPath, err)
	}
	fmt.Printf("workbook written to %s\n", *xlsxPath)
	return nil
}

func (a *Application) indexes(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("indexes expects one of: create, drop, list")
	}

	var (
		res *dto.IndexStatusResponse
		err error
	)
	switch args[0] {
	case businessflow.IndexOperationCreate:
		res, err = a.schema.CreateIndexes(ctx)
	case businessflow.IndexOperationDrop:
		res, err = a.schema.DropIndexes(ctx)
	case businessflow.IndexOperationList:
		res, err = a.schema.ListIndexes(ctx)
	default:
		return fmt.Errorf("unknown index operation %q", args[0])
	}
	if err != nil {
		return err
	}
	fmt.Printf("%d of %d report indexes present\n", len(res.Indexes), res.Expected)
	for _, name := range res.Indexes {
		fmt.Println("  " + name)
	}
	return nil
}

func printLoadReport(r *dto.LoadReport) {
	fmt.Printf("%s load %s: %d rows in %.3fs\n", r.Strategy, r.RunID, r.Total, r.ElapsedSeconds)
}
