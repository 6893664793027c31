package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docflow/internal/config"
	"docflow/internal/database"
	"docflow/internal/handler"
	"docflow/internal/logger"
	"docflow/internal/repository"
	"docflow/internal/service"
	"docflow/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// @title           Document Approval Workflow API
// @version         1.0
// @description     Tracks company documents through approve/reject validation with an audit trail.
// @host            localhost:8080
// @BasePath        /
func main() {
	root := &cli.Command{
		Name:  "docflow",
		Usage: "Document approval workflow server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "env-file", Value: "configs/.env", Usage: "optional .env file loaded before the environment"},
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServer(ctx, cmd.String("env-file"))
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP server",
		Action: func(ctx context.Context, c *cli.Command) error {
			return runServer(ctx, c.String("env-file"))
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the database schema",
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply pending migrations",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withDatabase(ctx, c.String("env-file"), func(db *gorm.DB, driver string, logger *zap.Logger) error {
						versions, err := database.Migrate(ctx, db, driver)
						if err != nil {
							return err
						}
						logger.Info("Migrations applied", zap.Int64s("versions", versions))
						return nil
					})
				},
			},
			{
				Name:  "down",
				Usage: "Roll back the latest migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withDatabase(ctx, c.String("env-file"), func(db *gorm.DB, driver string, logger *zap.Logger) error {
						version, err := database.Rollback(ctx, db, driver)
						if err != nil {
							return err
						}
						logger.Info("Migration rolled back", zap.Int64("version", version))
						return nil
					})
				},
			},
			{
				Name:  "status",
				Usage: "Show applied and pending migrations",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withDatabase(ctx, c.String("env-file"), func(db *gorm.DB, driver string, _ *zap.Logger) error {
						statuses, err := database.Status(ctx, db, driver)
						if err != nil {
							return err
						}
						for _, s := range statuses {
							state := "pending"
							if s.Applied {
								state = "applied"
							}
							fmt.Printf("%05d  %s\n", s.Version, state)
						}
						return nil
					})
				},
			},
		},
	}
}

func bootstrap(envFile string) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	zapLogger, err := logger.New(cfg.LogLevel, cfg.IsRelease())
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, zapLogger, nil
}

func withDatabase(ctx context.Context, envFile string, fn func(db *gorm.DB, driver string, logger *zap.Logger) error) error {
	cfg, logger, err := bootstrap(envFile)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	opts := databaseOptions(cfg)
	opts.AutoMigrate = false
	db, err := database.NewConnection(ctx, opts, logger)
	if err != nil {
		return err
	}
	defer closeDB(db)

	return fn(db, cfg.Database.Driver, logger)
}

func databaseOptions(cfg config.Config) database.Options {
	return database.Options{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN(),
		MaxOpenConns: cfg.Database.MaxOpenConns,
		AutoMigrate:  cfg.Database.AutoMigrate,
	}
}

func runServer(ctx context.Context, envFile string) error {
	cfg, logger, err := bootstrap(envFile)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewConnection(ctx, databaseOptions(cfg), logger)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer closeDB(db)
	logger.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	wsHub := websocket.NewHub(logger)
	go wsHub.Run(hubCtx)

	// Repository -> Service -> Handler
	repos := repository.NewRepositories(db)
	uow := repository.NewUnitOfWork(db)

	companyService := service.NewCompanyService(repos.Companies, uow, logger)
	documentService := service.NewDocumentService(repos.Companies, repos.Documents, repos.Ledger, logger)
	workflowService := service.NewWorkflowService(uow, wsHub, logger)
	validationService := service.NewValidationService(repos.Ledger)
	auditService := service.NewAuditService(repos.Audits)

	router := handler.NewRouter(handler.RouterDeps{
		Companies:   handler.NewCompanyHandler(companyService),
		Documents:   handler.NewDocumentHandler(documentService, workflowService, validationService, auditService),
		Validations: handler.NewValidationHandler(validationService),
		Audits:      handler.NewAuditHandler(auditService),
		Hub:         wsHub,
		Ping:        database.Ping(db),
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("Shutting down server", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("Server exiting")
	return nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
