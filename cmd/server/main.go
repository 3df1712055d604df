package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/solar-catalog-api/internal/api"
	"github.com/solar-catalog-api/internal/config"
	"github.com/solar-catalog-api/internal/database"
	"github.com/solar-catalog-api/internal/mailer"
	"github.com/solar-catalog-api/internal/repository"
	"github.com/solar-catalog-api/internal/seed"
	"github.com/solar-catalog-api/internal/service"
	"github.com/solar-catalog-api/pkg/logger"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

// app holds what every command needs
type app struct {
	cfg *config.Config
	log zerolog.Logger
	db  *database.DB
}

func setup() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log := logger.NewWithWriter(os.Stdout, cfg.Log.Level, cfg.Log.Pretty())

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &app{cfg: cfg, log: log, db: db}, nil
}

func (a *app) services() (*service.Services, error) {
	dataset := seed.Default()
	if a.cfg.Content.SeedFile != "" {
		ds, err := seed.Load(a.cfg.Content.SeedFile)
		if err != nil {
			return nil, err
		}
		dataset = ds
		a.log.Info().Str("file", a.cfg.Content.SeedFile).Int("products", ds.Len()).Msg("Loaded seed file")
	}

	repos := repository.New(a.db)
	m := mailer.NewHTTPMailer(&a.cfg.Email, a.log)
	return service.NewServices(repos, dataset, m, a.cfg, a.log), nil
}

func serve(ctx context.Context, _ *cli.Command) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.db.Close()

	a.log.Info().Msg("Starting Solar Catalog API server...")

	if err := a.db.RunMigrations(a.cfg.Content.MigrationsPath); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	services, err := a.services()
	if err != nil {
		return err
	}

	router := api.NewRouter(services, a.cfg, a.log)

	srv := &http.Server{
		Addr:         ":" + a.cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.ReadTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info().Str("port", a.cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			a.log.Info().Str("signal", sig.String()).Msg("Shutting down server...")
		case <-gCtx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	a.log.Info().Msg("Server exited gracefully")
	return nil
}

func seedProducts(ctx context.Context, _ *cli.Command) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.db.Close()

	if err := a.db.RunMigrations(a.cfg.Content.MigrationsPath); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	services, err := a.services()
	if err != nil {
		return err
	}

	report, err := services.Product.Seed(ctx)
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	a.log.Info().
		Strs("inserted", report.Inserted).
		Strs("skipped", report.Skipped).
		Msg("Seed finished")
	return nil
}

func migrateUp(_ context.Context, _ *cli.Command) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.db.Close()
	return a.db.RunMigrations(a.cfg.Content.MigrationsPath)
}

func migrateDown(_ context.Context, _ *cli.Command) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.db.Close()
	return a.db.MigrateDown(a.cfg.Content.MigrationsPath)
}

func migrateTo(_ context.Context, cmd *cli.Command) error {
	arg := cmd.Args().First()
	version, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid migration version %q: %w", arg, err)
	}

	a, err := setup()
	if err != nil {
		return err
	}
	defer a.db.Close()
	return a.db.MigrateToVersion(a.cfg.Content.MigrationsPath, uint(version))
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:   "solar-catalog-api",
		Usage:  "Articles, products and contact API for the solar racing website",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run migrations and start the HTTP server",
				Action: serve,
			},
			{
				Name:   "seed",
				Usage:  "Insert the seed products that are missing from the store",
				Action: seedProducts,
			},
			{
				Name:  "migrate",
				Usage: "Manage database migrations",
				Commands: []*cli.Command{
					{Name: "up", Usage: "Apply all pending migrations", Action: migrateUp},
					{Name: "down", Usage: "Roll back the most recent migration", Action: migrateDown},
					{Name: "to", Usage: "Migrate to a specific version", ArgsUsage: "<version>", Action: migrateTo},
				},
			},
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log := logger.New()
		log.Fatal().Err(err).Msg("Application error")
	}
}
