package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/invoicehero/internal/api"
	"github.com/terraincognita07/invoicehero/internal/cli"
	"github.com/terraincognita07/invoicehero/internal/config"
	"github.com/terraincognita07/invoicehero/internal/db"
	"github.com/terraincognita07/invoicehero/internal/docstore"
	"github.com/terraincognita07/invoicehero/internal/logging"
	"github.com/terraincognita07/invoicehero/internal/metrics"
	"github.com/terraincognita07/invoicehero/internal/security"
	"github.com/terraincognita07/invoicehero/internal/services"
	"github.com/terraincognita07/invoicehero/internal/tracing"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		slog.Error("invoicehero exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logging.Setup(cfg.LogLevel)

	command := "serve"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	switch command {
	case "serve":
		return serve(ctx, cfg)
	case "import-document":
		if len(args) != 1 {
			return errors.New("usage: invoicehero import-document <path>")
		}
		repos, closeStore, err := openRepositories(cfg)
		if err != nil {
			return err
		}
		defer logClose(closeStore)
		return cli.RunImportDocumentCommand(ctx, args[0], repos, stdout)
	case "issue-token":
		if len(args) < 1 || len(args) > 2 {
			return errors.New("usage: invoicehero issue-token <user-id> [ttl]")
		}
		ttl := cfg.TokenTTL
		if len(args) == 2 {
			if ttl, err = time.ParseDuration(args[1]); err != nil {
				return fmt.Errorf("invalid ttl %q: %w", args[1], err)
			}
		}
		return cli.RunIssueTokenCommand(cfg.TokenSecret, args[0], ttl, stdout)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	shutdownTracing, err := tracing.Init(ctx, "invoicehero", cfg.Environment)
	if err != nil {
		return fmt.Errorf("tracing init failed: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			slog.Warn("tracer shutdown failed", "error", err)
		}
	}()

	repos, closeStore, err := openRepositories(cfg)
	if err != nil {
		return err
	}
	defer logClose(closeStore)

	identity, err := identityOptions(cfg)
	if err != nil {
		return err
	}

	handler, err := api.NewHandler(repos, api.HandlerOptions{
		Location:           cfg.Location,
		PaymentsConfigured: cfg.PaymentsConfigured(),
		Identity:           identity,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := newApp(cfg, handler)

	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("InvoiceHero listening",
		"addr", "http://0.0.0.0:"+cfg.Port,
		"store", cfg.StoreDriver,
		"tz", cfg.Location.String(),
		"signed_tokens", cfg.SignedTokens(),
		"payments", cfg.PaymentsConfigured(),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newApp(cfg *config.Config, handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "InvoiceHero",
		DisableStartupMessage: true,
		Immutable:             true,
		BodyLimit:             cfg.BodyLimitBytes,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORSAllowedOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(metrics.Middleware())

	app.Get("/metrics", metrics.Handler())
	api.RegisterRoutes(app, handler)
	return app
}

// openRepositories opens the configured backend. The returned close function
// releases it.
func openRepositories(cfg *config.Config) (services.Repositories, func() error, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverJSON:
		store, err := docstore.Open(cfg.DocumentPath)
		if err != nil {
			return services.Repositories{}, nil, fmt.Errorf("document store init failed: %w", err)
		}
		repos := docstore.NewRepositories(store)
		return services.Repositories{
			Users:    repos.Users,
			Clients:  repos.Clients,
			Invoices: repos.Invoices,
			Settings: repos.Settings,
		}, func() error { return nil }, nil
	default:
		database, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return services.Repositories{}, nil, fmt.Errorf("database init failed: %w", err)
		}
		repos := db.NewRepositories(database)
		return services.Repositories{
			Users:    repos.Users,
			Clients:  repos.Clients,
			Invoices: repos.Invoices,
			Settings: repos.Settings,
		}, func() error { return db.CloseSQLite(database) }, nil
	}
}

func identityOptions(cfg *config.Config) (services.IdentityOptions, error) {
	options := services.IdentityOptions{
		DefaultUserID: cfg.DefaultUserID,
		AutoProvision: cfg.AutoProvisionUsers,
	}
	if !cfg.SignedTokens() {
		return options, nil
	}

	tokens, err := security.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		return services.IdentityOptions{}, fmt.Errorf("token manager init failed: %w", err)
	}
	options.Tokens = tokens
	return options, nil
}

func logClose(closeStore func() error) {
	if err := closeStore(); err != nil {
		slog.Error("close store failed", "error", err)
	}
}
