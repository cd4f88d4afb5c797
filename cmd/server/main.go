package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"contactbook/internal/auth"
	"contactbook/internal/cache"
	"contactbook/internal/config"
	"contactbook/internal/db"
	"contactbook/internal/handler"
	"contactbook/internal/logging"
	"contactbook/internal/metrics"
	"contactbook/internal/repository"
	"contactbook/internal/router"
	"contactbook/internal/service"
)

// @title Contactbook API
// @version 1.0
// @description Contacts filed under hierarchical categories, with bearer-token protected mutations.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	configPath := flag.String("config", "", "optional YAML config file; environment variables take precedence")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", slog.Any("error", err))
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("config", slog.Any("error", err))
		os.Exit(1)
	}

	log := logging.New(cfg.Env)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func run(cfg *config.Config, log *slog.Logger) error {
	contactsDB, err := db.Open(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return err
	}
	identityDB := contactsDB
	if cfg.DB.IdentityDSN != cfg.DB.DSN {
		if identityDB, err = db.Open(cfg.DB.Driver, cfg.DB.IdentityDSN); err != nil {
			return err
		}
	}

	if err := db.MigrateContacts(contactsDB); err != nil {
		return err
	}
	if err := db.MigrateIdentity(identityDB); err != nil {
		return err
	}

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer cacheClient.Close()

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(contactsDB)
	contactRepo := repository.NewContactRepository(contactsDB)
	userRepo := repository.NewUserRepository(identityDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.TokenLifetime())

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	categoryService := service.NewCategoryService(categoryRepo, cacheClient, cfg.CategoryDeletePolicy)
	contactService := service.NewContactService(contactRepo, categoryRepo, cacheClient)
	bootstrapService := service.NewBootstrapService(userRepo, categoryRepo, contactRepo, cacheClient, log)

	ctx := context.Background()
	if err := bootstrapService.EnsureAdmin(ctx, service.AdminAccount{
		Username: cfg.Admin.Username,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
		Role:     cfg.Admin.Role,
	}); err != nil {
		return err
	}
	if cfg.SeedOnStart {
		if _, err := bootstrapService.SeedCategories(ctx); err != nil {
			return err
		}
		if _, err := bootstrapService.SeedContacts(ctx); err != nil {
			return err
		}
	}

	e := echo.New()
	e.HideBanner = true

	router.Register(e, cfg, log, jwtService, metrics.New(), router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Category: handler.NewCategoryHandler(categoryService),
		Contact:  handler.NewContactHandler(contactService),
		Seed:     handler.NewSeedHandler(bootstrapService),
	})

	log.Info("swagger documentation available", slog.String("url", swaggerURL(cfg)))

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", slog.String("addr", cfg.Addr()))
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
