package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"contactbook/internal/cache"
	"contactbook/internal/config"
	"contactbook/internal/db"
	"contactbook/internal/logging"
	"contactbook/internal/repository"
	"contactbook/internal/service"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	reset := flag.Bool("reset", false, "drop the categories and contacts tables before seeding")
	flag.Parse()

	_ = godotenv.Load()

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		slog.Error("config", slog.Any("error", err))
		os.Exit(1)
	}

	log := logging.New(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting seed")

	// Connect to databases
	contactsDB, err := db.Open(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		fatal(log, "connect contacts store", err)
	}
	identityDB := contactsDB
	if cfg.DB.IdentityDSN != cfg.DB.DSN {
		if identityDB, err = db.Open(cfg.DB.Driver, cfg.DB.IdentityDSN); err != nil {
			fatal(log, "connect identity store", err)
		}
	}
	log.Info("connected to database")

	if *reset {
		log.Warn("dropping contacts store tables")
		if err := db.DropContacts(contactsDB); err != nil {
			fatal(log, "drop tables", err)
		}
	}

	// Run migrations to ensure schema is up to date
	if err := db.MigrateContacts(contactsDB); err != nil {
		fatal(log, "migrate", err)
	}
	if err := db.MigrateIdentity(identityDB); err != nil {
		fatal(log, "migrate", err)
	}

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer cacheClient.Close()

	bootstrap := service.NewBootstrapService(
		repository.NewUserRepository(identityDB),
		repository.NewCategoryRepository(contactsDB),
		repository.NewContactRepository(contactsDB),
		cacheClient,
		log,
	)

	ctx := context.Background()
	if err := bootstrap.EnsureAdmin(ctx, service.AdminAccount{
		Username: cfg.Admin.Username,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
		Role:     cfg.Admin.Role,
	}); err != nil {
		fatal(log, "ensure admin", err)
	}

	categories, err := bootstrap.SeedCategories(ctx)
	if err != nil {
		fatal(log, "seed categories", err)
	}
	contacts, err := bootstrap.SeedContacts(ctx)
	if err != nil {
		fatal(log, "seed contacts", err)
	}

	log.Info("seed completed",
		slog.Int("categories_created", categories),
		slog.Int("contacts_created", contacts),
	)
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, slog.Any("error", err))
	os.Exit(1)
}
