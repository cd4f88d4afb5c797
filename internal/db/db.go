package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"contactbook/internal/config"
	"contactbook/internal/model"
)

// Open returns a connected GORM DB instance for the configured driver.
// Driver errors are translated so foreign key and duplicate key violations surface as
// gorm.ErrForeignKeyViolated and gorm.ErrDuplicatedKey.
func Open(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case config.DriverMySQL:
		return NewMySQL(dsn)
	case config.DriverPostgres:
		return NewPostgres(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return configurePool(db)
}

// NewPostgres returns a connected GORM DB instance backed by pgx.
func NewPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return configurePool(db)
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

func configurePool(db *gorm.DB) (*gorm.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// MigrateContacts creates or updates the categories and contacts tables.
func MigrateContacts(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Category{}, &model.Contact{}); err != nil {
		return fmt.Errorf("migrate contacts store: %w", err)
	}
	slog.Info("contacts store migrated")
	return nil
}

// MigrateIdentity creates or updates the users, roles and user_roles tables.
func MigrateIdentity(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Role{}, &model.User{}); err != nil {
		return fmt.Errorf("migrate identity store: %w", err)
	}
	slog.Info("identity store migrated")
	return nil
}

// DropContacts drops the contacts store tables, dependents first.
func DropContacts(db *gorm.DB) error {
	for _, table := range []interface{}{&model.Contact{}, &model.Category{}} {
		if err := db.Migrator().DropTable(table); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return nil
}
