package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Supported values for Config.DBDriver.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Supported values for Config.CategoryDeletePolicy.
const (
	DeletePolicyCascade  = "cascade"
	DeletePolicyRestrict = "restrict"
)

// Config holds application level configuration loaded from environment variables and an
// optional YAML file.
type Config struct {
	Env         string `yaml:"env" env:"APP_ENV" env-default:"local"`
	ServerPort  string `yaml:"server_port" env:"SERVER_PORT" env-default:"8080"`
	SwaggerHost string `yaml:"swagger_host" env:"SWAGGER_HOST"`

	DB    DB    `yaml:"db"`
	Redis Redis `yaml:"redis"`
	JWT   JWT   `yaml:"jwt"`
	Admin Admin `yaml:"admin"`

	CORSAllowOrigins     []string `yaml:"cors_allow_origins" env:"CORS_ALLOW_ORIGINS" env-separator:"," env-default:"*"`
	CategoryDeletePolicy string   `yaml:"category_delete_policy" env:"CATEGORY_DELETE_POLICY" env-default:"cascade"`
	// MutationRole, when set, is required on top of authentication for create/update/delete.
	MutationRole string `yaml:"mutation_role" env:"MUTATION_ROLE"`
	SeedOnStart  bool   `yaml:"seed_on_start" env:"SEED_ON_START" env-default:"true"`
}

// DB holds the connection settings of the contacts store and the identity store.
type DB struct {
	Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"mysql"`
	DSN    string `yaml:"dsn" env:"DATABASE_DSN" env-default:"user:password@tcp(localhost:3306)/contacts?charset=utf8mb4&parseTime=True&loc=UTC"`
	// IdentityDSN defaults to DSN when empty.
	IdentityDSN string `yaml:"identity_dsn" env:"IDENTITY_DATABASE_DSN"`
}

// Redis holds cache settings. An empty address disables caching.
type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// JWT holds token signing settings.
type JWT struct {
	Secret          string `yaml:"secret" env:"JWT_SECRET" env-default:"change-me-to-a-long-random-secret"`
	Issuer          string `yaml:"issuer" env:"JWT_ISSUER" env-default:"contactbook"`
	Audience        string `yaml:"audience" env:"JWT_AUDIENCE" env-default:"contactbook-frontend"`
	DurationMinutes int    `yaml:"duration_minutes" env:"JWT_DURATION_MINUTES" env-default:"60"`
}

// Admin describes the administrative account reconciled at startup.
type Admin struct {
	Username string `yaml:"username" env:"ADMIN_USERNAME" env-default:"admin"`
	Email    string `yaml:"email" env:"ADMIN_EMAIL" env-default:"admin@example.com"`
	Password string `yaml:"password" env:"ADMIN_PASSWORD" env-default:"Password123!"`
	Role     string `yaml:"role" env:"ADMIN_ROLE" env-default:"Admin"`
}

// Load builds Config from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return finalize(&cfg)
}

// LoadFile builds Config from a YAML file; environment variables override file values.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return finalize(&cfg)
}

func finalize(cfg *Config) (*Config, error) {
	if cfg.DB.IdentityDSN == "" {
		cfg.DB.IdentityDSN = cfg.DB.DSN
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that have no safe fallback.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverMySQL, DriverPostgres, c.DB.Driver)
	}
	switch c.CategoryDeletePolicy {
	case DeletePolicyCascade, DeletePolicyRestrict:
	default:
		return fmt.Errorf("CATEGORY_DELETE_POLICY must be %q or %q, got %q", DeletePolicyCascade, DeletePolicyRestrict, c.CategoryDeletePolicy)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if c.JWT.DurationMinutes <= 0 {
		return fmt.Errorf("JWT_DURATION_MINUTES must be positive, got %d", c.JWT.DurationMinutes)
	}
	if c.IsProduction() && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 bytes in production")
	}
	return nil
}

// TokenLifetime returns the configured token lifetime.
func (c *Config) TokenLifetime() time.Duration {
	return time.Duration(c.JWT.DurationMinutes) * time.Minute
}

// IsProduction reports whether the service runs with APP_ENV=prod.
func (c *Config) IsProduction() bool {
	return c.Env == "prod"
}

// Addr returns the server listen address.
func (c *Config) Addr() string {
	return ":" + c.ServerPort
}
