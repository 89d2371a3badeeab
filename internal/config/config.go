package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Storage   StorageConfig
	Logging   LoggingConfig
	Discovery DiscoveryConfig
	Nearby    NearbyConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	Env             string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	// StoreTimeout bounds every store call made on behalf of a request.
	StoreTimeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	CacheTTL time.Duration
}

// JWTConfig holds the secret shared with the external auth service.
// An empty secret switches identity resolution to the X-Firebase-UID header.
type JWTConfig struct {
	AccessSecret string
}

type StorageConfig struct {
	Type             string
	SeedDemoProfiles bool
}

type LoggingConfig struct {
	Level string
}

type DiscoveryConfig struct {
	DefaultLimit  int
	MaxLimit      int
	DefaultMinAge int
	DefaultMaxAge int
}

type NearbyConfig struct {
	DefaultRadiusMeters float64
	MaxRadiusMeters     float64
	DefaultLimit        int
	MaxLimit            int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second)

	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_STORE_TIMEOUT", 5*time.Second)

	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_CACHE_TTL", 5*time.Minute)

	v.SetDefault("STORAGE_TYPE", StorageMemory)
	v.SetDefault("SEED_DEMO_PROFILES", false)
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DISCOVERY_DEFAULT_LIMIT", 50)
	v.SetDefault("DISCOVERY_MAX_LIMIT", 50)
	v.SetDefault("DISCOVERY_DEFAULT_MIN_AGE", 18)
	v.SetDefault("DISCOVERY_DEFAULT_MAX_AGE", 50)

	v.SetDefault("NEARBY_DEFAULT_RADIUS_METERS", 50_000)
	v.SetDefault("NEARBY_MAX_RADIUS_METERS", 500_000)
	v.SetDefault("NEARBY_DEFAULT_LIMIT", 20)
	v.SetDefault("NEARBY_MAX_LIMIT", 100)
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()
	setDefaults(v)

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = v.ReadInConfig()

	config := &Config{
		Server: ServerConfig{
			Host:            v.GetString("SERVER_HOST"),
			Port:            v.GetInt("SERVER_PORT"),
			Env:             v.GetString("ENV"),
			ReadTimeout:     v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("SERVER_WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetInt("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			DBName:       v.GetString("DB_NAME"),
			SSLMode:      v.GetString("DB_SSL_MODE"),
			StoreTimeout: v.GetDuration("DB_STORE_TIMEOUT"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			CacheTTL: v.GetDuration("REDIS_CACHE_TTL"),
		},
		JWT: JWTConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Storage: StorageConfig{
			Type:             strings.ToLower(v.GetString("STORAGE_TYPE")),
			SeedDemoProfiles: v.GetBool("SEED_DEMO_PROFILES"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Discovery: DiscoveryConfig{
			DefaultLimit:  v.GetInt("DISCOVERY_DEFAULT_LIMIT"),
			MaxLimit:      v.GetInt("DISCOVERY_MAX_LIMIT"),
			DefaultMinAge: v.GetInt("DISCOVERY_DEFAULT_MIN_AGE"),
			DefaultMaxAge: v.GetInt("DISCOVERY_DEFAULT_MAX_AGE"),
		},
		Nearby: NearbyConfig{
			DefaultRadiusMeters: v.GetFloat64("NEARBY_DEFAULT_RADIUS_METERS"),
			MaxRadiusMeters:     v.GetFloat64("NEARBY_MAX_RADIUS_METERS"),
			DefaultLimit:        v.GetInt("NEARBY_DEFAULT_LIMIT"),
			MaxLimit:            v.GetInt("NEARBY_MAX_LIMIT"),
		},
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageMemory:
	case StoragePostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name is required")
		}
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
	if c.JWT.AccessSecret != "" && len(c.JWT.AccessSecret) < 32 {
		return fmt.Errorf("JWT access secret must be at least 32 characters")
	}
	if c.Discovery.DefaultMinAge < 18 || c.Discovery.DefaultMaxAge < c.Discovery.DefaultMinAge {
		return fmt.Errorf("invalid discovery age defaults %d-%d", c.Discovery.DefaultMinAge, c.Discovery.DefaultMaxAge)
	}
	if c.Discovery.DefaultLimit < 1 || c.Discovery.MaxLimit < c.Discovery.DefaultLimit {
		return fmt.Errorf("invalid discovery limits")
	}
	if c.Nearby.DefaultRadiusMeters <= 0 || c.Nearby.MaxRadiusMeters < c.Nearby.DefaultRadiusMeters {
		return fmt.Errorf("invalid nearby radius")
	}
	if c.Nearby.DefaultLimit < 1 || c.Nearby.MaxLimit < c.Nearby.DefaultLimit {
		return fmt.Errorf("invalid nearby limits")
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Enabled reports whether a Redis host is configured.
func (c *RedisConfig) Enabled() bool {
	return c.Host != ""
}

// GetAddr returns the HTTP listen address
func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
