// internal/config/config.go
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	TMDB     TMDBConfig     `mapstructure:"tmdb"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // "mysql" or "sqlite"
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	DBname          string `mapstructure:"dbname"`
	File            string `mapstructure:"file"` // sqlite only
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Addr         string `mapstructure:"addr"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	DialTimeout  int    `mapstructure:"dial_timeout"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	PoolTimeout  int    `mapstructure:"pool_timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type JWTConfig struct {
	SigningKey       string        `mapstructure:"signing_key"`
	Issuer           string        `mapstructure:"issuer"`
	Audience         string        `mapstructure:"audience"`
	TTLMinutes       int           `mapstructure:"ttl_minutes"`
	CacheDuration    time.Duration `mapstructure:"cache_duration"`
	MaxLoginAttempts int           `mapstructure:"max_login_attempts"`
	LockDuration     time.Duration `mapstructure:"lock_duration"`
}

// TTL is the access token lifetime.
func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

type TMDBConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

func LoadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	setDefaults()

	// Environment variables override file values (e.g. the TMDB API key).
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("config file not found, using defaults and environment variables")
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// App defaults
	viper.SetDefault("app.name", "filmweb")
	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.mode", "debug")

	// Database defaults
	viper.SetDefault("database.driver", "mysql")
	viper.SetDefault("database.host", "127.0.0.1")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.file", "filmweb.db")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Redis defaults
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.pool_size", 10)
	viper.SetDefault("redis.dial_timeout", 10)
	viper.SetDefault("redis.read_timeout", 30)
	viper.SetDefault("redis.write_timeout", 30)
	viper.SetDefault("redis.pool_timeout", 30)

	// Log defaults
	viper.SetDefault("log.level", "info")

	// JWT defaults
	viper.SetDefault("jwt.issuer", "filmweb")
	viper.SetDefault("jwt.audience", "filmweb-web")
	viper.SetDefault("jwt.ttl_minutes", 60)
	viper.SetDefault("jwt.cache_duration", time.Second*60)
	viper.SetDefault("jwt.max_login_attempts", 5)
	viper.SetDefault("jwt.lock_duration", time.Minute*5)

	// TMDB defaults
	viper.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	viper.SetDefault("tmdb.timeout", 10*time.Second)
	viper.SetDefault("tmdb.cache_ttl", 5*time.Minute)

	// CORS defaults: the Vite dev server the frontend runs on
	viper.SetDefault("cors.allow_origins", []string{"http://localhost:5173"})
}

func validateConfig(cfg *Config) error {
	if cfg.App.Name == "" {
		return fmt.Errorf("app name cannot be empty")
	}
	if cfg.App.Port == "" {
		return fmt.Errorf("app port cannot be empty")
	}

	switch cfg.Database.Driver {
	case "mysql":
		if cfg.Database.Host == "" {
			return fmt.Errorf("database host cannot be empty")
		}
		if cfg.Database.Username == "" {
			return fmt.Errorf("database username cannot be empty")
		}
		if cfg.Database.Password == "" {
			return fmt.Errorf("database password cannot be empty")
		}
		if cfg.Database.DBname == "" {
			return fmt.Errorf("database name cannot be empty")
		}
	case "sqlite":
		if cfg.Database.File == "" {
			return fmt.Errorf("database file cannot be empty")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	if cfg.Redis.Addr == "" {
		return fmt.Errorf("redis address cannot be empty")
	}

	if cfg.JWT.SigningKey == "" {
		return fmt.Errorf("jwt signing key cannot be empty")
	}
	if len(cfg.JWT.SigningKey) < 32 {
		return fmt.Errorf("jwt signing key must be at least 32 characters")
	}
	if cfg.JWT.Issuer == "" {
		return fmt.Errorf("jwt issuer cannot be empty")
	}
	if cfg.JWT.Audience == "" {
		return fmt.Errorf("jwt audience cannot be empty")
	}
	if cfg.JWT.TTLMinutes <= 0 {
		return fmt.Errorf("jwt ttl must be positive")
	}
	if cfg.JWT.MaxLoginAttempts <= 0 {
		return fmt.Errorf("jwt max login attempts must be positive")
	}
	if cfg.JWT.LockDuration <= 0 {
		return fmt.Errorf("jwt lock duration must be positive")
	}

	if cfg.TMDB.BaseURL == "" {
		return fmt.Errorf("tmdb base url cannot be empty")
	}
	if cfg.TMDB.APIKey == "" {
		return fmt.Errorf("tmdb api key cannot be empty")
	}

	return nil
}
