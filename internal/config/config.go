package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Server struct {
		Host      string `json:"host"`
		Port      int    `json:"port"`
		Subpath   string `json:"subpath"`
		JWTSecret string `json:"jwtSecret"`
	} `json:"server"`
	Postgres struct {
		DSN string `json:"dsn"`
	} `json:"postgres"`
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
	Log struct {
		Level  string `json:"level"`
		Format string `json:"format"` // "text" or "json"
	} `json:"log"`
	Recommend RecommendConfig `json:"recommend"`
}

// RecommendConfig tunes the recommendation endpoint.
type RecommendConfig struct {
	Limit           int `json:"limit"`
	CacheTTLSeconds int `json:"cache_ttl_seconds"`
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// LoadConfig reads the JSON config from disk, then applies environment
// overrides (singleton).
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		raw, err := os.ReadFile(path)
		if err != nil {
			cfgErr = fmt.Errorf("failed to read config file: %w", err)
			return
		}
		var c Config
		if err := json.Unmarshal(raw, &c); err != nil {
			cfgErr = fmt.Errorf("invalid config format: %w", err)
			return
		}
		// .env is optional; plain environment variables still apply without it
		_ = godotenv.Load()
		applyEnv(&c)
		applyDefaults(&c)
		if c.Server.JWTSecret == "" {
			cfgErr = errors.New("jwtSecret must be set in config or SPARKS_JWT_SECRET")
			return
		}
		cfg = &c
	})
	return cfg, cfgErr
}

func applyEnv(c *Config) {
	if v := os.Getenv("SPARKS_JWT_SECRET"); v != "" {
		c.Server.JWTSecret = v
	}
	if v := os.Getenv("SPARKS_POSTGRES_DSN"); v != "" {
		c.Postgres.DSN = v
	}
	if v := os.Getenv("SPARKS_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("SPARKS_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("SPARKS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}

func applyDefaults(c *Config) {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Recommend.Limit <= 0 {
		c.Recommend.Limit = 8
	}
	if c.Recommend.CacheTTLSeconds < 0 {
		c.Recommend.CacheTTLSeconds = 0
	}
}

// ResetConfigForTest resets the singleton state (for testing only)
func ResetConfigForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}
