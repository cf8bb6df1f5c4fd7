package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mcdev12/bpl/go/internal/roster"
)

type Config struct {
	Server struct {
		Port           int      `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Auth struct {
		Username     string        `yaml:"username"`
		PasswordHash string        `yaml:"password_hash"`
		Secret       string        `yaml:"secret"`
		SessionTTL   time.Duration `yaml:"session_ttl"`
		SecureCookie bool          `yaml:"secure_cookie"`
	} `yaml:"auth"`

	Roster struct {
		ReorderMode string `yaml:"reorder_mode"`
	} `yaml:"roster"`

	Uploads struct {
		// Dir is the Pebble directory for uploaded images. Empty keeps them in
		// memory.
		Dir string `yaml:"dir"`
	} `yaml:"uploads"`

	NATS struct {
		// URL enables live roster updates over websockets when set.
		URL string `yaml:"url"`
	} `yaml:"nats"`
}

func defaultConfig() *Config {
	var c Config
	c.Server.Port = 8080
	c.Server.AllowedOrigins = []string{"*"}
	c.Auth.SessionTTL = 12 * time.Hour
	c.Roster.ReorderMode = string(roster.ReorderAuthoritative)
	return &c
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// loadConfig reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	config.applyEnv()
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnvAsInt("PORT", c.Server.Port)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = strings.Split(origins, ",")
	}
	c.Auth.Username = getEnv("AUTH_USERNAME", c.Auth.Username)
	c.Auth.PasswordHash = getEnv("AUTH_PASSWORD_HASH", c.Auth.PasswordHash)
	c.Auth.Secret = getEnv("AUTH_SECRET", c.Auth.Secret)
	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			c.Auth.SessionTTL = d
		}
	}
	c.Roster.ReorderMode = getEnv("ROSTER_REORDER_MODE", c.Roster.ReorderMode)
	c.Uploads.Dir = getEnv("UPLOADS_DIR", c.Uploads.Dir)
	c.NATS.URL = getEnv("NATS_URL", c.NATS.URL)
}

func (c *Config) validate() error {
	if c.Auth.Username == "" || c.Auth.PasswordHash == "" {
		return errors.New("auth.username and auth.password_hash are required")
	}
	if c.Auth.SessionTTL <= 0 {
		return errors.New("auth.session_ttl must be positive")
	}
	if _, err := roster.ParseReorderMode(c.Roster.ReorderMode); err != nil {
		return fmt.Errorf("roster.reorder_mode: %w", err)
	}
	return nil
}
