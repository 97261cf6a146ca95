package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Addr string

	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration

	AllowedOrigins []string

	DB DBConfig
}

type DBConfig struct {
	Name     string
	User     string
	Password string
	Host     string
	Port     string
}

func (c DBConfig) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

// Load reads configuration from the environment, with a .env file as a
// convenience for local development.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, relying on environment")
	}

	accessSecret := os.Getenv("JWT_SECRET_ACCESS_TOKEN")
	refreshSecret := os.Getenv("JWT_SECRET_REFRESH_TOKEN")
	if accessSecret == "" || refreshSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET_ACCESS_TOKEN and JWT_SECRET_REFRESH_TOKEN must be set")
	}

	cfg := Config{
		Addr:               envOr("HTTP_ADDR", "0.0.0.0:3000"),
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     time.Duration(envInt("JWT_ACCESS_TOKEN_EXPIRES_IN", 15)) * time.Minute,
		RefreshTokenTTL:    time.Duration(envInt("JWT_REFRESH_TOKEN_EXPIRES_IN", 7)) * 24 * time.Hour,
		AllowedOrigins:     splitOrigins(os.Getenv("ALLOWED_ORIGINS")),
		DB: DBConfig{
			Name:     os.Getenv("POSTGRES_DB"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Host:     envOr("POSTGRES_HOST", "localhost"),
			Port:     envOr("POSTGRES_PORT", "5432"),
		},
	}

	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:5173"}
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.Warnf("invalid value %q for %s, using %d", v, key, fallback)
		return fallback
	}
	return n
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			origins = append(origins, part)
		}
	}
	return origins
}
