package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultCORSOrigins = "http://localhost:5173,http://127.0.0.1:5173"

type Config struct {
	Port        string
	DBPath      string
	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins []string
	LogLevel    log.Level
	// Location decides which calendar day the server considers "today".
	Location *time.Location
}

// ClientConfig is what the terminal client needs to reach the backend.
// An empty Token means guest mode.
type ClientConfig struct {
	APIURL string
	Token  string
	Home   string
}

// Load reads server settings from the environment, after loading .env if
// one exists in the working directory.
func Load() (Config, error) {
	v := newViper()
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_PATH", "./data/roseboard.db")
	v.SetDefault("JWT_SECRET", "change-this-secret")
	v.SetDefault("TOKEN_TTL_HOURS", 72)
	v.SetDefault("CORS_ORIGINS", defaultCORSOrigins)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TIMEZONE", "Local")

	level, err := log.ParseLevel(v.GetString("LOG_LEVEL"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}
	location, err := time.LoadLocation(v.GetString("TIMEZONE"))
	if err != nil {
		return Config{}, fmt.Errorf("load TIMEZONE: %w", err)
	}
	ttlHours := v.GetInt("TOKEN_TTL_HOURS")
	if ttlHours <= 0 {
		ttlHours = 72
	}

	return Config{
		Port:        v.GetString("PORT"),
		DBPath:      v.GetString("DB_PATH"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		TokenTTL:    time.Duration(ttlHours) * time.Hour,
		CORSOrigins: splitList(v.GetString("CORS_ORIGINS"), splitList(defaultCORSOrigins, nil)),
		LogLevel:    level,
		Location:    location,
	}, nil
}

func LoadClient() (ClientConfig, error) {
	v := newViper()
	v.SetDefault("ROSEBOARD_API_URL", "http://localhost:8080")
	v.SetDefault("ROSEBOARD_TOKEN", "")
	v.SetDefault("ROSEBOARD_HOME", "")

	home := v.GetString("ROSEBOARD_HOME")
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return ClientConfig{}, fmt.Errorf("failed to get home directory: %w", err)
		}
		home = filepath.Join(userHome, ".roseboard")
	}

	return ClientConfig{
		APIURL: strings.TrimRight(v.GetString("ROSEBOARD_API_URL"), "/"),
		Token:  strings.TrimSpace(v.GetString("ROSEBOARD_TOKEN")),
		Home:   home,
	}, nil
}

// NewLogger builds the process logger at the configured level.
func NewLogger(level log.Level, prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
	})
}

func newViper() *viper.Viper {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitList(value string, fallback []string) []string {
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
