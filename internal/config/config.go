package config

import (
	"time"

	"github.com/spf13/viper"
)

// DefaultDatabasePath is used when DATABASE_PATH is not set.
const DefaultDatabasePath = "./mimiru.db"

type (
	Config struct {
		HTTP
		Database
		Global
		Auth
		Cache
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Auth struct {
		SessionSecret   string
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool
		CSRFSecret      string
	}
	Cache struct {
		Enabled       bool
		TTL           time.Duration
		SweepSchedule string // cron format
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8288)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("auth_session_secret", "") // Auto-generated if empty
	v.SetDefault("auth_session_lifetime", "24h")
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_secure_cookies", true)
	v.SetDefault("auth_csrf_secret", "")

	// Page cache defaults
	v.SetDefault("cache_enabled", true)
	v.SetDefault("cache_ttl", "10m")
	v.SetDefault("cache_sweep_schedule", "*/5 * * * *") // Every 5 minutes

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Auth: Auth{
			SessionSecret:   v.GetString("AUTH_SESSION_SECRET"),
			SessionLifetime: v.GetDuration("AUTH_SESSION_LIFETIME"),
			BcryptCost:      v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies:   v.GetBool("AUTH_SECURE_COOKIES"),
			CSRFSecret:      v.GetString("AUTH_CSRF_SECRET"),
		},
		Cache: Cache{
			Enabled:       v.GetBool("CACHE_ENABLED"),
			TTL:           v.GetDuration("CACHE_TTL"),
			SweepSchedule: v.GetString("CACHE_SWEEP_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}
