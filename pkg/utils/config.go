package utils

import (
	"errors"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Player   PlayerConfig
	Admin    AdminConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Path string
}

type RedisConfig struct {
	Addr           string
	Password       string
	DB             int
	CatalogKey     string
	CatalogChannel string
}

type PlayerConfig struct {
	PreviewSeconds  int
	UnlockTTLHours  int
	PollChecks      int
	PollIntervalSec int
	SessionTTLMin   int
}

type AdminConfig struct {
	Username string
	Password string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "syndl")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("SQLITE_PATH", "data/syndl.db")
	viper.SetDefault("REDIS_ADDR", "127.0.0.1:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CATALOG_KEY", "syndl_movies")
	viper.SetDefault("CATALOG_CHANNEL", "syndl_movies_changed")
	viper.SetDefault("PREVIEW_SECONDS", 60)
	viper.SetDefault("UNLOCK_TTL_HOURS", 24)
	viper.SetDefault("UNLOCK_POLL_CHECKS", 60)
	viper.SetDefault("UNLOCK_POLL_INTERVAL_SECONDS", 1)
	viper.SetDefault("SESSION_TTL_MINUTES", 60)
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD", "syndl2025")

	if err := viper.ReadInConfig(); err != nil {
		// A missing .env is fine, defaults and the environment cover it.
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Path: viper.GetString("SQLITE_PATH"),
		},
		Redis: RedisConfig{
			Addr:           viper.GetString("REDIS_ADDR"),
			Password:       viper.GetString("REDIS_PASSWORD"),
			DB:             viper.GetInt("REDIS_DB"),
			CatalogKey:     viper.GetString("CATALOG_KEY"),
			CatalogChannel: viper.GetString("CATALOG_CHANNEL"),
		},
		Player: PlayerConfig{
			PreviewSeconds:  viper.GetInt("PREVIEW_SECONDS"),
			UnlockTTLHours:  viper.GetInt("UNLOCK_TTL_HOURS"),
			PollChecks:      viper.GetInt("UNLOCK_POLL_CHECKS"),
			PollIntervalSec: viper.GetInt("UNLOCK_POLL_INTERVAL_SECONDS"),
			SessionTTLMin:   viper.GetInt("SESSION_TTL_MINUTES"),
		},
		Admin: AdminConfig{
			Username: viper.GetString("ADMIN_USERNAME"),
			Password: viper.GetString("ADMIN_PASSWORD"),
		},
	}

	return config, nil
}
