package config

import (
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	NotifyPlatformURL string
	Port              string
	LogLevel          slog.Level
	Redis             *RedisConfig
	Schedule          *ScheduleConfig
	Timing            *TimingConfig
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		NotifyPlatformURL: os.Getenv("NOTIFY_PLATFORM_URL"),
		Port:              port,
		LogLevel:          parseLogLevel(os.Getenv("LOG_LEVEL")),
		Redis:             redisConfig,
		Schedule:          LoadScheduleConfig(),
		Timing:            LoadTimingConfig(),
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
