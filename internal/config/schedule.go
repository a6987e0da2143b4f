package config

import (
	"os"
	"strconv"
)

const (
	platformTimeoutSecondsEnv = "NOTIFY_PLATFORM_TIMEOUT_SECONDS"
	platformMaxRetriesEnv     = "NOTIFY_PLATFORM_MAX_RETRIES"

	defaultPlatformTimeoutSeconds = 30
	defaultPlatformMaxRetries     = 3
)

type ScheduleConfig struct {
	PlatformTimeoutSeconds int
	PlatformMaxRetries     int
}

func LoadScheduleConfig() *ScheduleConfig {
	timeout := defaultPlatformTimeoutSeconds
	if v := os.Getenv(platformTimeoutSecondsEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			timeout = parsed
		}
	}

	maxRetries := defaultPlatformMaxRetries
	if v := os.Getenv(platformMaxRetriesEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxRetries = parsed
		}
	}

	return &ScheduleConfig{
		PlatformTimeoutSeconds: timeout,
		PlatformMaxRetries:     maxRetries,
	}
}
