package config

import "errors"

var (
	ErrRedisAddrMissing         = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB           = errors.New("REDIS_DB must be a valid integer")
	ErrNotifyPlatformURLMissing = errors.New("NOTIFY_PLATFORM_URL is required")
)
