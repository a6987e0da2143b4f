package config

func ValidateForRun(cfg *Config) error {
	if cfg.NotifyPlatformURL == "" {
		return ErrNotifyPlatformURLMissing
	}
	return cfg.Redis.Validate()
}
