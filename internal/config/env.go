package config

import "os"

// loadFromEnv overrides config from DOABLE_* environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	str := func(env, field string, target *string) {
		if v := os.Getenv(env); v != "" {
			*target = v
			setSource(sources, field, SourceEnv)
		}
	}
	boolean := func(env, field string, target *bool) {
		if v := os.Getenv(env); v != "" {
			*target = boolFromString(v)
			setSource(sources, field, SourceEnv)
		}
	}
	integer := func(env, field string, target *int) {
		if v := os.Getenv(env); v != "" {
			if i, ok := intFromString(v); ok {
				*target = i
				setSource(sources, field, SourceEnv)
			}
		}
	}

	str("DOABLE_SEED", "seed_file", &cfg.SeedFile)
	str("DOABLE_LOG_DIR", "log_dir", &cfg.LogDir)
	str("DOABLE_LOG_LEVEL", "log_level", &cfg.LogLevel)
	str("DOABLE_LOG_FORMAT", "log_format", &cfg.LogFormat)
	boolean("DOABLE_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps)
	boolean("DOABLE_LOG_CALLER", "log_caller", &cfg.LogCaller)
	boolean("DOABLE_MOUSE", "mouse", &cfg.Mouse)
	integer("DOABLE_COLUMN_WIDTH", "column_width", &cfg.ColumnWidth)

	str("DOABLE_SNAPSHOT", "notify.snapshot_file", &cfg.Notify.SnapshotFile)
	str("DOABLE_HOOK", "notify.hook_command", &cfg.Notify.HookCommand)
	str("DOABLE_REDIS_ADDR", "notify.redis_addr", &cfg.Notify.RedisAddr)
	str("DOABLE_REDIS_CHANNEL", "notify.redis_channel", &cfg.Notify.RedisChannel)
	str("DOABLE_REDIS_KEY", "notify.redis_key", &cfg.Notify.RedisKey)
	integer("DOABLE_NOTIFY_WORKERS", "notify.workers", &cfg.Notify.Workers)
	integer("DOABLE_NOTIFY_QUEUE", "notify.queue_size", &cfg.Notify.QueueSize)
}
