package config

import "flag"

// parseFlags defines and parses CLI flags. Only flags given on the
// command line override cfg. If sources is non-nil, it tracks the source
// of each value.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("doable", flag.ContinueOnError)
	}

	type flagBinding struct {
		field string
		apply func()
	}
	bindings := make(map[string]flagBinding)

	str := func(name, field string, target *string, usage string) {
		v := fs.String(name, *target, usage)
		bindings[name] = flagBinding{field: field, apply: func() { *target = *v }}
	}
	boolean := func(name, field string, target *bool, usage string) {
		v := fs.Bool(name, *target, usage)
		bindings[name] = flagBinding{field: field, apply: func() { *target = *v }}
	}
	integer := func(name, field string, target *int, usage string) {
		v := fs.Int(name, *target, usage)
		bindings[name] = flagBinding{field: field, apply: func() { *target = *v }}
	}

	// Paths
	str("seed", "seed_file", &cfg.SeedFile, "Board file to start from (.json, .yaml, .toml)")
	str("log-dir", "log_dir", &cfg.LogDir, "Log directory")

	// Logging
	str("log-level", "log_level", &cfg.LogLevel, "Log level (debug, info, warn, error)")
	str("log-format", "log_format", &cfg.LogFormat, "Log format (text, json, logfmt)")
	boolean("log-timestamps", "log_timestamps", &cfg.LogTimestamps, "Show timestamps in logs")
	boolean("log-caller", "log_caller", &cfg.LogCaller, "Show caller location in logs")

	// Terminal UI
	boolean("mouse", "mouse", &cfg.Mouse, "Enable mouse input")
	noMouse := fs.Bool("no-mouse", false, "Disable mouse input (keyboard only)")
	bindings["no-mouse"] = flagBinding{field: "mouse", apply: func() {
		if *noMouse {
			cfg.Mouse = false
		}
	}}
	integer("column-width", "column_width", &cfg.ColumnWidth, "Width of each board column")

	// Notification
	str("snapshot", "notify.snapshot_file", &cfg.Notify.SnapshotFile, "Write a JSON snapshot of the board here after each change")
	str("hook", "notify.hook_command", &cfg.Notify.HookCommand, "Command to run after each change")
	str("redis-addr", "notify.redis_addr", &cfg.Notify.RedisAddr, "Redis address for publishing snapshots")
	str("redis-channel", "notify.redis_channel", &cfg.Notify.RedisChannel, "Redis channel for snapshot messages")
	str("redis-key", "notify.redis_key", &cfg.Notify.RedisKey, "Redis key holding the latest snapshot")
	integer("notify-workers", "notify.workers", &cfg.Notify.Workers, "Sinks notified concurrently")
	integer("notify-queue", "notify.queue_size", &cfg.Notify.QueueSize, "Pending snapshots kept before coalescing")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Apply only the flags that were set so lower layers survive.
	fs.Visit(func(f *flag.Flag) {
		binding, ok := bindings[f.Name]
		if !ok {
			return
		}
		binding.apply()
		setSource(sources, binding.field, SourceFlag)
	})

	return nil
}
