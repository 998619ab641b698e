package config

import (
	"path/filepath"
	"strconv"
)

// NotifyEnabled reports whether any external notification sink is
// configured.
func (c *Config) NotifyEnabled() bool {
	n := c.Notify
	return n.SnapshotFile != "" || n.HookCommand != "" || n.RedisAddr != ""
}

// HookSnapshotPath returns the file the hook command receives. It is the
// snapshot file when one is configured, otherwise board.json in logDir.
func (c *Config) HookSnapshotPath(logDir string) string {
	if c.Notify.SnapshotFile != "" {
		return c.Notify.SnapshotFile
	}
	if logDir == "" {
		logDir = c.LogDir
	}
	return filepath.Join(logDir, "board.json")
}

// Fields returns the configuration keys in display order. Keys in the
// notify table are dotted, e.g. "notify.redis_addr".
func Fields() []string {
	return configFields()
}

// Value returns the value of a configuration key formatted for display,
// or "" for an unknown key.
func (c *Config) Value(name string) string {
	switch name {
	case "seed_file":
		return c.SeedFile
	case "log_dir":
		return c.LogDir
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return strconv.FormatBool(c.LogTimestamps)
	case "log_caller":
		return strconv.FormatBool(c.LogCaller)
	case "mouse":
		return strconv.FormatBool(c.Mouse)
	case "column_width":
		return strconv.Itoa(c.ColumnWidth)
	case "notify.snapshot_file":
		return c.Notify.SnapshotFile
	case "notify.hook_command":
		return c.Notify.HookCommand
	case "notify.redis_addr":
		return c.Notify.RedisAddr
	case "notify.redis_channel":
		return c.Notify.RedisChannel
	case "notify.redis_key":
		return c.Notify.RedisKey
	case "notify.workers":
		return strconv.Itoa(c.Notify.Workers)
	case "notify.queue_size":
		return strconv.Itoa(c.Notify.QueueSize)
	}
	return ""
}
