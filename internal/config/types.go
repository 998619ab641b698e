package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
}

// Default values.
const (
	DefaultLogDir      = "~/.doable"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultColumnWidth = 32
	MinColumnWidth     = 20
	DefaultWorkers     = 2
	DefaultQueueSize   = 16
)

// Config holds the full configuration for doable.
type Config struct {
	// Board to start from; empty uses the built-in sample board.
	SeedFile string `toml:"seed_file"`

	// Session logs
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Terminal UI
	Mouse       bool `toml:"mouse"`
	ColumnWidth int  `toml:"column_width"`

	// Change notification
	Notify NotifyConfig `toml:"notify"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// NotifyConfig configures where board snapshots are sent after each change.
type NotifyConfig struct {
	SnapshotFile string `toml:"snapshot_file"`
	HookCommand  string `toml:"hook_command"`
	RedisAddr    string `toml:"redis_addr"`
	RedisChannel string `toml:"redis_channel"`
	RedisKey     string `toml:"redis_key"`
	Workers      int    `toml:"workers"`
	QueueSize    int    `toml:"queue_size"`
}
