package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# doable configuration file
# Values can be overridden by DOABLE_* environment variables or CLI flags

# Board to start from (.json, .yaml, .yml or .toml). Empty uses the sample board.
# seed_file = "board.json"

# Log directory (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.doable"

# Logging: debug, info, warn, error; text, json or logfmt
log_level = "info"
log_format = "text"
log_timestamps = true
log_caller = false

# Terminal UI
mouse = true
column_width = 32

[notify]
# Write a JSON snapshot after each change (the file can seed the next session)
# snapshot_file = "board.snapshot.json"

# Command run after each change with: <snapshot-path> <task-count> <label>
# hook_command = "/path/to/hook.sh"

# Publish snapshots to Redis
# redis_addr = "localhost:6379"
# redis_channel = "doable:board:changes"
# redis_key = "doable:board"

# Sinks notified concurrently, and pending snapshots kept before coalescing
workers = 2
queue_size = 16
`
}
