// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.doable/doable.toml or OS-specific config directory)
// 3. Project config file (doable.toml or .doable.toml in the working directory)
// 4. Environment variables (DOABLE_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.doable/doable.toml (preferred)
// - Windows: %APPDATA%\doable\doable.toml
// - macOS: ~/Library/Application Support/doable/doable.toml
// - Linux/BSD: $XDG_CONFIG_HOME/doable/doable.toml or ~/.config/doable/doable.toml
//
// Project-level config locations (overrides user config):
// - ./doable.toml (preferred)
// - ./.doable.toml
package config
