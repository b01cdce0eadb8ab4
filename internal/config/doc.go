// Package config loads sermon's TOML configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/sermon/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or out of range, use defaults
//
// # TOML Format
//
//	port = "/dev/ttyUSB0"       # empty: first device found
//	baud_rate = 115200
//	read_timeout_ms = 1000
//	buffer_limit = 10000        # lines per pane, 0 = unbounded
//	main_ratio = 0.7            # share of the height for the main pane
//	reconnect_attempts = 3
//	log_file = "~/.local/state/sermon/sermon.log"
//
// Tilde expansion is applied to log_file.
//
// Missing config files are NOT an error. Command-line flags are layered on top
// with Config.Apply.
package config
