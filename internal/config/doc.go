// Package config loads the clicker TOML configuration.
//
// # Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/clicker/config.toml
//  3. If the file doesn't exist, fall back to Default()
//  4. Missing or blank fields take their default values
//
// # TOML Format
//
//	initial_clicks = 0
//	theme = "Dracula"
//	log_file = "~/.local/state/clicker/clicker.log"
//	log_level = "info"          # debug | info | warn | error
//	auto_click_every = "0s"     # Go duration; 0 disables
//
//	[feed]
//	transport = "none"          # none | gochannel | nats
//	nats_url = "nats://localhost:4222"
//	topic = "clicker.state"
//
// Tilde expansion is applied to the config path and log_file.
//
// # Error Handling
//
// Load returns errors for unreadable files, invalid TOML ("parse config"),
// negative initial_clicks or auto_click_every, and unknown log levels or
// feed transports. A missing file is not an error.
package config
