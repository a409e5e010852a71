// Package config loads the swiperefresh demo configuration file.
//
// # Overview
//
// One TOML file configures both the refresh engine and the terminal demo
// around it. Every field is optional; a missing file means defaults.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/swiperefresh/config.toml
//  3. If the file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing or empty, use defaults
//
// # TOML Format
//
//	log_file = "~/.local/state/swiperefresh/demo.log"
//
//	[refresh]
//	header_scroll_mode = "translate"   # translate, fixed-content, fixed-behind, fixed-front
//	footer_scroll_mode = "translate"
//	refresh_enabled = true
//	load_more_enabled = true
//	refresh_trigger_rate = 1.0
//	load_more_trigger_rate = 1.0
//	header_max_offset_rate = 2.0
//	footer_max_offset_rate = 2.0
//	drag_multiplier = 0.5
//	finish_delay_ms = 500
//	vibration_enabled = false
//	vibration_ms = 25
//	always_scrollable = false
//	animation_ms = 250
//	easing = "ease-out-cubic"          # linear, ease-out, ease-out-cubic, ease-in-out
//
//	[demo]
//	theme = "Nightfox"
//	row_height = 16                    # offset units per terminal row
//	indicator_rows = 3
//	page_size = 20
//	max_pages = 3
//	latency_ms = 800
//	fail_every = 0
//	auto_load = false
//	feed_url = ""                      # HTTP feed; empty uses the in-memory generator
//
// # Validation
//
// Unknown scroll modes and easing names fail with a "parse config" error.
// Engine values outside their legal ranges fail with a "validate config"
// error wrapping refresh.ErrInvalidConfig; they are never clamped silently.
// Non-positive demo sizes fall back to their defaults.
//
// # Path Expansion
//
// Paths beginning with ~ are expanded to the home directory and made
// absolute.
package config
