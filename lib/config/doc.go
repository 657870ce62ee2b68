// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads jomtimer configuration.
//
// Configuration comes from a single file named by either the
// JOMTIMER_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no discovery and no search path.
//
// Files ending in .jsonc or .json are parsed as JSON with comments and
// trailing commas allowed; anything else is YAML. Both formats use the
// same field names:
//
//	tick_interval: 1s
//	board:
//	  max_timers: 10
//	  start_time: "00:00:00"
//	  alarm: "00:00:30"
//	timers:
//	  - id: kitchen
//	    time: "12:00:00"
//	    autostart: true
//	log:
//	  level: info
//	journal:
//	  path: ${HOME}/.cache/jomtimer/events.cbor.zst
//
// ${VAR} and ${VAR:-default} are expanded in journal.path after
// loading. No other environment variables override config values.
package config
