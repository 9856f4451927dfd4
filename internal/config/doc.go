// Package config holds the editor settings for a ctext session.
//
// Settings come from built-in defaults overlaid by a single file. The file
// format follows its extension:
//
//	.toml          TOML (github.com/pelletier/go-toml/v2)
//	.yaml, .yml    YAML (gopkg.in/yaml.v3)
//
// Both formats use the same keys:
//
//	undo_debug     log every undo entry (false)
//	max_undo       undo groups kept (1000)
//	shiftwidth     columns shifted by < and > (2)
//	tabstop        columns inserted by Tab (8)
//	ignorecase     case-insensitive searches (false)
//	number         show line numbers (false)
//	shell          shell used by ! commands (/bin/sh)
//	shell_timeout  limit on a ! command, e.g. "30s"
//	log_level      debug, info, warn or error (info)
//	state_file     JSON file holding registers and marks between sessions
//	mode           key processor, vi or normal (vi)
//
// Unknown keys are rejected so that typos surface as parse errors.
//
// A Watcher reloads the file when it changes and delivers the new Config
// on a channel that the host drains on its own goroutine.
package config
