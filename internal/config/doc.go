// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for studysync.
//
// Supports both TOML and JSON configuration formats, with defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: top-level settings
//   - APIConfig: REST and AI bot endpoints, timeouts, rate limit, list cache
//   - StorageConfig: session persistence backend and token sealing
//   - UIConfig, LogConfig: presentation and logging
//
// # Configuration Precedence
//
//   - Environment variables (STUDYSYNC_*)
//   - ~/.studysync/config.toml
//   - ~/.studysync/config.json
//   - Built-in defaults
//
// STUDYSYNC_HOME relocates the whole ~/.studysync directory.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
//	}
//	client := api.NewClient(cfg.API.BaseURL)
package config
