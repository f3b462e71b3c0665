// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for campus-tui.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - APIConfig: Assistant service endpoint and timeout
//   - StorageConfig: Client state persistence backend and directory
//   - UIConfig: Theme, metadata display, and suggestion chips
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CAMPUS_*)
//   - ~/.campus-tui/config.toml
//   - ~/.campus-tui/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	base := cfg.API.BaseURL
//	backend := cfg.Storage.Backend
package config
