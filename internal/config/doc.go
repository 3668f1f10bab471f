// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for jiyuu.
//
// Configuration is TOML with defaults for every key, JIYUU_* environment
// overrides, and validation that reports all problems at once.
//
// # Configuration Precedence
//
//   - Environment variables (JIYUU_MODEL, JIYUU_OLLAMA_URL, JIYUU_LOCALE,
//     JIYUU_LOG_LEVEL, JIYUU_LOG_FILE)
//   - ~/.jiyuu/config.toml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Model.ID)
//
// Watch reloads the file as it is edited:
//
//	w, err := config.Watch(ctx, path, 0, func(cfg *config.Config, err error) {
//	    ...
//	})
package config
