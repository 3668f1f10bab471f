// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jeranaias/jiyuu-tui/internal/config"
)

// ConfigFile returns the config file args point at.
func ConfigFile(args Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	return config.ConfigPath()
}

// LoadConfig loads the effective configuration: the file (or defaults if
// there is none), environment overrides, then command line flags.
func LoadConfig(args Args) (*config.Config, string, error) {
	path, err := ConfigFile(args)
	if err != nil {
		return nil, "", err
	}

	var cfg *config.Config
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		cfg = config.Default()
		cfg.ApplyEnvOverrides()
	} else {
		cfg, err = config.LoadFromPath(path)
		if err != nil {
			return nil, path, err
		}
	}

	if err := ApplyFlags(cfg, args); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// ApplyFlags overlays command line flags on cfg. It is also applied to
// every live reload so flags keep winning over the file.
func ApplyFlags(cfg *config.Config, args Args) error {
	if args.Model != "" {
		cfg.Model.ID = args.Model
	}
	if args.URL != "" {
		cfg.Ollama.URL = args.URL
	}
	if args.Locale != "" {
		cfg.UI.Locale = args.Locale
	}
	if args.Debug {
		cfg.Logging.Level = "debug"
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// RunConfig handles "jiyuu config".
func RunConfig(args Args, out io.Writer) error {
	path, err := ConfigFile(args)
	if err != nil {
		return &CommandError{Command: "config", Action: args.Subcommand, Err: err}
	}

	switch args.Subcommand {
	case "path":
		fmt.Fprintln(out, path)
		return nil

	case "keys":
		for _, k := range config.Keys() {
			fmt.Fprintln(out, k)
		}
		return nil

	case "init":
		if _, err := os.Stat(path); err == nil && !args.Force {
			return &CommandError{Command: "config", Action: "init",
				Err: fmt.Errorf("%s already exists (use --force to overwrite)", path)}
		}
		if err := config.SaveTo(config.Default(), path); err != nil {
			return &CommandError{Command: "config", Action: "init", Err: err}
		}
		fmt.Fprintf(out, "%s %s\n", SuccessStyle.Render("Wrote"), path)
		return nil

	case "show", "":
		cfg, _, err := LoadConfig(args)
		if err != nil {
			return &CommandError{Command: "config", Action: "show", Err: err}
		}
		data, err := cfg.Encode()
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err

	case "get":
		cfg, _, err := LoadConfig(args)
		if err != nil {
			return &CommandError{Command: "config", Action: "get", Err: err}
		}
		v, err := cfg.Get(args.Rest[0])
		if err != nil {
			return &CommandError{Command: "config", Action: "get", Err: err}
		}
		fmt.Fprintln(out, v)
		return nil

	case "set":
		if err := setConfigValue(path, args.Rest[0], args.Rest[1]); err != nil {
			return &CommandError{Command: "config", Action: "set", Err: err}
		}
		fmt.Fprintf(out, "%s %s = %s\n", SuccessStyle.Render("Set"), args.Rest[0], args.Rest[1])
		return nil
	}
	return &UsageError{Message: "unknown config subcommand: " + args.Subcommand}
}

// setConfigValue edits one key of the file at path. Environment overrides
// are not written back.
func setConfigValue(path, key, value string) error {
	cfg, err := config.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	return config.SaveTo(cfg, path)
}
