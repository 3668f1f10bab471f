// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"
)

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser splits raw arguments into flags and positional arguments.
// It understands:
//   - Long flags: --flag value or --flag=value
//   - Short flags: -f value
//   - Boolean flags: --flag (names passed to NewArgParser never take a value)
//   - "--" ends flag parsing; everything after it is positional
type ArgParser struct {
	flags      map[string]string
	boolFlags  map[string]bool
	positional []string
	order      []string
}

// NewArgParser parses raw. Flags named in boolNames never consume the
// following argument.
//
//	p := NewArgParser([]string{"--debug", "ask", "--model", "phi3", "hi"}, "debug")
//	p.BoolFlag("debug")  // true
//	p.Flag("model")      // "phi3"
//	p.Positional(0)      // "ask"
func NewArgParser(raw []string, boolNames ...string) *ArgParser {
	isBool := make(map[string]bool, len(boolNames))
	for _, n := range boolNames {
		isBool[n] = true
	}

	p := &ArgParser{
		flags:     make(map[string]string),
		boolFlags: make(map[string]bool),
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]
		if arg == "--" {
			p.positional = append(p.positional, raw[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			p.positional = append(p.positional, arg)
			continue
		}

		name := strings.TrimLeft(arg, "-")
		if k, v, ok := strings.Cut(name, "="); ok {
			if isBool[k] {
				p.boolFlags[k] = v == "true" || v == "1"
			} else {
				p.flags[k] = v
			}
			p.order = append(p.order, k)
			continue
		}

		p.order = append(p.order, name)
		if !isBool[name] && i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "-") {
			p.flags[name] = raw[i+1]
			i++
			continue
		}
		p.boolFlags[name] = true
	}
	return p
}

// Flag returns the value of the first of names that was given.
func (p *ArgParser) Flag(names ...string) string {
	for _, n := range names {
		if v, ok := p.flags[n]; ok {
			return v
		}
	}
	return ""
}

// BoolFlag reports whether any of names was given as a boolean flag.
func (p *ArgParser) BoolFlag(names ...string) bool {
	for _, n := range names {
		if p.boolFlags[n] {
			return true
		}
	}
	return false
}

// Positional returns the positional argument at index, or "".
func (p *ArgParser) Positional(index int) string {
	if index < 0 || index >= len(p.positional) {
		return ""
	}
	return p.positional[index]
}

// PositionalFrom returns the positional arguments from index on.
func (p *ArgParser) PositionalFrom(index int) []string {
	if index >= len(p.positional) {
		return nil
	}
	return p.positional[index:]
}

// PositionalCount returns the number of positional arguments.
func (p *ArgParser) PositionalCount() int {
	return len(p.positional)
}

// Unknown returns the flags that are not in known, in the order given.
func (p *ArgParser) Unknown(known ...string) []string {
	ok := make(map[string]bool, len(known))
	for _, k := range known {
		ok[k] = true
	}
	var out []string
	for _, name := range p.order {
		if !ok[name] {
			out = append(out, name)
		}
	}
	return out
}

// =============================================================================
// COMMANDS
// =============================================================================

// Command is the top-level action selected on the command line.
type Command int

const (
	CmdTUI Command = iota
	CmdChat
	CmdAsk
	CmdConfig
	CmdDoctor
	CmdVersion
	CmdHelp
)

var commandNames = map[Command]string{
	CmdTUI:     "tui",
	CmdChat:    "chat",
	CmdAsk:     "ask",
	CmdConfig:  "config",
	CmdDoctor:  "doctor",
	CmdVersion: "version",
	CmdHelp:    "help",
}

// String returns the command name as typed.
func (c Command) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	return "unknown"
}

// Args holds parsed command line arguments.
type Args struct {
	// Global flags
	Model      string
	URL        string
	Locale     string
	ConfigPath string
	Debug      bool

	// Query is the question for ask, joined from its positional arguments.
	Query string

	// Subcommand is the config action (show, path, init, get, set).
	Subcommand string

	// Rest holds positional arguments after the subcommand.
	Rest []string

	// Force allows config init to overwrite an existing file.
	Force bool
}

var (
	valueFlags = []string{"model", "m", "url", "locale", "config", "c"}
	boolFlags  = []string{"debug", "d", "help", "h", "version", "v", "force"}
)

// Parse turns argv (without the program name) into a command and its
// arguments. An empty argv starts the TUI.
func Parse(argv []string) (Command, Args, error) {
	p := NewArgParser(argv, boolFlags...)

	if unknown := p.Unknown(append(valueFlags, boolFlags...)...); len(unknown) > 0 {
		return CmdHelp, Args{}, &UsageError{Message: fmt.Sprintf("unknown flag: --%s", unknown[0])}
	}

	args := Args{
		Model:      p.Flag("model", "m"),
		URL:        p.Flag("url"),
		Locale:     p.Flag("locale"),
		ConfigPath: p.Flag("config", "c"),
		Debug:      p.BoolFlag("debug", "d"),
		Force:      p.BoolFlag("force"),
	}

	if p.BoolFlag("help", "h") {
		return CmdHelp, args, nil
	}
	if p.BoolFlag("version", "v") {
		return CmdVersion, args, nil
	}

	switch name := p.Positional(0); name {
	case "", "tui":
		return CmdTUI, args, nil
	case "chat", "repl":
		return CmdChat, args, nil
	case "ask", "a":
		args.Query = strings.TrimSpace(strings.Join(p.PositionalFrom(1), " "))
		return CmdAsk, args, nil
	case "config", "cfg":
		args.Subcommand = p.Positional(1)
		if args.Subcommand == "" {
			args.Subcommand = "show"
		}
		args.Rest = p.PositionalFrom(2)
		return CmdConfig, args, validateConfigArgs(args)
	case "doctor":
		return CmdDoctor, args, nil
	case "version":
		return CmdVersion, args, nil
	case "help":
		return CmdHelp, args, nil
	default:
		return CmdHelp, args, unknownError("command", name)
	}
}

func validateConfigArgs(args Args) error {
	want := map[string]int{"show": 0, "path": 0, "init": 0, "keys": 0, "get": 1, "set": 2}
	n, ok := want[args.Subcommand]
	if !ok {
		return unknownError("config subcommand", args.Subcommand)
	}
	if len(args.Rest) != n {
		return &UsageError{Message: fmt.Sprintf("config %s takes %d argument(s)", args.Subcommand, n)}
	}
	return nil
}

func unknownError(what, name string) error {
	msg := fmt.Sprintf("unknown %s: %s", what, name)
	if s := SuggestCommand(name); s != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", s)
	}
	return &UsageError{Message: msg}
}
