// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"runtime"
)

// Version information (overridden at build time with -ldflags -X).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

const usageText = `jiyuu - chat with a language model that runs on your machine

Usage:
  jiyuu [tui]                     Start the chat TUI (default)
  jiyuu chat                      Line-oriented chat
  jiyuu ask "question"            Ask one question and print the answer
  jiyuu config [show]             Print the effective configuration
  jiyuu config path               Print the config file location
  jiyuu config init [--force]     Write a default config file
  jiyuu config keys               List config keys
  jiyuu config get <key>          Print one value
  jiyuu config set <key> <value>  Change one value in the config file
  jiyuu doctor                    Check Ollama, the model and the data directory
  jiyuu version                   Show version information
  jiyuu help                      Show this help

Global flags:
  -m, --model NAME     Model to load (default: %s)
      --url URL        Ollama server address
      --locale TAG     Interface language (en, es, ja, ...)
  -c, --config PATH    Config file (default: ~/.jiyuu/config.toml)
  -d, --debug          Debug logging

Chat commands (jiyuu chat):
  /clear  /reload  /lang [code]  /copy  /quit

TUI keys:
  enter send   alt+enter newline   esc stop   ctrl+l clear
  ctrl+r reload   ctrl+y copy code   f1 info   ctrl+c quit

Environment:
  JIYUU_MODEL, JIYUU_OLLAMA_URL, JIYUU_LOCALE, JIYUU_LOG_LEVEL, JIYUU_LOG_FILE

Version: %s
`

// PrintUsage writes the help text.
func PrintUsage(w io.Writer, defaultModel string) {
	fmt.Fprintf(w, usageText, defaultModel, Version)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "jiyuu version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
