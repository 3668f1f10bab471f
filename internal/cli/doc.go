// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the jiyuu command line: argument parsing, the
// line-oriented chat REPL, one-shot questions, and config management.
//
// # Usage
//
//	cmd, args, err := cli.Parse(os.Args[1:])
//	switch cmd {
//	case cli.CmdChat:
//	    return cli.NewREPL(cli.REPLOptions{Controller: ctrl}).Run(ctx)
//	case cli.CmdAsk:
//	    return cli.RunAsk(ctx, ctrl, args.Query, os.Stdout, cli.AskOptions{})
//	}
//
// The TUI itself lives in internal/ui/chat; this package only decides when
// to start it.
package cli
