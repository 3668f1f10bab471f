// jiyuu - chat with a local model from the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/jiyuu-tui/internal/cli"
	"github.com/jeranaias/jiyuu-tui/internal/config"
	"github.com/jeranaias/jiyuu-tui/internal/i18n"
	"github.com/jeranaias/jiyuu-tui/internal/logging"
	"github.com/jeranaias/jiyuu-tui/internal/ollama"
	"github.com/jeranaias/jiyuu-tui/internal/session"
	"github.com/jeranaias/jiyuu-tui/internal/ui/chat"
	"github.com/jeranaias/jiyuu-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	cmd, args, err := cli.Parse(argv)
	if err != nil {
		cli.DisplayError(os.Stderr, err)
		return cli.ExitCode(err)
	}

	switch cmd {
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout, config.DefaultModel)
		return cli.ExitSuccess
	case cli.CmdVersion:
		cli.PrintVersion(os.Stdout)
		return cli.ExitSuccess
	case cli.CmdConfig:
		err = cli.RunConfig(args, os.Stdout)
	default:
		err = runWithEngine(cmd, args)
	}

	if err != nil {
		cli.DisplayError(os.Stderr, err)
		return cli.ExitCode(err)
	}
	return cli.ExitSuccess
}

// =============================================================================
// ENGINE-BACKED COMMANDS
// =============================================================================

func runWithEngine(cmd cli.Command, args cli.Args) error {
	if cmd == cli.CmdTUI {
		if err := cli.RequiresTTY("the chat interface"); err != nil {
			return err
		}
	}

	cfg, cfgPath, err := cli.LoadConfig(args)
	if err != nil {
		return err
	}
	config.SetGlobal(cfg)

	logger, level, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer logger.Sync() //nolint:errcheck
	logger.Info("starting",
		zap.String("command", cmd.String()),
		zap.String("version", Version),
		zap.String("model", cfg.Model.ID))

	// The REPL and the TUI handle Ctrl+C themselves; only ask exits on it.
	sigs := []os.Signal{syscall.SIGTERM}
	if cmd == cli.CmdAsk || cmd == cli.CmdDoctor {
		sigs = append(sigs, os.Interrupt)
	}
	ctx, stop := signal.NotifyContext(context.Background(), sigs...)
	defer stop()

	client := ollama.NewClientWithConfig(&ollama.ClientConfig{
		BaseURL:   cfg.Ollama.URL,
		Timeout:   cfg.Ollama.Timeout,
		KeepAlive: cfg.Model.KeepAlive,
		Logger:    logger.Named("ollama"),
	})

	if cmd == cli.CmdDoctor {
		return cli.RunDoctor(ctx, &cli.Doctor{Config: cfg, ConfigPath: cfgPath, Client: client}, os.Stdout)
	}

	loader := ollama.NewLoader(client, ollama.LoaderConfig{
		AutoStart: cfg.Model.AutoStart,
		AutoPull:  cfg.Model.AutoPull,
	}, logger.Named("loader"))

	ctrl := session.New(loader, session.Config{
		ModelID:          cfg.Model.ID,
		SystemPrompt:     cfg.Chat.SystemPrompt,
		ReadySignalDelay: cfg.Chat.ReadySignalDelay,
		Locale:           i18n.Detect(cfg.UI.Locale),
		Logger:           logger.Named("session"),
	})
	defer func() {
		ctrl.Close()
		ctrl.Wait()
	}()

	switch cmd {
	case cli.CmdAsk:
		query, err := cli.ReadQuery(args, os.Stdin, cli.IsTTY())
		if err != nil {
			return err
		}
		return cli.RunAsk(ctx, ctrl, query, os.Stdout, cli.AskOptions{
			Render: cli.IsStdoutTTY(),
			Width:  min(cli.TerminalWidth(), cfg.UI.WordWrap),
		})

	case cli.CmdChat:
		return cli.NewREPL(cli.REPLOptions{
			Controller: ctrl,
			Locale:     cfg.UI.Locale,
			Logger:     logger,
		}).Run(ctx)
	}

	return runTUI(ctx, ctrl, cfg, cfgPath, args, &level, logger)
}

// =============================================================================
// TUI
// =============================================================================

func runTUI(ctx context.Context, ctrl *session.Controller, cfg *config.Config, cfgPath string,
	args cli.Args, level *zap.AtomicLevel, logger *zap.Logger) error {

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()

	// Latest wins: a slow UI only ever sees the newest file.
	changes := make(chan *config.Config, 1)
	watcher, err := config.Watch(watchCtx, cfgPath, config.DefaultWatchDebounce, func(next *config.Config, err error) {
		if err == nil {
			err = cli.ApplyFlags(next, args)
		}
		if err != nil {
			logger.Warn("config reload rejected", zap.Error(err))
			return
		}
		config.SetGlobal(next)
		select {
		case <-changes:
		default:
		}
		changes <- next
	})
	if err != nil {
		logger.Warn("live config reload disabled", zap.String("path", cfgPath), zap.Error(err))
		changes = nil
	}

	m := chat.New(chat.Options{
		Controller:    ctrl,
		Theme:         styles.NewTheme(),
		Locale:        cfg.UI.Locale,
		Version:       Version,
		WordWrap:      cfg.UI.WordWrap,
		ConfigChanges: changes,
		LogLevel:      level,
		Logger:        logger.Named("ui"),
	})
	defer m.Close()

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	_, err = tea.NewProgram(m, opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}

	cancelWatch()
	if watcher != nil {
		<-watcher.Done()
	}
	return err
}
