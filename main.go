// studysync - terminal client for StudySync study groups.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/studysync-tui/internal/api"
	"github.com/jeranaias/studysync-tui/internal/cli"
	"github.com/jeranaias/studysync-tui/internal/config"
	"github.com/jeranaias/studysync-tui/internal/groups"
	"github.com/jeranaias/studysync-tui/internal/logging"
	"github.com/jeranaias/studysync-tui/internal/markdown"
	"github.com/jeranaias/studysync-tui/internal/security"
	"github.com/jeranaias/studysync-tui/internal/session"
	"github.com/jeranaias/studysync-tui/internal/storage"
	"github.com/jeranaias/studysync-tui/internal/ui/components"
	"github.com/jeranaias/studysync-tui/internal/ui/router"
	"github.com/jeranaias/studysync-tui/internal/ui/styles"
	"github.com/jeranaias/studysync-tui/internal/ui/views"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// KeyFileName is the sealing key file inside the config directory.
const KeyFileName = "session.key"

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdVersion:
		cli.PrintVersion(os.Stdout)
		return
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
		return
	}

	cfg, err := config.Load()
	if cfg == nil {
		fatal(err)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	if args.Verbose {
		cfg.Log.Level = "debug"
	}

	if cmd == cli.CmdTUI {
		if err := runTUI(cfg); err != nil {
			fatal(err)
		}
		return
	}
	os.Exit(runCLI(cfg, cmd, args))
}

// =============================================================================
// WIRING
// =============================================================================

// deps are the pieces shared by the TUI and CLI.
type deps struct {
	client  *api.Client
	store   *session.Store
	storage storage.Store
}

func (d *deps) Close() {
	if d.storage != nil {
		d.storage.Close()
	}
}

func wire(cfg *config.Config, logger *slog.Logger) (*deps, error) {
	if err := config.EnsureConfigDir(); err != nil {
		return nil, err
	}

	path, err := cfg.StoragePath()
	if err != nil {
		return nil, err
	}
	kv, err := storage.Open(cfg.Storage.Backend, path)
	if err != nil {
		return nil, fmt.Errorf("open session storage: %w", err)
	}

	var sealer *security.Sealer
	if cfg.Storage.EncryptToken {
		dir, err := config.ConfigDir()
		if err != nil {
			kv.Close()
			return nil, err
		}
		if sealer, err = security.OpenSealer(filepath.Join(dir, KeyFileName)); err != nil {
			kv.Close()
			return nil, fmt.Errorf("open token key: %w", err)
		}
	}

	client := api.New(cfg, logger)
	store, err := session.NewStore(session.Options{
		Storage: kv,
		Sealer:  sealer,
		Auth:    client,
		Logger:  logger,
	})
	if err != nil {
		kv.Close()
		return nil, err
	}
	return &deps{client: client, store: store, storage: kv}, nil
}

// =============================================================================
// TUI
// =============================================================================

// runTUI starts the Bubble Tea program. Logs go to a file because the
// program owns the terminal.
func runTUI(cfg *config.Config) error {
	logPath, err := cfg.LogPath()
	if err != nil {
		return err
	}
	logger, closer, err := logging.File(logPath, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (logging disabled)\n", err)
		logger = logging.Discard()
	} else {
		defer closer.Close()
	}

	d, err := wire(cfg, logger)
	if err != nil {
		return err
	}
	defer d.Close()

	theme := styles.NewTheme(cfg.UI.Theme)
	theme.SetCompact(cfg.UI.CompactMode)

	ctx := router.NewContext(router.Providers{
		Session:   d.store,
		Selection: groups.NewSelection(),
		Backend:   d.client,
		Theme:     theme,
		Toasts:    components.NewToastManager(),
		Markdown:  markdown.ForTheme(theme.IsDark),
		Logger:    logger,
	})
	r := router.New(ctx, views.Factories(), router.RouteHome)
	defer r.Close()

	if path := d.storage.Path(); path != "" {
		w, err := session.NewWatcher(d.store, path, session.DefaultDebounce, logger)
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			logger.Warn("session watcher disabled", "error", err)
		} else {
			defer w.Close()
			r.WithWatcher(w)
		}
	}

	logger.Info("starting TUI", "version", Version, "api", d.client.BaseURL())
	p := tea.NewProgram(r, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// =============================================================================
// CLI
// =============================================================================

func runCLI(cfg *config.Config, cmd cli.Command, args cli.Args) int {
	level := cfg.Log.Level
	if !args.Verbose && logging.ParseLevel(level) < slog.LevelWarn {
		level = "warn"
	}
	logger := logging.Stderr(level)

	d, err := wire(cfg, logger)
	if err != nil {
		cli.DisplayError(os.Stderr, err)
		return 1
	}
	defer d.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(cfg, d.client, d.store, logger)
	app.Ctx = ctx
	return app.Run(cmd, args)
}

func fatal(err error) {
	cli.DisplayError(os.Stderr, err)
	os.Exit(1)
}
