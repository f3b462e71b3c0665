// campus-tui - Terminal client for the campus assistant service.
//
// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avcampus/campus-tui/internal/api"
	"github.com/avcampus/campus-tui/internal/cli"
	"github.com/avcampus/campus-tui/internal/config"
	"github.com/avcampus/campus-tui/internal/dispatch"
	"github.com/avcampus/campus-tui/internal/feedback"
	"github.com/avcampus/campus-tui/internal/identity"
	"github.com/avcampus/campus-tui/internal/storage"
	"github.com/avcampus/campus-tui/internal/ui/chat"
	"github.com/avcampus/campus-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	// Commands that need no wiring
	switch cmd {
	case cli.CmdVersion:
		cli.PrintVersion()
		return
	case cli.CmdHelp:
		cli.PrintUsage()
		return
	}

	cfg, err := config.Load()
	if cfg == nil {
		fmt.Fprintf(os.Stderr, "Erreur de configuration : %v\n", err)
		os.Exit(1)
	}
	if err != nil {
		// Defaults are in effect, the broken file is worth mentioning.
		fmt.Fprintf(os.Stderr, "Avertissement : %v\n", err)
	}
	config.SetGlobal(cfg)

	// CLI flags override config
	if args.APIBase != "" {
		cfg.API.BaseURL = args.APIBase
	}

	app, cleanup, err := buildApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erreur au démarrage : %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	ctx := context.Background()

	switch cmd {
	case cli.CmdTUI:
		err = runTUI(app)
	case cli.CmdAsk:
		err = app.HandleAsk(ctx, args)
	case cli.CmdChat:
		err = app.HandleChat(ctx, args)
	case cli.CmdHistory:
		err = app.HandleHistory(args)
	case cli.CmdReset:
		err = app.HandleReset(args)
	case cli.CmdID:
		err = app.HandleID(args)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Erreur : %v\n", err)
		os.Exit(1)
	}
}

// buildApp wires the shared collaborators from the configuration. The
// returned cleanup closes the storage backend.
func buildApp(cfg *config.Config) (*cli.App, func(), error) {
	dataDir, err := cfg.DataDir()
	if err != nil {
		return nil, nil, fmt.Errorf("répertoire de données : %w", err)
	}

	var kv storage.KV
	cleanup := func() {}
	switch cfg.Storage.Backend {
	case "sqlite":
		skv, err := storage.NewSQLiteKV(filepath.Join(dataDir, "campus.db"))
		if err != nil {
			return nil, nil, fmt.Errorf("ouverture sqlite : %w", err)
		}
		kv = skv
		cleanup = func() { skv.Close() }
	default:
		fkv, err := storage.NewFileKV(dataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("ouverture du stockage : %w", err)
		}
		kv = fkv
	}

	store := storage.NewStore(kv)
	ident := identity.NewManager(kv)
	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL: cfg.API.BaseURL,
		Timeout: time.Duration(cfg.API.TimeoutSecs) * time.Second,
	})

	return &cli.App{
		Config:     cfg,
		Store:      store,
		Client:     client,
		Dispatcher: dispatch.NewDispatcher(store, client, ident),
		Correlator: feedback.NewCorrelator(store, client),
		Identity:   ident,
	}, cleanup, nil
}

// runTUI launches the full-screen chat interface.
func runTUI(app *cli.App) error {
	theme := styles.NewTheme()

	m := chat.New(theme, chat.Deps{
		Store:       app.Store,
		Client:      app.Client,
		Dispatcher:  app.Dispatcher,
		Correlator:  app.Correlator,
		Identity:    app.Identity,
		Suggestions: app.Config.UI.Suggestions,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interface interrompue : %w", err)
	}
	return nil
}
