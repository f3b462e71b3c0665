// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive terminal chat command.
//
// USABILITY: Input history with arrow-key navigation via liner
//
// Handles "campus-tui chat", a line-based REPL over the same conversation
// and slash commands as the TUI, for terminals where a full-screen
// interface is unwanted (ssh sessions, scripts around expect, etc).
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/peterh/liner"

	"github.com/avcampus/campus-tui/internal/commands"
	"github.com/avcampus/campus-tui/internal/config"
)

// =============================================================================
// LINE EDITOR
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	c.loadHistory()
	return c
}

func (c *ChatCLI) loadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
// Supports history navigation with arrow keys.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// saveHistory persists command history with owner-only permissions.
func (c *ChatCLI) saveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.saveHistory()
	c.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

// HandleChat runs the interactive chat loop.
func (a *App) HandleChat(ctx context.Context, args Args) error {
	if !IsTTY() {
		return errors.New("le chat interactif nécessite un terminal (utilise `ask` sinon)")
	}

	if !args.Quiet {
		fmt.Println(TitleStyle.Render("Assistant Campus"))
		fmt.Println(DimStyle.Render("Identifiant : " + a.Identity.GetOrCreate()))
		fmt.Println(DimStyle.Render("/help pour les commandes, /quit pour sortir."))
		fmt.Println()
	}

	repl := NewChatCLI()
	defer repl.Close()

	registry := commands.NewRegistry()
	parser := commands.NewParser(registry)

	for {
		input, err := repl.ReadInput("> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		raw := strings.TrimSpace(input)
		if raw == "" {
			continue
		}

		if commands.IsCommand(raw) {
			result := parser.Parse(raw)
			if result.Command == nil {
				fmt.Println(WarningStyle.Render("Commande inconnue " + result.CommandName + " (essaie /help)"))
				continue
			}
			msg := result.Command.Handler(result.Args)()
			if done := a.runCommandMsg(ctx, msg, registry, args.Quiet); done {
				break
			}
			continue
		}

		if !a.Dispatcher.Send(ctx, raw) {
			continue
		}
		if last, ok := a.Store.LastBotMessage(); ok {
			printBotMessage(last, args.Quiet)
			fmt.Println()
		}
	}

	if !args.Quiet {
		fmt.Println(DimStyle.Render("À bientôt !"))
	}
	return nil
}

// runCommandMsg applies one slash command outcome to the REPL. The TUI
// routes the same message types through its update loop; here they act
// synchronously. Returns true when the REPL should stop.
func (a *App) runCommandMsg(ctx context.Context, msg tea.Msg, registry *commands.Registry, quiet bool) bool {
	switch msg := msg.(type) {
	case tea.QuitMsg:
		return true

	case commands.NoticeMsg:
		fmt.Println(WarningStyle.Render(msg.Text))

	case commands.ShowHelpMsg:
		fmt.Println(TitleStyle.Render("Commandes"))
		for _, cmd := range registry.All() {
			fmt.Printf("  %s %s\n", LabelStyle.Render(cmd.Usage), ValueStyle.Render(cmd.Description))
		}

	case commands.ResetMsg:
		if err := a.Store.Reset(); err != nil {
			fmt.Println(ErrorStyle.Render("Effacement impossible : " + err.Error()))
		} else {
			fmt.Println(SuccessStyle.Render("Conversation effacée"))
		}

	case commands.ShowIdentityMsg:
		fmt.Println(ValueStyle.Render("Identifiant : " + a.Identity.GetOrCreate()))

	case commands.SetIdentityMsg:
		if err := a.Identity.Set(msg.ID); err != nil {
			fmt.Println(WarningStyle.Render("Identifiant appliqué pour la session, mais non enregistré : " + err.Error()))
		} else {
			fmt.Println(SuccessStyle.Render("Identifiant remplacé : " + msg.ID))
		}

	case commands.SuggestMsg:
		suggestions := a.Config.UI.Suggestions
		if msg.Index < 1 || msg.Index > len(suggestions) {
			fmt.Println(WarningStyle.Render(fmt.Sprintf("Pas de suggestion n°%d", msg.Index)))
			return false
		}
		question := suggestions[msg.Index-1]
		fmt.Println(UserStyle.Render("Vous : ") + question)
		if a.Dispatcher.Send(ctx, question) {
			if last, ok := a.Store.LastBotMessage(); ok {
				printBotMessage(last, quiet)
				fmt.Println()
			}
		}

	case commands.RateMsg:
		if err := a.Correlator.Submit(ctx, msg.Rating, msg.Comment); err != nil {
			fmt.Println(WarningStyle.Render("Retour non envoyé : " + err.Error()))
		} else {
			fmt.Println(SuccessStyle.Render(fmt.Sprintf("Merci pour ton retour (%d/5) !", msg.Rating)))
		}
	}

	return false
}
