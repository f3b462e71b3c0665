// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question command.
//
// USABILITY: Markdown rendering for readable answers in the terminal
//
// Handles "campus-tui ask", which sends a single question to the campus
// assistant and prints the answer to stdout.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// HandleAsk sends a single question and prints the answer. The turn is
// appended to the shared conversation, exactly as if it had been typed in
// the TUI or the web widget.
func (a *App) HandleAsk(ctx context.Context, args Args) error {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		return errors.New("aucune question fournie (usage : campus-tui ask \"question\")")
	}

	if !args.Quiet && !args.JSON {
		fmt.Println(DimStyle.Render("Envoi à l'assistant..."))
	}

	if !a.Dispatcher.Send(ctx, query) {
		return errors.New("envoi rejeté")
	}

	last, ok := a.Store.LastBotMessage()
	if !ok {
		return errors.New("aucune réponse reçue")
	}

	if args.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(last); err != nil {
			return err
		}
	} else {
		printBotMessage(last, args.Quiet)
	}

	// A failed send still prints the error bubble; the exit code carries
	// the failure for scripts.
	if last.IsError() {
		return errors.New(last.Meta.Error)
	}
	return nil
}
