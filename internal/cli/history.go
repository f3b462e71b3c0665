// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// history.go - Conversation and identity maintenance commands.
//
// Handles "campus-tui history", "campus-tui reset" and "campus-tui id".
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/avcampus/campus-tui/internal/model"
)

// HandleHistory prints the persisted conversation.
func (a *App) HandleHistory(args Args) error {
	msgs := a.Store.Messages()

	if args.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(msgs)
	}

	if len(msgs) == 0 {
		fmt.Println(DimStyle.Render("Aucune conversation enregistrée."))
		return nil
	}

	for _, msg := range msgs {
		label := UserStyle
		if msg.Role == model.RoleBot {
			label = BotStyle
		}
		stamp := DimStyle.Render(msg.Timestamp.Format("02/01 15:04"))
		fmt.Printf("%s %s\n", label.Render(msg.Role.DisplayName()+" :"), stamp)
		if msg.Role == model.RoleBot {
			printBotMessage(msg, args.Quiet)
		} else {
			fmt.Println(WrapText(msg.Text, 0))
		}
		fmt.Println()
	}

	fmt.Println(DimStyle.Render(fmt.Sprintf("%d messages", len(msgs))))
	return nil
}

// HandleReset clears the conversation. A --confirm flag is required so a
// stray "reset" does not wipe a transcript shared with the other surfaces.
func (a *App) HandleReset(args Args) error {
	parser := NewArgParser(args.Raw)
	if !parser.BoolFlag("confirm") {
		return errors.New("l'effacement supprime la conversation pour toutes les interfaces : relance avec --confirm")
	}

	if err := a.Store.Reset(); err != nil {
		return fmt.Errorf("effacement impossible : %w", err)
	}
	if !args.Quiet {
		fmt.Println(SuccessStyle.Render("Conversation effacée"))
	}
	return nil
}

// HandleID shows the current user identifier, or replaces it when a value
// is given. The replacement is stored as-is.
func (a *App) HandleID(args Args) error {
	if args.Query != "" {
		if err := a.Identity.Set(args.Query); err != nil {
			return fmt.Errorf("identifiant appliqué pour la session, mais non enregistré : %w", err)
		}
		if !args.Quiet {
			fmt.Println(SuccessStyle.Render("Identifiant remplacé : " + args.Query))
		}
		return nil
	}

	id := a.Identity.GetOrCreate()
	if args.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]string{"user_id": id})
	}
	fmt.Println(id)
	return nil
}
