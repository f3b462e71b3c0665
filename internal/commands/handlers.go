// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the TUI.
package commands

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// These messages are sent by command handlers to update the application state.

// ShowHelpMsg triggers the help display.
type ShowHelpMsg struct{}

// RateMsg requests rating the last bot answer.
type RateMsg struct {
	Rating  int
	Comment string
}

// ResetMsg requests clearing the conversation.
type ResetMsg struct{}

// ShowIdentityMsg requests displaying the current user identifier.
type ShowIdentityMsg struct{}

// SetIdentityMsg requests replacing the user identifier.
type SetIdentityMsg struct {
	ID string
}

// SuggestMsg requests sending the nth suggested question (1-based).
type SuggestMsg struct {
	Index int
}

// NoticeMsg displays a transient notice to the user.
type NoticeMsg struct {
	Text string
}

// =============================================================================
// HANDLERS
// =============================================================================

func handleHelp(args []string) tea.Cmd {
	return func() tea.Msg { return ShowHelpMsg{} }
}

func handleQuit(args []string) tea.Cmd {
	return tea.Quit
}

func handleReset(args []string) tea.Cmd {
	return func() tea.Msg { return ResetMsg{} }
}

// handleRate parses "/rate <1-5> [commentaire]". The rating range itself is
// enforced by the feedback correlator; only the argument shape is checked
// here.
func handleRate(args []string) tea.Cmd {
	if len(args) == 0 {
		return notice("Usage : /rate <1-5> [commentaire]")
	}

	rating, err := strconv.Atoi(args[0])
	if err != nil {
		return notice(fmt.Sprintf("Note invalide %q : attendu un entier entre 1 et 5", args[0]))
	}

	comment := strings.Join(args[1:], " ")
	return func() tea.Msg { return RateMsg{Rating: rating, Comment: comment} }
}

// handleIdentity shows the identifier with no argument, replaces it with
// one. The replacement value is taken as-is, no format is enforced.
func handleIdentity(args []string) tea.Cmd {
	if len(args) == 0 {
		return func() tea.Msg { return ShowIdentityMsg{} }
	}
	id := strings.Join(args, " ")
	return func() tea.Msg { return SetIdentityMsg{ID: id} }
}

func handleSuggest(args []string) tea.Cmd {
	if len(args) == 0 {
		return notice("Usage : /suggest <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return notice(fmt.Sprintf("Numéro de suggestion invalide %q", args[0]))
	}
	return func() tea.Msg { return SuggestMsg{Index: n} }
}

func notice(text string) tea.Cmd {
	return func() tea.Msg { return NoticeMsg{Text: text} }
}
