// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the TUI.
package commands

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command represents a slash command that can be executed.
type Command struct {
	// Name is the primary command name (e.g., "/help")
	Name string

	// Aliases are alternative names (e.g., "/h", "/?")
	Aliases []string

	// Description is shown in help
	Description string

	// Usage shows argument syntax (e.g., "/rate <1-5> [commentaire]")
	Usage string

	// Handler is the function that executes the command
	Handler func(args []string) tea.Cmd
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
}

// NewRegistry creates a new command registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) *Command {
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns all registered commands sorted by name.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	r.Register(&Command{
		Name:        "/help",
		Aliases:     []string{"/h", "/?"},
		Description: "Affiche l'aide et les commandes disponibles",
		Usage:       "/help",
		Handler:     handleHelp,
	})

	r.Register(&Command{
		Name:        "/rate",
		Aliases:     []string{"/note"},
		Description: "Évalue la dernière réponse de l'assistant",
		Usage:       "/rate <1-5> [commentaire]",
		Handler:     handleRate,
	})

	r.Register(&Command{
		Name:        "/reset",
		Aliases:     []string{"/clear"},
		Description: "Efface la conversation",
		Usage:       "/reset",
		Handler:     handleReset,
	})

	r.Register(&Command{
		Name:        "/id",
		Description: "Affiche ou remplace l'identifiant utilisateur",
		Usage:       "/id [nouvel-identifiant]",
		Handler:     handleIdentity,
	})

	r.Register(&Command{
		Name:        "/suggest",
		Aliases:     []string{"/s"},
		Description: "Envoie une question suggérée",
		Usage:       "/suggest <n>",
		Handler:     handleSuggest,
	})

	r.Register(&Command{
		Name:        "/quit",
		Aliases:     []string{"/q", "/exit"},
		Description: "Quitte campus-tui",
		Usage:       "/quit",
		Handler:     handleQuit,
	})
}
