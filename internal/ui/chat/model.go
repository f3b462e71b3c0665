// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main chat view component for campus-tui.
package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avcampus/campus-tui/internal/api"
	"github.com/avcampus/campus-tui/internal/commands"
	"github.com/avcampus/campus-tui/internal/dispatch"
	"github.com/avcampus/campus-tui/internal/feedback"
	"github.com/avcampus/campus-tui/internal/identity"
	"github.com/avcampus/campus-tui/internal/storage"
	"github.com/avcampus/campus-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady   State = iota // Ready for input
	StateWaiting              // A send is awaiting its response
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Deps bundles the collaborators the chat view works over. All of them are
// shared with the CLI surfaces; the view adds no state of its own beyond
// presentation.
type Deps struct {
	Store       *storage.Store
	Client      *api.Client
	Dispatcher  *dispatch.Dispatcher
	Correlator  *feedback.Correlator
	Identity    *identity.Manager
	Suggestions []string
}

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Collaborators
	store      *storage.Store
	client     *api.Client
	dispatcher *dispatch.Dispatcher
	correlator *feedback.Correlator
	identity   *identity.Manager

	// Suggested questions shown while the conversation is empty
	suggestions []string

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// Slash commands
	registry *commands.Registry
	parser   *commands.Parser

	// Key bindings
	keyMap KeyMap

	// Transient notice shown in the status bar until the next event
	notice string

	// Help overlay
	showHelp bool

	// Viewport sizing happens on the first WindowSizeMsg
	ready bool
}

// New creates the chat model over the given collaborators.
func New(theme *styles.Theme, deps Deps) Model {
	input := textinput.New()
	input.Placeholder = "Pose ta question..."
	input.Prompt = "> "
	input.PromptStyle = theme.InputPrompt
	input.TextStyle = theme.InputText
	input.PlaceholderStyle = theme.InputPlaceholder
	input.CharLimit = 2000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	registry := commands.NewRegistry()

	return Model{
		state:       StateReady,
		theme:       theme,
		store:       deps.Store,
		client:      deps.Client,
		dispatcher:  deps.Dispatcher,
		correlator:  deps.Correlator,
		identity:    deps.Identity,
		suggestions: deps.Suggestions,
		input:       input,
		spinner:     sp,
		registry:    registry,
		parser:      commands.NewParser(registry),
		keyMap:      DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Waiting reports whether a send is awaiting its response.
func (m Model) Waiting() bool {
	return m.state == StateWaiting
}

// Notice returns the current transient notice, empty when none.
func (m Model) Notice() string {
	return m.notice
}
