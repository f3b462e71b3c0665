// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main chat view component for campus-tui.
package chat

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avcampus/campus-tui/internal/api"
	"github.com/avcampus/campus-tui/internal/commands"
	"github.com/avcampus/campus-tui/internal/feedback"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// sendChat performs the chat request off the event loop and delivers the
// outcome as a ChatResultMsg. The request deadline is the client's own
// timeout.
func sendChat(client *api.Client, req api.ChatRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Chat(context.Background(), req)
		return ChatResultMsg{Resp: resp, Err: err}
	}
}

// sendFeedback submits a resolved feedback request off the event loop.
func sendFeedback(correlator *feedback.Correlator, req api.FeedbackRequest, rating int) tea.Cmd {
	return func() tea.Msg {
		err := correlator.Send(context.Background(), req)
		return FeedbackResultMsg{Rating: rating, Err: err}
	}
}

// =============================================================================
// UPDATE LOOP
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.state != StateWaiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ChatResultMsg:
		m.dispatcher.Resolve(msg.Resp, msg.Err)
		m.state = StateReady
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, nil

	case FeedbackResultMsg:
		if msg.Err != nil {
			m.notice = "Envoi du retour impossible : " + msg.Err.Error()
		} else {
			m.notice = fmt.Sprintf("Merci pour ton retour (%d/5) !", msg.Rating)
		}
		return m, nil

	case commands.NoticeMsg:
		m.notice = msg.Text
		return m, nil

	case commands.ShowHelpMsg:
		m.showHelp = true
		return m, nil

	case commands.ResetMsg:
		if err := m.store.Reset(); err != nil {
			m.notice = "Effacement impossible : " + err.Error()
		} else {
			m.notice = "Conversation effacée"
		}
		m.refreshViewport()
		return m, nil

	case commands.ShowIdentityMsg:
		m.notice = "Identifiant : " + m.identity.GetOrCreate()
		return m, nil

	case commands.SetIdentityMsg:
		if err := m.identity.Set(msg.ID); err != nil {
			m.notice = "Identifiant appliqué pour la session, mais non enregistré : " + err.Error()
		} else {
			m.notice = "Identifiant remplacé : " + msg.ID
		}
		return m, nil

	case commands.SuggestMsg:
		if msg.Index < 1 || msg.Index > len(m.suggestions) {
			m.notice = fmt.Sprintf("Pas de suggestion n°%d", msg.Index)
			return m, nil
		}
		return m.send(m.suggestions[msg.Index-1])

	case commands.RateMsg:
		req, err := m.correlator.Resolve(msg.Rating, msg.Comment)
		if err != nil {
			m.notice = "Retour non envoyé : " + err.Error()
			return m, nil
		}
		return m, sendFeedback(m.correlator, req, msg.Rating)
	}

	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The help overlay swallows every key except quit
	if m.showHelp {
		if key.Matches(msg, m.keyMap.Quit) {
			return m, tea.Quit
		}
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSubmit(m.input.Value())

	case key.Matches(msg, m.keyMap.Up),
		key.Matches(msg, m.keyMap.Down),
		key.Matches(msg, m.keyMap.PageUp),
		key.Matches(msg, m.keyMap.PageDown),
		key.Matches(msg, m.keyMap.Home),
		key.Matches(msg, m.keyMap.End):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit routes submitted input: slash commands to their handler,
// everything else to a send.
func (m Model) handleSubmit(raw string) (tea.Model, tea.Cmd) {
	m.notice = ""

	if commands.IsCommand(raw) {
		result := m.parser.Parse(raw)
		m.input.Reset()
		if result.Command == nil {
			m.notice = fmt.Sprintf("Commande inconnue %s (essaie /help)", result.CommandName)
			return m, nil
		}
		return m, result.Command.Handler(result.Args)
	}

	return m.send(raw)
}

// send starts a send through the dispatcher. Rejected input (empty, or a
// send already in flight) is a silent no-op; in-flight input stays in the
// field so nothing typed is lost.
func (m Model) send(raw string) (tea.Model, tea.Cmd) {
	text, ok := m.dispatcher.Begin(raw)
	if !ok {
		if !m.dispatcher.InFlight() {
			m.input.Reset()
		}
		return m, nil
	}

	m.input.Reset()
	m.state = StateWaiting
	m.refreshViewport()
	m.viewport.GotoBottom()

	req := m.dispatcher.Request(text)
	return m, tea.Batch(sendChat(m.client, req), m.spinner.Tick)
}

// =============================================================================
// RESIZE
// =============================================================================

// handleResize recalculates the viewport dimensions. Fixed rows: header
// (2), input (2), status bar (1).
func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	const fixedRows = 5
	vpHeight := msg.Height - fixedRows
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.viewport = newViewport(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = vpHeight
	}
	m.input.Width = msg.Width - 4

	m.refreshViewport()
	m.viewport.GotoBottom()
	return m
}
