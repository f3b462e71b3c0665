// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main chat view component for campus-tui.
//
// This file contains all rendering logic for the chat interface: message
// bubbles, answer metadata, suggestion chips, the input area, and the
// status bar.
package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/avcampus/campus-tui/internal/model"
	"github.com/avcampus/campus-tui/internal/util"
)

func newViewport(width, height int) viewport.Model {
	return viewport.New(width, height)
}

// =============================================================================
// MAIN RENDER
// =============================================================================

// View implements tea.Model.
// Layout: header (2 lines) + messages (viewport) + input (2 lines) +
// status (1 line). The viewport height is set in handleResize.
func (m Model) View() string {
	if !m.ready {
		return "Chargement..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderInput())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

// refreshViewport rebuilds the viewport content from the conversation.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderMessages())
}

// =============================================================================
// HEADER
// =============================================================================

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("Assistant Campus")
	subtitle := m.theme.HeaderSubtitle.Render("Scolarité et vie étudiante")
	line := title + "  " + subtitle
	return m.theme.Header.Width(m.width).Render(line)
}

// =============================================================================
// MESSAGES
// =============================================================================

// renderMessages renders the whole conversation, or the suggestion chips
// while it is still empty.
func (m Model) renderMessages() string {
	msgs := m.store.Messages()
	if len(msgs) == 0 {
		return m.renderSuggestions()
	}

	var parts []string
	for _, msg := range msgs {
		parts = append(parts, m.renderMessage(msg))
	}

	if m.state == StateWaiting {
		parts = append(parts, m.spinner.View()+" "+m.theme.MetaTag.Render("L'assistant réfléchit..."))
	}

	return strings.Join(parts, "\n\n")
}

// renderMessage renders one conversation turn with its role label.
func (m Model) renderMessage(msg model.Message) string {
	maxWidth := m.width - 8
	if maxWidth < 20 {
		maxWidth = 20
	}

	switch {
	case msg.Role == model.RoleUser:
		label := m.theme.UserLabel.Render(msg.Role.DisplayName())
		bubble := m.theme.UserBubble.MaxWidth(maxWidth).Render(msg.Text)
		block := label + "\n" + bubble
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, block)

	case msg.IsError():
		label := m.theme.BotLabel.Render(msg.Role.DisplayName())
		bubble := m.theme.ErrorBubble.MaxWidth(maxWidth).Render(msg.Text)
		return label + "\n" + bubble

	default:
		label := m.theme.BotLabel.Render(msg.Role.DisplayName())
		bubble := m.theme.BotBubble.MaxWidth(maxWidth).Render(msg.Text)
		block := label + "\n" + bubble
		if meta := m.renderMeta(msg.Meta); meta != "" {
			block += "\n" + meta
		}
		return block
	}
}

// renderMeta renders the answer metadata line and source list, empty when
// there is nothing worth showing.
func (m Model) renderMeta(meta *model.Meta) string {
	if meta == nil {
		return ""
	}

	var tags []string
	if meta.Intent != "" {
		tags = append(tags, "intention : "+meta.Intent)
	}
	if meta.HasConfidence() {
		tags = append(tags, fmt.Sprintf("confiance : %.0f %%", *meta.Confidence*100))
	}

	var lines []string
	if len(tags) > 0 {
		lines = append(lines, m.theme.MetaTag.Render(strings.Join(tags, " • ")))
	}
	for i, src := range meta.Sources {
		entry := fmt.Sprintf("  [%d] %s", i+1, src.Title)
		if src.Type != "" {
			entry += " (" + src.Type + ")"
		}
		lines = append(lines, m.theme.MetaSource.Render(entry))
	}

	return strings.Join(lines, "\n")
}

// =============================================================================
// SUGGESTIONS
// =============================================================================

// renderSuggestions shows the suggested questions over an empty
// conversation, numbered for /suggest.
func (m Model) renderSuggestions() string {
	if len(m.suggestions) == 0 {
		return m.theme.MetaTag.Render("Pose ta première question ci-dessous.")
	}

	var b strings.Builder
	b.WriteString(m.theme.MetaTag.Render("Quelques questions pour commencer :"))
	b.WriteString("\n\n")
	for i, s := range m.suggestions {
		key := m.theme.SuggestionKey.Render(fmt.Sprintf("%d", i+1))
		b.WriteString(key + " " + m.theme.Suggestion.Render(s))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.theme.MetaTag.Render("Tape ta question, ou /suggest <n> pour en envoyer une."))
	return b.String()
}

// =============================================================================
// INPUT AND STATUS BAR
// =============================================================================

func (m Model) renderInput() string {
	return m.theme.InputContainer.Width(m.width).Render(m.input.View())
}

func (m Model) renderStatusBar() string {
	var state string
	if m.state == StateWaiting {
		state = m.theme.StatusWaiting.Render(m.spinner.View() + " Envoi...")
	} else {
		state = m.theme.StatusOK.Render("Prêt")
	}

	left := state + "  " + m.identity.GetOrCreate()
	if m.notice != "" {
		// Notices must never push the key hints off screen.
		room := m.width/2 - lipgloss.Width(left)
		if room > 10 {
			left += "  " + m.theme.Notice.Render(util.TruncateWidth(m.notice, room))
		} else {
			left += "  " + m.theme.Notice.Render(m.notice)
		}
	}
	right := "F1 aide • Ctrl+C quitter"

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return m.theme.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// =============================================================================
// HELP OVERLAY
// =============================================================================

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.theme.HeaderTitle.Render("Aide"))
	b.WriteString("\n\n")
	b.WriteString(m.theme.MetaTag.Render("Commandes disponibles :"))
	b.WriteString("\n")
	for _, cmd := range m.registry.All() {
		b.WriteString(fmt.Sprintf("  %-28s %s\n", cmd.Usage, cmd.Description))
	}
	b.WriteString("\n")
	b.WriteString(m.theme.MetaTag.Render("Navigation : ↑/↓ PgUp/PgDn Début/Fin • Entrée envoyer"))
	b.WriteString("\n\n")
	b.WriteString(m.theme.MetaTag.Render("Appuie sur une touche pour revenir."))
	return m.theme.Container.Render(b.String())
}
