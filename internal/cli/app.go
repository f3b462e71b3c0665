// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - Shared application state and output helpers for CLI commands.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/avcampus/campus-tui/internal/api"
	"github.com/avcampus/campus-tui/internal/config"
	"github.com/avcampus/campus-tui/internal/dispatch"
	"github.com/avcampus/campus-tui/internal/feedback"
	"github.com/avcampus/campus-tui/internal/identity"
	"github.com/avcampus/campus-tui/internal/model"
	"github.com/avcampus/campus-tui/internal/storage"
)

// App bundles the collaborators every CLI command works over. The same
// instances back the TUI, so conversation and identity are shared across
// all surfaces.
type App struct {
	Config     *config.Config
	Store      *storage.Store
	Client     *api.Client
	Dispatcher *dispatch.Dispatcher
	Correlator *feedback.Correlator
	Identity   *identity.Manager
}

// =============================================================================
// MARKDOWN OUTPUT
// =============================================================================

// markdownRenderer is the glamour renderer for assistant answers.
var markdownRenderer *glamour.TermRenderer

func initMarkdownRenderer() {
	if markdownRenderer != nil {
		return
	}
	width := GetTerminalWidth()
	if width > 100 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return
	}
	markdownRenderer = r
}

// renderAnswer renders an assistant answer for the terminal. Markdown
// rendering is best effort; on any failure the plain wrapped text is used.
func renderAnswer(text string) string {
	if !IsStdoutTTY() {
		return text
	}
	initMarkdownRenderer()
	if markdownRenderer == nil {
		return WrapText(text, 0)
	}
	out, err := markdownRenderer.Render(text)
	if err != nil {
		return WrapText(text, 0)
	}
	return strings.TrimRight(out, "\n")
}

// =============================================================================
// TRANSCRIPT OUTPUT
// =============================================================================

// printBotMessage prints an assistant turn with its metadata.
func printBotMessage(msg model.Message, quiet bool) {
	if msg.IsError() {
		fmt.Println(ErrorStyle.Render(msg.Text))
		return
	}

	fmt.Println(renderAnswer(msg.Text))

	if quiet || msg.Meta == nil {
		return
	}
	meta := msg.Meta

	var tags []string
	if meta.Intent != "" {
		tags = append(tags, "intention : "+meta.Intent)
	}
	if meta.HasConfidence() {
		tags = append(tags, fmt.Sprintf("confiance : %.0f %%", *meta.Confidence*100))
	}
	if len(tags) > 0 {
		fmt.Println(DimStyle.Render(strings.Join(tags, " • ")))
	}
	for i, src := range meta.Sources {
		entry := fmt.Sprintf("  [%d] %s", i+1, src.Title)
		if src.Type != "" {
			entry += " (" + src.Type + ")"
		}
		fmt.Println(DimStyle.Render(entry))
	}
}
