// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the campus-tui
application.

This package defines the color palette and the Theme type used by the
chat view. All colors use Lip Gloss AdaptiveColor for automatic
light/dark terminal detection.

# Color System (colors.go)

  - Purple - Primary brand color, bot labels
  - Cyan - Accents, user labels, input prompt
  - Emerald - Success states (backend reachable, feedback sent)
  - Amber - Waiting states and notices
  - Rose - Errors (backend unreachable)

Message bubbles use semantic color tokens:

	UserBubbleBg / UserBubbleFg - User messages (blue, right-aligned)
	BotBubbleBg / BotBubbleFg   - Assistant messages (purple, left-aligned)
	ErrorBubbleBg / ErrorBubbleFg - Error bubbles
	NoticeBg / NoticeFg         - Transient notices

# Theme (theme.go)

Theme detects terminal capabilities via termenv and exposes configured
lipgloss styles for every element of the chat view: header, message
bubbles, metadata tags, suggestion chips, input area, and status bar.

# Usage

	theme := styles.NewTheme()
	out := theme.UserBubble.Render("Bonjour !")
*/
package styles
