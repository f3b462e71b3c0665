// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the main chat view component for the campus-tui
application.

The chat package implements a terminal chat interface on the Bubble Tea
framework, talking to the campus assistant service over HTTP.

# Key Components

## Model (model.go)

The Model struct is the central Bubble Tea model that maintains all chat
state:
  - The persisted conversation (via the storage package)
  - Input handling, including slash commands
  - Viewport for message scrolling
  - The in-flight send state

## View Rendering (view.go)

Rendering logic for the complete chat interface:
  - Header with the assistant name
  - Message bubbles styled per role, with error bubbles for failed sends
  - Answer metadata (intent, confidence, sources)
  - Suggestion chips shown while the conversation is empty
  - Status bar with identity and transient notices

## Update Loop (update.go)

Handles all Bubble Tea messages and user interactions: keyboard input,
send results coming back from the network, feedback submission outcomes,
slash command messages, and window resizes.

# Concurrency

The model is single-threaded: all state changes happen on the Bubble Tea
event loop. Only the HTTP requests themselves run inside tea.Cmd
goroutines; their results come back as messages.
*/
package chat
