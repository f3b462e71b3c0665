// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main chat view component for campus-tui.
//
// This file defines the Bubble Tea message types used by the chat
// interface for results arriving from the network. Slash command
// messages live in the commands package.
package chat

import (
	"github.com/avcampus/campus-tui/internal/api"
)

// ChatResultMsg delivers the outcome of a chat request started with a
// send. Exactly one arrives per accepted send, success or failure.
type ChatResultMsg struct {
	Resp *api.ChatResponse
	Err  error
}

// FeedbackResultMsg delivers the outcome of a feedback submission.
type FeedbackResultMsg struct {
	Rating int
	Err    error
}
