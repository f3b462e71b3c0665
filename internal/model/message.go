// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
// Labels are French to match the assistant's answer language.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "Vous"
	case RoleBot:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single turn in the conversation log.
//
// User turns carry only text. Bot turns additionally carry Meta: either the
// answer metadata returned by the assistant service, or the error detail
// recorded when a send failed.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	Text string `json:"text"`

	// Meta is only present on bot messages.
	Meta *Meta `json:"meta,omitempty"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(role Role, text string) Message {
	return Message{
		ID:        generateID(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message. User messages never carry Meta.
func NewUserMessage(text string) Message {
	return NewMessage(RoleUser, text)
}

// NewBotMessage creates a new bot message with its answer metadata.
func NewBotMessage(text string, meta *Meta) Message {
	msg := NewMessage(RoleBot, text)
	msg.Meta = meta
	return msg
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// IsError reports whether this is a bot turn recording a failed send.
func (m Message) IsError() bool {
	return m.Role == RoleBot && m.Meta != nil && m.Meta.Error != ""
}

// ChatEventID returns the event identifier attached to this turn, or ""
// when the turn has none (user turns, error turns, and answers from a
// backend that does not emit event identifiers).
func (m Message) ChatEventID() string {
	if m.Meta == nil {
		return ""
	}
	return m.Meta.ChatEventID
}

// Preview returns a truncated preview of the message text.
// Uses rune-based truncation to handle accented French text correctly.
func (m Message) Preview(maxLen int) string {
	runes := []rune(m.Text)
	if len(runes) <= maxLen {
		return m.Text
	}
	return string(runes[:maxLen-3]) + "..."
}

// IsEmpty returns true if the message has no text.
func (m Message) IsEmpty() bool {
	return len(m.Text) == 0
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateID creates a unique message ID.
func generateID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "msg_" + hex.EncodeToString(bytes)
}
