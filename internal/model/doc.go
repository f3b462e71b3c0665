// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation log.
//
// # Key Types
//
//   - Message: a single turn with role, text, timestamp, and optional metadata
//   - Role: message role enumeration (user, bot)
//   - Meta: answer metadata attached to bot turns (intent, confidence,
//     entities, cited sources, chat event identifier) or the error detail
//     recorded on a failed turn
//   - Source: one cited document reference
//
// # Usage
//
// Create messages for the two sides of an exchange:
//
//	user := model.NewUserMessage("Comment obtenir un certificat ?")
//	bot := model.NewBotMessage("Voir le guichet.", &model.Meta{Intent: "certificat"})
//
// Bot turns carry Meta; user turns never do. The chat event identifier in
// Meta is what feedback submission correlates against.
package model
