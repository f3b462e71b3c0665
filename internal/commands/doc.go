// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the TUI.
//
// This package handles parsing slash commands typed in the chat input and
// turning them into Bubble Tea messages the chat view reacts to.
//
// # Key Types
//
//   - Registry: Command registry with all available commands
//   - Parser: Parses raw input into a command and its arguments
//   - ParseResult: Parsed command with name and arguments
//
// # Built-in Commands
//
//   - /help: Show available commands
//   - /rate: Rate the last assistant answer (1-5, optional comment)
//   - /reset: Clear the conversation
//   - /id: Show or replace the user identifier
//   - /suggest: Send a suggested question by number
//   - /quit: Exit the application
//
// # Usage
//
// Parse input and execute the matched command:
//
//	result := parser.Parse(input)
//	if result.IsCommand && result.Command != nil {
//	    return result.Command.Handler(result.Args)
//	}
package commands
