// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package cli implements the command-line surfaces of campus-tui.

The package parses arguments, dispatches commands, and implements every
non-TUI command over the same collaborators (store, client, dispatcher,
correlator, identity) the TUI uses, so all surfaces share one
conversation and one identity.

# Commands

  - (default)  Launch the TUI
  - ask        One-shot question, markdown-rendered answer
  - chat       Line-based interactive chat with input history
  - history    Print the persisted conversation
  - reset      Clear the conversation (requires --confirm)
  - id         Show or replace the user identifier
  - version    Version information
  - help       Usage text

# Output Behavior

Colors are disabled automatically for piped output and under NO_COLOR.
--json switches ask, history and id to machine-readable output.
*/
package cli
