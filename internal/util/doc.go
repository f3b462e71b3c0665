// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for campus-tui.
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// String Utilities:
//   - TruncateWidth: display-width aware truncation for terminal rendering
//   - TruncateRunes: UTF-8 safe truncation by character count
//
// # Usage
//
//	// Write snapshots atomically so a crash never leaves a torn file
//	err := util.AtomicWriteFile(path, data, 0644)
//
//	// Truncate long answers safely for single-line display
//	display := util.TruncateWidth(answer, 60)
package util
