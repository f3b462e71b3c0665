// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides durable client state for campus-tui: the user
// identity and the conversation log, persisted under fixed keys in a
// string-keyed KV store.
//
// # Key Types
//
//   - KV: the durable substrate (Get/Set/Delete); Set is all-or-nothing
//   - FileKV: one file per key, atomic rename writes
//   - SQLiteKV: single-table SQLite database (modernc.org/sqlite)
//   - Store: the in-memory conversation log mirrored to the KV on every
//     mutation, with change notification for the UI
//
// # Usage
//
// Open a backend and hydrate the log:
//
//	kv, err := storage.NewFileKV(dataDir)
//	store := storage.NewStore(kv)
//
// Append and reset:
//
//	store.Append(model.NewUserMessage("bonjour"))
//	store.Reset() // deletes the persisted key entirely
//
// # Failure Model
//
// A missing or unparsable snapshot hydrates to an empty log; the cause goes
// to stderr, never to the user. Persistence failures degrade the session to
// in-memory only rather than interrupting it.
package storage
