// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/avcampus/campus-tui/internal/model"
)

// =============================================================================
// FILE KV TESTS
// =============================================================================

func TestFileKV_GetSetDelete(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileKV failed: %v", err)
	}

	// Absent key is not an error
	_, found, err := kv.Get(KeyUserID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("Expected absent key")
	}

	if err := kv.Set(KeyUserID, "web-abc123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, found, err := kv.Get(KeyUserID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found || value != "web-abc123" {
		t.Errorf("Get = (%q, %v), want (web-abc123, true)", value, found)
	}

	if err := kv.Delete(KeyUserID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	_, found, _ = kv.Get(KeyUserID)
	if found {
		t.Error("Key should be absent after Delete")
	}
}

func TestFileKV_DeleteAbsentKeyIsNoOp(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileKV failed: %v", err)
	}
	if err := kv.Delete("never_set"); err != nil {
		t.Errorf("Delete of absent key should be a no-op, got %v", err)
	}
}

func TestFileKV_Overwrite(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileKV failed: %v", err)
	}
	kv.Set(KeyUserID, "first")
	kv.Set(KeyUserID, "second")

	value, _, _ := kv.Get(KeyUserID)
	if value != "second" {
		t.Errorf("Get = %q, want %q", value, "second")
	}
}

// =============================================================================
// SQLITE KV TESTS
// =============================================================================

func TestSQLiteKV_GetSetDelete(t *testing.T) {
	kv, err := NewSQLiteKV(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("NewSQLiteKV failed: %v", err)
	}
	defer kv.Close()

	_, found, err := kv.Get(KeyMessages)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("Expected absent key")
	}

	if err := kv.Set(KeyMessages, `[{"role":"user"}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, found, err := kv.Get(KeyMessages)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found || value != `[{"role":"user"}]` {
		t.Errorf("Get = (%q, %v)", value, found)
	}

	// Upsert replaces
	if err := kv.Set(KeyMessages, `[]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, _, _ = kv.Get(KeyMessages)
	if value != `[]` {
		t.Errorf("Get after upsert = %q, want []", value)
	}

	if err := kv.Delete(KeyMessages); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	_, found, _ = kv.Get(KeyMessages)
	if found {
		t.Error("Key should be absent after Delete")
	}
}

func TestSQLiteKV_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	kv, err := NewSQLiteKV(path)
	if err != nil {
		t.Fatalf("NewSQLiteKV failed: %v", err)
	}
	kv.Set(KeyUserID, "web-persist")
	kv.Close()

	kv2, err := NewSQLiteKV(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer kv2.Close()

	value, found, err := kv2.Get(KeyUserID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found || value != "web-persist" {
		t.Errorf("Get after reopen = (%q, %v)", value, found)
	}
}

// =============================================================================
// CONVERSATION STORE TESTS
// =============================================================================

func newTestStore(t *testing.T) (*Store, *FileKV) {
	t.Helper()
	kv, err := NewFileKV(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileKV failed: %v", err)
	}
	return NewStore(kv), kv
}

func TestStore_AppendPersistsAndReloads(t *testing.T) {
	store, kv := newTestStore(t)

	store.Append(model.NewUserMessage("Quels sont les horaires de la BU ?"))
	store.Append(model.NewBotMessage("La BU est ouverte de 8h à 22h.", &model.Meta{
		Intent:  "horaires",
		Sources: []model.Source{},
	}))

	// A fresh store over the same KV sees the same log.
	restored := NewStore(kv)
	msgs := restored.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len(Messages) = %d, want 2", len(msgs))
	}
	if msgs[0].Role != model.RoleUser || msgs[1].Role != model.RoleBot {
		t.Errorf("Role order = %v, %v", msgs[0].Role, msgs[1].Role)
	}
	if msgs[1].Meta == nil || msgs[1].Meta.Intent != "horaires" {
		t.Errorf("Meta not round-tripped: %+v", msgs[1].Meta)
	}
}

func TestStore_ResetDeletesPersistedKey(t *testing.T) {
	store, kv := newTestStore(t)

	store.Append(model.NewUserMessage("bonjour"))
	if _, found, _ := kv.Get(KeyMessages); !found {
		t.Fatal("Snapshot should exist after append")
	}

	if err := store.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("Len after reset = %d, want 0", store.Len())
	}

	// The key must be gone, not rewritten as an empty snapshot.
	if _, found, _ := kv.Get(KeyMessages); found {
		t.Error("Persisted key should be deleted after reset")
	}
}

func TestStore_CorruptSnapshotYieldsEmptyLog(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileKV failed: %v", err)
	}
	if err := kv.Set(KeyMessages, "{not valid json"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	store := NewStore(kv)
	if store.Len() != 0 {
		t.Errorf("Len = %d, want 0 for corrupt snapshot", store.Len())
	}

	// The client stays usable: a new append works and persists.
	store.Append(model.NewUserMessage("encore là"))
	if store.Len() != 1 {
		t.Errorf("Len after append = %d, want 1", store.Len())
	}
}

func TestStore_MissingSnapshotYieldsEmptyLog(t *testing.T) {
	store, _ := newTestStore(t)
	if store.Len() != 0 {
		t.Errorf("Len = %d, want 0 for missing snapshot", store.Len())
	}
}

func TestStore_LastBotMessage(t *testing.T) {
	store, _ := newTestStore(t)

	if _, found := store.LastBotMessage(); found {
		t.Error("Empty log should have no last bot message")
	}

	store.Append(model.NewUserMessage("A"))
	store.Append(model.NewBotMessage("B", &model.Meta{ChatEventID: "1"}))
	store.Append(model.NewUserMessage("C"))
	store.Append(model.NewBotMessage("D", &model.Meta{ChatEventID: "2"}))

	last, found := store.LastBotMessage()
	if !found {
		t.Fatal("Expected a last bot message")
	}
	if last.Text != "D" || last.ChatEventID() != "2" {
		t.Errorf("LastBotMessage = %q (event %q), want D (event 2)", last.Text, last.ChatEventID())
	}
}

func TestStore_LastBotMessage_UserTail(t *testing.T) {
	store, _ := newTestStore(t)
	store.Append(model.NewBotMessage("B", nil))
	store.Append(model.NewUserMessage("pending question"))

	last, found := store.LastBotMessage()
	if !found || last.Text != "B" {
		t.Errorf("LastBotMessage = (%q, %v), want (B, true)", last.Text, found)
	}
}

func TestStore_LastBotMessage_OnlyUsers(t *testing.T) {
	store, _ := newTestStore(t)
	store.Append(model.NewUserMessage("A"))
	if _, found := store.LastBotMessage(); found {
		t.Error("Log without bot messages should have no last bot message")
	}
}

func TestStore_SubscribersNotifiedOnMutation(t *testing.T) {
	store, _ := newTestStore(t)

	calls := 0
	store.Subscribe(func() { calls++ })

	store.Append(model.NewUserMessage("un"))
	store.Append(model.NewBotMessage("deux", nil))
	store.Reset()

	if calls != 3 {
		t.Errorf("Subscriber called %d times, want 3", calls)
	}
}

func TestStore_MessagesReturnsCopy(t *testing.T) {
	store, _ := newTestStore(t)
	store.Append(model.NewUserMessage("original"))

	msgs := store.Messages()
	msgs[0].Text = "mutated"

	if store.Messages()[0].Text != "original" {
		t.Error("Mutating the returned slice should not affect the store")
	}
}

func TestStore_LoadRehydratesAfterExternalChange(t *testing.T) {
	store, kv := newTestStore(t)
	store.Append(model.NewUserMessage("avant"))

	// Another process rewrote the snapshot.
	kv.Set(KeyMessages, `[]`)

	msgs := store.Load()
	if len(msgs) != 0 {
		t.Errorf("len(Load()) = %d, want 0", len(msgs))
	}
}

func TestStore_WithSQLiteBackend(t *testing.T) {
	kv, err := NewSQLiteKV(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("NewSQLiteKV failed: %v", err)
	}
	defer kv.Close()

	store := NewStore(kv)
	store.Append(model.NewUserMessage("via sqlite"))

	restored := NewStore(kv)
	if restored.Len() != 1 {
		t.Errorf("Len = %d, want 1", restored.Len())
	}
}

func TestFileKV_SnapshotIsPlainJSONOnDisk(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	if err != nil {
		t.Fatalf("NewFileKV failed: %v", err)
	}
	store := NewStore(kv)
	store.Append(model.NewUserMessage("lisible"))

	data, err := os.ReadFile(filepath.Join(dir, KeyMessages))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(data) == 0 || data[0] != '[' {
		t.Errorf("Snapshot should be a JSON array, got %q", data)
	}
}
