// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package identity

import (
	"errors"
	"strings"
	"testing"

	"github.com/avcampus/campus-tui/internal/storage"
)

// failingKV simulates a broken storage backend.
type failingKV struct{}

func (failingKV) Get(string) (string, bool, error) { return "", false, errors.New("disk gone") }
func (failingKV) Set(string, string) error         { return errors.New("disk gone") }
func (failingKV) Delete(string) error              { return errors.New("disk gone") }

func newTestManager(t *testing.T) (*Manager, storage.KV) {
	t.Helper()
	kv, err := storage.NewFileKV(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileKV failed: %v", err)
	}
	return NewManager(kv), kv
}

func TestGetOrCreate_GeneratesAndPersists(t *testing.T) {
	mgr, kv := newTestManager(t)

	id := mgr.GetOrCreate()
	if !strings.HasPrefix(id, "web-") {
		t.Errorf("id = %q, want web- prefix", id)
	}
	// web- plus 20 hex chars of randomness plus a hex timestamp
	if len(id) < 4+20+8 {
		t.Errorf("id too short: %q (%d chars)", id, len(id))
	}

	value, found, err := kv.Get(storage.KeyUserID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found || value != id {
		t.Errorf("Persisted = (%q, %v), want (%q, true)", value, found, id)
	}
}

func TestGetOrCreate_Idempotent(t *testing.T) {
	mgr, _ := newTestManager(t)

	first := mgr.GetOrCreate()
	second := mgr.GetOrCreate()
	if first != second {
		t.Errorf("GetOrCreate not idempotent: %q vs %q", first, second)
	}
}

func TestGetOrCreate_ReturnsExistingValue(t *testing.T) {
	mgr, kv := newTestManager(t)
	if err := kv.Set(storage.KeyUserID, "web-existing"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if got := mgr.GetOrCreate(); got != "web-existing" {
		t.Errorf("GetOrCreate = %q, want web-existing", got)
	}
}

func TestGetOrCreate_SurvivesRestart(t *testing.T) {
	kv, err := storage.NewFileKV(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileKV failed: %v", err)
	}

	first := NewManager(kv).GetOrCreate()
	second := NewManager(kv).GetOrCreate()
	if first != second {
		t.Errorf("Identity not stable across restarts: %q vs %q", first, second)
	}
}

func TestGetOrCreate_StorageFailureDegradesToEphemeral(t *testing.T) {
	mgr := NewManager(failingKV{})

	id := mgr.GetOrCreate()
	if !strings.HasPrefix(id, "web-") {
		t.Errorf("id = %q, want web- prefix even when storage fails", id)
	}
	// The ephemeral identity stays stable for the session.
	if mgr.GetOrCreate() != id {
		t.Error("Ephemeral identity should be cached for the session")
	}
}

func TestSet_OverwritesUnconditionally(t *testing.T) {
	mgr, kv := newTestManager(t)
	mgr.GetOrCreate()

	// Any opaque value is accepted, no format check.
	if err := mgr.Set("etudiant-42"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := mgr.GetOrCreate(); got != "etudiant-42" {
		t.Errorf("GetOrCreate after Set = %q, want etudiant-42", got)
	}

	value, _, _ := kv.Get(storage.KeyUserID)
	if value != "etudiant-42" {
		t.Errorf("Persisted = %q, want etudiant-42", value)
	}
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := Generate()
		if seen[id] {
			t.Fatalf("Duplicate identity: %s", id)
		}
		seen[id] = true
	}
}
