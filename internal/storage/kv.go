// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/avcampus/campus-tui/internal/util"
)

// =============================================================================
// STORAGE KEYS
// =============================================================================

// Fixed keys under which client state persists. They are shared with the
// browser client of the same service, which keeps exported state portable.
const (
	KeyUserID   = "av_user_id"
	KeyMessages = "av_messages"
)

// =============================================================================
// KV INTERFACE
// =============================================================================

// KV is a durable string-keyed store. Implementations must make Set
// all-or-nothing: a crash mid-write leaves either the old value or the new
// one, never a torn value.
type KV interface {
	// Get returns the value for key. found is false when the key is absent;
	// absence is not an error.
	Get(key string) (value string, found bool, err error)

	// Set writes value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes key entirely. Deleting an absent key is a no-op.
	Delete(key string) error
}

// =============================================================================
// FILE BACKEND
// =============================================================================

// FileKV stores each key as one file in a directory.
type FileKV struct {
	// Dir is the directory holding one file per key.
	Dir string
}

// NewFileKV creates a file-backed KV rooted at dir.
func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileKV{Dir: dir}, nil
}

// Get implements KV.
func (f *FileKV) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// Set implements KV.
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func (f *FileKV) Set(key, value string) error {
	return util.AtomicWriteFile(f.path(key), []byte(value), 0644)
}

// Delete implements KV.
func (f *FileKV) Delete(key string) error {
	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// path returns the file path for a key. Keys are fixed constants, so no
// sanitization is needed.
func (f *FileKV) path(key string) string {
	return filepath.Join(f.Dir, key)
}
