// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package identity manages the durable pseudonymous user identifier sent
// with every chat request. The identifier is a session handle, not a
// credential: it carries no authentication and the service trusts it as-is.
package identity

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/avcampus/campus-tui/internal/storage"
)

// =============================================================================
// IDENTITY MANAGER
// =============================================================================

// Manager owns the user identifier persisted under storage.KeyUserID.
type Manager struct {
	kv storage.KV

	// cached is the identity for this session. When persistence fails it
	// still holds a generated value, so the session works ephemerally.
	cached string
}

// NewManager creates a manager over kv.
func NewManager(kv storage.KV) *Manager {
	return &Manager{kv: kv}
}

// GetOrCreate returns the persisted identifier, generating and persisting
// one on first use. Idempotent: repeated calls return the same value.
//
// RELIABILITY: storage failure degrades to an ephemeral in-memory identity
// for the rest of the session; it never aborts the client. The cost is a
// fresh identifier next launch, which the service treats as a new user.
func (m *Manager) GetOrCreate() string {
	if m.cached != "" {
		return m.cached
	}

	value, found, err := m.kv.Get(storage.KeyUserID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to read user identity: %v\n", err)
	}
	if found && value != "" {
		m.cached = value
		return m.cached
	}

	m.cached = Generate()
	if err := m.kv.Set(storage.KeyUserID, m.cached); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to persist user identity, continuing ephemerally: %v\n", err)
	}
	return m.cached
}

// Set overwrites the identifier unconditionally. No format validation is
// applied: the value is an opaque handle and the service accepts anything.
func (m *Manager) Set(id string) error {
	m.cached = id
	if err := m.kv.Set(storage.KeyUserID, id); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to persist user identity: %v\n", err)
		return err
	}
	return nil
}

// Generate creates a fresh identifier: "web-" + random hex + the current
// time in hex. The random component uses crypto/rand for collision
// resistance across installs; the time suffix makes even a broken RNG
// produce distinct values over time.
func Generate() string {
	bytes := make([]byte, 10)
	rand.Read(bytes)
	return "web-" + hex.EncodeToString(bytes) + strconv.FormatInt(time.Now().UnixMilli(), 16)
}
