// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/avcampus/campus-tui/internal/model"
)

// =============================================================================
// CONVERSATION STORE
// =============================================================================

// Store owns the in-memory conversation log and mirrors it to the KV under
// KeyMessages after every mutation, so the log survives restarts.
//
// Store is not safe for concurrent use. All mutation happens on the UI event
// loop, which serializes access; concurrent processes sharing a KV are
// last-writer-wins with no coordination.
type Store struct {
	kv   KV
	log  []model.Message
	subs []func()
}

// NewStore creates a store over kv and hydrates the log from the persisted
// snapshot (see Load for failure behavior).
func NewStore(kv KV) *Store {
	s := &Store{kv: kv}
	s.Load()
	return s
}

// Load re-reads the persisted snapshot into memory and returns the log.
//
// RELIABILITY: A missing or unparsable snapshot yields an empty log. Parse
// failures are reported on stderr but never to the user and never as an
// error: losing history must not brick the client.
func (s *Store) Load() []model.Message {
	s.log = nil

	raw, found, err := s.kv.Get(KeyMessages)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to read conversation snapshot: %v\n", err)
		return s.Messages()
	}
	if !found {
		return s.Messages()
	}

	var msgs []model.Message
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		fmt.Fprintf(os.Stderr, "warning: corrupt conversation snapshot, starting empty: %v\n", err)
		return s.Messages()
	}

	s.log = msgs
	return s.Messages()
}

// Append adds a message to the log, persists the full snapshot synchronously,
// and notifies subscribers. A persistence failure is reported on stderr; the
// in-memory log keeps the message so the session continues.
func (s *Store) Append(msg model.Message) []model.Message {
	s.log = append(s.log, msg)
	s.persist()
	s.notify()
	return s.Messages()
}

// Reset clears the conversation. The persisted key is deleted outright
// rather than overwritten with an empty snapshot, so a reset client is
// indistinguishable from a fresh one.
func (s *Store) Reset() error {
	s.log = nil
	err := s.kv.Delete(KeyMessages)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to delete conversation snapshot: %v\n", err)
	}
	s.notify()
	return err
}

// Messages returns a copy of the log in order.
func (s *Store) Messages() []model.Message {
	out := make([]model.Message, len(s.log))
	copy(out, s.log)
	return out
}

// Len returns the number of messages in the log.
func (s *Store) Len() int {
	return len(s.log)
}

// LastBotMessage returns the most recent bot message, scanning from the
// tail. It is derived state, never stored separately: feedback always
// correlates against whatever the log currently ends with.
func (s *Store) LastBotMessage() (model.Message, bool) {
	for i := len(s.log) - 1; i >= 0; i-- {
		if s.log[i].Role == model.RoleBot {
			return s.log[i], true
		}
	}
	return model.Message{}, false
}

// Subscribe registers fn to run after every log mutation (append or reset).
// Subscribers must not mutate the store.
func (s *Store) Subscribe(fn func()) {
	s.subs = append(s.subs, fn)
}

// persist writes the full snapshot under KeyMessages.
func (s *Store) persist() {
	data, err := json.Marshal(s.log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to encode conversation snapshot: %v\n", err)
		return
	}
	if err := s.kv.Set(KeyMessages, string(data)); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to persist conversation snapshot: %v\n", err)
	}
}

// notify runs the subscriber callbacks in registration order.
func (s *Store) notify() {
	for _, fn := range s.subs {
		fn()
	}
}
