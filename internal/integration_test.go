// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package internal provides integration tests for the complete campus-tui
// pipeline.
//
// These tests verify end-to-end functionality including:
// - Identity creation and reuse across collaborators
// - Chat dispatch against a live HTTP test server
// - Conversation persistence across store restarts
// - Failure handling with the fixed error bubble
// - Feedback correlation to the last bot message
// - Reset visibility across storage backends
package internal

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/avcampus/campus-tui/internal/api"
	"github.com/avcampus/campus-tui/internal/dispatch"
	"github.com/avcampus/campus-tui/internal/feedback"
	"github.com/avcampus/campus-tui/internal/identity"
	"github.com/avcampus/campus-tui/internal/model"
	"github.com/avcampus/campus-tui/internal/storage"
)

// =============================================================================
// TEST UTILITIES
// =============================================================================

type pipeline struct {
	KV         storage.KV
	Store      *storage.Store
	Identity   *identity.Manager
	Client     *api.Client
	Dispatcher *dispatch.Dispatcher
	Correlator *feedback.Correlator
}

// newPipeline wires the full collaborator chain over a file KV, the way
// main.go does at startup.
func newPipeline(t *testing.T, dir, baseURL string) *pipeline {
	t.Helper()

	kv, err := storage.NewFileKV(dir)
	if err != nil {
		t.Fatalf("NewFileKV: %v", err)
	}
	store := storage.NewStore(kv)
	ident := identity.NewManager(kv)
	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: baseURL})

	return &pipeline{
		KV:         kv,
		Store:      store,
		Identity:   ident,
		Client:     client,
		Dispatcher: dispatch.NewDispatcher(store, client, ident),
		Correlator: feedback.NewCorrelator(store, client),
	}
}

// assistantServer answers /chat and /feedback like the campus backend,
// counting hits and capturing the last feedback body.
func assistantServer(t *testing.T) (*httptest.Server, *atomic.Int32, *atomic.Int32, *[]byte) {
	t.Helper()

	var chatHits, feedbackHits atomic.Int32
	var lastFeedback []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/chat":
			chatHits.Add(1)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"answer":        "Le certificat de scolarité se télécharge depuis ton espace étudiant.",
				"intent":        "certificat_scolarite",
				"confidence":    0.93,
				"chat_event_id": 4217,
				"sources": []map[string]any{
					{"id": 42, "title": "Guide de la scolarité", "type": "faq"},
				},
			})
		case "/feedback":
			feedbackHits.Add(1)
			lastFeedback, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &chatHits, &feedbackHits, &lastFeedback
}

// =============================================================================
// END-TO-END FLOW
// =============================================================================

func TestPipeline_SendPersistAndRate(t *testing.T) {
	srv, chatHits, feedbackHits, lastFeedback := assistantServer(t)
	p := newPipeline(t, t.TempDir(), srv.URL)
	ctx := context.Background()

	if !p.Dispatcher.Send(ctx, "Comment obtenir un certificat de scolarité ?") {
		t.Fatal("Send rejected a valid message")
	}
	if got := chatHits.Load(); got != 1 {
		t.Fatalf("chat hits = %d, want 1", got)
	}

	log := p.Store.Messages()
	if len(log) != 2 {
		t.Fatalf("log length = %d, want 2", len(log))
	}
	if log[0].Role != model.RoleUser || log[1].Role != model.RoleBot {
		t.Fatalf("roles = %s/%s, want user/bot", log[0].Role, log[1].Role)
	}
	if log[1].IsError() {
		t.Fatalf("bot message unexpectedly marked as error: %+v", log[1].Meta)
	}
	if got := log[1].ChatEventID(); got != "4217" {
		t.Fatalf("ChatEventID = %q, want %q", got, "4217")
	}

	// Rating correlates to the bot message recorded above.
	if err := p.Correlator.Submit(ctx, 5, "Très clair"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got := feedbackHits.Load(); got != 1 {
		t.Fatalf("feedback hits = %d, want 1", got)
	}
	var fb map[string]any
	if err := json.Unmarshal(*lastFeedback, &fb); err != nil {
		t.Fatalf("feedback body: %v", err)
	}
	// Numeric event ids go back on the wire as JSON numbers.
	if fb["chat_event_id"] != float64(4217) {
		t.Errorf("feedback chat_event_id = %v, want 4217", fb["chat_event_id"])
	}
	if fb["rating"] != float64(5) {
		t.Errorf("feedback rating = %v, want 5", fb["rating"])
	}

	// Rating never touches the conversation log.
	if after := p.Store.Messages(); len(after) != len(log) {
		t.Errorf("log length changed after feedback: %d -> %d", len(log), len(after))
	}
}

func TestPipeline_ConversationSurvivesRestart(t *testing.T) {
	srv, _, _, _ := assistantServer(t)
	dir := t.TempDir()
	ctx := context.Background()

	first := newPipeline(t, dir, srv.URL)
	if !first.Dispatcher.Send(ctx, "Où trouver mon emploi du temps ?") {
		t.Fatal("Send rejected a valid message")
	}
	userID := first.Identity.GetOrCreate()

	// Fresh collaborators over the same directory, as a new process start.
	second := newPipeline(t, dir, srv.URL)
	log := second.Store.Messages()
	if len(log) != 2 {
		t.Fatalf("log length after restart = %d, want 2", len(log))
	}
	if reloaded := second.Identity.GetOrCreate(); reloaded != userID {
		t.Errorf("identity after restart = %q, want %q", reloaded, userID)
	}
}

func TestPipeline_BackendFailureRecordsErrorBubble(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service indisponible", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	p := newPipeline(t, t.TempDir(), srv.URL)
	if !p.Dispatcher.Send(context.Background(), "Bonjour") {
		t.Fatal("Send must accept the message even when the backend will fail")
	}

	log := p.Store.Messages()
	if len(log) != 2 {
		t.Fatalf("log length = %d, want 2", len(log))
	}
	if !log[1].IsError() {
		t.Fatal("bot message should carry meta.error")
	}
	if log[1].Text != dispatch.SendErrorText {
		t.Errorf("error bubble text = %q, want %q", log[1].Text, dispatch.SendErrorText)
	}
	if p.Dispatcher.InFlight() {
		t.Error("in-flight flag must clear after a failed send")
	}
}

func TestPipeline_ResetVisibleOnSQLiteBackend(t *testing.T) {
	srv, _, _, _ := assistantServer(t)
	ctx := context.Background()

	kv, err := storage.NewSQLiteKV(filepath.Join(t.TempDir(), "campus.db"))
	if err != nil {
		t.Fatalf("NewSQLiteKV: %v", err)
	}
	defer kv.Close()

	store := storage.NewStore(kv)
	ident := identity.NewManager(kv)
	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: srv.URL})
	d := dispatch.NewDispatcher(store, client, ident)

	if !d.Send(ctx, "Comment contacter la scolarité ?") {
		t.Fatal("Send rejected a valid message")
	}
	if err := store.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if n := store.Len(); n != 0 {
		t.Fatalf("log length after reset = %d, want 0", n)
	}

	// Identity survives a conversation reset.
	if id := ident.GetOrCreate(); id == "" {
		t.Error("identity lost after conversation reset")
	}
}
