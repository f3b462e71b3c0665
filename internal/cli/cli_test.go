// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the command-line surfaces of campus-tui.
//
// This test file covers argument parsing, text wrapping and the
// non-interactive command handlers.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avcampus/campus-tui/internal/api"
	"github.com/avcampus/campus-tui/internal/config"
	"github.com/avcampus/campus-tui/internal/dispatch"
	"github.com/avcampus/campus-tui/internal/feedback"
	"github.com/avcampus/campus-tui/internal/identity"
	"github.com/avcampus/campus-tui/internal/model"
	"github.com/avcampus/campus-tui/internal/storage"
)

// =============================================================================
// ARG PARSING TESTS
// =============================================================================

func TestParseArgs_Commands(t *testing.T) {
	tests := []struct {
		args []string
		want Command
	}{
		{nil, CmdTUI},
		{[]string{"tui"}, CmdTUI},
		{[]string{"ask", "bonjour"}, CmdAsk},
		{[]string{"a", "bonjour"}, CmdAsk},
		{[]string{"chat"}, CmdChat},
		{[]string{"history"}, CmdHistory},
		{[]string{"log"}, CmdHistory},
		{[]string{"reset"}, CmdReset},
		{[]string{"id"}, CmdID},
		{[]string{"version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
		{[]string{"frobnicate"}, CmdHelp},
	}

	for _, tc := range tests {
		cmd, _ := parseArgs(tc.args)
		if cmd != tc.want {
			t.Errorf("parseArgs(%v) = %v, want %v", tc.args, cmd, tc.want)
		}
	}
}

func TestParseArgs_GlobalFlags(t *testing.T) {
	cmd, args := parseArgs([]string{"--json", "--api", "http://example:9000", "ask", "où", "est", "la", "BU"})
	if cmd != CmdAsk {
		t.Fatalf("cmd = %v", cmd)
	}
	if !args.JSON {
		t.Error("JSON flag not parsed")
	}
	if args.APIBase != "http://example:9000" {
		t.Errorf("APIBase = %q", args.APIBase)
	}
	if args.Query != "où est la BU" {
		t.Errorf("Query = %q", args.Query)
	}
}

func TestParseArgs_APIEquals(t *testing.T) {
	_, args := parseArgs([]string{"--api=http://example:9000", "chat"})
	if args.APIBase != "http://example:9000" {
		t.Errorf("APIBase = %q", args.APIBase)
	}
}

func TestParseArgs_IDValue(t *testing.T) {
	cmd, args := parseArgs([]string{"id", "web-nouveau"})
	if cmd != CmdID {
		t.Fatalf("cmd = %v", cmd)
	}
	if args.Query != "web-nouveau" {
		t.Errorf("Query = %q", args.Query)
	}
}

func TestArgParser(t *testing.T) {
	p := NewArgParser([]string{"show", "--confirm", "--format=json", "--lines", "50", "extra"})

	if p.Subcommand() != "show" {
		t.Errorf("Subcommand = %q", p.Subcommand())
	}
	if !p.BoolFlag("confirm") {
		t.Error("confirm flag missing")
	}
	if p.Flag("format") != "json" {
		t.Errorf("format = %q", p.Flag("format"))
	}
	if p.FlagIntOrDefault("lines", 10) != 50 {
		t.Errorf("lines = %d", p.FlagIntOrDefault("lines", 10))
	}
	if p.FlagIntOrDefault("missing", 10) != 10 {
		t.Error("default not applied")
	}
	if p.PositionalCount() != 2 {
		t.Errorf("positional count = %d", p.PositionalCount())
	}
	if !p.HasFlag("format") || p.HasFlag("nope") {
		t.Error("HasFlag mismatch")
	}
}

// =============================================================================
// TERMINAL TESTS
// =============================================================================

func TestWrapText(t *testing.T) {
	text := "le service de scolarité délivre les certificats de scolarité sur demande"
	wrapped := WrapText(text, 30)

	for _, line := range strings.Split(wrapped, "\n") {
		if len([]rune(line)) > 28 {
			t.Errorf("line too long: %q", line)
		}
	}
	joined := strings.ReplaceAll(wrapped, "\n", " ")
	if joined != text {
		t.Errorf("wrap lost content: %q", joined)
	}
}

func TestWrapText_PreservesNewlines(t *testing.T) {
	text := "ligne une\nligne deux"
	if WrapText(text, 40) != text {
		t.Errorf("short lines should pass through, got %q", WrapText(text, 40))
	}
}

// =============================================================================
// COMMAND HANDLER TESTS
// =============================================================================

func newTestApp(t *testing.T, baseURL string) *App {
	t.Helper()

	kv, err := storage.NewFileKV(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	store := storage.NewStore(kv)
	ident := identity.NewManager(kv)
	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: baseURL})

	return &App{
		Config:     config.Default(),
		Store:      store,
		Client:     client,
		Dispatcher: dispatch.NewDispatcher(store, client, ident),
		Correlator: feedback.NewCorrelator(store, client),
		Identity:   ident,
	}
}

func TestHandleAsk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"answer": "À l'accueil du campus.", "chat_event_id": 8})
	}))
	defer srv.Close()
	app := newTestApp(t, srv.URL)

	err := app.HandleAsk(context.Background(), Args{Query: "Où est l'accueil ?", Quiet: true})
	if err != nil {
		t.Fatalf("HandleAsk: %v", err)
	}
	if app.Store.Len() != 2 {
		t.Errorf("store.Len() = %d, want 2", app.Store.Len())
	}
}

func TestHandleAsk_EmptyQuestion(t *testing.T) {
	app := newTestApp(t, "http://127.0.0.1:1")

	if err := app.HandleAsk(context.Background(), Args{Query: "  "}); err == nil {
		t.Error("empty question should fail")
	}
	if app.Store.Len() != 0 {
		t.Error("empty question should append nothing")
	}
}

func TestHandleAsk_BackendDown(t *testing.T) {
	app := newTestApp(t, "http://127.0.0.1:1")

	err := app.HandleAsk(context.Background(), Args{Query: "bonjour", Quiet: true})
	if err == nil {
		t.Fatal("unreachable backend should surface in the exit code")
	}
	// The failed turn is still recorded like everywhere else.
	last, ok := app.Store.LastBotMessage()
	if !ok || !last.IsError() {
		t.Error("failure should append the error bubble")
	}
}

func TestHandleReset_RequiresConfirm(t *testing.T) {
	app := newTestApp(t, "http://127.0.0.1:1")
	app.Store.Append(model.NewUserMessage("bonjour"))

	if err := app.HandleReset(Args{}); err == nil {
		t.Error("reset without --confirm should fail")
	}
	if app.Store.Len() != 1 {
		t.Error("reset without --confirm must not touch the log")
	}

	if err := app.HandleReset(Args{Raw: []string{"--confirm"}, Quiet: true}); err != nil {
		t.Fatalf("HandleReset: %v", err)
	}
	if app.Store.Len() != 0 {
		t.Error("confirmed reset should clear the log")
	}
}

func TestHandleID(t *testing.T) {
	app := newTestApp(t, "http://127.0.0.1:1")

	if err := app.HandleID(Args{Query: "web-choisi", Quiet: true}); err != nil {
		t.Fatalf("HandleID set: %v", err)
	}
	if app.Identity.GetOrCreate() != "web-choisi" {
		t.Errorf("identity = %q", app.Identity.GetOrCreate())
	}

	if err := app.HandleID(Args{Quiet: true}); err != nil {
		t.Fatalf("HandleID show: %v", err)
	}
}

// sealedKV rejects every write.
type sealedKV struct{}

func (sealedKV) Get(string) (string, bool, error) { return "", false, nil }
func (sealedKV) Set(string, string) error         { return errors.New("disque plein") }
func (sealedKV) Delete(string) error              { return nil }

func TestHandleID_PersistenceFailure(t *testing.T) {
	app := newTestApp(t, "http://127.0.0.1:1")
	app.Identity = identity.NewManager(sealedKV{})

	err := app.HandleID(Args{Query: "web-choisi", Quiet: true})
	if err == nil {
		t.Fatal("unpersisted identity must surface in the exit code")
	}
	if !strings.Contains(err.Error(), "non enregistré") {
		t.Errorf("err = %v", err)
	}
}

func TestHandleHistory_Empty(t *testing.T) {
	app := newTestApp(t, "http://127.0.0.1:1")

	if err := app.HandleHistory(Args{Quiet: true}); err != nil {
		t.Fatalf("HandleHistory: %v", err)
	}
}
