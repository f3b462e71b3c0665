// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dispatch turns raw user input into conversation turns: it appends
// the user message, issues the chat request, and appends exactly one bot
// message for the outcome, success or failure alike.
package dispatch

import (
	"context"
	"strings"

	"github.com/avcampus/campus-tui/internal/api"
	"github.com/avcampus/campus-tui/internal/identity"
	"github.com/avcampus/campus-tui/internal/model"
	"github.com/avcampus/campus-tui/internal/storage"
)

// SendErrorText is the user-facing bubble shown when a send fails, whatever
// the underlying cause. The technical detail lands in meta, not here.
const SendErrorText = "Erreur : impossible de contacter l'API. Vérifie que le backend tourne et que l'URL de l'API est correcte."

// =============================================================================
// DISPATCHER
// =============================================================================

// Dispatcher coordinates sends over the store and the assistant client.
//
// Dispatcher is single-threaded by contract: Begin and Resolve must run on
// the same goroutine (the UI event loop). Only the network call between
// them may happen elsewhere. InFlight is the only send gate; feedback and
// reset are not serialized behind it.
type Dispatcher struct {
	store    *storage.Store
	client   *api.Client
	identity *identity.Manager

	inFlight bool
}

// NewDispatcher creates a dispatcher over the given collaborators.
func NewDispatcher(store *storage.Store, client *api.Client, ident *identity.Manager) *Dispatcher {
	return &Dispatcher{store: store, client: client, identity: ident}
}

// InFlight reports whether a send is awaiting its response.
func (d *Dispatcher) InFlight() bool {
	return d.inFlight
}

// Begin starts a send: trims the input, rejects empty input and concurrent
// sends as silent no-ops, then appends the user message and raises the
// in-flight flag. On ok the caller must eventually call Resolve exactly
// once with the outcome of the chat request for the returned text.
func (d *Dispatcher) Begin(raw string) (text string, ok bool) {
	text = strings.TrimSpace(raw)
	if text == "" || d.inFlight {
		return "", false
	}

	d.inFlight = true
	d.store.Append(model.NewUserMessage(text))
	return text, true
}

// Request builds the chat request for a send begun with Begin.
func (d *Dispatcher) Request(text string) api.ChatRequest {
	return api.ChatRequest{
		UserID:  d.identity.GetOrCreate(),
		Message: text,
		Channel: api.ChannelWeb,
	}
}

// Resolve completes a send: it appends the bot turn for the outcome and
// clears the in-flight flag unconditionally, so a failed send never wedges
// the client. Errors become a fixed French error bubble with the technical
// detail in meta; they are never propagated.
func (d *Dispatcher) Resolve(resp *api.ChatResponse, err error) {
	defer func() { d.inFlight = false }()

	if err != nil {
		d.store.Append(model.NewBotMessage(SendErrorText, &model.Meta{Error: err.Error()}))
		return
	}

	d.store.Append(model.NewBotMessage(resp.Answer, resp.Meta()))
}

// Send performs a whole send synchronously: Begin, the chat request, and
// Resolve. It returns false when the input was rejected (empty or a send
// already in flight). Used by the one-shot CLI surfaces; the TUI splits the
// phases so the request runs off the event loop.
func (d *Dispatcher) Send(ctx context.Context, raw string) bool {
	text, ok := d.Begin(raw)
	if !ok {
		return false
	}

	resp, err := d.client.Chat(ctx, d.Request(text))
	d.Resolve(resp, err)
	return true
}
