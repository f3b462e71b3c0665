// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package feedback correlates user ratings with the bot answer they apply
// to and submits them to the assistant service.
package feedback

import (
	"context"
	"fmt"

	"github.com/avcampus/campus-tui/internal/api"
	"github.com/avcampus/campus-tui/internal/storage"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrNoEventID is returned when the last bot answer carries no chat event
// identifier, so there is nothing to attach the rating to. This is an
// expected state (error bubbles and older backends have no identifier),
// not a fault: the caller shows a notice and no request is issued.
var ErrNoEventID = &CorrelationError{Message: "dernière réponse sans identifiant d'évènement"}

// ErrNoBotMessage is returned when the conversation has no bot answer yet.
var ErrNoBotMessage = &CorrelationError{Message: "aucune réponse à évaluer"}

// CorrelationError represents a feedback correlation failure.
// It implements the error interface and can be compared using errors.Is.
type CorrelationError struct {
	Message string
}

// Error implements the error interface.
func (e *CorrelationError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing correlation errors.
func (e *CorrelationError) Is(target error) bool {
	t, ok := target.(*CorrelationError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// =============================================================================
// CORRELATOR
// =============================================================================

// Correlator submits ratings for the most recent bot answer.
//
// Submitting feedback never mutates the conversation log, whatever the
// outcome, and is not serialized behind the send gate.
type Correlator struct {
	store  *storage.Store
	client *api.Client
}

// NewCorrelator creates a correlator over the store and client.
func NewCorrelator(store *storage.Store, client *api.Client) *Correlator {
	return &Correlator{store: store, client: client}
}

// Resolve validates the rating and correlates it with the last bot answer,
// returning the request to submit. Resolution happens against the current
// end of the log: there is no pre-registration of rateable answers. When
// the last answer has no event identifier (or there is no answer at all)
// a CorrelationError is returned and nothing must be sent.
//
// Resolve must run on the event loop; the returned request may then be
// sent from anywhere.
func (c *Correlator) Resolve(rating int, comment string) (api.FeedbackRequest, error) {
	if rating < 1 || rating > 5 {
		return api.FeedbackRequest{}, fmt.Errorf("note invalide %d: doit être entre 1 et 5", rating)
	}

	last, found := c.store.LastBotMessage()
	if !found {
		return api.FeedbackRequest{}, ErrNoBotMessage
	}
	eventID := last.ChatEventID()
	if eventID == "" {
		return api.FeedbackRequest{}, ErrNoEventID
	}

	req := api.FeedbackRequest{
		ChatEventID: eventID,
		Rating:      rating,
	}
	if comment != "" {
		req.Comment = &comment
	}
	return req, nil
}

// Send submits a resolved feedback request.
func (c *Correlator) Send(ctx context.Context, req api.FeedbackRequest) error {
	return c.client.SubmitFeedback(ctx, req)
}

// Submit rates the last bot answer synchronously: Resolve then Send.
// rating must be between 1 and 5; comment may be empty, in which case the
// service receives null.
func (c *Correlator) Submit(ctx context.Context, rating int, comment string) error {
	req, err := c.Resolve(rating, comment)
	if err != nil {
		return err
	}
	return c.Send(ctx, req)
}
