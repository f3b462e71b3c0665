// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"
	"strconv"

	"github.com/avcampus/campus-tui/internal/model"
)

// ChannelWeb identifies this client family to the service. The terminal
// client shares the "web" channel with the browser client so answers and
// rate limits are handled identically.
const ChannelWeb = "web"

// =============================================================================
// CHAT TYPES
// =============================================================================

// ChatRequest is the payload for POST /chat.
type ChatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
	Channel string `json:"channel"`
}

// ChatResponse is the service's answer payload.
//
// Every field except Answer is optional: older backends omit intent scoring,
// and not all deployments emit chat event identifiers.
type ChatResponse struct {
	Answer      string
	Intent      string
	Confidence  *float64
	Entities    json.RawMessage
	Sources     []model.Source
	ChatEventID string
}

// UnmarshalJSON decodes the answer payload, normalizing the event
// identifier (string or number on the wire) and defaulting absent sources
// to an empty slice so callers never see nil.
func (r *ChatResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Answer      string          `json:"answer"`
		Intent      string          `json:"intent"`
		Confidence  *float64        `json:"confidence"`
		Entities    json.RawMessage `json:"entities"`
		Sources     []model.Source  `json:"sources"`
		ChatEventID json.RawMessage `json:"chat_event_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	eventID, err := model.FlexString(raw.ChatEventID)
	if err != nil {
		return err
	}

	sources := raw.Sources
	if sources == nil {
		sources = []model.Source{}
	}

	r.Answer = raw.Answer
	r.Intent = raw.Intent
	r.Confidence = raw.Confidence
	r.Entities = raw.Entities
	r.Sources = sources
	r.ChatEventID = eventID
	return nil
}

// Meta converts the answer payload into the metadata stored on the bot turn.
func (r *ChatResponse) Meta() *model.Meta {
	return &model.Meta{
		Intent:      r.Intent,
		Confidence:  r.Confidence,
		Entities:    r.Entities,
		Sources:     r.Sources,
		ChatEventID: r.ChatEventID,
	}
}

// =============================================================================
// FEEDBACK TYPES
// =============================================================================

// FeedbackRequest is the payload for POST /feedback.
type FeedbackRequest struct {
	ChatEventID string
	Rating      int

	// Comment is nil when the user supplied none; it serializes as JSON
	// null, which the service requires over an empty string.
	Comment *string
}

// MarshalJSON emits the event identifier as a JSON number when it is
// numeric. Deployed backends type the column as an integer and reject the
// quoted form.
func (r FeedbackRequest) MarshalJSON() ([]byte, error) {
	eventID := json.RawMessage(nil)
	if n, err := strconv.ParseInt(r.ChatEventID, 10, 64); err == nil {
		eventID, _ = json.Marshal(n)
	} else {
		eventID, _ = json.Marshal(r.ChatEventID)
	}

	return json.Marshal(struct {
		ChatEventID json.RawMessage `json:"chat_event_id"`
		Rating      int             `json:"rating"`
		Comment     *string         `json:"comment"`
	}{
		ChatEventID: eventID,
		Rating:      r.Rating,
		Comment:     r.Comment,
	})
}

// FeedbackResponse is the service's acknowledgment. Only Status is defined;
// any 2xx counts as accepted regardless of body.
type FeedbackResponse struct {
	Status string `json:"status"`
}
