// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// =============================================================================
// META TYPE
// =============================================================================

// Meta is the metadata attached to a bot turn.
//
// On a successful send it mirrors the assistant service's answer payload.
// On a failed send only Error is set, recording the transport or protocol
// detail behind the error bubble shown to the user.
type Meta struct {
	// Intent the service classified the question as, if any.
	Intent string `json:"intent,omitempty"`

	// Confidence of the classification in [0,1]. Pointer so that an
	// absent confidence is distinguishable from a reported 0.
	Confidence *float64 `json:"confidence,omitempty"`

	// Entities extracted from the question. The shape is service-defined,
	// so it is kept opaque and round-tripped verbatim.
	Entities json.RawMessage `json:"entities,omitempty"`

	// Sources cited for the answer, in service order. Never nil on a
	// successful turn: an answer without citations carries an empty slice.
	Sources []Source `json:"sources"`

	// ChatEventID correlates this answer with feedback submission.
	// Empty when the service did not emit one.
	ChatEventID string `json:"chat_event_id,omitempty"`

	// Error is the failure detail of an unsuccessful send.
	Error string `json:"error,omitempty"`
}

// HasConfidence reports whether the service reported a confidence score.
func (m *Meta) HasConfidence() bool {
	return m != nil && m.Confidence != nil
}

// =============================================================================
// SOURCE TYPE
// =============================================================================

// Source is one document reference cited for an answer.
type Source struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	ID    string `json:"id"`
}

// UnmarshalJSON accepts the source identifier as either a JSON string or a
// JSON number. The service contract says string, but deployed backends emit
// integer row IDs; both normalize to the string form.
func (s *Source) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type  string          `json:"type"`
		Title string          `json:"title"`
		ID    json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id, err := FlexString(raw.ID)
	if err != nil {
		return err
	}
	s.Type = raw.Type
	s.Title = raw.Title
	s.ID = id
	return nil
}

// FlexString decodes a JSON value that may be a string, a number, or null
// into its string form. Used for identifiers whose wire type varies across
// backend versions.
func FlexString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	// Integer identifiers must not pick up an exponent or decimal point.
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	return strings.TrimSpace(n.String()), nil
}
