package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/watchb/internal/common"
)

// Server message strings matched by the client. These are a collaborator
// contract with the backend, not locally invented text.
const (
	wrongPasswordMessage = "Please request with correct password"
	invalidEmailMessage  = "Enter a valid email address."
	emailTakenMessage    = "user with this email already exists."
)

// Error is an HTTP-level API failure with the decoded response body.
//
// The backend returns either {"detail": "..."} or a per-field map
// {"field": ["msg", ...]}; both shapes land here.
type Error struct {
	Status int
	Detail string
	Fields map[string][]string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Detail)
	}
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for field, msgs := range e.Fields {
			parts = append(parts, field+": "+strings.Join(msgs, "; "))
		}
		return fmt.Sprintf("api: %d: %s", e.Status, strings.Join(parts, ", "))
	}
	return fmt.Sprintf("api: %d", e.Status)
}

// Unwrap maps well-known failures onto sentinel errors so callers can use
// errors.Is without inspecting bodies.
func (e *Error) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return common.ErrUnauthorized
	case e.fieldContains("curr_password", wrongPasswordMessage):
		return common.ErrWrongPassword
	case e.fieldContains("email", emailTakenMessage):
		return common.ErrEmailAlreadyRegistered
	case e.Status == http.StatusNotFound:
		return common.ErrNotFound
	}
	return nil
}

func (e *Error) fieldContains(field, message string) bool {
	for _, msg := range e.Fields[field] {
		if msg == message {
			return true
		}
	}
	return false
}

// FieldMessages returns the validation messages for one field, if any.
func (e *Error) FieldMessages(field string) []string {
	return e.Fields[field]
}

// newError decodes an error response body into *Error. Undecodable bodies
// still yield an Error carrying the status code.
func newError(status int, body []byte) *Error {
	apiErr := &Error{Status: status}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return apiErr
	}

	for key, val := range raw {
		if key == "detail" {
			_ = json.Unmarshal(val, &apiErr.Detail)
			continue
		}
		var msgs []string
		if err := json.Unmarshal(val, &msgs); err == nil {
			if apiErr.Fields == nil {
				apiErr.Fields = make(map[string][]string)
			}
			apiErr.Fields[key] = msgs
		}
	}
	return apiErr
}

// IsInvalidEmailPattern reports whether err is a validation failure of the
// email field's format.
func IsInvalidEmailPattern(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.fieldContains("email", invalidEmailMessage)
}
