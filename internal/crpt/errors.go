package crpt

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized matches an APIError with status 401
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTokenFormation means the session endpoint answered with an unreadable body
	ErrTokenFormation = errors.New("token formation error")
)

// ErrorInfo is one entry of the errors list of an ErrorModel
type ErrorInfo struct {
	Code         string `json:"code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	Description  string `json:"description,omitempty"`
}

// ErrorModel is the JSON error envelope of the operator API
type ErrorModel struct {
	Code         string      `json:"code,omitempty"`
	ErrorMessage string      `json:"error_message,omitempty"`
	Description  string      `json:"description,omitempty"`
	Errors       []ErrorInfo `json:"errors,omitempty"`
}

// Message returns error_message or, when it is empty, the messages of
// the nested errors joined with "; "
func (m *ErrorModel) Message() string {
	if m.ErrorMessage != "" {
		return m.ErrorMessage
	}
	msgs := make([]string, 0, len(m.Errors))
	for _, e := range m.Errors {
		msgs = append(msgs, e.ErrorMessage)
	}
	return strings.Join(msgs, "; ")
}

func (m *ErrorModel) String() string {
	return m.Message()
}

// APIError is a non-success response of the operator API
type APIError struct {
	StatusCode int
	Status     string
	Body       string
	Envelope   *ErrorModel
}

func (e *APIError) Error() string {
	return fmt.Sprintf("crpt api error (status %d): %s", e.StatusCode, e.Message())
}

// Message returns the envelope message, the raw body or the reason phrase
func (e *APIError) Message() string {
	switch {
	case e.Envelope != nil:
		return e.Envelope.Message()
	case e.Body != "":
		return e.Body
	case e.Status != "":
		return e.Status
	default:
		return http.StatusText(e.StatusCode)
	}
}

// Is reports whether target is ErrUnauthorized and the status is 401
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}
