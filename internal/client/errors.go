package client

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind discriminates store failures. One case per kind the store
// can report, so translating to user messages is an exhaustive switch.
type ErrorKind int

const (
	KindServer ErrorKind = iota
	KindEmptyField
	KindInvalidAmount
	KindNotFound
	KindUnauthorized
)

func (k ErrorKind) String() string {
	switch k {
	case KindEmptyField:
		return "empty_field"
	case KindInvalidAmount:
		return "invalid_amount"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "server"
	}
}

// StoreError is a failure reported by the entry store. Field is set for
// the empty-field kind.
type StoreError struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *StoreError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("store error: %s", e.Kind)
}

// kindFromWire maps the store's wire tag to an ErrorKind. Messages
// containing the word "unauthorized" are classified as authorization
// failures even without a tag, so callers can prompt for sign-in instead
// of showing a generic error.
func kindFromWire(kind, message string) ErrorKind {
	switch kind {
	case "empty_field":
		return KindEmptyField
	case "invalid_amount":
		return KindInvalidAmount
	case "not_found":
		return KindNotFound
	case "unauthorized":
		return KindUnauthorized
	}
	if strings.Contains(strings.ToLower(message), "unauthorized") {
		return KindUnauthorized
	}
	return KindServer
}

// IsUnauthorized reports whether err is an authorization failure.
func IsUnauthorized(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind == KindUnauthorized
	}
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unauthorized")
}
