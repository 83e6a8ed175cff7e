package airmee

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the error taxonomy. Every failure surfaced by this
// package carries exactly one kind.
type Kind string

const (
	// KindInvalidArgument means caller-supplied input failed a documented
	// precondition. These errors never reach the network.
	KindInvalidArgument Kind = "invalid_argument"

	// KindAuthorization means the provider rejected the credentials (HTTP 401).
	KindAuthorization Kind = "authorization"

	// KindUnknownPlace means the provider does not recognise the place
	// identifier (HTTP 404 on lookup operations).
	KindUnknownPlace Kind = "unknown_place"

	// KindDeliveryCannotBeRequested means the provider refused the delivery
	// request (HTTP 404 on the request operation).
	KindDeliveryCannotBeRequested Kind = "delivery_cannot_be_requested"

	// KindAddressParsing means the provider could not parse the supplied
	// address (HTTP 412 on the request operation).
	KindAddressParsing Kind = "address_parsing"

	// KindServerError means the provider returned an unexpected status, an
	// unparseable body, or a structurally invalid success body.
	KindServerError Kind = "server_error"
)

// Error is the error type returned by every operation in this package.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("airmee: %s", e.Kind)
	}
	return fmt.Sprintf("airmee: %s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches two Errors by kind, so errors.Is(err, ErrUnknownPlace) works
// regardless of message or status code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel errors, one per kind, for use with errors.Is.
var (
	ErrInvalidArgument           = &Error{Kind: KindInvalidArgument}
	ErrAuthorization             = &Error{Kind: KindAuthorization}
	ErrUnknownPlace              = &Error{Kind: KindUnknownPlace}
	ErrDeliveryCannotBeRequested = &Error{Kind: KindDeliveryCannotBeRequested}
	ErrAddressParsing            = &Error{Kind: KindAddressParsing}
	ErrServer                    = &Error{Kind: KindServerError}
)

func newInvalidArgument(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// errMalformedResponse is raised whenever a success body fails structural
// decoding. The message and status are fixed regardless of which field was
// missing.
func errMalformedResponse() *Error {
	return &Error{Kind: KindServerError, Message: "A server error occurred", StatusCode: 500}
}

// Per-operation status tables. A status missing from the table falls through
// to a server error with the code forced to 500; a listed 500 keeps its code.
var (
	lookupStatusKinds = map[int]Kind{
		401: KindAuthorization,
		404: KindUnknownPlace,
		500: KindServerError,
	}

	deliveryStatusKinds = map[int]Kind{
		401: KindAuthorization,
		404: KindDeliveryCannotBeRequested,
		412: KindAddressParsing,
		500: KindServerError,
	}
)

// mapStatusError translates a non-2xx response into a typed error using the
// given operation table.
func mapStatusError(table map[int]Kind, statusCode int, body []byte) *Error {
	message := extractErrorMessage(body)

	kind, ok := table[statusCode]
	if !ok {
		return &Error{Kind: KindServerError, Message: message, StatusCode: 500}
	}
	return &Error{Kind: kind, Message: message, StatusCode: statusCode}
}

// extractErrorMessage pulls a human-readable message out of an error body.
// The provider sends {"message": ..., "extraMessage": ...}; anything else
// falls back to a generic message carrying the raw body.
func extractErrorMessage(body []byte) string {
	var payload struct {
		Message      *string `json:"message"`
		ExtraMessage *string `json:"extraMessage"`
	}

	if err := json.Unmarshal(body, &payload); err != nil || payload.Message == nil {
		return fmt.Sprintf("A server error occurred, and the message body could not be processed:\n\n%s", body)
	}

	message := *payload.Message
	if payload.ExtraMessage != nil {
		message += "\n\n" + *payload.ExtraMessage
	}
	return message
}
