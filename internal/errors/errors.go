// internal/errors/errors.go - failure taxonomy shared by the pipeline and the HTTP layer
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure by how it is recovered.
type Kind int

const (
	// KindUnexpected is anything that escapes the other kinds. Surfaced as 500.
	KindUnexpected Kind = iota
	// KindSearch is a fetch or parse failure of the search results page.
	KindSearch
	// KindEnrichment is a fetch or parse failure of a single detail page.
	KindEnrichment
	// KindFieldParse is a single field that did not match its expected pattern.
	KindFieldParse
	// KindValidation is a bad inbound request. Surfaced as 400.
	KindValidation
	// KindUnauthorized is a missing credential. Surfaced as 401.
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindSearch:
		return "search"
	case KindEnrichment:
		return "enrichment"
	case KindFieldParse:
		return "field_parse"
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unexpected"
	}
}

// Error carries a Kind, the operation that failed and an optional
// user-facing message alongside the underlying cause.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Op == "" {
		return fmt.Sprintf("%s: %s", e.Kind, msg)
	}
	if e.Message != "" && e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same Kind, so callers can write
// errors.Is(err, &Error{Kind: KindValidation}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

// E wraps err with a kind and operation name.
func E(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// New builds an error whose message is safe to show to API callers.
func New(kind Kind, op, message string) error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// KindOf reports the kind of the outermost *Error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// HTTPStatus maps an error onto the status code returned to API callers.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the message shown to API callers. Internal
// details never leak for 5xx errors.
func UserMessage(err error) string {
	var e *Error
	switch KindOf(err) {
	case KindValidation:
		if stderrors.As(err, &e) && e.Message != "" {
			return e.Message
		}
		return "Bad request"
	case KindUnauthorized:
		return "Unauthorized"
	default:
		return "Internal server error"
	}
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}
