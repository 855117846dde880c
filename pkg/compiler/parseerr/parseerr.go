// Package parseerr defines the error kinds pkg/compiler/parser can
// return. Every parse error is fatal for the current input; there is
// no local recovery.
package parseerr

import (
	"errors"
	"fmt"

	"github.com/lattice-lang/pyfront/pkg/compiler/token"
)

// Sentinel kinds. Wrap one of these with errors.Is to classify a
// parse failure without inspecting *Error's fields.
var (
	ErrUnexpectedToken    = errors.New("parser: unexpected token")
	ErrExpectedExpression = errors.New("parser: expected expression")
	ErrExpectedKind       = errors.New("parser: expected a specific token kind")
	ErrBadCompare         = errors.New("parser: comparison operator with no comparator")
)

// Error carries the expected/observed token kinds (where applicable)
// alongside the sentinel it wraps. Diagnostic strings name kinds by
// their canonical spelling; payload values are never included.
type Error struct {
	Sentinel error
	Expected token.Kind
	// HasExpected reports whether Expected is meaningful (only for
	// ErrExpectedKind).
	HasExpected bool
	Observed    token.Kind
	// HasObserved reports whether Observed is meaningful (the token
	// stream may be depleted, in which case there is nothing observed).
	HasObserved bool
}

func (e *Error) Error() string {
	switch {
	case errors.Is(e.Sentinel, ErrExpectedKind):
		if e.HasObserved {
			return fmt.Sprintf("%v: expected %v, got %v", e.Sentinel, e.Expected, e.Observed)
		}
		return fmt.Sprintf("%v: expected %v, got end of input", e.Sentinel, e.Expected)
	case e.HasObserved:
		return fmt.Sprintf("%v: got %v", e.Sentinel, e.Observed)
	default:
		return e.Sentinel.Error()
	}
}

func (e *Error) Unwrap() error { return e.Sentinel }

// UnexpectedToken constructs an ErrUnexpectedToken detail error for a
// token with no matching rule.
func UnexpectedToken(observed token.Kind) *Error {
	return &Error{Sentinel: ErrUnexpectedToken, Observed: observed, HasObserved: true}
}

// UnexpectedTokenDepleted constructs an ErrUnexpectedToken detail error
// for a depleted stream, where there was no token to observe at all.
func UnexpectedTokenDepleted() *Error {
	return &Error{Sentinel: ErrUnexpectedToken}
}

// ExpectedExpression constructs an ErrExpectedExpression detail error
// for a token whose rule has no prefix action.
func ExpectedExpression(observed token.Kind) *Error {
	return &Error{Sentinel: ErrExpectedExpression, Observed: observed, HasObserved: true}
}

// ExpectedExpressionDepleted constructs an ErrExpectedExpression detail
// error for a depleted stream, where there was no token to observe at
// all.
func ExpectedExpressionDepleted() *Error {
	return &Error{Sentinel: ErrExpectedExpression}
}

// ExpectedKind constructs an ErrExpectedKind detail error. ok
// indicates whether a token was observed at all; when false, Expect
// was called against a depleted stream.
func ExpectedKind(expected token.Kind, observed token.Kind, ok bool) *Error {
	return &Error{
		Sentinel: ErrExpectedKind, Expected: expected, HasExpected: true,
		Observed: observed, HasObserved: ok,
	}
}

// BadCompare constructs an ErrBadCompare detail error for a
// comparison operator with no following comparator.
func BadCompare() *Error {
	return &Error{Sentinel: ErrBadCompare}
}
