package parseerr_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/lattice-lang/pyfront/pkg/compiler/parseerr"
	"github.com/lattice-lang/pyfront/pkg/compiler/token"
)

func TestErrorsWrapTheirSentinel(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unexpected token", parseerr.UnexpectedToken(token.PLUS), parseerr.ErrUnexpectedToken},
		{"expected expression", parseerr.ExpectedExpression(token.ASSIGN), parseerr.ErrExpectedExpression},
		{"expected kind", parseerr.ExpectedKind(token.COLON, token.COMMA, true), parseerr.ErrExpectedKind},
		{"bad compare", parseerr.BadCompare(), parseerr.ErrBadCompare},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.want) {
				t.Fatalf("errors.Is(%v, %v) = false", tt.err, tt.want)
			}
		})
	}
}

func TestDepletedStreamOmitsObservedKind(t *testing.T) {
	err := parseerr.ExpectedKind(token.COLON, 0, false)
	if !strings.Contains(err.Error(), "end of input") {
		t.Fatalf("expected message to mention end of input, got %q", err.Error())
	}
}

func TestUnexpectedTokenDepletedOmitsObserved(t *testing.T) {
	depleted := parseerr.UnexpectedTokenDepleted()
	if depleted.HasObserved {
		t.Fatal("expected HasObserved to be false for a depleted stream")
	}

	observed := parseerr.UnexpectedToken(token.COMMA)
	if !observed.HasObserved {
		t.Fatal("expected HasObserved to be true when a token was actually seen")
	}
}
