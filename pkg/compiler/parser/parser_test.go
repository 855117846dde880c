package parser_test

import (
	"errors"
	"testing"

	"github.com/lattice-lang/pyfront/pkg/compiler/ast"
	"github.com/lattice-lang/pyfront/pkg/compiler/lexer"
	"github.com/lattice-lang/pyfront/pkg/compiler/lexerr"
	"github.com/lattice-lang/pyfront/pkg/compiler/parseerr"
	"github.com/lattice-lang/pyfront/pkg/compiler/parser"
)

func TestPrecedenceOrdersCorrectly(t *testing.T) {
	tests := []struct {
		source string
		outer  ast.BinaryOpType
	}{
		{"1 + 2 * 3", ast.Add},
		{"1 * 2 + 3", ast.Add},
		{"1 - 2 / 3", ast.Subtract},
		{"1 | 2 & 3", ast.BitwiseOr},
		{"1 & 2 ^ 3", ast.BitwiseXor},
		{"1 ^ 2 | 3", ast.BitwiseOr},
		{"1 << 2 + 3", ast.LeftShift},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			root := parseModule(t, tt.source)
			m := root.(*ast.Module)
			top := m.Body[0].(*ast.ExprStmt).Value.(*ast.BinaryOp)
			if top.Op != tt.outer {
				t.Fatalf("outermost op = %v, want %v", top.Op, tt.outer)
			}
		})
	}
}

func TestUnaryBindsTighterThanBinary(t *testing.T) {
	root := parseModule(t, "-a + b")
	m := root.(*ast.Module)
	top := m.Body[0].(*ast.ExprStmt).Value.(*ast.BinaryOp)
	if top.Op != ast.Add {
		t.Fatalf("outermost op = %v, want Add", top.Op)
	}
	unary, ok := top.LHS.(*ast.UnaryOp)
	if !ok {
		t.Fatalf("lhs = %T, want *ast.UnaryOp", top.LHS)
	}
	if unary.Op != ast.Negative {
		t.Fatalf("unary op = %v, want Negative", unary.Op)
	}
}

func TestNotBindsLooserThanComparison(t *testing.T) {
	// "not a < b" parses as "not (a < b)": NOT's precedence is below
	// COMPARISON, so NOT's operand recursion (one tier above NOT's own
	// precedence) still reaches down to COMPARISON's tier and picks up
	// the comparison as its operand.
	root := parseModule(t, "not a < b")
	m := root.(*ast.Module)
	unary := m.Body[0].(*ast.ExprStmt).Value.(*ast.UnaryOp)
	if unary.Op != ast.Not {
		t.Fatalf("op = %v, want Not", unary.Op)
	}
	if _, ok := unary.Operand.(*ast.Compare); !ok {
		t.Fatalf("operand = %T, want *ast.Compare", unary.Operand)
	}
}

func TestUnexpectedTokenAtStatementStart(t *testing.T) {
	l := lexer.New()
	l.SetSource(") \n")
	_, err := parser.New(l.MakeReader(), parser.ModeModule).Parse()
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, parseerr.ErrUnexpectedToken) {
		t.Fatalf("expected ErrUnexpectedToken, got %v", err)
	}
}

func TestBareAssignWithNoTargetIsRejected(t *testing.T) {
	l := lexer.New()
	l.SetSource("= 1\n")
	_, err := parser.New(l.MakeReader(), parser.ModeModule).Parse()
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, parseerr.ErrUnexpectedToken) {
		t.Fatalf("expected ErrUnexpectedToken, got %v", err)
	}
}

func TestMissingColonAfterIfIsRejected(t *testing.T) {
	l := lexer.New()
	l.SetSource("if a\n    b\n")
	_, err := parser.New(l.MakeReader(), parser.ModeModule).Parse()
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, parseerr.ErrExpectedKind) {
		t.Fatalf("expected ErrExpectedKind, got %v", err)
	}
}

// TestMalformedIndentationReturnsErrorNotPanic pins Parse's contract
// when a Parser reads directly from a lexer.Lexer's reader (rather than
// going through lexer.Lex): the lexer panics on indentation that isn't
// a multiple of IndentationWidth, and Parse must recover that panic and
// return it as an error rather than letting it escape the call.
func TestMalformedIndentationReturnsErrorNotPanic(t *testing.T) {
	l := lexer.New()
	l.SetSource("if a:\n   b\n")
	_, err := parser.New(l.MakeReader(), parser.ModeModule).Parse()
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, lexerr.ErrUnexpectedIndentation) {
		t.Fatalf("expected ErrUnexpectedIndentation, got %v", err)
	}
}
