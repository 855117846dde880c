// Package parser implements a Pratt (top-down operator-precedence)
// parser over the token stream pkg/compiler/lexer produces, building
// the pkg/compiler/ast tree.
//
// Grounded on original_source/parser.cc's rule-table design (per-kind
// prefix/infix parse functions plus a precedence ladder walked with a
// >= comparison for left-associativity) generalized to the full
// statement/expression grammar described by the specification this
// module implements: the wired DEL/ASSIGN/binary/unary/constant/name
// rules come straight from parser.cc; If/elif/else and comparison-
// chain parsing are built fresh from the algorithm the original left
// as dead, commented-out rule-table entries. Unlike the original's
// explicit exprs_/stmts_/blocks_ working stacks, each parse function
// here returns its node directly — the original's own design notes
// call this an equally valid shape once statement rules no longer need
// to reach back for "the value already on top of the stack" (Assign is
// handled by passing that value in as a parameter instead).
package parser

import (
	"strconv"

	"github.com/lattice-lang/pyfront/pkg/compiler/ast"
	"github.com/lattice-lang/pyfront/pkg/compiler/lexerr"
	"github.com/lattice-lang/pyfront/pkg/compiler/parseerr"
	"github.com/lattice-lang/pyfront/pkg/compiler/stream"
	"github.com/lattice-lang/pyfront/pkg/compiler/token"
)

// Mode selects which Root shape Parse produces.
type Mode int

const (
	ModeModule Mode = iota
	ModeInteractive
	ModeExpression
)

// Precedence is the binding power of an expression rule. Levels are
// compared with >=. A left-associative operator recurses at
// precedence+1 for its own right-hand side, so the recursive call
// stops before absorbing another use of an operator at its own tier
// and leaves it for the outer loop to fold instead; a right-
// associative operator would recurse at its own precedence unchanged
// (no operator in this grammar needs that).
type Precedence int

const (
	PrecNone Precedence = iota
	PrecLambda
	PrecIfExp
	PrecOr
	PrecAnd
	PrecNot
	PrecComparison
	PrecBitwiseOr
	PrecBitwiseXor
	PrecBitwiseAnd
	PrecBitwiseShift
	PrecAddSubtract
	PrecMultiplyDivide
	PrecBitwiseNot
	PrecPower
	PrecAwait
	PrecCall
	PrecComprehension
)

type prefixRule func(p *Parser) (ast.Expr, error)
type infixRule func(p *Parser, lhs ast.Expr) (ast.Expr, error)

type exprRule struct {
	prefix     prefixRule
	infix      infixRule
	precedence Precedence
}

type stmtRule func(p *Parser) (ast.Statement, error)

// Parser consumes a token.Token stream and produces an ast.Root.
type Parser struct {
	tokens *stream.Reader[token.Token]
	mode   Mode

	stmtRules map[token.Kind]stmtRule
	exprRules map[token.Kind]exprRule
}

// New builds a Parser reading from tokens, producing the Root shape
// mode selects.
func New(tokens *stream.Reader[token.Token], mode Mode) *Parser {
	p := &Parser{tokens: tokens, mode: mode}
	p.stmtRules = map[token.Kind]stmtRule{
		token.DEL:  (*Parser).parseDeleteStatement,
		token.IF:   (*Parser).parseIfStatement,
		token.ELIF: (*Parser).parseIfStatement,
	}

	binary := func(precedence Precedence) exprRule {
		return exprRule{infix: (*Parser).parseBinaryOpExpression, precedence: precedence}
	}
	compare := exprRule{infix: (*Parser).parseCompareExpression, precedence: PrecComparison}

	p.exprRules = map[token.Kind]exprRule{
		token.IDENTIFIER: {prefix: (*Parser).parseNameExpression, precedence: PrecNone},
		token.INTEGER:    {prefix: (*Parser).parseConstantExpression, precedence: PrecNone},
		token.FLOAT:      {prefix: (*Parser).parseConstantExpression, precedence: PrecNone},
		token.STRING:     {prefix: (*Parser).parseConstantExpression, precedence: PrecNone},
		token.TRUE:       {prefix: (*Parser).parseConstantExpression, precedence: PrecNone},
		token.FALSE:      {prefix: (*Parser).parseConstantExpression, precedence: PrecNone},
		token.NONE:       {prefix: (*Parser).parseConstantExpression, precedence: PrecNone},

		token.NOT:    {prefix: (*Parser).parseUnaryOpExpression, precedence: PrecNot},
		token.INVERT: {prefix: (*Parser).parseUnaryOpExpression, precedence: PrecBitwiseNot},

		token.PLUS:  {prefix: (*Parser).parseUnaryOpExpression, infix: (*Parser).parseBinaryOpExpression, precedence: PrecAddSubtract},
		token.MINUS: {prefix: (*Parser).parseUnaryOpExpression, infix: (*Parser).parseBinaryOpExpression, precedence: PrecAddSubtract},

		token.MULTIPLY:     binary(PrecMultiplyDivide),
		token.DIVIDE:       binary(PrecMultiplyDivide),
		token.FLOOR_DIVIDE: binary(PrecMultiplyDivide),
		token.MODULO:       binary(PrecMultiplyDivide),
		token.MATMUL:       binary(PrecMultiplyDivide),
		// Left-associative like every other binary rule here, unlike Python's right-associative **.
		token.POWER: binary(PrecPower),

		token.LEFT_SHIFT:  binary(PrecBitwiseShift),
		token.RIGHT_SHIFT: binary(PrecBitwiseShift),
		token.BITWISE_AND: binary(PrecBitwiseAnd),
		token.BITWISE_OR:  binary(PrecBitwiseOr),
		token.BITWISE_XOR: binary(PrecBitwiseXor),

		token.EQUALS:        compare,
		token.NOT_EQUALS:    compare,
		token.LESS_THAN:     compare,
		token.LESS_EQUAL:    compare,
		token.GREATER_THAN:  compare,
		token.GREATER_EQUAL: compare,
		token.IS:            compare,
		token.IS_NOT:        compare,
		token.IN:            compare,
		token.NOT_IN:        compare,
	}
	return p
}

// Parse runs the parser to completion, producing one Root. When the
// reader is backed by a lexer.Lexer, malformed indentation surfaces as
// a panic raised from deep inside the lazily-pulled token stream (see
// lexer.matchIndentation); Parse recovers it here and returns it as an
// ordinary error, the same contract lexer.Lex offers its own callers,
// so nothing above this package's public API ever needs its own
// recover to use a Parser directly over a Lexer's reader.
func (p *Parser) Parse() (root ast.Root, err error) {
	defer func() {
		if r := recover(); r != nil {
			if lexErr, ok := r.(*lexerr.Error); ok {
				err = lexErr
				return
			}
			panic(r)
		}
	}()

	switch p.mode {
	case ModeExpression:
		body, err := p.parseExpression(PrecNone)
		if err != nil {
			return nil, err
		}
		return &ast.Expression{Body: body}, nil
	case ModeInteractive:
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ast.Interactive{Body: block}, nil
	default:
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ast.Module{Body: block}, nil
	}
}

// parseBlock repeatedly parses statements until the token stream is
// depleted or a DEDENT is consumed; the terminating DEDENT is eaten,
// not pushed back. The same function serves both the top level (which
// only ever ends via depletion) and a nested INDENT block (which ends
// via DEDENT).
func (p *Parser) parseBlock() (ast.Block, error) {
	var block ast.Block
	for {
		tok, ok := p.tokens.Peek()
		if !ok {
			return block, nil
		}
		if tok.Kind == token.DEDENT {
			p.tokens.Advance()
			return block, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			block = append(block, stmt)
		}
	}
}

// parseStatement iterates until a terminating NEWLINE is consumed or
// the stream is depleted. Each iteration peeks the next token: a
// statement-rule kind is dispatched and ends the statement; otherwise
// one expression is parsed and remembered as a candidate first
// assignment target / bare expression-statement value. ASSIGN is
// handled inline rather than through stmtRules because it needs that
// remembered expression as its first target.
func (p *Parser) parseStatement() (ast.Statement, error) {
	var last ast.Expr
	for {
		tok, ok := p.tokens.Peek()
		if !ok {
			break
		}
		if tok.Kind == token.NEWLINE {
			p.tokens.Advance()
			break
		}
		if tok.Kind == token.ASSIGN {
			if last == nil {
				return nil, parseerr.UnexpectedToken(tok.Kind)
			}
			return p.parseAssignStatement(last)
		}
		if rule, ok := p.stmtRules[tok.Kind]; ok {
			return rule(p)
		}
		expr, err := p.parseExpression(PrecNone)
		if err != nil {
			return nil, err
		}
		last = expr
	}
	if last != nil {
		return &ast.ExprStmt{Value: last}, nil
	}
	return nil, nil
}

// parseExpression is the Pratt loop: parse one prefix expression, then
// repeatedly extend it with infix rules whose precedence is at least
// minPrec.
func (p *Parser) parseExpression(minPrec Precedence) (ast.Expr, error) {
	tok, ok := p.tokens.Peek()
	if !ok {
		return nil, parseerr.ExpectedExpressionDepleted()
	}
	rule, hasRule := p.exprRules[tok.Kind]
	if !hasRule {
		return nil, parseerr.UnexpectedToken(tok.Kind)
	}
	if rule.prefix == nil {
		return nil, parseerr.ExpectedExpression(tok.Kind)
	}

	left, err := rule.prefix(p)
	if err != nil {
		return nil, err
	}

	for {
		nextTok, ok := p.tokens.Peek()
		if !ok {
			break
		}
		nextRule, hasNextRule := p.exprRules[nextTok.Kind]
		if !hasNextRule || nextRule.infix == nil {
			break
		}
		if nextRule.precedence < minPrec {
			break
		}
		left, err = nextRule.infix(p, left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

// parseDeleteStatement is `del a, b, c`: eat DEL, then one or more
// comma-separated identifiers, each tagged Del.
func (p *Parser) parseDeleteStatement() (ast.Statement, error) {
	p.tokens.Advance() // eat DEL

	del := &ast.Delete{}
	for {
		tok, ok := p.tokens.Peek()
		if !ok || tok.Kind != token.IDENTIFIER {
			return nil, parseerr.ExpectedKind(token.IDENTIFIER, tok.Kind, ok)
		}
		nameExpr, err := p.parseNameExpression()
		if err != nil {
			return nil, err
		}
		name := nameExpr.(*ast.Name)
		name.Ctx = ast.Del
		del.Targets = append(del.Targets, name)

		next, ok := p.tokens.Peek()
		if !ok || next.Kind != token.COMMA {
			break
		}
		p.tokens.Advance() // eat comma
	}
	return del, nil
}

// parseAssignStatement is `a = b = ... = value`. first is the
// expression parseStatement had already parsed before it saw the
// triggering ASSIGN. Every "= expr" pair extends the target chain;
// the final expression becomes the value and everything before it
// becomes a Store-context target.
func (p *Parser) parseAssignStatement(first ast.Expr) (ast.Statement, error) {
	exprs := []ast.Expr{first}
	for {
		tok, ok := p.tokens.Peek()
		if !ok || tok.Kind != token.ASSIGN {
			break
		}
		p.tokens.Advance() // eat '='
		expr, err := p.parseExpression(PrecNone)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}

	value := exprs[len(exprs)-1]
	targets := exprs[:len(exprs)-1]
	for _, target := range targets {
		if name, ok := target.(*ast.Name); ok {
			name.Ctx = ast.Store
		}
	}
	return &ast.Assign{Targets: targets, Value: value}, nil
}

// parseIfStatement handles `if`/`elif` identically: eat the keyword,
// parse the test, consume the colon, then either a single-line body
// (one statement on the same logical line) or a multi-line INDENT
// block. An elif is represented by nesting a recursively parsed If as
// the sole statement of Else; a plain else parses its own INDENT
// block directly into Else. This algorithm has no counterpart in
// parser.cc (IF was left commented out there); it follows the
// specification's own description of the two forms.
func (p *Parser) parseIfStatement() (ast.Statement, error) {
	p.tokens.Advance() // eat IF or ELIF

	test, err := p.parseExpression(PrecNone)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.COLON); err != nil {
		return nil, err
	}

	tok, ok := p.tokens.Peek()
	if !ok || tok.Kind != token.NEWLINE {
		thenStmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		var then ast.Block
		if thenStmt != nil {
			then = ast.Block{thenStmt}
		}
		return &ast.If{Test: test, Then: then}, nil
	}

	p.tokens.Advance() // eat NEWLINE
	if err := p.expect(token.INDENT); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseBlock ast.Block
	next, ok := p.tokens.Peek()
	switch {
	case ok && next.Kind == token.ELIF:
		elifStmt, err := p.parseIfStatement()
		if err != nil {
			return nil, err
		}
		elseBlock = ast.Block{elifStmt}
	case ok && next.Kind == token.ELSE:
		p.tokens.Advance() // eat ELSE
		if err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		if err := p.expect(token.NEWLINE); err != nil {
			return nil, err
		}
		if err := p.expect(token.INDENT); err != nil {
			return nil, err
		}
		elseBlock, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return &ast.If{Test: test, Then: then, Else: elseBlock}, nil
}

// parseConstantExpression consumes a single literal or True/False/None
// keyword token. Unlike the original's ParseConstantExpression (whose
// switch only handled INTEGER/FLOAT/STRING and fell through to None
// for anything else), TRUE/FALSE/NONE get explicit prefix rules above
// so a bare `True` doesn't silently mean None.
func (p *Parser) parseConstantExpression() (ast.Expr, error) {
	tok, _ := p.tokens.Read()
	var value ast.ConstantValue
	switch tok.Kind {
	case token.INTEGER:
		n, err := strconv.ParseInt(tok.Value, 0, 64)
		if err != nil {
			return nil, err
		}
		value = n
	case token.FLOAT:
		f, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, err
		}
		value = f
	case token.STRING:
		value = tok.Value
	case token.TRUE:
		value = true
	case token.FALSE:
		value = false
	default: // token.NONE
		value = nil
	}
	return &ast.Constant{Value: value}, nil
}

// parseNameExpression consumes a single identifier as a Load-context
// Name; callers that need a different context (Assign, Delete) rewrite
// Ctx afterward.
func (p *Parser) parseNameExpression() (ast.Expr, error) {
	tok, _ := p.tokens.Read()
	return &ast.Name{ID: tok.Value, Ctx: ast.Load}, nil
}

var unaryOps = map[token.Kind]ast.UnaryOpType{
	token.PLUS:   ast.Positive,
	token.MINUS:  ast.Negative,
	token.NOT:    ast.Not,
	token.INVERT: ast.Invert,
}

// parseUnaryOpExpression consumes the operator token and recurses one
// tier above that operator's own rule precedence to parse the operand,
// so e.g. "-a + b" stops the operand at "a" rather than absorbing the
// trailing "+ b" (PLUS is both a unary and a binary rule, sharing one
// precedence).
func (p *Parser) parseUnaryOpExpression() (ast.Expr, error) {
	tok, _ := p.tokens.Read()
	op, ok := unaryOps[tok.Kind]
	if !ok {
		return nil, parseerr.UnexpectedToken(tok.Kind)
	}
	operand, err := p.parseExpression(p.exprRules[tok.Kind].precedence + 1)
	if err != nil {
		return nil, err
	}
	return &ast.UnaryOp{Op: op, Operand: operand}, nil
}

var binaryOps = map[token.Kind]ast.BinaryOpType{
	token.PLUS:         ast.Add,
	token.MINUS:        ast.Subtract,
	token.MULTIPLY:     ast.Multiply,
	token.MATMUL:       ast.Matmul,
	token.DIVIDE:       ast.Divide,
	token.MODULO:       ast.Modulo,
	token.POWER:        ast.Power,
	token.LEFT_SHIFT:   ast.LeftShift,
	token.RIGHT_SHIFT:  ast.RightShift,
	token.BITWISE_OR:   ast.BitwiseOr,
	token.BITWISE_XOR:  ast.BitwiseXor,
	token.BITWISE_AND:  ast.BitwiseAnd,
	token.FLOOR_DIVIDE: ast.FloorDivide,
}

// parseBinaryOpExpression consumes the operator token and recurses one
// tier above that operator's own rule precedence for the right-hand
// side, so a chain of same-precedence operators folds left through the
// outer loop instead of nesting right inside this call.
func (p *Parser) parseBinaryOpExpression(lhs ast.Expr) (ast.Expr, error) {
	tok, _ := p.tokens.Read()
	op, ok := binaryOps[tok.Kind]
	if !ok {
		return nil, parseerr.UnexpectedToken(tok.Kind)
	}
	rhs, err := p.parseExpression(p.exprRules[tok.Kind].precedence + 1)
	if err != nil {
		return nil, err
	}
	return &ast.BinaryOp{LHS: lhs, Op: op, RHS: rhs}, nil
}

var compareOps = map[token.Kind]ast.CompareOpType{
	token.EQUALS:        ast.Equals,
	token.NOT_EQUALS:    ast.NotEquals,
	token.LESS_THAN:     ast.LessThan,
	token.LESS_EQUAL:    ast.LessEqual,
	token.GREATER_THAN:  ast.GreaterThan,
	token.GREATER_EQUAL: ast.GreaterEqual,
	token.IS:            ast.Is,
	token.IS_NOT:        ast.IsNot,
	token.IN:            ast.In,
	token.NOT_IN:        ast.NotIn,
}

// parseCompareExpression accumulates every chained comparison operator
// into a single Compare node: `a < b == c` is one node with two ops
// and two comparators, not a nesting of binary comparisons. This has
// no counterpart in parser.cc (no comparison rule was ever wired
// there); it follows the specification's chained-comparison algorithm
// directly. Each comparator is parsed one tier above PrecComparison so
// it stops at its own operand instead of recursing into the next
// comparison operator, leaving this loop to accumulate the chain.
func (p *Parser) parseCompareExpression(lhs ast.Expr) (ast.Expr, error) {
	cmp := &ast.Compare{LHS: lhs}
	for {
		tok, ok := p.tokens.Peek()
		if !ok {
			break
		}
		op, isCompareOp := compareOps[tok.Kind]
		if !isCompareOp {
			break
		}
		p.tokens.Advance()
		comparator, err := p.parseExpression(PrecComparison + 1)
		if err != nil {
			return nil, parseerr.BadCompare()
		}
		cmp.Ops = append(cmp.Ops, op)
		cmp.Comparators = append(cmp.Comparators, comparator)
	}
	if len(cmp.Ops) == 0 {
		return nil, parseerr.BadCompare()
	}
	return cmp, nil
}

// expect reads one token and requires it to have kind; it returns a
// *parseerr.Error naming what was expected and what (if anything) was
// observed instead.
func (p *Parser) expect(kind token.Kind) error {
	tok, ok := p.tokens.Read()
	if !ok || tok.Kind != kind {
		return parseerr.ExpectedKind(kind, tok.Kind, ok)
	}
	return nil
}
