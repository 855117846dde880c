// Package lexer converts Python-like source text into a stream of
// tokens, synthesizing INDENT/DEDENT/NEWLINE from whitespace layout in
// the manner of Python's own lexical analysis
// (https://docs.python.org/3/reference/lexical_analysis.html).
//
// Grounded on pkg/compiler/lexer/scanner.go's byte-cursor scanner
// shape (a Scanner struct with Reset for source reuse) generalized to
// the match cascade and indentation state machine described by
// original_source/lexer.cc.
package lexer

import (
	"regexp"

	"github.com/lattice-lang/pyfront/pkg/compiler/lexerr"
	"github.com/lattice-lang/pyfront/pkg/compiler/stream"
	"github.com/lattice-lang/pyfront/pkg/compiler/token"
)

// IndentationWidth is the fixed number of columns one indentation
// level occupies. A tab counts as one full IndentationWidth.
const IndentationWidth = 4

// Regular expressions for the three literal kinds, tried in this
// fixed order (string, integer, float) ahead of operator/delimiter
// matching so a leading sign on a numeric literal is absorbed rather
// than tokenized as a separate PLUS/MINUS. Translated from
// original_source/lexer.cc's kStringLiteralRegex/kIntLiteralRegex/
// kFloatLiteralRegex.
var (
	stringLiteralRe = regexp.MustCompile(`^(?:r|u|R|U|b|B|f|F)?(?:'''(?:[^'\\]|\\.)*'''|"""(?:[^"\\]|\\.)*"""|'(?:[^'\\]|\\.)*'|"(?:[^"\\]|\\.)*")`)
	intLiteralRe    = regexp.MustCompile(`^[-+]?(?:0[xX][0-9A-Fa-f]+|0[bB][01]+|[1-9][0-9]*|0)\b`)
	floatLiteralRe  = regexp.MustCompile(`^[-+]?\d+\.\d*(?:[eE][-+]?\d+)?\b`)
	identifierRe    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)
)

// isWordContinuing reports whether b can continue an identifier, used
// to disambiguate a keyword match from a longer identifier that merely
// starts with that keyword's spelling (e.g. "in_place" vs. "in").
func isWordContinuing(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// Lexer converts a source string into a token.Token stream. A Lexer
// can be reused across sources via SetSource.
type Lexer struct {
	source      string
	idx         int
	indentation int
}

// New creates a Lexer with no source set; call SetSource before use.
func New() *Lexer { return &Lexer{} }

// SetSource resets the lexer to scan source from the beginning. It may
// be called repeatedly to reuse a Lexer across inputs.
func (l *Lexer) SetSource(source string) {
	l.source = source
	l.idx = 0
	l.indentation = 0
}

// MakeReader returns a token.Token stream reader driven by this
// lexer's refill callback. The lexer's current source is captured by
// the callback; calling SetSource after MakeReader affects the same
// reader (there is exactly one producer per Lexer at a time, matching
// the single-consumer contract of pkg/compiler/stream).
func (l *Lexer) MakeReader() *stream.Reader[token.Token] {
	return stream.New(l.fill, 0).MakeReader()
}

// fill appends tokens produced from the current source position,
// implementing the stream.FillFunc contract: it returns true while
// source remains (regardless of how many tokens were appended on this
// call, matching the original's "at least one step of progress" refill
// semantics), and returns false only on the call that finds the source
// exhausted, after flushIndentation has closed any open levels.
func (l *Lexer) fill(buf *[]token.Token) bool {
	if l.idx >= len(l.source) {
		return l.flushIndentation(buf)
	}

	// 1. Indentation/newlines.
	if l.matchIndentation(buf) {
		return true
	}

	// 2. Keywords.
	if l.matchKeyword(buf) {
		return true
	}

	// 3. Literals (string, integer, float, in that order).
	if l.matchLiteral(buf) {
		return true
	}

	// 4. Operators / delimiters.
	if l.matchOperatorOrDelimiter(buf) {
		return true
	}

	// 5. Identifier.
	if l.matchIdentifier(buf) {
		return true
	}

	// 6. Fallback: skip one unrecognized byte (including ordinary
	// non-leading whitespace, which is otherwise never consumed).
	l.idx++
	return true
}

// matchIndentation implements step 1 of the lexer's match cascade. It
// panics with a *lexerr.Error on malformed indentation; the panic is
// recovered by Lex (and by parser.Parser.Parse for a Parser reading
// this lexer's stream directly) and surfaced as a returned error.
func (l *Lexer) matchIndentation(buf *[]token.Token) bool {
	matched := false
	eatIndentation := l.idx == 0

	for l.idx < len(l.source) && l.source[l.idx] == '\n' {
		if !matched {
			*buf = append(*buf, token.Token{Kind: token.NEWLINE})
			eatIndentation = true
			matched = true
		}
		l.idx++
	}

	// No idx < len(source) guard here: at end of input the counting
	// loop below simply runs zero times (whitespace stays 0), which
	// still produces the DEDENT tokens needed to close out any open
	// indentation levels at EOF.
	if eatIndentation {
		whitespace := 0
		for l.idx < len(l.source) {
			switch l.source[l.idx] {
			case ' ':
				whitespace++
			case '\t':
				whitespace += IndentationWidth
			default:
				goto doneCounting
			}
			l.idx++
		}
	doneCounting:

		if whitespace%IndentationWidth != 0 {
			panic(lexerr.Unexpected(whitespace))
		}

		newIndentation := whitespace / IndentationWidth
		if newIndentation < 0 {
			panic(lexerr.Negative(newIndentation - l.indentation))
		}

		delta := newIndentation - l.indentation
		l.indentation = newIndentation
		if delta > 1 {
			panic(lexerr.Delta(delta))
		}

		kind := token.INDENT
		if delta < 0 {
			kind = token.DEDENT
		}
		for i := 0; i < abs(delta); i++ {
			*buf = append(*buf, token.Token{Kind: kind})
			matched = true
		}
	}

	return matched
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// flushIndentation closes out any indentation level still open when
// the source runs out, so INDENT/DEDENT always pair back to depth zero
// at end of input, even when the final line has no trailing newline.
// A source that does end in a newline already closes to zero inside
// matchIndentation's own handling of that last '\n', so this is a
// no-op in that case; it only fires for the last, newline-less line of
// an indented block. A synthetic NEWLINE precedes the DEDENTs, since a
// statement is only recognized as complete by parser.Parser on NEWLINE
// or a fully depleted stream, never on a bare DEDENT.
func (l *Lexer) flushIndentation(buf *[]token.Token) bool {
	if l.indentation == 0 {
		return false
	}
	*buf = append(*buf, token.Token{Kind: token.NEWLINE})
	for i := 0; i < l.indentation; i++ {
		*buf = append(*buf, token.Token{Kind: token.DEDENT})
	}
	l.indentation = 0
	return false
}

// matchKeyword implements step 2: longest-match across every keyword
// spelling, discarding candidates that are actually a prefix of a
// longer identifier.
func (l *Lexer) matchKeyword(buf *[]token.Token) bool {
	return l.matchLongest(buf, token.KeywordBegin, token.KeywordEnd, true)
}

// matchOperatorOrDelimiter implements step 4: longest-match across the
// union of every operator and delimiter spelling. The two ranges must
// be pooled before picking the longest candidate, since a delimiter
// can be a strict extension of an operator's spelling at the same
// position (">>=" the delimiter must win over ">>" the operator).
func (l *Lexer) matchOperatorOrDelimiter(buf *[]token.Token) bool {
	candidates := append(
		append([]spellingKind{}, token.KeywordsAndOperators(token.OperatorBegin, token.OperatorEnd)...),
		token.KeywordsAndOperators(token.DelimiterBegin, token.DelimiterEnd)...,
	)
	return l.matchLongestAmong(buf, candidates, false)
}

type spellingKind = struct {
	Spelling string
	Kind     token.Kind
}

// matchLongest scans the candidate list once and emits the longest
// spelling that matches at the current position, applying the
// word-boundary check when requireWordBoundary is set.
func (l *Lexer) matchLongest(buf *[]token.Token, begin, end token.Kind, requireWordBoundary bool) bool {
	return l.matchLongestAmong(buf, token.KeywordsAndOperators(begin, end), requireWordBoundary)
}

func (l *Lexer) matchLongestAmong(buf *[]token.Token, candidates []spellingKind, requireWordBoundary bool) bool {
	best := -1
	for i, c := range candidates {
		if !hasPrefixAt(l.source, l.idx, c.Spelling) {
			continue
		}
		if requireWordBoundary {
			next := l.idx + len(c.Spelling)
			if next < len(l.source) && isWordContinuing(l.source[next]) {
				continue
			}
		}
		if best == -1 || len(c.Spelling) > len(candidates[best].Spelling) {
			best = i
		}
	}
	if best == -1 {
		return false
	}
	*buf = append(*buf, token.Token{Kind: candidates[best].Kind})
	l.idx += len(candidates[best].Spelling)
	return true
}

func hasPrefixAt(s string, idx int, prefix string) bool {
	if idx+len(prefix) > len(s) {
		return false
	}
	return s[idx:idx+len(prefix)] == prefix
}

// matchLiteral implements step 3: try string, then integer, then
// float, in that fixed order.
func (l *Lexer) matchLiteral(buf *[]token.Token) bool {
	rest := l.source[l.idx:]

	if m := stringLiteralRe.FindString(rest); m != "" {
		*buf = append(*buf, token.Token{Kind: token.STRING, Value: m})
		l.idx += len(m)
		return true
	}
	if m := intLiteralRe.FindString(rest); m != "" {
		*buf = append(*buf, token.Token{Kind: token.INTEGER, Value: m})
		l.idx += len(m)
		return true
	}
	if m := floatLiteralRe.FindString(rest); m != "" {
		*buf = append(*buf, token.Token{Kind: token.FLOAT, Value: m})
		l.idx += len(m)
		return true
	}
	return false
}

// matchIdentifier implements step 5.
func (l *Lexer) matchIdentifier(buf *[]token.Token) bool {
	m := identifierRe.FindString(l.source[l.idx:])
	if m == "" {
		return false
	}
	*buf = append(*buf, token.Token{Kind: token.IDENTIFIER, Value: m})
	l.idx += len(m)
	return true
}

// Lex is a convenience one-shot: lex source and return every token.
// Lex(source) invoked twice on the same string yields equal token
// slices (the lexer holds no state beyond a single scan).
func Lex(source string) (tokens []token.Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			if lexErr, ok := r.(*lexerr.Error); ok {
				err = lexErr
				return
			}
			panic(r)
		}
	}()

	l := New()
	l.SetSource(source)
	reader := l.MakeReader()
	for {
		tok, ok := reader.Read()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
