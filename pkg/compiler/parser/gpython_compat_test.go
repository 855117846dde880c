package parser_test

import (
	"strings"
	"testing"

	gpyparser "github.com/go-python/gpython/parser"
	"github.com/go-python/gpython/py"

	"github.com/lattice-lang/pyfront/pkg/compiler/lexer"
	"github.com/lattice-lang/pyfront/pkg/compiler/parser"
)

// TestParserAcceptsWhatGpythonAccepts cross-checks that source a real
// CPython-grammar implementation parses without error also parses
// without error here, for the subset of the grammar this front-end
// implements (arithmetic, assignment, delete, comparison chains,
// if/else).
func TestParserAcceptsWhatGpythonAccepts(t *testing.T) {
	accepted := []string{
		"x = 1\n",
		"x = 1 + 2 * 3\n",
		"x = y = z\n",
		"del x, y\n",
		"if x > 0:\n    y = 1\nelse:\n    y = 2\n",
		"a = b == c\n",
		"a = b < c <= d\n",
		"a = -b + c\n",
		"a = not b\n",
	}

	for _, src := range accepted {
		src := src
		t.Run(src, func(t *testing.T) {
			if _, err := gpyparser.Parse(strings.NewReader(src), "<test>", py.ExecMode); err != nil {
				t.Skipf("gpython itself rejects this input, skipping cross-check: %v", err)
			}

			l := lexer.New()
			l.SetSource(src)
			if _, err := parser.New(l.MakeReader(), parser.ModeModule).Parse(); err != nil {
				t.Errorf("pyfront parser rejected input gpython accepts: %v\nsource: %q", err, src)
			}
		})
	}
}
