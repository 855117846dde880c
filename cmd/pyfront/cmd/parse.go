package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lattice-lang/pyfront/pkg/compiler/ast"
	"github.com/lattice-lang/pyfront/pkg/compiler/lexer"
	"github.com/lattice-lang/pyfront/pkg/compiler/parser"
)

var parseMode string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Print the canonical AST debug string for a source file (- or omitted reads stdin)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setLogLevel()
		path := ""
		if len(args) > 0 {
			path = args[0]
		}

		mode, err := parseModeFlag(parseMode)
		if err != nil {
			log.WithError(err).Error("invalid --mode")
			return err
		}

		source, err := readSource(path)
		if err != nil {
			log.WithError(err).Error("could not read source")
			return err
		}
		log.WithField("bytes", len(source)).Debug("source read")

		root, err := parseSource(source, mode)
		if err != nil {
			log.WithError(err).Error("parsing failed")
			return err
		}

		fmt.Print(ast.DebugString(root))
		return nil
	},
}

// parseSource lexes and parses source in one step. Parser.Parse already
// recovers a lexer's indentation panic and returns it as an ordinary
// error, so this is a plain call with no recover of its own.
func parseSource(source string, mode parser.Mode) (ast.Root, error) {
	l := lexer.New()
	l.SetSource(source)
	return parser.New(l.MakeReader(), mode).Parse()
}

func parseModeFlag(mode string) (parser.Mode, error) {
	switch mode {
	case "", "module":
		return parser.ModeModule, nil
	case "interactive":
		return parser.ModeInteractive, nil
	case "expression":
		return parser.ModeExpression, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want module, interactive, or expression)", mode)
	}
}

func init() {
	parseCmd.Flags().StringVar(&parseMode, "mode", "module", "parse mode: module, interactive, or expression")
	rootCmd.AddCommand(parseCmd)
}
