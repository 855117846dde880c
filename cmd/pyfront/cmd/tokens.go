package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lattice-lang/pyfront/pkg/compiler/lexer"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the raw token stream for a source file (- or omitted reads stdin)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setLogLevel()
		path := ""
		if len(args) > 0 {
			path = args[0]
		}

		source, err := readSource(path)
		if err != nil {
			log.WithError(err).Error("could not read source")
			return err
		}
		log.WithField("bytes", len(source)).Debug("source read")

		tokens, err := lexer.Lex(source)
		if err != nil {
			log.WithError(err).Error("lexing failed")
			return err
		}

		for _, tok := range tokens {
			fmt.Println(tok.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
