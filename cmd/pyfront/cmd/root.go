// Package cmd implements the pyfront command-line front-end: a thin
// wrapper around pkg/compiler/{lexer,parser,ast} that lexes and parses
// a source file and prints one of two diagnostic views of it. It is
// deliberately not a REPL and does not evaluate anything — this
// project's Non-goals exclude any evaluator, runtime object model, or
// code generator.
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	log     = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "pyfront",
	Short: "Lex and parse Python-like source, printing its token stream or AST",
	Long: `pyfront is a lexer and parser front-end for a Python-like language.

It synthesizes INDENT/DEDENT/NEWLINE tokens from source layout the way
CPython's own tokenizer does, then parses the resulting token stream
into an AST mirroring the shape of Python's ast module.

Commands:
  tokens  - print the raw token stream
  parse   - print the canonical AST debug string`,
	SilenceUsage: true,
}

// Execute runs the root command, returning any error a subcommand
// produced (diagnostics are already logged by then).
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log intermediate stages to stderr")
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
}

func setLogLevel() {
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
}
