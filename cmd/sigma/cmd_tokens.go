package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/SinhoGl/Estudo-Compiladores/sigma/parser"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Tokenize a Sigma- source file and dump the token stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read source file: %w", err)
			}

			tokens, err := parser.Tokenize(data)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "LINE\tCOL\tKIND\tLEXEME")
			for _, tok := range tokens {
				fmt.Fprintf(w, "%d\t%d\t%s\t%q\n", tok.Line, tok.Column, tok.Kind, tok.Lexeme)
			}
			return w.Flush()
		},
	}
}
