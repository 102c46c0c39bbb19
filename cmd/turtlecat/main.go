// Command turtlecat reads one or more Turtle documents and prints
// every statement they contain, one per line.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/geoknoesis/turtlestream/turtle"
	"github.com/spf13/cobra"
)

var (
	flagBase            string
	flagTurtleStar      bool
	flagCaseInsensitive bool
	flagVerifyURISyntax bool
	flagVerifyLanguage  bool
	flagVerifyDatatype  bool
	flagVerifyRelative  bool
	flagQuiet           bool
)

var rootCmd = &cobra.Command{
	Use:   "turtlecat [file ...]",
	Short: "Parse Turtle documents and print their statements",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runOne(cmd, "-", os.Stdin)
		}
		for _, path := range args {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			err = runOne(cmd, path, f)
			f.Close()
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
		return nil
	},
}

func runOne(cmd *cobra.Command, name string, r *os.File) error {
	opts := []turtle.Option{
		turtle.WithTurtleStar(flagTurtleStar),
		turtle.WithCaseInsensitiveDirectives(flagCaseInsensitive),
		turtle.WithVerifyURISyntax(flagVerifyURISyntax),
		turtle.WithVerifyLanguageTags(flagVerifyLanguage),
		turtle.WithVerifyDatatypeValues(flagVerifyDatatype),
		turtle.WithVerifyRelativeURIs(flagVerifyRelative),
	}
	if flagBase != "" {
		opts = append(opts, turtle.WithBaseIRI(flagBase))
	}

	count := 0
	handler := turtle.HandlerFunc(func(s turtle.Statement) error {
		count++
		if !flagQuiet {
			fmt.Fprintln(cmd.OutOrStdout(), s.String())
		}
		return nil
	})

	if err := turtle.Parse(context.Background(), r, handler, opts...); err != nil {
		return err
	}
	if flagQuiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d statements\n", name, count)
	}
	return nil
}

func init() {
	rootCmd.Flags().StringVar(&flagBase, "base", "", "base IRI to resolve relative references against")
	rootCmd.Flags().BoolVar(&flagTurtleStar, "turtle-star", false, "accept RDF-star <<...>> terms and {|...|} annotations")
	rootCmd.Flags().BoolVar(&flagCaseInsensitive, "case-insensitive-directives", false, "accept SPARQL-style PREFIX/BASE keywords")
	rootCmd.Flags().BoolVar(&flagVerifyURISyntax, "verify-uri-syntax", false, "reject IRIs with structural syntax problems")
	rootCmd.Flags().BoolVar(&flagVerifyLanguage, "verify-language-tags", false, "reject malformed language tags")
	rootCmd.Flags().BoolVar(&flagVerifyDatatype, "verify-datatype-values", false, "reject malformed escape sequences in string literals")
	rootCmd.Flags().BoolVar(&flagVerifyRelative, "verify-relative-uris", false, "reject IRIs that resolve without a scheme")
	rootCmd.Flags().BoolVar(&flagQuiet, "quiet", false, "print only a per-file statement count")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
