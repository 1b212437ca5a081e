package cmd

import (
	"fmt"
	"os"

	"github.com/sigma-lang/sigma/internal/lexer"
	"github.com/sigma-lang/sigma/internal/token"
	"github.com/spf13/cobra"
)

var (
	evalExpr   string
	showPos    bool
	onlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Sigma source file or expression",
	Long: `Tokenize (lex) Sigma source and print the resulting token stream.

Examples:
  # Tokenize a source file
  sigmac lex script.sg

  # Tokenize inline code
  sigmac lex -e "int x = 10;"

  # Show token positions (line:column)
  sigmac lex --show-pos script.sg`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only the illegal token, if any")
}

func lexScript(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Tokenizing: %s\n", filename)
		fmt.Printf("Input length: %d bytes\n", len(input))
		fmt.Println("---")
	}

	l := lexer.New(input)
	tokens := l.Tokenize()

	if onlyErrors {
		if lexErr := l.Err(); lexErr != nil {
			fmt.Printf("ILLEGAL @%d:%d: %s\n", lexErr.Line, lexErr.Col, lexErr.Message)
			return fmt.Errorf("lexing failed")
		}
		return nil
	}

	for _, tok := range tokens {
		printToken(tok)
	}

	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", len(tokens))
	}

	if lexErr := l.Err(); lexErr != nil {
		fmt.Fprintf(os.Stderr, "lexical error @%d:%d: %s\n", lexErr.Line, lexErr.Col, lexErr.Message)
		return fmt.Errorf("lexing failed")
	}

	return nil
}

func printToken(tok token.Token) {
	output := fmt.Sprintf("[%-12s]", tok.Type)
	if tok.Lexeme == "" {
		output += fmt.Sprintf(" %s", tok.Type)
	} else {
		output += fmt.Sprintf(" %q", tok.Lexeme)
	}
	if showPos {
		output += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Println(output)
}
