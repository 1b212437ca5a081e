package cmd

import (
	"fmt"
	"os"

	"github.com/sigma-lang/sigma/pkg/sigma"
	"github.com/spf13/cobra"
)

var analyzeExpr string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Run semantic analysis on Sigma source and report diagnostics",
	Long: `Parse and semantically analyze Sigma source, reporting every error
and warning the analyzer produces.

If no file is provided, reads from stdin. Use -e to analyze inline code.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeExpr, "eval", "e", "", "analyze inline code instead of reading from file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	input, _, err := readSource(analyzeExpr, args)
	if err != nil {
		return err
	}

	result := sigma.Compile(input)

	for _, w := range result.Warnings {
		fmt.Fprintln(os.Stderr, w.Format(input))
	}

	if !result.Success() {
		fmt.Fprint(os.Stderr, result.Format())
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("analysis failed at %s phase with %d error(s)", result.FailedPhase, len(result.Errors))
	}

	fmt.Println("OK: no errors")
	if len(result.Warnings) > 0 {
		fmt.Printf("%d warning(s)\n", len(result.Warnings))
	}
	return nil
}
