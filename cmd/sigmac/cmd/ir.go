package cmd

import (
	"fmt"
	"os"

	"github.com/sigma-lang/sigma/pkg/sigma"
	"github.com/spf13/cobra"
)

var irExpr string

var irCmd = &cobra.Command{
	Use:   "ir [file]",
	Short: "Compile Sigma source to RPN IR and print the instruction dump",
	Long: `Run source through every frontend phase — lex, parse, script-wrap,
semantic analysis, RPN generation — and print the resulting linear
instruction sequence, one instruction per line.

If no file is provided, reads from stdin. Use -e to compile inline code.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIR,
}

func init() {
	rootCmd.AddCommand(irCmd)
	irCmd.Flags().StringVarP(&irExpr, "eval", "e", "", "compile inline code instead of reading from file")
}

func runIR(cmd *cobra.Command, args []string) error {
	input, _, err := readSource(irExpr, args)
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
		return fmt.Errorf("compilation failed at %s phase with %d error(s)", result.FailedPhase, len(result.Errors))
	}

	fmt.Print(result.Program.Dump())
	return nil
}
