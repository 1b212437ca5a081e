package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "sigmac",
	Short: "Sigma compiler frontend",
	Long: `sigmac drives Sigma's compiler frontend: lexer, recursive-descent
parser, semantic analyzer, and RPN IR generator.

Sigma is a small statically-typed, class-based scripting language:
  - int/double/float/boolean/String primitives, user-declared classes
  - final constants, if/while control flow, new-instance construction
  - a single-pass lowering to a linear RPN instruction sequence

This tool has no interpreter or formatter — it only drives the frontend
phases, one subcommand per phase boundary.`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
