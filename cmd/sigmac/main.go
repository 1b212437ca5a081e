// Command sigmac is Sigma's compiler-frontend CLI: lexing, parsing,
// semantic analysis, and RPN IR generation, each inspectable on its own.
package main

import (
	"fmt"
	"os"

	"github.com/sigma-lang/sigma/cmd/sigmac/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
