package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sigma-lang/sigma/internal/ast"
	"github.com/sigma-lang/sigma/internal/parser"
	"github.com/spf13/cobra"
)

var parseDumpAST bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Sigma source and display the AST",
	Long: `Parse Sigma source code and display the Abstract Syntax Tree.

If no file is provided, reads from stdin. Use -e to parse an inline
expression/statement list. Use --dump-ast for an indented tree view.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from file")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full AST structure")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, _, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	p := parser.New(input)
	unit := p.ParseCompilationUnit()

	errs, hints := p.Errors()
	for _, h := range hints {
		fmt.Fprintln(os.Stderr, h.Format(input))
	}
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Format(input))
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if parseDumpAST {
		fmt.Println("Compilation Unit:")
		for _, stmt := range unit.Statements {
			dumpASTNode(stmt, 1)
		}
	} else {
		fmt.Println(unit.String())
	}

	return nil
}

func dumpASTNode(node ast.Node, indent int) {
	prefix := strings.Repeat("  ", indent)

	switch n := node.(type) {
	case *ast.ClassDeclaration:
		fmt.Printf("%sClassDeclaration %s (%d members)\n", prefix, n.Name.Value, len(n.Members))
		for _, m := range n.Members {
			dumpASTNode(m, indent+1)
		}
	case *ast.MethodDeclaration:
		fmt.Printf("%sMethodDeclaration %s %s(...)\n", prefix, n.ReturnType, n.Name.Value)
		dumpASTNode(n.Body, indent+1)
	case *ast.FieldDeclaration:
		fmt.Printf("%sFieldDeclaration %s %s\n", prefix, n.TypeName, n.Name.Value)
	case *ast.Block:
		for _, stmt := range n.Statements {
			dumpASTNode(stmt, indent)
		}
	case *ast.VariableDeclaration:
		fmt.Printf("%sVariableDeclaration %s %s (const=%v)\n", prefix, n.TypeName, n.Name.Value, n.IsConstant)
		if n.Init != nil {
			dumpASTNode(n.Init, indent+1)
		}
	case *ast.Assignment:
		fmt.Printf("%sAssignment %s\n", prefix, n.Name.Value)
		dumpASTNode(n.Value, indent+1)
	case *ast.IfStatement:
		fmt.Printf("%sIfStatement\n", prefix)
		dumpASTNode(n.Condition, indent+1)
		dumpASTNode(n.Then, indent+1)
		if n.Else != nil {
			dumpASTNode(n.Else, indent+1)
		}
	case *ast.WhileStatement:
		fmt.Printf("%sWhileStatement\n", prefix)
		dumpASTNode(n.Condition, indent+1)
		dumpASTNode(n.Body, indent+1)
	case *ast.ReturnStatement:
		fmt.Printf("%sReturnStatement\n", prefix)
		if n.Value != nil {
			dumpASTNode(n.Value, indent+1)
		}
	case *ast.PrintStatement:
		fmt.Printf("%sPrintStatement (newline=%v)\n", prefix, n.Newline)
		dumpASTNode(n.Value, indent+1)
	case *ast.ExpressionStatement:
		fmt.Printf("%sExpressionStatement\n", prefix)
		dumpASTNode(n.Expression, indent+1)
	case *ast.Binary:
		fmt.Printf("%sBinary (%s)\n", prefix, n.Operator)
		dumpASTNode(n.Left, indent+1)
		dumpASTNode(n.Right, indent+1)
	case *ast.Unary:
		fmt.Printf("%sUnary (%s)\n", prefix, n.Operator)
		dumpASTNode(n.Operand, indent+1)
	case *ast.Call:
		fmt.Printf("%sCall (%d args)\n", prefix, len(n.Args))
		dumpASTNode(n.Target, indent+1)
		for _, a := range n.Args {
			dumpASTNode(a, indent+1)
		}
	case *ast.MemberAccess:
		fmt.Printf("%sMemberAccess .%s\n", prefix, n.Member)
		dumpASTNode(n.Object, indent+1)
	case *ast.NewInstance:
		fmt.Printf("%sNewInstance %s (%d args)\n", prefix, n.ClassName, len(n.Args))
		for _, a := range n.Args {
			dumpASTNode(a, indent+1)
		}
	default:
		fmt.Printf("%s%s\n", prefix, node.String())
	}
}
