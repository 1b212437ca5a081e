// Package sigma is the public embedding API over Sigma's compiler
// frontend: lexer, parser, script-wrapping transform, semantic analyzer,
// and RPN IR generator, chained into one Compile call.
package sigma

import (
	"github.com/sigma-lang/sigma/internal/ast"
	"github.com/sigma-lang/sigma/internal/errors"
	"github.com/sigma-lang/sigma/internal/parser"
	"github.com/sigma-lang/sigma/internal/rpn"
	"github.com/sigma-lang/sigma/internal/scriptwrap"
	"github.com/sigma-lang/sigma/internal/semantic"
	"github.com/sigma-lang/sigma/internal/token"
)

// Phase names a stage of the pipeline, used to report where compilation
// stopped.
type Phase string

const (
	PhaseParse    Phase = "parse"
	PhaseSemantic Phase = "semantic"
	PhaseRPN      Phase = "rpn"
)

// Result is the accumulated output of Compile. Fields populated beyond
// FailedPhase hold whatever partial state that phase produced; fields for
// phases never reached are left at their zero value.
type Result struct {
	Source string

	Unit     *ast.CompilationUnit
	Semantic *semantic.Result
	Program  *rpn.Program

	Errors      []*errors.Diagnostic
	Warnings    []*errors.Diagnostic
	FailedPhase Phase // empty if compilation reached RPN generation cleanly
}

// Success reports whether compilation reached RPN generation with no
// hard errors from any phase.
func (r *Result) Success() bool {
	return r.FailedPhase == "" && len(r.Errors) == 0
}

// Format renders every accumulated diagnostic with source context, the
// same "line L:C: message" plus caret rendering every phase shares.
func (r *Result) Format() string {
	return errors.FormatAll(r.Errors, r.Source)
}

// Compile runs source through every frontend phase in order — parse,
// script-wrap, semantic analysis, RPN generation — stopping at the first
// phase that reports hard errors. Parser hints and semantic warnings
// never stop the pipeline; they are carried into Result.Warnings.
func Compile(source string) *Result {
	result := &Result{Source: source}

	p := parser.New(source)
	unit := p.ParseCompilationUnit()
	result.Unit = unit

	parseErrors, parseHints := p.Errors()
	result.Warnings = append(result.Warnings, parseHints...)
	if len(parseErrors) > 0 {
		result.Errors = parseErrors
		result.FailedPhase = PhaseParse
		return result
	}

	wrapped := scriptwrap.Wrap(unit)
	result.Unit = wrapped

	semResult := semantic.Analyze(wrapped)
	result.Semantic = semResult
	result.Warnings = append(result.Warnings, semResult.Warnings...)
	if len(semResult.Errors) > 0 {
		result.Errors = semResult.Errors
		result.FailedPhase = PhaseSemantic
		return result
	}

	prog, err := rpn.Generate(wrapped, semResult)
	if err != nil {
		result.Errors = []*errors.Diagnostic{
			errors.New(errors.Internal, "internal-compiler-error", err.Error(), token.Position{Line: 1, Column: 1}),
		}
		result.FailedPhase = PhaseRPN
		return result
	}
	result.Program = prog

	return result
}
