// Package errors formats Sigma compiler diagnostics: the "line L:C: message"
// text form every phase emits, plus an optional source-context rendering
// with a caret under the offending column for CLI output.
package errors

import (
	"fmt"
	"strings"

	"github.com/sigma-lang/sigma/internal/token"
)

// Category classifies which phase raised a diagnostic and, by extension,
// whether it is recoverable.
type Category int

const (
	// Lexical diagnostics are fatal to the token stream.
	Lexical Category = iota
	// Syntactic diagnostics are recoverable via parser synchronization.
	Syntactic
	// Semantic diagnostics are recoverable and localized to one subtree.
	Semantic
	// Internal diagnostics indicate a frontend/IR contract violation and
	// should never fire on well-formed input.
	Internal
)

func (c Category) String() string {
	switch c {
	case Lexical:
		return "lexical"
	case Syntactic:
		return "syntactic"
	case Semantic:
		return "semantic"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Diagnostic is a single compiler message: a category, an optional
// machine-readable kind (e.g. "type-mismatch", "undefined-identifier"),
// a human message, and the source position it was detected at.
type Diagnostic struct {
	Category Category
	Kind     string
	Message  string
	Pos      token.Position
}

// New creates a Diagnostic.
func New(category Category, kind, message string, pos token.Position) *Diagnostic {
	return &Diagnostic{Category: category, Kind: kind, Message: message, Pos: pos}
}

// Error implements the error interface with the wire format every phase
// shares: "line L:C: message".
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("line %d:%d: %s", d.Pos.Line, d.Pos.Column, d.Message)
}

// IsHint reports whether the diagnostic is a hint rather than a hard
// error. The parser's classification rule: a message containing the
// phrase "Did you mean" is a hint, demoted to a warning by the driver.
func (d *Diagnostic) IsHint() bool {
	return strings.Contains(d.Message, "Did you mean")
}

// Format renders the diagnostic with the offending source line and a
// caret under the reported column.
func (d *Diagnostic) Format(source string) string {
	var sb strings.Builder
	sb.WriteString(d.Error())

	line := sourceLine(source, d.Pos.Line)
	if line == "" {
		return sb.String()
	}
	sb.WriteString("\n")
	prefix := fmt.Sprintf("%4d | ", d.Pos.Line)
	sb.WriteString(prefix)
	sb.WriteString(line)
	sb.WriteString("\n")
	col := d.Pos.Column
	if col < 1 {
		col = 1
	}
	sb.WriteString(strings.Repeat(" ", len(prefix)+col-1))
	sb.WriteString("^")
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// Split partitions a list of Diagnostics into hard errors and hints,
// preserving relative order within each group.
func Split(diags []*Diagnostic) (errs, hints []*Diagnostic) {
	for _, d := range diags {
		if d.IsHint() {
			hints = append(hints, d)
		} else {
			errs = append(errs, d)
		}
	}
	return errs, hints
}

// FormatAll renders a whole diagnostic list, one per line, numbering
// them when there is more than one.
func FormatAll(diags []*Diagnostic, source string) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return diags[0].Format(source)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d diagnostic(s):\n\n", len(diags))
	for i, d := range diags {
		fmt.Fprintf(&sb, "[%d of %d] ", i+1, len(diags))
		sb.WriteString(d.Format(source))
		if i < len(diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
