package errors

import (
	"strings"
	"testing"

	"github.com/sigma-lang/sigma/internal/token"
)

func TestErrorFormat(t *testing.T) {
	d := New(Semantic, "type-mismatch", "cannot assign String to int", token.Position{Line: 3, Column: 7})
	want := "line 3:7: cannot assign String to int"
	if got := d.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsHint(t *testing.T) {
	hint := New(Syntactic, "", "unexpected token 'pint'. Did you mean 'print'?", token.Position{Line: 1, Column: 1})
	if !hint.IsHint() {
		t.Error("expected a 'Did you mean' diagnostic to be classified as a hint")
	}
	err := New(Syntactic, "", "unexpected token ')'", token.Position{Line: 1, Column: 1})
	if err.IsHint() {
		t.Error("a plain diagnostic should not be classified as a hint")
	}
}

func TestSplit(t *testing.T) {
	diags := []*Diagnostic{
		New(Syntactic, "", "missing ';'", token.Position{Line: 1, Column: 1}),
		New(Syntactic, "", "Did you mean 'print'?", token.Position{Line: 2, Column: 1}),
	}
	errs, hints := Split(diags)
	if len(errs) != 1 || len(hints) != 1 {
		t.Fatalf("Split: got %d errors, %d hints, want 1 and 1", len(errs), len(hints))
	}
}

func TestFormatIncludesSourceLineAndCaret(t *testing.T) {
	source := "int x = 1;\nint y = \"bad\";"
	d := New(Semantic, "type-mismatch", "cannot assign String to int", token.Position{Line: 2, Column: 9})
	formatted := d.Format(source)
	if !strings.Contains(formatted, "int y = \"bad\";") {
		t.Errorf("Format should include the offending source line, got:\n%s", formatted)
	}
	if !strings.Contains(formatted, "^") {
		t.Errorf("Format should include a caret, got:\n%s", formatted)
	}
}

func TestFormatWithoutSourceOmitsContext(t *testing.T) {
	d := New(Lexical, "", "unterminated string literal", token.Position{Line: 1, Column: 1})
	got := d.Format("")
	if got != d.Error() {
		t.Errorf("Format with empty source should equal Error(), got %q", got)
	}
}
