package diag

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
)

// Kind classifies a diagnostic.
type Kind int

const (
	UnsupportedShape Kind = iota
	MultipleAnnotations
	ConflictingAnnotationNamespace
	MalformedAnnotationSyntax
)

func (k Kind) String() string {
	switch k {
	case UnsupportedShape:
		return "UnsupportedShape"
	case MultipleAnnotations:
		return "MultipleAnnotations"
	case ConflictingAnnotationNamespace:
		return "ConflictingAnnotationNamespace"
	case MalformedAnnotationSyntax:
		return "MalformedAnnotationSyntax"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Message returns the fixed user-facing message of the kind.
func (k Kind) Message() string {
	switch k {
	case UnsupportedShape:
		return "defew only supports struct types with at least one field"
	case MultipleAnnotations:
		return "defew accepts one annotation per element"
	case ConflictingAnnotationNamespace:
		return "annotation belongs to another element kind"
	case MalformedAnnotationSyntax:
		return "malformed annotation"
	default:
		return "unknown diagnostic"
	}
}

// Span locates the offending annotation, field or type declaration.
type Span struct {
	File   string
	Line   int
	Column int
}

// SpanOf converts a token position to a Span.
func SpanOf(pos token.Position) Span {
	return Span{File: pos.Filename, Line: pos.Line, Column: pos.Column}
}

func (s Span) String() string {
	if s.File == "" && s.Line == 0 {
		return "-"
	}
	if s.Column == 0 {
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// Diagnostic is a positioned synthesis failure. It is returned as an
// error value and never panics.
type Diagnostic struct {
	Kind     Kind
	Span     Span
	Element  string
	Detail   string
	Expected string
}

// Report builds a diagnostic for the element at span.
func Report(kind Kind, span Span, element, expected string) *Diagnostic {
	return &Diagnostic{Kind: kind, Span: span, Element: element, Expected: expected}
}

// WithDetail attaches the specific reason of the failure.
func (d *Diagnostic) WithDetail(detail string) *Diagnostic {
	d.Detail = detail
	return d
}

func (d *Diagnostic) Error() string {
	var b strings.Builder
	b.WriteString(d.Span.String())
	b.WriteString(": defew: ")
	b.WriteString(d.Kind.Message())
	if d.Element != "" {
		b.WriteString(": ")
		b.WriteString(d.Element)
	}
	if d.Detail != "" {
		b.WriteString(": ")
		b.WriteString(d.Detail)
	}
	if d.Expected != "" {
		b.WriteString(" (expected ")
		b.WriteString(d.Expected)
		b.WriteString(")")
	}
	return b.String()
}

// As extracts a diagnostic from an error chain.
func As(err error) (*Diagnostic, bool) {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}

// IsKind reports whether err carries a diagnostic of kind k.
func IsKind(err error, k Kind) bool {
	d, ok := As(err)
	return ok && d.Kind == k
}
