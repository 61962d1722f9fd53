// Package annotation recognises defew directive comments and classifies
// their surface shape.
//
// A directive is a line comment whose text starts with "//" immediately
// followed by a directive name, the same convention as //go:generate:
//
//	//new              bare marker
//	//new(expr)        parenthesized payload
//	//new=literal      name-equals-literal
//
// The "new" namespace belongs to fields, the "defew" namespace to types.
package annotation

import (
	"go/ast"
	"go/token"
	"strings"

	"github.com/seitarof/defew/internal/diag"
)

// Namespace identifies which element kind owns a directive.
type Namespace int

const (
	// FieldNamespace is the //new directive placed on struct fields.
	FieldNamespace Namespace = iota
	// TypeNamespace is the //defew directive placed on type declarations.
	TypeNamespace
)

// Name returns the directive name of the namespace.
func (n Namespace) Name() string {
	if n == TypeNamespace {
		return "defew"
	}
	return "new"
}

func (n Namespace) String() string { return "//" + n.Name() }

// Annotation is one raw directive line attached to a field or type.
type Annotation struct {
	Namespace Namespace
	// Payload is the text following the directive name, trimmed.
	Payload string
	Span    diag.Span
}

// Match reports whether a comment line is a defew directive and returns
// its namespace and payload.
func Match(text string) (Namespace, string, bool) {
	rest, ok := strings.CutPrefix(text, "//")
	if !ok {
		return 0, "", false
	}
	for _, ns := range []Namespace{TypeNamespace, FieldNamespace} {
		after, found := strings.CutPrefix(rest, ns.Name())
		if !found {
			continue
		}
		if after != "" && !isDirectiveBoundary(after[0]) {
			continue
		}
		return ns, strings.TrimSpace(after), true
	}
	return 0, "", false
}

func isDirectiveBoundary(c byte) bool {
	switch c {
	case '(', '=', '[', '{', ' ', '\t', '"', '\'', '`', ':':
		return true
	}
	return false
}

// Scan collects the directives found in the given comment groups, in
// source order. Nil groups are ignored.
func Scan(fset *token.FileSet, groups ...*ast.CommentGroup) []Annotation {
	var out []Annotation
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			ns, payload, ok := Match(c.Text)
			if !ok {
				continue
			}
			out = append(out, Annotation{
				Namespace: ns,
				Payload:   payload,
				Span:      diag.SpanOf(fset.Position(c.Slash)),
			})
		}
	}
	return out
}
