package directive

import (
	"fmt"
	"strconv"

	"github.com/seitarof/defew/internal/annotation"
	"github.com/seitarof/defew/internal/diag"
	"github.com/seitarof/defew/internal/parser"
)

// FieldSyntax lists the recognised field annotation forms.
const FieldSyntax = "//new, //new(expr) or //new=literal"

// ResolveFields resolves every field of info in declaration order and
// stops at the first diagnostic.
func ResolveFields(info *parser.StructInfo) ([]Field, error) {
	out := make([]Field, 0, len(info.Fields))
	for _, f := range info.Fields {
		d, err := ResolveField(info.Name, f)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// ResolveField classifies one field's annotation. owner is the name of
// the declaring type and only used in diagnostics.
func ResolveField(owner string, f parser.FieldInfo) (Field, error) {
	element := fieldElement(owner, f)

	switch len(f.Annotations) {
	case 0:
		return Field{Kind: UseDefault}, nil
	case 1:
	default:
		return Field{}, diag.Report(diag.MultipleAnnotations, f.Annotations[1].Span, element, "a single "+FieldSyntax)
	}

	a := f.Annotations[0]
	if a.Namespace != annotation.FieldNamespace {
		return Field{}, diag.Report(diag.ConflictingAnnotationNamespace, a.Span, element, FieldSyntax).
			WithDetail(a.Namespace.String() + " applies to type declarations")
	}
	if f.IsBlank() {
		return Field{}, diag.Report(diag.MalformedAnnotationSyntax, a.Span, element, "no annotation on a blank field").
			WithDetail("a blank field cannot be initialized")
	}

	tok := annotation.Classify(a)
	switch tok.Kind {
	case annotation.Bare:
		return Field{Kind: RequireParameter}, nil
	case annotation.Parenthesized:
		return Field{Kind: ComputeFromExpression, Expr: RawExpression{Text: tok.Text, Span: tok.Span}}, nil
	case annotation.Literal:
		return Field{Kind: BindConstant, Literal: tok.Text}, nil
	case annotation.Malformed:
		return Field{}, diag.Report(diag.MalformedAnnotationSyntax, tok.Span, element, FieldSyntax).WithDetail(tok.Reason)
	default:
		panic(fmt.Sprintf("unhandled annotation kind %v", tok.Kind))
	}
}

func fieldElement(owner string, f parser.FieldInfo) string {
	name := f.Key()
	if f.IsEmbedded() {
		name = "#" + strconv.Itoa(f.Index) + " (embedded " + f.TypeStr + ")"
	}
	return "field " + name + " of " + owner
}
