package directive

import (
	"fmt"
	"go/ast"
	"go/build/constraint"
	goparser "go/parser"
	"go/token"
	"strconv"

	"github.com/seitarof/defew/internal/annotation"
	"github.com/seitarof/defew/internal/diag"
	"github.com/seitarof/defew/internal/parser"
)

// StructSyntax lists the recognised type annotation forms.
const StructSyntax = `//defew, //defew(Interface) or //defew="build constraint"`

// ResolveStruct classifies the type-level annotation of info.
func ResolveStruct(info *parser.StructInfo) (Struct, error) {
	element := "type " + info.Name

	switch len(info.Annotations) {
	case 0:
		return Struct{Visibility: Public}, nil
	case 1:
	default:
		return Struct{}, diag.Report(diag.MultipleAnnotations, info.Annotations[1].Span, element, "a single "+StructSyntax)
	}

	a := info.Annotations[0]
	if a.Namespace != annotation.TypeNamespace {
		return Struct{}, diag.Report(diag.ConflictingAnnotationNamespace, a.Span, element, StructSyntax).
			WithDetail(a.Namespace.String() + " applies to struct fields")
	}

	malformed := func(span diag.Span, detail string) error {
		return diag.Report(diag.MalformedAnnotationSyntax, span, element, StructSyntax).WithDetail(detail)
	}

	tok := annotation.Classify(a)
	switch tok.Kind {
	case annotation.Bare:
		return Struct{Visibility: Private}, nil
	case annotation.Parenthesized:
		if !isInterfaceName(tok.Text) {
			return Struct{}, malformed(tok.Span, fmt.Sprintf("%q is not an interface name", tok.Text))
		}
		return Struct{Visibility: Public, TraitTarget: tok.Text}, nil
	case annotation.Literal:
		scope, err := parseScope(tok)
		if err != nil {
			return Struct{}, malformed(tok.Span, err.Error())
		}
		return Struct{Visibility: Scoped, Scope: scope}, nil
	case annotation.Malformed:
		return Struct{}, malformed(tok.Span, tok.Reason)
	default:
		panic(fmt.Sprintf("unhandled annotation kind %v", tok.Kind))
	}
}

// isInterfaceName accepts Name, pkg.Name and their instantiations.
func isInterfaceName(text string) bool {
	expr, err := goparser.ParseExpr(text)
	if err != nil {
		return false
	}
	return isTypeName(expr)
}

func isTypeName(expr ast.Expr) bool {
	switch v := expr.(type) {
	case *ast.Ident:
		return true
	case *ast.SelectorExpr:
		_, ok := v.X.(*ast.Ident)
		return ok
	case *ast.IndexExpr:
		return isTypeName(v.X)
	case *ast.IndexListExpr:
		return isTypeName(v.X)
	}
	return false
}

// parseScope validates a scope literal as a build constraint and returns
// its canonical form.
func parseScope(tok annotation.Token) (string, error) {
	if tok.LitKind != token.STRING {
		return "", fmt.Errorf("scope must be a string literal, got %s", tok.Text)
	}
	raw, err := strconv.Unquote(tok.Text)
	if err != nil {
		return "", fmt.Errorf("invalid scope string %s", tok.Text)
	}
	expr, err := constraint.Parse("//go:build " + raw)
	if err != nil {
		return "", fmt.Errorf("scope %q is not a build constraint: %v", raw, err)
	}
	return expr.String(), nil
}
