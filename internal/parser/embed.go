package parser

import (
	"bytes"
	"go/ast"
	"go/printer"
	"go/token"
	"strings"
)

// embeddedFieldName returns the implicit name of an embedded field:
// the type name without pointer, package qualifier or type arguments.
func embeddedFieldName(expr ast.Expr) string {
	switch v := expr.(type) {
	case *ast.StarExpr:
		return embeddedFieldName(v.X)
	case *ast.ParenExpr:
		return embeddedFieldName(v.X)
	case *ast.SelectorExpr:
		return v.Sel.Name
	case *ast.IndexExpr:
		return embeddedFieldName(v.X)
	case *ast.IndexListExpr:
		return embeddedFieldName(v.X)
	case *ast.Ident:
		return v.Name
	}
	return ""
}

func exprString(fset *token.FileSet, expr ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, expr); err != nil {
		return ""
	}
	return buf.String()
}

// typeParamLists renders a type parameter list twice: as declared
// ("[K comparable, V any]") and as instantiation arguments ("[K, V]").
func typeParamLists(fset *token.FileSet, fl *ast.FieldList) (string, string) {
	if fl == nil || len(fl.List) == 0 {
		return "", ""
	}
	decl := make([]string, 0, len(fl.List))
	args := make([]string, 0, len(fl.List))
	for _, f := range fl.List {
		names := make([]string, 0, len(f.Names))
		for _, n := range f.Names {
			names = append(names, n.Name)
		}
		decl = append(decl, strings.Join(names, ", ")+" "+exprString(fset, f.Type))
		args = append(args, names...)
	}
	return "[" + strings.Join(decl, ", ") + "]", "[" + strings.Join(args, ", ") + "]"
}
