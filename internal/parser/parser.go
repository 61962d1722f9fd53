package parser

import (
	"errors"
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/seitarof/defew/internal/annotation"
	"github.com/seitarof/defew/internal/diag"
)

// Parser extracts structural descriptions from Go packages.
type Parser interface {
	Parse(pkgPath string, typeName string) (*StructInfo, error)
	// ParseAll describes the named types in order. With no names it
	// describes every type carrying a defew annotation.
	ParseAll(pkgPath string, typeNames []string) ([]*StructInfo, error)
}

type parserImpl struct{}

// New returns default parser.
func New() Parser {
	return &parserImpl{}
}

type typeDecl struct {
	file *ast.File
	gen  *ast.GenDecl
	spec *ast.TypeSpec
}

func (p *parserImpl) Parse(pkgPath string, typeName string) (*StructInfo, error) {
	infos, err := p.ParseAll(pkgPath, []string{typeName})
	if err != nil {
		return nil, err
	}
	return infos[0], nil
}

func (p *parserImpl) ParseAll(pkgPath string, typeNames []string) ([]*StructInfo, error) {
	pkg, err := p.loadPackage(pkgPath)
	if err != nil {
		return nil, err
	}
	decls := collectTypeDecls(pkg)

	if len(typeNames) == 0 {
		return describeAnnotated(pkg, decls)
	}

	byName := make(map[string]typeDecl, len(decls))
	for _, d := range decls {
		byName[d.spec.Name.Name] = d
	}
	out := make([]*StructInfo, 0, len(typeNames))
	for _, name := range typeNames {
		d, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("type %q not found in package %q", name, pkgPath)
		}
		info, err := describe(pkg, d)
		if err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, nil
}

func (p *parserImpl) loadPackage(pkgPath string) (*packages.Package, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedSyntax,
		// Generated constructors may be stale; parsing without a
		// type-check keeps regeneration possible.
		ParseFile: func(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
			return goparser.ParseFile(fset, filename, src, goparser.ParseComments|goparser.SkipObjectResolution)
		},
	}

	pkgs, err := packages.Load(cfg, pkgPath)
	if err != nil {
		return nil, fmt.Errorf("load package %q: %w", pkgPath, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("package %q not found", pkgPath)
	}
	if len(pkgs) > 1 {
		return nil, fmt.Errorf("pattern %q matches %d packages; run defew once per package", pkgPath, len(pkgs))
	}
	pkg := pkgs[0]

	var errs []error
	for _, e := range pkg.Errors {
		if e.Kind == packages.ParseError || len(pkg.Syntax) == 0 {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package %q has errors: %w", pkgPath, errors.Join(errs...))
	}
	if len(pkg.Syntax) == 0 {
		return nil, fmt.Errorf("package %q has no Go files", pkgPath)
	}
	return pkg, nil
}

func collectTypeDecls(pkg *packages.Package) []typeDecl {
	var out []typeDecl
	for _, f := range pkg.Syntax {
		if ast.IsGenerated(f) {
			continue
		}
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				out = append(out, typeDecl{file: f, gen: gd, spec: ts})
			}
		}
	}
	return out
}

func describeAnnotated(pkg *packages.Package, decls []typeDecl) ([]*StructInfo, error) {
	out := []*StructInfo{}
	for _, d := range decls {
		if !isAnnotated(pkg.Fset, d) {
			continue
		}
		info, err := describe(pkg, d)
		if err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, nil
}

func isAnnotated(fset *token.FileSet, d typeDecl) bool {
	if len(annotation.Scan(fset, typeComments(d)...)) > 0 {
		return true
	}
	st, ok := d.spec.Type.(*ast.StructType)
	if !ok {
		return false
	}
	for _, f := range st.Fields.List {
		if len(annotation.Scan(fset, f.Doc, f.Comment)) > 0 {
			return true
		}
	}
	return false
}

func typeComments(d typeDecl) []*ast.CommentGroup {
	groups := []*ast.CommentGroup{d.spec.Doc}
	// a lone spec's doc comment is attached to the declaration
	if d.gen.Lparen == token.NoPos {
		groups = append(groups, d.gen.Doc)
	}
	return append(groups, d.spec.Comment)
}

func describe(pkg *packages.Package, d typeDecl) (*StructInfo, error) {
	fset := pkg.Fset
	name := d.spec.Name.Name
	span := diag.SpanOf(fset.Position(d.spec.Name.Pos()))

	st, ok := extractStructType(d.spec.Type)
	if !ok {
		return nil, diag.Report(diag.UnsupportedShape, span, "type "+name, "a struct type")
	}

	typeParams, typeArgs := typeParamLists(fset, d.spec.TypeParams)
	info := &StructInfo{
		Name:        name,
		PkgPath:     pkg.PkgPath,
		PkgName:     pkg.Name,
		Dir:         packageDir(pkg),
		TypeParams:  typeParams,
		TypeArgs:    typeArgs,
		Annotations: annotation.Scan(fset, typeComments(d)...),
		Fields:      flattenFields(fset, st),
		Imports:     fileImports(d.file),
		Span:        span,
	}

	if countInitializable(info.Fields) == 0 {
		return nil, diag.Report(diag.UnsupportedShape, span, "type "+name, "at least one field")
	}
	return info, nil
}

func extractStructType(expr ast.Expr) (*ast.StructType, bool) {
	switch v := expr.(type) {
	case *ast.ParenExpr:
		return extractStructType(v.X)
	case *ast.StructType:
		return v, true
	default:
		return nil, false
	}
}

func flattenFields(fset *token.FileSet, st *ast.StructType) []FieldInfo {
	var fields []FieldInfo
	index := 0
	for _, f := range st.Fields.List {
		typeStr := exprString(fset, f.Type)
		annotations := annotation.Scan(fset, f.Doc, f.Comment)

		if len(f.Names) == 0 {
			fields = append(fields, FieldInfo{
				Index:        index,
				EmbeddedName: embeddedFieldName(f.Type),
				TypeStr:      typeStr,
				Annotations:  annotations,
				Span:         diag.SpanOf(fset.Position(f.Type.Pos())),
			})
			index++
			continue
		}
		for _, n := range f.Names {
			fields = append(fields, FieldInfo{
				Index:       index,
				Name:        n.Name,
				TypeStr:     typeStr,
				Annotations: annotations,
				Span:        diag.SpanOf(fset.Position(n.Pos())),
			})
			index++
		}
	}
	return fields
}

func countInitializable(fields []FieldInfo) int {
	n := 0
	for _, f := range fields {
		if !f.IsBlank() {
			n++
		}
	}
	return n
}

func fileImports(f *ast.File) []Import {
	out := make([]Import, 0, len(f.Imports))
	for _, spec := range f.Imports {
		imp := Import{Path: spec.Path.Value}
		if spec.Name != nil {
			if spec.Name.Name == "_" || spec.Name.Name == "." {
				continue
			}
			imp.Name = spec.Name.Name
		}
		out = append(out, imp)
	}
	return out
}

func packageDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) > 0 {
		return filepath.Dir(pkg.GoFiles[0])
	}
	if len(pkg.CompiledGoFiles) > 0 {
		return filepath.Dir(pkg.CompiledGoFiles[0])
	}
	return strings.TrimSpace(pkg.Dir)
}
