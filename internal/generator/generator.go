package generator

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"golang.org/x/tools/imports"

	"github.com/seitarof/defew/internal/parser"
	"github.com/seitarof/defew/internal/synth"
)

//go:embed templates/*.go.tmpl
var templateFS embed.FS

// Header is the first line of every generated file.
const Header = "// Code generated by defew. DO NOT EDIT."

// Generator generates constructor code from synthesis plans.
type Generator interface {
	// Generate renders, formats and writes unit and returns the written
	// file names. Nothing is written when any file fails to render.
	Generate(cfg Config, unit Unit) ([]string, error)
}

// Config is the minimum config contract required by generator.
type Config interface {
	OutputFilename() string
}

// Unit is the set of constructors generated for one package.
type Unit struct {
	PkgName string
	// Dir is the package directory; bare output file names are placed here.
	Dir     string
	Imports []parser.Import
	Plans   []*synth.Plan
}

// Formatter formats generated Go code and organizes imports.
type Formatter interface {
	Format(filename string, src []byte) ([]byte, error)
}

// FileWriter writes generated code to disk.
type FileWriter interface {
	Write(filename string, data []byte) error
	Remove(filename string) error
}

type generatorImpl struct {
	formatter Formatter
	writer    FileWriter
	tmpl      *template.Template
}

type goimportsFormatter struct{}

type fileWriter struct{}

type templateData struct {
	Package         string
	BuildConstraint string
	Imports         []parser.Import
	Constructors    []*synth.Plan
}

type renderedFile struct {
	name string
	src  []byte
}

// New creates a code generator.
func New(f Formatter, w FileWriter) Generator {
	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"header":  func() string { return Header },
		"params":  renderParams,
		"binding": renderBinding,
	}).ParseFS(templateFS, "templates/*.go.tmpl"))
	return &generatorImpl{formatter: f, writer: w, tmpl: tmpl}
}

// NewGoimportsFormatter creates a formatter backed by goimports.
func NewGoimportsFormatter() Formatter {
	return &goimportsFormatter{}
}

// NewFileWriter creates a plain file writer.
func NewFileWriter() FileWriter {
	return &fileWriter{}
}

func (g *generatorImpl) Generate(cfg Config, unit Unit) ([]string, error) {
	if len(unit.Plans) == 0 {
		return nil, fmt.Errorf("no constructor plans")
	}

	base := outputPath(cfg.OutputFilename(), unit.Dir)
	files := make([]renderedFile, 0, 1)
	for _, group := range groupByScope(unit.Plans) {
		name := base
		if group.scope != "" {
			name = scopedFilename(base, group.token)
		}

		data := templateData{
			Package:         unit.PkgName,
			BuildConstraint: group.scope,
			Imports:         dedupeImports(unit.Imports),
			Constructors:    group.plans,
		}
		var buf bytes.Buffer
		if err := g.tmpl.ExecuteTemplate(&buf, "constructor.go.tmpl", data); err != nil {
			return nil, fmt.Errorf("template: %w", err)
		}
		formatted, err := g.formatter.Format(name, buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("format %s: %w", filepath.Base(name), err)
		}
		files = append(files, renderedFile{name: name, src: formatted})
	}

	written := make([]string, 0, len(files))
	keep := make(map[string]bool, len(files))
	for _, f := range files {
		if err := g.writer.Write(f.name, f.src); err != nil {
			return written, fmt.Errorf("write: %w", err)
		}
		written = append(written, f.name)
		keep[f.name] = true
	}
	if err := g.removeStaleScoped(base, keep); err != nil {
		return written, err
	}
	return written, nil
}

// removeStaleScoped deletes files of a previous run that this run did
// not produce, such as a scope that no longer exists.
func (g *generatorImpl) removeStaleScoped(base string, keep map[string]bool) error {
	matches, err := filepath.Glob(strings.TrimSuffix(base, ".go") + ".*.go")
	if err != nil {
		return fmt.Errorf("glob stale files: %w", err)
	}
	for _, m := range append(matches, base) {
		if keep[m] || !isGenerated(m) {
			continue
		}
		if err := g.writer.Remove(m); err != nil {
			return fmt.Errorf("remove stale %s: %w", filepath.Base(m), err)
		}
	}
	return nil
}

func isGenerated(filename string) bool {
	b, err := os.ReadFile(filename)
	if err != nil {
		return false
	}
	first, _, _ := strings.Cut(string(b), "\n")
	return strings.TrimSpace(first) == Header
}

func (f *goimportsFormatter) Format(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}

func (w *fileWriter) Write(filename string, data []byte) error {
	return os.WriteFile(filename, data, 0o644)
}

func (w *fileWriter) Remove(filename string) error {
	return os.Remove(filename)
}

func outputPath(filename, dir string) string {
	if filepath.IsAbs(filename) || filepath.Dir(filename) != "." || dir == "" {
		return filename
	}
	return filepath.Join(dir, filename)
}

type scopeGroup struct {
	scope string
	token string
	plans []*synth.Plan
}

// groupByScope keeps unscoped plans first, then one group per build
// constraint in lexical order. Plan order is preserved inside a group.
func groupByScope(plans []*synth.Plan) []scopeGroup {
	byScope := map[string]*scopeGroup{}
	var scopes []string
	for _, p := range plans {
		g, ok := byScope[p.BuildScope]
		if !ok {
			g = &scopeGroup{scope: p.BuildScope}
			byScope[p.BuildScope] = g
			scopes = append(scopes, p.BuildScope)
		}
		g.plans = append(g.plans, p)
	}
	sort.Strings(scopes)

	out := make([]scopeGroup, 0, len(scopes))
	usedTokens := map[string]int{}
	for _, s := range scopes {
		g := byScope[s]
		if s != "" {
			g.token = scopeToken(s)
			usedTokens[g.token]++
			if n := usedTokens[g.token]; n > 1 {
				g.token += strconv.Itoa(n)
			}
		}
		out = append(out, *g)
	}
	return out
}

// scopeToken turns a build constraint into a file name fragment. Runs of
// other characters become '-' so the name never gains an implicit
// _GOOS, _GOARCH or _test suffix.
func scopeToken(scope string) string {
	fields := strings.FieldsFunc(strings.ToLower(scope), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(fields) == 0 {
		return "scoped"
	}
	return strings.Join(fields, "-")
}

func scopedFilename(base, token string) string {
	return strings.TrimSuffix(base, ".go") + "." + token + ".go"
}

// dedupeImports drops repeated specs. Conflicting local names are
// rejected before generation, so none are dropped here.
func dedupeImports(in []parser.Import) []parser.Import {
	seen := map[string]bool{}
	out := make([]parser.Import, 0, len(in))
	for _, imp := range in {
		if seen[imp.Spec()] {
			continue
		}
		seen[imp.Spec()] = true
		out = append(out, imp)
	}
	return out
}

func renderParams(params []synth.Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, p.Name+" "+p.Type)
	}
	return strings.Join(parts, ", ")
}

// renderBinding declares b without spelling its type: a variable starts
// as a copy of the zero-valued result field, a constant stays untyped
// until it is assigned to the field.
func renderBinding(result string, b synth.Binding) string {
	if b.Kind == synth.BindingConst {
		return "const " + b.Name + " = " + b.Expr
	}
	decl := b.Name + " := " + result + "." + b.Key
	if strings.TrimSpace(b.Expr) == "" {
		return decl
	}
	return decl + "\n\t" + b.Name + " = " + b.Expr
}
