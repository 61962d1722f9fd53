package generator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seitarof/defew/internal/parser"
	"github.com/seitarof/defew/internal/synth"
)

type testConfig struct {
	filename string
}

func (c testConfig) OutputFilename() string { return c.filename }

type passthroughFormatter struct{}

func (passthroughFormatter) Format(_ string, src []byte) ([]byte, error) { return src, nil }

type failingFormatter struct{}

func (failingFormatter) Format(_ string, _ []byte) ([]byte, error) { return nil, errors.New("boom") }

type memoryWriter struct {
	files   map[string]string
	removed []string
}

func newMemoryWriter() *memoryWriter { return &memoryWriter{files: map[string]string{}} }

func (w *memoryWriter) Write(filename string, data []byte) error {
	w.files[filename] = string(data)
	return nil
}

func (w *memoryWriter) Remove(filename string) error {
	w.removed = append(w.removed, filename)
	return nil
}

func dataPlan() *synth.Plan {
	return &synth.Plan{
		TypeName: "Data",
		FuncName: "NewData",
		Params:   []synth.Param{{Name: "Created", Type: "time.Time"}},
		Bindings: []synth.Binding{
			{Name: "A", Kind: synth.BindingVar, Key: "A", Type: "int"},
			{Name: "B", Kind: synth.BindingVar, Key: "B", Type: "string", Expr: `"ABC"`},
			{Name: "C", Kind: synth.BindingConst, Key: "C", Type: "uint64", Expr: "42"},
		},
		Result: "v",
		Construction: []synth.FieldRef{
			{Key: "A", Ref: "A"},
			{Key: "B", Ref: "B"},
			{Key: "C", Ref: "C"},
			{Key: "Created", Ref: "Created"},
		},
	}
}

func TestGenerate_WritesFile(t *testing.T) {
	dir := t.TempDir()

	g := New(NewGoimportsFormatter(), NewFileWriter())
	unit := Unit{
		PkgName: "model",
		Dir:     dir,
		Imports: []parser.Import{{Path: `"strings"`}, {Path: `"time"`}},
		Plans:   []*synth.Plan{dataPlan()},
	}

	written, err := g.Generate(testConfig{filename: "defew_gen.go"}, unit)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(written) != 1 || written[0] != filepath.Join(dir, "defew_gen.go") {
		t.Fatalf("written = %v", written)
	}

	b, err := os.ReadFile(written[0])
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	got := string(b)

	checks := []string{
		Header,
		"package model",
		`"time"`,
		"// NewData constructs Data from its field annotations.",
		"func NewData(Created time.Time) (v Data) {",
		"\tA := v.A\n",
		"\tB := v.B\n\tB = \"ABC\"\n",
		"\tconst C = 42\n",
		"\tv.C = C\n\tv.Created = Created\n\treturn v\n}",
	}
	for _, check := range checks {
		if !strings.Contains(got, check) {
			t.Fatalf("generated code does not contain %q\n%s", check, got)
		}
	}
	if strings.Contains(got, `"strings"`) {
		t.Fatalf("unused import should be pruned\n%s", got)
	}
}

func TestGenerate_InterfaceTargetMethod(t *testing.T) {
	w := newMemoryWriter()
	g := New(passthroughFormatter{}, w)

	plan := &synth.Plan{
		TypeName:        "Data",
		FuncName:        "New",
		Interface:       "SomeInterface",
		AssertInterface: true,
		Result:          "v",
		Params:          []synth.Param{{Name: "a", Type: "int"}},
		Construction:    []synth.FieldRef{{Key: "a", Ref: "a"}},
	}
	if _, err := g.Generate(testConfig{filename: "/tmp/out/defew_gen.go"}, Unit{PkgName: "p", Plans: []*synth.Plan{plan}}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	got := w.files["/tmp/out/defew_gen.go"]
	checks := []string{
		"var _ SomeInterface = Data{}",
		"// New implements SomeInterface by constructing Data from its field annotations.",
		"func (Data) New(a int) (v Data) {",
		"\tv.a = a\n",
	}
	for _, check := range checks {
		if !strings.Contains(got, check) {
			t.Fatalf("generated code does not contain %q\n%s", check, got)
		}
	}
	if strings.Contains(got, "func NewData") {
		t.Fatalf("interface target must not emit a freestanding constructor\n%s", got)
	}
}

func TestGenerate_GenericConstructor(t *testing.T) {
	w := newMemoryWriter()
	g := New(passthroughFormatter{}, w)

	plan := &synth.Plan{
		TypeName:     "Box",
		TypeParams:   "[K comparable, V any]",
		TypeArgs:     "[K, V]",
		FuncName:     "newBox",
		Params:       []synth.Param{{Name: "Key", Type: "K"}},
		Result:       "v",
		Bindings:     []synth.Binding{{Name: "Items", Kind: synth.BindingVar, Key: "Items", Type: "map[K]V", Expr: "map[K]V{}"}},
		Construction: []synth.FieldRef{{Key: "Key", Ref: "Key"}, {Key: "Items", Ref: "Items"}},
	}
	if _, err := g.Generate(testConfig{filename: "out.go"}, Unit{PkgName: "p", Plans: []*synth.Plan{plan}}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	got := w.files["out.go"]
	for _, check := range []string{
		"func newBox[K comparable, V any](Key K) (v Box[K, V]) {",
		"\tItems := v.Items\n\tItems = map[K]V{}\n",
		"\tv.Key = Key\n\tv.Items = Items\n",
	} {
		if !strings.Contains(got, check) {
			t.Fatalf("generated code does not contain %q\n%s", check, got)
		}
	}
}

func TestGenerate_SplitsScopedConstructors(t *testing.T) {
	w := newMemoryWriter()
	g := New(passthroughFormatter{}, w)

	scoped := dataPlan()
	scoped.TypeName = "Fixture"
	scoped.FuncName = "NewFixture"
	scoped.BuildScope = "integration && !race"

	written, err := g.Generate(testConfig{filename: "gen/defew_gen.go"}, Unit{
		PkgName: "model",
		Dir:     "/ignored",
		Plans:   []*synth.Plan{scoped, dataPlan()},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := []string{"gen/defew_gen.go", "gen/defew_gen.integration-race.go"}
	if len(written) != len(want) || written[0] != want[0] || written[1] != want[1] {
		t.Fatalf("written = %v, want %v", written, want)
	}

	main := w.files[want[0]]
	if strings.Contains(main, "//go:build") || strings.Contains(main, "NewFixture") {
		t.Fatalf("unscoped file should not hold scoped constructors\n%s", main)
	}
	scopedSrc := w.files[want[1]]
	if !strings.HasPrefix(scopedSrc, Header+"\n\n//go:build integration && !race\n\npackage model") {
		t.Fatalf("scoped file header mismatch\n%s", scopedSrc)
	}
	if !strings.Contains(scopedSrc, "func NewFixture(") {
		t.Fatalf("scoped constructor missing\n%s", scopedSrc)
	}
}

func TestGenerate_FormatErrorWritesNothing(t *testing.T) {
	w := newMemoryWriter()
	g := New(failingFormatter{}, w)

	_, err := g.Generate(testConfig{filename: "out.go"}, Unit{PkgName: "p", Plans: []*synth.Plan{dataPlan()}})
	if err == nil || !strings.Contains(err.Error(), "format") {
		t.Fatalf("expected format error, got %v", err)
	}
	if len(w.files) != 0 {
		t.Fatalf("no file should be written, got %v", w.files)
	}
}

func TestGenerate_NoPlans(t *testing.T) {
	g := New(passthroughFormatter{}, newMemoryWriter())
	if _, err := g.Generate(testConfig{filename: "out.go"}, Unit{PkgName: "p"}); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestGenerate_RemovesStaleScopedFiles(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "defew_gen.old.go")
	if err := os.WriteFile(stale, []byte(Header+"\n\n//go:build old\n\npackage p\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	handwritten := filepath.Join(dir, "defew_gen.notes.go")
	if err := os.WriteFile(handwritten, []byte("package p\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := newMemoryWriter()
	g := New(passthroughFormatter{}, w)
	if _, err := g.Generate(testConfig{filename: "defew_gen.go"}, Unit{PkgName: "p", Dir: dir, Plans: []*synth.Plan{dataPlan()}}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(w.removed) != 1 || w.removed[0] != stale {
		t.Fatalf("removed = %v, want only %s", w.removed, stale)
	}
}

func TestScopeToken(t *testing.T) {
	tests := map[string]string{
		"integration":       "integration",
		"linux && amd64":    "linux-amd64",
		"!test":             "test",
		"(a || b) && !c":    "a-b-c",
		"go1.22":            "go1-22",
		"&&":                "scoped",
	}
	for scope, want := range tests {
		if got := scopeToken(scope); got != want {
			t.Fatalf("scopeToken(%q) = %q, want %q", scope, got, want)
		}
	}
}

func TestGroupByScope_DisambiguatesTokens(t *testing.T) {
	groups := groupByScope([]*synth.Plan{
		{TypeName: "A", BuildScope: "a && b"},
		{TypeName: "B", BuildScope: "a || b"},
		{TypeName: "C"},
	})
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[0].scope != "" || groups[0].plans[0].TypeName != "C" {
		t.Fatalf("unscoped group should come first: %#v", groups[0])
	}
	if groups[1].token != "a-b" || groups[2].token != "a-b2" {
		t.Fatalf("tokens = %q, %q", groups[1].token, groups[2].token)
	}
}

func TestDedupeImports(t *testing.T) {
	got := dedupeImports([]parser.Import{
		{Path: `"time"`},
		{Path: `"math/rand"`},
		{Path: `"time"`},
		{Name: "cr", Path: `"crypto/rand"`},
		{Name: "cr", Path: `"crypto/rand"`},
	})
	if len(got) != 3 {
		t.Fatalf("dedupeImports() = %#v", got)
	}
	if got[1].Path != `"math/rand"` || got[2].Name != "cr" {
		t.Fatalf("unexpected order: %#v", got)
	}
}

func TestRenderBinding(t *testing.T) {
	tests := []struct {
		binding synth.Binding
		want    string
	}{
		{synth.Binding{Name: "Level", Kind: synth.BindingVar, Key: "Level", Type: "Level"}, "Level := out.Level"},
		{synth.Binding{Name: "field1", Kind: synth.BindingVar, Key: "Right", Type: "Right", Expr: "123"}, "field1 := out.Right\n\tfield1 = 123"},
		{synth.Binding{Name: "Max", Kind: synth.BindingConst, Key: "Max", Type: "Level", Expr: "3"}, "const Max = 3"},
	}
	for _, tc := range tests {
		if got := renderBinding("out", tc.binding); got != tc.want {
			t.Fatalf("renderBinding(%s) = %q, want %q", tc.binding.Name, got, tc.want)
		}
	}
}
