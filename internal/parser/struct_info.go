package parser

import (
	"path"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/seitarof/defew/internal/annotation"
	"github.com/seitarof/defew/internal/diag"
)

// StructInfo is the structural description of one struct type.
type StructInfo struct {
	Name    string
	PkgPath string
	PkgName string
	Dir     string
	// TypeParams is the opaque type parameter list, e.g. "[K comparable, V any]".
	TypeParams string
	// TypeArgs instantiates the type with its own parameters, e.g. "[K, V]".
	TypeArgs    string
	Annotations []annotation.Annotation
	Fields      []FieldInfo
	Imports     []Import
	Span        diag.Span
}

// TypeRef returns the type as referenced inside its own package.
func (s *StructInfo) TypeRef() string {
	return s.Name + s.TypeArgs
}

// IsGeneric reports whether the type declares type parameters.
func (s *StructInfo) IsGeneric() bool {
	return s.TypeParams != ""
}

// FieldInfo describes one field in declaration order.
type FieldInfo struct {
	Index int
	// Name is empty for embedded fields.
	Name string
	// EmbeddedName is the implicit field name of an embedded field.
	EmbeddedName string
	TypeStr      string
	Annotations  []annotation.Annotation
	Span         diag.Span
}

// IsEmbedded reports whether the field has no explicit name.
func (f FieldInfo) IsEmbedded() bool {
	return f.Name == ""
}

// IsBlank reports whether the field is the blank identifier.
func (f FieldInfo) IsBlank() bool {
	return f.Name == "_"
}

// Key returns the field's identity in a keyed composite literal.
func (f FieldInfo) Key() string {
	if f.IsEmbedded() {
		return f.EmbeddedName
	}
	return f.Name
}

// Import is an import declaration of the file that declares a struct.
type Import struct {
	Name string
	Path string
}

// Spec renders the import as it appears inside an import block.
func (i Import) Spec() string {
	if i.Name == "" {
		return i.Path
	}
	return i.Name + " " + i.Path
}

// LocalName is the name the import binds in its file. Unnamed imports are
// assumed to bind the last path element without a major version suffix,
// a "go-" prefix or anything after the first non-identifier character.
func (i Import) LocalName() string {
	if i.Name != "" {
		return i.Name
	}
	p, err := strconv.Unquote(i.Path)
	if err != nil {
		p = i.Path
	}
	base := path.Base(p)
	if isMajorVersion(base) && path.Dir(p) != "." {
		base = path.Base(path.Dir(p))
	}
	base = strings.TrimPrefix(base, "go-")
	if n := strings.IndexFunc(base, notIdentifier); n >= 0 {
		base = base[:n]
	}
	return base
}

func isMajorVersion(elem string) bool {
	if len(elem) < 2 || elem[0] != 'v' {
		return false
	}
	_, err := strconv.Atoi(elem[1:])
	return err == nil
}

func notIdentifier(r rune) bool {
	if 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9' || r == '_' {
		return false
	}
	return r < utf8.RuneSelf || !(unicode.IsLetter(r) || unicode.IsDigit(r))
}
