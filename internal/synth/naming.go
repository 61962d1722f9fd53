package synth

import (
	"go/scanner"
	"go/token"
	"strings"
	"unicode"
)

// ConstructorName returns the freestanding constructor name of typeName:
// NewData when exported, newData otherwise.
func ConstructorName(typeName string, exported bool) string {
	token := toExportedToken(typeName)
	if exported {
		return "New" + token
	}
	return "new" + token
}

func toExportedToken(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(parts) == 0 {
		return "Type"
	}

	var b strings.Builder
	for _, part := range parts {
		runes := []rune(part)
		b.WriteRune(unicode.ToUpper(runes[0]))
		if len(runes) > 1 {
			b.WriteString(string(runes[1:]))
		}
	}
	return b.String()
}

// identifiers lists the identifiers of a Go source fragment in order of
// appearance, selector names included.
func identifiers(src string) []string {
	if src == "" {
		return nil
	}
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var s scanner.Scanner
	s.Init(file, []byte(src), nil, 0)

	var out []string
	for {
		_, tok, lit := s.Scan()
		if tok == token.EOF {
			return out
		}
		if tok == token.IDENT {
			out = append(out, lit)
		}
	}
}
