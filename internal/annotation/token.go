package annotation

import (
	"go/scanner"
	"go/token"
	"strings"

	"github.com/seitarof/defew/internal/diag"
)

// Kind is the surface shape of an annotation.
type Kind int

const (
	Bare Kind = iota
	Parenthesized
	Literal
	Malformed
)

func (k Kind) String() string {
	switch k {
	case Bare:
		return "bare"
	case Parenthesized:
		return "parenthesized"
	case Literal:
		return "literal"
	default:
		return "malformed"
	}
}

// Token is a classified annotation. Text holds the parenthesized payload
// or the literal; Reason explains a Malformed token.
type Token struct {
	Kind Kind
	Text string
	// LitKind is the Go token kind of a Literal (token.INT, token.STRING, ...).
	// It is token.IDENT for true and false.
	LitKind token.Token
	Reason  string
	Span    diag.Span
}

// Classify determines the shape of a raw annotation.
func Classify(a Annotation) Token {
	p := a.Payload
	switch {
	case p == "":
		return Token{Kind: Bare, Span: a.Span}
	case strings.HasPrefix(p, "("):
		inner, reason := splitParenthesized(p)
		if reason != "" {
			return malformed(a, reason)
		}
		return Token{Kind: Parenthesized, Text: inner, Span: a.Span}
	case strings.HasPrefix(p, "="):
		lit := strings.TrimSpace(p[1:])
		if lit == "" {
			return malformed(a, "missing literal after '='")
		}
		kind, reason := checkLiteral(lit)
		if reason != "" {
			return malformed(a, reason)
		}
		return Token{Kind: Literal, Text: lit, LitKind: kind, Span: a.Span}
	case strings.HasPrefix(p, "["), strings.HasPrefix(p, "{"):
		return malformed(a, "unsupported delimiter "+p[:1])
	default:
		return malformed(a, "unexpected text after directive name")
	}
}

func malformed(a Annotation, reason string) Token {
	return Token{Kind: Malformed, Reason: reason, Span: a.Span}
}

type lexeme struct {
	tok token.Token
	off int
	lit string
}

func lex(src string) ([]lexeme, bool) {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var s scanner.Scanner
	failed := false
	s.Init(file, []byte(src), func(token.Position, string) { failed = true }, 0)

	var out []lexeme
	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		// automatic semicolon inserted at end of input
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}
		if tok == token.ILLEGAL {
			failed = true
		}
		out = append(out, lexeme{tok: tok, off: file.Offset(pos), lit: lit})
	}
	return out, !failed
}

var closers = map[token.Token]token.Token{
	token.LPAREN: token.RPAREN,
	token.LBRACK: token.RBRACK,
	token.LBRACE: token.RBRACE,
}

// splitParenthesized checks that p is "(" expr ")" with balanced
// delimiters and exactly one top-level expression, and returns expr.
func splitParenthesized(p string) (string, string) {
	toks, ok := lex(p)
	if !ok {
		return "", "invalid token in expression"
	}
	if len(toks) == 0 || toks[0].tok != token.LPAREN {
		return "", "expected '('"
	}

	var stack []token.Token
	closeIdx := -1
	for i, t := range toks {
		switch t.tok {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			stack = append(stack, closers[t.tok])
		case token.RPAREN, token.RBRACK, token.RBRACE:
			if len(stack) == 0 || stack[len(stack)-1] != t.tok {
				return "", "unbalanced delimiters"
			}
			stack = stack[:len(stack)-1]
		case token.COMMA:
			if len(stack) == 1 {
				return "", "multiple expressions"
			}
		}
		if len(stack) == 0 {
			closeIdx = i
			break
		}
	}
	if closeIdx < 0 {
		return "", "unbalanced delimiters"
	}
	if closeIdx != len(toks)-1 {
		return "", "unexpected text after closing parenthesis"
	}

	inner := strings.TrimSpace(p[toks[0].off+1 : toks[closeIdx].off])
	if inner == "" {
		return "", "empty parentheses"
	}
	return inner, ""
}

// checkLiteral accepts one optionally signed Go basic literal, or true/false.
func checkLiteral(lit string) (token.Token, string) {
	toks, ok := lex(lit)
	if !ok {
		return token.ILLEGAL, "invalid literal"
	}
	if len(toks) == 2 && (toks[0].tok == token.ADD || toks[0].tok == token.SUB) {
		switch toks[1].tok {
		case token.INT, token.FLOAT, token.IMAG:
			return toks[1].tok, ""
		}
		return token.ILLEGAL, "sign applied to a non-numeric literal"
	}
	if len(toks) != 1 {
		return token.ILLEGAL, "expected a single literal"
	}
	switch t := toks[0]; t.tok {
	case token.INT, token.FLOAT, token.IMAG, token.CHAR, token.STRING:
		return t.tok, ""
	case token.IDENT:
		if t.lit == "true" || t.lit == "false" {
			return token.IDENT, ""
		}
	}
	return token.ILLEGAL, "expected a literal value"
}
