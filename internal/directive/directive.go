// Package directive resolves raw annotations into the closed set of
// field and struct directives consumed by the synthesizer.
package directive

import (
	"fmt"

	"github.com/seitarof/defew/internal/diag"
)

// FieldKind enumerates the field directives.
type FieldKind int

const (
	UseDefault FieldKind = iota
	RequireParameter
	ComputeFromExpression
	BindConstant
)

func (k FieldKind) String() string {
	switch k {
	case UseDefault:
		return "UseDefault"
	case RequireParameter:
		return "RequireParameter"
	case ComputeFromExpression:
		return "ComputeFromExpression"
	case BindConstant:
		return "BindConstant"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}

// RawExpression is an uninterpreted expression spliced verbatim into the
// generated constructor.
type RawExpression struct {
	Text string
	Span diag.Span
}

// Field is the resolved meaning of one field's annotation. Expr is set
// for ComputeFromExpression, Literal for BindConstant.
type Field struct {
	Kind    FieldKind
	Expr    RawExpression
	Literal string
}

// Visibility is the reach of a freestanding constructor.
type Visibility int

const (
	Public Visibility = iota
	Private
	Scoped
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "Public"
	case Private:
		return "Private"
	case Scoped:
		return "Scoped"
	default:
		return fmt.Sprintf("Visibility(%d)", int(v))
	}
}

// Struct is the resolved meaning of a type's annotation.
type Struct struct {
	Visibility Visibility
	// Scope is the build constraint expression of Scoped visibility.
	Scope string
	// TraitTarget names the interface whose factory method the
	// constructor implements. Empty for freestanding constructors.
	TraitTarget string
}

// HasTraitTarget reports whether the constructor is an interface factory method.
func (s Struct) HasTraitTarget() bool {
	return s.TraitTarget != ""
}
