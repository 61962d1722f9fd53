// Package synth turns resolved directives into a constructor plan.
package synth

import (
	"fmt"
	"strconv"

	"github.com/seitarof/defew/internal/directive"
	"github.com/seitarof/defew/internal/parser"
)

// Synthesize builds the constructor plan of desc in a single pass over
// its fields in declaration order. fields must hold one directive per
// field of desc.
//
// Bindings are declared in field order, so an expression may reference
// parameters and bindings of earlier fields only. Forward references are
// left for the Go compiler to reject. Field types are only spelled in
// the signature, where parameter names are not yet in scope; inside the
// body every value takes its type from the named result.
func Synthesize(desc *parser.StructInfo, fields []directive.Field, sd directive.Struct, opts Options) (*Plan, error) {
	if len(fields) != len(desc.Fields) {
		return nil, fmt.Errorf("synthesize %s: %d directives for %d fields", desc.Name, len(fields), len(desc.Fields))
	}

	plan := &Plan{
		TypeName:   desc.Name,
		TypeParams: desc.TypeParams,
		TypeArgs:   desc.TypeArgs,
	}
	switch {
	case sd.HasTraitTarget():
		plan.FuncName = opts.factoryMethod()
		plan.Interface = sd.TraitTarget
		// a generic type has no single instantiation to assert with
		plan.AssertInterface = !desc.IsGeneric()
	case sd.Visibility == directive.Scoped:
		plan.FuncName = ConstructorName(desc.Name, true)
		plan.BuildScope = sd.Scope
	default:
		plan.FuncName = ConstructorName(desc.Name, sd.Visibility != directive.Private)
	}

	names := newNamer(desc.Fields)
	for i, f := range desc.Fields {
		if f.IsBlank() {
			continue
		}

		var ref string
		switch d := fields[i]; d.Kind {
		case directive.RequireParameter:
			ref = names.param(f)
			plan.Params = append(plan.Params, Param{Name: ref, Type: f.TypeStr})
		case directive.UseDefault:
			ref = names.binding(f)
			plan.Bindings = append(plan.Bindings, Binding{Name: ref, Kind: BindingVar, Key: f.Key(), Type: f.TypeStr})
		case directive.ComputeFromExpression:
			ref = names.binding(f)
			plan.Bindings = append(plan.Bindings, Binding{Name: ref, Kind: BindingVar, Key: f.Key(), Type: f.TypeStr, Expr: d.Expr.Text})
		case directive.BindConstant:
			ref = names.binding(f)
			plan.Bindings = append(plan.Bindings, Binding{Name: ref, Kind: BindingConst, Key: f.Key(), Type: f.TypeStr, Expr: d.Literal})
		default:
			return nil, fmt.Errorf("synthesize %s: unknown directive %v for field %s", desc.Name, d.Kind, f.Key())
		}
		plan.Construction = append(plan.Construction, FieldRef{Key: f.Key(), Ref: ref})
	}

	for _, b := range plan.Bindings {
		names.reserve(identifiers(b.Expr)...)
	}
	names.reserve(identifiers(desc.TypeParams)...)
	plan.Result = names.placeholder("v", -1)
	return plan, nil
}

// namer derives local names. Named fields keep their own name so later
// expressions can refer to them; embedded fields get positional
// placeholders that never collide with a declared field name.
type namer struct {
	taken map[string]bool
}

func newNamer(fields []parser.FieldInfo) *namer {
	taken := make(map[string]bool, len(fields))
	for _, f := range fields {
		if !f.IsEmbedded() {
			taken[f.Name] = true
		}
	}
	return &namer{taken: taken}
}

func (n *namer) param(f parser.FieldInfo) string {
	if !f.IsEmbedded() {
		return f.Name
	}
	return n.placeholder("param", f.Index)
}

func (n *namer) binding(f parser.FieldInfo) string {
	if !f.IsEmbedded() {
		return f.Name
	}
	return n.placeholder("field", f.Index)
}

func (n *namer) reserve(names ...string) {
	for _, name := range names {
		n.taken[name] = true
	}
}

// placeholder returns prefix followed by index, or prefix alone for a
// negative index, made unique by appending '_'.
func (n *namer) placeholder(prefix string, index int) string {
	name := prefix
	if index >= 0 {
		name += strconv.Itoa(index)
	}
	for n.taken[name] {
		name += "_"
	}
	n.taken[name] = true
	return name
}
