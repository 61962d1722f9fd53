package synth

// Param is one constructor parameter.
type Param struct {
	Name string
	Type string
}

// BindingKind selects between a runtime variable and a constant.
type BindingKind int

const (
	BindingVar BindingKind = iota
	BindingConst
)

// Binding is one local declaration of the constructor body. A BindingVar
// starts from the zero value of field Key, so its type is never spelled
// inside the body; a non-empty Expr is then assigned to it.
type Binding struct {
	Name string
	Kind BindingKind
	Key  string
	Type string
	Expr string
}

// FieldRef maps a field's identity to the local name holding its value.
type FieldRef struct {
	Key string
	Ref string
}

// Plan fully determines the text of one generated constructor.
type Plan struct {
	TypeName   string
	TypeParams string
	TypeArgs   string

	// FuncName is the constructor's name, or the factory method name when
	// Interface is set.
	FuncName  string
	Interface string
	// AssertInterface emits a compile-time assertion that the type
	// implements Interface.
	AssertInterface bool
	// BuildScope is the build constraint guarding the constructor.
	BuildScope string

	// Result names the constructed value. It never collides with a
	// parameter, a binding or an identifier used by an expression.
	Result string

	Params       []Param
	Bindings     []Binding
	Construction []FieldRef
}

// TypeRef is the constructed type as written inside its package.
func (p *Plan) TypeRef() string {
	return p.TypeName + p.TypeArgs
}

// IsMethod reports whether the constructor is an interface factory method.
func (p *Plan) IsMethod() bool {
	return p.Interface != ""
}

// References returns every identifier used by parameter types,
// expressions and the interface name. Package names among them select
// the imports the generated file needs.
func (p *Plan) References() map[string]bool {
	refs := map[string]bool{}
	add := func(src string) {
		for _, id := range identifiers(src) {
			refs[id] = true
		}
	}
	for _, param := range p.Params {
		add(param.Type)
	}
	for _, b := range p.Bindings {
		add(b.Expr)
	}
	add(p.Interface)
	return refs
}

// Options tunes names that the annotations do not determine.
type Options struct {
	// FactoryMethod names the method generated for interface targets.
	FactoryMethod string
}

// DefaultFactoryMethod is the factory method name used when none is configured.
const DefaultFactoryMethod = "New"

func (o Options) factoryMethod() string {
	if o.FactoryMethod == "" {
		return DefaultFactoryMethod
	}
	return o.FactoryMethod
}
