package cli

import (
	"fmt"

	"github.com/seitarof/defew/internal/directive"
	"github.com/seitarof/defew/internal/generator"
	"github.com/seitarof/defew/internal/logger"
	"github.com/seitarof/defew/internal/parser"
	"github.com/seitarof/defew/internal/synth"
)

// Runner orchestrates parser/directive/synth/generator layers.
type Runner interface {
	Run(cfg *Config) error
}

type runnerImpl struct {
	parser    parser.Parser
	generator generator.Generator
	log       logger.Logger
}

// NewRunner creates a default runner implementation.
func NewRunner(p parser.Parser, g generator.Generator, log logger.Logger) Runner {
	if log == nil {
		log = logger.NewNop()
	}
	return &runnerImpl{
		parser:    p,
		generator: g,
		log:       log,
	}
}

// Run executes a single generation cycle. The first diagnostic aborts the
// run before anything is written.
func (r *runnerImpl) Run(cfg *Config) error {
	infos, err := r.parser.ParseAll(cfg.Package, cfg.Types)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if len(infos) == 0 {
		return fmt.Errorf("no annotated struct types in %q; select types with --type", cfg.Package)
	}

	opts := synth.Options{FactoryMethod: cfg.FactoryMethod}
	plans := make([]*synth.Plan, 0, len(infos))
	for _, info := range infos {
		plan, err := synthesizeOne(info, opts)
		if err != nil {
			return err
		}
		r.logPlan(plan)
		plans = append(plans, plan)
	}

	imports, err := collectImports(infos, plans)
	if err != nil {
		return err
	}
	unit := generator.Unit{
		PkgName: infos[0].PkgName,
		Dir:     infos[0].Dir,
		Imports: imports,
		Plans:   plans,
	}
	written, err := r.generator.Generate(cfg, unit)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	for _, f := range written {
		r.log.Info("generated", "file", f, "package", unit.PkgName)
	}
	return nil
}

// synthesizeOne resolves the type directive first, then the field
// directives in declaration order, and builds the plan.
func synthesizeOne(info *parser.StructInfo, opts synth.Options) (*synth.Plan, error) {
	sd, err := directive.ResolveStruct(info)
	if err != nil {
		return nil, err
	}
	fields, err := directive.ResolveFields(info)
	if err != nil {
		return nil, err
	}
	return synth.Synthesize(info, fields, sd, opts)
}

func (r *runnerImpl) logPlan(plan *synth.Plan) {
	r.log.Debug(
		"synthesized constructor",
		"type", plan.TypeName,
		"func", plan.FuncName,
		"params", len(plan.Params),
		"bindings", len(plan.Bindings),
	)
	if plan.IsMethod() && !plan.AssertInterface {
		r.log.Warn(
			"generic type: interface implementation is not asserted",
			"type", plan.TypeName,
			"interface", plan.Interface,
		)
	}
}

// collectImports gathers the source imports of every type for the shared
// import block. Two source files binding a name the constructors use to
// different packages cannot both be served, and that is an error. Other
// imports are carried when their name is free and pruned by goimports
// when unused.
func collectImports(infos []*parser.StructInfo, plans []*synth.Plan) ([]parser.Import, error) {
	type origin struct {
		path string
		file string
	}
	bound := map[string]origin{}
	var out []parser.Import
	for i, info := range infos {
		refs := plans[i].References()
		for _, imp := range info.Imports {
			name := imp.LocalName()
			if !refs[name] {
				continue
			}
			prev, ok := bound[name]
			if !ok {
				bound[name] = origin{path: imp.Path, file: info.Span.File}
				out = append(out, imp)
				continue
			}
			if prev.path != imp.Path {
				return nil, fmt.Errorf(
					"import name %q is %s in %s but %s in %s; rename one import or generate the types separately with --type",
					name, prev.path, prev.file, imp.Path, info.Span.File,
				)
			}
		}
	}
	for _, info := range infos {
		for _, imp := range info.Imports {
			name := imp.LocalName()
			if _, ok := bound[name]; ok {
				continue
			}
			bound[name] = origin{path: imp.Path, file: info.Span.File}
			out = append(out, imp)
		}
	}
	return out, nil
}
