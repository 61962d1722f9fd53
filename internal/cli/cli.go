package cli

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/spf13/pflag"

	"github.com/seitarof/defew/internal/synth"
)

// ParseArgs parses command line arguments into Config.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}
	var typesRaw string

	fs := pflag.NewFlagSet("defew", pflag.ContinueOnError)
	fs.StringVarP(&typesRaw, "type", "t", "", "comma-separated struct types (default: every annotated struct)")
	fs.StringVarP(&cfg.Output, "output", "o", DefaultOutput, "output file name, relative to the package directory")
	fs.StringVar(&cfg.FactoryMethod, "method", synth.DefaultFactoryMethod, "factory method name for //defew(Interface) targets")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	switch fs.NArg() {
	case 0:
		cfg.Package = "."
	case 1:
		cfg.Package = fs.Arg(0)
	default:
		return nil, fmt.Errorf("expected at most one package, got %d", fs.NArg())
	}

	if strings.TrimSpace(cfg.Output) == "" {
		return nil, fmt.Errorf("--output must not be empty")
	}
	if !strings.HasSuffix(cfg.Output, ".go") || strings.HasSuffix(cfg.Output, "_test.go") {
		return nil, fmt.Errorf("--output %q must be a non-test .go file", cfg.Output)
	}
	if !token.IsIdentifier(cfg.FactoryMethod) {
		return nil, fmt.Errorf("--method %q is not a valid identifier", cfg.FactoryMethod)
	}

	cfg.Types = splitCommaList(typesRaw)
	return cfg, nil
}

func splitCommaList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
