package cli

// DefaultOutput is the generated file name used when --output is empty.
const DefaultOutput = "defew_gen.go"

// Config stores CLI options for a single generation run.
type Config struct {
	// Package is the package pattern to scan, "." by default.
	Package string
	// Types restricts generation to the named types. Empty means every
	// annotated struct of the package.
	Types         []string
	Output        string
	FactoryMethod string
	Verbose       bool
	ShowVersion   bool
}

// OutputFilename returns destination file path for generator layer.
func (c *Config) OutputFilename() string {
	if c.Output == "" {
		return DefaultOutput
	}
	return c.Output
}
