package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/seitarof/defew/internal/cli"
	"github.com/seitarof/defew/internal/diag"
	"github.com/seitarof/defew/internal/generator"
	"github.com/seitarof/defew/internal/logger"
	"github.com/seitarof/defew/internal/parser"
)

var version = "dev"

func main() {
	log := logger.NewLogger(logger.DefaultConfig())

	cfg, err := cli.ParseArgs(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Error("invalid arguments", "err", err)
		os.Exit(2)
	}
	if cfg.ShowVersion {
		fmt.Println(version)
		return
	}
	if cfg.Verbose {
		log = logger.NewLogger(&logger.Config{Debug: true, Output: os.Stderr})
	}

	p := parser.New()
	f := generator.NewGoimportsFormatter()
	w := generator.NewFileWriter()
	g := generator.New(f, w)

	runner := cli.NewRunner(p, g, log)
	if err := runner.Run(cfg); err != nil {
		// diagnostics keep the file:line:col form editors understand
		if d, ok := diag.As(err); ok {
			fmt.Fprintln(os.Stderr, d)
			os.Exit(1)
		}
		log.Error("generation failed", "err", err)
		os.Exit(1)
	}
}
