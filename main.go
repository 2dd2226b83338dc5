// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"

	"github.com/Alneos/vega-sub001/aster"
	"github.com/Alneos/vega-sub001/config"
	"github.com/Alneos/vega-sub001/im"
	"github.com/Alneos/vega-sub001/nastran"
	"github.com/Alneos/vega-sub001/resultreader"
	"github.com/Alneos/vega-sub001/runner"
	"github.com/Alneos/vega-sub001/systus"
	"github.com/Alneos/vega-sub001/vegalog"
)

// cliOptions gathers every flag named in spec.md §6.1. A -c file can set
// only output-dir, result-file, solver-command, solver-server and
// solver-version; any other key is rejected. It only fills in options
// still at their zero value, so a flag given on the command line always
// wins.
type cliOptions struct {
	outputDir     string
	run           bool
	resultFile    string
	tolerance     float64
	debug         bool
	bestEffort    bool
	meshAtLeast   bool
	strict        bool
	solverCommand string
	solverServer  string
	solverVersion string
	configFile    string
}

func main() {
	log := vegalog.New(false)

	// A failed Validate() is fatal regardless of translation mode: it
	// panics rather than returning an error, and is the only panic this
	// recover treats specially.
	defer func() {
		if r := recover(); r == nil {
			return
		} else if violations, ok := r.([]*im.InvariantViolation); ok {
			log.Error("ERROR: model failed validation:")
			for _, v := range violations {
				log.Error("  %v", v)
			}
			os.Exit(int(config.ExitModelValidationError))
		} else {
			log.Error("ERROR: %v", r)
			os.Exit(int(config.ExitGenericException))
		}
	}()

	opts := parseFlags()
	log = vegalog.New(opts.debug)

	if opts.configFile != "" {
		if err := mergeConfigFile(&opts, opts.configFile); err != nil {
			log.Error("ERROR: %v", err)
			os.Exit(int(config.ExitInvalidCommandLine))
		}
	}

	args := flag.Args()
	if len(args) != 3 {
		log.Error("usage: %s [options] <input-file> <input-format> <output-format>", os.Args[0])
		os.Exit(int(config.ExitInvalidCommandLine))
	}
	inputFile, inputFormat, outputFormat := args[0], args[1], args[2]

	if inputFormat != "nastran" {
		log.Error("ERROR: unsupported input format %q (only \"nastran\" is implemented)", inputFormat)
		os.Exit(int(config.ExitInvalidCommandLine))
	}

	target, err := config.ParseTarget(outputFormat)
	if err != nil {
		log.Error("ERROR: %v", err)
		os.Exit(int(config.ExitInvalidCommandLine))
	}

	mode := config.BestEffort
	switch {
	case opts.strict:
		mode = config.Strict
	case opts.meshAtLeast:
		mode = config.MeshAtLeast
	}

	if _, err := os.Stat(inputFile); err != nil {
		log.Error("ERROR: cannot open input file %q: %v", inputFile, err)
		os.Exit(int(config.ExitNoInputFile))
	}
	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		log.Error("ERROR: cannot create output directory %q: %v", opts.outputDir, err)
		os.Exit(int(config.ExitOutputDirNotCreated))
	}

	model, err := nastran.Parse(inputFile, mode)
	if err != nil {
		log.Error("ERROR: %v", err)
		os.Exit(int(config.ExitParsingException))
	}
	log.Info("parsed %q: %d analyses", inputFile, len(model.Analyses()))

	if err := model.Finish(target, config.DefaultsFor(target)); err != nil {
		log.Error("ERROR: %v", err)
		os.Exit(int(config.ExitParsingException))
	}

	if opts.resultFile != "" {
		if err := resultreader.Read(model, opts.resultFile, opts.tolerance, mode, log); err != nil {
			log.Error("ERROR: %v", err)
			os.Exit(int(config.ExitParsingException))
		}
	}

	if violations := model.Validate(); len(violations) > 0 {
		panic(violations)
	}

	outputFile, err := writeTarget(model, target, opts.outputDir, stemOf(inputFile), opts.solverVersion)
	if err != nil {
		log.Error("ERROR: %v", err)
		os.Exit(int(config.ExitWritingException))
	}
	log.OK("wrote %s", outputFile)

	if !opts.run {
		return
	}

	outcome, err := runner.Exec(runner.Params{
		Target:        target,
		ModelFile:     outputFile,
		OutputDir:     opts.outputDir,
		SolverCommand: opts.solverCommand,
		SolverServer:  opts.solverServer,
		Debug:         opts.debug,
	}, log)
	if err != nil {
		log.Error("ERROR: %v", err)
		os.Exit(int(config.ExitGenericException))
	}
	log.Info("solver run: %s", outcome)
	os.Exit(int(outcome.ExitCode()))
}

func parseFlags() cliOptions {
	var opts cliOptions
	flag.StringVar(&opts.outputDir, "o", ".", "output directory")
	flag.BoolVar(&opts.run, "R", false, "run solver after successful translation")
	flag.StringVar(&opts.resultFile, "t", "", "reference result file used to inject assertions")
	flag.Float64Var(&opts.tolerance, "tolerance", 0.02, "assertion tolerance")
	flag.BoolVar(&opts.debug, "d", false, "debug logging")
	flag.BoolVar(&opts.bestEffort, "b", false, "translation mode: best-effort (default)")
	flag.BoolVar(&opts.meshAtLeast, "m", false, "translation mode: mesh-at-least")
	flag.BoolVar(&opts.strict, "s", false, "translation mode: strict")
	flag.StringVar(&opts.solverCommand, "solver-command", "", "override runner invocation command")
	flag.StringVar(&opts.solverServer, "solver-server", "", "override runner invocation server")
	flag.StringVar(&opts.solverVersion, "solver-version", "", "version tag passed through to writer header")
	flag.StringVar(&opts.configFile, "c", "", "optional configuration file (output-dir, result-file, solver-command, solver-server, solver-version)")
	flag.Parse()
	return opts
}

// mergeConfigFile reads "key = value" lines from path, one CLI long-form
// key per line, and fills any option still at its zero value.
func mergeConfigFile(opts *cliOptions, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return config.NewIOError("open", path, err)
	}
	defer f.Close()

	line := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		key, value, ok := strings.Cut(text, "=")
		if !ok {
			return config.NewParsingError(path, line, "", "expected \"key = value\", got %q", text)
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		switch key {
		case "output-dir":
			if opts.outputDir == "." {
				opts.outputDir = value
			}
		case "result-file":
			if opts.resultFile == "" {
				opts.resultFile = value
			}
		case "solver-command":
			if opts.solverCommand == "" {
				opts.solverCommand = value
			}
		case "solver-server":
			if opts.solverServer == "" {
				opts.solverServer = value
			}
		case "solver-version":
			if opts.solverVersion == "" {
				opts.solverVersion = value
			}
		default:
			return config.NewParsingError(path, line, key, "unrecognised configuration key %q", key)
		}
	}
	if err := sc.Err(); err != nil {
		return config.NewIOError("read", path, err)
	}
	return nil
}

func writeTarget(model *im.Model, target config.Target, outDir, stem, solverVersion string) (string, error) {
	switch target {
	case config.TargetAster:
		return aster.Write(model, outDir, stem, solverVersion)
	case config.TargetSystus:
		return systus.Write(model, outDir, stem)
	case config.TargetNastran, config.TargetOptistruct:
		return nastran.Write(model, outDir, stem, config.NastranModern)
	default:
		return "", chk.Err("no writer defined for target %s", target)
	}
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
