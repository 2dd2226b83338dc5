// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runner launches the target solver against a translated deck
// and classifies its outcome, per spec.md §4.7. One execSolver-style
// function exists per target, each grounded on the matching C++ Runner
// subclass's own command line, stale-result cleanup, and success check.
package runner

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/Alneos/vega-sub001/config"
	"github.com/Alneos/vega-sub001/vegalog"
)

// Outcome is the closed variant spec.md §4.7 names.
type Outcome int

const (
	Ok Outcome = iota
	SolverNotFound
	TranslationSyntaxError
	SolverKilled
	SolverExitNotZero
	SolverResultNotFound
	TestFail
)

func (o Outcome) String() string {
	switch o {
	case Ok:
		return "Ok"
	case SolverNotFound:
		return "SolverNotFound"
	case TranslationSyntaxError:
		return "TranslationSyntaxError"
	case SolverKilled:
		return "SolverKilled"
	case SolverExitNotZero:
		return "SolverExitNotZero"
	case SolverResultNotFound:
		return "SolverResultNotFound"
	case TestFail:
		return "TestFail"
	default:
		return "Unknown"
	}
}

// ExitCode maps Outcome onto the CLI's closed exit-code set, spec.md §6.1.
func (o Outcome) ExitCode() config.ExitCode {
	switch o {
	case Ok:
		return config.ExitRunnerOk
	case SolverNotFound:
		return config.ExitRunnerSolverNotFound
	case TranslationSyntaxError:
		return config.ExitRunnerTranslationSyntaxErr
	case SolverKilled:
		return config.ExitRunnerSolverKilled
	case SolverExitNotZero:
		return config.ExitRunnerSolverExitNotZero
	case SolverResultNotFound:
		return config.ExitRunnerResultNotFound
	case TestFail:
		return config.ExitRunnerTestFail
	default:
		return config.ExitGenericException
	}
}

// Params gathers the invocation details each target's Exec needs, the Go
// equivalent of ConfigurationParameters' runner-relevant fields.
type Params struct {
	Target        config.Target
	ModelFile     string // the writer's returned primary file path
	OutputDir     string
	SolverCommand string // overrides the per-target default binary name
	SolverServer  string // non-empty, non-"localhost" is unsupported
	Debug         bool
}

// Exec runs the solver for p.Target against p.ModelFile and classifies
// the result, per each target's own execSolver. Stale result files named
// after the model are removed before launch.
func Exec(p Params, log *vegalog.Logger) (Outcome, error) {
	if p.SolverServer != "" && p.SolverServer != "localhost" && p.SolverServer != "127.0.0.1" {
		return 0, fmt.Errorf("runner: remote solver server not implemented")
	}

	stem := strings.TrimSuffix(filepath.Base(p.ModelFile), filepath.Ext(p.ModelFile))
	switch p.Target {
	case config.TargetAster:
		return execAster(p, stem, log)
	case config.TargetSystus:
		return execSystus(p, stem, log)
	case config.TargetNastran, config.TargetOptistruct:
		return execNastran(p, stem, log)
	default:
		return 0, fmt.Errorf("runner: no runner defined for target %s", p.Target)
	}
}

// deletePreviousResultFiles removes any "<stem><ext>" file from dir for
// each ext in extensions, per Runner::deletePreviousResultFiles — stale
// results from a prior run must not be mistaken for this run's output.
func deletePreviousResultFiles(dir, stem string, extensions []string, log *vegalog.Logger) {
	for _, ext := range extensions {
		path := filepath.Join(dir, stem+ext)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Warn("runner: could not remove stale result file %s: %v", path, err)
		}
	}
}

// run executes command in dir, redirecting stdout/stderr to "<stem>.stdout"/
// "<stem>.stderr" the way every C++ Runner does via shell `>`/`2>`
// redirection, and returns both the classified outcome and the raw exit
// code (-1 if the process never started), for targets like Aster that
// special-case a specific exit code.
func run(dir, stem, command string, args []string, log *vegalog.Logger) (Outcome, int, error) {
	stdoutPath := filepath.Join(dir, stem+".stdout")
	stderrPath := filepath.Join(dir, stem+".stderr")
	stdout, err := os.Create(stdoutPath)
	if err != nil {
		return 0, -1, config.NewIOError("create", stdoutPath, err)
	}
	defer stdout.Close()
	stderr, err := os.Create(stderrPath)
	if err != nil {
		return 0, -1, config.NewIOError("create", stderrPath, err)
	}
	defer stderr.Close()

	cmd := exec.Command(command, args...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	log.Debug("runner: about to launch %s %s", command, strings.Join(args, " "))
	runErr := cmd.Run()
	outcome := convertExecResult(runErr)
	code := exitCodeOf(runErr)
	if runErr != nil {
		log.Error("runner: command %s exited: %v", command, runErr)
	} else {
		log.Debug("runner: command %s ended with exit code 0", command)
	}
	return outcome, code, nil
}

// exitCodeOf extracts the raw process exit code, or -1 if the process
// never ran (e.g. command not found).
func exitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		return -1
	}
	return exitErr.ExitCode()
}

// convertExecResult classifies a command's result per
// Runner::convertExecResult: exit code's high byte 127 is "command not
// found" (SolverNotFound), 129..165 is a fatal signal (SolverKilled),
// anything else non-zero is SolverExitNotZero.
func convertExecResult(err error) Outcome {
	if err == nil {
		return Ok
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		return SolverNotFound
	}
	status, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok {
		return SolverExitNotZero
	}
	if status.Signaled() {
		return SolverKilled
	}
	code := status.ExitStatus()
	if code == 127 {
		return SolverNotFound
	}
	if code > 128 && code <= 165 {
		return SolverKilled
	}
	return SolverExitNotZero
}

// fileContainsNOOK scans path line by line for the literal substring
// "NOOK", the shared TEST_RESU-style failure marker every target's
// assertion language emits, per each Runner's post-run scan.
func fileContainsNOOK(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if strings.Contains(sc.Text(), "NOOK") {
			return true, nil
		}
	}
	return false, sc.Err()
}
