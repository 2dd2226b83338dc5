// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vegalog is the translation pipeline's logging sink: a thin
// façade over gosl/io's coloured Pf* console helpers, the same functions
// the teacher calls directly throughout fem/. Centralising them here
// gives every package one place to gate debug output behind -d instead
// of each caller checking a level itself.
package vegalog

import "github.com/cpmech/gosl/io"

// Logger writes to the process console, gating Debug output behind
// whether -d was passed. The zero value and a nil *Logger are both safe
// to call: every method no-ops on a nil receiver rather than requiring
// every caller to carry a logger around just to skip it.
type Logger struct {
	debug bool
}

// New builds a Logger. debug mirrors the CLI's -d flag (spec.md §6.1).
func New(debug bool) *Logger {
	return &Logger{debug: debug}
}

// Info reports routine progress, e.g. "wrote N nodes".
func (l *Logger) Info(format string, args ...interface{}) {
	if l == nil {
		return
	}
	io.Pf(format+"\n", args...)
}

// Debug reports detail only -d asks for, e.g. one line per skipped record.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l == nil || !l.debug {
		return
	}
	io.Pfgrey(format+"\n", args...)
}

// Warn reports a recoverable anomaly: a dropped record, a best-effort
// skip, a fallback taken.
func (l *Logger) Warn(format string, args ...interface{}) {
	if l == nil {
		return
	}
	io.PfYel(format+"\n", args...)
}

// Error reports a failure the caller is about to propagate.
func (l *Logger) Error(format string, args ...interface{}) {
	if l == nil {
		return
	}
	io.PfRed(format+"\n", args...)
}

// OK reports a successful terminal outcome, e.g. a completed run, the
// way fem/main.go reports test success.
func (l *Logger) OK(format string, args ...interface{}) {
	if l == nil {
		return
	}
	io.PfGreen(format+"\n", args...)
}
