// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import "fmt"

// ParsingError is raised by the tokeniser/parser on a malformed deck
// card, per spec.md §7.
type ParsingError struct {
	File    string
	Line    int
	Keyword string
	Msg     string
}

func (e *ParsingError) Error() string {
	return fmt.Sprintf("%s:%d: [%s] %s", e.File, e.Line, e.Keyword, e.Msg)
}

// NewParsingError builds a ParsingError.
func NewParsingError(file string, line int, keyword, format string, a ...interface{}) *ParsingError {
	return &ParsingError{File: file, Line: line, Keyword: keyword, Msg: fmt.Sprintf(format, a...)}
}

// WritingError is raised when an IM entity cannot be represented in the
// target dialect, per spec.md §7.
type WritingError struct {
	EntityKind string
	EntityID   int
	Target     string
	Msg        string
}

func (e *WritingError) Error() string {
	return fmt.Sprintf("cannot write %s %d for target %s: %s", e.EntityKind, e.EntityID, e.Target, e.Msg)
}

// NewWritingError builds a WritingError.
func NewWritingError(entityKind string, entityID int, target, format string, a ...interface{}) *WritingError {
	return &WritingError{EntityKind: entityKind, EntityID: entityID, Target: target, Msg: fmt.Sprintf(format, a...)}
}

// IOError wraps a failure to read an input file or write/rename an
// output file, per spec.md §7.
type IOError struct {
	Path string
	Op   string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// NewIOError builds an IOError.
func NewIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}

// SkipCommand is the "skip-command" sentinel of spec.md §4.4/§9: an
// explicit result carried through a per-keyword dispatcher instead of a
// language-level exception used for flow control.
type SkipCommand struct {
	Reason string
}

func (e *SkipCommand) Error() string { return "skip command: " + e.Reason }

// NewSkipCommand builds a SkipCommand sentinel.
func NewSkipCommand(reason string) *SkipCommand { return &SkipCommand{Reason: reason} }
