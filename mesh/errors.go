// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "fmt"

// TopologyError is raised when a skin-to-volume or face-to-two-nodes
// lookup fails to resolve to a unique face, per spec.md §7.
type TopologyError struct {
	Msg string
}

func (e *TopologyError) Error() string { return e.Msg }

func newTopologyError(format string, a ...interface{}) *TopologyError {
	return &TopologyError{Msg: fmt.Sprintf(format, a...)}
}
