// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package im

// SyntheticIDSentinel is the fixed starting point for ids synthesised by
// finish() passes. Counting down from a very large number avoids ever
// colliding with a user-declared id, which in every supported dialect is
// a small positive integer (spec.md §4.3, "Determinism").
const SyntheticIDSentinel = 900000000

// idGen hands out monotonically decreasing synthetic ids, one counter per
// Model so that two Models on two goroutines never share state (spec.md
// §5, "no static mutable state leaks between instances").
type idGen struct {
	next int
}

func newIDGen() *idGen {
	return &idGen{next: SyntheticIDSentinel}
}

// Next returns the next synthetic id and decrements the counter.
func (g *idGen) Next() int {
	id := g.next
	g.next--
	return id
}
