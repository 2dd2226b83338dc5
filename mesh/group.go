// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "fmt"

// GroupKind distinguishes the two closed Group variants of spec.md §3.1.
type GroupKind int

const (
	NodeGroupKind GroupKind = iota
	CellGroupKind
)

// Group is a named, stable-id member set of either nodes or cells,
// carrying a free-form comment. The two variants (NodeGroup, CellGroup)
// share this single representation distinguished by Kind, rather than
// two parallel types, since every operation on a Group (membership test,
// union, iteration) is identical regardless of what it contains.
type Group struct {
	id         int
	Kind       GroupKind
	Name       string
	OriginalID int
	Comment    string
	members    map[int]bool
	order      []int // insertion order of members, for deterministic iteration
}

// NewGroup builds an empty Group.
func NewGroup(id int, kind GroupKind, name string, originalID int, comment string) *Group {
	return &Group{id: id, Kind: kind, Name: name, OriginalID: originalID, Comment: comment, members: make(map[int]bool)}
}

// RefID returns the group's stable id.
func (g *Group) RefID() int { return g.id }

// ID returns the group's stable id.
func (g *Group) ID() int { return g.id }

// Add inserts a member id idempotently, preserving first-seen order.
func (g *Group) Add(memberID int) {
	if g.members[memberID] {
		return
	}
	g.members[memberID] = true
	g.order = append(g.order, memberID)
}

// Contains reports whether memberID belongs to the group.
func (g *Group) Contains(memberID int) bool { return g.members[memberID] }

// Members returns member ids in insertion order.
func (g *Group) Members() []int {
	return append([]int(nil), g.order...)
}

// Len returns the number of members.
func (g *Group) Len() int { return len(g.order) }

// ResolvedName returns Name, or a synthetic "GM<id>"/"GN<id>" fallback
// when the group was created with no name (the common case for a group
// built purely to anchor an im.ElementSet). Both WriteMED and any
// writer that must address a group by name (GROUP_MA/GROUP_NO in
// Code_Aster, part ids in Systus) use this so the name on disk always
// matches the name a writer refers to, per spec.md §4.6's note that
// Systus derives part ids "from group names with a fallback
// auto-generator" — the same fallback serves every target, not just
// Systus.
func (g *Group) ResolvedName() string {
	if g.Name != "" {
		return g.Name
	}
	prefix := "GN"
	if g.Kind == CellGroupKind {
		prefix = "GM"
	}
	return fmt.Sprintf("%s%d", prefix, g.id)
}
