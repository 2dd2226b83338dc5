// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
)

// writeMedString writes a length-prefixed string field.
func writeMedString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(s))); err != nil {
		return chk.Err("mesh: write string length: %v", err)
	}
	if _, err := w.Write([]byte(s)); err != nil {
		return chk.Err("mesh: write string bytes: %v", err)
	}
	return nil
}

// medMagic tags the simplified binary mesh-exchange container this
// package emits. It is not a full MED/HDF5 file — the Aster-family
// writer is the only consumer that cares about file structure beyond
// "can be re-read by our own code" — but it follows the same
// open-write-atomically-rename discipline the teacher's VTU writer in
// out/out.go uses, per spec.md §5 ("writes are atomic: to a temp path
// then rename").
var medMagic = [4]byte{'v', 'M', 'E', 'D'}

// WriteMED emits the mesh (nodes, cells, groups) to path in the binary
// mesh-exchange container used by the Aster-family writer. Other
// writers may stub this out entirely, per spec.md §4.2.
func (m *Mesh) WriteMED(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".med-*.tmp")
	if err != nil {
		return chk.Err("mesh: cannot create temp file for %q: %v", path, err)
	}
	tmpPath := tmp.Name()
	cleanup := true
	defer func() {
		tmp.Close()
		if cleanup {
			os.Remove(tmpPath)
		}
	}()

	w := bufio.NewWriter(tmp)
	if err := binary.Write(w, binary.LittleEndian, medMagic); err != nil {
		return chk.Err("mesh: write header: %v", err)
	}

	nodes := m.Nodes()
	if err := binary.Write(w, binary.LittleEndian, int64(len(nodes))); err != nil {
		return chk.Err("mesh: write node count: %v", err)
	}
	for _, n := range nodes {
		if err := binary.Write(w, binary.LittleEndian, int64(n.ID())); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, [3]float64{n.Position.X, n.Position.Y, n.Position.Z}); err != nil {
			return err
		}
	}

	cells := m.Cells()
	if err := binary.Write(w, binary.LittleEndian, int64(len(cells))); err != nil {
		return chk.Err("mesh: write cell count: %v", err)
	}
	for _, c := range cells {
		if err := binary.Write(w, binary.LittleEndian, int64(c.ID())); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, int32(c.Type)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, int32(len(c.NodeIDs))); err != nil {
			return err
		}
		for _, nid := range c.NodeIDs {
			if err := binary.Write(w, binary.LittleEndian, int64(nid)); err != nil {
				return err
			}
		}
	}
	groups := m.Groups()
	if err := binary.Write(w, binary.LittleEndian, int64(len(groups))); err != nil {
		return chk.Err("mesh: write group count: %v", err)
	}
	for _, g := range groups {
		if err := writeMedString(w, g.ResolvedName()); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, int32(g.Kind)); err != nil {
			return err
		}
		members := g.Members()
		if err := binary.Write(w, binary.LittleEndian, int64(len(members))); err != nil {
			return err
		}
		for _, id := range members {
			if err := binary.Write(w, binary.LittleEndian, int64(id)); err != nil {
				return err
			}
		}
	}

	if err := w.Flush(); err != nil {
		return chk.Err("mesh: flush %q: %v", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return chk.Err("mesh: close %q: %v", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return chk.Err("mesh: rename %q -> %q: %v", tmpPath, path, err)
	}
	cleanup = false
	return nil
}
