// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aster

import (
	"github.com/Alneos/vega-sub001/im"
)

// dofName maps an im.DOF to Code_Aster's field name, per
// AsterModel::DofByPosition: translations keep the Nastran-shared
// "DX"/"DY"/"DZ" spelling, but rotations are "DRX"/"DRY"/"DRZ" rather
// than im.DOF.String()'s bare "RX"/"RY"/"RZ".
func dofName(d im.DOF) string {
	switch d {
	case im.RX:
		return "DRX"
	case im.RY:
		return "DRY"
	case im.RZ:
		return "DRZ"
	default:
		return d.String()
	}
}

