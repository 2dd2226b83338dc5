// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nastran

import (
	"strconv"

	"github.com/cpmech/gosl/chk"
)

// itoa is strconv.Itoa under a short name, used wherever a field read as
// an int must be re-packed as a digit string for DOFSFromNastran.
func itoa(n int) string { return strconv.Itoa(n) }

// parseIntString parses a field already consumed as a string (e.g. SPC1's
// optional second grid id, which may instead be "THRU").
func parseIntString(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, chk.Err("nastran: %q is not a valid integer: %v", s, err)
	}
	return n, nil
}
