/*
Copyright © 2018 the civils authors.
This file is part of civils.

civils is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

civils is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with civils.  If not, see <http://www.gnu.org/licenses/>.
*/

package hash

import (
	"math"
	"testing"
)

type ring struct {
	Depth  float64
	Center *[2]float64
	Tags   map[string]int
}

func TestOf(t *testing.T) {
	a := ring{Depth: 1.3, Center: &[2]float64{1, 2}, Tags: map[string]int{"a": 1, "b": 2}}
	b := ring{Depth: 1.3, Center: &[2]float64{1, 2}, Tags: map[string]int{"b": 2, "a": 1}}
	if Of(a) != Of(b) {
		t.Errorf("equal contents gave %s and %s", Of(a), Of(b))
	}
	b.Depth = 1.6
	if Of(a) == Of(b) {
		t.Error("different contents gave the same fingerprint")
	}
	if len(Of(a)) != 32 {
		t.Errorf("fingerprint %q should be 32 hex characters", Of(a))
	}
	nan := ring{Depth: math.NaN()}
	if Of(nan) != Of(nan) {
		t.Error("NaN fingerprint is not stable")
	}
}
