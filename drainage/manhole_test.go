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

package drainage

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/jppcivil/civils"
)

func different(a, b, tolerance float64) bool {
	return math.Abs(a-b) > tolerance || math.IsNaN(a) || math.IsNaN(b)
}

func TestWallThickness(t *testing.T) {
	want := map[int]int{900: 70, 1050: 80, 1200: 90, 1350: 95, 1500: 105,
		1800: 115, 2100: 125, 2400: 140, 2700: 150, 3000: 165}
	for d, w := range want {
		have, err := WallThickness(d)
		if err != nil {
			t.Errorf("%d: %v", d, err)
		}
		if have != w {
			t.Errorf("%d: want %d but have %d", d, w, have)
		}
	}
	for _, d := range []int{0, -1200, 600, 1000, 1201, 1600, 3300} {
		if _, err := WallThickness(d); !errors.Is(err, civils.ErrLookup) {
			t.Errorf("%d: want lookup failure but have %v", d, err)
		}
	}
	if have := StandardDiameters(); !reflect.DeepEqual(have, []int{900, 1050, 1200, 1350, 1500, 1800, 2100, 2400, 2700, 3000}) {
		t.Errorf("standard diameters = %v", have)
	}

	// The returned diameters are a copy of the table.
	d := StandardDiameters()
	d[0] = 1000
	if _, err := WallThickness(1000); !errors.Is(err, civils.ErrLookup) {
		t.Errorf("1000 after edit: want lookup failure but have %v", err)
	}
	if have, err := WallThickness(900); err != nil || have != 70 {
		t.Errorf("900 after edit: have %d, %v", have, err)
	}
	if have := StandardDiameters(); have[0] != 900 {
		t.Errorf("first standard diameter = %d", have[0])
	}
}

func TestSortedIncoming(t *testing.T) {
	m := &Manhole{IncomingPipes: []PipeConnection{
		{Code: "a", Angle: 270},
		{Code: "b", Angle: 90},
		{Code: "c", Angle: 90},
		{Code: "d", Angle: 180},
		{Code: "e", Angle: 90},
	}}
	sorted := m.SortedIncoming()
	var codes string
	for i, p := range sorted {
		codes += p.Code
		if i > 0 && sorted[i-1].Angle > p.Angle {
			t.Errorf("angles out of order at %d", i)
		}
	}
	if codes != "bceda" {
		t.Errorf("want bceda but have %s", codes)
	}
	if m.IncomingPipes[0].Code != "a" {
		t.Error("sorting changed the manhole")
	}
}

func TestDerived(t *testing.T) {
	m := &Manhole{
		CoverLevel:    101.5,
		InvertLevel:   100,
		Outgoing:      PipeConnection{Diameter: 150},
		IncomingPipes: []PipeConnection{{Diameter: 225}, {Diameter: 100}},
	}
	if have := m.LargestInternalPipeDiameter(); have != 225 {
		t.Errorf("largest diameter = %d", have)
	}
	if have := m.DepthToSoffitLevel(); different(have, 1.275, 1e-9) {
		t.Errorf("depth to soffit = %g", have)
	}
}

func TestScheduleRows(t *testing.T) {
	m := &Manhole{Name: "mh1", Diameter: 1200, CoverLevel: 101.5, InvertLevel: 100,
		Outgoing: PipeConnection{Diameter: 150}, SafetyRail: true}
	rows := m.ScheduleRows()
	if len(rows) != 15 {
		t.Fatalf("have %d rows", len(rows))
	}
	want := map[string]string{
		"MANHOLE":          "MH1",
		"MANHOLE DIAMETER": "1200",
		"COVER LEVEL":      "101.5",
		"INVERT LEVEL":     "100",
		"DEPTH TO SOFFIT":  "1.350",
		"COVER SPEC":       "TBC",
		"SAFETY CHAIN":     "FALSE",
		"SAFETY RAIL":      "TRUE",
	}
	for _, r := range rows {
		if w, ok := want[r.Label]; ok && r.Value != w {
			t.Errorf("%s: want %q but have %q", r.Label, w, r.Value)
		}
	}
}
