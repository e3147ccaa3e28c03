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

// Package drainage generates plan details of drainage manholes: pipe
// centrelines and walls, mitred junctions between adjacent pipes, the
// step position, benching checks and the chamber rings.
package drainage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jppcivil/civils"
	"github.com/jppcivil/civils/geometry"
	"github.com/spf13/cast"
)

// PipeConnection is a pipe entering or leaving a manhole.
type PipeConnection struct {
	// Diameter is the internal pipe diameter in mm.
	Diameter int

	// Location is where the pipe reaches the edge of the plan detail, in
	// the same coordinates as the manhole's IntersectionPoint.
	Location geometry.Point2

	// Angle is measured clockwise from the outgoing pipe, in degrees.
	// 180 is straight through.
	Angle float64

	// Code labels the pipe.
	Code string
}

// Manhole is a drainage chamber and the pipes connected to it.
type Manhole struct {
	Name string
	Type string

	// Diameter is the internal chamber diameter in mm.
	Diameter int

	InvertLevel float64
	CoverLevel  float64

	SafetyChain bool
	SafetyRail  bool

	// Minimum benching widths, in mm.
	MinimumMinorBenching int
	MinimumMajorBenching int

	// IntersectionPoint is where the pipe centrelines meet.
	IntersectionPoint geometry.Point2

	// IncomingPipes is unordered; see SortedIncoming.
	IncomingPipes []PipeConnection
	Outgoing      PipeConnection
}

// chamberWall is the precast ring wall thickness in mm for a standard
// chamber diameter.
type chamberWall struct{ diameter, thickness int }

// chamberWalls returns the standard chamber walls in ascending order of
// diameter. Each call returns a new copy of the table.
func chamberWalls() [10]chamberWall {
	return [...]chamberWall{
		{900, 70},
		{1050, 80},
		{1200, 90},
		{1350, 95},
		{1500, 105},
		{1800, 115},
		{2100, 125},
		{2400, 140},
		{2700, 150},
		{3000, 165},
	}
}

// WallThickness returns the chamber wall thickness for diameter d. It
// returns a LookupFailure error for a non-standard diameter.
func WallThickness(d int) (int, error) {
	w := chamberWalls()
	i := sort.Search(len(w), func(i int) bool { return w[i].diameter >= d })
	if i == len(w) || w[i].diameter != d {
		return 0, civils.E(civils.LookupFailure, "drainage.WallThickness", "no wall thickness for a %d mm chamber", d)
	}
	return w[i].thickness, nil
}

// StandardDiameters returns the chamber diameters with a known wall
// thickness, in ascending order.
func StandardDiameters() []int {
	w := chamberWalls()
	d := make([]int, len(w))
	for i, c := range w {
		d[i] = c.diameter
	}
	return d
}

// WallThickness returns the wall thickness of m.
func (m *Manhole) WallThickness() (int, error) { return WallThickness(m.Diameter) }

// LargestInternalPipeDiameter returns the largest diameter of any pipe
// connected to m.
func (m *Manhole) LargestInternalPipeDiameter() int {
	largest := m.Outgoing.Diameter
	for _, p := range m.IncomingPipes {
		if p.Diameter > largest {
			largest = p.Diameter
		}
	}
	return largest
}

// DepthToSoffitLevel returns the depth from the cover to the soffit of the
// largest pipe, in m.
func (m *Manhole) DepthToSoffitLevel() float64 {
	return m.CoverLevel - (m.InvertLevel + float64(m.LargestInternalPipeDiameter())/1000)
}

// SortedIncoming returns the incoming pipes ordered by angle. Pipes at
// equal angles keep their original order.
func (m *Manhole) SortedIncoming() []PipeConnection {
	s := make([]PipeConnection, len(m.IncomingPipes))
	copy(s, m.IncomingPipes)
	sort.SliceStable(s, func(i, j int) bool { return s[i].Angle < s[j].Angle })
	return s
}

// ScheduleRow is one line of a manhole schedule table.
type ScheduleRow struct {
	Label, Value string
}

// ScheduleRows returns the manhole schedule for m.
func (m *Manhole) ScheduleRows() []ScheduleRow {
	upper := func(v interface{}) string { return strings.ToUpper(cast.ToString(v)) }
	return []ScheduleRow{
		{"MANHOLE", strings.ToUpper(m.Name)},
		{"MANHOLE DIAMETER", cast.ToString(m.Diameter)},
		{"COVER LEVEL", cast.ToString(m.CoverLevel)},
		{"INVERT LEVEL", cast.ToString(m.InvertLevel)},
		{"MANHOLE TYPE", m.Type},
		{"DEPTH TO SOFFIT", fmt.Sprintf("%.3f", m.DepthToSoffitLevel())},
		{"DEPTH TO CUT OUT RECESS", "N/A"},
		{"COVER SIZE", ""},
		{"COVER SPEC", "TBC"},
		{"COVER DEPTH", ""},
		{"LADDER OR DOUBLE STEPS", ""},
		{"SAFETY CHAIN", upper(m.SafetyChain)},
		{"SAFETY RAIL", upper(m.SafetyRail)},
		{"AMPS PLATFORM", "N/A"},
		{"HOLE SIZE IN COVER SLAB", ""},
	}
}
