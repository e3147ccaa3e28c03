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
	"fmt"
	"math"

	"github.com/jppcivil/civils"
	"github.com/jppcivil/civils/drawing"
	"github.com/jppcivil/civils/geometry"
)

// Standard gradients, as 1 in N.
const (
	StormGradient = 100
	FoulGradient  = 80
)

// PipeRun is a straight length of pipe laid to a gradient.
type PipeRun struct {
	Start, End geometry.Point3

	// Gradient is 1 in Gradient.
	Gradient int

	// Fall is the drop in invert level from Start to End, rounded half to
	// even at the third decimal place.
	Fall float64
}

// LayPipe lays a pipe from start to end in plan, falling at 1 in gradient
// from invert. The elevations of start and end are ignored; plan
// coordinates and levels share one unit.
func LayPipe(start, end geometry.Point3, invert float64, gradient int) (PipeRun, error) {
	const op = "drainage.LayPipe"
	if gradient <= 0 {
		return PipeRun{}, civils.E(civils.EngineeringStandardViolation, op, "gradient 1 in %d is not positive", gradient)
	}
	s := geometry.Point3{X: start.X, Y: start.Y, Z: invert}
	e := geometry.Point3{X: end.X, Y: end.Y, Z: invert}
	fall := math.RoundToEven(s.DistanceTo(e)/float64(gradient)*1000) / 1000
	e.Z -= fall
	return PipeRun{Start: s, End: e, Gradient: gradient, Fall: fall}, nil
}

// Length returns the plan length of r.
func (r PipeRun) Length() float64 { return r.Start.To2().DistanceTo(r.End.To2()) }

// Batch returns the pipe centreline and a gradient label at its midpoint,
// aligned with the pipe.
func (r PipeRun) Batch(name string) *drawing.Batch {
	b := drawing.NewBatch(name)
	b.DeclareLayer(CentrelineLayer)
	s, e := r.Start.To2(), r.End.To2()
	b.Add(&drawing.Polyline{Layer: CentrelineLayer.Name, Curve: geometry.NewPolyline(s, e)})
	dir := s.VectorTo(e)
	rot := geometry.XAxis.To2().AngleTo(dir, false)
	// Keep the text upright.
	if rot > 90 && rot <= 270 {
		rot = geometry.NormalizeDegrees(rot - 180)
	}
	b.Add(&drawing.Label{
		Layer:    CentrelineLayer.Name,
		Text:     fmt.Sprintf("1:%d IL %.3f-%.3f", r.Gradient, r.Start.Z, r.End.Z),
		Position: s.Add(dir.Scale(0.5)),
		Height:   LabelHeight,
		Rotation: rot,
	})
	return b
}
