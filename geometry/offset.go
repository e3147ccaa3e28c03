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

package geometry

import (
	"fmt"
	"math"
)

// OffsetCurve returns a copy of p moved sideways by the magnitude of d.
// A positive d offsets to the right of the direction of travel and a
// negative d to the left. Neighbouring offset segments are joined where
// their supporting lines meet, which gives mitred corners.
func OffsetCurve(p *Polyline, d float64) (*Polyline, error) {
	pts := dedupe(p.Vertices)
	closed := p.Closed
	if closed && len(pts) > 1 && pts[0].Equal(pts[len(pts)-1], Tolerance) {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 2 || (closed && len(pts) < 3) {
		return nil, fmt.Errorf("geometry: cannot offset a polyline with %d distinct vertices", len(pts))
	}

	n := len(pts) - 1
	if closed {
		n = len(pts)
	}
	type line struct{ a, b Point2 }
	lines := make([]line, n)
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%len(pts)]
		off := a.VectorTo(b).Unit().Right().Scale(d)
		lines[i] = line{a: a.Add(off), b: b.Add(off)}
	}

	join := func(l1, l2 line) Point2 {
		if p, ok := lineLine(l1.a, l1.a.VectorTo(l1.b), l2.a, l2.a.VectorTo(l2.b)); ok {
			return p
		}
		// Parallel neighbours: continue straight through, or meet halfway on a
		// reversal.
		return l1.b.Add(l1.b.VectorTo(l2.a).Scale(0.5))
	}

	out := &Polyline{Closed: closed}
	if closed {
		for i := 0; i < n; i++ {
			out.Vertices = append(out.Vertices, join(lines[(i+n-1)%n], lines[i]))
		}
		return out, nil
	}
	out.Vertices = append(out.Vertices, lines[0].a)
	for i := 1; i < n; i++ {
		out.Vertices = append(out.Vertices, join(lines[i-1], lines[i]))
	}
	out.Vertices = append(out.Vertices, lines[n-1].b)
	return out, nil
}

// lineLine returns the point where the infinite lines through p1 along d1
// and p2 along d2 meet.
func lineLine(p1 Point2, d1 Vector2, p2 Point2, d2 Vector2) (Point2, bool) {
	denom := d1.Cross(d2)
	if math.Abs(denom) <= 1e-12*d1.Length()*d2.Length() {
		return Point2{}, false
	}
	t := p1.VectorTo(p2).Cross(d2) / denom
	return p1.Add(d1.Scale(t)), true
}

// Collinear reports whether the segments a0-a1 and b0-b1 lie on one line.
func Collinear(a0, a1, b0, b1 Point2) bool {
	d := a0.VectorTo(a1)
	l := d.Length()
	if l < Tolerance {
		return false
	}
	u := d.Scale(1 / l)
	return math.Abs(u.Cross(a0.VectorTo(b0))) <= Tolerance &&
		math.Abs(u.Cross(a0.VectorTo(b1))) <= Tolerance
}

func dedupe(pts []Point2) []Point2 {
	out := make([]Point2, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1].Equal(p, Tolerance) {
			continue
		}
		out = append(out, p)
	}
	return out
}
