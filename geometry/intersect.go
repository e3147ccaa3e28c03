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
	"math"
	"sort"
)

// ExtendMode controls whether the finite ends of polylines are treated as
// extending to infinity during an intersection test.
type ExtendMode int

const (
	// ExtendNone intersects the curves as they are.
	ExtendNone ExtendMode = iota
	// ExtendFirst extends the first operand.
	ExtendFirst
	// ExtendSecond extends the second operand.
	ExtendSecond
	// ExtendBoth extends both operands.
	ExtendBoth
)

func (m ExtendMode) first() bool  { return m == ExtendFirst || m == ExtendBoth }
func (m ExtendMode) second() bool { return m == ExtendSecond || m == ExtendBoth }

// segment is one straight piece of a curve. back and fwd mark an end that
// is extended to infinity.
type segment struct {
	a, b      Point2
	index     int
	back, fwd bool
}

func (s segment) dir() Vector2 { return s.a.VectorTo(s.b) }

// inRange reports whether parameter t lies on s.
func (s segment) inRange(t float64) bool {
	eps := Tolerance / math.Max(s.dir().Length(), Tolerance)
	return (s.back || t >= -eps) && (s.fwd || t <= 1+eps)
}

func (s segment) at(t float64) Point2 { return s.a.Add(s.dir().Scale(t)) }

// segmentsOf splits a polyline into its non-degenerate segments. If extend
// is set and the polyline is open, its first segment is extended backwards
// and its last forwards.
func segmentsOf(p *Polyline, extend bool) []segment {
	var segs []segment
	for i, s := range p.Segments() {
		if s[0].Equal(s[1], Tolerance) {
			continue
		}
		segs = append(segs, segment{a: s[0], b: s[1], index: i})
	}
	if extend && !p.Closed && len(segs) > 0 {
		segs[0].back = true
		segs[len(segs)-1].fwd = true
	}
	return segs
}

// hit is an intersection point with its parameter along the first operand.
type hit struct {
	p     Point2
	param float64
}

// Intersect returns the points where a and b cross, ordered by their
// position along a: segment index plus fraction for a polyline, and
// counter-clockwise angle from +X for a circle. Coincident points are
// reported once. Curves that do not meet give an empty result; parallel
// and overlapping segments are not reported.
func Intersect(a, b Curve, mode ExtendMode) []Point2 {
	var hits []hit
	switch aa := a.(type) {
	case *Polyline:
		sa := segmentsOf(aa, mode.first())
		switch bb := b.(type) {
		case *Polyline:
			for _, s1 := range sa {
				for _, s2 := range segmentsOf(bb, mode.second()) {
					if t, ok := segmentSegment(s1, s2); ok {
						hits = append(hits, hit{p: s1.at(t), param: float64(s1.index) + t})
					}
				}
			}
		case *Circle:
			for _, s := range sa {
				for _, t := range segmentCircle(s, bb) {
					hits = append(hits, hit{p: s.at(t), param: float64(s.index) + t})
				}
			}
		}
	case *Circle:
		switch bb := b.(type) {
		case *Polyline:
			for _, s := range segmentsOf(bb, mode.second()) {
				for _, t := range segmentCircle(s, aa) {
					p := s.at(t)
					hits = append(hits, hit{p: p, param: aa.angleOf(p)})
				}
			}
		case *Circle:
			for _, p := range circleCircle(aa, bb) {
				hits = append(hits, hit{p: p, param: aa.angleOf(p)})
			}
		}
	}
	return orderHits(hits)
}

func orderHits(hits []hit) []Point2 {
	if len(hits) == 0 {
		return nil
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].param < hits[j].param })
	out := make([]Point2, 0, len(hits))
	for _, h := range hits {
		dup := false
		for _, p := range out {
			if p.Equal(h.p, Tolerance) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, h.p)
		}
	}
	return out
}

// angleOf returns the counter-clockwise angle of p about the center of c,
// in radians in [0, 2π).
func (c *Circle) angleOf(p Point2) float64 {
	a := math.Atan2(p.Y-c.Center.Y, p.X-c.Center.X)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// segmentSegment returns the parameter along s1 at which s1 crosses s2.
func segmentSegment(s1, s2 segment) (float64, bool) {
	d1, d2 := s1.dir(), s2.dir()
	denom := d1.Cross(d2)
	if math.Abs(denom) <= 1e-12*d1.Length()*d2.Length() {
		return 0, false // parallel
	}
	w := s1.a.VectorTo(s2.a)
	t := w.Cross(d2) / denom
	u := w.Cross(d1) / denom
	if !s1.inRange(t) || !s2.inRange(u) {
		return 0, false
	}
	return t, true
}

// segmentCircle returns the parameters along s at which it crosses c.
func segmentCircle(s segment, c *Circle) []float64 {
	d := s.dir()
	f := c.Center.VectorTo(s.a)
	qa := d.Dot(d)
	qb := 2 * f.Dot(d)
	qc := f.Dot(f) - c.Radius*c.Radius
	disc := qb*qb - 4*qa*qc
	// Treat near-tangency as a single touching point.
	tangent := Tolerance * c.Radius * 4 * qa
	var ts []float64
	switch {
	case disc < -tangent:
		return nil
	case disc <= tangent:
		ts = []float64{-qb / (2 * qa)}
	default:
		sq := math.Sqrt(disc)
		ts = []float64{(-qb - sq) / (2 * qa), (-qb + sq) / (2 * qa)}
	}
	var out []float64
	for _, t := range ts {
		if s.inRange(t) {
			out = append(out, t)
		}
	}
	return out
}

// circleCircle returns the points where c1 and c2 cross. Concentric circles
// never cross.
func circleCircle(c1, c2 *Circle) []Point2 {
	v := c1.Center.VectorTo(c2.Center)
	d := v.Length()
	if d < Tolerance {
		return nil
	}
	if d > c1.Radius+c2.Radius+Tolerance || d < math.Abs(c1.Radius-c2.Radius)-Tolerance {
		return nil
	}
	a := (c1.Radius*c1.Radius - c2.Radius*c2.Radius + d*d) / (2 * d)
	h2 := c1.Radius*c1.Radius - a*a
	u := v.Scale(1 / d)
	mid := c1.Center.Add(u.Scale(a))
	if h2 <= Tolerance*Tolerance {
		return []Point2{mid}
	}
	h := math.Sqrt(h2)
	return []Point2{mid.Add(u.Left().Scale(h)), mid.Add(u.Right().Scale(h))}
}
