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

	"github.com/ctessum/geom"
)

// Curve is a planar curve that can take part in intersection tests.
// Implementations are *Polyline and *Circle.
type Curve interface {
	Bounds() *geom.Bounds

	// Region returns the area enclosed by a closed curve.
	Region() (geom.Polygon, error)
}

// Circle is a full circle.
type Circle struct {
	Center Point2
	Radius float64
}

// NewCircle returns a circle with the given center and radius.
func NewCircle(center Point2, radius float64) *Circle {
	return &Circle{Center: center, Radius: radius}
}

// Bounds gives the rectangular extents of c.
func (c *Circle) Bounds() *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: c.Center.X - c.Radius, Y: c.Center.Y - c.Radius},
		Max: geom.Point{X: c.Center.X + c.Radius, Y: c.Center.Y + c.Radius},
	}
}

// Area returns the exact area enclosed by c.
func (c *Circle) Area() float64 { return math.Pi * c.Radius * c.Radius }

// PointAt returns the point on c at deg degrees counter-clockwise from +X.
func (c *Circle) PointAt(deg float64) Point2 {
	return c.Center.Add(Vector2{X: c.Radius}.Rotate(deg))
}

// RegionSegments is the number of straight sides used when a circle is
// converted to a region.
const RegionSegments = 128

// Polygon approximates c with an inscribed closed polyline of n vertices,
// starting on +X and running counter-clockwise.
func (c *Circle) Polygon(n int) *Polyline {
	if n < 3 {
		n = 3
	}
	p := &Polyline{Closed: true, Vertices: make([]Point2, n)}
	for i := 0; i < n; i++ {
		p.Vertices[i] = c.PointAt(360 * float64(i) / float64(n))
	}
	return p
}

// Region returns c as a RegionSegments-sided polygon.
func (c *Circle) Region() (geom.Polygon, error) {
	if !(c.Radius > 0) {
		return nil, fmt.Errorf("geometry: circle radius %g is not positive", c.Radius)
	}
	return c.Polygon(RegionSegments).Region()
}

// Polyline is an ordered sequence of vertices joined by straight segments.
// A closed polyline has an implied segment from the last vertex back to the
// first.
type Polyline struct {
	Vertices []Point2
	Closed   bool
}

// NewPolyline returns an open polyline through pts.
func NewPolyline(pts ...Point2) *Polyline {
	v := make([]Point2, len(pts))
	copy(v, pts)
	return &Polyline{Vertices: v}
}

// Clone returns a deep copy of p.
func (p *Polyline) Clone() *Polyline {
	o := &Polyline{Closed: p.Closed, Vertices: make([]Point2, len(p.Vertices))}
	copy(o.Vertices, p.Vertices)
	return o
}

// NumVertices returns the number of vertices in p.
func (p *Polyline) NumVertices() int { return len(p.Vertices) }

// StartPoint returns the first vertex of p.
func (p *Polyline) StartPoint() Point2 { return p.Vertices[0] }

// EndPoint returns the last vertex of p.
func (p *Polyline) EndPoint() Point2 { return p.Vertices[len(p.Vertices)-1] }

// PointAt returns vertex i.
func (p *Polyline) PointAt(i int) Point2 { return p.Vertices[i] }

// SetPointAt moves vertex i to pt.
func (p *Polyline) SetPointAt(i int, pt Point2) { p.Vertices[i] = pt }

// AddVertexAt inserts pt so that it becomes vertex i.
func (p *Polyline) AddVertexAt(i int, pt Point2) {
	p.Vertices = append(p.Vertices, Point2{})
	copy(p.Vertices[i+1:], p.Vertices[i:])
	p.Vertices[i] = pt
}

// RemoveVertexAt deletes vertex i.
func (p *Polyline) RemoveVertexAt(i int) {
	p.Vertices = append(p.Vertices[:i], p.Vertices[i+1:]...)
}

// Segments returns the straight segments of p, including the closing
// segment of a closed polyline.
func (p *Polyline) Segments() [][2]Point2 {
	n := len(p.Vertices)
	if n < 2 {
		return nil
	}
	segs := make([][2]Point2, 0, n)
	for i := 0; i < n-1; i++ {
		segs = append(segs, [2]Point2{p.Vertices[i], p.Vertices[i+1]})
	}
	if p.Closed && n > 2 {
		segs = append(segs, [2]Point2{p.Vertices[n-1], p.Vertices[0]})
	}
	return segs
}

// Length returns the total length of the segments of p.
func (p *Polyline) Length() float64 {
	var l float64
	for _, s := range p.Segments() {
		l += s[0].DistanceTo(s[1])
	}
	return l
}

// Bounds gives the rectangular extents of p.
func (p *Polyline) Bounds() *geom.Bounds {
	b := &geom.Bounds{
		Min: geom.Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: geom.Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
	for _, v := range p.Vertices {
		b.Min.X = math.Min(b.Min.X, v.X)
		b.Min.Y = math.Min(b.Min.Y, v.Y)
		b.Max.X = math.Max(b.Max.X, v.X)
		b.Max.Y = math.Max(b.Max.Y, v.Y)
	}
	return b
}

// Rotate rotates every vertex of p counter-clockwise by deg degrees about
// base.
func (p *Polyline) Rotate(deg float64, base Point2) {
	for i, v := range p.Vertices {
		p.Vertices[i] = base.Add(base.VectorTo(v).Rotate(deg))
	}
}

// Translate moves every vertex of p by v.
func (p *Polyline) Translate(v Vector2) {
	for i, pt := range p.Vertices {
		p.Vertices[i] = pt.Add(v)
	}
}

// LineString converts p to a ctessum/geom line string. A closed polyline
// repeats its first vertex at the end.
func (p *Polyline) LineString() geom.LineString {
	ls := make(geom.LineString, 0, len(p.Vertices)+1)
	for _, v := range p.Vertices {
		ls = append(ls, v.Geom())
	}
	if p.Closed && len(p.Vertices) > 0 {
		ls = append(ls, p.Vertices[0].Geom())
	}
	return ls
}

// Region returns the area enclosed by a closed polyline.
func (p *Polyline) Region() (geom.Polygon, error) {
	if !p.Closed {
		return nil, fmt.Errorf("geometry: an open polyline does not enclose a region")
	}
	if len(p.Vertices) < 3 {
		return nil, fmt.Errorf("geometry: a region needs at least 3 vertices but have %d", len(p.Vertices))
	}
	path := make([]geom.Point, len(p.Vertices))
	for i, v := range p.Vertices {
		path[i] = v.Geom()
	}
	return geom.Polygon{path}, nil
}
