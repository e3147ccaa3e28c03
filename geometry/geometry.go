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

// Package geometry is the plan-geometry kernel shared by the drainage,
// foundations and housing packages. It supports straight segments,
// polylines and circles: offset curves, curve-curve intersection and signed
// angles between vectors.
package geometry

import (
	"math"

	"github.com/ctessum/geom"
	"github.com/gonum/floats"
)

// Tolerance is the absolute distance, in drawing units, below which two
// points are considered coincident.
const Tolerance = 1e-6

// Point2 is a point in the drawing plane.
type Point2 struct {
	X, Y float64
}

// Vector2 is a displacement in the drawing plane.
type Vector2 struct {
	X, Y float64
}

// Point3 is a point in model space.
type Point3 struct {
	X, Y, Z float64
}

// Vector3 is a displacement in model space.
type Vector3 struct {
	X, Y, Z float64
}

// Unit axes.
var (
	XAxis = Vector3{X: 1}
	YAxis = Vector3{Y: 1}
	ZAxis = Vector3{Z: 1}
)

// Add returns p displaced by v.
func (p Point2) Add(v Vector2) Point2 { return Point2{X: p.X + v.X, Y: p.Y + v.Y} }

// VectorTo returns the vector from p to q.
func (p Point2) VectorTo(q Point2) Vector2 { return Vector2{X: q.X - p.X, Y: q.Y - p.Y} }

// DistanceTo returns the distance from p to q.
func (p Point2) DistanceTo(q Point2) float64 { return p.VectorTo(q).Length() }

// Equal reports whether p and q are within tol of each other on both axes.
func (p Point2) Equal(q Point2, tol float64) bool {
	return floats.EqualWithinAbs(p.X, q.X, tol) && floats.EqualWithinAbs(p.Y, q.Y, tol)
}

// Geom converts p to a ctessum/geom point.
func (p Point2) Geom() geom.Point { return geom.Point{X: p.X, Y: p.Y} }

// To3 lifts p into model space at elevation z.
func (p Point2) To3(z float64) Point3 { return Point3{X: p.X, Y: p.Y, Z: z} }

// AsVector returns the position vector of p.
func (p Point2) AsVector() Vector2 { return Vector2{X: p.X, Y: p.Y} }

func (v Vector2) Length() float64         { return math.Hypot(v.X, v.Y) }
func (v Vector2) Add(w Vector2) Vector2   { return Vector2{X: v.X + w.X, Y: v.Y + w.Y} }
func (v Vector2) Sub(w Vector2) Vector2   { return Vector2{X: v.X - w.X, Y: v.Y - w.Y} }
func (v Vector2) Scale(s float64) Vector2 { return Vector2{X: v.X * s, Y: v.Y * s} }
func (v Vector2) Dot(w Vector2) float64   { return v.X*w.X + v.Y*w.Y }

// Cross returns the z component of v × w.
func (v Vector2) Cross(w Vector2) float64 { return v.X*w.Y - v.Y*w.X }

// Unit returns v scaled to length 1, or the zero vector if v has no length.
func (v Vector2) Unit() Vector2 {
	l := v.Length()
	if l == 0 {
		return Vector2{}
	}
	return v.Scale(1 / l)
}

// Right returns v rotated 90° clockwise.
func (v Vector2) Right() Vector2 { return Vector2{X: v.Y, Y: -v.X} }

// Left returns v rotated 90° counter-clockwise.
func (v Vector2) Left() Vector2 { return Vector2{X: -v.Y, Y: v.X} }

// Rotate returns v rotated counter-clockwise by deg degrees.
func (v Vector2) Rotate(deg float64) Vector2 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Vector2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// To3 lifts v into model space.
func (v Vector2) To3() Vector3 { return Vector3{X: v.X, Y: v.Y} }

// AngleTo returns the angle in degrees, in [0,360), through which v must be
// rotated to point along w. The rotation is counter-clockwise unless
// clockwise is set.
func (v Vector2) AngleTo(w Vector2, clockwise bool) float64 {
	n := ZAxis
	if clockwise {
		n = ZAxis.Scale(-1)
	}
	return SignedAngle(v.To3(), w.To3(), n)
}

func (p Point3) Add(v Vector3) Point3        { return Point3{X: p.X + v.X, Y: p.Y + v.Y, Z: p.Z + v.Z} }
func (p Point3) VectorTo(q Point3) Vector3   { return Vector3{X: q.X - p.X, Y: q.Y - p.Y, Z: q.Z - p.Z} }
func (p Point3) DistanceTo(q Point3) float64 { return p.VectorTo(q).Length() }

// To2 drops the elevation of p.
func (p Point3) To2() Point2 { return Point2{X: p.X, Y: p.Y} }

func (v Vector3) Length() float64         { return math.Sqrt(v.Dot(v)) }
func (v Vector3) Add(w Vector3) Vector3   { return Vector3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z} }
func (v Vector3) Sub(w Vector3) Vector3   { return Vector3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z} }
func (v Vector3) Scale(s float64) Vector3 { return Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s} }
func (v Vector3) Dot(w Vector3) float64   { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

func (v Vector3) Cross(w Vector3) Vector3 {
	return Vector3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// To2 drops the z component of v.
func (v Vector3) To2() Vector2 { return Vector2{X: v.X, Y: v.Y} }

// SignedAngle returns the angle in degrees, in [0,360), that rotates a onto b
// counter-clockwise when viewed from the tip of normal looking back toward
// the origin. a and b are first projected onto the plane perpendicular to
// normal. Zero-length input gives 0.
func SignedAngle(a, b, normal Vector3) float64 {
	nl := normal.Length()
	if nl == 0 {
		return 0
	}
	n := normal.Scale(1 / nl)
	a = a.Sub(n.Scale(a.Dot(n)))
	b = b.Sub(n.Scale(b.Dot(n)))
	if a.Length() == 0 || b.Length() == 0 {
		return 0
	}
	rad := math.Atan2(n.Dot(a.Cross(b)), a.Dot(b))
	return NormalizeDegrees(rad * 180 / math.Pi)
}

// NormalizeDegrees maps deg into [0,360). Values that round to 360 become 0.
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360-1e-12 || deg == 0 {
		return 0
	}
	return deg
}
