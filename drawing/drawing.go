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

// Package drawing holds plan geometry waiting to be committed to a drawing,
// and the sinks that accept it. Geometry is collected in a Batch and handed
// to a Sink in one call, so a failed operation never leaves partial
// geometry behind.
package drawing

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
	"github.com/jppcivil/civils/geometry"
)

// Layer is a named drawing layer.
type Layer struct {
	Name string

	// Color is an AutoCAD colour index.
	Color int

	// Hidden layers are drawn with a hidden (dashed) line type.
	Hidden bool
}

// DefaultLayer is the layer every drawing has.
const DefaultLayer = "0"

// Entity is one item of plan geometry.
type Entity interface {
	// LayerName is the layer the entity is drawn on.
	LayerName() string

	// Geom converts the entity for export.
	Geom() geom.Geom

	validate() error
}

// Polyline is a polyline entity.
type Polyline struct {
	Layer string
	Curve *geometry.Polyline
}

// Circle is a circle entity.
type Circle struct {
	Layer string
	Curve *geometry.Circle
}

// Label is a single line of text. Text may contain the \P paragraph break
// and %%C diameter escapes understood by CAD text entities.
type Label struct {
	Layer    string
	Text     string
	Position geometry.Point2
	Height   float64

	// Rotation is counter-clockwise from +X, in degrees.
	Rotation float64
}

// Region is a filled closed area.
type Region struct {
	Layer    string
	Boundary geom.Polygonal
}

func (e *Polyline) LayerName() string { return e.Layer }
func (e *Circle) LayerName() string   { return e.Layer }
func (e *Label) LayerName() string    { return e.Layer }
func (e *Region) LayerName() string   { return e.Layer }

func (e *Polyline) Geom() geom.Geom { return e.Curve.LineString() }

// Geom approximates the circle with geometry.RegionSegments sides.
func (e *Circle) Geom() geom.Geom {
	return e.Curve.Polygon(geometry.RegionSegments).LineString()
}

func (e *Label) Geom() geom.Geom { return e.Position.Geom() }

// Geom returns every ring of the boundary as a single polygon.
func (e *Region) Geom() geom.Geom {
	var p geom.Polygon
	for _, pp := range e.Boundary.Polygons() {
		p = append(p, pp...)
	}
	return p
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (e *Polyline) validate() error {
	if e.Curve == nil {
		return fmt.Errorf("polyline has no curve")
	}
	if n := e.Curve.NumVertices(); n < 2 {
		return fmt.Errorf("polyline has %d vertices", n)
	}
	for _, v := range e.Curve.Vertices {
		if !finite(v.X, v.Y) {
			return fmt.Errorf("polyline vertex %v is not finite", v)
		}
	}
	return nil
}

func (e *Circle) validate() error {
	if e.Curve == nil {
		return fmt.Errorf("circle has no curve")
	}
	if !finite(e.Curve.Center.X, e.Curve.Center.Y, e.Curve.Radius) || !(e.Curve.Radius > 0) {
		return fmt.Errorf("circle with center %v and radius %g is invalid", e.Curve.Center, e.Curve.Radius)
	}
	return nil
}

func (e *Label) validate() error {
	if e.Text == "" {
		return fmt.Errorf("label has no text")
	}
	if !finite(e.Position.X, e.Position.Y, e.Rotation) || !(e.Height > 0) {
		return fmt.Errorf("label %q has an invalid position or height", e.Text)
	}
	return nil
}

func (e *Region) validate() error {
	if e.Boundary == nil {
		return fmt.Errorf("region has no boundary")
	}
	if a := e.Boundary.Area(); !(a > 0) || !finite(a) {
		return fmt.Errorf("region area %g is not positive", a)
	}
	return nil
}

// Handle is a weak reference to a committed entity. Resolving a handle
// whose entity has since been erased fails rather than returning stale
// geometry.
type Handle string

// IsZero reports whether h refers to nothing.
func (h Handle) IsZero() bool { return h == "" }

// Resolver looks up committed entities by handle.
type Resolver interface {
	Resolve(h Handle) (Entity, bool)
}
