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

	"github.com/gonum/floats"
	"github.com/jppcivil/civils"
	"github.com/jppcivil/civils/drawing"
	"github.com/jppcivil/civils/geometry"
	"github.com/sirupsen/logrus"
)

// Layers used by manhole plan details.
var (
	CentrelineLayer  = drawing.Layer{Name: "JPP_Civil_Drainage_PipeCentreline", Color: 7, Hidden: true}
	PipeWallLayer    = drawing.Layer{Name: "JPP_Civil_Drainage_PipeWall", Color: 30}
	ManholeWallLayer = drawing.Layer{Name: "JPP_Civil_Drainage_ManholeWall", Color: 5}
)

// Plan detail dimensions, in mm.
const (
	// SlopeRadius is the radius about the chamber centre onto which pipes
	// entering at more than 45° to straight through are turned.
	SlopeRadius = 450

	// IntrusionClearance is the distance inside the chamber wall at which
	// the outer pipe stubs are cut.
	IntrusionClearance = 150

	// StubClearance is the gap between a pipe wall and its stub.
	StubClearance = 20

	// SurroundThickness is the width of the concrete surround.
	SurroundThickness = 100

	// LabelHeight is the text height of pipe labels.
	LabelHeight = 40

	// PlanSpacing separates consecutive plan details along +X.
	PlanSpacing = 5000
)

// Incoming pipes with an angle outside [minDirectAngle, maxDirectAngle]
// are turned onto the slope circle when there is more than one.
const (
	minDirectAngle = 135
	maxDirectAngle = 225
)

// Generator builds manhole plan details.
type Generator struct {
	// Standard must accept a manhole before any of its geometry is built.
	Standard Verifier

	Log logrus.FieldLogger
}

// NewGenerator returns a generator that checks manholes against v.
func NewGenerator(v Verifier) *Generator {
	return &Generator{Standard: v, Log: logrus.StandardLogger()}
}

// Plan is a generated manhole plan detail.
type Plan struct {
	// Batch holds all of the plan geometry, ready to commit.
	Batch *drawing.Batch

	// Incoming is the incoming pipes in angle order.
	Incoming []PipeConnection

	Step     StepPlacement
	StepLine *geometry.Polyline
	Benching *Benching

	// Centre is the final chamber centre.
	Centre geometry.Point2
}

// StepPlacement locates the step centreline in the largest angular gap
// between pipes.
type StepPlacement struct {
	// After is the index in the sorted incoming pipes of the pipe that
	// starts the chosen gap, or -1 for the outgoing pipe.
	After int

	// Wrap is set when the chosen gap runs from the last incoming pipe
	// round to the outgoing pipe.
	Wrap bool

	// Gap is the width of the gap in degrees.
	Gap float64

	// Angle is the gap bisector, clockwise from the outgoing pipe.
	Angle float64
}

// PlaceStep chooses the largest gap between the outgoing pipe at 0°, the
// sorted incoming angles and the outgoing pipe again at 360°. Gaps are
// compared in order and the first of equal gaps is kept, so the closing gap
// back to the outgoing pipe is only chosen if it is strictly the largest.
func PlaceStep(sorted []PipeConnection) StepPlacement {
	if len(sorted) == 0 {
		return StepPlacement{After: -1, Wrap: true, Gap: 360, Angle: 180}
	}
	starts := make([]float64, len(sorted)+1)
	gaps := make([]float64, len(sorted)+1)
	prev := 0.
	for i, p := range sorted {
		starts[i] = prev
		gaps[i] = p.Angle - prev
		prev = p.Angle
	}
	starts[len(sorted)] = prev
	gaps[len(sorted)] = 360 - prev

	k := floats.MaxIdx(gaps)
	return StepPlacement{
		After: k - 1,
		Wrap:  k == len(sorted),
		Gap:   gaps[k],
		Angle: starts[k] + gaps[k]/2,
	}
}

// pipe is the plan geometry of one connection.
type pipe struct {
	conn                PipeConnection
	centreline          *geometry.Polyline
	plus, minus         *geometry.Polyline
	stubPlus, stubMinus *geometry.Polyline
	closing             *geometry.Polyline
	label               *drawing.Label
}

func (p *pipe) addTo(b *drawing.Batch) {
	b.Add(&drawing.Polyline{Layer: CentrelineLayer.Name, Curve: p.centreline})
	for _, w := range []*geometry.Polyline{p.minus, p.plus, p.stubMinus, p.stubPlus, p.closing} {
		b.Add(&drawing.Polyline{Layer: PipeWallLayer.Name, Curve: w})
	}
	b.Add(p.label)
}

// newPipe builds the straight centreline, the label and the trimmed stubs
// of c.
func newPipe(c PipeConnection, location geometry.Point2, offset geometry.Vector2, intrusion *geometry.Circle) (*pipe, error) {
	const op = "drainage.GeneratePlan"
	target := c.Location.Add(offset)
	dir := location.VectorTo(target)
	if dir.Length() < geometry.Tolerance {
		return nil, civils.E(civils.GeometryDegenerate, op, "pipe %q ends at the chamber centre", c.Code)
	}
	p := &pipe{
		conn:       c,
		centreline: geometry.NewPolyline(location, target),
		label: &drawing.Label{
			Layer:    drawing.DefaultLayer,
			Text:     fmt.Sprintf(`%s\P%d%%%%C`, c.Code, c.Diameter),
			Position: target,
			Height:   LabelHeight,
			Rotation: geometry.XAxis.To2().AngleTo(dir, false),
		},
	}
	half := float64(c.Diameter) / 2
	var err error
	if p.stubPlus, err = stub(p.centreline, half+StubClearance, intrusion); err != nil {
		return nil, civils.Wrap(civils.GeometryDegenerate, op, fmt.Errorf("pipe %q: %v", c.Code, err))
	}
	if p.stubMinus, err = stub(p.centreline, -half-StubClearance, intrusion); err != nil {
		return nil, civils.Wrap(civils.GeometryDegenerate, op, fmt.Errorf("pipe %q: %v", c.Code, err))
	}
	p.closing = geometry.NewPolyline(p.stubPlus.StartPoint(), p.stubMinus.StartPoint())
	return p, nil
}

// stub offsets centreline by d and moves its chamber end onto intrusion.
func stub(centreline *geometry.Polyline, d float64, intrusion *geometry.Circle) (*geometry.Polyline, error) {
	s, err := geometry.OffsetCurve(centreline, d)
	if err != nil {
		return nil, err
	}
	hits := geometry.Intersect(s, intrusion, geometry.ExtendNone)
	if len(hits) == 0 {
		return nil, fmt.Errorf("stub at offset %g does not cross the %g mm intrusion circle", d, intrusion.Radius)
	}
	s.AddVertexAt(0, hits[0])
	s.RemoveVertexAt(1)
	return s, nil
}

// walls offsets the centreline of p either side by half the pipe diameter.
func (p *pipe) walls() error {
	half := float64(p.conn.Diameter) / 2
	var err error
	if p.plus, err = geometry.OffsetCurve(p.centreline, half); err != nil {
		return err
	}
	p.minus, err = geometry.OffsetCurve(p.centreline, -half)
	return err
}

// mitre moves the chamber ends of a and b to where they meet, and reports
// whether they do.
func mitre(a, b *geometry.Polyline) bool {
	hits := geometry.Intersect(a, b, geometry.ExtendBoth)
	if len(hits) == 0 {
		return false
	}
	a.SetPointAt(0, hits[0])
	b.SetPointAt(0, hits[0])
	return true
}

// GeneratePlan builds the plan detail of m centred on location. Nothing is
// built unless the Standard accepts m, and on any error no partial plan is
// returned.
func (g *Generator) GeneratePlan(m *Manhole, location geometry.Point2) (*Plan, error) {
	const op = "drainage.GeneratePlan"
	if g.Standard != nil {
		if err := g.Standard.VerifyManhole(m); err != nil {
			return nil, civils.Wrap(civils.EngineeringStandardViolation, op, fmt.Errorf("manhole %s rejected: %w", m.Name, err))
		}
	}
	if m.SafetyChain {
		return nil, civils.E(civils.EngineeringStandardViolation, op, "manhole %s: safety chains are not supported", m.Name)
	}
	if m.SafetyRail {
		return nil, civils.E(civils.EngineeringStandardViolation, op, "manhole %s: safety rails are not supported", m.Name)
	}
	if len(m.IncomingPipes) == 0 {
		return nil, civils.E(civils.GeometryDegenerate, op, "manhole %s has no incoming pipes", m.Name)
	}
	wall, err := m.WallThickness()
	if err != nil {
		return nil, err
	}

	log := g.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithFields(logrus.Fields{"manhole": m.Name, "diameter": m.Diameter})

	sorted := m.SortedIncoming()
	offset := m.IntersectionPoint.VectorTo(location)
	radius := float64(m.Diameter) / 2
	intrusion := geometry.NewCircle(location, radius-IntrusionClearance)
	slope := geometry.NewCircle(location, SlopeRadius)

	out, err := newPipe(m.Outgoing, location, offset, intrusion)
	if err != nil {
		return nil, err
	}
	if err := out.walls(); err != nil {
		return nil, civils.Wrap(civils.GeometryDegenerate, op, err)
	}
	outDir := location.VectorTo(out.centreline.EndPoint()).Unit()
	slopePoint := location.Add(outDir.Scale(SlopeRadius))

	pipes := []*pipe{out}
	last := out.plus
	for _, c := range sorted {
		p, err := newPipe(c, location, offset, intrusion)
		if err != nil {
			return nil, err
		}
		if len(sorted) > 1 && (c.Angle < minDirectAngle || c.Angle > maxDirectAngle) {
			hits := geometry.Intersect(p.centreline, slope, geometry.ExtendNone)
			if len(hits) == 0 {
				return nil, civils.E(civils.GeometryDegenerate, op,
					"manhole %s: pipe %q is too short to reach the %d mm slope circle", m.Name, c.Code, SlopeRadius)
			}
			p.centreline.AddVertexAt(1, hits[0])
			p.centreline.SetPointAt(0, slopePoint)
			log.WithFields(logrus.Fields{"pipe": c.Code, "angle": c.Angle}).Debug("turning pipe onto slope circle")
		}
		if err := p.walls(); err != nil {
			return nil, civils.Wrap(civils.GeometryDegenerate, op, fmt.Errorf("pipe %q: %v", c.Code, err))
		}
		if !mitre(p.minus, last) {
			log.WithField("pipe", c.Code).Debug("walls do not meet; leaving junction unmitred")
		}
		last = p.plus
		pipes = append(pipes, p)
	}

	if !mitre(out.minus, last) {
		a, b := last.Segments()[0], out.minus.Segments()[0]
		if !geometry.Collinear(a[0], a[1], b[0], b[1]) {
			return nil, civils.E(civils.GeometryDegenerate, op,
				"manhole %s: last incoming wall does not meet the outgoing wall", m.Name)
		}
	}

	step := PlaceStep(sorted)
	stepLine := geometry.NewPolyline(location, out.centreline.EndPoint())
	stepLine.Rotate(-step.Angle, location)

	bench, err := m.CalculateBenching(stepLine, geometry.NewCircle(location, radius))
	if err != nil {
		return nil, err
	}

	b := drawing.NewBatch("manhole " + m.Name)
	b.DeclareLayer(CentrelineLayer)
	b.DeclareLayer(PipeWallLayer)
	b.DeclareLayer(ManholeWallLayer)
	for _, p := range pipes {
		p.addTo(b)
	}
	for _, r := range []float64{radius, radius + float64(wall), radius + float64(wall) + SurroundThickness} {
		b.Add(&drawing.Circle{Layer: ManholeWallLayer.Name, Curve: geometry.NewCircle(bench.Centre, r)})
	}
	b.Add(&drawing.Polyline{Layer: CentrelineLayer.Name, Curve: stepLine})

	log.WithFields(logrus.Fields{
		"incoming": len(sorted),
		"step":     step.Angle,
		"minor":    bench.Minor.Length(),
		"major":    bench.Major.Length(),
		"shifts":   bench.Shifts,
	}).Info("generated manhole plan")

	return &Plan{
		Batch:    b,
		Incoming: sorted,
		Step:     step,
		StepLine: stepLine,
		Benching: bench,
		Centre:   bench.Centre,
	}, nil
}
