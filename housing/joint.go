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


// Package housing holds the wall layout of housing plots. Walls meet at
// joints, and each joint keeps its walls in clockwise order so that a
// building outline can be traced by always turning onto the next wall.
package housing

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jppcivil/civils"
	"github.com/jppcivil/civils/drawing"
	"github.com/jppcivil/civils/geometry"
)

// WallSegment is a straight run of wall.
type WallSegment struct {
	ID         uuid.UUID
	Start, End geometry.Point2
}

// NewWallSegment returns a segment with a new random ID.
func NewWallSegment(start, end geometry.Point2) WallSegment {
	return WallSegment{ID: uuid.New(), Start: start, End: end}
}

// connection is a segment meeting a joint. angle is clockwise from +Y to
// the far end of the segment and seq is the order the segment was added.
type connection struct {
	segment WallSegment
	angle   float64
	seq     int
}

// fromNorth is the angular deviation of c from +Y in either direction.
func (c connection) fromNorth() float64 {
	if c.angle < 180 {
		return c.angle
	}
	return 360 - c.angle
}

func (c connection) before(o connection) bool {
	if c.angle != o.angle {
		return c.angle < o.angle
	}
	return c.seq < o.seq
}

// WallJoint is a point where wall segments meet.
type WallJoint struct {
	Point geometry.Point2

	// LevelLabel and LabelText refer to the level marker and its text in
	// the drawing. The joint does not own them; they may have been erased.
	LevelLabel, LabelText drawing.Handle

	ExternalLevel  float64
	AbsoluteLevel  bool
	RelativeOffset float64

	// connections is kept sorted by before. keys holds the sort key of
	// each segment so it can be found by binary search.
	connections []connection
	keys        map[uuid.UUID]connection
	nextSeq     int
}

// NewWallJoint returns a joint at p with no segments.
func NewWallJoint(p geometry.Point2) *WallJoint {
	return &WallJoint{Point: p, keys: make(map[uuid.UUID]connection)}
}

// AddSegment registers seg at the joint. One end of seg must be at the
// joint point.
func (j *WallJoint) AddSegment(seg WallSegment) error {
	const op = "add wall segment"
	var far geometry.Point2
	switch {
	case seg.Start.Equal(j.Point, geometry.Tolerance):
		far = seg.End
	case seg.End.Equal(j.Point, geometry.Tolerance):
		far = seg.Start
	default:
		return civils.E(civils.GeometryDegenerate, op,
			"segment %v does not meet the joint at %v", seg.ID, j.Point)
	}
	if far.Equal(j.Point, geometry.Tolerance) {
		return civils.E(civils.GeometryDegenerate, op, "segment %v has no length", seg.ID)
	}
	if _, ok := j.find(seg.ID); ok {
		return civils.E(civils.DuplicateEntity, op, "segment %v is already at the joint", seg.ID)
	}
	c := connection{
		segment: seg,
		angle:   geometry.SignedAngle(geometry.YAxis, j.Point.VectorTo(far).To3(), geometry.ZAxis.Scale(-1)),
		seq:     j.nextSeq,
	}
	j.nextSeq++
	if j.keys == nil {
		j.keys = make(map[uuid.UUID]connection)
	}
	j.keys[seg.ID] = c
	i := j.search(c)
	j.connections = append(j.connections, connection{})
	copy(j.connections[i+1:], j.connections[i:])
	j.connections[i] = c
	return nil
}

// RemoveSegment removes the segment with the given ID from the joint.
func (j *WallJoint) RemoveSegment(id uuid.UUID) error {
	i, ok := j.find(id)
	if !ok {
		return civils.E(civils.UnregisteredEntity, "remove wall segment", "segment %v is not at the joint", id)
	}
	j.connections = append(j.connections[:i], j.connections[i+1:]...)
	delete(j.keys, id)
	return nil
}

// search returns the index of the first connection not before c.
func (j *WallJoint) search(c connection) int {
	return sort.Search(len(j.connections), func(k int) bool {
		return !j.connections[k].before(c)
	})
}

func (j *WallJoint) find(id uuid.UUID) (int, bool) {
	c, ok := j.keys[id]
	if !ok {
		return 0, false
	}
	i := j.search(c)
	if i == len(j.connections) || j.connections[i].segment.ID != id {
		return 0, false
	}
	return i, true
}

// Len returns the number of segments at the joint.
func (j *WallJoint) Len() int { return len(j.connections) }

// Segments returns the segments at the joint in clockwise order from +Y.
func (j *WallJoint) Segments() []WallSegment {
	s := make([]WallSegment, len(j.connections))
	for i, c := range j.connections {
		s[i] = c.segment
	}
	return s
}

// Angle returns the clockwise angle from +Y to the segment with the given
// ID.
func (j *WallJoint) Angle(id uuid.UUID) (float64, error) {
	i, ok := j.find(id)
	if !ok {
		return 0, civils.E(civils.UnregisteredEntity, "wall segment angle", "segment %v is not at the joint", id)
	}
	return j.connections[i].angle, nil
}

// North returns the segment closest in direction to +Y. Of equally close
// segments the first in clockwise order is returned.
func (j *WallJoint) North() (WallSegment, error) {
	if len(j.connections) == 0 {
		return WallSegment{}, civils.E(civils.UnregisteredEntity, "north wall segment", "joint at %v has no segments", j.Point)
	}
	best := 0
	for i, c := range j.connections[1:] {
		if c.fromNorth() < j.connections[best].fromNorth() {
			best = i + 1
		}
	}
	return j.connections[best].segment, nil
}

// NextClockwise returns the segment following seg in clockwise order,
// wrapping from the last segment back to the first. A joint with one
// segment returns that segment.
func (j *WallJoint) NextClockwise(seg WallSegment) (WallSegment, error) {
	i, ok := j.find(seg.ID)
	if !ok {
		return WallSegment{}, civils.E(civils.UnregisteredEntity, "next clockwise wall segment",
			"segment %v is not at the joint at %v", seg.ID, j.Point)
	}
	return j.connections[(i+1)%len(j.connections)].segment, nil
}

// LevelLayer is the drawing layer for joint level labels.
var LevelLayer = drawing.Layer{Name: "JPP_Civil_Housing_Levels", Color: 2}

// LevelTextHeight is the height of joint level labels.
const LevelTextHeight = 0.25

// LevelLabelEntity returns the level label for the joint, rotated rotation
// degrees counter-clockwise.
func (j *WallJoint) LevelLabelEntity(rotation float64) *drawing.Label {
	return &drawing.Label{
		Layer:    LevelLayer.Name,
		Text:     fmt.Sprintf("%.3f", j.ExternalLevel),
		Position: j.Point,
		Height:   LevelTextHeight,
		Rotation: rotation,
	}
}

// levelMarkerRadius is the radius of the marker drawn at the joint.
const levelMarkerRadius = 0.1

// DrawLevel commits the level marker and label of the joint to s and keeps
// weak references to them.
func (j *WallJoint) DrawLevel(rotation float64, s drawing.Sink) error {
	b := drawing.NewBatch(fmt.Sprintf("level %.3f", j.ExternalLevel))
	b.DeclareLayer(LevelLayer)
	marker := b.Add(&drawing.Circle{Layer: LevelLayer.Name, Curve: geometry.NewCircle(j.Point, levelMarkerRadius)})
	text := b.Add(j.LevelLabelEntity(rotation))
	if err := s.Commit(b); err != nil {
		return err
	}
	j.LevelLabel, j.LabelText = b.Handle(marker), b.Handle(text)
	return nil
}

// ResolveLabels looks up the level marker and label of the joint. It fails
// if either has not been drawn or has since been erased.
func (j *WallJoint) ResolveLabels(r drawing.Resolver) (marker drawing.Entity, text *drawing.Label, err error) {
	const op = "resolve level label"
	marker, ok := r.Resolve(j.LevelLabel)
	if j.LevelLabel.IsZero() || !ok {
		return nil, nil, civils.E(civils.UnregisteredEntity, op, "level marker %q not found", j.LevelLabel)
	}
	e, ok := r.Resolve(j.LabelText)
	if j.LabelText.IsZero() || !ok {
		return nil, nil, civils.E(civils.UnregisteredEntity, op, "level text %q not found", j.LabelText)
	}
	text, ok = e.(*drawing.Label)
	if !ok {
		return nil, nil, civils.E(civils.UnregisteredEntity, op, "entity %q is not a label", j.LabelText)
	}
	return marker, text, nil
}
