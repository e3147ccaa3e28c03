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


package housing

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/jppcivil/civils"
	"github.com/jppcivil/civils/drawing"
	"github.com/jppcivil/civils/geometry"
)

func different(a, b, tolerance float64) bool {
	return math.Abs(a-b) > tolerance || math.IsNaN(a) || math.IsNaN(b)
}

// spoke returns a segment of length 10 leaving p at deg clockwise from +Y.
// Odd segments run towards the joint.
func spoke(p geometry.Point2, deg float64, i int) WallSegment {
	far := p.Add(geometry.Vector2{Y: 10}.Rotate(-deg))
	if i%2 == 1 {
		return NewWallSegment(far, p)
	}
	return NewWallSegment(p, far)
}

func TestAddSegmentAngles(t *testing.T) {
	p := geometry.Point2{X: 5, Y: -3}
	j := NewWallJoint(p)
	angles := []float64{270, 0, 45, 180, 90}
	for i, a := range angles {
		if err := j.AddSegment(spoke(p, a, i)); err != nil {
			t.Fatal(err)
		}
	}
	var have []float64
	for _, s := range j.Segments() {
		a, err := j.Angle(s.ID)
		if err != nil {
			t.Fatal(err)
		}
		have = append(have, a)
	}
	want := []float64{0, 45, 90, 180, 270}
	for i := range want {
		if different(have[i], want[i], 1e-9) {
			t.Errorf("connection %d: want %g but have %g", i, want[i], have[i])
		}
	}
}

func TestAddSegmentErrors(t *testing.T) {
	p := geometry.Point2{}
	j := NewWallJoint(p)
	s := NewWallSegment(p, geometry.Point2{X: 1})
	if err := j.AddSegment(s); err != nil {
		t.Fatal(err)
	}
	if err := j.AddSegment(s); !errors.Is(err, civils.ErrDuplicate) {
		t.Errorf("duplicate: have %v", err)
	}
	off := NewWallSegment(geometry.Point2{X: 1, Y: 1}, geometry.Point2{X: 2, Y: 1})
	if err := j.AddSegment(off); !errors.Is(err, civils.ErrDegenerate) {
		t.Errorf("off joint: have %v", err)
	}
	if err := j.AddSegment(NewWallSegment(p, p)); !errors.Is(err, civils.ErrDegenerate) {
		t.Errorf("zero length: have %v", err)
	}
	if j.Len() != 1 {
		t.Errorf("failed additions should not register, have %d", j.Len())
	}
}

func TestNextClockwiseCycle(t *testing.T) {
	p := geometry.Point2{X: 100, Y: 200}
	for n := 1; n <= 7; n++ {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			j := NewWallJoint(p)
			var segs []WallSegment
			for i := 0; i < n; i++ {
				// Added out of angle order, with a repeated angle when n > 3.
				a := math.Mod(float64(i*137), 360)
				if n > 3 && i == n-1 {
					a = 0
				}
				s := spoke(p, a, i)
				segs = append(segs, s)
				if err := j.AddSegment(s); err != nil {
					t.Fatal(err)
				}
			}
			for _, start := range segs {
				seen := make(map[uuid.UUID]bool)
				s := start
				for k := 0; k < n; k++ {
					seen[s.ID] = true
					var err error
					s, err = j.NextClockwise(s)
					if err != nil {
						t.Fatal(err)
					}
				}
				if s.ID != start.ID {
					t.Errorf("after %d steps from %v have %v", n, start.ID, s.ID)
				}
				if len(seen) != n {
					t.Errorf("visited %d of %d segments", len(seen), n)
				}
			}
		})
	}
}

func TestNextClockwiseOrder(t *testing.T) {
	p := geometry.Point2{}
	j := NewWallJoint(p)
	a := spoke(p, 90, 0)
	b := spoke(p, 180, 1)
	c := spoke(p, 300, 2)
	for _, s := range []WallSegment{c, a, b} {
		if err := j.AddSegment(s); err != nil {
			t.Fatal(err)
		}
	}
	for _, test := range []struct{ from, want WallSegment }{
		{a, b}, {b, c}, {c, a},
	} {
		have, err := j.NextClockwise(test.from)
		if err != nil {
			t.Fatal(err)
		}
		if have.ID != test.want.ID {
			t.Errorf("after %v: want %v but have %v", test.from.End, test.want.End, have.End)
		}
	}

	t.Run("ties", func(t *testing.T) {
		j := NewWallJoint(p)
		first := spoke(p, 90, 0)
		second := spoke(p, 90, 2)
		other := spoke(p, 200, 0)
		for _, s := range []WallSegment{first, second, other} {
			if err := j.AddSegment(s); err != nil {
				t.Fatal(err)
			}
		}
		if have, _ := j.NextClockwise(first); have.ID != second.ID {
			t.Error("first of equal angles should be followed by the second")
		}
		if have, _ := j.NextClockwise(second); have.ID != other.ID {
			t.Error("second of equal angles should be followed by the next angle")
		}
	})
}

func TestUnregistered(t *testing.T) {
	p := geometry.Point2{}
	j := NewWallJoint(p)
	if _, err := j.North(); !errors.Is(err, civils.ErrUnregistered) {
		t.Errorf("empty north: have %v", err)
	}
	if err := j.AddSegment(spoke(p, 10, 0)); err != nil {
		t.Fatal(err)
	}
	stranger := spoke(p, 20, 0)
	if _, err := j.NextClockwise(stranger); !errors.Is(err, civils.ErrUnregistered) {
		t.Errorf("next: have %v", err)
	}
	if err := j.RemoveSegment(stranger.ID); !errors.Is(err, civils.ErrUnregistered) {
		t.Errorf("remove: have %v", err)
	}
	if _, err := j.Angle(stranger.ID); !errors.Is(err, civils.ErrUnregistered) {
		t.Errorf("angle: have %v", err)
	}
}

func TestNorth(t *testing.T) {
	p := geometry.Point2{}
	tests := []struct {
		angles []float64
		want   int
	}{
		{angles: []float64{90, 350, 20}, want: 1},
		{angles: []float64{180, 30, 331}, want: 2},
		{angles: []float64{0}, want: 0},
		{angles: []float64{90, 40, 40}, want: 1},
		{angles: []float64{200, 161}, want: 0},
	}
	for _, test := range tests {
		t.Run(fmt.Sprint(test.angles), func(t *testing.T) {
			j := NewWallJoint(p)
			var segs []WallSegment
			for i, a := range test.angles {
				s := spoke(p, a, i)
				segs = append(segs, s)
				if err := j.AddSegment(s); err != nil {
					t.Fatal(err)
				}
			}
			have, err := j.North()
			if err != nil {
				t.Fatal(err)
			}
			if have.ID != segs[test.want].ID {
				t.Errorf("want segment at %g", test.angles[test.want])
			}
		})
	}
}

func TestRemoveSegment(t *testing.T) {
	p := geometry.Point2{}
	j := NewWallJoint(p)
	segs := []WallSegment{spoke(p, 0, 0), spoke(p, 120, 1), spoke(p, 240, 2)}
	for _, s := range segs {
		if err := j.AddSegment(s); err != nil {
			t.Fatal(err)
		}
	}
	if err := j.RemoveSegment(segs[1].ID); err != nil {
		t.Fatal(err)
	}
	if have := j.Segments(); !reflect.DeepEqual(have, []WallSegment{segs[0], segs[2]}) {
		t.Errorf("segments = %v", have)
	}
	if have, _ := j.NextClockwise(segs[0]); have.ID != segs[2].ID {
		t.Error("removed segment should be skipped")
	}
}

func TestNextClockwiseAfterChanges(t *testing.T) {
	p := geometry.Point2{}
	j := &WallJoint{Point: p}
	var segs []WallSegment
	for i, a := range []float64{10, 100, 190, 280, 100} {
		s := spoke(p, a, i)
		segs = append(segs, s)
		if err := j.AddSegment(s); err != nil {
			t.Fatal(err)
		}
	}
	if err := j.RemoveSegment(segs[1].ID); err != nil {
		t.Fatal(err)
	}
	if _, err := j.NextClockwise(segs[1]); !errors.Is(err, civils.ErrUnregistered) {
		t.Errorf("removed segment: have %v", err)
	}
	if have, _ := j.NextClockwise(segs[0]); have.ID != segs[4].ID {
		t.Error("remaining segment at the removed angle should follow")
	}
	// Re-added segments sort after earlier ones at the same angle.
	if err := j.AddSegment(segs[1]); err != nil {
		t.Fatal(err)
	}
	want := []WallSegment{segs[0], segs[4], segs[1], segs[2], segs[3]}
	for i, s := range want {
		have, err := j.NextClockwise(s)
		if err != nil {
			t.Fatal(err)
		}
		if next := want[(i+1)%len(want)]; have.ID != next.ID {
			t.Errorf("after %d: want %v but have %v", i, next.ID, have.ID)
		}
		if _, err := j.Angle(s.ID); err != nil {
			t.Errorf("angle %d: %v", i, err)
		}
	}
	for _, s := range want {
		if err := j.RemoveSegment(s.ID); err != nil {
			t.Fatal(err)
		}
	}
	if j.Len() != 0 {
		t.Errorf("have %d segments", j.Len())
	}
}

func TestLevelLabels(t *testing.T) {
	j := NewWallJoint(geometry.Point2{X: 3, Y: 4})
	j.ExternalLevel = 101.2345
	l := j.LevelLabelEntity(30)
	if l.Text != "101.234" && l.Text != "101.235" {
		t.Errorf("label text %q", l.Text)
	}
	if l.Position != j.Point || l.Rotation != 30 || l.Layer != LevelLayer.Name {
		t.Errorf("label = %+v", l)
	}

	sink := drawing.NewMemorySink()
	if _, _, err := j.ResolveLabels(sink); !errors.Is(err, civils.ErrUnregistered) {
		t.Errorf("undrawn: have %v", err)
	}
	j.ExternalLevel = 99.5
	if err := j.DrawLevel(0, sink); err != nil {
		t.Fatal(err)
	}
	marker, text, err := j.ResolveLabels(sink)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := marker.(*drawing.Circle); !ok {
		t.Errorf("marker is %T", marker)
	}
	if text.Text != "99.500" {
		t.Errorf("text %q", text.Text)
	}
	sink.Erase(j.LabelText)
	if _, _, err := j.ResolveLabels(sink); !errors.Is(err, civils.ErrUnregistered) {
		t.Errorf("erased: have %v", err)
	}
}
