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


package foundations

import (
	"math"
	"reflect"
	"testing"

	"github.com/jppcivil/civils/drawing"
	"github.com/jppcivil/civils/geometry"
)

func different(a, b, tolerance float64) bool {
	return math.Abs(a-b) > tolerance || math.IsNaN(a) || math.IsNaN(b)
}

func circle(x, y, r float64) geometry.Curve {
	return geometry.NewCircle(geometry.Point2{X: x, Y: y}, r)
}

func regionArea(t *testing.T, c geometry.Curve) float64 {
	r, err := c.Region()
	if err != nil {
		t.Fatal(err)
	}
	return r.Area()
}

func TestDepths(t *testing.T) {
	tests := []struct {
		s    Shrinkage
		want []float64
	}{
		{s: ShrinkageHigh, want: []float64{2.2, 1.9, 1.6, 1.3}},
		{s: ShrinkageMedium, want: []float64{1.9, 1.6, 1.3, 1.0}},
		{s: ShrinkageLow, want: []float64{1.3, 1.0}},
	}
	for _, test := range tests {
		t.Run(test.s.String(), func(t *testing.T) {
			have, err := NHBCRings{}.Depths(test.s, DefaultStartDepth, DefaultStep)
			if err != nil {
				t.Fatal(err)
			}
			if len(have) != len(test.want) {
				t.Fatalf("want %v but have %v", test.want, have)
			}
			for i := range have {
				if different(have[i], test.want[i], 1e-9) {
					t.Errorf("depth %d: want %g but have %g", i, test.want[i], have[i])
				}
			}
		})
	}
	if _, err := (NHBCRings{}).Depths(ShrinkageHigh, 1, 0); err == nil {
		t.Error("zero step should fail")
	}
	if _, err := (NHBCRings{}).Depths(Shrinkage(9), 1, 0.3); err == nil {
		t.Error("invalid shrinkage should fail")
	}
}

func TestGenerateRings(t *testing.T) {
	tree := Tree{Location: geometry.Point2{X: 3, Y: 4}, Height: 10, WaterDemand: WaterDemandHigh, TreeType: Deciduous}
	rings, err := NHBCRings{}.GenerateRings(tree, ShrinkageHigh, DefaultStartDepth, DefaultStep)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{2.5, 5, 7.5, 10}
	if len(rings) != len(want) {
		t.Fatalf("want %d rings but have %d", len(want), len(rings))
	}
	for i, r := range rings {
		c := r.(*geometry.Circle)
		if different(c.Radius, want[i], 1e-9) {
			t.Errorf("ring %d: want radius %g but have %g", i, want[i], c.Radius)
		}
		if c.Center != tree.Location {
			t.Errorf("ring %d centre %v", i, c.Center)
		}
	}

	t.Run("no height", func(t *testing.T) {
		tree := Tree{WaterDemand: WaterDemandLow}
		rings, err := NHBCRings{}.GenerateRings(tree, ShrinkageHigh, DefaultStartDepth, DefaultStep)
		if err != nil {
			t.Fatal(err)
		}
		if len(rings) != 0 {
			t.Errorf("want no rings but have %d", len(rings))
		}
	})
	t.Run("no water demand", func(t *testing.T) {
		if _, err := (NHBCRings{}).GenerateRings(Tree{Height: 5}, ShrinkageHigh, 1, 0.3); err == nil {
			t.Error("want error")
		}
	})
}

func TestMergeLayers(t *testing.T) {
	c := NewClusterer(NHBCRings{})

	t.Run("separate", func(t *testing.T) {
		rings := [][]geometry.Curve{{circle(0, 0, 1)}, {circle(10, 0, 1)}}
		layers, err := c.MergeLayers(rings)
		if err != nil {
			t.Fatal(err)
		}
		if len(layers) != 1 || len(layers[0].Zones) != 2 {
			t.Fatalf("layers = %+v", layers)
		}
		for i, z := range layers[0].Zones {
			if !reflect.DeepEqual(z.Members, []int{i}) {
				t.Errorf("zone %d members %v", i, z.Members)
			}
			if want := regionArea(t, rings[i][0]); different(z.Area, want, 1e-9) {
				t.Errorf("zone %d: want area %g but have %g", i, want, z.Area)
			}
		}
	})

	t.Run("intersecting", func(t *testing.T) {
		rings := [][]geometry.Curve{{circle(0, 0, 1)}, {circle(1.5, 0, 1.2)}}
		layers, err := c.MergeLayers(rings)
		if err != nil {
			t.Fatal(err)
		}
		if len(layers[0].Zones) != 1 {
			t.Fatalf("want 1 zone but have %d", len(layers[0].Zones))
		}
		z := layers[0].Zones[0]
		if !reflect.DeepEqual(z.Members, []int{0, 1}) {
			t.Errorf("members %v", z.Members)
		}
		a, b := regionArea(t, rings[0][0]), regionArea(t, rings[1][0])
		if z.Area < math.Max(a, b) || z.Area >= a+b {
			t.Errorf("merged area %g should be between %g and %g", z.Area, math.Max(a, b), a+b)
		}
	})

	t.Run("transitive", func(t *testing.T) {
		// The outer rings only reach each other through the middle one.
		rings := [][]geometry.Curve{{circle(0, 0, 1)}, {circle(6, 0, 1)}, {circle(3, 0, 2.5)}}
		layers, err := c.MergeLayers(rings)
		if err != nil {
			t.Fatal(err)
		}
		if len(layers[0].Zones) != 1 {
			t.Fatalf("want 1 zone but have %d", len(layers[0].Zones))
		}
		if m := layers[0].Zones[0].Members; !reflect.DeepEqual(m, []int{0, 1, 2}) {
			t.Errorf("members %v", m)
		}
	})

	t.Run("nested", func(t *testing.T) {
		rings := [][]geometry.Curve{{circle(0, 0, 1)}, {circle(0.5, 0, 3)}}
		layers, err := c.MergeLayers(rings)
		if err != nil {
			t.Fatal(err)
		}
		if len(layers[0].Zones) != 2 {
			t.Errorf("rings that do not cross should stay apart, have %d zones", len(layers[0].Zones))
		}
	})

	t.Run("uneven ring counts", func(t *testing.T) {
		rings := [][]geometry.Curve{
			{circle(0, 0, 1), circle(0, 0, 2)},
			{circle(1, 0, 0.5)},
			nil,
		}
		layers, err := c.MergeLayers(rings)
		if err != nil {
			t.Fatal(err)
		}
		if len(layers) != 2 {
			t.Fatalf("want 2 layers but have %d", len(layers))
		}
		if m := layers[0].Zones[0].Members; !reflect.DeepEqual(m, []int{0, 1}) {
			t.Errorf("layer 0 members %v", m)
		}
		if len(layers[1].Zones) != 1 || !reflect.DeepEqual(layers[1].Zones[0].Members, []int{0}) {
			t.Errorf("layer 1 = %+v", layers[1])
		}
		if layers[1].Index != 1 {
			t.Errorf("layer index %d", layers[1].Index)
		}
	})

	t.Run("degenerate ring", func(t *testing.T) {
		if _, err := c.MergeLayers([][]geometry.Curve{{circle(0, 0, 0)}}); err == nil {
			t.Error("zero radius ring should fail")
		}
	})
}

func TestDraw(t *testing.T) {
	s := NewSite()
	s.Trees = []Tree{
		{Location: geometry.Point2{X: 0, Y: 0}, Height: 8, WaterDemand: WaterDemandHigh, TreeType: Deciduous},
		{Location: geometry.Point2{X: 10, Y: 0}, Height: 6, WaterDemand: WaterDemandModerate, TreeType: Coniferous},
		{Location: geometry.Point2{X: 0, Y: 40}, Height: 4, WaterDemand: WaterDemandLow, TreeType: Deciduous},
	}
	sink := drawing.NewMemorySink()
	layers, err := NewClusterer(NHBCRings{}).Draw(s, sink)
	if err != nil {
		t.Fatal(err)
	}
	if len(layers) != 4 {
		t.Fatalf("want 4 layers but have %d", len(layers))
	}
	batches := sink.Batches()
	if len(batches) != len(layers) {
		t.Fatalf("want %d batches but have %d", len(layers), len(batches))
	}
	// The outermost rings of the first two trees are 8 and 3.6 m and cross.
	if m := layers[3].Zones; len(m) != 2 || !reflect.DeepEqual(m[0].Members, []int{0, 1}) {
		t.Errorf("outer layer zones %+v", m)
	}
	for i := 0; i < 3; i++ {
		if n := len(layers[i].Zones); n != 3 {
			t.Errorf("layer %d: want 3 zones but have %d", i, n)
		}
	}
	for i, b := range batches {
		if b.Len() != len(layers[i].Zones) {
			t.Errorf("batch %d has %d entities for %d zones", i, b.Len(), len(layers[i].Zones))
		}
	}
	if l := sink.Layers(); len(l) != 1 || l[0] != TreeRingsLayer {
		t.Errorf("layers = %v", l)
	}
}

func TestUnmarshalText(t *testing.T) {
	var s Shrinkage
	if err := s.UnmarshalText([]byte("Medium")); err != nil || s != ShrinkageMedium {
		t.Errorf("have %v, %v", s, err)
	}
	var w WaterDemand
	if err := w.UnmarshalText([]byte("moderate")); err != nil || w != WaterDemandModerate {
		t.Errorf("have %v, %v", w, err)
	}
	var tt TreeType
	if err := tt.UnmarshalText([]byte("CONIFEROUS")); err != nil || tt != Coniferous {
		t.Errorf("have %v, %v", tt, err)
	}
	if err := s.UnmarshalText([]byte("sandy")); err == nil {
		t.Error("want error")
	}
}
