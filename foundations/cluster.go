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
	"fmt"
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"github.com/jppcivil/civils"
	"github.com/jppcivil/civils/drawing"
	"github.com/jppcivil/civils/geometry"
	"github.com/sirupsen/logrus"
)

// TreeRingsLayer is the drawing layer merged zones are drawn on.
var TreeRingsLayer = drawing.Layer{Name: "JPP_Civil_Foundations_TreeRings", Color: 3}

// Clusterer merges the rings of neighbouring trees.
type Clusterer struct {
	Producer RingProducer

	Log logrus.FieldLogger
}

// NewClusterer returns a clusterer that gets tree rings from p.
func NewClusterer(p RingProducer) *Clusterer {
	return &Clusterer{Producer: p, Log: logrus.StandardLogger()}
}

// Layer holds the merged zones of one ring depth.
type Layer struct {
	// Index is the ring index the layer was built from.
	Index int

	Zones []Zone
}

// Zone is a group of rings that cross each other, directly or through
// other rings in the group.
type Zone struct {
	// Members holds the indices of the trees whose rings are in the zone,
	// in ascending order.
	Members []int

	// Boundary is the union of the member rings.
	Boundary geom.Polygonal

	Area float64
}

// Merge produces the rings of every tree on s and merges them.
func (c *Clusterer) Merge(s *Site) ([]Layer, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	rings := make([][]geometry.Curve, len(s.Trees))
	for i, t := range s.Trees {
		r, err := c.Producer.GenerateRings(t, s.SoilShrinkage, s.StartDepth, s.Step)
		if err != nil {
			return nil, fmt.Errorf("foundations: tree %d: %v", i, err)
		}
		rings[i] = r
	}
	return c.MergeLayers(rings)
}

// MergeLayers merges rings[tree][depth index] layer by layer. Trees may
// have different numbers of rings; a tree takes part only in the layers it
// has a ring for.
func (c *Clusterer) MergeLayers(rings [][]geometry.Curve) ([]Layer, error) {
	n := 0
	for _, r := range rings {
		if len(r) > n {
			n = len(r)
		}
	}
	layers := make([]Layer, n)
	for i := 0; i < n; i++ {
		l, err := c.mergeLayer(i, rings)
		if err != nil {
			return nil, err
		}
		layers[i] = *l
	}
	return layers, nil
}

// ring is a tree ring held in the spatial index.
type ring struct {
	geom.Polygon

	curve geometry.Curve

	// tree is the index of the tree the ring belongs to and pos is the
	// ring's position in the layer.
	tree, pos int
}

// Bounds returns the bounds of the exact curve rather than of its polygon
// approximation.
func (r *ring) Bounds() *geom.Bounds { return r.curve.Bounds() }

func (c *Clusterer) mergeLayer(index int, rings [][]geometry.Curve) (*Layer, error) {
	const op = "merge tree rings"
	var members []*ring
	tree := rtree.NewTree(25, 50)
	for t, r := range rings {
		if index >= len(r) {
			continue
		}
		region, err := r[index].Region()
		if err != nil {
			return nil, civils.Wrap(civils.GeometryDegenerate, op,
				fmt.Errorf("tree %d ring %d: %v", t, index, err))
		}
		m := &ring{Polygon: region, curve: r[index], tree: t, pos: len(members)}
		members = append(members, m)
		tree.Insert(m)
	}

	sets := newDisjointSet(len(members))
	for _, a := range members {
		for _, g := range tree.SearchIntersect(a.Bounds()) {
			b := g.(*ring)
			if b.pos <= a.pos || sets.find(a.pos) == sets.find(b.pos) {
				continue
			}
			if len(geometry.Intersect(a.curve, b.curve, geometry.ExtendNone)) > 0 {
				sets.union(a.pos, b.pos)
			}
		}
	}

	groups := make(map[int][]*ring)
	var roots []int
	for _, m := range members {
		r := sets.find(m.pos)
		if _, ok := groups[r]; !ok {
			roots = append(roots, r)
		}
		groups[r] = append(groups[r], m)
	}

	l := &Layer{Index: index, Zones: make([]Zone, len(roots))}
	for i, r := range roots {
		g := groups[r]
		var merged geom.Polygonal = g[0].Polygon
		z := Zone{Members: make([]int, len(g))}
		for j, m := range g {
			z.Members[j] = m.tree
			if j > 0 {
				merged = merged.Union(m.Polygon)
			}
		}
		sort.Ints(z.Members)
		z.Boundary = merged
		z.Area = merged.Area()
		l.Zones[i] = z
	}
	c.Log.WithFields(logrus.Fields{
		"layer": index,
		"rings": len(members),
		"zones": len(l.Zones),
	}).Debug("merged tree rings")
	return l, nil
}

// LayerBatch returns the zones of l as region entities ready to commit.
func LayerBatch(l Layer) *drawing.Batch {
	b := drawing.NewBatch(fmt.Sprintf("tree rings %d", l.Index))
	b.DeclareLayer(TreeRingsLayer)
	for _, z := range l.Zones {
		b.Add(&drawing.Region{Layer: TreeRingsLayer.Name, Boundary: z.Boundary})
	}
	return b
}

// Draw merges the rings of s and commits them to sink one layer at a time.
// If a commit fails the layers already committed are kept and the rest are
// not drawn.
func (c *Clusterer) Draw(s *Site, sink drawing.Sink) ([]Layer, error) {
	layers, err := c.Merge(s)
	if err != nil {
		return nil, err
	}
	for i, l := range layers {
		if err := sink.Commit(LayerBatch(l)); err != nil {
			return layers[:i], err
		}
	}
	c.Log.WithFields(logrus.Fields{
		"trees":  len(s.Trees),
		"layers": len(layers),
	}).Info("drew tree rings")
	return layers, nil
}

// disjointSet is a union-find structure over 0..n-1.
type disjointSet struct {
	parent, rank []int
}

func newDisjointSet(n int) *disjointSet {
	s := &disjointSet{parent: make([]int, n), rank: make([]int, n)}
	for i := range s.parent {
		s.parent[i] = i
	}
	return s
}

func (s *disjointSet) find(i int) int {
	for s.parent[i] != i {
		s.parent[i] = s.parent[s.parent[i]]
		i = s.parent[i]
	}
	return i
}

func (s *disjointSet) union(i, j int) {
	ri, rj := s.find(i), s.find(j)
	switch {
	case ri == rj:
		return
	case s.rank[ri] < s.rank[rj]:
		s.parent[ri] = rj
	case s.rank[ri] > s.rank[rj]:
		s.parent[rj] = ri
	default:
		s.parent[rj] = ri
		s.rank[ri]++
	}
}
