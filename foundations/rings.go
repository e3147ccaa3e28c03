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

	"github.com/jppcivil/civils/geometry"
)

// depthTolerance is used when comparing ring depths to the zone limits, in
// m.
const depthTolerance = 1e-9

// RingProducer produces the depth rings of a tree. Ring i of every tree
// must be for the same foundation depth so that rings can be merged layer
// by layer.
type RingProducer interface {
	GenerateRings(t Tree, s Shrinkage, startDepth, step float64) ([]geometry.Curve, error)
}

// NHBCRings produces rings following the NHBC Standards chapter 4.2
// simplification: the required foundation depth falls linearly from its
// maximum at the trunk to its minimum at the edge of the zone of influence.
type NHBCRings struct{}

// zoneFactor gives the radius of the zone of influence as a multiple of
// tree height.
var zoneFactor = map[WaterDemand]float64{
	WaterDemandHigh:     1.25,
	WaterDemandModerate: 0.75,
	WaterDemandLow:      0.5,
}

// depthRange gives the foundation depth at the trunk and at the edge of
// the zone of influence, in m.
var depthRange = map[Shrinkage][2]float64{
	ShrinkageHigh:   {2.5, 1.0},
	ShrinkageMedium: {2.0, 0.9},
	ShrinkageLow:    {1.5, 0.75},
}

// ZoneOfInfluence returns the radius around t within which foundations
// must be deepened.
func (NHBCRings) ZoneOfInfluence(t Tree) (float64, error) {
	f, ok := zoneFactor[t.WaterDemand]
	if !ok {
		return 0, fmt.Errorf("foundations: invalid water demand %v", t.WaterDemand)
	}
	if !(t.Height >= 0) {
		return 0, fmt.Errorf("foundations: invalid tree height %g", t.Height)
	}
	return t.Height * f, nil
}

// Depths returns the ring depths for soil s, deepest first.
func (NHBCRings) Depths(s Shrinkage, startDepth, step float64) ([]float64, error) {
	r, ok := depthRange[s]
	if !ok {
		return nil, fmt.Errorf("foundations: invalid soil shrinkage %v", s)
	}
	if !(step > 0) {
		return nil, fmt.Errorf("foundations: ring step %g must be positive", step)
	}
	max, min := r[0], r[1]
	var depths []float64
	for k := 0; ; k++ {
		d := startDepth + float64(k)*step
		if d >= max-depthTolerance {
			break
		}
		if d > min+depthTolerance {
			depths = append([]float64{d}, depths...)
		}
	}
	return depths, nil
}

// GenerateRings returns one circle around t for each ring depth, innermost
// first. A tree with no height has no rings.
func (n NHBCRings) GenerateRings(t Tree, s Shrinkage, startDepth, step float64) ([]geometry.Curve, error) {
	z, err := n.ZoneOfInfluence(t)
	if err != nil {
		return nil, err
	}
	depths, err := n.Depths(s, startDepth, step)
	if err != nil {
		return nil, err
	}
	if z == 0 {
		return nil, nil
	}
	max, min := depthRange[s][0], depthRange[s][1]
	rings := make([]geometry.Curve, len(depths))
	for i, d := range depths {
		rings[i] = geometry.NewCircle(t.Location, z*(max-d)/(max-min))
	}
	return rings, nil
}
