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


// Package foundations works out where trees near a building increase the
// required foundation depth. Each tree produces a set of rings, one per
// depth, and rings of the same depth that cross each other are merged into
// a single zone of influence.
package foundations

import (
	"fmt"
	"strings"

	"github.com/jppcivil/civils/geometry"
)

// Shrinkage is the volume change potential of a clay soil.
type Shrinkage int

// Soil shrinkage classes.
const (
	ShrinkageLow Shrinkage = iota + 1
	ShrinkageMedium
	ShrinkageHigh
)

var shrinkageNames = map[Shrinkage]string{
	ShrinkageLow:    "low",
	ShrinkageMedium: "medium",
	ShrinkageHigh:   "high",
}

func (s Shrinkage) String() string {
	if n, ok := shrinkageNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Shrinkage(%d)", int(s))
}

// UnmarshalText allows shrinkage classes to be given by name in site files.
func (s *Shrinkage) UnmarshalText(text []byte) error {
	for k, n := range shrinkageNames {
		if strings.EqualFold(string(text), n) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("foundations: invalid soil shrinkage %q", text)
}

// WaterDemand is the water demand of a tree species.
type WaterDemand int

// Tree water demand classes.
const (
	WaterDemandLow WaterDemand = iota + 1
	WaterDemandModerate
	WaterDemandHigh
)

var waterDemandNames = map[WaterDemand]string{
	WaterDemandLow:      "low",
	WaterDemandModerate: "moderate",
	WaterDemandHigh:     "high",
}

func (w WaterDemand) String() string {
	if n, ok := waterDemandNames[w]; ok {
		return n
	}
	return fmt.Sprintf("WaterDemand(%d)", int(w))
}

// UnmarshalText allows water demand to be given by name in site files.
func (w *WaterDemand) UnmarshalText(text []byte) error {
	for k, n := range waterDemandNames {
		if strings.EqualFold(string(text), n) {
			*w = k
			return nil
		}
	}
	return fmt.Errorf("foundations: invalid water demand %q", text)
}

// TreeType is whether a tree is broad leafed or coniferous.
type TreeType int

// Tree types.
const (
	Deciduous TreeType = iota + 1
	Coniferous
)

var treeTypeNames = map[TreeType]string{
	Deciduous:  "deciduous",
	Coniferous: "coniferous",
}

func (t TreeType) String() string {
	if n, ok := treeTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("TreeType(%d)", int(t))
}

// UnmarshalText allows tree types to be given by name in site files.
func (t *TreeType) UnmarshalText(text []byte) error {
	for k, n := range treeTypeNames {
		if strings.EqualFold(string(text), n) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("foundations: invalid tree type %q", text)
}

// Tree is a tree on or next to the site.
type Tree struct {
	// Name is an optional reference from the tree survey.
	Name string `toml:"name"`

	Location geometry.Point2 `toml:"location"`

	// Height is the mature height in m.
	Height float64 `toml:"height"`

	WaterDemand WaterDemand `toml:"water_demand"`
	TreeType    TreeType    `toml:"type"`
}

// Site holds the foundation design state of a site.
type Site struct {
	// GroundBearingPressure is the allowable bearing pressure in kN/m².
	GroundBearingPressure int `toml:"ground_bearing_pressure"`

	// DefaultWidth is the default strip foundation width in m.
	DefaultWidth float64 `toml:"default_width"`

	// StartDepth and Step set the foundation depths, in m, at which rings
	// are drawn.
	StartDepth float64 `toml:"start_depth"`
	Step       float64 `toml:"step"`

	SoilShrinkage Shrinkage `toml:"soil_shrinkage"`

	Trees []Tree `toml:"trees"`
}

// Defaults for new sites.
const (
	DefaultStartDepth = 1.0
	DefaultStep       = 0.3
)

// NewSite returns a site with the default ring depths on high shrinkage
// soil.
func NewSite() *Site {
	return &Site{
		StartDepth:    DefaultStartDepth,
		Step:          DefaultStep,
		SoilShrinkage: ShrinkageHigh,
	}
}

// Validate checks that the site can produce tree rings.
func (s *Site) Validate() error {
	if !(s.Step > 0) {
		return fmt.Errorf("foundations: ring step %g must be positive", s.Step)
	}
	if _, ok := shrinkageNames[s.SoilShrinkage]; !ok {
		return fmt.Errorf("foundations: invalid soil shrinkage %v", s.SoilShrinkage)
	}
	for i, t := range s.Trees {
		if !(t.Height >= 0) {
			return fmt.Errorf("foundations: tree %d has invalid height %g", i, t.Height)
		}
		if _, ok := waterDemandNames[t.WaterDemand]; !ok {
			return fmt.Errorf("foundations: tree %d has invalid water demand %v", i, t.WaterDemand)
		}
	}
	return nil
}
