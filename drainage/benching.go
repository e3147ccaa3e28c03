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

	"github.com/jppcivil/civils"
	"github.com/jppcivil/civils/geometry"
)

// BenchingSide names one side of the channel.
type BenchingSide int

const (
	// BenchingMinor is the narrower benching.
	BenchingMinor BenchingSide = iota + 1
	// BenchingMajor is the wider benching.
	BenchingMajor
)

func (s BenchingSide) String() string {
	switch s {
	case BenchingMinor:
		return "minor"
	case BenchingMajor:
		return "major"
	}
	return fmt.Sprintf("BenchingSide(%d)", int(s))
}

// BenchingError reports a benching width below its minimum.
type BenchingError struct {
	Side    BenchingSide
	Have    float64
	Minimum int
}

func (e *BenchingError) Error() string {
	return fmt.Sprintf("%s benching %.1f mm does not meet the minimum of %d mm", e.Side, e.Have, e.Minimum)
}

// Benching is the benching either side of the channel along the step
// centreline. Major and Minor run from the channel to the chamber wall.
type Benching struct {
	Major, Minor geometry.Vector2

	// Centre is the chamber centre that gives this benching.
	Centre geometry.Point2

	// Shifts is the number of times the chamber was moved to meet the
	// minimums.
	Shifts int
}

// BenchingVectors intersects the step centreline, extended both ways, with
// the inner chamber ring. It returns the vectors from the start of step to
// the two crossings, longest first.
func BenchingVectors(step *geometry.Polyline, ring *geometry.Circle) (major, minor geometry.Vector2, err error) {
	hits := geometry.Intersect(step, ring, geometry.ExtendFirst)
	if len(hits) < 2 {
		return major, minor, civils.E(civils.GeometryDegenerate, "drainage.BenchingVectors",
			"step centreline crosses the chamber ring %d times", len(hits))
	}
	channel := step.StartPoint()
	minor, major = channel.VectorTo(hits[0]), channel.VectorTo(hits[1])
	if major.Length() < minor.Length()-geometry.Tolerance {
		major, minor = minor, major
	}
	return major, minor, nil
}

// deficient reports whether have falls short of min.
func deficient(have float64, min int) bool {
	return have < float64(min)-geometry.Tolerance
}

// CalculateBenching checks the benching of ring along step against the
// minimums of m. A short minor benching is fixed by moving the chamber
// toward it by the shortfall. If the major benching is then short and the
// minor benching has width to spare, the chamber is moved once toward the
// major side by the major shortfall. Any remaining shortfall is an
// EngineeringStandardViolation wrapping a *BenchingError.
//
// ring is not modified. Calling CalculateBenching again with a ring at the
// returned centre gives the same result with no further shifts.
func (m *Manhole) CalculateBenching(step *geometry.Polyline, ring *geometry.Circle) (*Benching, error) {
	const op = "drainage.CalculateBenching"
	r := *ring
	major, minor, err := BenchingVectors(step, &r)
	if err != nil {
		return nil, err
	}
	b := &Benching{Major: major, Minor: minor, Centre: r.Center}
	fail := func(side BenchingSide, have float64, min int) error {
		return civils.Wrap(civils.EngineeringStandardViolation, op, fmt.Errorf("manhole %s: %w", m.Name,
			&BenchingError{Side: side, Have: have, Minimum: min}))
	}
	shift := func(toward geometry.Vector2, by float64) error {
		r.Center = r.Center.Add(toward.Unit().Scale(by))
		b.Shifts++
		major, minor, err = BenchingVectors(step, &r)
		if err != nil {
			return err
		}
		b.Major, b.Minor, b.Centre = major, minor, r.Center
		return nil
	}

	if l := minor.Length(); deficient(l, m.MinimumMinorBenching) {
		if err := shift(minor, float64(m.MinimumMinorBenching)-l); err != nil {
			return nil, err
		}
		// Moving toward a short side can only help if the chamber is wide
		// enough for it.
		if l := minor.Length(); deficient(l, m.MinimumMinorBenching) {
			return nil, fail(BenchingMinor, l, m.MinimumMinorBenching)
		}
	}
	if l := major.Length(); deficient(l, m.MinimumMajorBenching) {
		if minor.Length() <= float64(m.MinimumMinorBenching)+geometry.Tolerance {
			return nil, fail(BenchingMajor, l, m.MinimumMajorBenching)
		}
		if err := shift(major, float64(m.MinimumMajorBenching)-l); err != nil {
			return nil, err
		}
		if l := minor.Length(); deficient(l, m.MinimumMinorBenching) {
			return nil, fail(BenchingMinor, l, m.MinimumMinorBenching)
		}
		if l := major.Length(); deficient(l, m.MinimumMajorBenching) {
			return nil, fail(BenchingMajor, l, m.MinimumMajorBenching)
		}
	}
	return b, nil
}
