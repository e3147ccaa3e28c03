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
)

// Verifier decides whether a manhole meets an engineering standard.
type Verifier interface {
	// VerifyManhole returns nil if m is acceptable and otherwise an error
	// giving the reason.
	VerifyManhole(m *Manhole) error
}

// VerifierFunc adapts a function to the Verifier interface.
type VerifierFunc func(m *Manhole) error

// VerifyManhole calls f(m).
func (f VerifierFunc) VerifyManhole(m *Manhole) error { return f(m) }

// MinAdoptableDiameter is the smallest chamber diameter, in mm, that can be
// adopted by the sewerage undertaker.
const MinAdoptableDiameter = 1200

// AdoptableStandard accepts manholes that are built from standard rings,
// are large enough for adoption, have positive benching minimums and a
// cover above the invert.
type AdoptableStandard struct{}

// VerifyManhole implements Verifier.
func (AdoptableStandard) VerifyManhole(m *Manhole) error {
	const op = "drainage.VerifyManhole"
	if _, err := WallThickness(m.Diameter); err != nil {
		return err
	}
	if m.Diameter < MinAdoptableDiameter {
		return civils.E(civils.EngineeringStandardViolation, op,
			"manhole %s: %d mm chamber is below the adoptable minimum of %d mm", m.Name, m.Diameter, MinAdoptableDiameter)
	}
	if m.MinimumMinorBenching <= 0 || m.MinimumMajorBenching <= 0 {
		return civils.E(civils.EngineeringStandardViolation, op,
			"manhole %s: minimum benching must be positive", m.Name)
	}
	if m.MinimumMajorBenching < m.MinimumMinorBenching {
		return civils.E(civils.EngineeringStandardViolation, op,
			"manhole %s: minimum major benching %d mm is less than minimum minor benching %d mm",
			m.Name, m.MinimumMajorBenching, m.MinimumMinorBenching)
	}
	if !(m.CoverLevel > m.InvertLevel) {
		return civils.E(civils.EngineeringStandardViolation, op,
			"manhole %s: cover level %g is not above invert level %g", m.Name, m.CoverLevel, m.InvertLevel)
	}
	for _, p := range append([]PipeConnection{m.Outgoing}, m.IncomingPipes...) {
		if p.Diameter <= 0 {
			return civils.E(civils.EngineeringStandardViolation, op,
				"manhole %s: pipe %q has no diameter", m.Name, p.Code)
		}
		if p.Diameter >= m.Diameter {
			return civils.E(civils.EngineeringStandardViolation, op,
				"manhole %s: pipe %q (%d mm) does not fit a %d mm chamber", m.Name, p.Code, p.Diameter, m.Diameter)
		}
	}
	return nil
}

func (AdoptableStandard) String() string { return fmt.Sprintf("adoptable (>= %d mm)", MinAdoptableDiameter) }
