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
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jppcivil/civils"
	"github.com/jppcivil/civils/geometry"
	"github.com/spf13/cast"
)

// Manhole schedule columns.
const (
	colName             = 0
	colDiameter         = 1
	colOutgoingCode     = 5
	colOutgoingDiameter = 7
	colFirstIncoming    = 9

	// Each incoming pipe takes one group of columns: code, -, angle,
	// diameter, -.
	incomingGroupWidth = 5
	incomingAngle      = 2
	incomingDiameter   = 3
)

// Pipe schedule columns.
const (
	colPipeManhole = 1
	colPipeInvert  = 8
	colPipeCover   = 10
)

// ScheduleReach is the distance from the intersection point at which
// imported pipes are placed.
const ScheduleReach = 1500

// ScheduleResult is the outcome of reading a manhole schedule.
type ScheduleResult struct {
	// Manholes can be generated.
	Manholes []*Manhole

	// Excluded are below the adoptable diameter and are not generated.
	Excluded []*Manhole

	// Failures holds one ScheduleParseError for each row that could not be
	// read.
	Failures []error
}

// ReadSchedule reads a manhole schedule and its companion pipe schedule,
// both CSV files with one header line. A malformed row is reported in
// Failures and the remaining rows are still read. The returned error is
// only non-nil if a file cannot be read at all.
func ReadSchedule(manholes, pipes io.Reader) (*ScheduleResult, error) {
	res := new(ScheduleResult)
	levels, err := readPipeLevels(pipes, res)
	if err != nil {
		return nil, err
	}
	err = eachRow(manholes, "manhole schedule", res, func(line int, cols []string) error {
		m, err := parseManhole(cols)
		if err != nil {
			return err
		}
		if l, ok := levels[m.Name]; ok {
			m.InvertLevel, m.CoverLevel = l.invert, l.cover
		}
		if m.Diameter < MinAdoptableDiameter {
			res.Excluded = append(res.Excluded, m)
		} else {
			res.Manholes = append(res.Manholes, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

type pipeLevels struct {
	invert, cover float64
}

func readPipeLevels(r io.Reader, res *ScheduleResult) (map[string]pipeLevels, error) {
	levels := make(map[string]pipeLevels)
	err := eachRow(r, "pipe schedule", res, func(line int, cols []string) error {
		if len(cols) <= colPipeCover {
			return fmt.Errorf("have %d columns but need %d", len(cols), colPipeCover+1)
		}
		name := strings.TrimSpace(cols[colPipeManhole])
		if _, ok := levels[name]; ok {
			return fmt.Errorf("manhole %q is listed more than once", name)
		}
		var l pipeLevels
		var err error
		if l.invert, err = cast.ToFloat64E(strings.TrimSpace(cols[colPipeInvert])); err != nil {
			return fmt.Errorf("invert level: %v", err)
		}
		if l.cover, err = cast.ToFloat64E(strings.TrimSpace(cols[colPipeCover])); err != nil {
			return fmt.Errorf("cover level: %v", err)
		}
		levels[name] = l
		return nil
	})
	return levels, err
}

// eachRow calls f for every row after the header. Errors from f, and rows
// the CSV reader rejects, are added to res.Failures.
func eachRow(r io.Reader, file string, res *ScheduleResult, f func(line int, cols []string) error) error {
	const op = "drainage.ReadSchedule"
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	line := 0
	for {
		cols, err := cr.Read()
		line++
		if err == io.EOF {
			return nil
		}
		if err != nil {
			if _, ok := err.(*csv.ParseError); ok {
				res.Failures = append(res.Failures, civils.E(civils.ScheduleParseError, op, "%s line %d: %v", file, line, err))
				continue
			}
			return fmt.Errorf("drainage: reading %s: %v", file, err)
		}
		if line == 1 {
			continue
		}
		if err := f(line, cols); err != nil {
			res.Failures = append(res.Failures, civils.E(civils.ScheduleParseError, op, "%s line %d: %v", file, line, err))
		}
	}
}

// parseManhole reads one manhole schedule row. Pipes are placed
// ScheduleReach from the origin: the outgoing pipe on -Y and each incoming
// pipe rotated clockwise from it by its angle.
func parseManhole(cols []string) (*Manhole, error) {
	if len(cols) <= colOutgoingDiameter {
		return nil, fmt.Errorf("have %d columns but need at least %d", len(cols), colOutgoingDiameter+1)
	}
	m := &Manhole{Name: strings.TrimSpace(cols[colName])}
	if m.Name == "" {
		return nil, fmt.Errorf("manhole has no name")
	}
	var err error
	if m.Diameter, err = cast.ToIntE(strings.TrimSpace(cols[colDiameter])); err != nil {
		return nil, fmt.Errorf("manhole %s: diameter: %v", m.Name, err)
	}
	out := geometry.Point2{Y: -ScheduleReach}
	m.Outgoing = PipeConnection{Code: strings.TrimSpace(cols[colOutgoingCode]), Location: out}
	if m.Outgoing.Diameter, err = cast.ToIntE(strings.TrimSpace(cols[colOutgoingDiameter])); err != nil {
		return nil, fmt.Errorf("manhole %s: outgoing diameter: %v", m.Name, err)
	}

	for c := colFirstIncoming; c < len(cols); c += incomingGroupWidth {
		code := strings.TrimSpace(cols[c])
		if code == "" {
			break
		}
		if c+incomingDiameter >= len(cols) {
			return nil, fmt.Errorf("manhole %s: incoming pipe %q is missing its angle or diameter", m.Name, code)
		}
		in := PipeConnection{Code: code}
		if in.Angle, err = cast.ToFloat64E(strings.TrimSpace(cols[c+incomingAngle])); err != nil {
			return nil, fmt.Errorf("manhole %s: incoming pipe %q angle: %v", m.Name, code, err)
		}
		if in.Diameter, err = cast.ToIntE(strings.TrimSpace(cols[c+incomingDiameter])); err != nil {
			return nil, fmt.Errorf("manhole %s: incoming pipe %q diameter: %v", m.Name, code, err)
		}
		in.Location = geometry.Point2{}.Add(out.AsVector().Rotate(-in.Angle))
		m.IncomingPipes = append(m.IncomingPipes, in)
	}
	return m, nil
}
