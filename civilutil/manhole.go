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


package civilutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/jppcivil/civils/drainage"
	"github.com/jppcivil/civils/geometry"
	"github.com/sirupsen/logrus"
)

// readSchedule reads the manhole and pipe schedule files and fills in
// the default minimum benching widths. Row failures are logged.
func readSchedule(manholes, pipes string, minor, major int) (*drainage.ScheduleResult, error) {
	manholes, err := checkInputFile("Manholes", manholes)
	if err != nil {
		return nil, err
	}
	pipes, err = checkInputFile("Pipes", pipes)
	if err != nil {
		return nil, err
	}
	mf, err := os.Open(manholes)
	if err != nil {
		return nil, fmt.Errorf("civils: opening manhole schedule: %v", err)
	}
	defer mf.Close()
	pf, err := os.Open(pipes)
	if err != nil {
		return nil, fmt.Errorf("civils: opening pipe schedule: %v", err)
	}
	defer pf.Close()

	res, err := drainage.ReadSchedule(mf, pf)
	if err != nil {
		return nil, err
	}
	for _, err := range res.Failures {
		logrus.WithError(err).Warn("skipped schedule row")
	}
	for _, set := range [][]*drainage.Manhole{res.Manholes, res.Excluded} {
		for _, m := range set {
			if m.MinimumMinorBenching == 0 {
				m.MinimumMinorBenching = minor
			}
			if m.MinimumMajorBenching == 0 {
				m.MinimumMajorBenching = major
			}
		}
	}
	for _, m := range res.Excluded {
		logrus.WithFields(logrus.Fields{
			"manhole":  m.Name,
			"diameter": m.Diameter,
		}).Info("manhole is not adoptable and will not be drawn")
	}
	return res, nil
}

// Plan draws a plan detail for each adoptable manhole in the schedule
// files, spacing them along +X. Manholes that fail are logged and the rest
// are still drawn; the returned error then reports how many failed.
func Plan(manholes, pipes, output string, minor, major int, spacing float64) error {
	res, err := readSchedule(manholes, pipes, minor, major)
	if err != nil {
		return err
	}
	sink, closeSink, err := openSink(output)
	if err != nil {
		return err
	}
	g := drainage.NewGenerator(drainage.AdoptableStandard{})
	var failed int
	for i, m := range res.Manholes {
		plan, err := g.GeneratePlan(m, geometry.Point2{X: float64(i) * spacing})
		if err == nil {
			err = sink.Commit(plan.Batch)
		}
		if err != nil {
			logrus.WithError(err).WithField("manhole", m.Name).Error("manhole could not be drawn")
			failed++
		}
	}
	if err := closeSink(); err != nil {
		return fmt.Errorf("civils: writing %s: %v", output, err)
	}
	if failed > 0 {
		return fmt.Errorf("civils: %d of %d manholes could not be drawn", failed, len(res.Manholes))
	}
	return nil
}

// Schedule writes the schedule table of every manhole in the schedule
// files as CSV to output, or to w if output is empty. The first column
// holds the row labels and there is one further column per manhole.
func Schedule(w io.Writer, manholes, pipes, output string, minor, major int) error {
	res, err := readSchedule(manholes, pipes, minor, major)
	if err != nil {
		return err
	}
	if output != "" {
		output, err = checkOutputFile(output)
		if err != nil {
			return err
		}
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("civils: creating schedule file: %v", err)
		}
		defer f.Close()
		w = f
	}
	all := append(append([]*drainage.Manhole{}, res.Manholes...), res.Excluded...)
	if len(all) == 0 {
		return fmt.Errorf("civils: there are no manholes in %s", manholes)
	}
	var table [][]string
	for i, m := range all {
		for j, r := range m.ScheduleRows() {
			if i == 0 {
				table = append(table, []string{r.Label})
			}
			table[j] = append(table[j], r.Value)
		}
	}
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(table); err != nil {
		return fmt.Errorf("civils: writing schedule: %v", err)
	}
	return nil
}
