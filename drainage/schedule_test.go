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
	"errors"
	"strings"
	"testing"

	"github.com/jppcivil/civils"
	"github.com/jppcivil/civils/geometry"
	"github.com/kr/pretty"
)

const testPipeSchedule = `Ref,Manhole,a,b,c,d,e,f,Invert,g,Cover
1,MH1,,,,,,,100.25,,101.75
2,MH3,,,,,,,99.5,,100.9
3,MH4,,,,,,,not a level,,100
`

func TestReadScheduleImportExample(t *testing.T) {
	manholes := "name,diameter,,,,out,,outdia,,in,,angle,dia,\n" +
		"MH1,1200,,,,OUT1,,150,,IN1,,90,150,\n"
	res, err := ReadSchedule(strings.NewReader(manholes), strings.NewReader(testPipeSchedule))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Manholes) != 1 {
		t.Fatalf("have %d manholes; failures %v", len(res.Manholes), res.Failures)
	}
	m := res.Manholes[0]
	if m.Name != "MH1" || m.Diameter != 1200 || m.InvertLevel != 100.25 || m.CoverLevel != 101.75 {
		t.Errorf("manhole = %# v", pretty.Formatter(m))
	}
	if m.Outgoing.Code != "OUT1" || m.Outgoing.Diameter != 150 || m.Outgoing.Location != (geometry.Point2{Y: -1500}) {
		t.Errorf("outgoing = %+v", m.Outgoing)
	}
	if len(m.IncomingPipes) != 1 {
		t.Fatalf("have %d incoming pipes", len(m.IncomingPipes))
	}
	in := m.IncomingPipes[0]
	if in.Code != "IN1" || in.Angle != 90 || in.Diameter != 150 {
		t.Errorf("incoming = %+v", in)
	}
	// 90° clockwise from the outgoing pipe.
	if !in.Location.Equal(geometry.Point2{X: -1500}, 1e-9) {
		t.Errorf("incoming location = %v", in.Location)
	}
	// Row 4 of the pipe schedule has a bad level.
	if len(res.Failures) != 1 {
		t.Errorf("failures = %v", res.Failures)
	}
}

func TestReadScheduleContinuesAfterFailures(t *testing.T) {
	manholes := strings.Join([]string{
		"header",
		"MH1,1200,,,,OUT1,,150,,IN1,,90,150,,IN2,,270,225,",
		"MH2,big,,,,OUT2,,150,,IN1,,90,150,",
		"MH3,1050,,,,OUT3,,150,,IN1,,180,150,",
		"MH4,1200,,,,OUT4,,150,,IN4,,90",
		"MH5",
		"MH6,1500,,,,OUT6,,225,,IN6,,175,150,,,,,,",
		"",
	}, "\n")
	res, err := ReadSchedule(strings.NewReader(manholes), strings.NewReader(testPipeSchedule))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, m := range res.Manholes {
		names = append(names, m.Name)
	}
	if strings.Join(names, " ") != "MH1 MH6" {
		t.Errorf("manholes = %v", names)
	}
	if len(res.Excluded) != 1 || res.Excluded[0].Name != "MH3" || res.Excluded[0].InvertLevel != 99.5 {
		t.Errorf("excluded = %# v", pretty.Formatter(res.Excluded))
	}
	if len(res.Manholes[0].IncomingPipes) != 2 || len(res.Manholes[1].IncomingPipes) != 1 {
		t.Errorf("incoming pipe counts are wrong")
	}
	// MH2, MH4 and MH5, and the bad pipe row.
	if len(res.Failures) != 4 {
		t.Errorf("failures = %v", res.Failures)
	}
	for _, f := range res.Failures {
		if !errors.Is(f, civils.ErrScheduleParse) {
			t.Errorf("%v is not a schedule parse error", f)
		}
	}
}
