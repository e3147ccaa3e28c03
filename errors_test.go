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

package civils

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorIs(t *testing.T) {
	err := E(LookupFailure, "drainage.WallThickness", "no wall thickness for diameter %d", 1000)
	if !errors.Is(err, ErrLookup) {
		t.Errorf("%v should match ErrLookup", err)
	}
	if errors.Is(err, ErrDegenerate) {
		t.Errorf("%v should not match ErrDegenerate", err)
	}
	wrapped := fmt.Errorf("schedule row 3: %w", err)
	if KindOf(wrapped) != LookupFailure {
		t.Errorf("kind of wrapped error = %v", KindOf(wrapped))
	}
	if KindOf(errors.New("plain")) != 0 {
		t.Error("plain errors have no kind")
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{err: ErrUnregistered, want: "civils: unregistered entity"},
		{err: &Error{Kind: GeometryDegenerate, Op: "geometry.OffsetCurve"}, want: "civils: geometry.OffsetCurve: degenerate geometry"},
		{err: E(ScheduleParseError, "drainage.ReadSchedule", "row %d: bad diameter", 2), want: "civils: drainage.ReadSchedule: row 2: bad diameter"},
	}
	for _, test := range tests {
		if have := test.err.Error(); have != test.want {
			t.Errorf("want %q but have %q", test.want, have)
		}
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("rejected by verifier")
	err := Wrap(EngineeringStandardViolation, "drainage.GeneratePlan", cause)
	if !errors.Is(err, cause) {
		t.Error("the cause should be reachable through Unwrap")
	}
	if !errors.Is(err, ErrStandardViolation) {
		t.Error("the kind should match the sentinel")
	}
}
