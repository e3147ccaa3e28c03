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
)

// Kind classifies a failure so callers can decide whether it may be
// tolerated.
type Kind int

// Error kinds.
const (
	// EngineeringStandardViolation is returned when a configuration does not
	// meet the drainage standard: benching below the minimum, unsupported
	// safety features, or rejection by the standard verifier.
	EngineeringStandardViolation Kind = iota + 1

	// LookupFailure is returned when a value is missing from a fixed
	// engineering table, for example a chamber diameter without a wall
	// thickness.
	LookupFailure

	// GeometryDegenerate is returned when an expected intersection is
	// absent and there is no tolerant fallback.
	GeometryDegenerate

	// UnregisteredEntity is returned when an entity is queried somewhere it
	// was never registered.
	UnregisteredEntity

	// ScheduleParseError is returned for a malformed schedule row.
	ScheduleParseError

	// DuplicateEntity is returned when an entity is registered twice.
	DuplicateEntity
)

func (k Kind) String() string {
	switch k {
	case EngineeringStandardViolation:
		return "engineering standard violation"
	case LookupFailure:
		return "lookup failure"
	case GeometryDegenerate:
		return "degenerate geometry"
	case UnregisteredEntity:
		return "unregistered entity"
	case ScheduleParseError:
		return "schedule parse error"
	case DuplicateEntity:
		return "duplicate entity"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinel errors for use with errors.Is. They match any *Error of the
// same Kind.
var (
	ErrStandardViolation = &Error{Kind: EngineeringStandardViolation}
	ErrLookup            = &Error{Kind: LookupFailure}
	ErrDegenerate        = &Error{Kind: GeometryDegenerate}
	ErrUnregistered      = &Error{Kind: UnregisteredEntity}
	ErrScheduleParse     = &Error{Kind: ScheduleParseError}
	ErrDuplicate         = &Error{Kind: DuplicateEntity}
)

// Error is a classified failure raised by one of the plan generators.
type Error struct {
	Kind Kind

	// Op names the operation that failed, e.g. "drainage.GeneratePlan".
	Op string

	// Err is the underlying cause.
	Err error
}

// E creates a new *Error of kind k for operation op. The message is
// formatted with fmt.Errorf, so a %v-wrapped error keeps its text but not
// its identity; use Wrap to keep the cause.
func E(k Kind, op, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Op: op, Err: fmt.Errorf(format, args...)}
}

// Wrap classifies err as kind k for operation op.
func Wrap(k Kind, op string, err error) *Error {
	return &Error{Kind: k, Op: op, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e.Op == "" && e.Err == nil:
		return "civils: " + e.Kind.String()
	case e.Err == nil:
		return fmt.Sprintf("civils: %s: %s", e.Op, e.Kind)
	case e.Op == "":
		return fmt.Sprintf("civils: %v", e.Err)
	}
	return fmt.Sprintf("civils: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the outermost *Error in err's chain,
// or 0 if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
