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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jppcivil/civils/drawing"
	"github.com/jppcivil/civils/geometry"
	"github.com/spf13/cast"
)

// openSink opens a drawing sink for the file f, choosing the format from
// its extension. The returned function must be called to finish writing.
func openSink(f string) (drawing.Sink, func() error, error) {
	f, err := checkOutputFile(f)
	if err != nil {
		return nil, nil, err
	}
	switch strings.ToLower(filepath.Ext(f)) {
	case ".dxf":
		s := drawing.NewDXFSink(f)
		return s, s.Close, nil
	case ".geojson", ".json":
		w, err := os.Create(f)
		if err != nil {
			return nil, nil, fmt.Errorf("civils: creating output file: %v", err)
		}
		return drawing.NewGeoJSONSink(w), w.Close, nil
	default:
		return nil, nil, fmt.Errorf("civils: output file %s must end in .dxf or .geojson", f)
	}
}

// checkOutputFile makes sure that the output file is specified and its
// directory exists, and expands any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`civils: you need to specify an output file (for example: --Output="plan.dxf")`)
	}
	f = os.ExpandEnv(f)
	if _, err := os.Stat(filepath.Dir(f)); err != nil {
		return f, fmt.Errorf("civils: the Output directory doesn't exist: %v", err)
	}
	return f, nil
}

// checkInputFile makes sure that an input file named by the option called
// name is specified, and expands any environment variables.
func checkInputFile(name, f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf("civils: you need to specify the %s file", name)
	}
	return os.ExpandEnv(f), nil
}

// parsePoint reads a plan location given as "x,y".
func parsePoint(s string) (geometry.Point2, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geometry.Point2{}, fmt.Errorf("civils: location %q should be in the form x,y", s)
	}
	x, err := cast.ToFloat64E(strings.TrimSpace(parts[0]))
	if err != nil {
		return geometry.Point2{}, fmt.Errorf("civils: location %q: %v", s, err)
	}
	y, err := cast.ToFloat64E(strings.TrimSpace(parts[1]))
	if err != nil {
		return geometry.Point2{}, fmt.Errorf("civils: location %q: %v", s, err)
	}
	return geometry.Point2{X: x, Y: y}, nil
}
