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

package drawing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ctessum/geom/encoding/geojson"
	"github.com/jppcivil/civils"
)

// GeoJSONSink writes each committed entity to W as one line of JSON:
//  {"handle":"100","layer":"...","kind":"circle","geometry":{...}}
// Labels also carry their text, height and rotation. Circles are written as
// line strings with geometry.RegionSegments sides.
type GeoJSONSink struct {
	*MemorySink
	W io.Writer
}

// NewGeoJSONSink returns a sink that writes to w.
func NewGeoJSONSink(w io.Writer) *GeoJSONSink {
	return &GeoJSONSink{MemorySink: NewMemorySink(), W: w}
}

type geoJSONRecord struct {
	Handle   Handle          `json:"handle"`
	Layer    string          `json:"layer"`
	Kind     string          `json:"kind"`
	Text     string          `json:"text,omitempty"`
	Height   float64         `json:"height,omitempty"`
	Rotation float64         `json:"rotation,omitempty"`
	Geometry json.RawMessage `json:"geometry"`
}

// Commit validates and encodes all of b before writing any of it. If the
// write fails the batch is not committed and may be committed again.
func (s *GeoJSONSink) Commit(b *Batch) error {
	const op = "drawing.Commit"
	if b.Committed() {
		return civils.E(civils.DuplicateEntity, op, "batch %q is already committed", b.Name)
	}
	if err := b.Validate(); err != nil {
		return err
	}
	records := make([]geoJSONRecord, b.Len())
	for i, e := range b.Entities() {
		g, err := geojson.Encode(e.Geom())
		if err != nil {
			return civils.Wrap(civils.GeometryDegenerate, op, fmt.Errorf("batch %q: entity %d: %v", b.Name, i, err))
		}
		r := geoJSONRecord{Layer: e.LayerName(), Geometry: g}
		switch e := e.(type) {
		case *Polyline:
			r.Kind = "polyline"
		case *Circle:
			r.Kind = "circle"
		case *Label:
			r.Kind = "label"
			r.Text, r.Height, r.Rotation = e.Text, e.Height, e.Rotation
		case *Region:
			r.Kind = "region"
		}
		records[i] = r
	}

	// Handles are those accept will assign. The batch is only accepted once
	// the write has succeeded.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i := range records {
		records[i].Handle = Handle(fmt.Sprintf("%X", s.next+uint64(i)))
		if err := enc.Encode(records[i]); err != nil {
			return err
		}
	}
	if _, err := s.W.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("drawing: writing batch %q: %w", b.Name, err)
	}
	s.accept(b)
	return nil
}
