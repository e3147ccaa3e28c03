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
	"fmt"

	"github.com/ctessum/geom"
	"github.com/sirupsen/logrus"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	dxfdrawing "github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/entity"
	"github.com/yofu/dxf/table"
)

// DXFSink collects committed batches and writes them all to a DXF file
// when it is closed.
type DXFSink struct {
	*MemorySink
	Path string
}

// NewDXFSink returns a sink that writes to path on Close.
func NewDXFSink(path string) *DXFSink {
	return &DXFSink{MemorySink: NewMemorySink(), Path: path}
}

// Close writes every live entity to the file.
func (s *DXFSink) Close() error {
	d := dxf.NewDrawing()
	d.Header().LtScale = 1.0
	for _, l := range s.Layers() {
		lt := dxf.DefaultLineType
		if l.Hidden {
			lt = table.LT_HIDDEN
		}
		d.AddLayer(l.Name, color.ColorNumber(l.Color), lt, false)
	}
	err := s.Each(func(h Handle, e Entity) error {
		if err := d.ChangeLayer(e.LayerName()); err != nil {
			return fmt.Errorf("drawing: entity %s: %v", h, err)
		}
		if err := writeDXF(d, e); err != nil {
			return fmt.Errorf("drawing: entity %s: %v", h, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if s.Log != nil {
		s.Log.WithFields(logrus.Fields{
			"path":     s.Path,
			"entities": s.Len(),
		}).Info("writing DXF")
	}
	return d.SaveAs(s.Path)
}

func writeDXF(d *dxfdrawing.Drawing, e Entity) error {
	switch e := e.(type) {
	case *Polyline:
		lwp := entity.NewLwPolyline(e.Curve.NumVertices())
		for i, v := range e.Curve.Vertices {
			lwp.Vertices[i] = []float64{v.X, v.Y}
		}
		if e.Curve.Closed {
			lwp.Close()
		}
		d.AddEntity(lwp)
	case *Circle:
		if _, err := d.Circle(e.Curve.Center.X, e.Curve.Center.Y, 0, e.Curve.Radius); err != nil {
			return err
		}
	case *Label:
		t, err := d.Text(e.Text, e.Position.X, e.Position.Y, 0, e.Height)
		if err != nil {
			return err
		}
		t.Rotation = e.Rotation
	case *Region:
		for _, p := range e.Boundary.Polygons() {
			for _, r := range p {
				d.AddEntity(closedRing(r))
			}
		}
	default:
		return fmt.Errorf("unsupported entity type %T", e)
	}
	return nil
}

// closedRing converts a polygon ring to a closed lightweight polyline,
// dropping the repeated closing point if present.
func closedRing(r []geom.Point) *entity.LwPolyline {
	if n := len(r); n > 1 && r[0] == r[n-1] {
		r = r[:n-1]
	}
	lwp := entity.NewLwPolyline(len(r))
	for i, pt := range r {
		lwp.Vertices[i] = []float64{pt.X, pt.Y}
	}
	lwp.Close()
	return lwp
}
