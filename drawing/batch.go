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

	"github.com/jppcivil/civils"
	"github.com/jppcivil/civils/internal/hash"
)

// Batch is an ordered set of pending entities and the layers they need.
// A batch is committed to a sink at most once.
type Batch struct {
	// Name describes the batch in logs.
	Name string

	layers   []Layer
	entities []Entity
	handles  []Handle
}

// NewBatch returns an empty batch.
func NewBatch(name string) *Batch {
	return &Batch{Name: name}
}

// DeclareLayer records that the batch draws on l. Declaring a layer name
// twice keeps the first declaration.
func (b *Batch) DeclareLayer(l Layer) {
	for _, ll := range b.layers {
		if ll.Name == l.Name {
			return
		}
	}
	b.layers = append(b.layers, l)
}

// Layers returns the declared layers in declaration order.
func (b *Batch) Layers() []Layer { return b.layers }

// Add appends e and returns its index within the batch.
func (b *Batch) Add(e Entity) int {
	b.entities = append(b.entities, e)
	return len(b.entities) - 1
}

// Entities returns the pending entities in insertion order.
func (b *Batch) Entities() []Entity { return b.entities }

// Len returns the number of entities in b.
func (b *Batch) Len() int { return len(b.entities) }

// Committed reports whether b has been accepted by a sink.
func (b *Batch) Committed() bool { return b.handles != nil }

// Handle returns the handle a sink assigned to entity i, or the zero
// handle if b has not been committed.
func (b *Batch) Handle(i int) Handle {
	if i < 0 || i >= len(b.handles) {
		return ""
	}
	return b.handles[i]
}

// Validate checks every entity in b. It returns a GeometryDegenerate error
// naming the first invalid entity.
func (b *Batch) Validate() error {
	const op = "drawing.Validate"
	declared := map[string]bool{DefaultLayer: true}
	for _, l := range b.layers {
		declared[l.Name] = true
	}
	for i, e := range b.entities {
		if e == nil {
			return civils.E(civils.GeometryDegenerate, op, "batch %q: entity %d is nil", b.Name, i)
		}
		if !declared[e.LayerName()] {
			return civils.E(civils.GeometryDegenerate, op, "batch %q: entity %d is on undeclared layer %q", b.Name, i, e.LayerName())
		}
		if err := e.validate(); err != nil {
			return civils.E(civils.GeometryDegenerate, op, "batch %q: entity %d: %v", b.Name, i, err)
		}
	}
	return nil
}

// Fingerprint returns a stable digest of the layers and entities in b.
func (b *Batch) Fingerprint() string {
	return hash.Of(struct {
		Layers   []Layer
		Entities []Entity
	}{b.layers, b.entities})
}

func (b *Batch) String() string {
	return fmt.Sprintf("%s (%d entities)", b.Name, len(b.entities))
}
