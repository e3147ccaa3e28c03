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
	"github.com/sirupsen/logrus"
)

// Sink accepts committed batches. A sink validates the whole batch before
// accepting any of it: on error none of the batch is kept.
type Sink interface {
	Commit(b *Batch) error
}

// MemorySink keeps committed entities in memory and assigns each one a
// hexadecimal handle. It is the base of the file sinks.
type MemorySink struct {
	// Log receives one entry per committed batch.
	Log logrus.FieldLogger

	next     uint64
	layers   []Layer
	order    []Handle
	entities map[Handle]Entity
	batches  []*Batch
}

// firstHandle matches the first free handle of a new CAD drawing.
const firstHandle = 0x100

// NewMemorySink returns an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{
		Log:      logrus.StandardLogger(),
		next:     firstHandle,
		entities: make(map[Handle]Entity),
	}
}

// Commit validates b and stores its entities.
func (s *MemorySink) Commit(b *Batch) error {
	if b.Committed() {
		return civils.E(civils.DuplicateEntity, "drawing.Commit", "batch %q is already committed", b.Name)
	}
	if err := b.Validate(); err != nil {
		return err
	}
	s.accept(b)
	return nil
}

func (s *MemorySink) accept(b *Batch) {
	for _, l := range b.Layers() {
		s.declare(l)
	}
	b.handles = make([]Handle, len(b.entities))
	for i, e := range b.entities {
		h := Handle(fmt.Sprintf("%X", s.next))
		s.next++
		b.handles[i] = h
		s.entities[h] = e
		s.order = append(s.order, h)
	}
	s.batches = append(s.batches, b)
	if s.Log != nil {
		s.Log.WithFields(logrus.Fields{
			"batch":       b.Name,
			"entities":    b.Len(),
			"fingerprint": b.Fingerprint(),
		}).Debug("committed batch")
	}
}

func (s *MemorySink) declare(l Layer) {
	for _, ll := range s.layers {
		if ll.Name == l.Name {
			return
		}
	}
	s.layers = append(s.layers, l)
}

// Resolve returns the entity with handle h, if it has not been erased.
func (s *MemorySink) Resolve(h Handle) (Entity, bool) {
	e, ok := s.entities[h]
	return e, ok
}

// Erase removes the entity with handle h. Existing handles to it no longer
// resolve.
func (s *MemorySink) Erase(h Handle) bool {
	if _, ok := s.entities[h]; !ok {
		return false
	}
	delete(s.entities, h)
	return true
}

// Len returns the number of live entities.
func (s *MemorySink) Len() int { return len(s.entities) }

// Batches returns the committed batches in commit order.
func (s *MemorySink) Batches() []*Batch { return s.batches }

// Layers returns every layer declared by a committed batch.
func (s *MemorySink) Layers() []Layer { return s.layers }

// Each calls f for every live entity in commit order.
func (s *MemorySink) Each(f func(Handle, Entity) error) error {
	for _, h := range s.order {
		e, ok := s.entities[h]
		if !ok {
			continue
		}
		if err := f(h, e); err != nil {
			return err
		}
	}
	return nil
}
