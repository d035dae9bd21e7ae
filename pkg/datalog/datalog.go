// Package datalog holds the light-source entries collected during a lab
// session. Entries are addressed by position: indices shift left on removal
// and there are no stable IDs.
package datalog

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned by positional operations given an index
// outside [0, Size). The datalog is never mutated when it is returned.
var ErrIndexOutOfRange = errors.New("index out of range")

// Datalog is an ordered collection of entries. It is not safe for
// concurrent use; callers exposing it over a service serialize mutations.
type Datalog struct {
	entries []*Entry
}

// New returns an empty datalog.
func New() *Datalog {
	return &Datalog{}
}

// Add appends an entry.
func (d *Datalog) Add(e *Entry) {
	d.entries = append(d.entries, e)
}

// Remove deletes and returns the entry at index. Later entries shift left.
func (d *Datalog) Remove(index int) (*Entry, error) {
	if index < 0 || index >= len(d.entries) {
		return nil, fmt.Errorf("%w: %d (size %d)", ErrIndexOutOfRange, index, len(d.entries))
	}
	e := d.entries[index]
	d.entries = append(d.entries[:index], d.entries[index+1:]...)
	return e, nil
}

// Update replaces the entry at index with a new one. The old entry is
// removed and the replacement is appended at the end, not inserted at the
// old position, so every later entry shifts one slot left. Longstanding
// behavior; downstream tooling indexes accordingly.
func (d *Datalog) Update(index int, e *Entry) (*Entry, error) {
	old, err := d.Remove(index)
	if err != nil {
		return nil, err
	}
	d.Add(e)
	return old, nil
}

// Get returns the entry at index without mutating the datalog.
func (d *Datalog) Get(index int) (*Entry, error) {
	if index < 0 || index >= len(d.entries) {
		return nil, fmt.Errorf("%w: %d (size %d)", ErrIndexOutOfRange, index, len(d.entries))
	}
	return d.entries[index], nil
}

// Entries returns the entries in display order. The slice is a copy; the
// entries themselves are shared.
func (d *Datalog) Entries() []*Entry {
	out := make([]*Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Clear empties the datalog. Clearing an empty datalog is a no-op.
func (d *Datalog) Clear() {
	d.entries = nil
}

// Size returns the number of entries.
func (d *Datalog) Size() int {
	return len(d.entries)
}
