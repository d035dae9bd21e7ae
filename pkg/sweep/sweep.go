// Package sweep models a retarding-voltage/photocurrent sweep for a single
// light source and derives the stopping voltage from it.
package sweep

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrEmptyRecord is returned when a stopping voltage is requested from
	// a record with no samples. Zero is never a silent fallback.
	ErrEmptyRecord = errors.New("sweep record is empty")

	// ErrNoCrossing is returned when no sample in the record reaches a
	// non-negative photocurrent, so the stopping voltage is undefined.
	ErrNoCrossing = errors.New("photocurrent never reaches zero")
)

// Sample is a single reading from the sweep. Currents are recorded on two
// channels: one with the light source unblocked and one with it blocked.
type Sample struct {
	RetardingVoltage float64 `json:"retardingVoltage"`
	UnblockedCurrent float64 `json:"unblockedCurrent"`
	BlockedCurrent   float64 `json:"blockedCurrent"`
}

// Photocurrent is the net current attributed to the photoelectric effect.
// The blocked-channel reading is added to the unblocked one; this matches
// how the lab apparatus reports the two channels.
func (s Sample) Photocurrent() float64 {
	return s.UnblockedCurrent + s.BlockedCurrent
}

// Record is an ordered voltage sweep. Construct it with NewRecord so the
// ascending-voltage invariant holds; a zero Record is valid and empty.
type Record struct {
	samples []Sample
}

// NewRecord copies the given samples into a record sorted ascending by
// retarding voltage. The sort is stable, so samples sharing a voltage keep
// the order in which they were recorded.
func NewRecord(samples []Sample) Record {
	s := make([]Sample, len(samples))
	copy(s, samples)
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].RetardingVoltage < s[j].RetardingVoltage
	})
	return Record{samples: s}
}

// Samples returns the sorted samples. The returned slice is a copy.
func (r Record) Samples() []Sample {
	s := make([]Sample, len(r.samples))
	copy(s, r.samples)
	return s
}

// Len returns the number of samples in the record.
func (r Record) Len() int {
	return len(r.samples)
}

// StoppingVoltage returns the retarding voltage of the first sample, in
// ascending-voltage order, whose photocurrent is non-negative.
func (r Record) StoppingVoltage() (float64, error) {
	if len(r.samples) == 0 {
		return 0, ErrEmptyRecord
	}
	for _, s := range r.samples {
		if s.Photocurrent() >= 0 {
			return s.RetardingVoltage, nil
		}
	}
	return 0, fmt.Errorf("%w after %d samples", ErrNoCrossing, len(r.samples))
}
