// Package acquire defines the boundary between the estimation pipeline and
// whatever produces raw sweep samples. The pipeline only ever sees complete
// records; malformed or failed acquisitions surface as an *Error here.
package acquire

import (
	"fmt"

	"github.com/photolab/photolab/pkg/sweep"
)

// Error wraps a failure from an acquisition source. The requested action is
// abandoned; the session continues.
type Error struct {
	Source string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("acquisition from %s failed: %v", e.Source, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Sampler yields one complete sweep record per call. Implementations block
// until the record is complete or the acquisition fails.
type Sampler interface {
	Acquire() (sweep.Record, error)
}

// SamplerFunc adapts a function to the Sampler interface.
type SamplerFunc func() (sweep.Record, error)

func (f SamplerFunc) Acquire() (sweep.Record, error) { return f() }

// SliceSampler serves externally supplied samples, standing in for the
// hardware read path.
type SliceSampler struct {
	Samples []sweep.Sample
}

func (s *SliceSampler) Acquire() (sweep.Record, error) {
	return sweep.NewRecord(s.Samples), nil
}
