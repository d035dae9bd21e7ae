package datalog

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"

	"github.com/photolab/photolab/pkg/sweep"
)

// SourceKind is the type of light source under test.
type SourceKind string

const (
	LED   SourceKind = "LED"
	Laser SourceKind = "Laser"
)

// ParseSourceKind accepts the user-facing spellings of a source kind.
func ParseSourceKind(s string) (SourceKind, error) {
	switch s {
	case "LED", "led":
		return LED, nil
	case "Laser", "laser", "LASER":
		return Laser, nil
	}
	return "", pkgerrors.Errorf("unknown source kind %q (want LED or Laser)", s)
}

// Entry is one light source under test. Wavelength and kind are fixed at
// construction; the sweep and its derived stopping voltage are set once the
// measurement data exists. An Entry is appended to the datalog only after
// its sweep is populated.
type Entry struct {
	wavelengthNM    float64
	kind            SourceKind
	rec             sweep.Record
	hasSweep        bool
	stoppingVoltage float64
}

// NewEntry creates an entry for a source of the given kind and wavelength.
// The wavelength must be positive.
func NewEntry(wavelengthNM float64, kind SourceKind) (*Entry, error) {
	if wavelengthNM <= 0 {
		return nil, pkgerrors.Errorf("wavelength must be positive, got %g nm", wavelengthNM)
	}
	if kind != LED && kind != Laser {
		return nil, pkgerrors.Errorf("unknown source kind %q", kind)
	}
	return &Entry{wavelengthNM: wavelengthNM, kind: kind}, nil
}

// WavelengthNM returns the source wavelength in nanometers.
func (e *Entry) WavelengthNM() float64 { return e.wavelengthNM }

// Kind returns the source kind.
func (e *Entry) Kind() SourceKind { return e.kind }

// HasSweep reports whether measurement data has been attached.
func (e *Entry) HasSweep() bool { return e.hasSweep }

// Sweep returns the attached sweep record. It is the zero Record until
// SetSweep succeeds.
func (e *Entry) Sweep() sweep.Record { return e.rec }

// StoppingVoltage returns the derived stopping voltage. It is zero until a
// sweep has been attached.
func (e *Entry) StoppingVoltage() float64 { return e.stoppingVoltage }

// SetSweep attaches measurement data and recomputes the stopping voltage.
// On error the entry is left unchanged.
func (e *Entry) SetSweep(rec sweep.Record) error {
	vs, err := rec.StoppingVoltage()
	if err != nil {
		return err
	}
	e.rec = rec
	e.hasSweep = true
	e.stoppingVoltage = vs
	return nil
}

// String renders the entry the way the datalog listing shows it.
func (e *Entry) String() string {
	return fmt.Sprintf("%s @ %gnm (V_s = %gV)", e.kind, e.wavelengthNM, e.stoppingVoltage)
}
