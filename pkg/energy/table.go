// Package energy builds the frequency/kinetic-energy table that the linear
// fit consumes, one row per light source.
package energy

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/photolab/photolab/pkg/datalog"
	"github.com/photolab/photolab/pkg/physics"
)

// ErrIncompleteEntry is returned when the datalog contains an entry without
// measurement data. Incomplete entries are rejected, never skipped, so a
// table always accounts for every entry it was built from.
var ErrIncompleteEntry = errors.New("entry has no sweep data")

// Row is one derived observation.
type Row struct {
	WavelengthM      float64 `json:"wavelengthM"`
	FrequencyHz      float64 `json:"frequencyHz"`
	StoppingVoltageV float64 `json:"stoppingVoltageV"`
	KineticEnergyJ   float64 `json:"kineticEnergyJ"`
}

// Builder converts datalog entries into energy rows using a fixed set of
// reference constants.
type Builder struct {
	consts physics.Constants
}

// NewBuilder returns a builder using the given constants.
func NewBuilder(consts physics.Constants) *Builder {
	return &Builder{consts: consts}
}

// Build produces one row per entry, sorted ascending by wavelength. The
// datalog is not mutated.
func (b *Builder) Build(d *datalog.Datalog) ([]Row, error) {
	entries := d.Entries()
	rows := make([]Row, 0, len(entries))
	for i, e := range entries {
		if !e.HasSweep() {
			return nil, fmt.Errorf("%w: entry %d (%s)", ErrIncompleteEntry, i, e)
		}
		wavelengthM := e.WavelengthNM() * 1e-9
		rows = append(rows, Row{
			WavelengthM:      wavelengthM,
			FrequencyHz:      b.consts.SpeedOfLight / (b.consts.RefractiveIndexAir * wavelengthM),
			StoppingVoltageV: e.StoppingVoltage(),
			KineticEnergyJ:   math.Abs(b.consts.ElectronCharge) * e.StoppingVoltage(),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].WavelengthM < rows[j].WavelengthM
	})
	return rows, nil
}
