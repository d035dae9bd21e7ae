package energy

import (
	"errors"
	"math"
	"testing"

	"github.com/photolab/photolab/pkg/datalog"
	"github.com/photolab/photolab/pkg/physics"
	"github.com/photolab/photolab/pkg/sweep"
)

func addSource(t *testing.T, d *datalog.Datalog, wavelengthNM, vs float64) {
	t.Helper()
	e, err := datalog.NewEntry(wavelengthNM, datalog.LED)
	if err != nil {
		t.Fatalf("NewEntry returned error: %v", err)
	}
	rec := sweep.NewRecord([]sweep.Sample{
		{RetardingVoltage: vs, UnblockedCurrent: 1, BlockedCurrent: 0},
	})
	if err := e.SetSweep(rec); err != nil {
		t.Fatalf("SetSweep returned error: %v", err)
	}
	d.Add(e)
}

func TestBuildSortsByWavelength(t *testing.T) {
	d := datalog.New()
	// Added longest-wavelength first on purpose.
	addSource(t, d, 650, 0.4)
	addSource(t, d, 450, 1.2)

	rows, err := NewBuilder(physics.Default()).Build(d)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].WavelengthM != 450e-9 || rows[1].WavelengthM != 650e-9 {
		t.Fatalf("rows not sorted by wavelength: %v", rows)
	}
	if rows[0].StoppingVoltageV != 1.2 || rows[1].StoppingVoltageV != 0.4 {
		t.Fatalf("stopping voltages did not follow their wavelengths: %v", rows)
	}
}

func TestBuildConversions(t *testing.T) {
	consts := physics.Default()
	d := datalog.New()
	addSource(t, d, 450, 1.2)

	rows, err := NewBuilder(consts).Build(d)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	r := rows[0]

	wantFreq := consts.SpeedOfLight / (consts.RefractiveIndexAir * 450e-9)
	if relDiff(r.FrequencyHz, wantFreq) > 1e-9 {
		t.Fatalf("expected frequency %v, got %v", wantFreq, r.FrequencyHz)
	}

	wantE := math.Abs(consts.ElectronCharge) * 1.2
	if relDiff(r.KineticEnergyJ, wantE) > 1e-9 {
		t.Fatalf("expected kinetic energy %v, got %v", wantE, r.KineticEnergyJ)
	}
}

func TestFrequencyRoundTrip(t *testing.T) {
	consts := physics.Default()
	d := datalog.New()
	for _, w := range []float64{400, 450, 532, 650, 700} {
		addSource(t, d, w, 1.0)
	}

	rows, err := NewBuilder(consts).Build(d)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(rows) != d.Size() {
		t.Fatalf("expected %d rows, got %d", d.Size(), len(rows))
	}

	// Recomputing the frequency from the stored wavelength must reproduce
	// the stored frequency.
	for _, r := range rows {
		recomputed := consts.SpeedOfLight / (consts.RefractiveIndexAir * r.WavelengthM)
		if relDiff(recomputed, r.FrequencyHz) > 1e-9 {
			t.Fatalf("frequency round trip failed: stored %v, recomputed %v", r.FrequencyHz, recomputed)
		}
	}
}

func TestBuildRejectsIncompleteEntry(t *testing.T) {
	d := datalog.New()
	addSource(t, d, 450, 1.2)

	incomplete, err := datalog.NewEntry(650, datalog.Laser)
	if err != nil {
		t.Fatalf("NewEntry returned error: %v", err)
	}
	d.Add(incomplete)

	if _, err := NewBuilder(physics.Default()).Build(d); !errors.Is(err, ErrIncompleteEntry) {
		t.Fatalf("expected ErrIncompleteEntry, got %v", err)
	}
}

func TestBuildEmptyDatalog(t *testing.T) {
	rows, err := NewBuilder(physics.Default()).Build(datalog.New())
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows for empty datalog, got %d", len(rows))
	}
}

func relDiff(a, b float64) float64 {
	return math.Abs(a-b) / math.Abs(b)
}
