package experiment

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/photolab/photolab/pkg/datalog"
	"github.com/photolab/photolab/pkg/fit"
	"github.com/photolab/photolab/pkg/physics"
	"github.com/photolab/photolab/pkg/sweep"
)

func addSource(t *testing.T, x *Experiment, wavelengthNM, vs float64, kind datalog.SourceKind) {
	t.Helper()
	e, err := datalog.NewEntry(wavelengthNM, kind)
	if err != nil {
		t.Fatalf("NewEntry returned error: %v", err)
	}
	rec := sweep.NewRecord([]sweep.Sample{
		{RetardingVoltage: vs - 0.2, UnblockedCurrent: -1, BlockedCurrent: 0},
		{RetardingVoltage: vs, UnblockedCurrent: 1, BlockedCurrent: 0},
	})
	if err := e.SetSweep(rec); err != nil {
		t.Fatalf("SetSweep returned error: %v", err)
	}
	x.Datalog().Add(e)
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"PEF Lab", "pef-lab"},
		{"  My   Experiment  ", "my-experiment"},
		{"run #42 (final)", "run-42-final"},
		{"--dashes--", "dashes"},
		{"under_score", "under_score"},
		{"!!!", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Fatalf("Slugify(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestNewFallsBackToUnnamed(t *testing.T) {
	x := New("!!!", physics.Default())
	if x.Name() != "unnamed" {
		t.Fatalf("expected name 'unnamed', got %q", x.Name())
	}
}

func TestResultsPipeline(t *testing.T) {
	x := New("PEF Lab", physics.Default())
	addSource(t, x, 450, 1.2, datalog.LED)
	addSource(t, x, 650, 0.4, datalog.Laser)

	rows, res, err := x.Results()
	if err != nil {
		t.Fatalf("Results returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if res.PlanckEstimate == 0 {
		t.Fatalf("expected nonzero Planck estimate")
	}
}

func TestResultsPropagatesDegenerateFit(t *testing.T) {
	x := New("pef", physics.Default())
	addSource(t, x, 450, 1.2, datalog.LED)

	if _, _, err := x.Results(); err != fit.ErrDegenerateFit {
		t.Fatalf("expected ErrDegenerateFit, got %v", err)
	}
}

func TestSaveAllWritesEveryArtifact(t *testing.T) {
	x := New("PEF Lab", physics.Default())
	addSource(t, x, 450, 1.2, datalog.LED)
	addSource(t, x, 650, 0.4, datalog.Laser)

	base := t.TempDir()
	if err := x.SaveAll(base); err != nil {
		t.Fatalf("SaveAll returned error: %v", err)
	}

	dir := filepath.Join(base, "pef-lab")
	for _, name := range []string{"led_450nm.csv", "laser_650nm.csv", "source_energies.csv", "report.txt"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s to exist: %v", name, err)
		}
	}

	b, err := os.ReadFile(filepath.Join(dir, "report.txt"))
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	if !strings.Contains(string(b), "Percent error:") {
		t.Fatalf("report missing percent error line:\n%s", b)
	}
}

func TestSaveAllWritesNothingOnDegenerateFit(t *testing.T) {
	x := New("pef", physics.Default())
	addSource(t, x, 450, 1.2, datalog.LED)

	base := t.TempDir()
	if err := x.SaveAll(base); err == nil {
		t.Fatalf("expected error from SaveAll with a single source")
	}
	if _, err := os.Stat(filepath.Join(base, "pef")); !os.IsNotExist(err) {
		t.Fatalf("expected no output directory after failed save")
	}
}
