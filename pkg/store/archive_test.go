package store

import (
	"path/filepath"
	"testing"

	"github.com/photolab/photolab/pkg/datalog"
	"github.com/photolab/photolab/pkg/sweep"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := OpenArchive(filepath.Join(t.TempDir(), "photolab.db"))
	if err != nil {
		t.Fatalf("OpenArchive returned error: %v", err)
	}
	t.Cleanup(func() {
		if err := a.Close(); err != nil {
			t.Errorf("Close returned error: %v", err)
		}
	})
	return a
}

func sessionDatalog(t *testing.T) *datalog.Datalog {
	t.Helper()
	d := datalog.New()
	d.Add(mustEntry(t, 450, datalog.LED, []sweep.Sample{
		{RetardingVoltage: 1.0, UnblockedCurrent: -1, BlockedCurrent: 0},
		{RetardingVoltage: 1.2, UnblockedCurrent: 1, BlockedCurrent: 0},
	}))
	d.Add(mustEntry(t, 650, datalog.Laser, []sweep.Sample{
		{RetardingVoltage: 0.4, UnblockedCurrent: 1, BlockedCurrent: 0},
	}))
	return d
}

func TestSessionRoundTrip(t *testing.T) {
	a := openTestArchive(t)
	d := sessionDatalog(t)

	if err := a.SaveSession("pef-lab", d); err != nil {
		t.Fatalf("SaveSession returned error: %v", err)
	}

	got, err := a.LoadSession("pef-lab")
	if err != nil {
		t.Fatalf("LoadSession returned error: %v", err)
	}
	if got.Size() != d.Size() {
		t.Fatalf("expected %d entries, got %d", d.Size(), got.Size())
	}
	for i, want := range d.Entries() {
		e, err := got.Get(i)
		if err != nil {
			t.Fatalf("Get(%d) returned error: %v", i, err)
		}
		if e.Kind() != want.Kind() || e.WavelengthNM() != want.WavelengthNM() {
			t.Fatalf("entry %d: expected %v, got %v", i, want, e)
		}
		if e.StoppingVoltage() != want.StoppingVoltage() {
			t.Fatalf("entry %d: expected stopping voltage %v, got %v",
				i, want.StoppingVoltage(), e.StoppingVoltage())
		}
		ws, gs := want.Sweep().Samples(), e.Sweep().Samples()
		if len(ws) != len(gs) {
			t.Fatalf("entry %d: expected %d samples, got %d", i, len(ws), len(gs))
		}
		for j := range ws {
			if ws[j] != gs[j] {
				t.Fatalf("entry %d sample %d: expected %+v, got %+v", i, j, ws[j], gs[j])
			}
		}
	}
}

func TestSaveSessionReplacesPreviousSave(t *testing.T) {
	a := openTestArchive(t)

	if err := a.SaveSession("pef-lab", sessionDatalog(t)); err != nil {
		t.Fatalf("SaveSession returned error: %v", err)
	}

	smaller := datalog.New()
	smaller.Add(mustEntry(t, 532, datalog.Laser, []sweep.Sample{
		{RetardingVoltage: 0.9, UnblockedCurrent: 1, BlockedCurrent: 0},
	}))
	if err := a.SaveSession("pef-lab", smaller); err != nil {
		t.Fatalf("second SaveSession returned error: %v", err)
	}

	got, err := a.LoadSession("pef-lab")
	if err != nil {
		t.Fatalf("LoadSession returned error: %v", err)
	}
	if got.Size() != 1 {
		t.Fatalf("expected the replacement session with 1 entry, got %d", got.Size())
	}
	e, err := got.Get(0)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if e.WavelengthNM() != 532 {
		t.Fatalf("expected the 532nm entry, got %v", e)
	}

	names, err := a.ListSessions()
	if err != nil {
		t.Fatalf("ListSessions returned error: %v", err)
	}
	if len(names) != 1 || names[0] != "pef-lab" {
		t.Fatalf("expected a single session pef-lab, got %v", names)
	}
}

func TestLoadSessionUnknownName(t *testing.T) {
	a := openTestArchive(t)
	if _, err := a.LoadSession("nope"); err == nil {
		t.Fatalf("expected error for unknown session")
	}
}

func TestListSessionsEmpty(t *testing.T) {
	a := openTestArchive(t)
	names, err := a.ListSessions()
	if err != nil {
		t.Fatalf("ListSessions returned error: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected no sessions, got %v", names)
	}
}
