package store

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/photolab/photolab/pkg/datalog"
	"github.com/photolab/photolab/pkg/energy"
	"github.com/photolab/photolab/pkg/sweep"
)

// EntryFileName returns the CSV file name for an entry, e.g. led_450nm.csv.
// The wavelength is rounded to the nearest nanometer.
func EntryFileName(e *datalog.Entry) string {
	return fmt.Sprintf("%s_%dnm.csv", strings.ToLower(string(e.Kind())), int(math.Round(e.WavelengthNM())))
}

// SaveEntry writes one entry's sweep to dir using EntryFileName. Columns
// are retarding_voltage, unblocked_current, blocked_current, photocurrent.
func SaveEntry(dir string, e *datalog.Entry) error {
	path := filepath.Join(dir, EntryFileName(e))
	fp, err := os.Create(path)
	if err != nil {
		return &Error{Op: "create", Path: path, Err: err}
	}
	defer closeFile(fp, path)

	w := csv.NewWriter(fp)
	records := [][]string{{"retarding_voltage", "unblocked_current", "blocked_current", "photocurrent"}}
	for _, s := range e.Sweep().Samples() {
		records = append(records, []string{
			formatFloat(s.RetardingVoltage),
			formatFloat(s.UnblockedCurrent),
			formatFloat(s.BlockedCurrent),
			formatFloat(s.Photocurrent()),
		})
	}
	if err := w.WriteAll(records); err != nil {
		return &Error{Op: "write", Path: path, Err: err}
	}
	return nil
}

// LoadSweepCSV reads a sweep record from a CSV file in the per-entry
// format. A header row is skipped if present; a trailing photocurrent
// column is ignored since it is derived.
func LoadSweepCSV(path string) (sweep.Record, error) {
	fp, err := os.Open(path)
	if err != nil {
		return sweep.Record{}, &Error{Op: "open", Path: path, Err: err}
	}
	defer closeFile(fp, path)

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return sweep.Record{}, &Error{Op: "read", Path: path, Err: err}
	}

	var samples []sweep.Sample
	for i, row := range rows {
		if len(row) < 3 {
			return sweep.Record{}, &Error{Op: "parse", Path: path,
				Err: fmt.Errorf("row %d: want at least 3 columns, got %d", i, len(row))}
		}
		v, err1 := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
		ub, err2 := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		bl, err3 := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err1 != nil || err2 != nil || err3 != nil {
			if i == 0 {
				// Header row.
				continue
			}
			return sweep.Record{}, &Error{Op: "parse", Path: path,
				Err: fmt.Errorf("row %d: non-numeric field", i)}
		}
		samples = append(samples, sweep.Sample{
			RetardingVoltage: v,
			UnblockedCurrent: ub,
			BlockedCurrent:   bl,
		})
	}
	if len(samples) == 0 {
		return sweep.Record{}, &Error{Op: "parse", Path: path,
			Err: fmt.Errorf("no samples found")}
	}
	return sweep.NewRecord(samples), nil
}

// SaveEnergies writes the aggregate energy table. Columns are wavelength_m,
// frequency_hz, stopping_voltage_v, kinetic_energy_j.
func SaveEnergies(path string, rows []energy.Row) error {
	fp, err := os.Create(path)
	if err != nil {
		return &Error{Op: "create", Path: path, Err: err}
	}
	defer closeFile(fp, path)

	w := csv.NewWriter(fp)
	records := [][]string{{"wavelength_m", "frequency_hz", "stopping_voltage_v", "kinetic_energy_j"}}
	for _, r := range rows {
		records = append(records, []string{
			formatFloat(r.WavelengthM),
			formatFloat(r.FrequencyHz),
			formatFloat(r.StoppingVoltageV),
			formatFloat(r.KineticEnergyJ),
		})
	}
	if err := w.WriteAll(records); err != nil {
		return &Error{Op: "write", Path: path, Err: err}
	}
	return nil
}

// SaveReport writes the report text.
func SaveReport(path string, text string) error {
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return &Error{Op: "write", Path: path, Err: err}
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func closeFile(fp *os.File, path string) {
	if err := fp.Close(); err != nil {
		logrus.Warnf("failed to close file %s", path)
	}
}
