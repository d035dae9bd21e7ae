// Package experiment ties the pipeline together for one lab session: a
// named datalog of light sources, the derived energy table, the fit, and
// the saved artifacts.
package experiment

import (
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/photolab/photolab/pkg/datalog"
	"github.com/photolab/photolab/pkg/energy"
	"github.com/photolab/photolab/pkg/fit"
	"github.com/photolab/photolab/pkg/physics"
	"github.com/photolab/photolab/pkg/report"
	"github.com/photolab/photolab/pkg/store"
)

// Experiment is one lab session.
type Experiment struct {
	name      string
	log       *datalog.Datalog
	builder   *energy.Builder
	estimator *fit.Estimator
	assembler *report.Assembler
}

// New creates an experiment. The name is slugified for use in file paths;
// an empty or unusable name becomes "unnamed".
func New(name string, consts physics.Constants) *Experiment {
	slug := Slugify(name)
	if slug == "" {
		slug = "unnamed"
	}
	return &Experiment{
		name:      slug,
		log:       datalog.New(),
		builder:   energy.NewBuilder(consts),
		estimator: fit.NewEstimator(consts),
		assembler: report.NewAssembler(consts),
	}
}

// Name returns the slugified experiment name.
func (x *Experiment) Name() string { return x.name }

// Datalog returns the session's datalog.
func (x *Experiment) Datalog() *datalog.Datalog { return x.log }

// Restore replaces the datalog wholesale, e.g. from an archived session.
func (x *Experiment) Restore(d *datalog.Datalog) { x.log = d }

// EnergyTable builds the wavelength-sorted energy table from the current
// datalog.
func (x *Experiment) EnergyTable() ([]energy.Row, error) {
	return x.builder.Build(x.log)
}

// Results runs the full pipeline: energy table, then the least-squares
// estimate of Planck's constant and the work function.
func (x *Experiment) Results() ([]energy.Row, *fit.Result, error) {
	rows, err := x.EnergyTable()
	if err != nil {
		return nil, nil, err
	}
	res, err := x.estimator.Fit(rows)
	if err != nil {
		return nil, nil, err
	}
	return rows, res, nil
}

// DatalogListing renders the entry listing.
func (x *Experiment) DatalogListing() string {
	return x.assembler.Datalog(x.name, x.log)
}

// Report renders the result summary for the given fit.
func (x *Experiment) Report(res *fit.Result) string {
	return x.assembler.Summary(x.name, x.log, res)
}

// EnsureOutputDir creates baseDir/<name> if needed and returns it.
func (x *Experiment) EnsureOutputDir(baseDir string) (string, error) {
	dir := filepath.Join(baseDir, x.name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to create output directory %s", dir)
	}
	return dir, nil
}

// SaveAll writes every artifact under baseDir/<name>: one CSV per entry,
// source_energies.csv, and report.txt. The results pipeline runs first so
// nothing is written when the datalog cannot produce a fit.
func (x *Experiment) SaveAll(baseDir string) error {
	rows, res, err := x.Results()
	if err != nil {
		return err
	}

	dir, err := x.EnsureOutputDir(baseDir)
	if err != nil {
		return err
	}

	for _, e := range x.log.Entries() {
		if err := store.SaveEntry(dir, e); err != nil {
			return err
		}
	}
	if err := store.SaveEnergies(filepath.Join(dir, "source_energies.csv"), rows); err != nil {
		return err
	}
	if err := store.SaveReport(filepath.Join(dir, "report.txt"), x.Report(res)); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"experiment": x.name,
		"entries":    x.log.Size(),
		"dir":        dir,
	}).Info("experiment saved")
	return nil
}
