package store

import (
	"database/sql"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/photolab/photolab/pkg/datalog"
	"github.com/photolab/photolab/pkg/sweep"
)

// Archive persists whole lab sessions to a SQLite database so a session
// can be resumed later. Raw sweeps are stored, not derived values; the
// stopping voltage is recomputed on load.
type Archive struct {
	db *sql.DB
}

// Safe to run repeatedly.
const archiveSchema = `
CREATE TABLE IF NOT EXISTS experiment (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    saved_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS entry (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    experiment_id INTEGER NOT NULL REFERENCES experiment(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    kind TEXT NOT NULL,
    wavelength_nm REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_entry_experiment ON entry(experiment_id);

CREATE TABLE IF NOT EXISTS sample (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    entry_id INTEGER NOT NULL REFERENCES entry(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    retarding_voltage REAL NOT NULL,
    unblocked_current REAL NOT NULL,
    blocked_current REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sample_entry ON sample(entry_id);
`

// OpenArchive opens (creating if needed) the archive at path.
func OpenArchive(path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to open archive %s", path)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, pkgerrors.Wrap(err, "failed to enable foreign keys")
	}
	if _, err := db.Exec(archiveSchema); err != nil {
		_ = db.Close()
		return nil, pkgerrors.Wrap(err, "failed to create archive schema")
	}
	return &Archive{db: db}, nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// SaveSession stores the datalog under the given experiment name,
// replacing any previous save with that name. The whole save runs in one
// transaction.
func (a *Archive) SaveSession(name string, d *datalog.Datalog) error {
	tx, err := a.db.Begin()
	if err != nil {
		return pkgerrors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			logrus.Warnf("archive rollback failed: %v", err)
		}
	}()

	if _, err := tx.Exec(`DELETE FROM experiment WHERE name = ?`, name); err != nil {
		return pkgerrors.Wrapf(err, "failed to replace experiment %s", name)
	}

	res, err := tx.Exec(`INSERT INTO experiment (name, saved_at) VALUES (?, ?)`, name, time.Now().UTC())
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to insert experiment %s", name)
	}
	expID, err := res.LastInsertId()
	if err != nil {
		return pkgerrors.Wrap(err, "failed to get experiment id")
	}

	for i, e := range d.Entries() {
		res, err := tx.Exec(
			`INSERT INTO entry (experiment_id, position, kind, wavelength_nm) VALUES (?, ?, ?, ?)`,
			expID, i, string(e.Kind()), e.WavelengthNM())
		if err != nil {
			return pkgerrors.Wrapf(err, "failed to insert entry %d", i)
		}
		entryID, err := res.LastInsertId()
		if err != nil {
			return pkgerrors.Wrap(err, "failed to get entry id")
		}
		for j, s := range e.Sweep().Samples() {
			_, err := tx.Exec(
				`INSERT INTO sample (entry_id, position, retarding_voltage, unblocked_current, blocked_current) VALUES (?, ?, ?, ?, ?)`,
				entryID, j, s.RetardingVoltage, s.UnblockedCurrent, s.BlockedCurrent)
			if err != nil {
				return pkgerrors.Wrapf(err, "failed to insert sample %d of entry %d", j, i)
			}
		}
	}

	return pkgerrors.Wrap(tx.Commit(), "failed to commit session")
}

// LoadSession reconstructs the datalog saved under the given name.
func (a *Archive) LoadSession(name string) (*datalog.Datalog, error) {
	var expID int64
	err := a.db.QueryRow(`SELECT id FROM experiment WHERE name = ?`, name).Scan(&expID)
	if err == sql.ErrNoRows {
		return nil, pkgerrors.Errorf("no saved session named %q", name)
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to look up session %s", name)
	}

	rows, err := a.db.Query(
		`SELECT id, kind, wavelength_nm FROM entry WHERE experiment_id = ? ORDER BY position`, expID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to query entries")
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logrus.Warnf("failed to close entry rows: %v", err)
		}
	}()

	type entryHead struct {
		id           int64
		kind         string
		wavelengthNM float64
	}
	var heads []entryHead
	for rows.Next() {
		var h entryHead
		if err := rows.Scan(&h.id, &h.kind, &h.wavelengthNM); err != nil {
			return nil, pkgerrors.Wrap(err, "failed to scan entry")
		}
		heads = append(heads, h)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to iterate entries")
	}

	d := datalog.New()
	for _, h := range heads {
		kind, err := datalog.ParseSourceKind(h.kind)
		if err != nil {
			return nil, err
		}
		e, err := datalog.NewEntry(h.wavelengthNM, kind)
		if err != nil {
			return nil, err
		}
		samples, err := a.loadSamples(h.id)
		if err != nil {
			return nil, err
		}
		if err := e.SetSweep(sweep.NewRecord(samples)); err != nil {
			return nil, pkgerrors.Wrapf(err, "archived sweep for %s is unusable", e)
		}
		d.Add(e)
	}
	return d, nil
}

// ListSessions returns the names of saved sessions, most recent first.
func (a *Archive) ListSessions() ([]string, error) {
	rows, err := a.db.Query(`SELECT name FROM experiment ORDER BY saved_at DESC`)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to list sessions")
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logrus.Warnf("failed to close session rows: %v", err)
		}
	}()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, pkgerrors.Wrap(err, "failed to scan session name")
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (a *Archive) loadSamples(entryID int64) ([]sweep.Sample, error) {
	rows, err := a.db.Query(
		`SELECT retarding_voltage, unblocked_current, blocked_current FROM sample WHERE entry_id = ? ORDER BY position`, entryID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to query samples")
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logrus.Warnf("failed to close sample rows: %v", err)
		}
	}()

	var samples []sweep.Sample
	for rows.Next() {
		var s sweep.Sample
		if err := rows.Scan(&s.RetardingVoltage, &s.UnblockedCurrent, &s.BlockedCurrent); err != nil {
			return nil, pkgerrors.Wrap(err, "failed to scan sample")
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}
