// Package store is the persistence side of the lab tool: per-source CSV
// files, the aggregate energy table, the report text, and a SQLite archive
// for whole sessions.
package store

import "fmt"

// Error wraps a load or save failure. Callers report it and abandon the
// requested action; the datalog is never left half-written to.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
