// Package config holds the user-adjustable settings of the lab tool.
package config

// Config is the interface the CLI and daemon read their settings from.
type Config interface {
	// DataDir is where saved experiments (CSV files and reports) land.
	DataDir() string
	// ArchivePath is the SQLite session archive.
	ArchivePath() string
	// ExperimentName is the default session name.
	ExperimentName() string

	SetDataDir(string)
	SetArchivePath(string)
	SetExperimentName(string)

	Load() error
	Save() error
}
