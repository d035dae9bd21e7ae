package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var defaultFileConfig = &RawFileConfig{
	DataDir:        strPtr("."),
	ArchivePath:    strPtr("photolab.db"),
	ExperimentName: strPtr("unnamed"),
}

var _ Config = &File{}

// File is a JSON-file-backed Config.
type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

// NewFile loads (or initializes) the config at configPath.
func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// RawFileConfig is the on-disk shape. Absent fields fall back to defaults.
type RawFileConfig struct {
	DataDir        *string `json:"dataDir,omitempty"`
	ArchivePath    *string `json:"archivePath,omitempty"`
	ExperimentName *string `json:"experimentName,omitempty"`
}

func (f *File) DataDir() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.DataDir != nil {
		return *f.c.DataDir
	}
	return *defaultFileConfig.DataDir
}

func (f *File) ArchivePath() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.ArchivePath != nil {
		return *f.c.ArchivePath
	}
	return *defaultFileConfig.ArchivePath
}

func (f *File) ExperimentName() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.ExperimentName != nil {
		return *f.c.ExperimentName
	}
	return *defaultFileConfig.ExperimentName
}

func (f *File) SetDataDir(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.DataDir = &s
}

func (f *File) SetArchivePath(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.ArchivePath = &s
}

func (f *File) SetExperimentName(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.ExperimentName = &s
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func strPtr(s string) *string { return &s }
