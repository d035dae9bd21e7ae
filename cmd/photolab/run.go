package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/photolab/photolab/pkg/acquire"
	"github.com/photolab/photolab/pkg/config"
	"github.com/photolab/photolab/pkg/datalog"
	"github.com/photolab/photolab/pkg/experiment"
	"github.com/photolab/photolab/pkg/physics"
	"github.com/photolab/photolab/pkg/prompts"
	"github.com/photolab/photolab/pkg/store"
	"github.com/photolab/photolab/pkg/sweep"
)

type session struct {
	exp     *experiment.Experiment
	conf    config.Config
	sampler acquire.Sampler
}

// promptSampler collects a sweep interactively, one sample at a time. It
// stands where a hardware acquisition source would plug in.
type promptSampler struct{}

func (promptSampler) Acquire() (sweep.Record, error) {
	samples, err := prompts.RunSweepForm()
	if err != nil {
		return sweep.Record{}, &acquire.Error{Source: "interactive entry", Err: err}
	}
	return sweep.NewRecord(samples), nil
}

// menu maps each option to its handler. The quit handler is the only one
// that ends the loop.
var menu = []struct {
	label string
	run   func(*session) (quit bool, err error)
}{
	{"Quit experiment", (*session).quit},
	{"Add entry to datalog", (*session).addEntry},
	{"Remove entry from datalog", (*session).removeEntry},
	{"Update datalog entry", (*session).updateEntry},
	{"Display current datalog", (*session).displayLog},
	{"View datalog entry", (*session).viewEntry},
	{"Save datalog entries to files", (*session).saveLog},
	{"Display estimate results", (*session).displayResults},
	{"Save results", (*session).saveResults},
	{"Clear datalog", (*session).clearLog},
	{"Archive session", (*session).archiveSession},
	{"Restore archived session", (*session).restoreSession},
}

func NewRunCommand() *cobra.Command {
	var name string
	var dataDir string

	cmd := &cobra.Command{
		Use:     "run",
		GroupID: gSession,
		Short:   "Run an interactive lab session",
		Long: `Run an interactive lab session.

Walks through the same steps as the paper procedure: add one entry per light
source (recording a retarding-voltage sweep or loading one from CSV), then
display or save the estimated Planck constant and work function.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.NewFile(configPath)
			if err != nil {
				return err
			}
			if name == "" {
				name = conf.ExperimentName()
			}
			if dataDir == "" {
				dataDir = conf.DataDir()
			}
			conf.SetDataDir(dataDir)

			s := &session{
				exp:     experiment.New(name, physics.Default()),
				conf:    conf,
				sampler: promptSampler{},
			}

			cmd.Printf("Beginning experiment '%s'\n", s.exp.Name())
			for {
				quit, err := s.step()
				if err != nil {
					errorf("%v", err)
					continue
				}
				if quit {
					return nil
				}
			}
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "experiment name (defaults to the configured name)")
	cmd.Flags().StringVarP(&dataDir, "data-dir", "d", "", "directory for saved files (defaults to the configured directory)")

	return cmd
}

func (s *session) step() (bool, error) {
	labels := make([]string, len(menu))
	for i, opt := range menu {
		labels[i] = fmt.Sprintf("%2d. %s", i, opt.label)
	}

	var picked string
	if err := prompts.Select("EXPERIMENT OPTIONS", labels, &picked); err != nil {
		return false, err
	}
	index, err := strconv.Atoi(strings.TrimSpace(strings.SplitN(picked, ".", 2)[0]))
	if err != nil {
		return false, err
	}

	fmt.Printf("OPTION %d: %s\n", index, menu[index].label)
	return menu[index].run(s)
}

func (s *session) quit() (bool, error) {
	fmt.Println("Warning - Unsaved data will be lost.")
	proceed := false
	if err := prompts.Confirm("Would you like to proceed?", &proceed); err != nil {
		return false, err
	}
	return proceed, nil
}

// collectEntry builds a fully populated entry from user input, either by
// loading a CSV sweep or by sampling interactively.
func (s *session) collectEntry(in prompts.EntryInput) (*datalog.Entry, error) {
	kind, err := datalog.ParseSourceKind(in.Kind)
	if err != nil {
		return nil, err
	}
	e, err := datalog.NewEntry(in.WavelengthNM, kind)
	if err != nil {
		return nil, err
	}

	var rec sweep.Record
	if in.FromFile {
		rec, err = store.LoadSweepCSV(in.FilePath)
	} else {
		rec, err = s.sampler.Acquire()
	}
	if err != nil {
		return nil, err
	}

	if err := e.SetSweep(rec); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *session) addEntry() (bool, error) {
	var in prompts.EntryInput
	if err := prompts.RunEntryForm(&in); err != nil {
		return false, err
	}

	e, err := s.collectEntry(in)
	if err != nil {
		return false, err
	}

	s.exp.Datalog().Add(e)
	fmt.Println("[+]Added entry:")
	fmt.Println("->", e)
	return false, nil
}

func (s *session) removeEntry() (bool, error) {
	if s.exp.Datalog().Size() == 0 {
		fmt.Println("[+]The datalog is already empty")
		return false, nil
	}
	fmt.Print(s.exp.DatalogListing())
	fmt.Println("Warning - This action cannot be undone")

	index, err := s.pickIndex("Select the entry to remove")
	if err != nil {
		return false, fmt.Errorf("invalid entry: no entries were removed: %w", err)
	}
	e, err := s.exp.Datalog().Remove(index)
	if err != nil {
		return false, fmt.Errorf("invalid entry: no entries were removed: %w", err)
	}
	fmt.Println("[+]Removed entry:")
	fmt.Println("->", e)
	return false, nil
}

func (s *session) updateEntry() (bool, error) {
	if s.exp.Datalog().Size() == 0 {
		fmt.Println("[+]The datalog is currently empty")
		return false, nil
	}
	fmt.Print(s.exp.DatalogListing())
	fmt.Println("Warning - This operation will overwrite existing data")

	index, err := s.pickIndex("Select the entry to update")
	if err != nil {
		return false, fmt.Errorf("invalid entry: no entries were updated: %w", err)
	}
	old, err := s.exp.Datalog().Get(index)
	if err != nil {
		return false, fmt.Errorf("invalid entry: no entries were updated: %w", err)
	}
	fmt.Printf("%2d. %s\n", index, old)

	// The replacement keeps the wavelength and kind; only the sweep data
	// is collected again.
	in := prompts.EntryInput{Kind: string(old.Kind()), WavelengthNM: old.WavelengthNM()}
	fromFile := false
	if err := prompts.Confirm("Load sweep data from a CSV file?", &fromFile); err != nil {
		return false, err
	}
	in.FromFile = fromFile
	if fromFile {
		if err := prompts.Input("CSV file path", &in.FilePath, prompts.RequiredValidator("path")); err != nil {
			return false, err
		}
	}

	e, err := s.collectEntry(in)
	if err != nil {
		return false, err
	}

	if _, err := s.exp.Datalog().Update(index, e); err != nil {
		return false, fmt.Errorf("invalid entry: no entries were updated: %w", err)
	}
	fmt.Println("[+]Updated entry:")
	fmt.Println("->", e)
	return false, nil
}

func (s *session) displayLog() (bool, error) {
	if s.exp.Datalog().Size() == 0 {
		fmt.Println("[+]The datalog is currently empty")
		return false, nil
	}
	fmt.Print(s.exp.DatalogListing())
	return false, nil
}

func (s *session) viewEntry() (bool, error) {
	if s.exp.Datalog().Size() == 0 {
		fmt.Println("[+]The datalog is currently empty")
		return false, nil
	}
	fmt.Print(s.exp.DatalogListing())

	index, err := s.pickIndex("Select the entry to view")
	if err != nil {
		return false, fmt.Errorf("invalid entry: unable to view entry: %w", err)
	}
	e, err := s.exp.Datalog().Get(index)
	if err != nil {
		return false, fmt.Errorf("invalid entry: unable to view entry: %w", err)
	}

	fmt.Printf("%2d. %s\n\n", index, e)
	fmt.Printf("%s  %s  %s  %s\n",
		bold("retarding_voltage"), bold("unblocked_current"),
		bold("blocked_current"), bold("photocurrent"))
	for _, sample := range e.Sweep().Samples() {
		fmt.Printf("%17g  %17g  %15g  %12g\n",
			sample.RetardingVoltage, sample.UnblockedCurrent,
			sample.BlockedCurrent, sample.Photocurrent())
	}
	return false, nil
}

func (s *session) saveLog() (bool, error) {
	if s.exp.Datalog().Size() == 0 {
		fmt.Println("[+]The datalog is currently empty")
		return false, nil
	}
	fmt.Println("Warning - This action may overwrite existing save files")
	proceed := false
	if err := prompts.Confirm("Would you like to proceed?", &proceed); err != nil {
		return false, err
	}
	if !proceed {
		return false, nil
	}

	dir, err := s.exp.EnsureOutputDir(s.conf.DataDir())
	if err != nil {
		return false, err
	}
	for _, e := range s.exp.Datalog().Entries() {
		if err := store.SaveEntry(dir, e); err != nil {
			return false, err
		}
	}
	fmt.Println("[+]The datalog has been saved")
	return false, nil
}

func (s *session) displayResults() (bool, error) {
	if s.exp.Datalog().Size() == 0 {
		fmt.Println("[+]The datalog is currently empty")
		return false, nil
	}
	_, res, err := s.exp.Results()
	if err != nil {
		return false, err
	}
	fmt.Println(s.exp.Report(res))
	return false, nil
}

func (s *session) saveResults() (bool, error) {
	if s.exp.Datalog().Size() == 0 {
		fmt.Println("[+]The datalog is currently empty")
		return false, nil
	}
	if err := s.exp.SaveAll(s.conf.DataDir()); err != nil {
		return false, err
	}
	fmt.Println("[+]The results have been saved")
	return false, nil
}

func (s *session) clearLog() (bool, error) {
	if s.exp.Datalog().Size() == 0 {
		fmt.Println("[+]The datalog is already empty")
		return false, nil
	}
	fmt.Println("Warning - This action cannot be undone")
	proceed := false
	if err := prompts.Confirm("Would you like to proceed?", &proceed); err != nil {
		return false, err
	}
	if proceed {
		s.exp.Datalog().Clear()
		fmt.Println("[+]The datalog has been cleared")
	}
	return false, nil
}

func (s *session) archiveSession() (bool, error) {
	if s.exp.Datalog().Size() == 0 {
		fmt.Println("[+]The datalog is currently empty")
		return false, nil
	}
	arch, err := store.OpenArchive(s.conf.ArchivePath())
	if err != nil {
		return false, err
	}
	defer func() {
		if err := arch.Close(); err != nil {
			logrus.Warnf("failed to close archive: %v", err)
		}
	}()

	if err := arch.SaveSession(s.exp.Name(), s.exp.Datalog()); err != nil {
		return false, err
	}
	prompts.PrintResult([]prompts.ResultField{
		{Label: "Session", Value: s.exp.Name()},
		{Label: "Entries", Value: strconv.Itoa(s.exp.Datalog().Size())},
		{Label: "Archive", Value: s.conf.ArchivePath()},
	}, "Session archived")
	return false, nil
}

func (s *session) restoreSession() (bool, error) {
	arch, err := store.OpenArchive(s.conf.ArchivePath())
	if err != nil {
		return false, err
	}
	defer func() {
		if err := arch.Close(); err != nil {
			logrus.Warnf("failed to close archive: %v", err)
		}
	}()

	names, err := arch.ListSessions()
	if err != nil {
		return false, err
	}
	if len(names) == 0 {
		fmt.Println("[+]The archive is empty")
		return false, nil
	}

	var picked string
	if err := prompts.Select("Select the session to restore", names, &picked); err != nil {
		return false, err
	}
	d, err := arch.LoadSession(picked)
	if err != nil {
		return false, err
	}

	s.exp.Restore(d)
	fmt.Printf("[+]Restored session '%s' (%d entries)\n", picked, d.Size())
	return false, nil
}

func (s *session) pickIndex(title string) (int, error) {
	var raw string
	if err := prompts.Input(title, &raw, prompts.RequiredValidator("index")); err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(raw))
}
