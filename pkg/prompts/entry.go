package prompts

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/photolab/photolab/pkg/sweep"
)

// EntryInput is what the add/update flows collect before any measurement
// data exists.
type EntryInput struct {
	Kind         string
	WavelengthNM float64
	FromFile     bool
	FilePath     string
}

// RunEntryForm collects the source kind, wavelength, and data origin. When
// the user chooses to load from a file it also collects the path.
func RunEntryForm(in *EntryInput) error {
	var wavelength string
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Source kind").
				Options(
					huh.NewOption("LED", "LED"),
					huh.NewOption("Laser", "Laser"),
				).
				Value(&in.Kind),
			huh.NewInput().
				Title("Wavelength (nm)").
				Prompt(": ").
				Inline(true).
				Value(&wavelength).
				Validate(PositiveNumberValidator("wavelength")),
			huh.NewConfirm().
				Title("Load sweep data from a CSV file?").
				Value(&in.FromFile),
		),
	).WithTheme(Theme()).Run(); err != nil {
		return err
	}

	// Validated above.
	in.WavelengthNM, _ = strconv.ParseFloat(strings.TrimSpace(wavelength), 64)

	if in.FromFile {
		return Input("CSV file path", &in.FilePath, RequiredValidator("path"))
	}
	return nil
}

// RunSweepForm collects sweep samples one at a time until the user stops.
func RunSweepForm() ([]sweep.Sample, error) {
	var samples []sweep.Sample
	for {
		var v, ub, bl string
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Retarding voltage (V)").
					Prompt(": ").
					Inline(true).
					Value(&v).
					Validate(NumberValidator("voltage")),
				huh.NewInput().
					Title("Unblocked current (A)").
					Prompt(": ").
					Inline(true).
					Value(&ub).
					Validate(NumberValidator("current")),
				huh.NewInput().
					Title("Blocked current (A)").
					Prompt(": ").
					Inline(true).
					Value(&bl).
					Validate(NumberValidator("current")),
			),
		).WithTheme(Theme()).Run(); err != nil {
			return nil, err
		}

		sample := sweep.Sample{}
		sample.RetardingVoltage, _ = strconv.ParseFloat(strings.TrimSpace(v), 64)
		sample.UnblockedCurrent, _ = strconv.ParseFloat(strings.TrimSpace(ub), 64)
		sample.BlockedCurrent, _ = strconv.ParseFloat(strings.TrimSpace(bl), 64)
		samples = append(samples, sample)

		more := true
		if err := Confirm("Record another sample?", &more); err != nil {
			return nil, err
		}
		if !more {
			return samples, nil
		}
	}
}
