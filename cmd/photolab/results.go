package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func NewResultsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "results",
		GroupID: gSession,
		Short:   "Show the fitted constants for the running session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := apiClient().GetResults()
			if err != nil {
				return fmt.Errorf("failed to get results: %v", err)
			}

			cmd.Println(bold("Energy table:"))
			cmd.Printf("  %s  %s  %s  %s\n",
				bold("wavelength_m"), bold("frequency_hz"),
				bold("stopping_voltage_v"), bold("kinetic_energy_j"))
			for _, r := range res.Rows {
				cmd.Printf("  %12.4g  %12.6g  %18.4g  %16.6g\n",
					r.WavelengthM, r.FrequencyHz, r.StoppingVoltageV, r.KineticEnergyJ)
			}
			cmd.Println()

			cmd.Println(bold("Estimates:"))
			cmd.Printf("  Planck constant: %s J*s\n", bold("%.8e", res.Fit.PlanckEstimate))
			cmd.Printf("  Work function:   %s eV\n", bold("%.4f", res.Fit.WorkFunction))

			errStr := color.GreenString("%.2f%%", res.Fit.PercentError)
			if res.Fit.PercentError > 10 {
				errStr = color.RedString("%.2f%%", res.Fit.PercentError)
			}
			cmd.Printf("  Percent error:   %s\n", errStr)
			return nil
		},
	}
}

func NewReportCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "report",
		GroupID: gSession,
		Short:   "Print the full result report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := apiClient().GetReport()
			if err != nil {
				return fmt.Errorf("failed to get report: %v", err)
			}
			cmd.Print(text)
			return nil
		},
	}
}

func NewSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "save",
		GroupID: gSession,
		Short:   "Save all session artifacts to files",
		Long: `Save all session artifacts to files.

Writes one CSV per entry, the aggregate source_energies.csv, and report.txt
under the daemon's data directory.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ret, err := apiClient().Save()
			if err != nil {
				return fmt.Errorf("failed to save: %v", err)
			}

			if ret != "" {
				logrus.Infof("daemon responded: %s", ret)
			}
			return nil
		},
	}
}
