package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/photolab/photolab/pkg/client"
	"github.com/photolab/photolab/pkg/store"
	"github.com/photolab/photolab/pkg/types"
)

func apiClient() *client.Client {
	return client.NewClient(unixSocketPath)
}

func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		GroupID: gSession,
		Short:   "List datalog entries in the running session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := apiClient().ListEntries()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				cmd.Println("[+]The datalog is currently empty")
				return nil
			}
			for _, e := range entries {
				cmd.Printf("%2d. %s @ %gnm (V_s = %gV)\n", e.Index, e.Kind, e.WavelengthNM, e.StoppingVoltageV)
			}
			return nil
		},
	}
}

func NewViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "view [index]",
		GroupID: gSession,
		Short:   "View one datalog entry with its sweep samples",
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIntArg(args, "index")
			if err != nil {
				return err
			}

			e, err := apiClient().GetEntry(index)
			if err != nil {
				return err
			}

			cmd.Printf("%2d. %s @ %gnm (V_s = %gV)\n\n", e.Index, e.Kind, e.WavelengthNM, e.StoppingVoltageV)
			cmd.Printf("%s  %s  %s\n",
				bold("retarding_voltage"), bold("unblocked_current"), bold("blocked_current"))
			for _, s := range e.Samples {
				cmd.Printf("%17g  %17g  %15g\n",
					s.RetardingVoltage, s.UnblockedCurrent, s.BlockedCurrent)
			}
			return nil
		},
	}
}

func NewAddCommand() *cobra.Command {
	var kind string
	var wavelength float64

	cmd := &cobra.Command{
		Use:     "add [sweep.csv]",
		GroupID: gSession,
		Short:   "Add an entry from a sweep CSV file",
		Long: `Add an entry from a sweep CSV file.

The file uses the per-entry format: retarding_voltage, unblocked_current,
blocked_current per row, header optional. The stopping voltage is derived
on the daemon side.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			rec, err := store.LoadSweepCSV(args[0])
			if err != nil {
				return err
			}

			ret, err := apiClient().AddEntry(types.AddEntryRequest{
				Kind:         kind,
				WavelengthNM: wavelength,
				Samples:      rec.Samples(),
			})
			if err != nil {
				return fmt.Errorf("failed to add entry: %v", err)
			}

			logrus.Infof("added entry %d: %s @ %gnm (V_s = %gV)",
				ret.Index, ret.Kind, ret.WavelengthNM, ret.StoppingVoltageV)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "LED", "source kind (LED or Laser)")
	cmd.Flags().Float64VarP(&wavelength, "wavelength", "w", 0, "source wavelength in nm")
	_ = cmd.MarkFlagRequired("wavelength")

	return cmd
}

func NewRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove [index]",
		GroupID: gSession,
		Short:   "Remove a datalog entry",
		RunE: func(_ *cobra.Command, args []string) error {
			index, err := parseIntArg(args, "index")
			if err != nil {
				return err
			}

			e, err := apiClient().RemoveEntry(index)
			if err != nil {
				return fmt.Errorf("failed to remove entry: %v", err)
			}

			logrus.Infof("removed entry %d: %s @ %gnm", e.Index, e.Kind, e.WavelengthNM)
			return nil
		},
	}
}

func NewClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "clear",
		GroupID: gSession,
		Short:   "Clear the datalog",
		RunE: func(_ *cobra.Command, _ []string) error {
			n, err := apiClient().ClearEntries()
			if err != nil {
				return fmt.Errorf("failed to clear datalog: %v", err)
			}

			logrus.Infof("cleared datalog (%d entries)", n)
			return nil
		},
	}
}
