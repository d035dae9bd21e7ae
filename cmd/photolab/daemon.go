package main

import (
	"github.com/spf13/cobra"

	"github.com/photolab/photolab/pkg/config"
	"github.com/photolab/photolab/pkg/daemon"
)

func NewDaemonCommand() *cobra.Command {
	var name string
	var dataDir string

	cmd := &cobra.Command{
		Use:     "daemon",
		GroupID: gDaemon,
		Short:   "Run the photolab daemon",
		Long: `Run the photolab daemon.

Serves one experiment session over a unix socket so the session commands
(list, add, remove, results, ...) can drive it, possibly from several
terminals. Mutations are serialized; entry indices stay consistent.`,
		RunE: func(_ *cobra.Command, _ []string) error {
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
			return daemon.Run(unixSocketPath, name, dataDir)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "experiment name (defaults to the configured name)")
	cmd.Flags().StringVarP(&dataDir, "data-dir", "d", "", "directory for saved files (defaults to the configured directory)")

	return cmd
}
