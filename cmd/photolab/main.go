package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/photolab/photolab/pkg/client"
)

var (
	logLevel       = "info"
	unixSocketPath = "/tmp/photolab.sock"
	configPath     = "photolab.json"
)

var (
	gSession = "Session:"
	gDaemon  = "Daemon:"
	commandGroups = []string{
		gSession,
		gDaemon,
	}
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	if errors.Is(err, client.ErrDaemonNotRunning) {
		fmt.Fprintln(os.Stderr, "\nError: photolab daemon is not running")
		fmt.Fprintln(os.Stderr, "Start one with 'photolab daemon' before using session commands")
	} else if errors.Is(err, client.ErrPermissionDenied) {
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Check the ownership of the daemon socket")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photolab",
		Short: "photolab estimates Planck's constant from photoelectric-effect sweeps",
		Long: `photolab guides a photoelectric-effect lab session: record or load
retarding-voltage/photocurrent sweeps per light source, derive each source's
stopping voltage, and fit the energy-vs-frequency line to estimate Planck's
constant and the photodiode work function.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")
	globalFlags.StringVar(&unixSocketPath, "daemon-socket", unixSocketPath, "photolab daemon unix socket path")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewRunCommand(),
		NewDaemonCommand(),
		NewListCommand(),
		NewViewCommand(),
		NewAddCommand(),
		NewRemoveCommand(),
		NewClearCommand(),
		NewResultsCommand(),
		NewReportCommand(),
		NewSaveCommand(),
		NewVersionCommand(),
	)

	return cmd
}
