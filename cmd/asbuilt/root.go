package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/drawingdeck/asbuilt/cmd/asbuilt/commands"
	"github.com/drawingdeck/asbuilt/cmd/asbuilt/opts"
)

// NewRootCmd builds the asbuilt command tree
func NewRootCmd() *cobra.Command {
	ro := &opts.RootOpts{Version: resolveVersion().Short()}

	cmd := &cobra.Command{
		Use:   "asbuilt",
		Short: "Reconcile an accommodation schedule against a drawing register and extract the matched drawings",
		Long: `asbuilt matches flat/house references from an accommodation schedule
against drawing titles in an architect register, copies the matched drawings
into an output tree grouped by reference, and writes a multi-sheet report of
successes, failures, and unused entries.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := setupLogging(ro)
			if err != nil {
				return err
			}
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
	}

	addRootFlags(cmd, ro)

	cmd.AddCommand(commands.NewRunCmd(ro))
	cmd.AddCommand(commands.NewInspectCmd(ro))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, ro *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&ro.ConfigFile, "config", "c", "asbuilt.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&ro.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&ro.LogFile, "log-file", "", "also write JSON logs to this file")
}

// setupLogging configures zerolog based on flags. Console output goes to
// stderr; the optional log file gets the raw JSON stream.
func setupLogging(ro *opts.RootOpts) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if ro.Debug {
		level = zerolog.DebugLevel
	}

	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr}}
	if ro.LogFile != "" {
		f, err := os.OpenFile(ro.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), errors.Errorf("opening log file: %w", err)
		}
		writers = append(writers, f)
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger, nil
}
