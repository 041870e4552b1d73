package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

const appName = "aie-ini"

// Exit codes returned by Run.
const (
	ExitSuccess    = 0
	ExitFailure    = 1
	ExitUsageError = 2
)

const usageLine = "usage: " + appName + " [build_dir] [out_dir] [board_name]"

type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func exactlyThreeArgs(_ *cobra.Command, args []string) error {
	if len(args) != 3 {
		return &usageError{msg: "The input para number is not correct!"}
	}
	return nil
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		configFile string
		logLevel   string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   appName + " [flags] BUILD_DIR OUT_DIR BOARD_NAME",
		Short: "Merge plugin INI fragments for a target board",
		Long: "Collects the plugin configuration fragments of a build tree, keeps the sections\n" +
			"that apply to BOARD_NAME and writes them as OUT_DIR/etc/ai_engine_plugin.ini.",
		Args:          exactlyThreeArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			buildDir, outDir, board := args[0], args[1], args[2]

			config, err := loadConfig(configFile)
			if err != nil {
				logger := newLogger(logLevel, stderr)
				logger.Error().Err(err).Msg("configuration")
				return err
			}
			if logLevel != "" {
				config.LogLevel = logLevel
			}
			logger := newLogger(config.LogLevel, stderr)
			manager := NewIniManager(config, logger)

			if dryRun {
				merged, err := manager.Build(buildDir, board)
				if err == nil {
					err = writeAnnotated(stdout, merged)
				}
				if err != nil {
					logger.Error().Err(err).Msg("failed to generate plugin configuration")
				}
				return err
			}

			if _, err := manager.CopyConfigIni(buildDir, outDir, board); err != nil {
				logger.Error().Err(err).Msg("failed to generate plugin configuration")
				return err
			}
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	flags := cmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "load tool configuration from `FILE` (INI)")
	flags.StringVar(&logLevel, "log-level", "", "log `LEVEL` (debug, info, warn, error); defaults to $LOG_LEVEL or info")
	flags.BoolVar(&dryRun, "dry-run", false, "print the generated configuration to stdout instead of writing it")

	return cmd
}

// Run executes the command line in args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprintf(stdout, "[ERROR]%s\n", uerr.msg)
		fmt.Fprintln(stdout, usageLine)
		return ExitUsageError
	}
	// Runtime errors were already logged by the command.
	return ExitFailure
}
