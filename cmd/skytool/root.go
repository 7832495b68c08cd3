package main

import (
	"github.com/spf13/cobra"

	"github.com/Faultbox/skyrig/internal/config"
	"github.com/Faultbox/skyrig/internal/logger"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "skytool",
		Short: "Sky rig command-line utility",
		Long:  "Inspect the time-of-day lighting model, simulate the camera rig headless and manage configuration files.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logLevel == "" {
				return nil
			}
			return logger.Setup(logger.Options{Level: opts.logLevel, Console: cmd.ErrOrStderr()})
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log", "", "Log level (debug, info, warn, error); silent when empty")

	cmd.AddCommand(
		newSampleCmd(opts),
		newSimulateCmd(opts),
		newConfigCmd(opts),
	)
	return cmd
}

func (o *rootOptions) load() (*config.Config, error) {
	return config.LoadFile(o.configPath)
}
