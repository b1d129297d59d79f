package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleitonmarx/envschema/config"
	"github.com/cleitonmarx/envschema/internal/logging"
)

// newLogger is replaced in tests.
var newLogger = logging.New

// newProvider is replaced in tests.
var newProvider = func() config.Provider { return config.NewEnvVarProvider() }

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "envschema",
		Short:         "Resolve typed configuration schemas against the environment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(newCheckCmd())
	return rootCmd
}

// loggerFor builds the logger configured by the persistent log-level flag.
func loggerFor(cmd *cobra.Command) (*zap.Logger, error) {
	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, err
	}
	return newLogger(level)
}
