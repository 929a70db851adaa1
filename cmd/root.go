package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"goplss/pkg/logger"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "goplss",
	Short: "Parse US Public Land Survey System (PLSS) land descriptions",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logLevel)
	},
}

// Execute runs the root command, exiting the process on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug|info|warn|error")
}
