// Package cli implements the stepprogress command line: the demo window, PNG
// export and a terminal inspection of the geometry a style produces.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/edward-ap/stepprogress/internal/progress"
)

var traceLog bool

var rootCmd = &cobra.Command{
	Use:   "stepprogress",
	Short: "Step progress bar widget demo and renderer",
	Long: `stepprogress draws a rounded progress bar with marker ticks and labels.
Without a subcommand it opens the demo window.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	Args:          cobra.NoArgs,
	RunE:          runShow,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		progress.SetTraceLoggingEnabled(traceLog)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&traceLog, "trace", false, "log notification decisions and skipped markers")
	rootCmd.Flags().StringVar(&showStyle, "style", "", "style file (json, yaml or toml)")
	rootCmd.AddCommand(showCmd, renderCmd, inspectCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
