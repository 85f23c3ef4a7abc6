// Public domain.

// Package cli wires the kindertrigger command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/lulin-kinder/trigger/internal/target"
)

var telescopeFlag string

var rootCmd = &cobra.Command{
	Use:   "kindertrigger",
	Short: "Compile observation triggers into telescope control scripts",
	Long: `kindertrigger maintains per-telescope target sets and compiles them
into ACP control scripts and observer summaries for the Lulin SLT and
LOT telescopes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&telescopeFlag, "telescope", "t", "SLT",
		"telescope profile (SLT or LOT)")
	rootCmd.AddCommand(compileCmd, targetsCmd, sendCmd, versionCmd)
}

func telescope() (target.Telescope, error) {
	return target.ParseTelescope(telescopeFlag)
}
