// Public domain.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const versionString = "kindertrigger version 2.0 Go source"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the program version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionString)
	},
}
