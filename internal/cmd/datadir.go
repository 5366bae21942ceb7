package cmd

import (
	"fmt"

	"github.com/inkforge/inkforge/internal/config"
	"github.com/spf13/cobra"
)

var dataDirCmd = &cobra.Command{
	Use:     "data-dir",
	GroupID: GroupDiag,
	Short:   "Print the resolved data directory",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.DataDir())
	},
}

func init() {
	rootCmd.AddCommand(dataDirCmd)
}
