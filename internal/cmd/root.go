// Package cmd implements the inkforge command surface.
package cmd

import (
	"fmt"
	"os"

	"github.com/inkforge/inkforge/internal/style"
	"github.com/spf13/cobra"
)

// Command group IDs for help organization.
const (
	GroupAgent   = "agent"
	GroupLibrary = "library"
	GroupDiag    = "diag"
)

var rootCmd = &cobra.Command{
	Use:   "inkforge",
	Short: "Inkforge writing studio shell",
	Long: `Inkforge is the desktop shell core for the Inkforge writing studio.

It supervises the agent backend process (launch, health, crash recovery,
tree termination) and manages the local project library.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupAgent, Title: "Agent supervision:"},
		&cobra.Group{ID: GroupLibrary, Title: "Project library:"},
		&cobra.Group{ID: GroupDiag, Title: "Diagnostics:"},
	)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if code, ok := IsSilentExit(err); ok {
			return code
		}
		fmt.Fprintf(os.Stderr, "%s %v\n", style.ErrorPrefix, err)
		return 1
	}
	return 0
}
