package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/inkforge/inkforge/internal/bridge"
	"github.com/spf13/cobra"
)

var callCmd = &cobra.Command{
	Use:     "call <operation> [json-args]",
	GroupID: GroupDiag,
	Short:   "Invoke a bridge operation directly",
	Long: `Invoke one of the operations the GUI shell calls over the bridge and
print the JSON result. Useful for debugging the shell without a GUI.

Examples:
  inkforge call agent_status
  inkforge call create_project '{"name":"Nightfall","genre":"fantasy"}'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCall,
}

func init() {
	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	var raw json.RawMessage
	if len(args) == 2 {
		raw = json.RawMessage(args[1])
		if !json.Valid(raw) {
			return fmt.Errorf("arguments must be valid JSON: %q", args[1])
		}
	}

	result, err := a.bridge.Call(args[0], raw)
	if errors.Is(err, bridge.ErrUnknownOperation) {
		return fmt.Errorf("%w (known operations: %s)", err, strings.Join(a.bridge.Operations(), ", "))
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(result))
	return nil
}
