package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inkforge/inkforge/internal/style"
	"github.com/inkforge/inkforge/internal/supervisor"
	"github.com/inkforge/inkforge/internal/tui/agentwatch"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	agentStatusJSON  bool
	agentStatusWatch bool
)

var agentCmd = &cobra.Command{
	Use:     "agent",
	GroupID: GroupAgent,
	Short:   "Manage the agent backend process",
}

var agentStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report agent status (running, ready, pid)",
	Long: `Report whether the supervisor holds a live agent process and whether the
agent is accepting connections on its port.

Ready means "accepting TCP connections", not "fully initialized".
Exits 1 when the agent is not ready (for scripting).`,
	RunE: runAgentStatus,
}

var agentStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Launch the agent backend",
	Long: `Launch the agent backend and return. The agent keeps running detached;
its pid is recorded under the data directory, so a later agent stop,
agent restart, or inkforge run from any process will find it. Starting
while an agent is already recorded as live is a no-op.`,
	RunE: lifecycleRunE(func(s *supervisor.Supervisor) (string, error) { return s.Start() }),
}

var agentStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Terminate the agent and its process tree",
	Long: `Terminate the agent and its whole process tree, whether it was launched
by this process or found through the pid record in the data directory.`,
	RunE: lifecycleRunE(func(s *supervisor.Supervisor) (string, error) { return s.Stop() }),
}

var agentRestartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart the agent backend",
	RunE:  lifecycleRunE(func(s *supervisor.Supervisor) (string, error) { return s.Restart() }),
}

var agentWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live agent status view",
	RunE:  runAgentWatch,
}

func init() {
	agentStatusCmd.Flags().BoolVar(&agentStatusJSON, "json", false, "Output as JSON")
	agentStatusCmd.Flags().BoolVarP(&agentStatusWatch, "watch", "w", false, "Refresh continuously")
	agentCmd.AddCommand(agentStatusCmd, agentStartCmd, agentStopCmd, agentRestartCmd, agentWatchCmd)
	rootCmd.AddCommand(agentCmd)
}

// lifecycleRunE adapts a supervisor operation into a cobra handler. The
// operation's message string is printed either way; only spawn failures
// surface as command errors.
func lifecycleRunE(op func(*supervisor.Supervisor) (string, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		msg, err := op(a.sup)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}
}

func runAgentStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	for {
		st := a.sup.Status()

		if agentStatusJSON {
			data, err := json.Marshal(st)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		} else {
			printStatus(cmd, st)
		}

		if !agentStatusWatch {
			if !st.Ready {
				return NewSilentExit(1)
			}
			return nil
		}
		time.Sleep(2 * time.Second)
	}
}

func printStatus(cmd *cobra.Command, st supervisor.HealthStatus) {
	out := cmd.OutOrStdout()
	switch {
	case !st.Running:
		fmt.Fprintf(out, "%s agent stopped\n", style.Dim.Render("●"))
	case st.Ready:
		fmt.Fprintf(out, "%s agent running, ready %s\n",
			style.Success.Render("●"), style.Dim.Render(fmt.Sprintf("(pid %d)", *st.PID)))
	default:
		fmt.Fprintf(out, "%s agent running, not ready %s\n",
			style.Warning.Render("●"), style.Dim.Render(fmt.Sprintf("(pid %d)", *st.PID)))
	}
}

func runAgentWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("agent watch requires a terminal (use `agent status --watch` instead)")
	}

	p := tea.NewProgram(agentwatch.NewModel(a.sup), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running watch view: %w", err)
	}
	// Leaving the watch view stops supervising; take the agent down with us.
	a.sup.Shutdown()
	return nil
}
