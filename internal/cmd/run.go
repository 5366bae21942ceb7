package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/inkforge/inkforge/internal/constants"
	"github.com/inkforge/inkforge/internal/lock"
	"github.com/inkforge/inkforge/internal/style"
	"github.com/spf13/cobra"
)

var (
	runNoAutoStart bool
	runNoWatchdog  bool
)

var runCmd = &cobra.Command{
	Use:     "run",
	GroupID: GroupAgent,
	Short:   "Host the agent supervisor for the application lifetime",
	Long: `Run the supervisor loop: acquire the single-instance lock, launch the
agent backend, watch for crashes, and terminate the agent's whole process
tree on shutdown.

This is the process the GUI shell embeds; running it standalone is useful
during development.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runNoAutoStart, "no-auto-start", false, "Do not launch the agent at startup")
	runCmd.Flags().BoolVar(&runNoWatchdog, "no-watchdog", false, "Disable crash recovery")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	// One supervisor per data directory, across OS processes.
	instance, err := lock.Acquire(a.dataDir)
	if err != nil {
		return err
	}
	defer instance.Release()

	if a.settings.AutoStart && !runNoAutoStart {
		if msg, err := a.sup.Start(); err != nil {
			// Startup spawn failures are not fatal: the slot stays empty
			// and start_agent can retry.
			style.PrintWarning("%v", err)
		} else {
			style.PrintSuccess("%s", msg)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if a.settings.Watchdog && !runNoWatchdog {
		go a.sup.Watchdog(ctx)
	}

	fmt.Println(style.Info.Render(fmt.Sprintf("Supervising agent on 127.0.0.1:%d (data dir %s)",
		constants.AgentPort, a.dataDir)))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	fmt.Printf("\nReceived %s, shutting down\n", sig)

	// Stop the watchdog before tearing down so it cannot respawn mid-exit.
	cancel()
	a.sup.Shutdown()
	return nil
}
