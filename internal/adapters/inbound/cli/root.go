package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ufodoctor",
		Short:         "Diagnose a UFO² installation",
		Long:          "ufodoctor validates a UFO² desktop-agent installation before the agent runs: Python dependencies, directory layout, agent configuration, environment-variable indirection, misconfiguration heuristics, and optional live API connectivity.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDiagnoseCmd())
	cmd.AddCommand(newProbeCmd())
	cmd.AddCommand(newFixCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
