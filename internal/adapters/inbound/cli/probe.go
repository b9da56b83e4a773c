package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	appconfig "github.com/darbotlabs/ufodoctor/internal/adapters/outbound/config"
	"github.com/darbotlabs/ufodoctor/internal/adapters/outbound/probe"
	"github.com/darbotlabs/ufodoctor/internal/adapters/outbound/tui"
	"github.com/darbotlabs/ufodoctor/internal/application"
	"github.com/darbotlabs/ufodoctor/internal/domain"
)

func newProbeCmd() *cobra.Command {
	var (
		path       string
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "probe [agent]",
		Short: "Send one test request to the configured API",
		Long:  "Resolve the agent configuration and send a single minimal chat request to verify connectivity. Asks for confirmation before any network call unless --yes is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			agent := domain.HostAgent
			if len(args) == 1 {
				agent = args[0]
			}

			store := appconfig.New()
			raw, err := store.Load(resolveConfigPath(path, configPath))
			if err != nil {
				return err
			}
			section, err := domain.ResolveAgentSection(raw, agent)
			if err != nil {
				return err
			}
			resolved, envFindings := domain.ResolveAgentConfig(section, os.LookupEnv)
			if domain.HasSeverity(envFindings, domain.SeverityFail) {
				for _, f := range envFindings {
					if f.Severity == domain.SeverityFail {
						return fmt.Errorf("%s", f.Message)
					}
				}
			}
			if findings := domain.ValidateStructure(agent, resolved); !domain.StructureOK(findings) {
				return fmt.Errorf("%s configuration is incomplete; run `ufodoctor diagnose` for details", agent)
			}

			// The confirmation gate lives here, not in the engine.
			if !yes && !confirm(cmd, "This will send a request to the configured API endpoint. Continue? [y/N]: ") {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderConnectivity(agent, domain.ConnectivityResult{
					Outcome: domain.ConnectivitySkipped,
					Detail:  "declined by user",
				}))
				return nil
			}

			result := probe.New().Probe(cmd.Context(), resolved)
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderConnectivity(agent, result))
			if result.Outcome == domain.ConnectivityFailure {
				return fmt.Errorf("connectivity test failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "UFO² checkout root")
	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (defaults to <path>/ufo/config/config.yaml)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}

func resolveConfigPath(path, configPath string) string {
	if configPath != "" {
		return configPath
	}
	if path == "" {
		path = "."
	}
	return filepath.Join(path, filepath.FromSlash(application.DefaultConfigRelPath))
}
