package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	appconfig "github.com/darbotlabs/ufodoctor/internal/adapters/outbound/config"
	"github.com/darbotlabs/ufodoctor/internal/adapters/outbound/gitinfo"
	"github.com/darbotlabs/ufodoctor/internal/adapters/outbound/install"
	"github.com/darbotlabs/ufodoctor/internal/adapters/outbound/probe"
	"github.com/darbotlabs/ufodoctor/internal/adapters/outbound/pydeps"
	"github.com/darbotlabs/ufodoctor/internal/adapters/outbound/tui"
	"github.com/darbotlabs/ufodoctor/internal/application"
	"github.com/darbotlabs/ufodoctor/internal/domain"
)

func newDiagnoseCmd() *cobra.Command {
	var (
		path          string
		configPath    string
		agents        []string
		withProbe     bool
		jsonOutput    bool
		skipDeps      bool
		skipStructure bool
		python        string
		readyPercent  int
		usablePercent int
	)

	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Run all installation checks",
		Long:  "Run dependency, structure, configuration, environment-variable and heuristic checks over a UFO² checkout, with an optional live connectivity probe.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := application.NewDiagnoseService(
				appconfig.New(),
				install.New(),
				pydeps.New(python),
				probe.New(),
				gitinfo.New(),
			)

			report := svc.Run(cmd.Context(), application.DiagnoseOptions{
				InstallRoot:      path,
				ConfigPath:       configPath,
				Agents:           agents,
				ProbeConfirmed:   withProbe,
				SkipDependencies: skipDeps,
				SkipStructure:    skipStructure,
			})

			policy := domain.VerdictPolicy{ReadyPercent: readyPercent, UsablePercent: usablePercent}
			verdict := policy.Verdict(report.PassPercent())

			if jsonOutput {
				if err := renderDiagnoseJSON(cmd, report, verdict); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report, policy))
			}

			if report.StructuralFailure() {
				return fmt.Errorf("configuration checks failed")
			}
			if !verdict.Usable() {
				return fmt.Errorf("installation is not ready (%d%% of checks passed)", report.PassPercent())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "UFO² checkout root")
	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (defaults to <path>/ufo/config/config.yaml)")
	cmd.Flags().StringSliceVar(&agents, "agent", nil, "Agent section(s) to diagnose (defaults to HOST_AGENT plus any optional agents present)")
	cmd.Flags().BoolVar(&withProbe, "probe", false, "Also send one live request to the configured API")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&skipDeps, "skip-deps", false, "Skip the Python dependency check")
	cmd.Flags().BoolVar(&skipStructure, "skip-structure", false, "Skip the directory structure check")
	cmd.Flags().StringVar(&python, "python", "", "Python interpreter for the dependency check (default: python)")
	cmd.Flags().IntVar(&readyPercent, "ready-threshold", domain.DefaultVerdictPolicy().ReadyPercent, "Pass percentage required for a 'ready' verdict")
	cmd.Flags().IntVar(&usablePercent, "usable-threshold", domain.DefaultVerdictPolicy().UsablePercent, "Pass percentage required for a 'usable with issues' verdict")

	return cmd
}

func renderDiagnoseJSON(cmd *cobra.Command, report *domain.Report, verdict domain.Verdict) error {
	out := struct {
		*domain.Report
		PassPercent int            `json:"pass_percent"`
		Verdict     domain.Verdict `json:"verdict"`
	}{report, report.PassPercent(), verdict}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
