package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	appconfig "github.com/darbotlabs/ufodoctor/internal/adapters/outbound/config"
	"github.com/darbotlabs/ufodoctor/internal/adapters/outbound/tui"
	"github.com/darbotlabs/ufodoctor/internal/application"
	"github.com/darbotlabs/ufodoctor/internal/domain"
)

func newFixCmd() *cobra.Command {
	var (
		path       string
		configPath string
		agent      string
		dryRun     bool
		jsonOutput bool
		opts       domain.FixOptions
	)

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Fix common Azure OpenAI configuration issues",
		Long:  "Detect placeholder endpoints, placeholder keys and model names used as deployment identifiers, and rewrite them with the supplied values. The original config is copied to a .backup sibling before any write.",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.DryRun = dryRun
			svc := application.NewFixService(appconfig.New())

			plan, err := svc.ApplyFixes(resolveConfigPath(path, configPath), agent, opts)
			if err != nil {
				return fmt.Errorf("fix failed: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(plan)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFixPlan(plan))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "UFO² checkout root")
	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (defaults to <path>/ufo/config/config.yaml)")
	cmd.Flags().StringVar(&agent, "agent", domain.HostAgent, "Agent section to fix")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the plan without writing anything")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&opts.Base, "base", "", "Replacement Azure OpenAI endpoint URL")
	cmd.Flags().StringVar(&opts.Key, "key", "", "Replacement API key")
	cmd.Flags().StringVar(&opts.Deployment, "deployment", "", "Replacement deployment name")

	return cmd
}
