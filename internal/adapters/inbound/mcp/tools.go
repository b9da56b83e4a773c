package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	appconfig "github.com/darbotlabs/ufodoctor/internal/adapters/outbound/config"
	"github.com/darbotlabs/ufodoctor/internal/adapters/outbound/gitinfo"
	"github.com/darbotlabs/ufodoctor/internal/adapters/outbound/install"
	"github.com/darbotlabs/ufodoctor/internal/adapters/outbound/probe"
	"github.com/darbotlabs/ufodoctor/internal/adapters/outbound/pydeps"
	"github.com/darbotlabs/ufodoctor/internal/application"
	"github.com/darbotlabs/ufodoctor/internal/domain"
)

// registerTools registers all diagnostic MCP tools on the given server.
func registerTools(s *server.MCPServer, installRoot string) {
	// 1. ufodoctor_diagnose
	s.AddTool(
		mcplib.NewTool("ufodoctor_diagnose",
			mcplib.WithDescription("Run all installation checks and return the diagnostic report as JSON"),
			mcplib.WithBoolean("probe", mcplib.Description("Also send one live request to the configured API (default: false)")),
			mcplib.WithBoolean("skip_deps", mcplib.Description("Skip the Python dependency check")),
		),
		handleDiagnose(installRoot),
	)

	// 2. ufodoctor_validate_agent
	s.AddTool(
		mcplib.NewTool("ufodoctor_validate_agent",
			mcplib.WithDescription("Validate one agent section of config.yaml: structural fields, env-var resolution and misconfiguration heuristics. No network calls."),
			mcplib.WithString("agent",
				mcplib.Required(),
				mcplib.Description("Agent section name (e.g. HOST_AGENT)"),
			),
		),
		handleValidateAgent(installRoot),
	)

	// 3. ufodoctor_classify_error
	s.AddTool(
		mcplib.NewTool("ufodoctor_classify_error",
			mcplib.WithDescription("Classify a raw provider error message into a diagnostic category with a remediation hint"),
			mcplib.WithString("error",
				mcplib.Required(),
				mcplib.Description("Raw error text from the provider"),
			),
		),
		handleClassifyError(),
	)

	// 4. ufodoctor_fix_plan
	s.AddTool(
		mcplib.NewTool("ufodoctor_fix_plan",
			mcplib.WithDescription("Return the fixable Azure OpenAI configuration issues for an agent without modifying anything"),
			mcplib.WithString("agent", mcplib.Description("Agent section name (default: HOST_AGENT)")),
		),
		handleFixPlan(installRoot),
	)
}

func handleDiagnose(installRoot string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		withProbe, _ := request.GetArguments()["probe"].(bool)
		skipDeps, _ := request.GetArguments()["skip_deps"].(bool)

		svc := application.NewDiagnoseService(
			appconfig.New(),
			install.New(),
			pydeps.New(""),
			probe.New(),
			gitinfo.New(),
		)
		report := svc.Run(ctx, application.DiagnoseOptions{
			InstallRoot:      installRoot,
			ProbeConfirmed:   withProbe,
			SkipDependencies: skipDeps,
		})

		policy := domain.DefaultVerdictPolicy()
		out := struct {
			*domain.Report
			PassPercent int            `json:"pass_percent"`
			Verdict     domain.Verdict `json:"verdict"`
		}{report, report.PassPercent(), policy.Verdict(report.PassPercent())}

		return jsonResult(out)
	}
}

func handleValidateAgent(installRoot string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		agent, err := request.RequireString("agent")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		raw, err := appconfig.New().Load(defaultConfigPath(installRoot))
		if err != nil {
			return errorResult(err.Error()), nil
		}
		section, err := domain.ResolveAgentSection(raw, agent)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		out := struct {
			Agent      string           `json:"agent"`
			EnvVars    []domain.Finding `json:"env_vars,omitempty"`
			Structural []domain.Finding `json:"structural,omitempty"`
			Heuristics []domain.Finding `json:"heuristics,omitempty"`
		}{Agent: agent}

		// Resolve before validating, so indirect fields are judged by value.
		resolved, envFindings := domain.ResolveAgentConfig(section, lookupEnv)
		out.EnvVars = envFindings
		if !domain.HasSeverity(envFindings, domain.SeverityFail) {
			out.Structural = domain.ValidateStructure(agent, resolved)
			if domain.StructureOK(out.Structural) {
				out.Heuristics = domain.ScanHeuristics(section, resolved)
			}
		}

		return jsonResult(out)
	}
}

func handleClassifyError() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		rawError, err := request.RequireString("error")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(domain.ClassifyError(rawError))
	}
}

func handleFixPlan(installRoot string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		agent, _ := request.GetArguments()["agent"].(string)
		if agent == "" {
			agent = domain.HostAgent
		}

		svc := application.NewFixService(appconfig.New())
		plan, err := svc.PlanFixes(defaultConfigPath(installRoot), agent, domain.FixOptions{DryRun: true})
		if err != nil {
			return errorResult(fmt.Sprintf("planning fixes: %v", err)), nil
		}
		return jsonResult(plan)
	}
}

var lookupEnv = os.LookupEnv

func defaultConfigPath(root string) string {
	return filepath.Join(root, filepath.FromSlash(application.DefaultConfigRelPath))
}

func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
