package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/darbotlabs/ufodoctor/internal/domain"
)

// DefaultConfigRelPath is where a UFO² checkout keeps its agent config.
const DefaultConfigRelPath = "ufo/config/config.yaml"

// Python packages the agent imports at runtime. A missing critical package
// fails the dependency check; missing recommended packages only warn.
var (
	criticalDependencies = []string{
		"azure.identity", "openai", "faiss", "cv2", "yaml", "numpy",
		"pywinauto", "pyautogui", "torch", "sentence_transformers",
		"langchain", "lxml",
	}
	optionalDependencies = []string{
		"pytest", "black", "ruff", "mypy", "ipykernel", "matplotlib",
	}
)

// DiagnoseOptions parameterizes one diagnostic run. ProbeConfirmed is the
// injected stand-in for the interactive "really call the API?" gate: the
// engine never prompts.
type DiagnoseOptions struct {
	InstallRoot      string
	ConfigPath       string
	Agents           []string
	ProbeConfirmed   bool
	SkipDependencies bool
	SkipStructure    bool
	Lookup           domain.EnvLookup
}

// DiagnoseService orchestrates the pipeline:
// load -> resolve section -> resolve env -> validate -> heuristics -> probe -> classify.
// Data flows strictly downward; every stage hands immutable inputs to the next.
type DiagnoseService struct {
	store   domain.ConfigStore
	scanner domain.InstallScanner
	deps    domain.DependencyChecker
	prober  domain.ChatProber
	repo    domain.RepoInspector
}

func NewDiagnoseService(
	store domain.ConfigStore,
	scanner domain.InstallScanner,
	deps domain.DependencyChecker,
	prober domain.ChatProber,
	repo domain.RepoInspector,
) *DiagnoseService {
	return &DiagnoseService{
		store:   store,
		scanner: scanner,
		deps:    deps,
		prober:  prober,
		repo:    repo,
	}
}

// Run executes all checks and returns the aggregated report. Every failure
// mode is a reported outcome; Run itself never fails.
func (s *DiagnoseService) Run(ctx context.Context, opts DiagnoseOptions) *domain.Report {
	root := opts.InstallRoot
	if root == "" {
		root = "."
	}
	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	report := &domain.Report{InstallRoot: root, Timestamp: time.Now()}
	if s.repo != nil {
		if hash, ok := s.repo.CommitHash(root); ok {
			report.CommitHash = hash
		}
	}

	s.checkDependencies(ctx, report, opts)
	s.checkStructure(report, root, opts)

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = filepath.Join(root, filepath.FromSlash(DefaultConfigRelPath))
	}

	raw, err := s.store.Load(configPath)
	if err != nil {
		report.Add(domain.CheckResult{
			Name:   domain.CheckConfiguration,
			Status: domain.StatusFail,
			Detail: err.Error(),
			Findings: []domain.Finding{{
				Severity:    domain.SeverityFail,
				Message:     err.Error(),
				Remediation: "create ufo/config/config.yaml from config.yaml.template",
			}},
		})
		return report
	}

	for _, agent := range s.selectAgents(raw, opts.Agents) {
		s.diagnoseAgent(ctx, report, raw, agent, lookup, opts.ProbeConfirmed)
	}

	return report
}

func (s *DiagnoseService) checkDependencies(ctx context.Context, report *domain.Report, opts DiagnoseOptions) {
	if opts.SkipDependencies || s.deps == nil {
		report.Add(domain.CheckResult{
			Name:   domain.CheckDependencies,
			Status: domain.StatusSkip,
			Detail: "dependency check skipped",
		})
		return
	}

	importable := s.deps.Check(ctx, append(append([]string{}, criticalDependencies...), optionalDependencies...))

	var findings []domain.Finding
	missing := 0
	for _, name := range criticalDependencies {
		if !importable[name] {
			missing++
			findings = append(findings, domain.Finding{
				Field:       name,
				Severity:    domain.SeverityFail,
				Message:     fmt.Sprintf("%s is not importable", name),
				Remediation: fmt.Sprintf("pip install %s", name),
			})
		}
	}
	for _, name := range optionalDependencies {
		if !importable[name] {
			findings = append(findings, domain.Finding{
				Field:       name,
				Severity:    domain.SeverityWarn,
				Message:     fmt.Sprintf("%s is not importable (optional)", name),
				Remediation: fmt.Sprintf("pip install %s (recommended)", name),
			})
		}
	}

	report.Add(domain.CheckResult{
		Name:     domain.CheckDependencies,
		Status:   domain.StatusFor(findings),
		Findings: findings,
		Detail:   fmt.Sprintf("%d/%d critical packages importable", len(criticalDependencies)-missing, len(criticalDependencies)),
	})
}

func (s *DiagnoseService) checkStructure(report *domain.Report, root string, opts DiagnoseOptions) {
	if opts.SkipStructure || s.scanner == nil {
		report.Add(domain.CheckResult{
			Name:   domain.CheckStructure,
			Status: domain.StatusSkip,
			Detail: "structure check skipped",
		})
		return
	}

	findings := s.scanner.Scan(root)
	report.Add(domain.CheckResult{
		Name:     domain.CheckStructure,
		Status:   domain.StatusFor(findings),
		Findings: findings,
	})
}

// selectAgents returns the agents to diagnose: the explicit list when given,
// otherwise HOST_AGENT plus whichever optional agents the config defines.
func (s *DiagnoseService) selectAgents(raw domain.RawConfig, requested []string) []string {
	if len(requested) > 0 {
		return requested
	}
	agents := []string{domain.HostAgent}
	for _, name := range domain.KnownAgents {
		if name != domain.HostAgent && domain.HasAgentSection(raw, name) {
			agents = append(agents, name)
		}
	}
	return agents
}

func (s *DiagnoseService) diagnoseAgent(
	ctx context.Context,
	report *domain.Report,
	raw domain.RawConfig,
	agent string,
	lookup domain.EnvLookup,
	probeConfirmed bool,
) {
	section, err := domain.ResolveAgentSection(raw, agent)
	if err != nil {
		report.Add(domain.CheckResult{
			Name:   domain.CheckConfiguration,
			Agent:  agent,
			Status: domain.StatusFail,
			Detail: err.Error(),
			Findings: []domain.Finding{{
				Severity:    domain.SeverityFail,
				Message:     err.Error(),
				Remediation: fmt.Sprintf("add a %s section at the top level or under AGENT_SETTINGS", agent),
			}},
		})
		return
	}

	// Resolution runs before validation: a field like API_KEY: ${VAR} must
	// be judged by its resolved value, not by the indirection syntax.
	resolved, envFindings := domain.ResolveAgentConfig(section, lookup)
	report.Add(domain.CheckResult{
		Name:     domain.CheckEnvVars,
		Agent:    agent,
		Status:   domain.StatusFor(envFindings),
		Findings: envFindings,
	})
	if domain.HasSeverity(envFindings, domain.SeverityFail) {
		// An unresolved variable must not be validated, scanned or probed
		// as if it were a value.
		for _, name := range []string{domain.CheckConfiguration, domain.CheckHeuristics, domain.CheckConnectivity} {
			report.Add(domain.CheckResult{
				Name:   name,
				Agent:  agent,
				Status: domain.StatusSkip,
				Detail: "skipped: unresolved environment variables",
			})
		}
		return
	}

	structural := domain.ValidateStructure(agent, resolved)
	report.Add(domain.CheckResult{
		Name:     domain.CheckConfiguration,
		Agent:    agent,
		Status:   domain.StatusFor(structural),
		Findings: structural,
	})
	if !domain.StructureOK(structural) {
		// Structural failure aborts the remaining checks for this agent.
		return
	}

	heuristics := domain.ScanHeuristics(section, resolved)
	report.Add(domain.CheckResult{
		Name:     domain.CheckHeuristics,
		Agent:    agent,
		Status:   domain.StatusFor(heuristics),
		Findings: heuristics,
	})

	s.probeAgent(ctx, report, agent, resolved, probeConfirmed)
}

func (s *DiagnoseService) probeAgent(
	ctx context.Context,
	report *domain.Report,
	agent string,
	resolved domain.AgentConfig,
	confirmed bool,
) {
	if !confirmed || s.prober == nil {
		report.Add(domain.CheckResult{
			Name:   domain.CheckConnectivity,
			Agent:  agent,
			Status: domain.StatusSkip,
			Detail: "probe not confirmed; no request sent",
		})
		return
	}

	result := s.prober.Probe(ctx, resolved)
	switch result.Outcome {
	case domain.ConnectivitySuccess:
		report.Add(domain.CheckResult{
			Name:   domain.CheckConnectivity,
			Agent:  agent,
			Status: domain.StatusPass,
			Detail: fmt.Sprintf("response: %s", result.ResponsePreview),
		})
	case domain.ConnectivitySkipped:
		report.Add(domain.CheckResult{
			Name:   domain.CheckConnectivity,
			Agent:  agent,
			Status: domain.StatusSkip,
			Detail: result.Detail,
		})
	default:
		cls := domain.ClassifyError(result.RawError)
		report.Add(domain.CheckResult{
			Name:   domain.CheckConnectivity,
			Agent:  agent,
			Status: domain.StatusFail,
			Detail: string(cls.Category),
			Findings: []domain.Finding{{
				Severity:    domain.SeverityFail,
				Message:     result.RawError,
				Remediation: cls.Remediation,
			}},
		})
	}
}
