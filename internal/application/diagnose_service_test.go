package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darbotlabs/ufodoctor/internal/application"
	"github.com/darbotlabs/ufodoctor/internal/domain"
)

type fakeStore struct {
	cfg domain.RawConfig
	err error
}

func (f *fakeStore) Load(string) (domain.RawConfig, error) { return f.cfg, f.err }
func (f *fakeStore) Backup(path string) (string, error)    { return path + ".backup", nil }
func (f *fakeStore) Save(string, domain.RawConfig) error   { return nil }

type fakeProber struct {
	result domain.ConnectivityResult
	called bool
}

func (f *fakeProber) Probe(context.Context, domain.AgentConfig) domain.ConnectivityResult {
	f.called = true
	return f.result
}

func newService(store *fakeStore, prober *fakeProber) *application.DiagnoseService {
	// nil scanner/deps/repo: those checks report as skipped.
	return application.NewDiagnoseService(store, nil, nil, prober, nil)
}

func findCheck(t *testing.T, report *domain.Report, name, agent string) domain.CheckResult {
	t.Helper()
	for _, c := range report.Checks {
		if c.Name == name && c.Agent == agent {
			return c
		}
	}
	t.Fatalf("check %s/%s not found in report", name, agent)
	return domain.CheckResult{}
}

func hasCheck(report *domain.Report, name, agent string) bool {
	for _, c := range report.Checks {
		if c.Name == name && c.Agent == agent {
			return true
		}
	}
	return false
}

func noEnv(string) (string, bool) { return "", false }

func TestRun_MisconfiguredAzureIsUsableWithIssues(t *testing.T) {
	store := &fakeStore{cfg: domain.RawConfig{
		"HOST_AGENT": map[string]any{
			"API_TYPE":          "azure",
			"API_BASE":          "https://your-resource.openai.azure.com",
			"API_KEY":           "short",
			"API_VERSION":       "2024-05-01",
			"API_DEPLOYMENT_ID": "gpt-4",
		},
	}}
	prober := &fakeProber{}

	report := newService(store, prober).Run(context.Background(), application.DiagnoseOptions{
		InstallRoot: t.TempDir(),
		Lookup:      noEnv,
	})

	assert.Equal(t, domain.StatusPass, findCheck(t, report, domain.CheckConfiguration, domain.HostAgent).Status)
	assert.Equal(t, domain.StatusPass, findCheck(t, report, domain.CheckEnvVars, domain.HostAgent).Status)

	heuristics := findCheck(t, report, domain.CheckHeuristics, domain.HostAgent)
	assert.Equal(t, domain.StatusWarn, heuristics.Status)
	warns := 0
	for _, f := range heuristics.Findings {
		if f.Severity == domain.SeverityWarn {
			warns++
		}
	}
	assert.Equal(t, 3, warns, "placeholder endpoint, short key, model-name deployment")

	connectivity := findCheck(t, report, domain.CheckConnectivity, domain.HostAgent)
	assert.Equal(t, domain.StatusSkip, connectivity.Status)
	assert.False(t, prober.called, "no confirmation, no network call")

	verdict := domain.DefaultVerdictPolicy().Verdict(report.PassPercent())
	assert.Equal(t, domain.VerdictUsable, verdict)
	assert.False(t, report.StructuralFailure())
}

func TestRun_EmptyKeyFailsStructureBeforeHeuristics(t *testing.T) {
	store := &fakeStore{cfg: domain.RawConfig{
		"HOST_AGENT": map[string]any{
			"API_TYPE":          "azure",
			"API_BASE":          "https://prod.openai.azure.com",
			"API_KEY":           "",
			"API_VERSION":       "2024-05-01",
			"API_DEPLOYMENT_ID": "my-deploy",
		},
	}}
	prober := &fakeProber{}

	report := newService(store, prober).Run(context.Background(), application.DiagnoseOptions{
		Lookup:         noEnv,
		ProbeConfirmed: true,
	})

	configuration := findCheck(t, report, domain.CheckConfiguration, domain.HostAgent)
	assert.Equal(t, domain.StatusFail, configuration.Status)
	require.NotEmpty(t, configuration.Findings)
	assert.Equal(t, "API_KEY", configuration.Findings[0].Field)

	// The empty-key heuristic must not double-report: structural failure
	// aborts everything downstream for this agent.
	assert.Equal(t, domain.StatusPass, findCheck(t, report, domain.CheckEnvVars, domain.HostAgent).Status)
	assert.False(t, hasCheck(report, domain.CheckHeuristics, domain.HostAgent))
	assert.False(t, prober.called)
	assert.True(t, report.StructuralFailure())
}

func TestRun_EnvVarResolvingToEmptyIsMissingField(t *testing.T) {
	store := &fakeStore{cfg: domain.RawConfig{
		"HOST_AGENT": map[string]any{
			"API_TYPE":          "azure",
			"API_BASE":          "https://prod.openai.azure.com",
			"API_KEY":           "${AZURE_OPENAI_API_KEY}",
			"API_VERSION":       "2024-05-01",
			"API_DEPLOYMENT_ID": "my-deploy",
		},
	}}
	prober := &fakeProber{}
	// The variable exists but holds an empty string; validation must see
	// the resolved emptiness, not the non-empty ${...} literal.
	emptyVar := func(string) (string, bool) { return "", true }

	report := newService(store, prober).Run(context.Background(), application.DiagnoseOptions{
		Lookup:         emptyVar,
		ProbeConfirmed: true,
	})

	assert.Equal(t, domain.StatusPass, findCheck(t, report, domain.CheckEnvVars, domain.HostAgent).Status)

	configuration := findCheck(t, report, domain.CheckConfiguration, domain.HostAgent)
	assert.Equal(t, domain.StatusFail, configuration.Status)
	require.NotEmpty(t, configuration.Findings)
	assert.Equal(t, "API_KEY", configuration.Findings[0].Field)

	// A missing field is a hard failure, never a heuristic warning.
	assert.False(t, hasCheck(report, domain.CheckHeuristics, domain.HostAgent))
	assert.False(t, prober.called)
	assert.True(t, report.StructuralFailure())
}

func TestRun_MissingEnvVarShortCircuits(t *testing.T) {
	store := &fakeStore{cfg: domain.RawConfig{
		"HOST_AGENT": map[string]any{
			"API_TYPE":          "azure",
			"API_BASE":          "https://prod.openai.azure.com",
			"API_KEY":           "${AZURE_OPENAI_API_KEY}",
			"API_VERSION":       "2024-05-01",
			"API_DEPLOYMENT_ID": "my-deploy",
		},
	}}
	prober := &fakeProber{}

	report := newService(store, prober).Run(context.Background(), application.DiagnoseOptions{
		Lookup:         noEnv,
		ProbeConfirmed: true,
	})

	assert.Equal(t, domain.StatusFail, findCheck(t, report, domain.CheckEnvVars, domain.HostAgent).Status)
	assert.Equal(t, domain.StatusSkip, findCheck(t, report, domain.CheckConfiguration, domain.HostAgent).Status)
	assert.Equal(t, domain.StatusSkip, findCheck(t, report, domain.CheckHeuristics, domain.HostAgent).Status)
	assert.Equal(t, domain.StatusSkip, findCheck(t, report, domain.CheckConnectivity, domain.HostAgent).Status)
	assert.False(t, prober.called, "an unresolved key must never be sent anywhere")
}

func TestRun_ConfigNotFound(t *testing.T) {
	store := &fakeStore{err: &domain.ConfigNotFoundError{Path: "/nowhere/config.yaml"}}

	report := newService(store, &fakeProber{}).Run(context.Background(), application.DiagnoseOptions{Lookup: noEnv})

	configuration := findCheck(t, report, domain.CheckConfiguration, "")
	assert.Equal(t, domain.StatusFail, configuration.Status)
	assert.Contains(t, configuration.Detail, "not found")
	assert.False(t, hasCheck(report, domain.CheckEnvVars, domain.HostAgent))
	assert.True(t, report.StructuralFailure())
}

func TestRun_SectionNotFound(t *testing.T) {
	store := &fakeStore{cfg: domain.RawConfig{"MODELS": map[string]any{}}}

	report := newService(store, &fakeProber{}).Run(context.Background(), application.DiagnoseOptions{Lookup: noEnv})

	configuration := findCheck(t, report, domain.CheckConfiguration, domain.HostAgent)
	assert.Equal(t, domain.StatusFail, configuration.Status)
	assert.Contains(t, configuration.Detail, "HOST_AGENT")
}

func TestRun_ConfirmedProbeFailureIsClassified(t *testing.T) {
	store := &fakeStore{cfg: domain.RawConfig{
		"HOST_AGENT": map[string]any{
			"API_TYPE":          "azure",
			"API_BASE":          "https://prod.openai.azure.com",
			"API_KEY":           "abcdef0123456789",
			"API_VERSION":       "2024-05-01",
			"API_DEPLOYMENT_ID": "my-deploy",
		},
	}}
	prober := &fakeProber{result: domain.ConnectivityResult{
		Outcome:  domain.ConnectivityFailure,
		RawError: "Error code: 404 - unavailable_model",
	}}

	report := newService(store, prober).Run(context.Background(), application.DiagnoseOptions{
		Lookup:         noEnv,
		ProbeConfirmed: true,
	})

	connectivity := findCheck(t, report, domain.CheckConnectivity, domain.HostAgent)
	assert.True(t, prober.called)
	assert.Equal(t, domain.StatusFail, connectivity.Status)
	assert.Equal(t, string(domain.DeploymentMismatch), connectivity.Detail)
	require.Len(t, connectivity.Findings, 1)
	assert.NotEmpty(t, connectivity.Findings[0].Remediation)
	// Connectivity failure is local; structure stays green.
	assert.False(t, report.StructuralFailure())
}

func TestRun_ConfirmedProbeSuccess(t *testing.T) {
	store := &fakeStore{cfg: domain.RawConfig{
		"HOST_AGENT": map[string]any{
			"API_TYPE": "openai",
			"API_KEY":  "sk-abcdef0123456789",
		},
	}}
	prober := &fakeProber{result: domain.ConnectivityResult{
		Outcome:         domain.ConnectivitySuccess,
		ResponsePreview: "Hello!",
	}}

	report := newService(store, prober).Run(context.Background(), application.DiagnoseOptions{
		Lookup:         noEnv,
		ProbeConfirmed: true,
	})

	connectivity := findCheck(t, report, domain.CheckConnectivity, domain.HostAgent)
	assert.Equal(t, domain.StatusPass, connectivity.Status)
	assert.Contains(t, connectivity.Detail, "Hello!")
}

func TestRun_DiagnosesOptionalAgentsWhenPresent(t *testing.T) {
	store := &fakeStore{cfg: domain.RawConfig{
		"AGENT_SETTINGS": map[string]any{
			"HOST_AGENT": map[string]any{"API_TYPE": "openai", "API_KEY": "sk-abcdef0123456789"},
			"APP_AGENT":  map[string]any{"API_TYPE": "openai", "API_KEY": "sk-abcdef0123456789"},
		},
	}}

	report := newService(store, &fakeProber{}).Run(context.Background(), application.DiagnoseOptions{Lookup: noEnv})

	assert.True(t, hasCheck(report, domain.CheckConfiguration, domain.HostAgent))
	assert.True(t, hasCheck(report, domain.CheckConfiguration, domain.AppAgent))
	assert.False(t, hasCheck(report, domain.CheckConfiguration, domain.BackupAgent))
}

func TestRun_ExplicitAgentSelection(t *testing.T) {
	store := &fakeStore{cfg: domain.RawConfig{
		"BACKUP_AGENT": map[string]any{"API_TYPE": "openai", "API_KEY": "sk-abcdef0123456789"},
	}}

	report := newService(store, &fakeProber{}).Run(context.Background(), application.DiagnoseOptions{
		Agents: []string{domain.BackupAgent},
		Lookup: noEnv,
	})

	assert.True(t, hasCheck(report, domain.CheckConfiguration, domain.BackupAgent))
	assert.False(t, hasCheck(report, domain.CheckConfiguration, domain.HostAgent))
}
