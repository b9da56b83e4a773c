package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darbotlabs/ufodoctor/internal/domain"
)

func envWith(vars map[string]string) domain.EnvLookup {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func TestResolveValue_BraceForm(t *testing.T) {
	lookup := envWith(map[string]string{"FOO": "bar"})

	got, err := domain.ResolveValue("API_KEY", "${FOO}", lookup)
	require.NoError(t, err)
	assert.Equal(t, "bar", got)
}

func TestResolveValue_Idempotent(t *testing.T) {
	lookup := envWith(map[string]string{"FOO": "bar"})

	first, err := domain.ResolveValue("API_KEY", "${FOO}", lookup)
	require.NoError(t, err)
	second, err := domain.ResolveValue("API_KEY", first, lookup)
	require.NoError(t, err)
	assert.Equal(t, "bar", second)

	// A plain literal passes through unchanged.
	lit, err := domain.ResolveValue("API_KEY", "bar", lookup)
	require.NoError(t, err)
	assert.Equal(t, "bar", lit)
}

func TestResolveValue_MissingVariable(t *testing.T) {
	_, err := domain.ResolveValue("API_KEY", "${AZURE_OPENAI_API_KEY}", envWith(nil))

	var missing *domain.EnvVarMissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "AZURE_OPENAI_API_KEY", missing.Var)
	assert.Equal(t, "API_KEY", missing.Field)
}

func TestResolveValue_PartialInterpolationIsLiteral(t *testing.T) {
	lookup := envWith(map[string]string{"FOO": "bar"})

	got, err := domain.ResolveValue("API_BASE", "https://${FOO}.example.com", lookup)
	require.NoError(t, err)
	assert.Equal(t, "https://${FOO}.example.com", got)
}

func TestResolveValue_PercentMarkerPassesThrough(t *testing.T) {
	got, err := domain.ResolveValue("API_KEY", "%EXTERNAL%", envWith(nil))
	require.NoError(t, err)
	assert.Equal(t, "%EXTERNAL%", got)
}

func TestUsesEnvIndirection(t *testing.T) {
	assert.True(t, domain.UsesEnvIndirection("${FOO}"))
	assert.True(t, domain.UsesEnvIndirection("%EXTERNAL%"))
	assert.False(t, domain.UsesEnvIndirection("literal"))
	assert.False(t, domain.UsesEnvIndirection("text ${FOO} text"))
	assert.False(t, domain.UsesEnvIndirection("${}"))
}

func TestResolveAgentConfig_MissingVarBecomesFinding(t *testing.T) {
	cfg := domain.AgentConfig{
		"API_TYPE": "azure",
		"API_KEY":  "${MISSING_KEY}",
	}

	resolved, findings := domain.ResolveAgentConfig(cfg, envWith(nil))

	assert.Equal(t, "azure", resolved["API_TYPE"])
	assert.NotContains(t, resolved, "API_KEY")
	require.Len(t, findings, 1)
	assert.Equal(t, domain.SeverityFail, findings[0].Severity)
	assert.Equal(t, "API_KEY", findings[0].Field)
}

func TestResolveAgentConfig_ReportsIndirectionAsInfo(t *testing.T) {
	cfg := domain.AgentConfig{
		"API_TYPE": "azure",
		"API_KEY":  "${AZURE_KEY}",
	}

	resolved, findings := domain.ResolveAgentConfig(cfg, envWith(map[string]string{"AZURE_KEY": "abcdef0123456789"}))

	assert.Equal(t, "abcdef0123456789", resolved["API_KEY"])
	require.Len(t, findings, 1)
	assert.Equal(t, domain.SeverityInfo, findings[0].Severity)
}
