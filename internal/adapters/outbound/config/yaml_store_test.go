package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darbotlabs/ufodoctor/internal/adapters/outbound/config"
	"github.com/darbotlabs/ufodoctor/internal/domain"
)

func tempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidDocument(t *testing.T) {
	path := tempYAML(t, `HOST_AGENT:
  API_TYPE: azure
  MAX_TOKENS: 2000
`)

	raw, err := config.New().Load(path)
	require.NoError(t, err)

	section, err := domain.ResolveAgentSection(raw, domain.HostAgent)
	require.NoError(t, err)
	assert.Equal(t, "azure", section["API_TYPE"])
	assert.Equal(t, "2000", section["MAX_TOKENS"])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.New().Load(filepath.Join(t.TempDir(), "absent.yaml"))

	var notFound *domain.ConfigNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, notFound.Error(), "absent.yaml")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := tempYAML(t, "HOST_AGENT: [unclosed\n")

	_, err := config.New().Load(path)
	var parseErr *domain.ConfigParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestLoad_EmptyFileIsParseError(t *testing.T) {
	path := tempYAML(t, "")

	_, err := config.New().Load(path)
	var parseErr *domain.ConfigParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Reason, "empty or invalid")
}

func TestLoad_NullDocumentIsParseError(t *testing.T) {
	path := tempYAML(t, "null\n")

	_, err := config.New().Load(path)
	var parseErr *domain.ConfigParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestBackupThenSaveRoundTrip(t *testing.T) {
	original := "HOST_AGENT:\n  API_TYPE: azure\n"
	path := tempYAML(t, original)
	store := config.New()

	backupPath, err := store.Backup(path)
	require.NoError(t, err)
	assert.Equal(t, path+config.BackupSuffix, backupPath)

	raw, err := store.Load(path)
	require.NoError(t, err)
	node, ok := domain.AgentSectionNode(raw, domain.HostAgent)
	require.True(t, ok)
	node["API_TYPE"] = "openai"
	require.NoError(t, store.Save(path, raw))

	backup, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, original, string(backup))

	reloaded, err := store.Load(path)
	require.NoError(t, err)
	section, err := domain.ResolveAgentSection(reloaded, domain.HostAgent)
	require.NoError(t, err)
	assert.Equal(t, "openai", section["API_TYPE"])
}
