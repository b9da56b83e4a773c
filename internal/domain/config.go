package domain

import (
	"fmt"
)

// RawConfig is the parsed YAML document, untouched after load.
type RawConfig map[string]any

// AgentConfig is one agent's settings as flat string key/value pairs.
// Keys are case-sensitive; non-scalar values are dropped during resolution.
type AgentConfig map[string]string

// Known agent section names.
const (
	HostAgent   = "HOST_AGENT"
	AppAgent    = "APP_AGENT"
	BackupAgent = "BACKUP_AGENT"

	agentSettingsKey = "AGENT_SETTINGS"
)

// KnownAgents lists the agent sections a UFO² config may carry, in
// diagnosis order. HOST_AGENT must exist; the others are optional.
var KnownAgents = []string{HostAgent, AppAgent, BackupAgent}

// Configuration field keys.
const (
	FieldAPIType         = "API_TYPE"
	FieldAPIBase         = "API_BASE"
	FieldAPIKey          = "API_KEY"
	FieldAPIModel        = "API_MODEL"
	FieldAPIDeploymentID = "API_DEPLOYMENT_ID"
	FieldAPIVersion      = "API_VERSION"
)

// ConfigNotFoundError indicates the config file does not exist.
type ConfigNotFoundError struct {
	Path string
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("config file not found at %s", e.Path)
}

// ConfigParseError indicates the config file content is not a usable YAML
// mapping. An empty file or a bare "null" document is a parse error, not a
// valid empty config.
type ConfigParseError struct {
	Path   string
	Reason string
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("config file %s: %s", e.Path, e.Reason)
}

// SectionNotFoundError indicates no known key path yielded the agent section.
type SectionNotFoundError struct {
	Agent string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("missing %s section in config", e.Agent)
}

// AgentSectionNode returns the live mapping node for the named agent,
// trying key paths in priority order: top-level first, then nested under
// AGENT_SETTINGS. Both shapes exist on disk because the schema evolved;
// accepting them here keeps callers free of fallback logic.
func AgentSectionNode(cfg RawConfig, name string) (map[string]any, bool) {
	if section, ok := asMapping(cfg[name]); ok {
		return section, true
	}
	if settings, ok := asMapping(cfg[agentSettingsKey]); ok {
		if section, ok := asMapping(settings[name]); ok {
			return section, true
		}
	}
	return nil, false
}

// ResolveAgentSection extracts the named agent's settings as an AgentConfig.
// Scalar values are stringified; nested mappings and sequences are skipped.
func ResolveAgentSection(cfg RawConfig, name string) (AgentConfig, error) {
	node, ok := AgentSectionNode(cfg, name)
	if !ok {
		return nil, &SectionNotFoundError{Agent: name}
	}

	agent := make(AgentConfig, len(node))
	for key, value := range node {
		switch value.(type) {
		case nil, map[string]any, []any:
			continue
		default:
			agent[key] = fmt.Sprint(value)
		}
	}
	return agent, nil
}

// HasAgentSection reports whether the named agent resolves to a mapping
// under any known key path.
func HasAgentSection(cfg RawConfig, name string) bool {
	_, ok := AgentSectionNode(cfg, name)
	return ok
}

func asMapping(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}
