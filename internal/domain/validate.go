package domain

import (
	"fmt"
	"strings"
)

// Providers that expose models behind tenant-specific deployments and
// therefore need the full Azure field set.
func isAzureProvider(apiType string) bool {
	switch strings.ToLower(apiType) {
	case "azure", "aoai":
		return true
	}
	return false
}

var alwaysRequiredFields = []string{FieldAPIType, FieldAPIKey}

var azureRequiredFields = []string{FieldAPIBase, FieldAPIVersion, FieldAPIDeploymentID}

// ValidateStructure checks that an agent section carries every required
// field for its provider. An empty value counts as missing. Unknown
// providers are warned about but never fail the check; only azure/aoai
// add conditionally-required fields, openai adds none.
func ValidateStructure(agent string, cfg AgentConfig) []Finding {
	var findings []Finding

	for _, field := range alwaysRequiredFields {
		if cfg[field] == "" {
			findings = append(findings, missingField(agent, field))
		}
	}

	apiType := cfg[FieldAPIType]
	if apiType == "" {
		return findings
	}

	switch {
	case isAzureProvider(apiType):
		for _, field := range azureRequiredFields {
			if cfg[field] == "" {
				findings = append(findings, missingField(agent, field))
			}
		}
	case strings.ToLower(apiType) == "openai":
		// No additional fields; API_BASE defaults to the public endpoint.
	default:
		findings = append(findings, Finding{
			Field:       FieldAPIType,
			Severity:    SeverityWarn,
			Message:     fmt.Sprintf("unsupported provider type %q", apiType),
			Remediation: "supported types are azure, aoai and openai",
		})
	}

	return findings
}

// StructureOK reports whether structural validation passed, i.e. produced
// no error-severity finding. Heuristics and connectivity only run when it
// does.
func StructureOK(findings []Finding) bool {
	return !HasSeverity(findings, SeverityFail)
}

func missingField(agent, field string) Finding {
	return Finding{
		Field:       field,
		Severity:    SeverityFail,
		Message:     fmt.Sprintf("missing %s in %s configuration", field, agent),
		Remediation: fmt.Sprintf("add %s to the %s section of config.yaml", field, agent),
	}
}
