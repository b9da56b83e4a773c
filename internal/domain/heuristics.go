package domain

import (
	"fmt"
	"strings"
)

const minPlausibleKeyLength = 10

// Model names commonly pasted into API_DEPLOYMENT_ID by mistake. On Azure
// the deployment identifier is the tenant-assigned deployment name, not the
// underlying model.
var knownModelNames = []string{"gpt-4", "gpt-4o", "gpt-35-turbo", "gpt-3.5-turbo"}

// ScanHeuristics flags probable misconfigurations in an azure/aoai agent
// section without any network call. raw carries the on-disk values (used to
// detect env-var indirection), resolved the post-substitution values. Rules
// are independent; several warnings may stack on one section. Providers
// other than azure/aoai have no heuristics defined.
func ScanHeuristics(raw, resolved AgentConfig) []Finding {
	if !isAzureProvider(resolved[FieldAPIType]) {
		return nil
	}

	var findings []Finding

	if base := resolved[FieldAPIBase]; strings.Contains(strings.ToLower(base), "your") {
		findings = append(findings, Finding{
			Field:       FieldAPIBase,
			Severity:    SeverityWarn,
			Message:     fmt.Sprintf("API_BASE contains placeholder text: %s", base),
			Remediation: "replace with your actual Azure OpenAI endpoint URL",
		})
	}

	if key := resolved[FieldAPIKey]; len(key) < minPlausibleKeyLength {
		findings = append(findings, Finding{
			Field:       FieldAPIKey,
			Severity:    SeverityWarn,
			Message:     "API_KEY appears to be a placeholder or invalid",
			Remediation: "update with your actual Azure OpenAI API key",
		})
	}

	if dep := resolved[FieldAPIDeploymentID]; isKnownModelName(dep) {
		findings = append(findings, Finding{
			Field:       FieldAPIDeploymentID,
			Severity:    SeverityWarn,
			Message:     fmt.Sprintf("API_DEPLOYMENT_ID %q looks like a model name, not a deployment name", dep),
			Remediation: "use the Azure deployment name, not the model name; check Azure OpenAI Studio for your deployment names",
		})
	}

	if !anyEnvIndirection(raw) {
		findings = append(findings, Finding{
			Severity:    SeverityInfo,
			Message:     "no environment variables detected in configuration",
			Remediation: "consider externalizing secrets, e.g. API_KEY: ${AZURE_OPENAI_API_KEY}",
		})
	}

	return findings
}

func isKnownModelName(deployment string) bool {
	for _, name := range knownModelNames {
		if deployment == name {
			return true
		}
	}
	return false
}

func anyEnvIndirection(raw AgentConfig) bool {
	for _, value := range raw {
		if UsesEnvIndirection(value) {
			return true
		}
	}
	return false
}
