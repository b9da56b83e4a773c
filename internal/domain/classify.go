package domain

import "strings"

// FailureCategory buckets a provider error into the troubleshooting
// playbook's actionable cases.
type FailureCategory string

const (
	DeploymentMismatch FailureCategory = "deployment_mismatch"
	AuthFailure        FailureCategory = "auth_failure"
	EndpointMisconfig  FailureCategory = "endpoint_misconfig"
	Unclassified       FailureCategory = "unclassified"
)

// Classification pairs a failure category with its remediation hint.
type Classification struct {
	Category    FailureCategory `json:"category"`
	Remediation string          `json:"remediation"`
}

type classifyRule struct {
	substrings []string
	result     Classification
}

// Rules are ordered; the first match wins. Matching is case-insensitive
// substring search over the raw provider error.
var classifyRules = []classifyRule{
	{
		substrings: []string{"unavailable_model", "not found"},
		result: Classification{
			Category:    DeploymentMismatch,
			Remediation: "the deployment name does not match any deployment on your resource; verify it in the provider console — it must be the deployment identifier, not the model name",
		},
	},
	{
		substrings: []string{"authentication failed", "unauthorized"},
		result: Classification{
			Category:    AuthFailure,
			Remediation: "regenerate or verify the API key and check for leading/trailing whitespace",
		},
	},
	{
		substrings: []string{"location", "endpoint"},
		result: Classification{
			Category:    EndpointMisconfig,
			Remediation: "verify the base URL format and region, e.g. https://{resource-name}.openai.azure.com",
		},
	},
}

// ClassifyError maps a raw provider error message to a diagnostic category.
// Unmatched errors come back Unclassified with no remediation beyond the
// raw text itself.
func ClassifyError(rawError string) Classification {
	lowered := strings.ToLower(rawError)
	for _, rule := range classifyRules {
		for _, sub := range rule.substrings {
			if strings.Contains(lowered, sub) {
				return rule.result
			}
		}
	}
	return Classification{Category: Unclassified}
}
