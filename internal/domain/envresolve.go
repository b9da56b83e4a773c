package domain

import (
	"fmt"
	"strings"
)

// EnvLookup resolves an environment variable name to its value.
// Injected so the engine stays deterministic under test; callers pass
// os.LookupEnv in production.
type EnvLookup func(name string) (string, bool)

// EnvVarMissingError indicates a field referenced an environment variable
// that is not set. It short-circuits every check that depends on the
// resolved value.
type EnvVarMissingError struct {
	Field string
	Var   string
}

func (e *EnvVarMissingError) Error() string {
	return fmt.Sprintf("environment variable %s referenced by %s is not set", e.Var, e.Field)
}

// ResolveValue substitutes environment-variable indirection in a scalar
// config value. Only the full-string brace form ${VAR} is substituted; a
// value with a % prefix marks the field as externally supplied and passes
// through unchanged, as does any literal. Text mixed with ${...} is
// deliberately treated as a literal, so resolution is idempotent.
func ResolveValue(field, raw string, lookup EnvLookup) (string, error) {
	name, ok := braceVarName(raw)
	if !ok {
		return raw, nil
	}
	value, found := lookup(name)
	if !found {
		return "", &EnvVarMissingError{Field: field, Var: name}
	}
	return value, nil
}

// UsesEnvIndirection reports whether a raw value carries either indirection
// syntax: the ${VAR} brace form or the %-prefixed external-supply marker.
func UsesEnvIndirection(raw string) bool {
	if _, ok := braceVarName(raw); ok {
		return true
	}
	return strings.HasPrefix(raw, "%")
}

// ResolveAgentConfig resolves every field of an agent section. Fields whose
// environment variable is missing are omitted from the result and reported
// as FAIL findings, so later heuristics never scan an unresolved value.
func ResolveAgentConfig(cfg AgentConfig, lookup EnvLookup) (AgentConfig, []Finding) {
	resolved := make(AgentConfig, len(cfg))
	var findings []Finding

	for field, raw := range cfg {
		value, err := ResolveValue(field, raw, lookup)
		if err != nil {
			findings = append(findings, Finding{
				Field:       field,
				Severity:    SeverityFail,
				Message:     err.Error(),
				Remediation: "set the variable in the environment UFO² runs under, or replace the reference with a literal value",
			})
			continue
		}
		resolved[field] = value
		if UsesEnvIndirection(raw) {
			findings = append(findings, Finding{
				Field:    field,
				Severity: SeverityInfo,
				Message:  fmt.Sprintf("%s is supplied via environment variable", field),
			})
		}
	}

	return resolved, findings
}

// braceVarName extracts VAR from a value that is exactly ${VAR}.
func braceVarName(raw string) (string, bool) {
	if !strings.HasPrefix(raw, "${") || !strings.HasSuffix(raw, "}") {
		return "", false
	}
	name := raw[2 : len(raw)-1]
	if name == "" || strings.ContainsAny(name, "${}") {
		return "", false
	}
	return name, true
}
