package domain

import (
	"math"
	"time"
)

// Check names used by the reporter. Agent-scoped checks carry the agent
// name alongside.
const (
	CheckDependencies  = "Dependencies"
	CheckStructure     = "Structure"
	CheckConfiguration = "Configuration"
	CheckEnvVars       = "EnvVars"
	CheckHeuristics    = "Heuristics"
	CheckConnectivity  = "Connectivity"
)

// CheckResult is one named check's outcome within a report.
type CheckResult struct {
	Name     string    `json:"name"`
	Agent    string    `json:"agent,omitempty"`
	Status   Status    `json:"status"`
	Findings []Finding `json:"findings,omitempty"`
	Detail   string    `json:"detail,omitempty"`
}

// Report aggregates one diagnostic run. It is created fresh per invocation,
// rendered, and discarded; nothing persists across runs.
type Report struct {
	InstallRoot string        `json:"install_root"`
	CommitHash  string        `json:"commit_hash,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
	Checks      []CheckResult `json:"checks"`
}

// Add appends a check result, preserving insertion order.
func (r *Report) Add(result CheckResult) {
	r.Checks = append(r.Checks, result)
}

// Passed counts checks that passed cleanly. Warned checks count toward the
// total but not toward passes, which is what pulls a warning-heavy run down
// into the "usable with issues" tier.
func (r *Report) Passed() int {
	n := 0
	for _, c := range r.Checks {
		if c.Status == StatusPass {
			n++
		}
	}
	return n
}

// Total counts non-skipped checks.
func (r *Report) Total() int {
	n := 0
	for _, c := range r.Checks {
		if c.Status != StatusSkip {
			n++
		}
	}
	return n
}

// PassPercent is the passed/total ratio as a percentage. An empty report
// scores zero.
func (r *Report) PassPercent() int {
	total := r.Total()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(r.Passed()) / float64(total) * 100))
}

// HasFailures reports whether any check failed outright.
func (r *Report) HasFailures() bool {
	for _, c := range r.Checks {
		if c.Status == StatusFail {
			return true
		}
	}
	return false
}

// StructuralFailure reports whether configuration loading or structural
// validation failed for any agent. A structural failure forces a non-zero
// exit regardless of the overall ratio.
func (r *Report) StructuralFailure() bool {
	for _, c := range r.Checks {
		if c.Name == CheckConfiguration && c.Status == StatusFail {
			return true
		}
	}
	return false
}

// Verdict is the overall readiness call for the installation.
type Verdict string

const (
	VerdictReady    Verdict = "ready"
	VerdictUsable   Verdict = "usable with issues"
	VerdictNotReady Verdict = "not ready"
)

// VerdictPolicy maps pass percentages to a verdict. The tiering is a
// product decision, not a correctness boundary, so it stays a value that
// callers may override rather than a constant.
type VerdictPolicy struct {
	ReadyPercent  int `json:"ready_percent"`
	UsablePercent int `json:"usable_percent"`
}

// DefaultVerdictPolicy returns the standard 80/60 tiering.
func DefaultVerdictPolicy() VerdictPolicy {
	return VerdictPolicy{ReadyPercent: 80, UsablePercent: 60}
}

// Verdict applies the policy to a pass percentage.
func (p VerdictPolicy) Verdict(percent int) Verdict {
	switch {
	case percent >= p.ReadyPercent:
		return VerdictReady
	case percent >= p.UsablePercent:
		return VerdictUsable
	default:
		return VerdictNotReady
	}
}

// Usable reports whether the verdict maps to a zero exit status.
func (v Verdict) Usable() bool {
	return v == VerdictReady || v == VerdictUsable
}
