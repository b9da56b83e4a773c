package domain

// Severity grades a single finding.
type Severity string

const (
	SeverityInfo Severity = "info"
	SeverityWarn Severity = "warning"
	SeverityFail Severity = "error"
)

// Status is the tri-state outcome of a named check.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

// Finding is a single diagnostic observation about a configuration field or
// installation artifact. Findings are data; they are collected into checks,
// never raised as errors.
type Finding struct {
	Field       string   `json:"field,omitempty"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	Remediation string   `json:"remediation,omitempty"`
}

// HasSeverity reports whether any finding carries the given severity.
func HasSeverity(findings []Finding, sev Severity) bool {
	for _, f := range findings {
		if f.Severity == sev {
			return true
		}
	}
	return false
}

// StatusFor derives a check status from its findings: any error fails the
// check, any warning degrades it, otherwise it passes.
func StatusFor(findings []Finding) Status {
	switch {
	case HasSeverity(findings, SeverityFail):
		return StatusFail
	case HasSeverity(findings, SeverityWarn):
		return StatusWarn
	default:
		return StatusPass
	}
}

// ConnectivityOutcome is the result class of a live probe.
type ConnectivityOutcome string

const (
	ConnectivitySuccess ConnectivityOutcome = "success"
	ConnectivitySkipped ConnectivityOutcome = "skipped"
	ConnectivityFailure ConnectivityOutcome = "failure"
)

// ConnectivityResult captures one probe attempt against the configured
// provider. RawError is the unprocessed provider message; classification
// happens downstream in ClassifyError.
type ConnectivityResult struct {
	Outcome         ConnectivityOutcome `json:"outcome"`
	ResponsePreview string              `json:"response_preview,omitempty"`
	RawError        string              `json:"raw_error,omitempty"`
	Detail          string              `json:"detail,omitempty"`
}
