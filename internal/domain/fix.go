package domain

// ProposedChange is one field replacement the fix flow wants to make.
// Replacement may be empty when the caller supplied no value for it, in
// which case the change is reported but not applied.
type ProposedChange struct {
	Agent       string `json:"agent"`
	Field       string `json:"field"`
	Current     string `json:"current"`
	Replacement string `json:"replacement,omitempty"`
	Reason      string `json:"reason"`
}

// FixPlan describes what the fix flow found and, after application, what it
// wrote. BackupPath is set only once the original file has been fully
// copied aside.
type FixPlan struct {
	ConfigPath string           `json:"config_path"`
	BackupPath string           `json:"backup_path,omitempty"`
	Changes    []ProposedChange `json:"changes"`
	Applied    int              `json:"applied"`
}

// FixOptions carries replacement values into the fix flow. The engine never
// prompts; interactive collection of these values belongs to the CLI layer.
type FixOptions struct {
	DryRun     bool   `json:"dry_run"`
	Base       string `json:"base,omitempty"`
	Key        string `json:"-"`
	Deployment string `json:"deployment,omitempty"`
}
