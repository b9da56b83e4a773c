package domain

import "context"

// ConfigStore loads and persists the agent configuration document.
type ConfigStore interface {
	// Load reads and parses the YAML document at path. It returns
	// *ConfigNotFoundError when the file is absent and *ConfigParseError
	// when the content is not a usable mapping.
	Load(path string) (RawConfig, error)

	// Backup copies the file at path to a .backup sibling, fully, and
	// returns the backup path. Callers invoke it before any Save.
	Backup(path string) (string, error)

	// Save marshals cfg back to path.
	Save(path string, cfg RawConfig) error
}

// ChatProber issues one minimal chat-completion request against the
// provider implied by the agent config. Failures are typed outcomes, never
// errors; the blocking call is bounded by the prober's timeout.
type ChatProber interface {
	Probe(ctx context.Context, cfg AgentConfig) ConnectivityResult
}

// InstallScanner checks the on-disk layout of a UFO² checkout.
type InstallScanner interface {
	Scan(root string) []Finding
}

// DependencyChecker reports, per dependency name, whether the host
// environment can import it. The engine only consumes the resulting map.
type DependencyChecker interface {
	Check(ctx context.Context, names []string) map[string]bool
}

// RepoInspector supplies provenance for the diagnosed checkout.
type RepoInspector interface {
	// CommitHash returns the checkout's HEAD hash, or ok=false when the
	// root is not a git repository.
	CommitHash(root string) (hash string, ok bool)
}
