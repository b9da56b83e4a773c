package install

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/darbotlabs/ufodoctor/internal/domain"
)

// Layout a UFO² checkout is expected to have under <root>/ufo.
var (
	essentialDirs = []string{
		"agents", "automator", "config", "llm", "prompter", "prompts", "utils",
	}
	essentialFiles = []string{
		"__init__.py", "__main__.py", "ufo.py",
	}
)

const (
	configRelPath   = "config/config.yaml"
	templateRelPath = "config/config.yaml.template"
)

// Scanner implements domain.InstallScanner by enumerating the expected
// directories and files of a checkout.
type Scanner struct{}

// New creates a Scanner.
func New() *Scanner { return &Scanner{} }

// Scan checks the directory layout under root. A missing config.yaml is a
// warning with a pointer at the template; everything else expected is a
// hard failure when absent.
func (s *Scanner) Scan(root string) []domain.Finding {
	var findings []domain.Finding

	ufoDir := filepath.Join(root, "ufo")
	if !isDir(ufoDir) {
		return []domain.Finding{{
			Severity:    domain.SeverityFail,
			Message:     fmt.Sprintf("ufo directory not found at %s", ufoDir),
			Remediation: "run from the UFO² checkout root, or pass --path",
		}}
	}

	for _, name := range essentialDirs {
		if !isDir(filepath.Join(ufoDir, name)) {
			findings = append(findings, domain.Finding{
				Field:    "ufo/" + name,
				Severity: domain.SeverityFail,
				Message:  fmt.Sprintf("missing directory: ufo/%s", name),
			})
		}
	}

	for _, name := range essentialFiles {
		if !isFile(filepath.Join(ufoDir, name)) {
			findings = append(findings, domain.Finding{
				Field:    "ufo/" + name,
				Severity: domain.SeverityFail,
				Message:  fmt.Sprintf("missing file: ufo/%s", name),
			})
		}
	}

	if !isFile(filepath.Join(ufoDir, filepath.FromSlash(templateRelPath))) {
		findings = append(findings, domain.Finding{
			Field:    "ufo/" + templateRelPath,
			Severity: domain.SeverityFail,
			Message:  "missing config template: ufo/config/config.yaml.template",
		})
	}

	if !isFile(filepath.Join(ufoDir, filepath.FromSlash(configRelPath))) {
		findings = append(findings, domain.Finding{
			Field:       "ufo/" + configRelPath,
			Severity:    domain.SeverityWarn,
			Message:     "config file not found: ufo/config/config.yaml",
			Remediation: "create it from config.yaml.template",
		})
	}

	return findings
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
