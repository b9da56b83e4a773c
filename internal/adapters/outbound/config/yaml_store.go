package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/darbotlabs/ufodoctor/internal/domain"
	"gopkg.in/yaml.v3"
)

// BackupSuffix is appended to the config path when the fix flow copies the
// original aside.
const BackupSuffix = ".backup"

// YAMLStore implements domain.ConfigStore over a YAML file on disk.
type YAMLStore struct{}

// New creates a YAMLStore.
func New() *YAMLStore { return &YAMLStore{} }

// Load reads and parses the config document. A missing file is a
// ConfigNotFoundError; invalid YAML, an empty file, or a bare null document
// are ConfigParseErrors — an empty config is never silently treated as a
// valid one.
func (s *YAMLStore) Load(path string) (domain.RawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &domain.ConfigNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &domain.ConfigParseError{Path: path, Reason: err.Error()}
	}
	if doc == nil {
		return nil, &domain.ConfigParseError{Path: path, Reason: "empty or invalid"}
	}

	return domain.RawConfig(doc), nil
}

// Backup copies the file at path to a .backup sibling and returns its path.
// The copy is written in full before Save may overwrite the original.
func (s *YAMLStore) Backup(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading original for backup: %w", err)
	}
	backupPath := path + BackupSuffix
	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}
	return backupPath, nil
}

// Save marshals the document back to path.
func (s *YAMLStore) Save(path string, cfg domain.RawConfig) error {
	data, err := yaml.Marshal(map[string]any(cfg))
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
