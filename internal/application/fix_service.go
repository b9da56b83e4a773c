package application

import (
	"fmt"
	"strings"

	"github.com/darbotlabs/ufodoctor/internal/domain"
)

// FixService repairs the common Azure OpenAI misconfigurations in place:
// placeholder endpoint, placeholder key, and a model name pasted into the
// deployment field. The original file is fully copied to a .backup sibling
// before anything is overwritten.
type FixService struct {
	store domain.ConfigStore
}

func NewFixService(store domain.ConfigStore) *FixService {
	return &FixService{store: store}
}

// PlanFixes loads the config, inspects the named agent and returns the
// proposed changes without touching the file. Agents not using azure/aoai
// need no fixes and yield an empty plan.
func (s *FixService) PlanFixes(configPath, agent string, opts domain.FixOptions) (*domain.FixPlan, error) {
	raw, err := s.store.Load(configPath)
	if err != nil {
		return nil, err
	}

	section, err := domain.ResolveAgentSection(raw, agent)
	if err != nil {
		return nil, err
	}

	plan := &domain.FixPlan{ConfigPath: configPath}
	apiType := strings.ToLower(section[domain.FieldAPIType])
	if apiType != "azure" && apiType != "aoai" {
		return plan, nil
	}

	plan.Changes = detectFixableIssues(agent, section, opts)
	return plan, nil
}

// ApplyFixes plans and then writes every change that has a replacement
// value. With DryRun set, or when nothing is applicable, the file is left
// untouched and the plan is returned as-is.
func (s *FixService) ApplyFixes(configPath, agent string, opts domain.FixOptions) (*domain.FixPlan, error) {
	plan, err := s.PlanFixes(configPath, agent, opts)
	if err != nil {
		return nil, err
	}

	applicable := 0
	for _, c := range plan.Changes {
		if c.Replacement != "" {
			applicable++
		}
	}
	if opts.DryRun || applicable == 0 {
		return plan, nil
	}

	raw, err := s.store.Load(configPath)
	if err != nil {
		return nil, err
	}
	node, ok := domain.AgentSectionNode(raw, agent)
	if !ok {
		return nil, &domain.SectionNotFoundError{Agent: agent}
	}

	// Backup must complete before the original is overwritten.
	backupPath, err := s.store.Backup(configPath)
	if err != nil {
		return nil, fmt.Errorf("backing up config: %w", err)
	}
	plan.BackupPath = backupPath

	for _, c := range plan.Changes {
		if c.Replacement == "" {
			continue
		}
		node[c.Field] = c.Replacement
		plan.Applied++
	}

	if err := s.store.Save(configPath, raw); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}
	return plan, nil
}

func detectFixableIssues(agent string, section domain.AgentConfig, opts domain.FixOptions) []domain.ProposedChange {
	var changes []domain.ProposedChange

	base := section[domain.FieldAPIBase]
	if base == "" || strings.Contains(strings.ToLower(base), "your") {
		changes = append(changes, domain.ProposedChange{
			Agent:       agent,
			Field:       domain.FieldAPIBase,
			Current:     base,
			Replacement: opts.Base,
			Reason:      "API_BASE is missing or contains placeholder text",
		})
	}

	key := section[domain.FieldAPIKey]
	if key == "" || strings.Contains(strings.ToLower(key), "your") {
		changes = append(changes, domain.ProposedChange{
			Agent:       agent,
			Field:       domain.FieldAPIKey,
			Current:     key,
			Replacement: opts.Key,
			Reason:      "API_KEY is missing or contains placeholder text",
		})
	}

	deployment := section[domain.FieldAPIDeploymentID]
	if deploymentLooksLikeModel(deployment) {
		changes = append(changes, domain.ProposedChange{
			Agent:       agent,
			Field:       domain.FieldAPIDeploymentID,
			Current:     deployment,
			Replacement: opts.Deployment,
			Reason:      fmt.Sprintf("API_DEPLOYMENT_ID %q looks like a model name, not a deployment name", deployment),
		})
	}

	return changes
}

func deploymentLooksLikeModel(deployment string) bool {
	switch deployment {
	case "gpt-4", "gpt-4o", "gpt-35-turbo", "gpt-3.5-turbo":
		return true
	}
	return false
}
