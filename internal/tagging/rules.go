package tagging

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/models"
)

//go:embed rules/*.yaml
var ruleFiles embed.FS

// fallbackConfidence is the fixed confidence of rule-based suggestions.
const fallbackConfidence = 0.7

// defaultTag is used when no rule fires.
const defaultTag = "uncategorized"

type fallbackRule struct {
	Contains []string `yaml:"contains"` // any-of substrings, matched against name + MIME type
	Tags     []string `yaml:"tags"`
	Folder   string   `yaml:"folder,omitempty"`
}

type ruleFile struct {
	Rules []fallbackRule `yaml:"rules"`
}

// RuleTable is the ordered fallback rule set. Rule order is load-bearing:
// tags accumulate across all matching rules and the last matching rule with
// a folder determines the suggested folder name.
type RuleTable struct {
	rules []fallbackRule
}

// LoadRuleTable loads the embedded YAML rule table.
func LoadRuleTable() (*RuleTable, error) {
	data, err := ruleFiles.ReadFile("rules/rules.yaml")
	if err != nil {
		return nil, fmt.Errorf("read rule table: %w", err)
	}

	var parsed ruleFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal rule table: %w", err)
	}

	if len(parsed.Rules) == 0 {
		return nil, fmt.Errorf("rule table is empty")
	}

	return &RuleTable{rules: parsed.Rules}, nil
}

// Suggest produces a deterministic tag suggestion from the rule table.
// It never fails: unmatched inputs get the default tag.
func (t *RuleTable) Suggest(fileName, mimeType string) *models.TagSuggestion {
	haystack := strings.ToLower(fileName) + " " + strings.ToLower(mimeType)

	var tags []string
	seen := make(map[string]bool)
	folder := ""

	for _, rule := range t.rules {
		if !rule.matches(haystack) {
			continue
		}
		for _, tag := range rule.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
		if rule.Folder != "" {
			folder = rule.Folder
		}
	}

	if len(tags) == 0 {
		tags = []string{defaultTag}
	}

	return &models.TagSuggestion{
		Tags:                tags,
		SuggestedFolderName: folder,
		Confidence:          fallbackConfidence,
		Source:              models.TagSourceFallback,
	}
}

func (r *fallbackRule) matches(haystack string) bool {
	for _, substr := range r.Contains {
		if strings.Contains(haystack, substr) {
			return true
		}
	}
	return false
}
