package actionable

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed playbook.yaml
var defaultPlaybookYAML []byte

// Phase is one fixed step of the per-product action plan. Tasks and the
// expected outcome may reference {product}, {revenue} and {roi}.
type Phase struct {
	Phase           string   `yaml:"phase"`
	Tasks           []string `yaml:"tasks"`
	Budget          string   `yaml:"budget"`
	ExpectedOutcome string   `yaml:"expected_outcome"`
}

// Playbook holds the narrative constants: the goal sentence template and the
// phase -> tasks -> budget table.
type Playbook struct {
	CoreGoal    string  `yaml:"core_goal"`
	TotalWeeks  int     `yaml:"total_weeks"`
	TotalBudget string  `yaml:"total_budget"`
	Phases      []Phase `yaml:"phases"`
}

// DefaultPlaybook parses the embedded playbook.
func DefaultPlaybook() Playbook {
	pb, err := ParsePlaybook(defaultPlaybookYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded playbook is invalid: %v", err))
	}
	return pb
}

// LoadPlaybook reads a playbook override from disk.
func LoadPlaybook(path string) (Playbook, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Playbook{}, fmt.Errorf("read playbook: %w", err)
	}
	return ParsePlaybook(raw)
}

func ParsePlaybook(raw []byte) (Playbook, error) {
	var pb Playbook
	if err := yaml.Unmarshal(raw, &pb); err != nil {
		return Playbook{}, fmt.Errorf("parse playbook: %w", err)
	}
	if len(pb.Phases) == 0 {
		return Playbook{}, fmt.Errorf("playbook has no phases")
	}
	return pb, nil
}
