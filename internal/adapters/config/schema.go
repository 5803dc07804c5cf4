package config

// Workspace represents the structure of the agraph.yaml workspace file.
type Workspace struct {
	Version string               `yaml:"version"`
	Targets map[string]TargetDTO `yaml:"targets"`
}

// TargetDTO represents a configured target definition in the workspace file,
// keyed by its label.
type TargetDTO struct {
	RuleClass string      `yaml:"ruleClass"`
	Deps      []string    `yaml:"deps"`
	Actions   []ActionDTO `yaml:"actions"`
}

// ActionDTO represents a single action registered by a target.
type ActionDTO struct {
	Mnemonic      string            `yaml:"mnemonic"`
	Configuration string            `yaml:"configuration"`
	Args          []string          `yaml:"args"`
	Inputs        []string          `yaml:"inputs"`
	Outputs       []string          `yaml:"outputs"`
	Env           map[string]string `yaml:"env"`
}
