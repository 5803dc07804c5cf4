package domain

// ConfiguredTarget represents an analyzed rule instance in the build graph.
// It is the deduplication key for the target section of the serialized
// action graph; equality is by Label.
type ConfiguredTarget struct {
	Label     Label
	RuleClass string // empty when the target was not produced by a rule
	Deps      []Label
	Actions   []ActionSpec
}

// ActionSpec describes a single command registered by a configured target.
type ActionSpec struct {
	Mnemonic      string
	Configuration string
	Arguments     []string
	Inputs        []string
	Outputs       []string
	Env           map[string]string
}
