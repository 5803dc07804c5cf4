package domain

import "encoding/json"

// The types below form the serialized action-graph model. Every node carries
// a dense integer id assigned by the encoder, and nodes reference each other
// exclusively by id. Id spaces are per section: a rule class id and an
// artifact id may collide numerically and must never be conflated.

// Artifact is a serialized file node, identified by its exec path.
type Artifact struct {
	ID       uint32 `json:"id"`
	ExecPath string `json:"execPath"`
}

// RuleClass is a serialized rule class name (e.g. "go_library").
type RuleClass struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
}

// Configuration is a serialized build configuration.
type Configuration struct {
	ID       uint32 `json:"id"`
	Mnemonic string `json:"mnemonic"`
	Checksum string `json:"checksum"`
}

// Target is a serialized configured target. RuleClassID is nil when the
// target was not produced by a rule; absence is expressed by leaving the
// field unset, never by a sentinel id.
type Target struct {
	ID          uint32  `json:"id"`
	Label       string  `json:"label"`
	RuleClassID *uint32 `json:"ruleClassId,omitempty"`
}

// KeyValue is a single environment variable of a serialized action.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Action is a serialized action. All references are foreign-key ids into
// the sibling sections of the container.
type Action struct {
	ID              uint32     `json:"id"`
	TargetID        uint32     `json:"targetId"`
	ConfigurationID uint32     `json:"configurationId"`
	Mnemonic        string     `json:"mnemonic"`
	ActionKey       string     `json:"actionKey"`
	Arguments       []string   `json:"arguments,omitempty"`
	InputIDs        []uint32   `json:"inputIds,omitempty"`
	OutputIDs       []uint32   `json:"outputIds,omitempty"`
	EnvVars         []KeyValue `json:"envVars,omitempty"`
}

// DepEdge records a dependency between two targets, by target id.
type DepEdge struct {
	From uint32 `json:"from"`
	To   uint32 `json:"to"`
}

// Section is an append-only accumulator for one node type of the container.
// Iteration order of the final output equals append order. Section is not
// safe for concurrent use; the cache that owns it appends under its own lock.
type Section[T any] struct {
	items []T
}

// Append adds a value to the end of the section.
func (s *Section[T]) Append(v T) error {
	s.items = append(s.items, v)
	return nil
}

// Count returns the number of values appended so far.
func (s *Section[T]) Count() int {
	return len(s.items)
}

// Items returns the accumulated values in append order.
func (s *Section[T]) Items() []T {
	return s.items
}

// MarshalJSON serializes the section as a plain array, an empty section as [].
func (s Section[T]) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

// ActionGraphContainer is the composite output of one serialization run:
// the union of all sections, each populated in first-seen order.
type ActionGraphContainer struct {
	Artifacts      Section[Artifact]      `json:"artifacts"`
	Actions        Section[Action]        `json:"actions"`
	Targets        Section[Target]        `json:"targets"`
	DepEdges       Section[DepEdge]       `json:"depEdges"`
	RuleClasses    Section[RuleClass]     `json:"ruleClasses"`
	Configurations Section[Configuration] `json:"configurations"`
}
