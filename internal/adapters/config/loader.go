// Package config provides the workspace configuration loader for agraph.
package config

import (
	"os"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"go.trai.ch/agraph/internal/core/domain"
)

// Loader implements ports.ConfigLoader using a YAML workspace file.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads a workspace file from the given path and returns a build graph.
func (l *Loader) Load(path string) (*domain.BuildGraph, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read workspace file")
	}

	var workspace Workspace
	if err := yaml.Unmarshal(data, &workspace); err != nil {
		return nil, zerr.Wrap(err, "failed to parse workspace file")
	}

	if len(workspace.Targets) == 0 {
		return nil, zerr.With(domain.ErrNoTargetsDefined, "path", path)
	}

	// First pass: parse all declared labels so dependency references can be
	// verified before the graph is built. Declared labels are indexed by
	// canonical form, so a dependency may use the "//pkg" shorthand even when
	// the target was declared as "//pkg:name".
	declared := make(map[domain.Label]struct{}, len(workspace.Targets))
	parsed := make(map[string]domain.Label, len(workspace.Targets))
	for raw := range workspace.Targets {
		label, err := domain.ParseLabel(raw)
		if err != nil {
			return nil, err
		}
		declared[label] = struct{}{}
		parsed[raw] = label
	}

	g := domain.NewBuildGraph()
	for raw, dto := range workspace.Targets {
		target, err := buildTarget(parsed[raw], dto, declared)
		if err != nil {
			return nil, err
		}
		if err := g.AddTarget(target); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func buildTarget(label domain.Label, dto TargetDTO, declared map[domain.Label]struct{}) (*domain.ConfiguredTarget, error) {
	deps := make([]domain.Label, 0, len(dto.Deps))
	for _, raw := range dto.Deps {
		dep, err := domain.ParseLabel(raw)
		if err != nil {
			return nil, err
		}
		if _, ok := declared[dep]; !ok {
			return nil, zerr.With(domain.ErrMissingDependency, "dependency", dep.String())
		}
		deps = append(deps, dep)
	}

	actions := make([]domain.ActionSpec, len(dto.Actions))
	for i, a := range dto.Actions {
		actions[i] = domain.ActionSpec{
			Mnemonic:      a.Mnemonic,
			Configuration: a.Configuration,
			Arguments:     a.Args,
			Inputs:        a.Inputs,
			Outputs:       a.Outputs,
			Env:           a.Env,
		}
	}

	return &domain.ConfiguredTarget{
		Label:     label,
		RuleClass: dto.RuleClass,
		Deps:      deps,
		Actions:   actions,
	}, nil
}
