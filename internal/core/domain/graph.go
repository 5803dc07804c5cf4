// Package domain contains the core domain models for the build graph and its
// serialized action-graph representation.
package domain

import (
	"iter"
	"sort"

	"go.trai.ch/zerr"
)

// BuildGraph represents the dependency graph of configured targets.
type BuildGraph struct {
	targets        map[Label]ConfiguredTarget
	executionOrder []Label
}

// NewBuildGraph creates a new empty BuildGraph.
func NewBuildGraph() *BuildGraph {
	return &BuildGraph{
		targets: make(map[Label]ConfiguredTarget),
	}
}

// AddTarget adds a configured target to the graph.
// It returns an error if a target with the same label already exists.
func (g *BuildGraph) AddTarget(t *ConfiguredTarget) error {
	if _, exists := g.targets[t.Label]; exists {
		return zerr.With(ErrTargetAlreadyExists, "label", t.Label.String())
	}
	g.targets[t.Label] = *t
	return nil
}

// TargetCount returns the number of targets in the graph.
func (g *BuildGraph) TargetCount() int {
	return len(g.targets)
}

// Target returns the configured target for the given label.
func (g *BuildGraph) Target(l Label) (ConfiguredTarget, bool) {
	t, ok := g.targets[l]
	return t, ok
}

// Validate checks for cycles in the graph using a topological sort and
// populates the traversal order on success. Roots are visited in sorted
// label order so that the resulting order is deterministic across runs.
func (g *BuildGraph) Validate() error {
	g.executionOrder = make([]Label, 0, len(g.targets))
	visited := make(map[Label]int, len(g.targets)) // 0: unvisited, 1: visiting, 2: visited
	var path []Label

	var visit func(u Label) error
	visit = func(u Label) error {
		visited[u] = 1
		path = append(path, u)

		target, exists := g.targets[u]
		if !exists {
			return zerr.With(ErrMissingDependency, "dependency", u.String())
		}

		for _, dep := range target.Deps {
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	for _, label := range g.sortedLabels() {
		if visited[label] == 0 {
			if err := visit(label); err != nil {
				return err
			}
		}
	}

	return nil
}

func (g *BuildGraph) sortedLabels() []Label {
	labels := make([]Label, 0, len(g.targets))
	for l := range g.targets {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		return labels[i].String() < labels[j].String()
	})
	return labels
}

// buildCycleError constructs an error with cycle path metadata.
func (g *BuildGraph) buildCycleError(path []Label, dep Label) error {
	cyclePath := ""
	startIdx := -1
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i].String() + " -> "
	}
	cyclePath += dep.String()
	return zerr.With(ErrCycleDetected, "cycle", cyclePath)
}

// Walk returns an iterator that yields targets in dependency order, with
// every target preceded by all of its dependencies.
// It assumes Validate() has been called and returned nil.
func (g *BuildGraph) Walk() iter.Seq[ConfiguredTarget] {
	return func(yield func(ConfiguredTarget) bool) {
		for _, label := range g.executionOrder {
			if !yield(g.targets[label]) {
				return
			}
		}
	}
}
