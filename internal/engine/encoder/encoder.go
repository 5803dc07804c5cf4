package encoder

import (
	"context"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"go.trai.ch/agraph/internal/core/domain"
	"go.trai.ch/agraph/internal/core/ports"
)

// Encoder serializes a validated build graph into an action-graph container.
//
// An Encoder is created once per serialization run, owns the container and
// all interning caches for that run, and is discarded after Encode returns.
// Caches are never shared across runs.
type Encoder struct {
	container      *domain.ActionGraphContainer
	ruleClasses    *KnownRuleClassStrings
	targets        *KnownTargets
	artifacts      *KnownArtifacts
	configurations *KnownConfigurations
	actions        *KnownActions

	tracer   ports.Tracer
	progress ports.Progress
}

// New creates an Encoder for a single serialization run.
func New(tracer ports.Tracer, progress ports.Progress) *Encoder {
	container := &domain.ActionGraphContainer{}

	ruleClasses := NewKnownRuleClassStrings(&container.RuleClasses)
	targets := NewKnownTargets(&container.Targets, ruleClasses)
	artifacts := NewKnownArtifacts(&container.Artifacts)
	configurations := NewKnownConfigurations(&container.Configurations)
	actions := NewKnownActions(&container.Actions, targets, configurations, artifacts)

	return &Encoder{
		container:      container,
		ruleClasses:    ruleClasses,
		targets:        targets,
		artifacts:      artifacts,
		configurations: configurations,
		actions:        actions,
		tracer:         tracer,
		progress:       progress,
	}
}

// Encode walks the graph and returns the populated container.
//
// With jobs == 1 targets are visited sequentially in the graph's
// deterministic dependency order, so identical inputs produce byte-identical
// output across runs. With jobs > 1 independent targets are encoded
// concurrently; ids and section ordering are then valid but not reproducible.
func (e *Encoder) Encode(ctx context.Context, g *domain.BuildGraph, jobs int) (*domain.ActionGraphContainer, error) {
	ctx, span := e.tracer.Start(ctx, "encode")
	defer span.End()
	span.SetAttribute("targets", g.TargetCount())
	span.SetAttribute("jobs", jobs)

	var err error
	if jobs <= 1 {
		err = e.encodeSequential(ctx, g)
	} else {
		err = e.encodeParallel(ctx, g, jobs)
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := e.encodeDepEdges(g); err != nil {
		span.RecordError(err)
		return nil, err
	}

	return e.container, nil
}

func (e *Encoder) encodeSequential(ctx context.Context, g *domain.BuildGraph) error {
	for target := range g.Walk() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.encodeTarget(ctx, target); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeParallel(ctx context.Context, g *domain.BuildGraph, jobs int) error {
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(jobs)

	for target := range g.Walk() {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return e.encodeTarget(ctx, target)
		})
	}

	return grp.Wait()
}

// encodeTarget interns one target and all of its actions. Revisiting shared
// sub-structure (rule classes, configurations, artifacts reached from other
// targets) resolves to the already-assigned ids.
func (e *Encoder) encodeTarget(ctx context.Context, target domain.ConfiguredTarget) error {
	_, vertex := e.progress.Record(ctx, target.Label.String())

	err := e.internTarget(target)
	vertex.Complete(err)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to encode target"), "label", target.Label.String())
	}
	return nil
}

func (e *Encoder) internTarget(target domain.ConfiguredTarget) error {
	if _, err := e.targets.DataToID(TargetKey{Label: target.Label, RuleClass: target.RuleClass}); err != nil {
		return err
	}
	for _, spec := range target.Actions {
		if _, err := e.actions.DataToID(target.Label, target.RuleClass, spec); err != nil {
			return err
		}
	}
	return nil
}

// encodeDepEdges emits one edge per dependency, in graph order. It runs after
// the walk, when every target id is already assigned, so the pass is
// deterministic regardless of how the walk was scheduled.
func (e *Encoder) encodeDepEdges(g *domain.BuildGraph) error {
	for target := range g.Walk() {
		fromID, err := e.targets.DataToID(TargetKey{Label: target.Label, RuleClass: target.RuleClass})
		if err != nil {
			return err
		}
		for _, dep := range target.Deps {
			depTarget, ok := g.Target(dep)
			if !ok {
				return zerr.With(domain.ErrMissingDependency, "dependency", dep.String())
			}
			toID, err := e.targets.DataToID(TargetKey{Label: depTarget.Label, RuleClass: depTarget.RuleClass})
			if err != nil {
				return err
			}
			if err := e.container.DepEdges.Append(domain.DepEdge{From: fromID, To: toID}); err != nil {
				return err
			}
		}
	}
	return nil
}
