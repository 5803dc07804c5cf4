// Package app implements the application layer for agraph.
package app

import (
	"context"
	"fmt"
	"runtime"

	"go.trai.ch/zerr"

	"go.trai.ch/agraph/internal/core/ports"
	"go.trai.ch/agraph/internal/engine/encoder"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	writer       ports.OutputWriter
	tracer       ports.Tracer
	progress     ports.Progress
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	writer ports.OutputWriter,
	tracer ports.Tracer,
	progress ports.Progress,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		writer:       writer,
		tracer:       tracer,
		progress:     progress,
		logger:       logger,
	}
}

// SetProgress replaces the progress recorder, e.g. to attach an interactive
// recorder for a single invocation.
func (a *App) SetProgress(p ports.Progress) {
	a.progress = p
}

// DumpOptions configures a single Dump invocation.
type DumpOptions struct {
	// ConfigPath is the workspace file to load.
	ConfigPath string
	// OutputPath is where the serialized action graph is written.
	OutputPath string
	// Jobs is the number of targets encoded concurrently; 0 means NumCPU,
	// 1 forces the deterministic sequential order.
	Jobs int
}

// Dump loads the workspace, validates the graph, serializes it into an
// action-graph container and writes the result to opts.OutputPath.
func (a *App) Dump(ctx context.Context, opts DumpOptions) error {
	ctx, span := a.tracer.Start(ctx, "dump")
	defer span.End()

	defer func() {
		if err := a.progress.Close(); err != nil {
			a.logger.Warn("failed to close progress recorder: " + err.Error())
		}
	}()

	graph, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load workspace")
	}

	if err := graph.Validate(); err != nil {
		return zerr.Wrap(err, "invalid build graph")
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	enc := encoder.New(a.tracer, a.progress)
	container, err := enc.Encode(ctx, graph, jobs)
	if err != nil {
		return zerr.Wrap(err, "failed to encode action graph")
	}

	if err := a.writer.Write(opts.OutputPath, container); err != nil {
		return zerr.Wrap(err, "failed to write action graph")
	}

	a.logger.Info(fmt.Sprintf(
		"encoded %d targets, %d actions, %d artifacts",
		container.Targets.Count(), container.Actions.Count(), container.Artifacts.Count(),
	))
	return nil
}
