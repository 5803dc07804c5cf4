package telemetry

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/agraph/internal/core/ports"
)

const (
	// TracerNodeID is the unique identifier for the Tracer adapter Graft node.
	TracerNodeID graft.ID = "adapter.telemetry.tracer"
	// ProgressNodeID is the unique identifier for the Progress adapter Graft node.
	ProgressNodeID graft.ID = "adapter.telemetry.progress"
)

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Tracer, error) {
			// Records through the global OTel provider; a no-op unless the
			// embedding process installs an SDK.
			return NewOTelTracer("agraph"), nil
		},
	})

	graft.Register(graft.Node[ports.Progress]{
		ID:        ProgressNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Progress, error) {
			return NewNoOpProgress(), nil
		},
	})
}
