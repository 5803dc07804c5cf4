package output

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/agraph/internal/adapters/logger"
	"go.trai.ch/agraph/internal/core/ports"
)

// NodeID is the unique identifier for the OutputWriter adapter Graft node.
const NodeID graft.ID = "adapter.output_writer"

func init() {
	graft.Register(graft.Node[ports.OutputWriter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.OutputWriter, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewWriter(log, true), nil
		},
	})
}
