package ports

import "go.trai.ch/agraph/internal/core/domain"

// OutputWriter persists a finalized action-graph container.
//
//go:generate mockgen -source=writer.go -destination=mocks/mock_writer.go -package=mocks
type OutputWriter interface {
	// Write serializes the container and writes it to the given path.
	Write(path string, container *domain.ActionGraphContainer) error
}
