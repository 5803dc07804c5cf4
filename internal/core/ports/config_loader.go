package ports

import "go.trai.ch/agraph/internal/core/domain"

// ConfigLoader loads a workspace definition into a build graph.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the workspace file at the given path and returns the graph.
	Load(path string) (*domain.BuildGraph, error)
}
