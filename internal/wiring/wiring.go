// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/agraph/internal/adapters/config"
	_ "go.trai.ch/agraph/internal/adapters/logger"
	_ "go.trai.ch/agraph/internal/adapters/output"
	_ "go.trai.ch/agraph/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/agraph/internal/app"
)
