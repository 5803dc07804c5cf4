// Package output persists finalized action-graph containers to disk.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"

	"go.trai.ch/agraph/internal/core/domain"
	"go.trai.ch/agraph/internal/core/ports"
)

var _ ports.OutputWriter = (*Writer)(nil)

// Writer implements ports.OutputWriter using an indented JSON file.
type Writer struct {
	logger ports.Logger
	pretty bool
}

// NewWriter creates a new Writer. When pretty is true the container is
// serialized with indentation.
func NewWriter(logger ports.Logger, pretty bool) *Writer {
	return &Writer{logger: logger, pretty: pretty}
}

// Write serializes the container and writes it to the given path, creating
// parent directories as needed.
func (w *Writer) Write(path string, container *domain.ActionGraphContainer) error {
	data, err := w.marshal(container)
	if err != nil {
		return zerr.Wrap(err, "failed to marshal action graph")
	}

	dir := filepath.Dir(filepath.Clean(path))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create output directory")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write action graph")
	}

	w.logger.Info(fmt.Sprintf("wrote %s (%d bytes, xxh64 %016x)", path, len(data), xxhash.Sum64(data)))
	return nil
}

// Marshal returns the serialized container without writing it anywhere.
func (w *Writer) Marshal(container *domain.ActionGraphContainer) ([]byte, error) {
	data, err := w.marshal(container)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to marshal action graph")
	}
	return data, nil
}

func (w *Writer) marshal(container *domain.ActionGraphContainer) ([]byte, error) {
	if w.pretty {
		return json.MarshalIndent(container, "", "  ")
	}
	return json.Marshal(container)
}
