package catalog

import (
	"context"
	"fmt"
	"os"
)

// Source loads a catalog once at startup.
type Source interface {
	LoadCatalog(ctx context.Context) (*Catalog, error)
}

// EmbeddedSource serves the dataset compiled into the binary.
type EmbeddedSource struct{}

// LoadCatalog implements Source.
func (EmbeddedSource) LoadCatalog(context.Context) (*Catalog, error) {
	return Default()
}

// FileSource reads a YAML catalog from disk.
type FileSource struct {
	Path string
}

// LoadCatalog implements Source.
func (s FileSource) LoadCatalog(context.Context) (*Catalog, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog file: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}
