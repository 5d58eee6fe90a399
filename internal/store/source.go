package store

import (
	"context"
	"fmt"
	"os"

	"glossgraph/internal/codec"
	"glossgraph/internal/domain"
	"glossgraph/internal/repository"
)

// Source produces the raw graph payload the store normalizes
type Source interface {
	Fetch(ctx context.Context) (*domain.GraphPayload, error)
	// Describe names the source for logs
	Describe() string
}

// FileSource reads a JSON or YAML glossary file on every fetch
type FileSource struct {
	path string
}

// NewFileSource creates a source for a local glossary file
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Describe names the source for logs
func (s *FileSource) Describe() string {
	return "file:" + s.path
}

// Fetch reads and parses the file
func (s *FileSource) Fetch(ctx context.Context) (*domain.GraphPayload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c, err := codec.ForPath(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer f.Close()

	payload, err := c.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return payload, nil
}

// CatalogSource reads terms straight from a glossary catalog
type CatalogSource struct {
	catalog repository.Catalog
	name    string
}

// NewCatalogSource wraps a catalog as a source
func NewCatalogSource(catalog repository.Catalog, name string) *CatalogSource {
	return &CatalogSource{catalog: catalog, name: name}
}

// Describe names the source for logs
func (s *CatalogSource) Describe() string {
	return "catalog:" + s.name
}

// Fetch lists all terms and derives the graph payload
func (s *CatalogSource) Fetch(ctx context.Context) (*domain.GraphPayload, error) {
	terms, err := s.catalog.ListTerms(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return domain.PayloadFromTerms(terms), nil
}

// StaticSource serves a fixed payload, such as the embedded sample glossary
type StaticSource struct {
	Name    string
	Payload *domain.GraphPayload
}

// Describe names the source for logs
func (s StaticSource) Describe() string {
	if s.Name == "" {
		return "static"
	}
	return s.Name
}

// Fetch returns the fixed payload
func (s StaticSource) Fetch(ctx context.Context) (*domain.GraphPayload, error) {
	if s.Payload == nil {
		return nil, fmt.Errorf("%w: no payload", ErrFetch)
	}
	return s.Payload, nil
}
