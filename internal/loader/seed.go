// Package loader reads glossary seed files and imports them into a catalog.
package loader

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"

	"glossgraph/internal/codec"
	"glossgraph/internal/domain"
	"glossgraph/internal/repository"
)

// Importer stores terms; the sqlite repository implements it
type Importer interface {
	ImportTerms(ctx context.Context, terms []domain.Term, strategy repository.ImportStrategy) (*repository.ImportResult, error)
}

// LoadTerms reads a JSON or YAML seed file from disk
func LoadTerms(path string) ([]domain.Term, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed: %w", err)
	}
	return ParseTerms(path, data)
}

// LoadTermsFS reads a seed file from fsys, such as an embedded default
func LoadTermsFS(fsys fs.FS, path string) ([]domain.Term, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed: %w", err)
	}
	return ParseTerms(path, data)
}

// ParseTerms decodes seed data, picking the format from name's extension.
// Both a term list and a {nodes, edges} document are accepted.
func ParseTerms(name string, data []byte) ([]domain.Term, error) {
	c, err := codec.ForPath(name)
	if err != nil {
		return nil, err
	}
	payload, err := c.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse seed %s: %w", name, err)
	}
	return payload.Terms(), nil
}

// Seed imports the terms of one seed file
func Seed(ctx context.Context, imp Importer, path string, strategy repository.ImportStrategy) (*repository.ImportResult, error) {
	terms, err := LoadTerms(path)
	if err != nil {
		return nil, err
	}
	result, err := imp.ImportTerms(ctx, terms, strategy)
	if err != nil {
		return nil, fmt.Errorf("failed to import seed %s: %w", path, err)
	}
	return result, nil
}
