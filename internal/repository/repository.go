package repository

import (
	"context"

	"glossgraph/internal/domain"
)

// Catalog defines read access to a stored glossary
type Catalog interface {
	// ListTerms returns all terms in catalog order
	ListTerms(ctx context.Context) ([]domain.Term, error)
	// GetTerm returns a term, or nil if no term has the id
	GetTerm(ctx context.Context, id string) (*domain.Term, error)

	// Close releases resources
	Close() error
}

// ImportStrategy controls how imported terms combine with stored ones
type ImportStrategy string

const (
	ImportMerge   ImportStrategy = "merge"
	ImportReplace ImportStrategy = "replace"
)

// ImportResult reports what an import changed
type ImportResult struct {
	TermsCreated int            `json:"terms_created"`
	TermsUpdated int            `json:"terms_updated"`
	Links        int            `json:"links"`
	Strategy     ImportStrategy `json:"strategy"`
}
