package sqlite

import (
	"database/sql"

	"glossgraph/internal/domain"
)

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull converts string to sql.NullString, empty becomes NULL
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// termRow holds all columns from a term query for scanning
type termRow struct {
	ID         string
	Term       string
	Definition sql.NullString
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match termColumns order exactly: id, term, definition
func (r *termRow) scanArgs() []interface{} {
	return []interface{}{
		&r.ID,         // 1
		&r.Term,       // 2
		&r.Definition, // 3
	}
}

// toDomain converts the scanned row to a domain.Term without links
func (r *termRow) toDomain() domain.Term {
	return domain.Term{
		ID:         domain.ID(r.ID),
		Term:       r.Term,
		Definition: nullToString(r.Definition),
		Links:      make([]domain.ID, 0),
	}
}

// termColumns returns the SELECT column list for term queries
const termColumns = `id, term, definition`
