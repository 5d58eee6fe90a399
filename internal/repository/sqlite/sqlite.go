package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"glossgraph/internal/domain"
	"glossgraph/internal/repository"

	_ "modernc.org/sqlite"
)

// Repository implements repository.Catalog using SQLite
type Repository struct {
	db *sql.DB
}

var _ repository.Catalog = (*Repository)(nil)

// New opens (and migrates) a SQLite catalog
func New(dbPath string) (*Repository, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		dsn = "file:" + dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps :memory: databases alive across queries
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS terms (
		id TEXT PRIMARY KEY,
		seq INTEGER NOT NULL,
		term TEXT NOT NULL,
		definition TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS term_links (
		term_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		target_id TEXT NOT NULL,
		PRIMARY KEY (term_id, seq),
		FOREIGN KEY (term_id) REFERENCES terms(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_terms_seq ON terms(seq);
	CREATE INDEX IF NOT EXISTS idx_term_links_target ON term_links(target_id);
	`

	_, err := r.db.Exec(schema)
	return err
}

// ListTerms loads every term with its links in catalog order
func (r *Repository) ListTerms(ctx context.Context) ([]domain.Term, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+termColumns+` FROM terms ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query terms: %w", err)
	}
	defer rows.Close()

	terms := make([]domain.Term, 0)
	index := make(map[string]int)
	for rows.Next() {
		var row termRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan term: %w", err)
		}
		index[row.ID] = len(terms)
		terms = append(terms, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating terms: %w", err)
	}

	linkRows, err := r.db.QueryContext(ctx, `SELECT term_id, target_id FROM term_links ORDER BY term_id, seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer linkRows.Close()

	for linkRows.Next() {
		var termID, targetID string
		if err := linkRows.Scan(&termID, &targetID); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		if i, ok := index[termID]; ok {
			terms[i].Links = append(terms[i].Links, domain.ID(targetID))
		}
	}
	if err := linkRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating links: %w", err)
	}

	return terms, nil
}

// GetTerm loads a single term, returning nil if it does not exist
func (r *Repository) GetTerm(ctx context.Context, id string) (*domain.Term, error) {
	var row termRow
	err := r.db.QueryRowContext(ctx, `SELECT `+termColumns+` FROM terms WHERE id = ?`, id).Scan(row.scanArgs()...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get term: %w", err)
	}

	term := row.toDomain()

	rows, err := r.db.QueryContext(ctx, `SELECT target_id FROM term_links WHERE term_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var target string
		if err := rows.Scan(&target); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		term.Links = append(term.Links, domain.ID(target))
	}

	return &term, rows.Err()
}

// ImportTerms writes terms in one transaction. Merge updates terms that
// already exist and appends new ones; replace clears the catalog first.
func (r *Repository) ImportTerms(ctx context.Context, terms []domain.Term, strategy repository.ImportStrategy) (*repository.ImportResult, error) {
	if strategy == "" {
		strategy = repository.ImportMerge
	}
	if strategy != repository.ImportMerge && strategy != repository.ImportReplace {
		return nil, fmt.Errorf("invalid strategy %s, must be 'merge' or 'replace'", strategy)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if strategy == repository.ImportReplace {
		if _, err := tx.ExecContext(ctx, `DELETE FROM term_links`); err != nil {
			return nil, fmt.Errorf("failed to clear links: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM terms`); err != nil {
			return nil, fmt.Errorf("failed to clear terms: %w", err)
		}
	}

	var nextSeq int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), -1) + 1 FROM terms`).Scan(&nextSeq); err != nil {
		return nil, fmt.Errorf("failed to read sequence: %w", err)
	}

	result := &repository.ImportResult{Strategy: strategy}
	for _, t := range terms {
		if t.ID == "" {
			return nil, fmt.Errorf("term %q has no id", t.Term)
		}

		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM terms WHERE id = ?`, t.ID.String()).Scan(&exists); err != nil {
			return nil, fmt.Errorf("failed to check term %s: %w", t.ID, err)
		}

		if exists > 0 {
			_, err = tx.ExecContext(ctx,
				`UPDATE terms SET term = ?, definition = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
				t.Term, stringToNull(t.Definition), t.ID.String())
			result.TermsUpdated++
		} else {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO terms (id, seq, term, definition) VALUES (?, ?, ?, ?)`,
				t.ID.String(), nextSeq, t.Term, stringToNull(t.Definition))
			nextSeq++
			result.TermsCreated++
		}
		if err != nil {
			return nil, fmt.Errorf("failed to write term %s: %w", t.ID, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM term_links WHERE term_id = ?`, t.ID.String()); err != nil {
			return nil, fmt.Errorf("failed to reset links for %s: %w", t.ID, err)
		}
		for i, target := range t.Links {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO term_links (term_id, seq, target_id) VALUES (?, ?, ?)`,
				t.ID.String(), i, target.String()); err != nil {
				return nil, fmt.Errorf("failed to write link %s->%s: %w", t.ID, target, err)
			}
			result.Links++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	return result, nil
}

// CountTerms returns the number of stored terms
func (r *Repository) CountTerms(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM terms`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count terms: %w", err)
	}
	return n, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
