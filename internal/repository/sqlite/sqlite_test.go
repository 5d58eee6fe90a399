package sqlite

import (
	"context"
	"database/sql"
	"reflect"
	"testing"

	"glossgraph/internal/domain"
	"glossgraph/internal/repository"
)

// ============================================================================
// Test Helpers
// ============================================================================

// newTestRepo creates an in-memory SQLite repository for testing
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}

	_, err = repo.db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func assertEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
}

func sampleTerms() []domain.Term {
	return []domain.Term{
		{ID: "1", Term: "API", Definition: "Application programming interface", Links: []domain.ID{"2", "3"}},
		{ID: "2", Term: "REST", Definition: "Representational state transfer", Links: []domain.ID{"3"}},
		{ID: "3", Term: "HTTP", Definition: "", Links: []domain.ID{}},
	}
}

// ============================================================================
// Helper Function Tests
// ============================================================================

func TestNullToString(t *testing.T) {
	assertEqual(t, "test", nullToString(sql.NullString{String: "test", Valid: true}))
	assertEqual(t, "", nullToString(sql.NullString{String: "test", Valid: false}))
}

func TestStringToNull(t *testing.T) {
	assertEqual(t, sql.NullString{String: "x", Valid: true}, stringToNull("x"))
	assertEqual(t, sql.NullString{}, stringToNull(""))
}

// ============================================================================
// Catalog Tests
// ============================================================================

func TestImportAndListTerms(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	result, err := repo.ImportTerms(ctx, sampleTerms(), repository.ImportMerge)
	assertNoError(t, err)
	assertEqual(t, 3, result.TermsCreated)
	assertEqual(t, 0, result.TermsUpdated)
	assertEqual(t, 3, result.Links)

	terms, err := repo.ListTerms(ctx)
	assertNoError(t, err)
	assertEqual(t, 3, len(terms))

	// Catalog order follows insertion order, links keep their order
	assertEqual(t, domain.ID("1"), terms[0].ID)
	assertEqual(t, []domain.ID{"2", "3"}, terms[0].Links)
	assertEqual(t, "", terms[2].Definition)
	assertEqual(t, []domain.ID{}, terms[2].Links)
}

func TestImportMergeUpdatesExisting(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.ImportTerms(ctx, sampleTerms(), repository.ImportMerge)
	assertNoError(t, err)

	result, err := repo.ImportTerms(ctx, []domain.Term{
		{ID: "2", Term: "RESTful", Definition: "updated", Links: []domain.ID{"1"}},
		{ID: "4", Term: "JSON", Definition: "notation"},
	}, repository.ImportMerge)
	assertNoError(t, err)
	assertEqual(t, 1, result.TermsCreated)
	assertEqual(t, 1, result.TermsUpdated)

	term, err := repo.GetTerm(ctx, "2")
	assertNoError(t, err)
	assertEqual(t, "RESTful", term.Term)
	assertEqual(t, []domain.ID{"1"}, term.Links)

	terms, err := repo.ListTerms(ctx)
	assertNoError(t, err)
	assertEqual(t, 4, len(terms))
	assertEqual(t, domain.ID("4"), terms[3].ID)
}

func TestImportReplaceClearsCatalog(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.ImportTerms(ctx, sampleTerms(), repository.ImportMerge)
	assertNoError(t, err)

	_, err = repo.ImportTerms(ctx, []domain.Term{{ID: "x", Term: "X"}}, repository.ImportReplace)
	assertNoError(t, err)

	n, err := repo.CountTerms(ctx)
	assertNoError(t, err)
	assertEqual(t, 1, n)

	old, err := repo.GetTerm(ctx, "1")
	assertNoError(t, err)
	if old != nil {
		t.Fatalf("expected term 1 to be gone, got %+v", old)
	}
}

func TestImportRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	t.Run("unknown strategy", func(t *testing.T) {
		if _, err := repo.ImportTerms(ctx, sampleTerms(), "upsert"); err == nil {
			t.Error("expected error for unknown strategy")
		}
	})

	t.Run("missing id rolls back", func(t *testing.T) {
		_, err := repo.ImportTerms(ctx, []domain.Term{{ID: "a", Term: "A"}, {Term: "no id"}}, repository.ImportMerge)
		if err == nil {
			t.Fatal("expected error for missing id")
		}
		n, err := repo.CountTerms(ctx)
		assertNoError(t, err)
		assertEqual(t, 0, n)
	})
}

func TestGetTermMissing(t *testing.T) {
	repo := newTestRepo(t)

	term, err := repo.GetTerm(context.Background(), "nope")
	assertNoError(t, err)
	if term != nil {
		t.Fatalf("expected nil term, got %+v", term)
	}
}

func TestDanglingLinksAreStored(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.ImportTerms(ctx, []domain.Term{{ID: "1", Term: "A", Links: []domain.ID{"99"}}}, repository.ImportMerge)
	assertNoError(t, err)

	term, err := repo.GetTerm(ctx, "1")
	assertNoError(t, err)
	assertEqual(t, []domain.ID{"99"}, term.Links)
}
