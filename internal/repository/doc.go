// Package repository defines data access for glossary catalogs.
//
// A catalog is the read model a glossary source server answers from. The
// Catalog interface is read-only; the viewer never writes back. Seeding happens out of band through the sqlite implementation's ImportTerms.
//
// # SQLite Implementation
//
// The sqlite subpackage stores terms and their outgoing links in two tables,
// keeping insertion order so the graph is served in a stable order. Link
// targets are not constrained by foreign keys; whether a dangling link is an
// error is decided by whoever resolves the graph.
package repository
