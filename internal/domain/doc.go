// Package domain defines the core types of the glossary graph viewer.
//
// # Core Types
//
// Node is one glossary term placed in the force layout. Besides its identity
// (id, label, definition) it carries the mutable simulation state: position,
// velocity and an optional pinned position used while the node is dragged.
//
// Edge connects two Nodes by reference. Edges are only ever built by the store
// after every endpoint id has been resolved, so an Edge never dangles.
//
// Graph is the serializable snapshot of nodes, edges and positions handed to
// HTTP clients and exporters.
//
// # Wire Types
//
// GraphPayload is the document served by a glossary endpoint. Identifiers on
// the wire may be strings or numbers; ID normalizes both to strings during
// decoding so the rest of the system never sees a numeric id.
//
// Term is the record kept by a glossary catalog (term, definition, outgoing
// links). PayloadFromTerms derives the graph payload from a term list.
package domain
