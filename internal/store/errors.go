package store

import "errors"

var (
	// ErrFetch reports that the glossary could not be retrieved
	ErrFetch = errors.New("glossary fetch failed")
	// ErrDecode reports that the glossary document could not be parsed
	ErrDecode = errors.New("glossary decode failed")
	// ErrDanglingEdge reports an edge whose endpoint id matches no node
	ErrDanglingEdge = errors.New("edge references unknown node")
	// ErrDuplicateNode reports two nodes sharing an id
	ErrDuplicateNode = errors.New("duplicate node id")
	// ErrEmptyID reports a node without an id
	ErrEmptyID = errors.New("node has empty id")
	// ErrNotLoaded reports a query against a store that never loaded
	ErrNotLoaded = errors.New("graph not loaded")
)
