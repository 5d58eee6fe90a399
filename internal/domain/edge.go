package domain

// Edge connects two resolved nodes. Direction is kept for export but
// neighbor lookups treat edges as undirected.
type Edge struct {
	Source *Node
	Target *Node
}

// NewEdge creates an edge between two nodes
func NewEdge(source, target *Node) *Edge {
	return &Edge{Source: source, Target: target}
}

// Other returns the endpoint opposite to id, or nil if the edge does not
// touch id. A self-loop returns the node itself.
func (e *Edge) Other(id string) *Node {
	switch id {
	case e.Source.ID:
		return e.Target
	case e.Target.ID:
		return e.Source
	}
	return nil
}
