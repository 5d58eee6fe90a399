package domain

// Graph is the serializable view of the loaded graph
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// GraphNode represents a node with its current position
type GraphNode struct {
	ID         string       `json:"id"`
	Label      string       `json:"label"`
	Definition string       `json:"definition"`
	Position   NodePosition `json:"position"`
}

// GraphEdge represents an edge by endpoint ids
type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// DeriveGraph snapshots resolved nodes and edges
func DeriveGraph(nodes []*Node, edges []*Edge) *Graph {
	graph := &Graph{
		Nodes: make([]GraphNode, 0, len(nodes)),
		Edges: make([]GraphEdge, 0, len(edges)),
	}

	for _, n := range nodes {
		graph.Nodes = append(graph.Nodes, GraphNode{
			ID:         n.ID,
			Label:      n.Label,
			Definition: n.Definition,
			Position:   PositionOf(n),
		})
	}

	for _, e := range edges {
		graph.Edges = append(graph.Edges, GraphEdge{
			Source: e.Source.ID,
			Target: e.Target.ID,
		})
	}

	return graph
}

// Payload converts the snapshot back to the wire payload
func (g *Graph) Payload() *GraphPayload {
	payload := &GraphPayload{
		Nodes: make([]NodeRecord, 0, len(g.Nodes)),
		Edges: make([]EdgeRecord, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		payload.AddNode(NodeRecord{ID: ID(n.ID), Label: n.Label, Definition: n.Definition})
	}
	for _, e := range g.Edges {
		payload.AddEdge(EdgeRecord{Source: ID(e.Source), Target: ID(e.Target)})
	}
	return payload
}
