package domain

// NodePosition is the position and pinning state of a node for one frame
type NodePosition struct {
	NodeID string  `json:"node_id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Pinned bool    `json:"pinned"`
}

// PositionOf captures the current position of a node
func PositionOf(n *Node) NodePosition {
	return NodePosition{
		NodeID: n.ID,
		X:      n.X,
		Y:      n.Y,
		Pinned: n.Pinned(),
	}
}

// Positions captures the positions of all nodes in order
func Positions(nodes []*Node) []NodePosition {
	out := make([]NodePosition, len(nodes))
	for i, n := range nodes {
		out[i] = PositionOf(n)
	}
	return out
}
