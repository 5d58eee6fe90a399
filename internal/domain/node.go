package domain

import "strings"

// Node is a glossary term in the graph
type Node struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Definition string `json:"definition"`

	// Simulation state
	Index int      `json:"-"`
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	VX    float64  `json:"vx"`
	VY    float64  `json:"vy"`
	FX    *float64 `json:"fx"`
	FY    *float64 `json:"fy"`
}

// NewNode creates a node at the origin with no velocity
func NewNode(id, label, definition string) *Node {
	return &Node{
		ID:         id,
		Label:      label,
		Definition: definition,
	}
}

// Pin fixes the node at the given position until Unpin is called
func (n *Node) Pin(x, y float64) {
	n.FX = &x
	n.FY = &y
}

// Unpin releases a pinned node back to the simulation
func (n *Node) Unpin() {
	n.FX = nil
	n.FY = nil
}

// Pinned reports whether the node has a fixed position
func (n *Node) Pinned() bool {
	return n.FX != nil || n.FY != nil
}

// MatchesSearch reports whether the label contains term, ignoring case.
// An empty term matches nothing.
func (n *Node) MatchesSearch(term string) bool {
	if term == "" {
		return false
	}
	return strings.Contains(strings.ToLower(n.Label), strings.ToLower(term))
}
