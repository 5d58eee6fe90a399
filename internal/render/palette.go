package render

import "glossgraph/internal/domain"

// Palette holds the colors and sizes of the scene
type Palette struct {
	Highlight   string
	Default     string
	EdgeStroke  string
	EdgeOpacity float64
	EdgeWidth   int
	LabelFill   string
	LabelSize   int
	NodeRadius  int
}

// DefaultPalette returns the standard glossary graph look
func DefaultPalette() Palette {
	return Palette{
		Highlight:   "#fabb54ff",
		Default:     "#f2cc8f",
		EdgeStroke:  "#999",
		EdgeOpacity: 0.6,
		EdgeWidth:   2,
		LabelFill:   "#2d3436",
		LabelSize:   10,
		NodeRadius:  20,
	}
}

// Fill applies the highlight rule: the selected node and any node whose label
// contains search are highlighted, everything else gets the default fill.
func (p Palette) Fill(n, selected *domain.Node, search string) string {
	if selected != nil && selected.ID == n.ID {
		return p.Highlight
	}
	if n.MatchesSearch(search) {
		return p.Highlight
	}
	return p.Default
}

// NodeFill is the fill of one node
type NodeFill struct {
	NodeID string `json:"node_id"`
	Fill   string `json:"fill"`
}

// Fills computes the fill of every node in order
func (p Palette) Fills(nodes []*domain.Node, selected *domain.Node, search string) []NodeFill {
	out := make([]NodeFill, len(nodes))
	for i, n := range nodes {
		out[i] = NodeFill{NodeID: n.ID, Fill: p.Fill(n, selected, search)}
	}
	return out
}
