package controller

import "glossgraph/internal/render"

// DragPhase is the stage of a drag gesture
type DragPhase string

const (
	DragStart DragPhase = "start"
	DragMove  DragPhase = "move"
	DragEnd   DragPhase = "end"
)

// DragEvent is one step of a drag gesture on a node
type DragEvent struct {
	NodeID string    `json:"node_id"`
	Phase  DragPhase `json:"phase"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
}

// Detail is the content of the detail panel. Placeholder is set when a
// selected node has no connections; Connected is then empty.
type Detail struct {
	Name        string   `json:"name"`
	Definition  string   `json:"definition"`
	ID          string   `json:"id"`
	IDLabel     string   `json:"id_label"`
	Connected   []string `json:"connected"`
	Placeholder string   `json:"placeholder,omitempty"`
}

// GraphView is the surface the controller drives. Input arrives through the
// handler registrations; output goes through the Set/Show methods.
type GraphView interface {
	OnNodeClick(fn func(id string) error)
	OnSearchInput(fn func(value string))
	OnReset(fn func())
	OnDrag(fn func(ev DragEvent) error)

	SetNodeFills(fills []render.NodeFill)
	ShowDetail(detail Detail)
	SetSearchValue(value string)
}
