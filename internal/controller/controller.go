// Package controller implements the selection and search state machine of
// the graph viewer.
package controller

import (
	"errors"
	"fmt"
	"strings"

	"glossgraph/internal/domain"
	"glossgraph/internal/logger"
	"glossgraph/internal/render"

	"go.uber.org/zap"
)

var (
	// ErrUnknownNode is returned for events naming a node not in the graph
	ErrUnknownNode = errors.New("unknown node")
	// ErrInvalidDrag is returned for a drag event with an unknown phase
	ErrInvalidDrag = errors.New("invalid drag phase")
)

// Graph is the read side of the loaded graph
type Graph interface {
	Nodes() []*domain.Node
	Node(id string) (*domain.Node, bool)
	Neighbors(id string) []*domain.Node
}

// Dragger moves pinned nodes; the layout simulation implements it
type Dragger interface {
	DragStart(n *domain.Node) error
	DragMove(n *domain.Node, x, y float64) error
	DragEnd(n *domain.Node) error
}

// State is a snapshot of the controller
type State struct {
	Selected string `json:"selected,omitempty"`
	Search   string `json:"search"`
	Detail   Detail `json:"detail"`
}

// Controller owns the selection and the search term. It is not safe for
// concurrent use; the session loop serializes calls.
type Controller struct {
	graph   Graph
	dragger Dragger
	palette render.Palette
	locale  Locale
	logger  *zap.Logger

	view     GraphView
	selected *domain.Node
	search   string
	detail   Detail
}

// New creates a controller in the initial state: nothing selected, empty search
func New(graph Graph, dragger Dragger, palette render.Palette, locale Locale, log *zap.Logger) *Controller {
	c := &Controller{
		graph:   graph,
		dragger: dragger,
		palette: palette,
		locale:  locale,
		logger:  logger.OrNop(log),
	}
	c.detail = c.placeholderDetail()
	return c
}

// Bind registers the controller's handlers on view and paints the current
// state onto it.
func (c *Controller) Bind(view GraphView) {
	c.view = view
	view.OnNodeClick(c.Click)
	view.OnSearchInput(c.Search)
	view.OnReset(c.Reset)
	view.OnDrag(c.Drag)

	view.SetSearchValue(c.search)
	c.recolor()
	view.ShowDetail(c.detail)
}

// Click selects the node with id, recolors and fills the detail panel
func (c *Controller) Click(id string) error {
	n, ok := c.graph.Node(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}

	c.selected = n
	c.detail = c.detailFor(n)
	c.logger.Debug("Node selected", zap.String("id", n.ID), zap.Int("connected", len(c.detail.Connected)))

	c.recolor()
	if c.view != nil {
		c.view.ShowDetail(c.detail)
	}
	return nil
}

// Search updates the search term and recolors; the selection is kept
func (c *Controller) Search(value string) {
	c.search = value
	c.recolor()
}

// Reset clears the selection, the search box and the detail panel
func (c *Controller) Reset() {
	c.selected = nil
	c.search = ""
	c.detail = c.placeholderDetail()
	c.logger.Debug("View reset")

	if c.view != nil {
		c.view.SetSearchValue("")
	}
	c.recolor()
	if c.view != nil {
		c.view.ShowDetail(c.detail)
	}
}

// Drag forwards a drag gesture to the layout. Selection is not affected.
func (c *Controller) Drag(ev DragEvent) error {
	n, ok := c.graph.Node(ev.NodeID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, ev.NodeID)
	}
	if c.dragger == nil {
		return nil
	}

	switch ev.Phase {
	case DragStart:
		return c.dragger.DragStart(n)
	case DragMove:
		return c.dragger.DragMove(n, ev.X, ev.Y)
	case DragEnd:
		return c.dragger.DragEnd(n)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDrag, ev.Phase)
	}
}

// Reload points the controller at a freshly loaded graph layout. The
// selection survives if its id still exists; the search term always does.
func (c *Controller) Reload(dragger Dragger) {
	c.dragger = dragger

	if c.selected != nil {
		if n, ok := c.graph.Node(c.selected.ID); ok {
			c.selected = n
			c.detail = c.detailFor(n)
		} else {
			c.selected = nil
			c.detail = c.placeholderDetail()
		}
	}

	c.recolor()
	if c.view != nil {
		c.view.ShowDetail(c.detail)
	}
}

// Selected returns the selected node or nil
func (c *Controller) Selected() *domain.Node {
	return c.selected
}

// SearchTerm returns the lowercase search filter
func (c *Controller) SearchTerm() string {
	return strings.ToLower(c.search)
}

// Fills computes the current fill of every node
func (c *Controller) Fills() []render.NodeFill {
	return c.palette.Fills(c.graph.Nodes(), c.selected, c.SearchTerm())
}

// State snapshots the controller
func (c *Controller) State() State {
	s := State{Search: c.search, Detail: c.detail}
	if c.selected != nil {
		s.Selected = c.selected.ID
	}
	return s
}

func (c *Controller) recolor() {
	if c.view == nil {
		return
	}
	c.view.SetNodeFills(c.Fills())
}

func (c *Controller) detailFor(n *domain.Node) Detail {
	d := Detail{
		Name:       n.Label,
		Definition: n.Definition,
		ID:         n.ID,
		IDLabel:    c.locale.FormatID(n.ID),
		Connected:  []string{},
	}
	for _, other := range c.graph.Neighbors(n.ID) {
		d.Connected = append(d.Connected, other.Label)
	}
	if len(d.Connected) == 0 {
		d.Placeholder = c.locale.NoRelated
	}
	return d
}

func (c *Controller) placeholderDetail() Detail {
	return Detail{
		Name:       c.locale.SelectTerm,
		Definition: c.locale.ClickHint,
		Connected:  []string{},
	}
}
