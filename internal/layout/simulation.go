// Package layout computes node positions with a force-directed simulation.
//
// The simulation follows d3-force semantics: alpha cools geometrically toward
// alphaTarget, each tick applies link, many-body, center and collide forces to
// node velocities, and pinned nodes (fx/fy set) are held in place. A
// Simulation is not safe for concurrent use; callers serialize access.
package layout

import (
	"errors"
	"math"

	"glossgraph/internal/domain"
)

// ErrNotInSimulation is returned when dragging a node the simulation does not own
var ErrNotInSimulation = errors.New("node is not part of the simulation")

// TickFunc receives the nodes after every tick
type TickFunc func(nodes []*domain.Node)

// Simulation is a force-directed layout over a fixed node and edge set
type Simulation struct {
	opts   Options
	nodes  []*domain.Node
	edges  []*domain.Edge
	owned  map[*domain.Node]struct{}
	forces []Force

	alpha       float64
	alphaTarget float64
	running     bool
	activeDrags int

	subscribers []TickFunc
}

// NewSimulation places the nodes and prepares the forces. Node indexes are
// reassigned to match their position in nodes.
func NewSimulation(nodes []*domain.Node, edges []*domain.Edge, opts Options) *Simulation {
	opts = opts.withDefaults()
	random := newLCG()

	s := &Simulation{
		opts:    opts,
		nodes:   nodes,
		edges:   edges,
		owned:   make(map[*domain.Node]struct{}, len(nodes)),
		alpha:   1,
		running: true,
	}

	for i, n := range nodes {
		n.Index = i
		s.owned[n] = struct{}{}
	}
	s.place()

	s.forces = []Force{
		newLinkForce(nodes, edges, opts.LinkDistance, random),
		newManyBodyForce(nodes, opts.ChargeStrength, opts.ChargeMin, random),
		&centerForce{nodes: nodes, center: opts.Center()},
		&collideForce{nodes: nodes, radius: opts.CollideRadius, strength: 1, random: random},
	}

	return s
}

// place puts every node on a phyllotaxis spiral around the center, unless a
// seed position is known for it.
func (s *Simulation) place() {
	center := s.opts.Center()
	for i, n := range s.nodes {
		n.VX, n.VY = 0, 0
		if p, ok := s.opts.Seed[n.ID]; ok {
			n.X, n.Y = p.X, p.Y
		} else {
			radius := initialRadius * math.Sqrt(0.5+float64(i))
			angle := float64(i) * initialAngle
			n.X = center.X + radius*math.Cos(angle)
			n.Y = center.Y + radius*math.Sin(angle)
		}
		if n.FX != nil {
			n.X = *n.FX
		}
		if n.FY != nil {
			n.Y = *n.FY
		}
	}
}

// OnTick registers fn to run after every tick
func (s *Simulation) OnTick(fn TickFunc) {
	s.subscribers = append(s.subscribers, fn)
}

// Options returns the effective options
func (s *Simulation) Options() Options {
	return s.opts
}

// Alpha returns the current alpha
func (s *Simulation) Alpha() float64 {
	return s.alpha
}

// AlphaTarget returns the value alpha decays toward
func (s *Simulation) AlphaTarget() float64 {
	return s.alphaTarget
}

// Active reports whether the simulation is still ticking
func (s *Simulation) Active() bool {
	return s.running
}

// Step runs one tick, notifies subscribers and stops the simulation once
// alpha falls below alphaMin.
func (s *Simulation) Step() {
	s.tick()
	for _, fn := range s.subscribers {
		fn(s.nodes)
	}
	if s.alpha < s.opts.AlphaMin {
		s.running = false
	}
}

func (s *Simulation) tick() {
	s.alpha += (s.alphaTarget - s.alpha) * s.opts.AlphaDecay

	for _, f := range s.forces {
		f.Apply(s.alpha)
	}

	keep := 1 - s.opts.VelocityDecay
	for _, n := range s.nodes {
		if n.FX == nil {
			n.VX *= keep
			n.X += n.VX
		} else {
			n.X = *n.FX
			n.VX = 0
		}
		if n.FY == nil {
			n.VY *= keep
			n.Y += n.VY
		} else {
			n.Y = *n.FY
			n.VY = 0
		}
	}
}

// Settle steps until the simulation stops or limit ticks have run, returning
// the number of ticks taken.
func (s *Simulation) Settle(limit int) int {
	n := 0
	for s.running && n < limit {
		s.Step()
		n++
	}
	return n
}

// DragStart pins n at its current position and reheats the simulation for
// the first concurrent drag.
func (s *Simulation) DragStart(n *domain.Node) error {
	if _, ok := s.owned[n]; !ok {
		return ErrNotInSimulation
	}
	if s.activeDrags == 0 {
		s.alphaTarget = s.opts.DragAlpha
		s.running = true
	}
	s.activeDrags++
	n.Pin(n.X, n.Y)
	return nil
}

// DragMove moves the pinned position of n
func (s *Simulation) DragMove(n *domain.Node, x, y float64) error {
	if _, ok := s.owned[n]; !ok {
		return ErrNotInSimulation
	}
	n.Pin(x, y)
	return nil
}

// DragEnd releases n and lets the simulation cool once no drag remains
func (s *Simulation) DragEnd(n *domain.Node) error {
	if _, ok := s.owned[n]; !ok {
		return ErrNotInSimulation
	}
	if s.activeDrags > 0 {
		s.activeDrags--
	}
	if s.activeDrags == 0 {
		s.alphaTarget = 0
	}
	n.Unpin()
	return nil
}

// Positions captures the current node positions, keyed by id
func (s *Simulation) Positions() map[string]Point {
	out := make(map[string]Point, len(s.nodes))
	for _, n := range s.nodes {
		out[n.ID] = Point{X: n.X, Y: n.Y}
	}
	return out
}
