package layout

import (
	"math"

	"glossgraph/internal/domain"
)

// Force applies one tick of a force to node velocities (or positions)
type Force interface {
	Apply(alpha float64)
}

// linkForce pulls connected nodes toward a rest distance
type linkForce struct {
	edges     []*domain.Edge
	distance  float64
	strengths []float64
	bias      []float64
	random    *lcg
}

func newLinkForce(nodes []*domain.Node, edges []*domain.Edge, distance float64, random *lcg) *linkForce {
	f := &linkForce{distance: distance, random: random}

	count := make([]int, len(nodes))
	for _, e := range edges {
		if e.Source == e.Target {
			continue
		}
		f.edges = append(f.edges, e)
		count[e.Source.Index]++
		count[e.Target.Index]++
	}

	f.strengths = make([]float64, len(f.edges))
	f.bias = make([]float64, len(f.edges))
	for i, e := range f.edges {
		s, t := count[e.Source.Index], count[e.Target.Index]
		f.strengths[i] = 1 / float64(min(s, t))
		f.bias[i] = float64(s) / float64(s+t)
	}
	return f
}

func (f *linkForce) Apply(alpha float64) {
	for i, e := range f.edges {
		source, target := e.Source, e.Target

		x := target.X + target.VX - source.X - source.VX
		if x == 0 {
			x = f.random.jiggle()
		}
		y := target.Y + target.VY - source.Y - source.VY
		if y == 0 {
			y = f.random.jiggle()
		}

		l := math.Sqrt(x*x + y*y)
		l = (l - f.distance) / l * alpha * f.strengths[i]
		x *= l
		y *= l

		b := f.bias[i]
		target.VX -= x * b
		target.VY -= y * b
		b = 1 - b
		source.VX += x * b
		source.VY += y * b
	}
}

// manyBodyForce repels every pair of nodes. Direct summation; glossary graphs
// are small enough that an approximation tree does not pay off.
type manyBodyForce struct {
	nodes        []*domain.Node
	strength     float64
	distanceMin2 float64
	random       *lcg
}

func newManyBodyForce(nodes []*domain.Node, strength, distanceMin float64, random *lcg) *manyBodyForce {
	return &manyBodyForce{
		nodes:        nodes,
		strength:     strength,
		distanceMin2: distanceMin * distanceMin,
		random:       random,
	}
}

func (f *manyBodyForce) Apply(alpha float64) {
	for _, node := range f.nodes {
		for _, other := range f.nodes {
			if other == node {
				continue
			}

			x := other.X - node.X
			y := other.Y - node.Y
			l := x*x + y*y

			if x == 0 {
				x = f.random.jiggle()
				l += x * x
			}
			if y == 0 {
				y = f.random.jiggle()
				l += y * y
			}
			if l < f.distanceMin2 {
				l = math.Sqrt(f.distanceMin2 * l)
			}

			w := f.strength * alpha / l
			node.VX += x * w
			node.VY += y * w
		}
	}
}

// centerForce translates all nodes so their mean position sits on the center
type centerForce struct {
	nodes  []*domain.Node
	center Point
}

func (f *centerForce) Apply(float64) {
	n := len(f.nodes)
	if n == 0 {
		return
	}

	var sx, sy float64
	for _, node := range f.nodes {
		sx += node.X
		sy += node.Y
	}
	sx = sx/float64(n) - f.center.X
	sy = sy/float64(n) - f.center.Y

	for _, node := range f.nodes {
		node.X -= sx
		node.Y -= sy
	}
}

// collideForce keeps node circles from overlapping
type collideForce struct {
	nodes    []*domain.Node
	radius   float64
	strength float64
	random   *lcg
}

func (f *collideForce) Apply(float64) {
	ri := f.radius
	ri2 := ri * ri
	r := ri + ri

	for i, node := range f.nodes {
		xi := node.X + node.VX
		yi := node.Y + node.VY

		for _, other := range f.nodes[i+1:] {
			x := xi - other.X - other.VX
			y := yi - other.Y - other.VY
			l := x*x + y*y
			if l >= r*r {
				continue
			}

			if x == 0 {
				x = f.random.jiggle()
				l += x * x
			}
			if y == 0 {
				y = f.random.jiggle()
				l += y * y
			}

			l = math.Sqrt(l)
			l = (r - l) / l * f.strength
			x *= l
			y *= l

			share := ri2 / (ri2 + ri2)
			node.VX += x * share
			node.VY += y * share
			share = 1 - share
			other.VX -= x * share
			other.VY -= y * share
		}
	}
}
