// Package render keeps a drawable scene of lines, circles and labels in sync
// with the graph and writes it to surfaces or SVG.
package render

import (
	"fmt"
	"html"
	"io"
	"math"

	"glossgraph/internal/domain"

	svg "github.com/ajstarks/svgo"
)

// Renderer owns the scene for one loaded graph. Positions and colors are
// updated through separate paths: SyncPositions on every simulation tick and
// Recolor on selection or search changes.
type Renderer struct {
	palette  Palette
	nodes    []*domain.Node
	edges    []*domain.Edge
	scene    Scene
	ticks    int
	surfaces []Surface
}

// New builds a scene for the graph with every node in the default fill
func New(nodes []*domain.Node, edges []*domain.Edge, width, height int, palette Palette) *Renderer {
	r := &Renderer{
		palette: palette,
		nodes:   nodes,
		edges:   edges,
		scene: Scene{
			Width:   width,
			Height:  height,
			Lines:   make([]Line, len(edges)),
			Circles: make([]Circle, len(nodes)),
			Labels:  make([]Label, len(nodes)),
		},
	}

	for i, n := range nodes {
		r.scene.Circles[i] = Circle{NodeID: n.ID, R: palette.NodeRadius, Fill: palette.Default}
		r.scene.Labels[i] = Label{NodeID: n.ID, Text: n.Label}
	}
	for i, e := range edges {
		r.scene.Lines[i] = Line{Source: e.Source.ID, Target: e.Target.ID}
	}
	r.place()

	return r
}

// Attach adds a surface that receives every subsequent frame
func (r *Renderer) Attach(s Surface) {
	r.surfaces = append(r.surfaces, s)
}

func (r *Renderer) place() {
	for i, e := range r.edges {
		l := &r.scene.Lines[i]
		l.X1, l.Y1 = e.Source.X, e.Source.Y
		l.X2, l.Y2 = e.Target.X, e.Target.Y
	}
	for i, n := range r.nodes {
		r.scene.Circles[i].CX, r.scene.Circles[i].CY = n.X, n.Y
		r.scene.Labels[i].X, r.scene.Labels[i].Y = n.X, n.Y
	}
}

// SyncPositions moves lines, circles and labels to the current node
// positions and pushes a positions frame. Fills are untouched.
func (r *Renderer) SyncPositions() {
	r.place()
	r.ticks++

	if len(r.surfaces) == 0 {
		return
	}
	frame := r.PositionsFrame()
	for _, s := range r.surfaces {
		s.DrawPositions(frame)
	}
}

// PositionsFrame snapshots the current positions
func (r *Renderer) PositionsFrame() PositionsFrame {
	return PositionsFrame{
		Tick:    r.ticks,
		Lines:   append([]Line(nil), r.scene.Lines...),
		Circles: append([]Circle(nil), r.scene.Circles...),
		Labels:  append([]Label(nil), r.scene.Labels...),
	}
}

// Recolor applies fills by node id and pushes a colors frame. Nodes missing
// from fills keep their color. Positions are untouched.
func (r *Renderer) Recolor(fills []NodeFill) {
	byID := make(map[string]string, len(fills))
	for _, f := range fills {
		byID[f.NodeID] = f.Fill
	}
	for i := range r.scene.Circles {
		if fill, ok := byID[r.scene.Circles[i].NodeID]; ok {
			r.scene.Circles[i].Fill = fill
		}
	}

	frame := r.ColorsFrame()
	for _, s := range r.surfaces {
		s.DrawColors(frame)
	}
}

// ColorsFrame snapshots the current fills
func (r *Renderer) ColorsFrame() ColorsFrame {
	fills := make([]NodeFill, len(r.scene.Circles))
	for i, c := range r.scene.Circles {
		fills[i] = NodeFill{NodeID: c.NodeID, Fill: c.Fill}
	}
	return ColorsFrame{Fills: fills}
}

// Scene returns a copy of the current scene
func (r *Renderer) Scene() Scene {
	s := r.scene
	s.Lines = append([]Line(nil), r.scene.Lines...)
	s.Circles = append([]Circle(nil), r.scene.Circles...)
	s.Labels = append([]Label(nil), r.scene.Labels...)
	return s
}

// WriteSVG writes the scene as a standalone SVG document
func (r *Renderer) WriteSVG(w io.Writer) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	p := r.palette

	canvas.Start(r.scene.Width, r.scene.Height, `id="graph"`)

	canvas.Group(`class="links"`)
	for _, l := range r.scene.Lines {
		canvas.Line(px(l.X1), px(l.Y1), px(l.X2), px(l.Y2),
			`class="link"`,
			fmt.Sprintf(`stroke="%s"`, p.EdgeStroke),
			fmt.Sprintf(`stroke-opacity="%g"`, p.EdgeOpacity),
			fmt.Sprintf(`stroke-width="%d"`, p.EdgeWidth))
	}
	canvas.Gend()

	canvas.Group(`class="nodes"`)
	for _, c := range r.scene.Circles {
		canvas.Circle(px(c.CX), px(c.CY), c.R,
			`class="node"`,
			fmt.Sprintf(`data-id="%s"`, attr(c.NodeID)),
			fmt.Sprintf(`fill="%s"`, c.Fill))
	}
	canvas.Gend()

	canvas.Group(`class="labels"`)
	for _, l := range r.scene.Labels {
		canvas.Text(px(l.X), px(l.Y), l.Text,
			`class="label"`,
			`text-anchor="middle"`,
			`dy=".35em"`,
			fmt.Sprintf("fill:%s;font-size:%dpx;pointer-events:none", p.LabelFill, p.LabelSize))
	}
	canvas.Gend()

	canvas.End()
	return ew.err
}

func px(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}

func attr(v string) string {
	return html.EscapeString(v)
}

// errWriter remembers the first write error so SVG output can be checked once
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
