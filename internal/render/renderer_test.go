package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"glossgraph/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSurface struct {
	positions []PositionsFrame
	colors    []ColorsFrame
}

func (s *recordingSurface) DrawPositions(f PositionsFrame) { s.positions = append(s.positions, f) }
func (s *recordingSurface) DrawColors(f ColorsFrame) { s.colors = append(s.colors, f) }

func graph() ([]*domain.Node, []*domain.Edge) {
	a := domain.NewNode("1", "Alpha", "d1")
	b := domain.NewNode("2", "Beta", "d2")
	c := domain.NewNode("3", "Gamma <&>", "d3")
	a.X, a.Y = 10, 20
	b.X, b.Y = 30, 40
	c.X, c.Y = 50, 60
	return []*domain.Node{a, b, c}, []*domain.Edge{domain.NewEdge(a, b)}
}

func TestPaletteFill(t *testing.T) {
	p := DefaultPalette()
	nodes, _ := graph()
	alpha, beta := nodes[0], nodes[1]

	tests := []struct {
		name     string
		node     *domain.Node
		selected *domain.Node
		search   string
		want     string
	}{
		{"nothing", alpha, nil, "", p.Default},
		{"selected", alpha, alpha, "", p.Highlight},
		{"other selected", beta, alpha, "", p.Default},
		{"search match", beta, nil, "ET", p.Highlight},
		{"search miss", alpha, nil, "zzz", p.Default},
		{"selected without match", alpha, alpha, "zzz", p.Highlight},
		{"search and selection", beta, alpha, "beta", p.Highlight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Fill(tt.node, tt.selected, tt.search))
		})
	}
}

func TestSyncPositions(t *testing.T) {
	nodes, edges := graph()
	r := New(nodes, edges, 960, 600, DefaultPalette())
	surface := &recordingSurface{}
	r.Attach(surface)

	nodes[0].X, nodes[0].Y = 100, 200
	r.SyncPositions()

	scene := r.Scene()
	assert.Equal(t, Line{Source: "1", Target: "2", X1: 100, Y1: 200, X2: 30, Y2: 40}, scene.Lines[0])
	assert.Equal(t, 100.0, scene.Circles[0].CX)
	assert.Equal(t, 200.0, scene.Labels[0].Y)

	require.Len(t, surface.positions, 1)
	assert.Equal(t, 1, surface.positions[0].Tick)
	assert.Empty(t, surface.colors, "position updates must not repaint colors")
	assert.Equal(t, DefaultPalette().Default, scene.Circles[0].Fill)
}

func TestRecolor(t *testing.T) {
	nodes, edges := graph()
	p := DefaultPalette()
	r := New(nodes, edges, 960, 600, p)
	surface := &recordingSurface{}
	r.Attach(surface)

	r.Recolor(p.Fills(nodes, nodes[1], ""))

	scene := r.Scene()
	assert.Equal(t, p.Default, scene.Circles[0].Fill)
	assert.Equal(t, p.Highlight, scene.Circles[1].Fill)
	assert.Equal(t, 10.0, scene.Circles[0].CX, "recolor must not move nodes")

	require.Len(t, surface.colors, 1)
	assert.Len(t, surface.colors[0].Fills, 3)
	assert.Empty(t, surface.positions)
}

func TestWriteSVG(t *testing.T) {
	nodes, edges := graph()
	r := New(nodes, edges, 960, 600, DefaultPalette())

	var buf bytes.Buffer
	require.NoError(t, r.WriteSVG(&buf))
	out := buf.String()

	assert.Equal(t, 3, strings.Count(out, "<circle"))
	assert.Equal(t, 1, strings.Count(out, "<line"))
	assert.Equal(t, 3, strings.Count(out, "<text"))
	assert.Contains(t, out, `width="960"`)
	assert.Contains(t, out, `r="20"`)
	assert.Contains(t, out, `stroke="#999"`)
	assert.Contains(t, out, `fill="#f2cc8f"`)
	assert.Contains(t, out, `text-anchor="middle"`)
	assert.Contains(t, out, "Gamma &lt;&amp;&gt;")
	assert.NotContains(t, out, "Gamma <&>")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteSVGReportsWriteErrors(t *testing.T) {
	nodes, edges := graph()
	r := New(nodes, edges, 960, 600, DefaultPalette())
	assert.EqualError(t, r.WriteSVG(failingWriter{}), "disk full")
}
