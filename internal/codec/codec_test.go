package codec

import (
	"bytes"
	"strings"
	"testing"

	"glossgraph/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForPath(t *testing.T) {
	tests := []struct {
		path    string
		format  string
		wantErr bool
	}{
		{"glossary.json", "json", false},
		{"glossary.YAML", "yaml", false},
		{"dir/glossary.yml", "yaml", false},
		{"glossary.csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			c, err := ForPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.format, c.Format())
		})
	}
}

func TestJSONCodecParse(t *testing.T) {
	c := NewJSONCodec()

	t.Run("graph payload with numeric ids", func(t *testing.T) {
		doc := `{"nodes":[{"id":1,"label":"A","definition":"d1"},{"id":"2","label":"B","definition":"d2"}],"edges":[{"source":1,"target":"2"}]}`
		payload, err := c.Parse(strings.NewReader(doc))
		require.NoError(t, err)
		require.Len(t, payload.Nodes, 2)
		require.Len(t, payload.Edges, 1)
		assert.Equal(t, domain.ID("1"), payload.Nodes[0].ID)
		assert.Equal(t, domain.ID("1"), payload.Edges[0].Source)
	})

	t.Run("bare term list", func(t *testing.T) {
		doc := `[{"id":1,"term":"API","definition":"x","links":[2]},{"id":2,"term":"REST","definition":"y","links":[]}]`
		payload, err := c.Parse(strings.NewReader(doc))
		require.NoError(t, err)
		assert.Len(t, payload.Nodes, 2)
		assert.Len(t, payload.Edges, 1)
		assert.Equal(t, "API", payload.Nodes[0].Label)
	})

	t.Run("wrapped term list", func(t *testing.T) {
		doc := `{"terms":[{"id":"a","term":"A","definition":"","links":["a"]}]}`
		payload, err := c.Parse(strings.NewReader(doc))
		require.NoError(t, err)
		assert.Len(t, payload.Nodes, 1)
		assert.Len(t, payload.Edges, 1)
	})

	t.Run("empty collections are a valid graph", func(t *testing.T) {
		payload, err := c.Parse(strings.NewReader(`{"nodes":[]}`))
		require.NoError(t, err)
		assert.NotNil(t, payload.Nodes)
		assert.NotNil(t, payload.Edges)
	})

	for _, doc := range []string{`{}`, `null`, `{"error":"database down"}`, `{"nodes":null}`} {
		t.Run("no graph in "+doc, func(t *testing.T) {
			_, err := c.Parse(strings.NewReader(doc))
			assert.ErrorIs(t, err, ErrNoGraph)
		})
	}

	t.Run("malformed document", func(t *testing.T) {
		_, err := c.Parse(strings.NewReader(`{"nodes":`))
		assert.Error(t, err)
	})
}

func TestYAMLCodecParse(t *testing.T) {
	c := NewYAMLCodec()

	t.Run("terms layout", func(t *testing.T) {
		doc := `
terms:
  - id: 1
    term: Token
    definition: smallest unit
    links: [2]
  - id: 2
    term: Tokenizer
    definition: splits text
`
		payload, err := c.Parse(strings.NewReader(doc))
		require.NoError(t, err)
		assert.Len(t, payload.Nodes, 2)
		require.Len(t, payload.Edges, 1)
		assert.Equal(t, domain.ID("2"), payload.Edges[0].Target)
	})

	t.Run("graph layout", func(t *testing.T) {
		doc := `
nodes:
  - {id: a, label: A}
  - {id: b, label: B}
edges:
  - {source: a, target: b}
`
		payload, err := c.Parse(strings.NewReader(doc))
		require.NoError(t, err)
		assert.Len(t, payload.Nodes, 2)
		assert.Len(t, payload.Edges, 1)
	})

	t.Run("empty document", func(t *testing.T) {
		payload, err := c.Parse(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, payload.Nodes)
	})

	t.Run("document without nodes or terms", func(t *testing.T) {
		_, err := c.Parse(strings.NewReader("error: database down\n"))
		assert.ErrorIs(t, err, ErrNoGraph)
	})
}

func TestExportRoundTripKeepsCounts(t *testing.T) {
	payload := domain.NewGraphPayload()
	payload.AddNode(domain.NodeRecord{ID: "1", Label: "A", Definition: "d1"})
	payload.AddNode(domain.NodeRecord{ID: "2", Label: "B", Definition: "d2"})
	payload.AddEdge(domain.EdgeRecord{Source: "1", Target: "2"})

	for _, c := range []Codec{NewJSONCodec(), NewYAMLCodec()} {
		t.Run(c.Format(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, c.Export(payload, &buf))

			back, err := c.Parse(&buf)
			require.NoError(t, err)
			assert.Len(t, back.Nodes, 2)
			assert.Len(t, back.Edges, 1)
			assert.Equal(t, domain.ID("1"), back.Edges[0].Source)
		})
	}
}
