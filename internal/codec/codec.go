package codec

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"glossgraph/internal/domain"
)

// Importer parses a glossary document into a graph payload
type Importer interface {
	Parse(r io.Reader) (*domain.GraphPayload, error)
	Format() string
}

// Exporter writes a graph payload in some format
type Exporter interface {
	Export(payload *domain.GraphPayload, w io.Writer) error
	Format() string
}

// Codec both parses and exports one format
type Codec interface {
	Importer
	Exporter
}

// ForPath picks a codec from a file extension
func ForPath(path string) (Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return NewJSONCodec(), nil
	case ".yaml", ".yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported glossary file extension %q", filepath.Ext(path))
	}
}

// ErrNoGraph reports a document that holds neither nodes nor terms, such
// as an error object served in place of the glossary
var ErrNoGraph = errors.New("document has no nodes or terms")

// document is the on-disk glossary shape shared by the text codecs. A file
// holds either a graph (nodes and edges) or a term list; nodes win when both
// are present. The pointers tell an absent collection from an empty one.
type document struct {
	Nodes *[]domain.NodeRecord `json:"nodes" yaml:"nodes"`
	Edges []domain.EdgeRecord  `json:"edges" yaml:"edges"`
	Terms *[]domain.Term       `json:"terms" yaml:"terms"`
}

func (d *document) payload() (*domain.GraphPayload, error) {
	switch {
	case d.Nodes != nil:
		p := domain.NewGraphPayload()
		for _, n := range *d.Nodes {
			p.AddNode(n)
		}
		for _, e := range d.Edges {
			p.AddEdge(e)
		}
		return p, nil
	case d.Terms != nil:
		return domain.PayloadFromTerms(*d.Terms), nil
	default:
		return nil, ErrNoGraph
	}
}
