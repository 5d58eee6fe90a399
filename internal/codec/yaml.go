package codec

import (
	"errors"
	"fmt"
	"io"

	"glossgraph/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec reads and writes glossaries as YAML. Seed files use the
// "terms:" layout; exports use nodes and edges.
type YAMLCodec struct{}

// NewYAMLCodec returns the YAML codec
func NewYAMLCodec() *YAMLCodec { return &YAMLCodec{} }

// Format is "yaml"
func (*YAMLCodec) Format() string { return "yaml" }

// Parse decodes the first YAML document in r. An empty stream is an empty
// glossary; a document without nodes or terms is ErrNoGraph.
func (*YAMLCodec) Parse(r io.Reader) (*domain.GraphPayload, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewGraphPayload(), nil
		}
		return nil, fmt.Errorf("decode glossary YAML: %w", err)
	}
	payload, err := doc.payload()
	if err != nil {
		return nil, fmt.Errorf("decode glossary YAML: %w", err)
	}
	return payload, nil
}

type yamlNode struct {
	ID         string `yaml:"id"`
	Label      string `yaml:"label"`
	Definition string `yaml:"definition,omitempty"`
}

type yamlEdge struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// Export writes payload with ids as plain strings
func (*YAMLCodec) Export(payload *domain.GraphPayload, w io.Writer) error {
	var out struct {
		Nodes []yamlNode `yaml:"nodes"`
		Edges []yamlEdge `yaml:"edges"`
	}
	out.Nodes = make([]yamlNode, len(payload.Nodes))
	for i, n := range payload.Nodes {
		out.Nodes[i] = yamlNode{ID: n.ID.String(), Label: n.Label, Definition: n.Definition}
	}
	out.Edges = make([]yamlEdge, len(payload.Edges))
	for i, e := range payload.Edges {
		out.Edges[i] = yamlEdge{Source: e.Source.String(), Target: e.Target.String()}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&out); err != nil {
		return fmt.Errorf("encode glossary YAML: %w", err)
	}
	return enc.Close()
}
