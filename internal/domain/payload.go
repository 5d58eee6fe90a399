package domain

// GraphPayload is the document served by a glossary graph endpoint
type GraphPayload struct {
	Nodes []NodeRecord `json:"nodes" yaml:"nodes"`
	Edges []EdgeRecord `json:"edges" yaml:"edges"`
}

// NodeRecord is an unresolved node as it appears on the wire
type NodeRecord struct {
	ID         ID     `json:"id" yaml:"id"`
	Label      string `json:"label" yaml:"label"`
	Definition string `json:"definition" yaml:"definition"`
}

// EdgeRecord is an unresolved edge referencing nodes by id
type EdgeRecord struct {
	Source ID `json:"source" yaml:"source"`
	Target ID `json:"target" yaml:"target"`
}

// NewGraphPayload creates an empty payload
func NewGraphPayload() *GraphPayload {
	return &GraphPayload{
		Nodes: make([]NodeRecord, 0),
		Edges: make([]EdgeRecord, 0),
	}
}

// AddNode appends a node record
func (p *GraphPayload) AddNode(rec NodeRecord) {
	p.Nodes = append(p.Nodes, rec)
}

// AddEdge appends an edge record
func (p *GraphPayload) AddEdge(rec EdgeRecord) {
	p.Edges = append(p.Edges, rec)
}

// Term is a glossary entry with its outgoing links
type Term struct {
	ID         ID     `json:"id" yaml:"id"`
	Term       string `json:"term" yaml:"term"`
	Definition string `json:"definition" yaml:"definition"`
	Links      []ID   `json:"links" yaml:"links"`
}

// PayloadFromTerms builds the graph payload for a term list: one node per
// term and one edge per link, pointing from the term to the linked id.
func PayloadFromTerms(terms []Term) *GraphPayload {
	payload := &GraphPayload{
		Nodes: make([]NodeRecord, 0, len(terms)),
		Edges: make([]EdgeRecord, 0),
	}

	for _, t := range terms {
		payload.AddNode(NodeRecord{
			ID:         t.ID,
			Label:      t.Term,
			Definition: t.Definition,
		})
	}

	for _, t := range terms {
		for _, target := range t.Links {
			payload.AddEdge(EdgeRecord{Source: t.ID, Target: target})
		}
	}

	return payload
}

// Terms converts a payload back into terms. Edges become links on their
// source term; edges whose source is not a node are ignored.
func (p *GraphPayload) Terms() []Term {
	terms := make([]Term, 0, len(p.Nodes))
	index := make(map[ID]int, len(p.Nodes))
	for _, n := range p.Nodes {
		index[n.ID] = len(terms)
		terms = append(terms, Term{
			ID:         n.ID,
			Term:       n.Label,
			Definition: n.Definition,
			Links:      []ID{},
		})
	}
	for _, e := range p.Edges {
		if i, ok := index[e.Source]; ok {
			terms[i].Links = append(terms[i].Links, e.Target)
		}
	}
	return terms
}
