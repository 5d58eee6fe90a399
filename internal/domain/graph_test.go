package domain

import (
	"encoding/json"
	"testing"
)

func TestDeriveGraph(t *testing.T) {
	a := NewNode("1", "A", "d1")
	b := NewNode("2", "B", "d2")
	a.X, a.Y = 3, 4

	graph := DeriveGraph([]*Node{a, b}, []*Edge{NewEdge(a, b)})

	if len(graph.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(graph.Nodes))
	}
	if graph.Nodes[0].Position.X != 3 || graph.Nodes[0].Position.Y != 4 {
		t.Errorf("expected position (3, 4), got %+v", graph.Nodes[0].Position)
	}
	if len(graph.Edges) != 1 || graph.Edges[0].Source != "1" || graph.Edges[0].Target != "2" {
		t.Errorf("unexpected edges: %+v", graph.Edges)
	}

	t.Run("payload keeps counts", func(t *testing.T) {
		payload := graph.Payload()
		if len(payload.Nodes) != 2 || len(payload.Edges) != 1 {
			t.Errorf("expected 2 nodes and 1 edge, got %d and %d", len(payload.Nodes), len(payload.Edges))
		}
		if payload.Nodes[1].Definition != "d2" {
			t.Errorf("expected definition d2, got %q", payload.Nodes[1].Definition)
		}
	})
}

func TestPayloadFromTerms(t *testing.T) {
	terms := []Term{
		{ID: "1", Term: "API", Definition: "interface", Links: []ID{"2", "3"}},
		{ID: "2", Term: "REST", Definition: "style", Links: []ID{"1"}},
		{ID: "3", Term: "HTTP", Definition: "protocol"},
	}

	payload := PayloadFromTerms(terms)

	if len(payload.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(payload.Nodes))
	}
	if payload.Nodes[0].Label != "API" {
		t.Errorf("expected label from term name, got %q", payload.Nodes[0].Label)
	}
	if len(payload.Edges) != 3 {
		t.Fatalf("expected one edge per link (3), got %d", len(payload.Edges))
	}
	if payload.Edges[2].Source != "2" || payload.Edges[2].Target != "1" {
		t.Errorf("expected edge 2->1, got %+v", payload.Edges[2])
	}
}

func TestPayloadTerms(t *testing.T) {
	payload := &GraphPayload{
		Nodes: []NodeRecord{{ID: "1", Label: "A", Definition: "d1"}, {ID: "2", Label: "B"}},
		Edges: []EdgeRecord{{Source: "1", Target: "2"}, {Source: "9", Target: "1"}, {Source: "1", Target: "1"}},
	}

	terms := payload.Terms()

	if len(terms) != 2 {
		t.Fatalf("expected 2 terms, got %d", len(terms))
	}
	if terms[0].Term != "A" || terms[0].Definition != "d1" {
		t.Errorf("unexpected first term %+v", terms[0])
	}
	if len(terms[0].Links) != 2 || terms[0].Links[0] != "2" || terms[0].Links[1] != "1" {
		t.Errorf("expected links [2 1], got %v", terms[0].Links)
	}
	if len(terms[1].Links) != 0 {
		t.Errorf("expected no links on second term, got %v", terms[1].Links)
	}

	back := PayloadFromTerms(terms)
	if len(back.Edges) != 2 {
		t.Errorf("expected edges from unknown sources to be dropped, got %d", len(back.Edges))
	}
}

func TestGraphPayloadDecodesNumericIDs(t *testing.T) {
	doc := `{"nodes":[{"id":1,"label":"A","definition":"d1"},{"id":2,"label":"B","definition":"d2"}],"edges":[{"source":1,"target":2}]}`

	var payload GraphPayload
	if err := json.Unmarshal([]byte(doc), &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Nodes[0].ID != "1" || payload.Edges[0].Target != "2" {
		t.Errorf("expected string ids, got %+v", payload)
	}
}
