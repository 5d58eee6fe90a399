package domain

import "testing"

func TestEdgeOther(t *testing.T) {
	a := NewNode("a", "A", "")
	b := NewNode("b", "B", "")
	e := NewEdge(a, b)

	if got := e.Other("a"); got != b {
		t.Errorf("expected b from a, got %v", got)
	}
	if got := e.Other("b"); got != a {
		t.Errorf("expected a from b, got %v", got)
	}
	if got := e.Other("c"); got != nil {
		t.Errorf("expected nil for unrelated id, got %v", got)
	}

	t.Run("self loop returns itself", func(t *testing.T) {
		loop := NewEdge(a, a)
		if got := loop.Other("a"); got != a {
			t.Errorf("expected a, got %v", got)
		}
	})
}
