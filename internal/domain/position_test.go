package domain

import "testing"

func TestPositionOf(t *testing.T) {
	n := NewNode("node1", "N", "")
	n.X, n.Y = 100.5, -200.5

	pos := PositionOf(n)
	if pos.NodeID != "node1" {
		t.Errorf("expected NodeID 'node1', got %s", pos.NodeID)
	}
	if pos.X != 100.5 || pos.Y != -200.5 {
		t.Errorf("expected (100.5, -200.5), got (%f, %f)", pos.X, pos.Y)
	}
	if pos.Pinned {
		t.Error("expected Pinned to be false for a free node")
	}

	n.Pin(1, 1)
	if !PositionOf(n).Pinned {
		t.Error("expected Pinned to be true for a pinned node")
	}
}

func TestPositions(t *testing.T) {
	nodes := []*Node{NewNode("a", "A", ""), NewNode("b", "B", "")}
	nodes[1].X = 5

	got := Positions(nodes)
	if len(got) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(got))
	}
	if got[0].NodeID != "a" || got[1].NodeID != "b" || got[1].X != 5 {
		t.Errorf("unexpected positions: %+v", got)
	}
}
