package domain

import "testing"

func TestNewNode(t *testing.T) {
	n := NewNode("1", "API", "Application programming interface")

	if n.ID != "1" || n.Label != "API" {
		t.Errorf("unexpected node identity: %+v", n)
	}
	if n.Pinned() {
		t.Error("expected new node to be free")
	}
	if n.X != 0 || n.Y != 0 {
		t.Errorf("expected origin position, got (%f, %f)", n.X, n.Y)
	}
}

func TestNodePinning(t *testing.T) {
	n := NewNode("1", "A", "")

	n.Pin(10, 20)
	if !n.Pinned() {
		t.Fatal("expected node to be pinned")
	}
	if *n.FX != 10 || *n.FY != 20 {
		t.Errorf("expected pin at (10, 20), got (%f, %f)", *n.FX, *n.FY)
	}

	t.Run("pin values are independent copies", func(t *testing.T) {
		x, y := 1.0, 2.0
		n.Pin(x, y)
		x = 99
		if *n.FX != 1 {
			t.Errorf("expected FX 1, got %f", *n.FX)
		}
		_ = y
	})

	n.Unpin()
	if n.Pinned() {
		t.Error("expected node to be free after Unpin")
	}
	if n.FX != nil || n.FY != nil {
		t.Error("expected FX/FY to be nil after Unpin")
	}
}

func TestNodeMatchesSearch(t *testing.T) {
	n := NewNode("1", "Machine Learning", "")

	tests := []struct {
		term string
		want bool
	}{
		{"", false},
		{"machine", true},
		{"LEARN", true},
		{"ine le", true},
		{"deep", false},
	}

	for _, tt := range tests {
		if got := n.MatchesSearch(tt.term); got != tt.want {
			t.Errorf("MatchesSearch(%q) = %v, want %v", tt.term, got, tt.want)
		}
	}

	t.Run("cyrillic labels fold case", func(t *testing.T) {
		ru := NewNode("2", "Нейронная сеть", "")
		if !ru.MatchesSearch("нейрон") {
			t.Error("expected lowercase cyrillic term to match")
		}
		if !ru.MatchesSearch("СЕТЬ") {
			t.Error("expected uppercase cyrillic term to match")
		}
	})
}
