package domain

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestIDUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ID
		wantErr bool
	}{
		{name: "string id", input: `"abc"`, want: "abc"},
		{name: "integer id", input: `1`, want: "1"},
		{name: "large integer id", input: `9007199254740993`, want: "9007199254740993"},
		{name: "float with zero fraction", input: `2.0`, want: "2"},
		{name: "fractional id", input: `1.5`, want: "1.5"},
		{name: "numeric string kept verbatim", input: `"01"`, want: "01"},
		{name: "null rejected", input: `null`, wantErr: true},
		{name: "bool rejected", input: `true`, wantErr: true},
		{name: "object rejected", input: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			err := json.Unmarshal([]byte(tt.input), &id)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s, got id %q", tt.input, id)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.want {
				t.Errorf("expected %q, got %q", tt.want, id)
			}
		})
	}
}

func TestIDUnmarshalYAML(t *testing.T) {
	var rec struct {
		A ID `yaml:"a"`
		B ID `yaml:"b"`
		C ID `yaml:"c"`
	}
	if err := yaml.Unmarshal([]byte("a: 7\nb: term-x\nc: '12'\n"), &rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.A != "7" || rec.B != "term-x" || rec.C != "12" {
		t.Errorf("unexpected ids: %+v", rec)
	}

	t.Run("null id rejected", func(t *testing.T) {
		var bad struct {
			A ID `yaml:"a"`
		}
		if err := yaml.Unmarshal([]byte("a: ~\n"), &bad); err == nil {
			t.Error("expected error for null id")
		}
	})
}
