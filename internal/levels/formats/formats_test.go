package formats

import (
	"encoding/json"
	"strings"
	"testing"
)

const canal = `
id: canal
board:
  - "#####"
  - "#...#"
  - "#####"
start: {x: 1, y: 1}
goal: {x: 3, y: 1}
`

func TestParseYAMLDefaults(t *testing.T) {
	l, err := ParseYAML([]byte(canal))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if l.Name != "canal" {
		t.Errorf("Name = %q, expected the id", l.Name)
	}
	if l.Order != DefaultOrder {
		t.Errorf("Order = %d, expected %d", l.Order, DefaultOrder)
	}
	if l.HasSolution {
		t.Error("no solution was given")
	}
	if l.Board.Width() != 5 || l.Board.Height() != 3 {
		t.Errorf("board is %dx%d", l.Board.Width(), l.Board.Height())
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"missing id", "board: ['...']", "missing id"},
		{"bad yaml", "id: [", "yaml unmarshal"},
		{"ragged board", "id: x\nboard: ['...', '..']", "board"},
		{"bad seed", canal + "solution: {seed: ['##', '#'], rules: B3/S23}", "solution seed"},
		{"bad rules", canal + "solution: {seed: ['##', '##'], rules: B9/S2}", "solution rules"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tc.doc))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestSchema(t *testing.T) {
	data, err := json.Marshal(Schema())
	if err != nil {
		t.Fatalf("marshal schema: %v", err)
	}

	var doc struct {
		Title      string                     `json:"title"`
		Properties map[string]json.RawMessage `json:"properties"`
		Required   []string                   `json:"required"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal schema: %v", err)
	}

	if doc.Title != "Chicago Loop level" {
		t.Errorf("title = %q", doc.Title)
	}
	for _, key := range []string{"id", "name", "board", "start", "goal", "solution"} {
		if _, ok := doc.Properties[key]; !ok {
			t.Errorf("schema has no %q property", key)
		}
	}

	required := strings.Join(doc.Required, ",")
	for _, key := range []string{"id", "board", "start", "goal"} {
		if !strings.Contains(required, key) {
			t.Errorf("%q should be required, required = %v", key, doc.Required)
		}
	}
	if strings.Contains(required, "solution") {
		t.Error("solution should be optional")
	}
}
