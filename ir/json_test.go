package ir

import (
	"testing"
)

func TestFromYAMLToJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "order preserved",
			in:   "z: 1\na: 2\nm:\n  q: null\n  b: true",
			out:  `{"z":1,"a":2,"m":{"q":null,"b":true}}`,
		},
		{
			name: "json input",
			in:   `{"cells":[{"cell_type":"code","source":"x = 1\n"}],"nbformat":4}`,
			out:  `{"cells":[{"cell_type":"code","source":"x = 1\n"}],"nbformat":4}`,
		},
		{
			name: "scalars",
			in:   `[1, -2, 1.5, true, "x", null]`,
			out:  `[1,-2,1.5,true,"x",null]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := FromYAML([]byte(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			got, err := ToJSON(n)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.out {
				t.Errorf("got %s, want %s", got, tt.out)
			}
		})
	}
}

func TestPath(t *testing.T) {
	doc, err := FromYAML([]byte(`{cells: [{source: "x"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	src := Get(doc, "cells").Values[0].Values[0]
	if got := src.Path(); got != "$.cells[0].source" {
		t.Errorf("path %q", got)
	}
}

func TestWithout(t *testing.T) {
	doc, err := FromYAML([]byte(`{a: 1, cells: [1], b: 2}`))
	if err != nil {
		t.Fatal(err)
	}
	rest, cells := Without(doc, "cells")
	if cells == nil || cells.Type != ArrayType {
		t.Fatalf("removed value %v", cells)
	}
	restJSON, _ := ToJSON(rest)
	if string(restJSON) != `{"a":1,"b":2}` {
		t.Errorf("rest %s", restJSON)
	}
	if Get(doc, "cells") == nil {
		t.Error("input was mutated")
	}
}
