package snakes

import (
	"reflect"
	"testing"

	"github.com/nbkit/nbdiff/ir"
)

func nodes(vals ...string) []*ir.Node {
	res := make([]*ir.Node, len(vals))
	for i, v := range vals {
		res[i] = ir.FromString(v)
	}
	return res
}

var (
	equalPred Predicate = func(a, b *ir.Node) bool {
		return a.String == b.String
	}
	firstCharPred Predicate = func(a, b *ir.Node) bool {
		return a.String != "" && b.String != "" && a.String[0] == b.String[0]
	}
)

func fullRect(a, b []*ir.Node) Rect {
	return Rect{I1: len(a), J1: len(b)}
}

// checkAlignment verifies the monotonicity invariant: snakes strictly
// increase in both coordinates and never overlap in either sequence.
func checkAlignment(t *testing.T, snks []Snake, rect Rect) {
	t.Helper()
	i0, j0 := rect.I0, rect.J0
	for _, s := range snks {
		if s.N <= 0 {
			t.Errorf("empty snake %v", s)
		}
		if s.I < i0 || s.J < j0 {
			t.Errorf("snake %v overlaps or crosses previous coverage (%d, %d)", s, i0, j0)
		}
		if s.I+s.N > rect.I1 || s.J+s.N > rect.J1 {
			t.Errorf("snake %v outside rectangle %v", s, rect)
		}
		i0, j0 = s.I+s.N, s.J+s.N
	}
}

func TestComputeSingleLevel(t *testing.T) {
	tests := []struct {
		name string
		a    []*ir.Node
		b    []*ir.Node
		want []Snake
	}{
		{
			name: "identical",
			a:    nodes("a", "b", "c"),
			b:    nodes("a", "b", "c"),
			want: []Snake{{I: 0, J: 0, N: 3}},
		},
		{
			name: "deletion",
			a:    nodes("a", "b", "c"),
			b:    nodes("a", "c"),
			want: []Snake{{I: 0, J: 0, N: 1}, {I: 2, J: 1, N: 1}},
		},
		{
			name: "insertion",
			a:    nodes("a", "c"),
			b:    nodes("a", "b", "c"),
			want: []Snake{{I: 0, J: 0, N: 1}, {I: 1, J: 2, N: 1}},
		},
		{
			name: "disjoint",
			a:    nodes("a", "b"),
			b:    nodes("x", "y"),
			want: nil,
		},
		{
			name: "prefers contiguous run",
			a:    nodes("a", "b", "a", "b"),
			b:    nodes("a", "b"),
			want: []Snake{{I: 0, J: 0, N: 2}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rect := fullRect(tt.a, tt.b)
			got := Compute(tt.a, tt.b, rect, []Predicate{equalPred}, 0)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			checkAlignment(t, got, rect)
		})
	}
}

// The strict level anchors exact matches; the loose level pairs the
// remaining gap.
func TestComputeMultilevel(t *testing.T) {
	a := nodes("apple", "banana", "cherry")
	b := nodes("avocado", "banana", "cherry")
	rect := fullRect(a, b)
	preds := []Predicate{firstCharPred, equalPred}

	got := Compute(a, b, rect, preds, 1)
	want := []Snake{{I: 0, J: 0, N: 1}, {I: 1, J: 1, N: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	checkAlignment(t, got, rect)

	// With only the strict predicate the gap stays uncovered.
	got = Compute(a, b, rect, []Predicate{equalPred}, 0)
	want = []Snake{{I: 1, J: 1, N: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// A looser predicate never overrides a stricter anchor: the strict level
// fixes a crossing-free chain first and the loose level only fills gaps.
func TestComputeStrictAnchorsFirst(t *testing.T) {
	a := nodes("ant", "bee")
	b := nodes("bat", "bee")
	preds := []Predicate{firstCharPred, equalPred}
	rect := fullRect(a, b)

	got := Compute(a, b, rect, preds, 1)
	// equalPred anchors bee/bee; in the leftover gap ant and bat start
	// with different letters, so the gap stays open.
	want := []Snake{{I: 1, J: 1, N: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestComputeEmptyAndNegativeLevel(t *testing.T) {
	a := nodes("a")
	b := nodes("a")
	if got := Compute(a, b, Rect{}, []Predicate{equalPred}, 0); got != nil {
		t.Errorf("empty rectangle: got %v", got)
	}
	if got := Compute(a, b, fullRect(a, b), []Predicate{equalPred}, -1); got != nil {
		t.Errorf("negative level: got %v", got)
	}
}

func TestComputeDeterministicTieBreak(t *testing.T) {
	a := nodes("x", "a")
	b := nodes("a", "x")
	rect := fullRect(a, b)
	first := Compute(a, b, rect, []Predicate{equalPred}, 0)
	checkAlignment(t, first, rect)
	if len(first) != 1 || first[0].N != 1 {
		t.Fatalf("expected a single length-1 snake, got %v", first)
	}
	for i := 0; i < 10; i++ {
		again := Compute(a, b, rect, []Predicate{equalPred}, 0)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("tie-break not deterministic: %v vs %v", first, again)
		}
	}
}
