// Package snakes computes multilevel alignments between two ordered
// sequences of document nodes.
//
// A snake (i, j, n) records that n consecutive elements starting at index
// i of the first sequence correspond, in order, to n consecutive elements
// starting at index j of the second.  Compute matches with the strictest
// of a list of equivalence predicates first, fixing high-confidence
// anchors, then recurses into the uncovered rectangles between them with
// progressively weaker predicates.
package snakes

import (
	"github.com/nbkit/nbdiff/debug"
	"github.com/nbkit/nbdiff/ir"
)

// Predicate reports whether two elements are equivalent.  Predicates must
// be total over well-formed elements; input validation happens before
// alignment.
type Predicate func(a, b *ir.Node) bool

// Snake is a run of n consecutive matched index pairs starting at (i, j).
type Snake struct {
	I, J, N int
}

// Rect is the half-open index range [I0,I1) x [J0,J1) still to be aligned.
type Rect struct {
	I0, J0, I1, J1 int
}

func (r Rect) Empty() bool {
	return r.I0 >= r.I1 || r.J0 >= r.J1
}

// Compute returns the snakes aligning a[rect.I0:rect.I1] with
// b[rect.J0:rect.J1] using preds[level] first and weaker predicates in the
// gaps it leaves.  The result is strictly increasing in both coordinates
// and non-overlapping in both sequences, and depends only on the inputs.
func Compute(a, b []*ir.Node, rect Rect, preds []Predicate, level int) []Snake {
	if level < 0 || rect.Empty() {
		return nil
	}
	snks := maxChain(a, b, rect, preds[level])
	if debug.Snakes() {
		debug.Logf("snakes: level %d rect [%d,%d)x[%d,%d) -> %v\n",
			level, rect.I0, rect.I1, rect.J0, rect.J1, snks)
	}
	var res []Snake
	i0, j0 := rect.I0, rect.J0
	for _, s := range append(snks, Snake{I: rect.I1, J: rect.J1}) {
		sub := Rect{I0: i0, J0: j0, I1: s.I, J1: s.J}
		res = append(res, Compute(a, b, sub, preds, level-1)...)
		if s.N > 0 {
			res = append(res, s)
		}
		i0, j0 = s.I+s.N, s.J+s.N
	}
	return res
}
