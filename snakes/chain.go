package snakes

import "github.com/nbkit/nbdiff/ir"

type score struct {
	length int // matched pairs in the chain
	adj    int // consecutive matched adjacencies
}

func better(x, y score) bool {
	if x.length != y.length {
		return x.length > y.length
	}
	return x.adj > y.adj
}

const (
	mvSkipA = iota
	mvSkipB
	mvMatch
)

// maxChain finds a maximum-length chain of index pairs (i, j) inside rect,
// strictly increasing in both coordinates, with every pair satisfying
// pred, merged into snakes.
//
// The chain is selected by an explicit dynamic program over the rectangle.
// Ties on total matched length are broken by maximizing the number of
// consecutive matched adjacencies, which favors a few long runs over many
// interleaved length-1 matches; remaining ties between skip moves consume
// the side with more elements left, keeping the trace near the rectangle
// diagonal.  The result is a pure function of the inputs.
func maxChain(a, b []*ir.Node, rect Rect, pred Predicate) []Snake {
	m := rect.I1 - rect.I0
	n := rect.J1 - rect.J0
	w := n + 1
	dp := make([]score, (m+1)*w)
	take := make([]bool, (m+1)*w)
	move := make([]uint8, (m+1)*w)

	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			at := i*w + j
			sA := dp[at+w]
			sB := dp[at+1]
			var best score
			var mv uint8
			switch {
			case better(sB, sA):
				best, mv = sB, mvSkipB
			case better(sA, sB):
				best, mv = sA, mvSkipA
			case m-i >= n-j:
				best, mv = sA, mvSkipA
			default:
				best, mv = sB, mvSkipB
			}
			if pred(a[rect.I0+i], b[rect.J0+j]) {
				diag := at + w + 1
				cand := score{length: dp[diag].length + 1, adj: dp[diag].adj}
				if take[diag] {
					cand.adj++
				}
				if !better(best, cand) {
					best, mv = cand, mvMatch
					take[at] = true
				}
			}
			dp[at] = best
			move[at] = mv
		}
	}

	var res []Snake
	i, j := 0, 0
	for i < m && j < n {
		switch move[i*w+j] {
		case mvMatch:
			gi, gj := rect.I0+i, rect.J0+j
			if k := len(res) - 1; k >= 0 && res[k].I+res[k].N == gi && res[k].J+res[k].N == gj {
				res[k].N++
			} else {
				res = append(res, Snake{I: gi, J: gj, N: 1})
			}
			i++
			j++
		case mvSkipA:
			i++
		default:
			j++
		}
	}
	return res
}
