package libdiff

import (
	"strconv"
	"strings"

	"github.com/nbkit/nbdiff/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffArrayByIndex diffs two array nodes positionally:
//
//  1. each element is summarized to a short string: scalars by value,
//     composites (and multiline strings) by type only
//  2. summaries are interned to runes and aligned with a Myers diff
//  3. unmatched runs become SEQDELETE/SEQINSERT entries keyed at the
//     source index where the gap opens
//  4. matched slots recurse through df and become PATCH entries when the
//     nested diff is non-empty
//
// Summarizing composites by type makes the alignment pair them up
// positionally so structural changes surface as nested patches rather
// than delete/insert churn.
func DiffArrayByIndex(from, to *ir.Node, df DiffFunc) (Diff, error) {
	m := map[string]rune{}
	fromRunes := mapValues(m, from)
	toRunes := mapValues(m, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)

	var res Diff
	fi, ti := 0, 0
	gap := -1 // source index where the current delete run began
	for i := range diffs {
		diff := &diffs[i]
		n := len([]rune(diff.Text))
		switch diff.Type {
		case diffpatch.DiffDelete:
			if gap < 0 {
				gap = fi
			}
			res = append(res, SeqDelete(fi, n))
			fi += n
		case diffpatch.DiffInsert:
			at := fi
			if gap >= 0 {
				at = gap
			}
			res = append(res, SeqInsert(at, cloneAll(to.Values[ti:ti+n])))
			ti += n
			gap = -1
		case diffpatch.DiffEqual:
			gap = -1
			for k := 0; k < n; k++ {
				fv, tv := from.Values[fi], to.Values[ti]
				if fv.Type.IsLeaf() {
					// Multiline strings share a summary, so a matched
					// leaf slot can still differ.
					if !ir.Equal(fv, tv) {
						res = append(res, SeqDelete(fi, 1))
						res = append(res, SeqInsert(fi, cloneAll(to.Values[ti:ti+1])))
					}
					fi++
					ti++
					continue
				}
				sub, err := df(fv, tv)
				if err != nil {
					return nil, err
				}
				if len(sub) != 0 {
					res = append(res, PatchIndex(fi, sub))
				}
				fi++
				ti++
			}
		}
	}
	return res, nil
}

func mapValues(m map[string]rune, node *ir.Node) []rune {
	rs := make([]rune, len(node.Values))
	for i, v := range node.Values {
		sum := summaryStr(v)
		r, ok := m[sum]
		if !ok {
			r = rune(len(m))
			m[sum] = r
		}
		rs[i] = r
	}
	return rs
}

func summaryStr(node *ir.Node) string {
	switch node.Type {
	case ir.ObjectType, ir.ArrayType, ir.NullType:
		return node.Type.String()
	case ir.BoolType:
		return node.Type.String() + "-" + strconv.FormatBool(node.Bool)
	case ir.StringType:
		if strings.Contains(node.String, "\n") {
			return node.Type.String() + "/m"
		}
		return node.Type.String() + "-" + node.String
	case ir.NumberType:
		if node.Int64 != nil {
			return node.Type.String() + "-i-" + strconv.FormatInt(*node.Int64, 10)
		}
		if node.Float64 != nil {
			return node.Type.String() + "-f-" + strconv.FormatFloat(*node.Float64, 'f', -1, 64)
		}
		return node.Type.String() + "-s-" + node.Number
	default:
		panic("type")
	}
}
