package nbdiff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/nbkit/nbdiff/ir"
	"github.com/nbkit/nbdiff/libdiff"
	"github.com/nbkit/nbdiff/snakes"
)

// DiffNotebooks computes the diff of two notebooks.
//
// Similar to [Diff], but the "cells" sequence is aligned with the
// multilevel snake computation over the cell equivalence predicates
// instead of positionally, so lightly edited, moved-past or
// outputs-only-changed cells pair up as nested patches rather than
// delete/insert churn.  The cell diff, when non-empty, appears as a
// single PATCH entry keyed "cells" after the entries for the rest of the
// document.
func DiffNotebooks(from, to *ir.Node, opts ...DiffOpt) (libdiff.Diff, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if err := checkNotebook("from", from); err != nil {
		return nil, err
	}
	if err := checkNotebook("to", to); err != nil {
		return nil, err
	}
	fromRest, fromCells := ir.Without(from, "cells")
	toRest, toCells := ir.Without(to, "cells")

	res, err := cfg.doDiff(fromRest, toRest)
	if err != nil {
		return nil, err
	}
	cdiff, err := cfg.diffCells(fromCells.Values, toCells.Values)
	if err != nil {
		return nil, err
	}
	if len(cdiff) != 0 {
		res = append(res, libdiff.PatchKey("cells", cdiff))
	}
	return res, nil
}

// diffCells aligns two cell sequences with the multilevel snake
// computation and converts the snakes into an edit script: SEQDELETE and
// SEQINSERT for the gaps between snakes, a recursive PATCH for every
// matched pair that still differs.
func (c *DiffConfig) diffCells(a, b []*ir.Node) (libdiff.Diff, error) {
	if err := validateCells("from", a); err != nil {
		return nil, err
	}
	if err := validateCells("to", b); err != nil {
		return nil, err
	}

	// Predicates in order of low-to-high precedence; Compute applies the
	// strictest first and relaxes only inside the gaps it leaves.
	preds := []snakes.Predicate{
		compareCellApproximate,
		compareCellExact,
		compareCellExactWithOutputs,
	}
	rect := snakes.Rect{I1: len(a), J1: len(b)}
	snks := snakes.Compute(a, b, rect, preds, len(preds)-1)

	var res libdiff.Diff
	i0, j0 := 0, 0
	for _, s := range append(snks, snakes.Snake{I: len(a), J: len(b)}) {
		if s.I > i0 {
			res = append(res, libdiff.SeqDelete(i0, s.I-i0))
		}
		if s.J > j0 {
			ins := make([]*ir.Node, s.J-j0)
			for k := range ins {
				ins[k] = b[j0+k].Clone()
			}
			res = append(res, libdiff.SeqInsert(i0, ins))
		}
		for k := 0; k < s.N; k++ {
			cd, err := c.doDiff(a[s.I+k], b[s.J+k])
			if err != nil {
				return nil, err
			}
			if len(cd) != 0 {
				res = append(res, libdiff.PatchIndex(s.I+k, cd))
			}
		}
		i0, j0 = s.I+s.N, s.J+s.N
	}
	return res, nil
}

func checkNotebook(side string, doc *ir.Node) error {
	if doc.Type != ir.ObjectType {
		return fmt.Errorf(
			"%w: %s document is %s, not an object", ErrStructure, side, doc.Type)
	}
	cells := ir.Get(doc, "cells")
	if cells == nil {
		return fmt.Errorf("%w: %s document has no cells", ErrStructure, side)
	}
	if cells.Type != ir.ArrayType {
		return fmt.Errorf(
			"%w: %s document cells are %s, not an array", ErrStructure, side, cells.Type)
	}
	return nil
}

func validateCells(side string, cells []*ir.Node) error {
	for i, cell := range cells {
		if cell.Type != ir.ObjectType {
			return fmt.Errorf(
				"%w: %s cell %d is %s, not an object", ErrStructure, side, i, cell.Type)
		}
		ct := ir.Get(cell, "cell_type")
		if ct == nil || ct.Type != ir.StringType {
			return fmt.Errorf("%w: %s cell %d has no cell_type", ErrStructure, side, i)
		}
		src := ir.Get(cell, "source")
		if src == nil {
			continue
		}
		switch src.Type {
		case ir.StringType:
		case ir.ArrayType:
			for k, line := range src.Values {
				if line.Type != ir.StringType {
					return fmt.Errorf(
						"%w: %s cell %d source line %d is %s, not a string",
						ErrStructure, side, i, k, line.Type)
				}
			}
		default:
			return fmt.Errorf(
				"%w: %s cell %d has %s source", ErrStructure, side, i, src.Type)
		}
	}
	return nil
}

// similarityThreshold is the cutoff ratio for the approximate source
// predicate.
const similarityThreshold = 0.90

// compareCellApproximate matches cells of the same type whose normalized
// sources are identical or closely similar.  Two cheap ratio upper bounds
// cut off before the full matching-block computation.
func compareCellApproximate(x, y *ir.Node) bool {
	if cellType(x) != cellType(y) {
		return false
	}
	xs, xok := sourceText(x)
	ys, yok := sourceText(y)
	if !xok || !yok {
		return false
	}
	if xs == ys {
		return true
	}
	m := difflib.NewMatcher(splitChars(xs), splitChars(ys))
	if m.RealQuickRatio() < similarityThreshold {
		return false
	}
	if m.QuickRatio() < similarityThreshold {
		return false
	}
	return m.Ratio() > similarityThreshold
}

// compareCellExact matches cells of the same type with equal raw source
// values.  The raw value is compared, not the joined text: a cell storing
// its source as a list of lines does not match one storing the same text
// as a single string.
func compareCellExact(x, y *ir.Node) bool {
	if cellType(x) != cellType(y) {
		return false
	}
	xs := ir.Get(x, "source")
	ys := ir.Get(y, "source")
	if xs == nil || ys == nil {
		return false
	}
	return ir.Equal(xs, ys)
}

// compareCellExactWithOutputs additionally requires deeply equal outputs
// for code cells.
func compareCellExactWithOutputs(x, y *ir.Node) bool {
	if !compareCellExact(x, y) {
		return false
	}
	if cellType(x) != "code" {
		return true
	}
	xo := ir.Get(x, "outputs")
	yo := ir.Get(y, "outputs")
	if xo == nil || yo == nil {
		return false
	}
	return ir.Equal(xo, yo)
}

func cellType(cell *ir.Node) string {
	ct := ir.Get(cell, "cell_type")
	if ct == nil {
		return ""
	}
	return ct.String
}

// sourceText normalizes a cell source to a single string, joining a
// line-list form with newlines.
func sourceText(cell *ir.Node) (string, bool) {
	src := ir.Get(cell, "source")
	if src == nil {
		return "", false
	}
	switch src.Type {
	case ir.StringType:
		return src.String, true
	case ir.ArrayType:
		lines := make([]string, len(src.Values))
		for i, line := range src.Values {
			lines[i] = line.String
		}
		return strings.Join(lines, "\n"), true
	default:
		return "", false
	}
}

func splitChars(s string) []string {
	res := make([]string, 0, len(s))
	for _, r := range s {
		res = append(res, string(r))
	}
	return res
}
