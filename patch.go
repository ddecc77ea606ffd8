package nbdiff

import (
	"github.com/nbkit/nbdiff/debug"
	"github.com/nbkit/nbdiff/ir"
	"github.com/nbkit/nbdiff/libdiff"
)

// Patch applies an edit script produced by [Diff] or [DiffNotebooks] to
// doc, returning the patched copy.  doc is not mutated.
func Patch(doc *ir.Node, d libdiff.Diff) (*ir.Node, error) {
	if debug.Patch() {
		debug.Logf("patch: %d top-level entries at %s\n", len(d), doc.Path())
	}
	return libdiff.Patch(doc, d)
}

// Reverse inverts an edit script against its source document, so that
// Patch(to, Reverse(from, d)) reconstructs from.
func Reverse(from *ir.Node, d libdiff.Diff) (libdiff.Diff, error) {
	return libdiff.Reverse(from, d)
}
