// Package libdiff provides the edit-script representation and the generic
// structural differs for document trees.
//
// # Usage
//
//	// Compute a mapping or sequence diff (df recurses)
//	d, err := libdiff.DiffObject(from, to, df, nil)
//
//	// Apply and invert
//	patched, err := libdiff.Patch(from, d)
//	rev, err := libdiff.Reverse(from, d)
//
// Edit scripts serialize as JSON arrays of [op, key, ...args] tuples with
// op tags ADD, REMOVE, REPLACE, PATCH, SEQINSERT and SEQDELETE.  They can
// be stored, transmitted, applied and lowered to RFC 6902 JSON Patch.
//
// # Related Packages
//
//   - github.com/nbkit/nbdiff/ir - document tree representation
//   - github.com/nbkit/nbdiff/snakes - multilevel sequence alignment
package libdiff
