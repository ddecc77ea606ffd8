// Package nbdiff computes structural diffs between versions of
// semi-structured documents: nested mappings, sequences and scalar
// leaves, with specialized multilevel alignment for notebook cell
// sequences.
package nbdiff

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/nbkit/nbdiff/debug"
	"github.com/nbkit/nbdiff/ir"
	"github.com/nbkit/nbdiff/libdiff"
)

// Diff produces a succinct comparison of from and to.  If there are no
// differences, Diff returns an empty script.
//
// A resulting diff may be applied with [Patch] and inverted with
// [Reverse].
//
// The returned script is an ordered list of entries:
//
//   - for ObjectType, a field only in to yields ADD, a field only in from
//     yields REMOVE, a changed leaf field yields REPLACE and a changed
//     nested structure yields PATCH with the nested script
//
//   - for ArrayType, unmatched index runs yield SEQDELETE/SEQINSERT keyed
//     at the source index and matched-but-changed composite slots yield
//     PATCH
//
// Equal fields and slots are absent from the result.  Both roots must be
// containers of the same type unless they are deeply equal.
func Diff(from, to *ir.Node, opts ...DiffOpt) (libdiff.Diff, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	res, err := cfg.doDiff(from, to)
	if err != nil {
		return nil, err
	}
	if debug.Diff() {
		debug.Logf("diff: %d top-level entries\n", len(res))
	}
	return res, nil
}

type DiffConfig struct {
	ignores []*vm.Program
}

type DiffOpt func(*DiffConfig) error

// IgnorePaths excludes mapping keys from diffing.  Each argument is an
// expression over the variables path (the JSONPath-style location of the
// key, e.g. "$.metadata.language_info") and key (the bare field name),
// evaluated to a bool.  A key matching any expression is treated as equal
// on both sides.
func IgnorePaths(exprs ...string) DiffOpt {
	return func(c *DiffConfig) error {
		for _, src := range exprs {
			prog, err := expr.Compile(src,
				expr.Env(map[string]any{"path": "", "key": ""}),
				expr.AsBool())
			if err != nil {
				return fmt.Errorf("bad ignore expression %q: %w", src, err)
			}
			c.ignores = append(c.ignores, prog)
		}
		return nil
	}
}

func newConfig(opts []DiffOpt) (*DiffConfig, error) {
	cfg := &DiffConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (c *DiffConfig) skip(parent *ir.Node, key string) bool {
	if len(c.ignores) == 0 {
		return false
	}
	env := map[string]any{
		"path": parent.Path() + "." + key,
		"key":  key,
	}
	for _, prog := range c.ignores {
		out, err := expr.Run(prog, env)
		if err != nil {
			continue
		}
		if b, _ := out.(bool); b {
			return true
		}
	}
	return false
}

func (c *DiffConfig) doDiff(from, to *ir.Node) (libdiff.Diff, error) {
	switch {
	case from.Type != to.Type, from.Type.IsLeaf():
		if ir.Equal(from, to) {
			return nil, nil
		}
		return nil, fmt.Errorf(
			"cannot diff %s against %s at %s", from.Type, to.Type, from.Path())
	case from.Type == ir.ObjectType:
		return libdiff.DiffObject(from, to, c.doDiff, c.skip)
	case from.Type == ir.ArrayType:
		return libdiff.DiffArrayByIndex(from, to, c.doDiff)
	}
	panic("type")
}
