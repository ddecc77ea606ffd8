package libdiff

import (
	"fmt"

	"github.com/nbkit/nbdiff/ir"
)

// Patch applies an edit script to a document node, returning the patched
// copy.  The input document is not mutated.  Sequence entries are
// interpreted delete-then-insert-then-patch-in-place against source
// indices.
func Patch(doc *ir.Node, d Diff) (*ir.Node, error) {
	if len(d) == 0 {
		return doc.Clone(), nil
	}
	switch doc.Type {
	case ir.ObjectType:
		return patchObject(doc, d)
	case ir.ArrayType:
		return patchArray(doc, d)
	default:
		return nil, fmt.Errorf("cannot patch %s at %s", doc.Type, doc.Path())
	}
}

func patchObject(doc *ir.Node, d Diff) (*ir.Node, error) {
	byKey := make(map[string]*Entry, len(d))
	for i := range d {
		e := &d[i]
		if e.Key.Type != ir.StringType {
			return nil, fmt.Errorf("%s entry with %s key at %s", e.Op, e.Key.Type, doc.Path())
		}
		if _, ok := byKey[e.KeyString()]; ok {
			return nil, fmt.Errorf("duplicate entry for key %q at %s", e.KeyString(), doc.Path())
		}
		byKey[e.KeyString()] = e
	}
	handled := make(map[string]bool, len(d))
	kvs := make([]ir.KeyVal, 0, len(doc.Fields))
	for i := range doc.Fields {
		key := doc.Fields[i].String
		e, ok := byKey[key]
		if !ok {
			kvs = append(kvs, ir.KeyVal{
				Key: ir.FromString(key),
				Val: doc.Values[i].Clone(),
			})
			continue
		}
		handled[key] = true
		switch e.Op {
		case OpRemove:
		case OpReplace:
			kvs = append(kvs, ir.KeyVal{
				Key: ir.FromString(key),
				Val: e.Value.Clone(),
			})
		case OpPatch:
			sub, err := Patch(doc.Values[i], e.Diff)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, ir.KeyVal{Key: ir.FromString(key), Val: sub})
		case OpAdd:
			return nil, fmt.Errorf("cannot add existing key %q at %s", key, doc.Path())
		default:
			return nil, fmt.Errorf("%s entry on object at %s", e.Op, doc.Path())
		}
	}
	for i := range d {
		e := &d[i]
		key := e.KeyString()
		if handled[key] {
			continue
		}
		if e.Op != OpAdd {
			return nil, fmt.Errorf("cannot %s missing key %q at %s", e.Op, key, doc.Path())
		}
		kvs = append(kvs, ir.KeyVal{Key: ir.FromString(key), Val: e.Value.Clone()})
	}
	return ir.FromKeyVals(kvs), nil
}

func patchArray(doc *ir.Node, d Diff) (*ir.Node, error) {
	n := len(doc.Values)
	deleted := make([]bool, n)
	inserts := make(map[int][]*ir.Node, len(d))
	patches := make(map[int]Diff, len(d))
	for i := range d {
		e := &d[i]
		if e.Key.Type != ir.NumberType || e.Key.Int64 == nil {
			return nil, fmt.Errorf("%s entry with non-index key at %s", e.Op, doc.Path())
		}
		at := e.Index()
		switch e.Op {
		case OpSeqDelete:
			if at < 0 || at+e.Count > n {
				return nil, fmt.Errorf("delete [%d,%d) out of range at %s", at, at+e.Count, doc.Path())
			}
			for k := at; k < at+e.Count; k++ {
				if deleted[k] {
					return nil, fmt.Errorf("overlapping deletes at index %d at %s", k, doc.Path())
				}
				deleted[k] = true
			}
		case OpSeqInsert:
			if at < 0 || at > n {
				return nil, fmt.Errorf("insert at %d out of range at %s", at, doc.Path())
			}
			inserts[at] = append(inserts[at], e.Values...)
		case OpPatch:
			if at < 0 || at >= n {
				return nil, fmt.Errorf("patch at %d out of range at %s", at, doc.Path())
			}
			if _, ok := patches[at]; ok {
				return nil, fmt.Errorf("duplicate patch at index %d at %s", at, doc.Path())
			}
			patches[at] = e.Diff
		default:
			return nil, fmt.Errorf("%s entry on array at %s", e.Op, doc.Path())
		}
	}
	res := make([]*ir.Node, 0, n)
	for i := 0; i <= n; i++ {
		for _, v := range inserts[i] {
			res = append(res, v.Clone())
		}
		if i == n {
			break
		}
		if deleted[i] {
			if _, ok := patches[i]; ok {
				return nil, fmt.Errorf("patch of deleted index %d at %s", i, doc.Path())
			}
			continue
		}
		if sub, ok := patches[i]; ok {
			v, err := Patch(doc.Values[i], sub)
			if err != nil {
				return nil, err
			}
			res = append(res, v)
			continue
		}
		res = append(res, doc.Values[i].Clone())
	}
	return ir.FromSlice(res), nil
}
