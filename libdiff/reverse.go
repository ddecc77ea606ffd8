package libdiff

import (
	"fmt"

	"github.com/nbkit/nbdiff/ir"
)

// Reverse inverts an edit script: given from and a diff of from against
// some target, it returns the diff of the target against from.  The source
// document supplies the payloads of reversed removals, and sequence entry
// keys are translated into target coordinates.
func Reverse(from *ir.Node, d Diff) (Diff, error) {
	if len(d) == 0 {
		return nil, nil
	}
	switch from.Type {
	case ir.ObjectType:
		return reverseObject(from, d)
	case ir.ArrayType:
		return reverseArray(from, d)
	default:
		return nil, fmt.Errorf("cannot reverse diff of %s at %s", from.Type, from.Path())
	}
}

func reverseObject(from *ir.Node, d Diff) (Diff, error) {
	res := make(Diff, 0, len(d))
	for i := range d {
		e := &d[i]
		key := e.KeyString()
		fv := ir.Get(from, key)
		switch e.Op {
		case OpAdd:
			res = append(res, Remove(key))
		case OpRemove:
			if fv == nil {
				return nil, fmt.Errorf("remove of missing key %q at %s", key, from.Path())
			}
			res = append(res, Add(key, fv.Clone()))
		case OpReplace:
			if fv == nil {
				return nil, fmt.Errorf("replace of missing key %q at %s", key, from.Path())
			}
			res = append(res, Replace(key, fv.Clone()))
		case OpPatch:
			if fv == nil {
				return nil, fmt.Errorf("patch of missing key %q at %s", key, from.Path())
			}
			sub, err := Reverse(fv, e.Diff)
			if err != nil {
				return nil, err
			}
			res = append(res, PatchKey(key, sub))
		default:
			return nil, fmt.Errorf("%s entry on object at %s", e.Op, from.Path())
		}
	}
	return res, nil
}

func reverseArray(from *ir.Node, d Diff) (Diff, error) {
	res := make(Diff, 0, len(d))
	shift := 0
	k := 0
	for k < len(d) {
		e := &d[k]
		i := e.Index()
		j := i + shift
		// A delete immediately followed by an insert at the same source
		// index is a replaced span; its reverse keeps the same order with
		// the roles swapped.
		if e.Op == OpSeqDelete && k+1 < len(d) &&
			d[k+1].Op == OpSeqInsert && d[k+1].Index() == i {
			ins := &d[k+1]
			res = append(res, SeqDelete(j, len(ins.Values)))
			res = append(res, SeqInsert(j, cloneRange(from, i, e.Count)))
			shift += len(ins.Values) - e.Count
			k += 2
			continue
		}
		switch e.Op {
		case OpSeqDelete:
			res = append(res, SeqInsert(j, cloneRange(from, i, e.Count)))
			shift -= e.Count
		case OpSeqInsert:
			res = append(res, SeqDelete(j, len(e.Values)))
			shift += len(e.Values)
		case OpPatch:
			if i < 0 || i >= len(from.Values) {
				return nil, fmt.Errorf("patch at %d out of range at %s", i, from.Path())
			}
			sub, err := Reverse(from.Values[i], e.Diff)
			if err != nil {
				return nil, err
			}
			res = append(res, PatchIndex(j, sub))
		default:
			return nil, fmt.Errorf("%s entry on array at %s", e.Op, from.Path())
		}
		k++
	}
	return res, nil
}

func cloneRange(from *ir.Node, i, n int) []*ir.Node {
	return cloneAll(from.Values[i : i+n])
}
