package libdiff

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/nbkit/nbdiff/ir"

	jsonpatch "github.com/evanphx/json-patch"
)

type jsonPatchOp struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
}

// ToJSONPatch lowers an edit script into an RFC 6902 operation list.
// RFC 6902 operations apply sequentially, so sequence indices are adjusted
// for the inserts and deletes emitted before them.
func ToJSONPatch(from *ir.Node, d Diff) ([]byte, error) {
	ops := []jsonPatchOp{}
	if err := appendJSONPatch(&ops, "", from, d); err != nil {
		return nil, err
	}
	return json.Marshal(ops)
}

func appendJSONPatch(ops *[]jsonPatchOp, ptr string, from *ir.Node, d Diff) error {
	switch from.Type {
	case ir.ObjectType:
		for i := range d {
			e := &d[i]
			p := ptr + "/" + escapePointer(e.KeyString())
			switch e.Op {
			case OpAdd, OpReplace:
				v, err := ir.ToJSON(e.Value)
				if err != nil {
					return err
				}
				op := "add"
				if e.Op == OpReplace {
					op = "replace"
				}
				*ops = append(*ops, jsonPatchOp{Op: op, Path: p, Value: v})
			case OpRemove:
				*ops = append(*ops, jsonPatchOp{Op: "remove", Path: p})
			case OpPatch:
				fv := ir.Get(from, e.KeyString())
				if fv == nil {
					return fmt.Errorf("patch of missing key %q at %s", e.KeyString(), from.Path())
				}
				if err := appendJSONPatch(ops, p, fv, e.Diff); err != nil {
					return err
				}
			default:
				return fmt.Errorf("%s entry on object at %s", e.Op, from.Path())
			}
		}
	case ir.ArrayType:
		shift := 0
		emitDeletes := func(at, n int) {
			p := ptr + "/" + strconv.Itoa(at)
			for k := 0; k < n; k++ {
				*ops = append(*ops, jsonPatchOp{Op: "remove", Path: p})
			}
		}
		emitInserts := func(at int, vals []*ir.Node) error {
			for k, val := range vals {
				v, err := ir.ToJSON(val)
				if err != nil {
					return err
				}
				*ops = append(*ops, jsonPatchOp{
					Op:    "add",
					Path:  ptr + "/" + strconv.Itoa(at+k),
					Value: v,
				})
			}
			return nil
		}
		k := 0
		for k < len(d) {
			e := &d[k]
			at := e.Index() + shift
			// A delete paired with an insert at the same gap: the insert
			// lands where the deleted span was.
			if e.Op == OpSeqDelete && k+1 < len(d) &&
				d[k+1].Op == OpSeqInsert && d[k+1].Index() == e.Index() {
				ins := &d[k+1]
				emitDeletes(at, e.Count)
				if err := emitInserts(at, ins.Values); err != nil {
					return err
				}
				shift += len(ins.Values) - e.Count
				k += 2
				continue
			}
			switch e.Op {
			case OpSeqDelete:
				emitDeletes(at, e.Count)
				shift -= e.Count
			case OpSeqInsert:
				if err := emitInserts(at, e.Values); err != nil {
					return err
				}
				shift += len(e.Values)
			case OpPatch:
				idx := e.Index()
				if idx < 0 || idx >= len(from.Values) {
					return fmt.Errorf("patch at %d out of range at %s", idx, from.Path())
				}
				p := ptr + "/" + strconv.Itoa(at)
				if err := appendJSONPatch(ops, p, from.Values[idx], e.Diff); err != nil {
					return err
				}
			default:
				return fmt.Errorf("%s entry on array at %s", e.Op, from.Path())
			}
			k++
		}
	default:
		return fmt.Errorf("cannot export diff of %s at %s", from.Type, from.Path())
	}
	return nil
}

// ApplyJSONPatch applies an RFC 6902 patch document to a node.
func ApplyJSONPatch(doc *ir.Node, patch []byte) (*ir.Node, error) {
	p, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, err
	}
	d, err := ir.ToJSON(doc)
	if err != nil {
		return nil, err
	}
	out, err := p.Apply(d)
	if err != nil {
		return nil, err
	}
	return ir.FromYAML(out)
}

func escapePointer(key string) string {
	key = strings.ReplaceAll(key, "~", "~0")
	return strings.ReplaceAll(key, "/", "~1")
}
