package libdiff

import (
	"encoding/json"
	"fmt"

	"github.com/nbkit/nbdiff/ir"
)

// DiffFunc recursively diffs two nodes, returning nil for equal inputs.
type DiffFunc func(from, to *ir.Node) (Diff, error)

// SkipFunc reports whether the field key of an object node should be
// excluded from diffing.
type SkipFunc func(parent *ir.Node, key string) bool

// Entry is a single diff operation.  Key is a string node for mapping
// operations and an int node for sequence operations; PATCH takes either.
type Entry struct {
	Op     Op
	Key    *ir.Node
	Value  *ir.Node   // ADD, REPLACE
	Values []*ir.Node // SEQINSERT
	Count  int        // SEQDELETE
	Diff   Diff       // PATCH
}

// Diff is an edit script: an ordered sequence of entries.  Entries
// referring to the same sequence are ordered by ascending source index.
type Diff []Entry

func Add(key string, val *ir.Node) Entry {
	return Entry{Op: OpAdd, Key: ir.FromString(key), Value: val}
}

func Remove(key string) Entry {
	return Entry{Op: OpRemove, Key: ir.FromString(key)}
}

func Replace(key string, val *ir.Node) Entry {
	return Entry{Op: OpReplace, Key: ir.FromString(key), Value: val}
}

func PatchKey(key string, d Diff) Entry {
	return Entry{Op: OpPatch, Key: ir.FromString(key), Diff: d}
}

func PatchIndex(i int, d Diff) Entry {
	return Entry{Op: OpPatch, Key: ir.FromInt(int64(i)), Diff: d}
}

func SeqInsert(i int, vals []*ir.Node) Entry {
	return Entry{Op: OpSeqInsert, Key: ir.FromInt(int64(i)), Values: vals}
}

func SeqDelete(i, n int) Entry {
	return Entry{Op: OpSeqDelete, Key: ir.FromInt(int64(i)), Count: n}
}

// Index returns the sequence index of the entry key.
func (e *Entry) Index() int {
	if e.Key == nil || e.Key.Int64 == nil {
		panic("key")
	}
	return int(*e.Key.Int64)
}

// KeyString returns the mapping key of the entry.
func (e *Entry) KeyString() string {
	if e.Key == nil {
		panic("key")
	}
	return e.Key.String
}

func (e Entry) MarshalJSON() ([]byte, error) {
	tuple := []any{string(e.Op), keyJSON(e.Key)}
	switch e.Op {
	case OpAdd, OpReplace:
		d, err := ir.ToJSON(e.Value)
		if err != nil {
			return nil, err
		}
		tuple = append(tuple, json.RawMessage(d))
	case OpRemove:
	case OpPatch:
		tuple = append(tuple, e.Diff)
	case OpSeqInsert:
		d, err := ir.ToJSON(ir.FromSlice(cloneAll(e.Values)))
		if err != nil {
			return nil, err
		}
		tuple = append(tuple, json.RawMessage(d))
	case OpSeqDelete:
		tuple = append(tuple, e.Count)
	default:
		return nil, fmt.Errorf("unknown op %q", e.Op)
	}
	return json.Marshal(tuple)
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) < 2 {
		return fmt.Errorf("diff entry with %d elements", len(tuple))
	}
	var op string
	if err := json.Unmarshal(tuple[0], &op); err != nil {
		return err
	}
	e.Op = Op(op)
	key, err := ir.FromYAML(tuple[1])
	if err != nil {
		return err
	}
	switch key.Type {
	case ir.StringType, ir.NumberType:
		e.Key = key
	default:
		return fmt.Errorf("bad diff entry key type %s", key.Type)
	}
	arg := func() (json.RawMessage, error) {
		if len(tuple) != 3 {
			return nil, fmt.Errorf("%s entry with %d elements", op, len(tuple))
		}
		return tuple[2], nil
	}
	switch e.Op {
	case OpAdd, OpReplace:
		raw, err := arg()
		if err != nil {
			return err
		}
		if e.Value, err = ir.FromYAML(raw); err != nil {
			return err
		}
	case OpRemove:
		if len(tuple) != 2 {
			return fmt.Errorf("REMOVE entry with %d elements", len(tuple))
		}
	case OpPatch:
		raw, err := arg()
		if err != nil {
			return err
		}
		if err := json.Unmarshal(raw, &e.Diff); err != nil {
			return err
		}
	case OpSeqInsert:
		raw, err := arg()
		if err != nil {
			return err
		}
		vals, err := ir.FromYAML(raw)
		if err != nil {
			return err
		}
		if vals.Type != ir.ArrayType {
			return fmt.Errorf("SEQINSERT values have type %s", vals.Type)
		}
		e.Values = vals.Values
	case OpSeqDelete:
		raw, err := arg()
		if err != nil {
			return err
		}
		if err := json.Unmarshal(raw, &e.Count); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown op %q", op)
	}
	return nil
}

func (d Diff) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal([]Entry(d))
}

func keyJSON(key *ir.Node) any {
	if key.Type == ir.NumberType {
		return *key.Int64
	}
	return key.String
}

func cloneAll(vals []*ir.Node) []*ir.Node {
	res := make([]*ir.Node, len(vals))
	for i, v := range vals {
		res[i] = v.Clone()
	}
	return res
}
