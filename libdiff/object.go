package libdiff

import (
	"github.com/nbkit/nbdiff/ir"
)

// DiffObject diffs two object nodes key by key:
//
//   - a key only in from becomes REMOVE
//   - a key only in to becomes ADD
//   - a shared key with differing leaf values (or differing types) becomes
//     REPLACE
//   - a shared key with both values composite of the same type recurses
//     through df and becomes PATCH when the nested diff is non-empty
//
// Entries follow from's field order, with additions appended in to's field
// order.  skip may be nil.
func DiffObject(from, to *ir.Node, df DiffFunc, skip SkipFunc) (Diff, error) {
	toMap := ir.ToMap(to)
	fromKeys := make(map[string]bool, len(from.Fields))
	var res Diff
	for i := range from.Fields {
		key := from.Fields[i].String
		fromKeys[key] = true
		if skip != nil && skip(from, key) {
			continue
		}
		fv := from.Values[i]
		tv, ok := toMap[key]
		if !ok {
			res = append(res, Remove(key))
			continue
		}
		if fv.Type != tv.Type || fv.Type.IsLeaf() {
			if ir.Equal(fv, tv) {
				continue
			}
			res = append(res, Replace(key, tv.Clone()))
			continue
		}
		sub, err := df(fv, tv)
		if err != nil {
			return nil, err
		}
		if len(sub) != 0 {
			res = append(res, PatchKey(key, sub))
		}
	}
	for i := range to.Fields {
		key := to.Fields[i].String
		if fromKeys[key] {
			continue
		}
		if skip != nil && skip(from, key) {
			continue
		}
		res = append(res, Add(key, to.Values[i].Clone()))
	}
	return res, nil
}
