package nbdiff

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nbkit/nbdiff/ir"
	"github.com/nbkit/nbdiff/libdiff"
)

func mustParse(t *testing.T, doc string) *ir.Node {
	t.Helper()
	n, err := ir.FromYAML([]byte(doc))
	if err != nil {
		t.Fatalf("parse %q: %v", doc, err)
	}
	return n
}

func mustWire(t *testing.T, d libdiff.Diff) string {
	t.Helper()
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal diff: %v", err)
	}
	return string(b)
}

type diffTest struct {
	name string
	a    string
	b    string
	diff string
}

var diffTests = []diffTest{
	{
		name: "object",
		a: `
f1: a
f2: a
f3: a
f4: a
f5:
  f5a: 1
  f5b: 2`,
		b: `
f0: b
f1: b
f2: b
f5:
  f5a: 1`,
		diff: `[["REPLACE","f1","b"],["REPLACE","f2","b"],["REMOVE","f3"],["REMOVE","f4"],["PATCH","f5",[["REMOVE","f5b"]]],["ADD","f0","b"]]`,
	},
	{
		name: "array",
		a:    `[1, 2, 3, 3, 3, 7, 8]`,
		b:    `[2, 3, 3, 3, 4, 7, 9]`,
		diff: `[["SEQDELETE",0,1],["SEQINSERT",5,[4]],["SEQDELETE",6,1],["SEQINSERT",6,[9]]]`,
	},
	{
		name: "equal",
		a:    `{a: 1, b: [x, y]}`,
		b:    `{a: 1, b: [x, y]}`,
		diff: `[]`,
	},
	{
		name: "nested array patch",
		a:    `{rows: [{id: 1, v: a}, {id: 2, v: b}]}`,
		b:    `{rows: [{id: 1, v: a}, {id: 2, v: c}]}`,
		diff: `[["PATCH","rows",[["PATCH",1,[["REPLACE","v","c"]]]]]]`,
	},
	{
		name: "type change is replace",
		a:    `{a: 1}`,
		b:    `{a: [1]}`,
		diff: `[["REPLACE","a",[1]]]`,
	},
}

func TestDiff(t *testing.T) {
	for _, tt := range diffTests {
		t.Run(tt.name, func(t *testing.T) {
			from := mustParse(t, tt.a)
			to := mustParse(t, tt.b)
			d, err := Diff(from, to)
			if err != nil {
				t.Fatal(err)
			}
			if got := mustWire(t, d); got != tt.diff {
				t.Errorf("diff mismatch:\n%s", cmp.Diff(tt.diff, got))
			}
			res, err := Patch(from, d)
			if err != nil {
				t.Fatalf("patch: %v", err)
			}
			if !ir.Equal(res, to) {
				resJSON, _ := ir.ToJSON(res)
				t.Errorf("patch does not reconstruct target, got %s", resJSON)
			}
		})
	}
}

func TestDiffIgnorePaths(t *testing.T) {
	from := mustParse(t, `{metadata: {foo: 1}, x: 1}`)
	to := mustParse(t, `{metadata: {foo: 2}, x: 1}`)

	d, err := Diff(from, to)
	if err != nil {
		t.Fatal(err)
	}
	if len(d) == 0 {
		t.Fatal("expected a diff without ignores")
	}

	d, err = Diff(from, to, IgnorePaths(`path == "$.metadata"`))
	if err != nil {
		t.Fatal(err)
	}
	if len(d) != 0 {
		t.Errorf("ignored path still diffed: %s", mustWire(t, d))
	}

	d, err = Diff(from, to, IgnorePaths(`key == "foo"`))
	if err != nil {
		t.Fatal(err)
	}
	if len(d) != 0 {
		t.Errorf("ignored key still diffed: %s", mustWire(t, d))
	}
}

func TestDiffBadIgnoreExpr(t *testing.T) {
	from := mustParse(t, `{a: 1}`)
	if _, err := Diff(from, from, IgnorePaths(`key ==`)); err == nil {
		t.Error("expected compile error")
	}
}

func TestDiffScalarRoots(t *testing.T) {
	a := mustParse(t, `hello`)
	d, err := Diff(a, mustParse(t, `hello`))
	if err != nil || len(d) != 0 {
		t.Errorf("equal scalars: diff %v err %v", d, err)
	}
	if _, err := Diff(a, mustParse(t, `world`)); err == nil {
		t.Error("expected error for differing scalar roots")
	}
}
