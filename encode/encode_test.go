package encode

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nbkit/nbdiff/ir"
	"github.com/nbkit/nbdiff/libdiff"
)

func TestEncode(t *testing.T) {
	d := libdiff.Diff{
		libdiff.Replace("name", ir.FromString("v2")),
		libdiff.Remove("stale"),
		libdiff.PatchKey("cells", libdiff.Diff{
			libdiff.SeqDelete(1, 2),
			libdiff.SeqInsert(1, []*ir.Node{ir.FromString("hi")}),
			libdiff.PatchIndex(4, libdiff.Diff{
				libdiff.Add("outputs", ir.FromSlice(nil)),
			}),
		}),
	}
	buf := bytes.NewBuffer(nil)
	enc := NewEncoder(buf, WithColor(false))
	if err := enc.Encode(d); err != nil {
		t.Fatal(err)
	}
	want := `replace name: "v2"
remove stale
patch cells:
  delete 2 at 1
  insert 1 at 1:
    "hi"
  patch 4:
    add outputs: []
`
	if got := buf.String(); got != want {
		t.Errorf("rendering mismatch:\n%s", cmp.Diff(want, got))
	}
}

func TestEncodeTruncatesValues(t *testing.T) {
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}
	d := libdiff.Diff{libdiff.Add("blob", ir.FromString(string(long)))}
	buf := bytes.NewBuffer(nil)
	if err := NewEncoder(buf, WithColor(false)).Encode(d); err != nil {
		t.Fatal(err)
	}
	if len(buf.String()) > 120 {
		t.Errorf("value not truncated: %d bytes", len(buf.String()))
	}
}
