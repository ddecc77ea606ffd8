// Package encode renders edit scripts as indented, optionally colored
// text for terminal display.
package encode

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/nbkit/nbdiff/ir"
	"github.com/nbkit/nbdiff/libdiff"
)

const maxValueWidth = 72

type Encoder struct {
	w      io.Writer
	colors *Colors
}

type Opt func(*Encoder)

// WithColor forces colored output on or off; the default is to detect
// whether the writer is a terminal.
func WithColor(on bool) Opt {
	return func(e *Encoder) {
		if on {
			e.colors = NewColors()
		} else {
			e.colors = NoColors()
		}
	}
}

func NewEncoder(w io.Writer, opts ...Opt) *Encoder {
	e := &Encoder{w: w}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		e.colors = NewColors()
	} else {
		e.colors = NoColors()
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode writes a rendering of the edit script, one entry per line, with
// nested patches indented under their key.
func (e *Encoder) Encode(d libdiff.Diff) error {
	return e.encode(d, 0)
}

func (e *Encoder) encode(d libdiff.Diff, depth int) error {
	indent := strings.Repeat("  ", depth)
	for i := range d {
		entry := &d[i]
		var err error
		switch entry.Op {
		case libdiff.OpAdd:
			err = e.printf("%s%s %s: %s\n", indent,
				e.colors.Add("add"), entry.KeyString(), e.value(entry.Value))
		case libdiff.OpRemove:
			err = e.printf("%s%s %s\n", indent,
				e.colors.Delete("remove"), entry.KeyString())
		case libdiff.OpReplace:
			err = e.printf("%s%s %s: %s\n", indent,
				e.colors.Replace("replace"), entry.KeyString(), e.value(entry.Value))
		case libdiff.OpPatch:
			if err = e.printf("%s%s %s:\n", indent,
				e.colors.Patch("patch"), keyLabel(entry)); err != nil {
				return err
			}
			err = e.encode(entry.Diff, depth+1)
		case libdiff.OpSeqDelete:
			err = e.printf("%s%s %d at %d\n", indent,
				e.colors.Delete("delete"), entry.Count, entry.Index())
		case libdiff.OpSeqInsert:
			if err = e.printf("%s%s %d at %d:\n", indent,
				e.colors.Add("insert"), len(entry.Values), entry.Index()); err != nil {
				return err
			}
			for _, v := range entry.Values {
				if err = e.printf("%s  %s\n", indent, e.value(v)); err != nil {
					return err
				}
			}
		default:
			err = fmt.Errorf("unknown op %q", entry.Op)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(e.w, format, args...)
	return err
}

func (e *Encoder) value(v *ir.Node) string {
	d, err := ir.ToJSON(v)
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	s := string(d)
	if len(s) > maxValueWidth {
		s = s[:maxValueWidth-3] + "..."
	}
	return e.colors.Value(s)
}

func keyLabel(entry *libdiff.Entry) string {
	if entry.Key.Type == ir.NumberType {
		return fmt.Sprintf("%d", entry.Index())
	}
	return entry.KeyString()
}
