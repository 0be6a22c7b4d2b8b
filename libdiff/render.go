package libdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/signadot/go-ucl/encode"
	"github.com/signadot/go-ucl/token"
)

// Colors colors the parts of rendered changes.  A nil *Colors renders
// plain text.
type Colors struct {
	Insert func(string, ...any) string
	Delete func(string, ...any) string
	Path   func(string, ...any) string
}

func NewColors() *Colors {
	return &Colors{
		Insert: color.RGB(8, 196, 16).SprintfFunc(),
		Delete: color.RGB(196, 32, 32).SprintfFunc(),
		Path:   color.RGB(128, 168, 196).SprintfFunc(),
	}
}

func (c *Colors) insert(s string) string {
	if c == nil {
		return s
	}
	return c.Insert("%s", s)
}

func (c *Colors) delete(s string) string {
	if c == nil {
		return s
	}
	return c.Delete("%s", s)
}

func (c *Colors) path(s string) string {
	if c == nil {
		return s
	}
	return c.Path("%s", s)
}

// Write renders changes one per line.
func Write(w io.Writer, changes []Change, c *Colors) error {
	for i := range changes {
		if _, err := io.WriteString(w, Format(&changes[i], c)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Format renders a single change.
func Format(ch *Change, c *Colors) string {
	prefix := ch.Op.String() + " " + c.path(ch.Path) + ": "
	switch ch.Op {
	case Insert:
		return c.insert(prefix + value(ch.To))
	case Delete:
		return c.delete(prefix + value(ch.From))
	case Replace:
		return prefix + c.delete(value(ch.From)) + " -> " + c.insert(value(ch.To))
	case Edit:
		buf := &strings.Builder{}
		for _, e := range ch.Edits {
			q := token.Quote(e.Text)
			q = q[1 : len(q)-1]
			switch e.Op {
			case Insert:
				buf.WriteString(c.insert("{+" + q + "+}"))
			case Delete:
				buf.WriteString(c.delete("[-" + q + "-]"))
			default:
				buf.WriteString(q)
			}
		}
		return prefix + `"` + buf.String() + `"`
	default:
		return fmt.Sprintf("%s? %v", prefix, ch)
	}
}

func value(v any) string {
	return encode.MustString(v, encode.EncodeWire(true))
}
