package encode

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/signadot/go-ucl/format"
	"github.com/signadot/go-ucl/gomap"
	"github.com/signadot/go-ucl/ir"
	"github.com/signadot/go-ucl/token"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	col           int
	depth, indent int

	format format.Format
	wire   bool

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes v, a value as produced by gomap.ToValue, to w.
func Encode(v any, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	v = normalize(v)
	switch es.format {
	case format.JSONFormat:
		return encodeJSON(v, w, es)
	case format.YAMLFormat:
		return encodeYAML(v, w, es)
	case format.UCLFormat:
		if err := encodeTop(v, w, es); err != nil {
			return err
		}
		return writeString(w, "\n")
	default:
		return fmt.Errorf("%w: unknown format %d", ErrEncoding, es.format)
	}
}

// normalize makes symbol keyed maps string keyed and byte slices strings.
func normalize(v any) any {
	switch x := gomap.Stringify(v).(type) {
	case map[string]any:
		res := make(map[string]any, len(x))
		for k, v := range x {
			res[k] = normalize(v)
		}
		return res
	case []any:
		res := make([]any, len(x))
		for i, v := range x {
			res[i] = normalize(v)
		}
		return res
	case []byte:
		return string(x)
	default:
		return x
	}
}

func encodeJSON(v any, w io.Writer, es *EncState) error {
	var (
		d   []byte
		err error
	)
	if es.wire {
		d, err = json.Marshal(v)
	} else {
		d, err = json.MarshalIndent(v, "", strings.Repeat(" ", es.indent))
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	if err := writeString(w, string(d)); err != nil {
		return err
	}
	return writeString(w, "\n")
}

func encodeYAML(v any, w io.Writer, es *EncState) error {
	opts := []yaml.EncodeOption{yaml.Indent(es.indent)}
	if es.wire {
		opts = append(opts, yaml.Flow(true))
	}
	d, err := yaml.MarshalWithOptions(v, opts...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return writeString(w, string(d))
}

// encodeTop writes a top level object without enclosing braces.
func encodeTop(v any, w io.Writer, es *EncState) error {
	m, ok := v.(map[string]any)
	if !ok || es.wire {
		return encode(v, w, es)
	}
	for i, k := range sortedKeys(m) {
		if i > 0 {
			if err := writeNL(w, es); err != nil {
				return err
			}
		}
		if err := encodeMember(k, m[k], w, es); err != nil {
			return err
		}
	}
	return nil
}

func encode(v any, w io.Writer, es *EncState) error {
	switch x := v.(type) {
	case map[string]any:
		return encodeObject(x, w, es)
	case []any:
		return encodeArray(x, w, es)
	case string:
		return writeValue(w, es, ir.StringType, token.Quote(x))
	case int64:
		return writeValue(w, es, ir.IntType, strconv.FormatInt(x, 10))
	case int:
		return writeValue(w, es, ir.IntType, strconv.Itoa(x))
	case float64:
		return writeValue(w, es, ir.FloatType, formatFloat(x))
	case bool:
		return writeValue(w, es, ir.BoolType, strconv.FormatBool(x))
	case nil:
		return writeValue(w, es, ir.NullType, "null")
	default:
		return fmt.Errorf("%w: cannot encode %T", ErrEncoding, v)
	}
}

func encodeObject(m map[string]any, w io.Writer, es *EncState) error {
	if err := writeSep(w, es, ir.ObjectType, "{"); err != nil {
		return err
	}
	keys := sortedKeys(m)
	es.depth++
	for i, k := range keys {
		if es.wire {
			if i > 0 {
				if err := writeString(w, " "); err != nil {
					return err
				}
			}
		} else if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encodeMember(k, m[k], w, es); err != nil {
			return err
		}
	}
	es.depth--
	if len(keys) > 0 && !es.wire {
		if err := writeNL(w, es); err != nil {
			return err
		}
	}
	return writeSep(w, es, ir.ObjectType, "}")
}

func encodeMember(k string, v any, w io.Writer, es *EncState) error {
	key := k
	if token.NeedsQuote(k) {
		key = token.Quote(k)
	}
	if es.Color != nil {
		key = es.Color(ir.ObjectType, FieldColor, key)
	}
	if err := writeString(w, key); err != nil {
		return err
	}
	switch v.(type) {
	case map[string]any, []any:
		if err := writeString(w, " "); err != nil {
			return err
		}
		return encode(v, w, es)
	}
	if err := writeSep(w, es, ir.ObjectType, " = "); err != nil {
		return err
	}
	if err := encode(v, w, es); err != nil {
		return err
	}
	return writeSep(w, es, ir.ObjectType, ";")
}

func encodeArray(a []any, w io.Writer, es *EncState) error {
	if err := writeSep(w, es, ir.ArrayType, "["); err != nil {
		return err
	}
	es.depth++
	for i, v := range a {
		if es.wire {
			if i > 0 {
				if err := writeString(w, " "); err != nil {
					return err
				}
			}
		} else if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encode(v, w, es); err != nil {
			return err
		}
		if err := writeSep(w, es, ir.ArrayType, ","); err != nil {
			return err
		}
	}
	es.depth--
	if len(a) > 0 && !es.wire {
		if err := writeNL(w, es); err != nil {
			return err
		}
	}
	return writeSep(w, es, ir.ArrayType, "]")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// formatFloat keeps a decimal point so the value reads back as a float.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func writeNL(w io.Writer, es *EncState) error {
	if es.wire {
		return nil
	}
	indentString := strings.Repeat(" ", es.indent*es.depth)
	if err := writeString(w, "\n"+indentString); err != nil {
		return err
	}
	es.col = len(indentString)
	return nil
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

func writeSep(w io.Writer, es *EncState, t ir.Type, sep string) error {
	es.col += len(sep)
	if es.Color != nil {
		sep = es.Color(t, SepColor, sep)
	}
	return writeString(w, sep)
}

func writeValue(w io.Writer, es *EncState, t ir.Type, v string) error {
	es.col += len(v)
	if es.Color != nil {
		v = es.Color(t, ValueColor, v)
	}
	return writeString(w, v)
}
