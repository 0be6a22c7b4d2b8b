package gomap

import (
	"github.com/goccy/go-json"
	"github.com/signadot/go-ucl/ir"
)

// Decode materializes node and stores the result in the value pointed to
// by p, following p's json struct tags.
func Decode(node *ir.Node, p any, opts ...MapOption) error {
	v, err := ToValue(node, opts...)
	if err != nil {
		return err
	}
	d, err := json.Marshal(Stringify(v))
	if err != nil {
		return &DecodeError{Message: "cannot encode " + node.Path(), Err: err}
	}
	if err := json.Unmarshal(d, p); err != nil {
		return &DecodeError{Message: err.Error(), Err: err}
	}
	return nil
}

// Stringify returns a copy of v with every map[Symbol]any replaced by an
// equivalent map[string]any.  v itself is not modified.
func Stringify(v any) any {
	switch x := v.(type) {
	case map[Symbol]any:
		res := make(map[string]any, len(x))
		for k, v := range x {
			res[k.String()] = Stringify(v)
		}
		return res
	case map[string]any:
		res := make(map[string]any, len(x))
		for k, v := range x {
			res[k] = Stringify(v)
		}
		return res
	case []any:
		res := make([]any, len(x))
		for i, v := range x {
			res[i] = Stringify(v)
		}
		return res
	default:
		return v
	}
}
