package gomap

import (
	"fmt"

	"github.com/signadot/go-ucl/debug"
	"github.com/signadot/go-ucl/ir"
)

// ToValue materializes node as a Go value.
//
// Objects become map[string]any (map[Symbol]any with KeySymbols), later
// keys overwriting earlier equal ones; arrays become []any.  If walking
// any container fails, ToValue returns nil and an error wrapping
// ErrIteration; no partial value is returned.
//
// ToValue panics if node has a type outside of those defined in ir.
func ToValue(node *ir.Node, opts ...MapOption) (any, error) {
	cfg := newMapConfig(opts...)
	return cfg.toValue(node)
}

func (c *mapConfig) toValue(node *ir.Node) (any, error) {
	switch node.Type {
	case ir.IntType:
		return node.Int64, nil
	case ir.FloatType, ir.TimeType:
		return node.Float64, nil
	case ir.StringType:
		return node.String, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.UserDataType:
		return append([]byte{}, node.Data...), nil
	case ir.NullType:
		return nil, nil
	case ir.ObjectType:
		if c.keySymbols {
			m, err := toMap(c, node, Intern)
			if err != nil {
				return nil, err
			}
			return m, nil
		}
		m, err := toMap(c, node, func(s string) string { return s })
		if err != nil {
			return nil, err
		}
		return m, nil
	case ir.ArrayType:
		s, err := c.toSlice(node)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		panic(fmt.Sprintf("unhandled type (%d)", node.Type))
	}
}

func toMap[K comparable](c *mapConfig, node *ir.Node, key func(string) K) (map[K]any, error) {
	res := make(map[K]any, node.Len())
	it := node.Iterate()
	defer it.Close()
	for it.Next() {
		v, err := c.toValue(it.Value())
		if err != nil {
			return nil, err
		}
		res[key(it.Key())] = v
	}
	if err := it.Err(); err != nil {
		return nil, iterationErr(node, err)
	}
	return res, nil
}

func (c *mapConfig) toSlice(node *ir.Node) ([]any, error) {
	res := make([]any, 0, node.Len())
	it := node.Iterate()
	defer it.Close()
	for it.Next() {
		v, err := c.toValue(it.Value())
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	if err := it.Err(); err != nil {
		return nil, iterationErr(node, err)
	}
	return res, nil
}

func iterationErr(node *ir.Node, err error) error {
	if debug.Convert() {
		debug.Logf("iteration of %s failed: %v\n", node.Path(), err)
	}
	return fmt.Errorf("%w: %s: %w", ErrIteration, node.Path(), err)
}
