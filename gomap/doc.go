// Package gomap materializes IR nodes as native Go values.
//
// # Usage
//
//	v, err := gomap.ToValue(node)
//	// v is a map[string]any, []any, int64, float64, string, bool,
//	// []byte or nil
//
//	// Symbolic keys
//	v, err := gomap.ToValue(node, gomap.KeySymbols(true))
//	m := v.(map[gomap.Symbol]any)
//	port := m[gomap.Intern("port")]
//
//	// Decode into a struct through its json tags
//	var cfg Config
//	err := gomap.Decode(node, &cfg)
//
// Objects and arrays always materialize as maps and slices, whatever the
// number of children.  Timestamps become float64 seconds.
//
// # Related Packages
//
//   - github.com/signadot/go-ucl/ir - IR representation
package gomap
