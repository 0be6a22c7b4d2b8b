// Package ucl loads UCL configuration documents as Go values.
//
// # Usage
//
//	v, err := ucl.ParseString(`port = 8080; hosts = [a, b]`)
//	// v == map[string]any{"port": int64(8080), "hosts": []any{"a", "b"}}
//
//	v, err := ucl.LoadFile("/etc/app.conf", ucl.NoTime|ucl.KeySymbol)
//
//	l := ucl.Loader{Flags: ucl.DisableMacro, Vars: map[string]string{"ENV": "prod"}}
//	v, err := l.LoadFile("app.conf")
//
// Objects become maps and arrays become []any.  Integers are int64,
// floats and time values (10s, 5min) float64 seconds, strings string and
// null nil.  Repeated keys become arrays.  Loader.Decode and
// Loader.DecodeFile fill json tagged structs instead.
//
// Syntax errors are *ParseError.  A failure while walking the parsed tree
// is ErrIteration.  Malformed arguments are ErrInvalidArgument.
//
// # Related Packages
//
//   - github.com/signadot/go-ucl/parse - grammar engine
//   - github.com/signadot/go-ucl/gomap - conversion to Go values
package ucl
