// Package format names the output formats of the ucl tool.
//
// # Usage
//
//	f, err := format.ParseFormat("json")
//	name := "out" + f.Suffix()
//
// # Related Packages
//
//   - github.com/signadot/go-ucl/encode - Encode values in a format
package format
