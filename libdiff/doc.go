// Package libdiff computes structural differences between configuration
// values.
//
// # Usage
//
//	a, _ := ucl.LoadFile("old.conf")
//	b, _ := ucl.LoadFile("new.conf")
//	changes := libdiff.Diff(a, b)
//	libdiff.Write(os.Stdout, changes, nil)
//
// Objects are compared by key, arrays by aligning their elements and long
// strings by character edits.
//
// # Related Packages
//
//   - github.com/signadot/go-ucl/gomap - Materialize IR as Go values
package libdiff
