// Package eval evaluates expressions against loaded configuration values.
//
// # Usage
//
//	v, err := ucl.LoadFile("app.conf")
//	port, err := eval.Query(`server.port + 1`, v, nil)
//	host, err := eval.Query(`getpath("$.servers[0].host")`, v, nil)
//
// Expressions use the github.com/expr-lang/expr language.  The top level
// keys of the configuration are variables, and the whole configuration is
// also available as config.
//
// # Related Packages
//
//   - github.com/signadot/go-ucl/gomap - Materialize IR as Go values
package eval
