// Package encode renders materialized configuration values as text.
//
// # Usage
//
//	v, err := ucl.LoadFile("app.conf")
//	err = encode.Encode(v, os.Stdout)
//
//	// JSON, on one line
//	err = encode.Encode(v, os.Stdout, encode.EncodeFormat(format.JSONFormat), encode.EncodeWire(true))
//
//	// Colored text view
//	err = encode.Encode(v, os.Stdout, encode.EncodeColors(encode.NewColors()))
//
// Values are those produced by gomap.ToValue.  Map keys are written in
// sorted order.
//
// # Related Packages
//
//   - github.com/signadot/go-ucl/gomap - Materialize IR as Go values
//   - github.com/signadot/go-ucl/format - Output formats
package encode
