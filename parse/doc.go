// Package parse parses UCL text into IR nodes.
//
// # Usage
//
//	node, err := parse.Parse([]byte(`section "web" { port = 8080 }`))
//	if err != nil {
//	    return err
//	}
//	defer node.Unref()
//
//	// Accumulate several chunks into one object
//	p := parse.New(parse.NoImplicitArrays)
//	defer p.Close()
//	p.RegisterVariable("PREFIX", "/usr/local")
//	if err := p.AddFile("base.conf"); err != nil {
//	    return err
//	}
//	top := p.Object()
//
// Object keys may repeat.  With [NoImplicitArrays] repeated keys build an
// explicit array instead.  The .include, .try_include, .priority and
// .inherit directives are supported unless [DisableMacro] is set.
//
// # Related Packages
//
//   - github.com/signadot/go-ucl/ir - IR representation
//   - github.com/signadot/go-ucl/token - Tokenization
package parse
