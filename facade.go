package ucl

import (
	"github.com/signadot/go-ucl/debug"
	"github.com/signadot/go-ucl/ir"
	"github.com/signadot/go-ucl/parse"
)

// parseBuffer parses d and returns its root, which the caller must Unref.
// The parser handle is closed on every path.
func parseBuffer(d []byte, flags Flags, vars map[string]string) (*ir.Node, error) {
	p := newParser(flags, vars)
	defer p.Close()
	if err := p.AddChunk(d); err != nil {
		return nil, newParseError(err)
	}
	return p.Object(), nil
}

// parseFile is parseBuffer for a file.  Unless NoFileVars is set the
// document sees FILENAME and CURDIR for path.
func parseFile(path string, flags Flags, vars map[string]string) (*ir.Node, error) {
	p := newParser(flags, vars)
	defer p.Close()
	if flags&NoFileVars == 0 {
		if err := p.SetFileVars(path); err != nil {
			return nil, newParseError(err)
		}
	}
	if err := p.AddFile(path); err != nil {
		return nil, newParseError(err)
	}
	return p.Object(), nil
}

func newParser(flags Flags, vars map[string]string) *parse.Parser {
	pFlags := EffectiveParserFlags(flags)
	if debug.Parse() {
		debug.Logf("parser flags %d from %s\n", int(pFlags), flags)
	}
	p := parse.New(pFlags)
	for k, v := range vars {
		p.RegisterVariable(k, v)
	}
	return p
}
