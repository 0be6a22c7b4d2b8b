package parse

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/signadot/go-ucl/debug"
	"github.com/signadot/go-ucl/ir"
)

const (
	bufferName = "<buffer>"

	maxIncludeDepth = 16
	maxNestingDepth = 128
)

// Parser is a parser handle.  It accumulates one or more chunks into a
// single top level object, which Object hands out.  A Parser must be
// closed exactly once; closing drops its reference to the tree.
type Parser struct {
	flags Flags
	vars  map[string]string
	top   *ir.Node
	err   error

	fileVars     bool
	includeDepth int
	closed       bool
}

func New(flags Flags) *Parser {
	live.Add(1)
	return &Parser{
		flags: flags & AllFlags,
		vars:  map[string]string{},
	}
}

func (p *Parser) Flags() Flags {
	return p.flags
}

// RegisterVariable makes $name (and ${name}) expand to value in
// subsequently parsed chunks.
func (p *Parser) RegisterVariable(name, value string) {
	p.vars[name] = value
}

// SetFileVars registers FILENAME and CURDIR for path.  It does nothing
// when the parser was created with NoFileVars.
func (p *Parser) SetFileVars(path string) error {
	if p.flags.Has(NoFileVars) {
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("could not resolve %q: %w", path, err)
	}
	p.vars["FILENAME"] = abs
	p.vars["CURDIR"] = filepath.Dir(abs)
	p.fileVars = true
	if debug.Vars() {
		debug.Logf("file vars FILENAME=%s CURDIR=%s\n", p.vars["FILENAME"], p.vars["CURDIR"])
	}
	return nil
}

func (p *Parser) defaultFileVars() {
	if p.fileVars || p.flags.Has(NoFileVars) {
		return
	}
	p.vars["FILENAME"] = "undef"
	if wd, err := os.Getwd(); err == nil {
		p.vars["CURDIR"] = wd
	}
	p.fileVars = true
}

// AddChunk parses d into the parser's top level object.
func (p *Parser) AddChunk(d []byte) error {
	return p.addChunk(bufferName, "", d)
}

// AddFile reads path and parses its contents into the parser's top level
// object.  Relative includes in the file resolve against its directory.
func (p *Parser) AddFile(path string) error {
	if p.closed {
		return ErrClosed
	}
	if p.err != nil {
		return p.err
	}
	d, err := os.ReadFile(path)
	if err != nil {
		p.err = fmt.Errorf("%w: cannot open %s: %w", ErrNoInput, path, err)
		return p.err
	}
	dir := ""
	if abs, err := filepath.Abs(path); err == nil {
		dir = filepath.Dir(abs)
	}
	return p.addChunk(path, dir, d)
}

func (p *Parser) addChunk(name, dir string, d []byte) error {
	if p.closed {
		return ErrClosed
	}
	if p.err != nil {
		return p.err
	}
	p.defaultFileVars()
	if debug.Parse() {
		debug.Logf("parsing chunk %s (%d bytes)\n", name, len(d))
	}
	c := newChunk(p, name, dir, d, 0)
	top, err := c.parseTop(p.top)
	if err != nil {
		p.err = err
		if top != nil && top != p.top {
			top.Unref()
		}
		return err
	}
	p.top = top
	return nil
}

// Err returns the first error encountered by the parser.
func (p *Parser) Err() error {
	return p.err
}

// Object returns the parsed top level node with a new reference which the
// caller must drop with Unref.  It returns nil if the parser failed or
// has parsed nothing.
func (p *Parser) Object() *ir.Node {
	if p.err != nil || p.top == nil || p.closed {
		return nil
	}
	return p.top.Ref()
}

func (p *Parser) Close() {
	if p.closed {
		panic("parse: parser closed twice")
	}
	p.closed = true
	live.Add(-1)
	if p.top != nil {
		p.top.Unref()
		p.top = nil
	}
}
