package parse

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/signadot/go-ucl/debug"
	"github.com/signadot/go-ucl/ir"
	"github.com/signadot/go-ucl/token"
)

const maxPriority = 15

type includeParams struct {
	try      bool
	glob     bool
	priority int
	hasPrio  bool
}

// macro handles a directive found in key position of obj.
func (c *chunk) macro(obj *ir.Node, tok *token.Token) error {
	name := string(tok.Bytes)
	params, err := c.macroParams(tok)
	if err != nil {
		return err
	}
	arg, argTok, err := c.macroArg(tok)
	if err != nil {
		return err
	}
	if c.p.flags.Has(DisableMacro) {
		if debug.Macro() {
			debug.Logf("ignoring .%s %q\n", name, arg)
		}
		return nil
	}
	if debug.Macro() {
		debug.Logf(".%s %q at %s\n", name, arg, tok.Pos)
	}
	switch name {
	case "include":
		return c.include(obj, argTok, arg, params)
	case "try_include":
		params.try = true
		return c.include(obj, argTok, arg, params)
	case "priority":
		n, err := priorityOf(arg)
		if err != nil {
			return errAt(argTok.Pos, err)
		}
		c.priority = n
		return nil
	case "inherit":
		return c.inherit(obj, argTok, arg)
	default:
		return errAt(tok.Pos, fmt.Errorf("%w: unknown macro .%s", ErrMacro, name))
	}
}

// macroParams reads an optional parenthesized list of name=value pairs.
func (c *chunk) macroParams(macroTok *token.Token) (*includeParams, error) {
	res := &includeParams{}
	tok, err := c.peek(token.ParamContext)
	if err != nil {
		return nil, err
	}
	if tok.Type != token.TLParen {
		return res, nil
	}
	c.next(token.ParamContext)
	for {
		tok, err := c.next(token.ParamContext)
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case token.TRParen:
			return res, nil
		case token.TComma, token.TSemi:
			continue
		case token.TAtom, token.TString, token.TSQString:
		default:
			return nil, c.unexpected(tok, " in macro parameters")
		}
		key := string(tok.Bytes)
		sep, err := c.next(token.ParamContext)
		if err != nil {
			return nil, err
		}
		if sep.Type != token.TKVSep {
			return nil, errAt(sep.Pos, fmt.Errorf("%w: expected '=' after parameter %s", ErrMacro, key))
		}
		vTok, err := c.next(token.ParamContext)
		if err != nil {
			return nil, err
		}
		val := c.paramString(vTok)
		if err := res.set(key, val); err != nil {
			return nil, errAt(vTok.Pos, err)
		}
	}
}

func (c *chunk) paramString(tok *token.Token) string {
	switch tok.Type {
	case token.TString:
		return c.p.expand(token.UnescapeJSON(tok.Bytes))
	case token.TSQString:
		return token.UnescapeSingle(tok.Bytes)
	default:
		return string(tok.Bytes)
	}
}

func (ip *includeParams) set(key, val string) error {
	switch key {
	case "try":
		b, err := boolParam(key, val)
		ip.try = b
		return err
	case "glob":
		b, err := boolParam(key, val)
		ip.glob = b
		return err
	case "priority":
		n, err := priorityOf(val)
		ip.priority = n
		ip.hasPrio = true
		return err
	default:
		// unknown parameters are ignored, as other UCL readers do
		return nil
	}
}

func boolParam(key, val string) (bool, error) {
	kw, ok := token.ParseKeyword([]byte(val))
	if !ok || kw == token.KwNull {
		return false, fmt.Errorf("%w: parameter %s wants a boolean, got %q", ErrMacro, key, val)
	}
	return kw == token.KwTrue, nil
}

func priorityOf(val string) (int, error) {
	num, err := token.ParseNumber([]byte(val), false)
	if err != nil || num.Kind != token.IntNumber {
		return 0, fmt.Errorf("%w: invalid priority %q", ErrMacro, val)
	}
	if num.Int < 0 || num.Int > maxPriority {
		return 0, fmt.Errorf("%w: priority %d out of range [0, %d]", ErrMacro, num.Int, maxPriority)
	}
	return int(num.Int), nil
}

func (c *chunk) macroArg(macroTok *token.Token) (string, *token.Token, error) {
	tok, err := c.next(token.ValueContext)
	if err != nil {
		return "", nil, err
	}
	switch tok.Type {
	case token.TString:
		return c.p.expand(token.UnescapeJSON(tok.Bytes)), tok, nil
	case token.TSQString:
		return token.UnescapeSingle(tok.Bytes), tok, nil
	case token.THeredoc:
		return string(tok.Bytes), tok, nil
	case token.TAtom:
		return c.p.expand(string(tok.Bytes)), tok, nil
	default:
		return "", nil, errAt(tok.Pos, fmt.Errorf("%w: .%s wants an argument, got %s", ErrMacro, macroTok.Bytes, tok.Describe()))
	}
}

func (c *chunk) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	dir := c.dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return path
		}
		dir = wd
	}
	return filepath.Join(dir, path)
}

func (c *chunk) include(obj *ir.Node, argTok *token.Token, arg string, params *includeParams) error {
	path := c.resolve(arg)
	var paths []string
	if params.glob {
		matches, err := filepath.Glob(path)
		if err != nil {
			return errAt(argTok.Pos, fmt.Errorf("%w: bad pattern %q: %w", ErrInclude, arg, err))
		}
		if len(matches) == 0 && !params.try {
			return errAt(argTok.Pos, fmt.Errorf("%w: no files match %q", ErrInclude, arg))
		}
		sort.Strings(matches)
		paths = matches
	} else {
		paths = []string{path}
	}
	prio := c.priority
	if params.hasPrio {
		prio = params.priority
	}
	for _, path := range paths {
		if err := c.includeFile(obj, argTok, path, prio, params.try); err != nil {
			return err
		}
	}
	return nil
}

func (c *chunk) includeFile(obj *ir.Node, argTok *token.Token, path string, prio int, try bool) error {
	p := c.p
	if p.includeDepth >= maxIncludeDepth {
		return errAt(argTok.Pos, fmt.Errorf("%w: includes nested deeper than %d", ErrInclude, maxIncludeDepth))
	}
	d, err := os.ReadFile(path)
	if err != nil {
		if try && errors.Is(err, fs.ErrNotExist) {
			if debug.Macro() {
				debug.Logf("skipping missing %s\n", path)
			}
			return nil
		}
		return errAt(argTok.Pos, fmt.Errorf("%w: %w", ErrInclude, err))
	}
	restore := c.includeVars(path)
	defer restore()
	p.includeDepth++
	defer func() { p.includeDepth-- }()

	sub := newChunk(p, path, filepath.Dir(path), d, prio)
	sub.depth = c.depth
	sub.stack = append([]*ir.Node(nil), c.stack[:len(c.stack)-1]...)
	_, err = sub.parseTop(obj)
	return err
}

// includeVars points FILENAME and CURDIR at an included file and returns
// a function restoring the previous values.
func (c *chunk) includeVars(path string) func() {
	p := c.p
	if p.flags.Has(NoFileVars) {
		return func() {}
	}
	oldName, hasName := p.vars["FILENAME"]
	oldDir, hasDir := p.vars["CURDIR"]
	p.vars["FILENAME"] = path
	p.vars["CURDIR"] = filepath.Dir(path)
	return func() {
		if hasName {
			p.vars["FILENAME"] = oldName
		} else {
			delete(p.vars, "FILENAME")
		}
		if hasDir {
			p.vars["CURDIR"] = oldDir
		} else {
			delete(p.vars, "CURDIR")
		}
	}
}

// inherit copies into obj the members of the object named by arg, a
// dotted path looked up in the object enclosing obj.  Keys already present
// in obj are kept.
func (c *chunk) inherit(obj *ir.Node, argTok *token.Token, arg string) error {
	if len(c.stack) < 2 {
		return errAt(argTok.Pos, fmt.Errorf("%w: .inherit outside of an object", ErrMacro))
	}
	src := c.stack[len(c.stack)-2]
	for _, part := range strings.Split(arg, ".") {
		if src == nil || src.Type != ir.ObjectType {
			src = nil
			break
		}
		src = ir.Get(src, part)
	}
	if src == nil {
		return errAt(argTok.Pos, fmt.Errorf("%w: .inherit: no object %q", ErrMacro, arg))
	}
	if src.Type != ir.ObjectType {
		return errAt(argTok.Pos, fmt.Errorf("%w: .inherit: %q is a %s, not an object", ErrMacro, arg, src.Type))
	}
	if src == obj {
		return errAt(argTok.Pos, fmt.Errorf("%w: .inherit: %q inherits itself", ErrMacro, arg))
	}
	for i, f := range src.Fields {
		if obj.Lookup(f.String) >= 0 {
			continue
		}
		obj.Insert(f.String, src.Values[i].Clone())
	}
	return nil
}
