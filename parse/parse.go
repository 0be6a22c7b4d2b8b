package parse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/go-ucl/debug"
	"github.com/signadot/go-ucl/ir"
	"github.com/signadot/go-ucl/token"
)

// Parse parses a single document and returns its top level node, which
// the caller owns.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	p := New(pOpts.flags)
	defer p.Close()
	for k, v := range pOpts.vars {
		p.RegisterVariable(k, v)
	}
	var err error
	if pOpts.filename != "" {
		if err := p.SetFileVars(pOpts.filename); err != nil {
			return nil, err
		}
		err = p.addChunk(pOpts.filename, pOpts.dir(), d)
	} else {
		err = p.AddChunk(d)
	}
	if err != nil {
		return nil, err
	}
	return p.Object(), nil
}

// chunk is the parse state of one input: a buffer, a file or an included
// file.
type chunk struct {
	p        *Parser
	tz       *token.Tokenizer
	name     string
	dir      string
	priority int
	depth    int
	// objects being parsed, innermost last
	stack []*ir.Node
}

func newChunk(p *Parser, name, dir string, d []byte, priority int) *chunk {
	return &chunk{
		p:        p,
		tz:       token.NewTokenizer(name, d),
		name:     name,
		dir:      dir,
		priority: priority,
	}
}

func (c *chunk) next(ctx token.Context) (*token.Token, error) {
	tok, err := c.tz.Next(ctx)
	if err != nil {
		return nil, fromTokenizeErr(err)
	}
	return tok, nil
}

func (c *chunk) peek(ctx token.Context) (*token.Token, error) {
	tok, err := c.tz.Peek(ctx)
	if err != nil {
		return nil, fromTokenizeErr(err)
	}
	return tok, nil
}

func (c *chunk) unexpected(tok *token.Token, what string) error {
	return errAt(tok.Pos, fmt.Errorf("%w: unexpected %s%s", ErrSyntax, tok.Describe(), what))
}

// parseTop parses a whole chunk.  Object content merges into top if it is
// not nil.
func (c *chunk) parseTop(top *ir.Node) (*ir.Node, error) {
	tok, err := c.peek(token.KeyContext)
	if err != nil {
		return top, err
	}
	switch tok.Type {
	case token.TLSquare:
		if top != nil {
			return top, errAt(tok.Pos, fmt.Errorf("%w: cannot add an array to an object", ErrSyntax))
		}
		c.next(token.KeyContext)
		arr := ir.NewArray()
		arr.Priority = c.priority
		if err := c.parseArr(arr); err != nil {
			return arr, err
		}
		return arr, c.expectEOF()
	case token.TLCurl:
		c.next(token.KeyContext)
		top = c.topObject(top)
		if top.Type != ir.ObjectType {
			return top, errAt(tok.Pos, fmt.Errorf("%w: cannot add an object to an array", ErrSyntax))
		}
		if err := c.parseObj(top, token.TRCurl); err != nil {
			return top, err
		}
		return top, c.expectEOF()
	default:
		top = c.topObject(top)
		if top.Type != ir.ObjectType {
			return top, errAt(tok.Pos, fmt.Errorf("%w: cannot add an object to an array", ErrSyntax))
		}
		return top, c.parseObj(top, token.TEOF)
	}
}

func (c *chunk) topObject(top *ir.Node) *ir.Node {
	if top != nil {
		return top
	}
	res := ir.NewObject()
	res.Priority = c.priority
	return res
}

func (c *chunk) expectEOF() error {
	for {
		tok, err := c.next(token.KeyContext)
		if err != nil {
			return err
		}
		switch tok.Type {
		case token.TEOF:
			return nil
		case token.TSemi, token.TComma:
			continue
		default:
			return c.unexpected(tok, " after top level value")
		}
	}
}

// parseObj parses object members into obj until closer.
func (c *chunk) parseObj(obj *ir.Node, closer token.TokenType) error {
	c.stack = append(c.stack, obj)
	defer func() { c.stack = c.stack[:len(c.stack)-1] }()
	for {
		tok, err := c.next(token.KeyContext)
		if err != nil {
			return err
		}
		switch tok.Type {
		case closer:
			return nil
		case token.TEOF:
			return errAt(tok.Pos, fmt.Errorf("%w: premature end of object", ErrSyntax))
		case token.TSemi, token.TComma:
			continue
		case token.TMacro:
			if err := c.macro(obj, tok); err != nil {
				return err
			}
			continue
		case token.TAtom, token.TString, token.TSQString:
		default:
			return c.unexpected(tok, ", expected a key")
		}
		key := c.keyString(tok)
		val, named, err := c.parseMember(obj, key, tok)
		if err != nil {
			return err
		}
		if debug.Parse() {
			debug.Logf("member %q type %s at %s\n", key, val.Type, tok.Pos)
		}
		c.insert(obj, key, val, named)
		if err := c.endOfValue(val, closer); err != nil {
			return err
		}
	}
}

func (c *chunk) keyString(tok *token.Token) string {
	var key string
	switch tok.Type {
	case token.TString:
		key = token.UnescapeJSON(tok.Bytes)
	case token.TSQString:
		key = token.UnescapeSingle(tok.Bytes)
	default:
		key = string(tok.Bytes)
	}
	if c.p.flags.Has(KeyLowercase) {
		key = lowerASCII(key)
	}
	return key
}

// parseMember parses what follows a key: a separator and a value, a
// container without separator, or a named section such as
// `key "name" { ... }`.
func (c *chunk) parseMember(obj *ir.Node, key string, keyTok *token.Token) (*ir.Node, bool, error) {
	tok, err := c.peek(token.KeyContext)
	if err != nil {
		return nil, false, err
	}
	switch {
	case tok.Type == token.TKVSep:
		c.next(token.KeyContext)
		v, err := c.parseValue()
		return v, false, err
	case tok.Type == token.TLCurl || tok.Type == token.TLSquare:
		v, err := c.parseValue()
		return v, false, err
	case !tok.NL && (tok.Type == token.TAtom || tok.Type == token.TString || tok.Type == token.TSQString):
		off := c.tz.Offset()
		v, ok, err := c.parseSection(obj, key)
		if err != nil || ok {
			return v, ok, err
		}
		c.tz.Reset(off)
		v, err = c.parseValue()
		return v, false, err
	default:
		return nil, false, errAt(tok.Pos, fmt.Errorf("%w: delimiter is missing after key %s", ErrSyntax, keyTok.Describe()))
	}
}

// parseSection parses `name1 name2 ... { body }` after a key into nested
// objects name1 { name2 { body } }.  It reports false without error when
// the names are not followed by '{' on the same line, in which case they
// are a plain value.
func (c *chunk) parseSection(obj *ir.Node, key string) (*ir.Node, bool, error) {
	var names []string
	for {
		tok, err := c.next(token.KeyContext)
		if err != nil {
			return nil, false, err
		}
		if len(names) > 0 && tok.NL {
			return nil, false, nil
		}
		switch tok.Type {
		case token.TAtom, token.TString, token.TSQString:
			names = append(names, c.keyString(tok))
			continue
		case token.TLCurl:
		default:
			return nil, false, nil
		}
		// the already defined enclosing section, if any, is the
		// context in which .inherit looks up names
		ctx := sectionContext(obj, key, names[:len(names)-1])
		c.stack = append(c.stack, ctx)
		body, err := c.parseContainer(tok, ir.NewObject())
		c.stack = c.stack[:len(c.stack)-1]
		if err != nil {
			return nil, false, err
		}
		res := body
		for i := len(names) - 1; i >= 0; i-- {
			outer := ir.NewObject()
			outer.Priority = c.priority
			outer.Insert(names[i], res)
			res = outer
		}
		if debug.Parse() {
			debug.Logf("section %s\n", strings.Join(names, " "))
		}
		return res, true, nil
	}
}

func sectionContext(obj *ir.Node, key string, names []string) *ir.Node {
	cur := ir.Get(obj, key)
	for _, name := range names {
		if cur == nil || cur.Type != ir.ObjectType {
			break
		}
		cur = ir.Get(cur, name)
	}
	if cur == nil || cur.Type != ir.ObjectType {
		return ir.NewObject()
	}
	return cur
}

func (c *chunk) parseContainer(open *token.Token, node *ir.Node) (*ir.Node, error) {
	c.depth++
	defer func() { c.depth-- }()
	if c.depth > maxNestingDepth {
		return nil, errAt(open.Pos, fmt.Errorf("%w: more than %d levels", ErrNesting, maxNestingDepth))
	}
	node.Priority = c.priority
	var err error
	if node.Type == ir.ObjectType {
		err = c.parseObj(node, token.TRCurl)
	} else {
		err = c.parseArr(node)
	}
	if err != nil {
		return nil, err
	}
	return node, nil
}

func (c *chunk) parseValue() (*ir.Node, error) {
	tok, err := c.next(token.ValueContext)
	if err != nil {
		return nil, err
	}
	var res *ir.Node
	switch tok.Type {
	case token.TLCurl:
		return c.parseContainer(tok, ir.NewObject())
	case token.TLSquare:
		return c.parseContainer(tok, ir.NewArray())
	case token.TString:
		res = ir.FromString(c.p.expand(token.UnescapeJSON(tok.Bytes)))
	case token.TSQString:
		res = ir.FromString(token.UnescapeSingle(tok.Bytes))
	case token.THeredoc:
		res = ir.FromString(string(tok.Bytes))
	case token.TAtom:
		res, err = c.atom(tok)
		if err != nil {
			return nil, err
		}
	case token.TEOF:
		return nil, errAt(tok.Pos, fmt.Errorf("%w: expected a value, got end of input", ErrSyntax))
	default:
		return nil, c.unexpected(tok, ", expected a value")
	}
	res.Priority = c.priority
	return res, nil
}

func (c *chunk) atom(tok *token.Token) (*ir.Node, error) {
	if kw, ok := token.ParseKeyword(tok.Bytes); ok {
		switch kw {
		case token.KwTrue:
			return ir.FromBool(true), nil
		case token.KwFalse:
			return ir.FromBool(false), nil
		default:
			return ir.Null(), nil
		}
	}
	num, err := token.ParseNumber(tok.Bytes, !c.p.flags.Has(NoTime))
	if err != nil {
		return nil, errAt(tok.Pos, fmt.Errorf("%w: %w %q", ErrSyntax, err, tok.Bytes))
	}
	switch num.Kind {
	case token.IntNumber:
		return ir.FromInt(num.Int), nil
	case token.FloatNumber:
		return ir.FromFloat(num.Float), nil
	case token.TimeNumber:
		return ir.FromTime(num.Float), nil
	}
	return ir.FromString(c.p.expand(string(tok.Bytes))), nil
}

func (c *chunk) parseArr(arr *ir.Node) error {
	for {
		tok, err := c.peek(token.ValueContext)
		if err != nil {
			return err
		}
		switch tok.Type {
		case token.TRSquare:
			c.next(token.ValueContext)
			return nil
		case token.TEOF:
			return errAt(tok.Pos, fmt.Errorf("%w: premature end of array", ErrSyntax))
		case token.TComma, token.TSemi:
			c.next(token.ValueContext)
			continue
		}
		v, err := c.parseValue()
		if err != nil {
			return err
		}
		arr.Append(v)
		if err := c.endOfValue(v, token.TRSquare); err != nil {
			return err
		}
	}
}

// endOfValue checks that a value is properly terminated: by a separator,
// a newline, the enclosing closer or the end of a container value.
func (c *chunk) endOfValue(val *ir.Node, closer token.TokenType) error {
	tok, err := c.peek(token.KeyContext)
	if err != nil {
		return err
	}
	switch {
	case tok.Type == token.TSemi || tok.Type == token.TComma:
		c.next(token.KeyContext)
		return nil
	case tok.Type == closer, tok.Type == token.TEOF, tok.NL:
		return nil
	case !val.Type.IsLeaf():
		return nil
	default:
		return c.unexpected(tok, " after value")
	}
}

// insert adds key/val to obj, resolving repeated keys.  Named sections
// merge into an existing object of the same name; otherwise a higher
// priority replaces, a lower one is dropped and equal priorities either
// build an explicit array (NoImplicitArrays) or keep both pairs.
func (c *chunk) insert(obj *ir.Node, key string, val *ir.Node, merge bool) {
	i := obj.Lookup(key)
	if i < 0 {
		obj.Insert(key, val)
		return
	}
	old := obj.Values[i]
	if merge && old.Type == ir.ObjectType && val.Type == ir.ObjectType {
		for j, f := range val.Fields {
			c.insert(old, f.String, val.Values[j], true)
		}
		return
	}
	switch {
	case val.Priority > old.Priority:
		obj.Replace(i, val)
	case val.Priority < old.Priority:
		if debug.Parse() {
			debug.Logf("dropping %q: priority %d < %d\n", key, val.Priority, old.Priority)
		}
	case c.p.flags.Has(NoImplicitArrays):
		if old.Type == ir.ArrayType && old.Implicit {
			old.Append(val)
			return
		}
		arr := ir.NewArray()
		arr.Implicit = true
		arr.Priority = old.Priority
		obj.Replace(i, arr)
		arr.Append(old)
		arr.Append(val)
	default:
		obj.Insert(key, val)
	}
}

func lowerASCII(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// IsSyntax reports whether err is a document error as opposed to an I/O
// or usage error.
func IsSyntax(err error) bool {
	return errors.Is(err, ErrSyntax) || errors.Is(err, ErrNesting) ||
		errors.Is(err, ErrMacro) || errors.Is(err, ErrInclude)
}
