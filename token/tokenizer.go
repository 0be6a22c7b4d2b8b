package token

import (
	"bytes"
	"fmt"
)

// Context tells the tokenizer how to delimit unquoted atoms, which UCL
// delimits differently in key, value and macro parameter position.
type Context int

const (
	// KeyContext atoms end at blanks and structural characters.
	KeyContext Context = iota
	// ValueContext atoms run to the end of the value (';', ',', newline,
	// ']', '}' or a comment) with trailing blanks trimmed.
	ValueContext
	// ParamContext atoms end at blanks, '=', ',' and parentheses.
	ParamContext
)

// Tokenizer is a pull tokenizer over a complete UCL document.
type Tokenizer struct {
	doc    []byte
	posDoc *PosDoc
	i      int
}

func NewTokenizer(name string, src []byte) *Tokenizer {
	return &Tokenizer{
		doc:    src,
		posDoc: NewPosDoc(name, src),
	}
}

func (t *Tokenizer) PosDoc() *PosDoc {
	return t.posDoc
}

// Offset returns the offset of the next unread byte.
func (t *Tokenizer) Offset() int {
	return t.i
}

// Peek returns the next token without consuming it.
func (t *Tokenizer) Peek(ctx Context) (*Token, error) {
	i := t.i
	tok, err := t.Next(ctx)
	t.i = i
	return tok, err
}

// Next returns the next token, skipping blanks and comments.  At the end
// of input it returns a TEOF token.
func (t *Tokenizer) Next(ctx Context) (*Token, error) {
	nl, err := t.skip()
	if err != nil {
		return nil, err
	}
	d := t.doc
	n := len(d)
	start := t.i
	tok := &Token{Pos: t.posDoc.Pos(start), NL: nl}
	if start >= n {
		tok.Type = TEOF
		return tok, nil
	}
	c := d[start]
	single := func(tt TokenType) (*Token, error) {
		t.i++
		tok.Type = tt
		tok.Bytes = d[start:t.i]
		return tok, nil
	}
	switch c {
	case '{':
		return single(TLCurl)
	case '}':
		return single(TRCurl)
	case '[':
		return single(TLSquare)
	case ']':
		return single(TRSquare)
	case ',':
		return single(TComma)
	case ';':
		return single(TSemi)
	case '"':
		return t.doubleQuoted(tok)
	case '\'':
		return t.singleQuoted(tok)
	}
	switch ctx {
	case KeyContext:
		switch c {
		case '=', ':':
			return single(TKVSep)
		case '(':
			return single(TLParen)
		case ')':
			return single(TRParen)
		case '.':
			if start+1 < n && isNameByte(d[start+1]) {
				t.i++
				for t.i < n && isNameByte(d[t.i]) {
					t.i++
				}
				tok.Type = TMacro
				tok.Bytes = d[start+1 : t.i]
				return tok, nil
			}
		}
	case ParamContext:
		switch c {
		case '=':
			return single(TKVSep)
		case '(':
			return single(TLParen)
		case ')':
			return single(TRParen)
		}
	case ValueContext:
		if c == '<' && start+2 < n && d[start+1] == '<' && isUpper(d[start+2]) {
			return t.heredoc(tok)
		}
	}
	t.atom(ctx)
	if t.i == start {
		return nil, UnexpectedErr(fmt.Sprintf("%q", c), tok.Pos)
	}
	tok.Type = TAtom
	tok.Bytes = d[start:t.i]
	return tok, nil
}

// skip consumes blanks and comments, reporting whether a newline was
// crossed.
func (t *Tokenizer) skip() (bool, error) {
	d := t.doc
	n := len(d)
	nl := false
	for t.i < n {
		switch c := d[t.i]; c {
		case '\n':
			nl = true
			t.i++
		case ' ', '\t', '\r':
			t.i++
		case '#':
			for t.i < n && d[t.i] != '\n' {
				t.i++
			}
		case '/':
			if t.i+1 < n && d[t.i+1] == '*' {
				crossed, err := t.multilineComment()
				if err != nil {
					return nl, err
				}
				nl = nl || crossed
				continue
			}
			return nl, nil
		default:
			return nl, nil
		}
	}
	return nl, nil
}

// multilineComment skips a possibly nested /* */ comment.
func (t *Tokenizer) multilineComment() (bool, error) {
	d := t.doc
	n := len(d)
	start := t.i
	depth := 0
	nl := false
	for t.i < n {
		switch {
		case d[t.i] == '/' && t.i+1 < n && d[t.i+1] == '*':
			depth++
			t.i += 2
		case d[t.i] == '*' && t.i+1 < n && d[t.i+1] == '/':
			depth--
			t.i += 2
			if depth == 0 {
				return nl, nil
			}
		default:
			if d[t.i] == '\n' {
				nl = true
			}
			t.i++
		}
	}
	return nl, NewTokenizeErr(fmt.Errorf("%w comment", ErrUnterminated), t.posDoc.Pos(start))
}

func (t *Tokenizer) doubleQuoted(tok *Token) (*Token, error) {
	d := t.doc
	n := len(d)
	start := t.i
	t.i++
	for t.i < n {
		switch d[t.i] {
		case '\\':
			if t.i+1 < n && d[t.i+1] == 'u' && !isHex4(d[t.i+2:]) {
				return nil, NewTokenizeErr(fmt.Errorf("%w escape", ErrBadUnicode), t.posDoc.Pos(t.i))
			}
			t.i += 2
			continue
		case '\n':
			return nil, NewTokenizeErr(ErrNewline, t.posDoc.Pos(t.i))
		case '"':
			tok.Type = TString
			tok.Bytes = d[start+1 : t.i]
			t.i++
			return tok, nil
		}
		t.i++
	}
	return nil, NewTokenizeErr(fmt.Errorf("%w string", ErrUnterminated), t.posDoc.Pos(start))
}

func (t *Tokenizer) singleQuoted(tok *Token) (*Token, error) {
	d := t.doc
	n := len(d)
	start := t.i
	t.i++
	for t.i < n {
		switch d[t.i] {
		case '\\':
			t.i += 2
			continue
		case '\'':
			tok.Type = TSQString
			tok.Bytes = d[start+1 : t.i]
			t.i++
			return tok, nil
		}
		t.i++
	}
	return nil, NewTokenizeErr(fmt.Errorf("%w string", ErrUnterminated), t.posDoc.Pos(start))
}

// heredoc reads <<TAG\n ... \nTAG where TAG is a run of upper case
// letters and the closing TAG stands alone on its line.
func (t *Tokenizer) heredoc(tok *Token) (*Token, error) {
	d := t.doc
	n := len(d)
	start := t.i
	j := start + 2
	for j < n && isUpper(d[j]) {
		j++
	}
	tag := d[start+2 : j]
	if j < n && d[j] == '\r' {
		j++
	}
	if j >= n || d[j] != '\n' {
		return nil, ExpectedErr("newline after heredoc tag", t.posDoc.Pos(j))
	}
	bodyStart := j + 1
	ln := bodyStart
	for ln <= n {
		end := bytes.IndexByte(d[ln:], '\n')
		lineEnd := n
		if end >= 0 {
			lineEnd = ln + end
		}
		line := bytes.TrimSuffix(d[ln:lineEnd], []byte{'\r'})
		if bytes.Equal(line, tag) {
			tok.Type = THeredoc
			bodyEnd := ln - 1
			if bodyEnd < bodyStart {
				bodyEnd = bodyStart
			}
			tok.Bytes = bytes.TrimSuffix(d[bodyStart:bodyEnd], []byte{'\r'})
			t.i = ln + len(tag)
			return tok, nil
		}
		if end < 0 {
			break
		}
		ln = lineEnd + 1
	}
	return nil, NewTokenizeErr(fmt.Errorf("%w heredoc %s", ErrUnterminated, tag), t.posDoc.Pos(start))
}

func (t *Tokenizer) atom(ctx Context) {
	d := t.doc
	n := len(d)
	start := t.i
	lastNonBlank := t.i
	for t.i < n {
		c := d[t.i]
		switch ctx {
		case KeyContext:
			if isBlank(c) || isKeyStop(c) {
				return
			}
		case ParamContext:
			if isBlank(c) || isParamStop(c) {
				return
			}
		case ValueContext:
			if c == '$' && t.i+1 < n && d[t.i+1] == '{' {
				if end := bytes.IndexAny(d[t.i:], "}\n"); end > 0 && d[t.i+end] == '}' {
					t.i += end + 1
					lastNonBlank = t.i
					continue
				}
			}
			if isValueStop(c) {
				t.i = lastNonBlank
				return
			}
			if t.i > start && isBlank(d[t.i-1]) {
				if c == '#' || (c == '/' && t.i+1 < n && d[t.i+1] == '*') {
					t.i = lastNonBlank
					return
				}
			}
		}
		t.i++
		if !isBlank(c) {
			lastNonBlank = t.i
		}
	}
	if ctx == ValueContext {
		t.i = lastNonBlank
	}
}

// isHex4 reports whether d starts with the four hex digits of a \u
// escape.
func isHex4(d []byte) bool {
	if len(d) < 4 {
		return false
	}
	for _, c := range d[:4] {
		switch {
		case '0' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
		default:
			return false
		}
	}
	return true
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isKeyStop(c byte) bool {
	switch c {
	case '=', ':', '{', '}', '[', ']', '(', ')', ',', ';', '"', '\'', '#':
		return true
	}
	return false
}

func isParamStop(c byte) bool {
	switch c {
	case '=', ',', '(', ')', '"', '\'', ';':
		return true
	}
	return false
}

func isValueStop(c byte) bool {
	switch c {
	case ';', ',', '\n', ']', '}':
		return true
	}
	return false
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func isNameByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// Reset moves the tokenizer back to an offset previously returned by
// Offset.
func (t *Tokenizer) Reset(off int) {
	t.i = off
}
