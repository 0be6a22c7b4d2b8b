package token

import (
	"fmt"
)

type TokenType int

const (
	TEOF TokenType = iota
	TLCurl
	TRCurl
	TLSquare
	TRSquare
	TLParen
	TRParen
	TComma
	TSemi
	TKVSep
	TString
	TSQString
	THeredoc
	TAtom
	TMacro
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TEOF:      "TEOF",
		TLCurl:    "TLCurl",
		TRCurl:    "TRCurl",
		TLSquare:  "TLSquare",
		TRSquare:  "TRSquare",
		TLParen:   "TLParen",
		TRParen:   "TRParen",
		TComma:    "TComma",
		TSemi:     "TSemi",
		TKVSep:    "TKVSep",
		TString:   "TString",
		TSQString: "TSQString",
		THeredoc:  "THeredoc",
		TAtom:     "TAtom",
		TMacro:    "TMacro",
	}[t]
}

type Token struct {
	Type TokenType
	Pos  *Pos
	// Bytes holds the token text.  For TString and TSQString it is the
	// still escaped content between the quotes, for THeredoc the body and
	// for TMacro the name without the leading '.'.
	Bytes []byte
	// NL is set when at least one newline separates the token from the
	// previous one.
	NL bool
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

// Describe renders the token for error messages.
func (t *Token) Describe() string {
	switch t.Type {
	case TEOF:
		return "end of input"
	case TString:
		return `"` + string(t.Bytes) + `"`
	case TSQString:
		return "'" + string(t.Bytes) + "'"
	case THeredoc:
		return "heredoc"
	case TMacro:
		return "." + string(t.Bytes)
	default:
		return "'" + string(t.Bytes) + "'"
	}
}

type TokenizeErr struct {
	Err error
	Pos Pos
}

func (t *TokenizeErr) Unwrap() error {
	return t.Err
}

func NewTokenizeErr(e error, p *Pos) *TokenizeErr {
	return &TokenizeErr{Err: e, Pos: *p}
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}

func ExpectedErr(what string, p *Pos) error {
	return NewTokenizeErr(fmt.Errorf("expected %s", what), p)
}
func UnexpectedErr(what string, p *Pos) error {
	return NewTokenizeErr(fmt.Errorf("%w %s", ErrUnexpected, what), p)
}
