package token

import "bytes"

type Keyword int

const (
	KwTrue Keyword = iota
	KwFalse
	KwNull
)

var keywords = []struct {
	text []byte
	kw   Keyword
}{
	{[]byte("true"), KwTrue},
	{[]byte("yes"), KwTrue},
	{[]byte("on"), KwTrue},
	{[]byte("false"), KwFalse},
	{[]byte("no"), KwFalse},
	{[]byte("off"), KwFalse},
	{[]byte("null"), KwNull},
}

// ParseKeyword recognizes the boolean and null atoms, ignoring case.
func ParseKeyword(d []byte) (Keyword, bool) {
	for _, k := range keywords {
		if bytes.EqualFold(d, k.text) {
			return k.kw, true
		}
	}
	return 0, false
}
