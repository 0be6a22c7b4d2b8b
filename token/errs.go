package token

import (
	"errors"
)

var (
	ErrUnterminated = errors.New("unterminated")
	ErrBadEscape    = errors.New("bad escape")
	ErrBadUnicode   = errors.New("bad unicode")
	ErrNewline      = errors.New("unexpected newline")
	ErrRange        = errors.New("numeric value out of range")
	ErrUnexpected   = errors.New("unexpected character")
)
