package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/go-ucl/token"
)

var (
	ErrSyntax  = errors.New("syntax error")
	ErrNesting = errors.New("nesting too deep")
	ErrMacro   = errors.New("macro error")
	ErrInclude = errors.New("include error")
	ErrClosed  = errors.New("parser closed")
	ErrNoInput = errors.New("no input")
)

// Error is a positioned parse error.
type Error struct {
	File string
	Line int
	Col  int
	Err  error
}

func (e *Error) Error() string {
	file := e.File
	if file == "" {
		file = bufferName
	}
	return fmt.Sprintf("%s:%d:%d: %s", file, e.Line, e.Col, e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

func errAt(pos *token.Pos, err error) *Error {
	return &Error{
		File: pos.D.Name,
		Line: pos.Line(),
		Col:  pos.Col(),
		Err:  err,
	}
}

func fromTokenizeErr(err error) error {
	var te *token.TokenizeErr
	if errors.As(err, &te) {
		return errAt(&te.Pos, fmt.Errorf("%w: %w", ErrSyntax, te.Err))
	}
	return err
}
