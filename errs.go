package ucl

import (
	"errors"

	"github.com/signadot/go-ucl/gomap"
)

var (
	// ErrInvalidArgument reports an argument of the wrong shape, such as
	// non-integer flags.  Nothing is parsed when it is returned.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIteration reports that materializing the parsed tree failed.
	ErrIteration = gomap.ErrIteration
)

// ParseError reports a document the grammar engine rejected.  Message is
// the engine's message.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(err error) *ParseError {
	return &ParseError{Message: err.Error(), Err: err}
}
