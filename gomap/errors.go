package gomap

import (
	"errors"
	"fmt"
)

// ErrIteration reports that walking a container failed part way.  It
// carries no detail about which element failed.
var ErrIteration = errors.New("traversal failed")

// DecodeError reports a failure to decode materialized values into a Go
// value.
type DecodeError struct {
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: %s", e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
