package ir

import (
	"errors"
)

var (
	ErrReleased = errors.New("node released")
	ErrModified = errors.New("container modified during iteration")
	ErrClosed   = errors.New("iterator closed")
	ErrNotArray = errors.New("not an array")
	ErrNotObj   = errors.New("not an object")
)
