package ir

import "sync/atomic"

var liveIters atomic.Int64

// LiveIters reports the number of iterators which have not been closed.
func LiveIters() int64 {
	return liveIters.Load()
}

// Iter walks the children of an object or array in document order.
//
// Iteration is safe with respect to the tree's lifetime: if the tree is
// released or the container is modified while an Iter is open, Next
// returns false and Err reports why.  Every Iter must be closed exactly
// once.
type Iter struct {
	node   *Node
	i      int
	gen    uint64
	err    error
	closed bool
}

func (y *Node) Iterate() *Iter {
	liveIters.Add(1)
	return &Iter{node: y, i: -1, gen: y.gen}
}

func (it *Iter) Next() bool {
	if it.err != nil {
		return false
	}
	if it.closed {
		it.err = ErrClosed
		return false
	}
	if it.node.Released() {
		it.err = ErrReleased
		return false
	}
	if it.node.gen != it.gen {
		it.err = ErrModified
		return false
	}
	if it.i+1 >= len(it.node.Values) {
		return false
	}
	it.i++
	return true
}

// Key returns the key of the current object member, or "" for arrays.
func (it *Iter) Key() string {
	if it.node.Type != ObjectType {
		return ""
	}
	return it.node.Fields[it.i].String
}

func (it *Iter) Value() *Node {
	return it.node.Values[it.i]
}

func (it *Iter) Err() error {
	return it.err
}

func (it *Iter) Close() {
	if it.closed {
		panic("ir: iterator closed twice")
	}
	it.closed = true
	liveIters.Add(-1)
}
