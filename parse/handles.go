package parse

import "sync/atomic"

var live atomic.Int64

// Live reports the number of parsers which have not been closed.
func Live() int64 {
	return live.Load()
}
