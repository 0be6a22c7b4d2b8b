package eval

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrBadPath = errors.New("bad path")
	ErrNoPath  = errors.New("no such path")
)

// GetPath returns the value at path in v.  A path is a sequence of .name,
// ['quoted name'] and [index] steps, optionally starting with $.
func GetPath(v any, path string) (any, error) {
	rest := strings.TrimPrefix(path, "$")
	if rest != "" && rest[0] != '.' && rest[0] != '[' && !strings.HasPrefix(path, "$") {
		rest = "." + rest
	}
	cur := v
	for rest != "" {
		var (
			key   string
			index = -1
		)
		switch rest[0] {
		case '.':
			rest = rest[1:]
			end := strings.IndexAny(rest, ".[")
			if end < 0 {
				end = len(rest)
			}
			key, rest = rest[:end], rest[end:]
			if key == "" {
				return nil, fmt.Errorf("%w: empty field in %q", ErrBadPath, path)
			}
		case '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated [ in %q", ErrBadPath, path)
			}
			inner := rest[1:end]
			if len(inner) >= 2 && inner[0] == '\'' && inner[len(inner)-1] == '\'' {
				key = inner[1 : len(inner)-1]
				rest = rest[end+1:]
				break
			}
			n, err := strconv.Atoi(inner)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: bad index %q in %q", ErrBadPath, inner, path)
			}
			index = n
			rest = rest[end+1:]
		default:
			return nil, fmt.Errorf("%w: unexpected %q in %q", ErrBadPath, rest[0], path)
		}
		next, err := step(cur, key, index)
		if err != nil {
			return nil, fmt.Errorf("%w at %q", err, path)
		}
		cur = next
	}
	return cur, nil
}

func step(v any, key string, index int) (any, error) {
	if index >= 0 {
		a, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: [%d] of %T", ErrNoPath, index, v)
		}
		if index >= len(a) {
			return nil, fmt.Errorf("%w: index %d out of range", ErrNoPath, index)
		}
		return a[index], nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: field %q of %T", ErrNoPath, key, v)
	}
	res, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("%w: no field %q", ErrNoPath, key)
	}
	return res, nil
}
