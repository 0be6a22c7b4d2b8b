package ucl

import (
	"fmt"

	"github.com/signadot/go-ucl/debug"
	"github.com/signadot/go-ucl/gomap"
	"github.com/signadot/go-ucl/ir"
)

// Loader parses UCL documents with fixed flags and variables.  The zero
// Loader uses no flags.
type Loader struct {
	Flags Flags
	// Vars are expanded as $NAME and ${NAME} in loaded documents.
	Vars map[string]string
}

// DefaultLoader returns a Loader with the current default flags.
func DefaultLoader() Loader {
	return Loader{Flags: DefaultFlags()}
}

func (l Loader) Parse(d []byte) (any, error) {
	node, err := parseBuffer(d, l.Flags, l.Vars)
	if err != nil {
		return nil, err
	}
	return l.materialize(node)
}

func (l Loader) ParseString(s string) (any, error) {
	return l.Parse([]byte(s))
}

// LoadFile parses the file at path.
func (l Loader) LoadFile(path string) (any, error) {
	node, err := parseFile(path, l.Flags, l.Vars)
	if err != nil {
		return nil, err
	}
	return l.materialize(node)
}

// Decode parses d and stores the result in the value pointed to by p,
// following p's json struct tags.
func (l Loader) Decode(d []byte, p any) error {
	node, err := parseBuffer(d, l.Flags, l.Vars)
	if err != nil {
		return err
	}
	defer node.Unref()
	return gomap.Decode(node, p)
}

// DecodeFile is Decode for the file at path.
func (l Loader) DecodeFile(path string, p any) error {
	node, err := parseFile(path, l.Flags, l.Vars)
	if err != nil {
		return err
	}
	defer node.Unref()
	return gomap.Decode(node, p)
}

// materialize converts node and drops the caller's reference to it.
func (l Loader) materialize(node *ir.Node) (any, error) {
	defer node.Unref()
	v, err := gomap.ToValue(node, gomap.KeySymbols(l.Flags&KeySymbol != 0))
	if err != nil {
		if debug.Convert() {
			debug.Logf("%v\n", err)
		}
		return nil, ErrIteration
	}
	return v, nil
}

func loader(flags []Flags) (Loader, error) {
	switch len(flags) {
	case 0:
		return DefaultLoader(), nil
	case 1:
		return Loader{Flags: flags[0]}, nil
	default:
		return Loader{}, fmt.Errorf("%w: %d flags arguments", ErrInvalidArgument, len(flags))
	}
}

// Parse parses a UCL document into a map[string]any (map[gomap.Symbol]any
// with KeySymbol).  At most one flags argument may be given; without one
// DefaultFlags is used.
func Parse(d []byte, flags ...Flags) (any, error) {
	l, err := loader(flags)
	if err != nil {
		return nil, err
	}
	return l.Parse(d)
}

func ParseString(s string, flags ...Flags) (any, error) {
	return Parse([]byte(s), flags...)
}

// LoadFile parses the file at path.  The document may refer to the file
// with $FILENAME and to its directory with $CURDIR unless NoFileVars is
// set.
func LoadFile(path string, flags ...Flags) (any, error) {
	l, err := loader(flags)
	if err != nil {
		return nil, err
	}
	return l.LoadFile(path)
}

// ParseValue is Parse for dynamically typed arguments.  data must be a
// []byte or a string and flags are converted with FlagsOf; anything else
// is ErrInvalidArgument.
func ParseValue(data any, flags ...any) (any, error) {
	l, err := dynLoader(flags)
	if err != nil {
		return nil, err
	}
	switch x := data.(type) {
	case []byte:
		return l.Parse(x)
	case string:
		return l.ParseString(x)
	default:
		return nil, fmt.Errorf("%w: data must be []byte or string, got %T", ErrInvalidArgument, data)
	}
}

// LoadFileValue is LoadFile for dynamically typed arguments.  path must be
// a string or a []byte.
func LoadFileValue(path any, flags ...any) (any, error) {
	l, err := dynLoader(flags)
	if err != nil {
		return nil, err
	}
	switch x := path.(type) {
	case string:
		return l.LoadFile(x)
	case []byte:
		return l.LoadFile(string(x))
	default:
		return nil, fmt.Errorf("%w: path must be string or []byte, got %T", ErrInvalidArgument, path)
	}
}

func dynLoader(flags []any) (Loader, error) {
	fs := make([]Flags, len(flags))
	for i, v := range flags {
		f, err := FlagsOf(v)
		if err != nil {
			return Loader{}, err
		}
		fs[i] = f
	}
	return loader(fs)
}
