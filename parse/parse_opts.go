package parse

import "path/filepath"

type parseOpts struct {
	flags    Flags
	vars     map[string]string
	filename string
}

func (o *parseOpts) dir() string {
	abs, err := filepath.Abs(o.filename)
	if err != nil {
		return ""
	}
	return filepath.Dir(abs)
}

type ParseOption func(*parseOpts)

func ParseFlags(f Flags) ParseOption {
	return func(o *parseOpts) { o.flags = f }
}

// ParseVariable registers a variable for expansion.
func ParseVariable(name, value string) ParseOption {
	return func(o *parseOpts) {
		if o.vars == nil {
			o.vars = map[string]string{}
		}
		o.vars[name] = value
	}
}

// ParseFilename names the document for error messages, file variables and
// relative includes.  The file itself is not read.
func ParseFilename(name string) ParseOption {
	return func(o *parseOpts) { o.filename = name }
}
