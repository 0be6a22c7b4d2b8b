package gomap

import "unique"

// Symbol is an interned key.  Symbols made from the same text are ==.
type Symbol struct {
	h unique.Handle[string]
}

func Intern(s string) Symbol {
	return Symbol{h: unique.Make(s)}
}

func (s Symbol) String() string {
	if s == (Symbol{}) {
		return ""
	}
	return s.h.Value()
}

func (s Symbol) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Symbol) UnmarshalText(d []byte) error {
	*s = Intern(string(d))
	return nil
}
