package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for _, f := range AllFormats() {
		pf, err := ParseFormat(f.String())
		if err != nil {
			t.Fatal(err)
		}
		if pf != f {
			t.Errorf("expected %s, got %s", f, pf)
		}
	}
	if _, err := ParseFormat("toml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
}

func TestFromSuffix(t *testing.T) {
	for name, exp := range map[string]Format{
		"a/b.json":    JSONFormat,
		"x.yml":       YAMLFormat,
		"nginx.conf":  UCLFormat,
		"dir.json/x":  UCLFormat,
	} {
		got, _ := FromSuffix(name)
		if got != exp {
			t.Errorf("%s: expected %s, got %s", name, exp, got)
		}
	}
	if _, ok := FromSuffix("noext"); ok {
		t.Error("no extension should not match")
	}
}
