package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/scott-cotton/cli"
	"github.com/signadot/go-ucl"
	"github.com/signadot/go-ucl/encode"
	"github.com/signadot/go-ucl/format"
)

func TestDefine(t *testing.T) {
	vars := map[string]string{}
	for _, a := range []string{"A=1", "B=x=y", "C="} {
		if err := define(vars, a); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff(map[string]string{"A": "1", "B": "x=y", "C": ""}, vars); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	for _, a := range []string{"", "A", "=1"} {
		if err := define(vars, a); err == nil {
			t.Errorf("%q: expected error", a)
		}
	}
}

func TestLoaderFromConfig(t *testing.T) {
	cfg := &MainConfig{Flags: "NO_TIME", Vars: map[string]string{"X": "y"}}
	l, err := cfg.loader()
	if err != nil {
		t.Fatal(err)
	}
	if l.Flags != ucl.NoTime || l.Vars["X"] != "y" {
		t.Errorf("got %+v", l)
	}
	cfg.Flags = "NOPE"
	if _, err := cfg.loader(); err == nil {
		t.Error("expected error")
	}
}

func TestEachArg(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.conf")
	if err := os.WriteFile(path, []byte("a = $X"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := ucl.Loader{Vars: map[string]string{"X": "from-var"}}
	in := strings.NewReader("b = [1, 2]")
	buf := &bytes.Buffer{}
	wire := []encode.EncodeOption{encode.EncodeWire(true)}
	err := eachArg(l, in, buf, []string{path, "-"}, wire, func(v any) (any, error) {
		return v, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	exp := "{a = \"from-var\";}\n---\n{b [1, 2,]}\n"
	if buf.String() != exp {
		t.Errorf("expected\n%q\ngot\n%q", exp, buf.String())
	}
	if err := eachArg(l, nil, buf, []string{filepath.Join(dir, "missing")}, wire, nil); err == nil {
		t.Error("expected error")
	}
}

func TestDiffValues(t *testing.T) {
	a, err := ucl.ParseString("a = 1; b = x")
	if err != nil {
		t.Fatal(err)
	}
	b, err := ucl.ParseString("a = 2; b = x")
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	differs, err := diffValues(buf, a, a, nil)
	if err != nil || differs || buf.Len() != 0 {
		t.Fatalf("equal configs: %v %v %q", differs, err, buf.String())
	}
	differs, err = diffValues(buf, a, b, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !differs || buf.String() != "~ $.a: 1 -> 2\n" {
		t.Errorf("got %v %q", differs, buf.String())
	}
}

func TestPatch(t *testing.T) {
	cfg := &PatchConfig{MainConfig: &MainConfig{}, String: true}
	l := ucl.Loader{}
	ops, err := getPatch(cfg, l, `[
		{op = "replace", path = "/server/port", value = 9090},
		{op = "add", path = "/server/tags/-", value = "b"},
		{op = "remove", path = "/debug"},
	]`)
	if err != nil {
		t.Fatal(err)
	}
	v, err := l.ParseString(`server { port = 80; tags = [a]; ratio = 0.5 } debug = true`)
	if err != nil {
		t.Fatal(err)
	}
	got, err := applyPatch(ops, v)
	if err != nil {
		t.Fatal(err)
	}
	exp := map[string]any{
		"server": map[string]any{"port": int64(9090), "tags": []any{"a", "b"}, "ratio": 0.5},
	}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	bad, err := getPatch(cfg, l, `[{op = "test", path = "/debug", value = false}]`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := applyPatch(bad, v); err == nil {
		t.Error("expected error")
	}
	if _, err := getPatch(cfg, l, `[`); err == nil {
		t.Error("expected error")
	}
}

func TestWriteFlags(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := writeFlags(buf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(ucl.FlagNames()) {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[len(lines)-1], "KEY_SYMBOL") {
		t.Errorf("expected KEY_SYMBOL last, got %q", lines[len(lines)-1])
	}
}

func TestOutFormatFromSuffix(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		j    bool
		exp  format.Format
	}{
		{"out.json", false, format.JSONFormat},
		{"out.yaml", false, format.YAMLFormat},
		{"out.conf", false, format.UCLFormat},
		{"out", false, format.UCLFormat},
		{"out.yaml", true, format.JSONFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &MainConfig{J: tt.j}
			if _, err := cfg.outOpt(&cli.Context{}, filepath.Join(dir, tt.name)); err != nil {
				t.Fatal(err)
			}
			defer cfg.CloseOut()
			if got := cfg.format(); got != tt.exp {
				t.Errorf("expected %s, got %s", tt.exp, got)
			}
		})
	}
}
