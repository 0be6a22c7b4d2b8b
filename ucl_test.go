package ucl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/go-ucl/gomap"
	"github.com/signadot/go-ucl/parse"
)

func TestParseScenarios(t *testing.T) {
	tests := []struct {
		in    string
		flags Flags
		exp   any
	}{
		{in: `a = 1; b = "x";`, exp: map[string]any{"a": int64(1), "b": "x"}},
		{in: `arr = [1, 2, 3];`, exp: map[string]any{"arr": []any{int64(1), int64(2), int64(3)}}},
		{in: `mixed = [1, "two", 3.5]`, exp: map[string]any{"mixed": []any{int64(1), "two", 3.5}}},
		{in: `i = -7`, exp: map[string]any{"i": int64(-7)}},
		{in: `f = 0.1`, exp: map[string]any{"f": 0.1}},
		{in: `s = "nul\u0000byte"`, exp: map[string]any{"s": "nul\x00byte"}},
		{in: `b = on`, exp: map[string]any{"b": true}},
		{in: `n = null`, exp: map[string]any{"n": nil}},
		{in: `t = 1min`, exp: map[string]any{"t": 60.0}},
		{in: `t = 1min`, flags: NoTime, exp: map[string]any{"t": "1min"}},
		{in: `a = 1; a = 2`, exp: map[string]any{"a": []any{int64(1), int64(2)}}},
		{in: `Key = 1`, flags: KeyLowercase, exp: map[string]any{"key": int64(1)}},
		{in: `empty {}; list []`, exp: map[string]any{"empty": map[string]any{}, "list": []any{}}},
		{in: `one = [x]`, exp: map[string]any{"one": []any{"x"}}},
		{in: `[1, {a = b}]`, exp: []any{int64(1), map[string]any{"a": "b"}}},
		{in: ``, exp: map[string]any{}},
		{in: `a = 1`, flags: 1 << 20, exp: map[string]any{"a": int64(1)}},
		{in: `a = 1`, flags: -1 &^ KeySymbol, exp: map[string]any{"a": int64(1)}},
		{in: `t = 1min`, flags: Flags(-1) &^ KeySymbol, exp: map[string]any{"t": "1min"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseString(tt.in, tt.flags)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.exp, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseKeySymbol(t *testing.T) {
	got, err := Parse([]byte("a = 1;"), KeySymbol)
	if err != nil {
		t.Fatal(err)
	}
	m, ok := got.(map[gomap.Symbol]any)
	if !ok {
		t.Fatalf("expected symbol keys, got %T", got)
	}
	if len(m) != 1 || m[gomap.Intern("a")] != int64(1) {
		t.Errorf("got %v", m)
	}
	for k := range m {
		if k.String() != "a" {
			t.Errorf("key %q", k)
		}
	}
}

func TestParseErrorScenario(t *testing.T) {
	before := parse.Live()
	for range 50 {
		got, err := ParseString("a = ;")
		if got != nil {
			t.Fatalf("expected no value, got %v", got)
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("expected *ParseError, got %v", err)
		}
		if pe.Message == "" {
			t.Error("empty message")
		}
	}
	for _, in := range []string{`a = "open`, `a { b = 1`, `}`, `a = "\u12"`} {
		if _, err := ParseString(in); !errors.As(err, new(*ParseError)) {
			t.Errorf("%s: expected *ParseError, got %v", in, err)
		}
	}
	if parse.Live() != before {
		t.Error("parser handles leaked")
	}
}

func TestInvalidArguments(t *testing.T) {
	if _, err := ParseValue(3); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := ParseValue("a = 1", "a = 2"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for bad flags, got %v", err)
	}
	if _, err := ParseValue("a = 1", 1.5); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for float flags, got %v", err)
	}
	if _, err := Parse([]byte("a = 1"), 0, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for two flags, got %v", err)
	}
	if _, err := LoadFileValue(42); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for path, got %v", err)
	}
	if err := SetDefaultFlagsValue("a = 1"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for default flags, got %v", err)
	}
	for _, f := range []any{-1, uint64(1) << 63, int8(-128)} {
		if _, err := ParseValue([]byte("a = 1"), f); err != nil {
			t.Errorf("%v: unknown bits must be masked, got %v", f, err)
		}
	}
	got, err := ParseValue("a = 1", "KEY_SYMBOL|no_time")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.(map[gomap.Symbol]any); !ok {
		t.Errorf("expected symbol keys, got %T", got)
	}
}

func TestDefaultFlags(t *testing.T) {
	if DefaultFlags() != 0 {
		t.Fatalf("default flags start at 0, got %s", DefaultFlags())
	}
	defer SetDefaultFlags(0)
	for _, f := range []Flags{KeySymbol, NoTime | KeyLowercase, -1, 1 << 40, 0} {
		SetDefaultFlags(f)
		if got := DefaultFlags(); got != f {
			t.Errorf("expected %s, got %s", f, got)
		}
	}
	if err := SetDefaultFlagsValue(uint8(NoTime)); err != nil {
		t.Fatal(err)
	}
	if got := DefaultFlags(); got != NoTime {
		t.Errorf("expected NO_TIME, got %s", got)
	}
	SetDefaultFlags(NoTime)
	got, err := ParseString("t = 5s")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]any{"t": "5s"}, got); diff != "" {
		t.Errorf("default flags not applied (-want +got):\n%s", diff)
	}
}

func TestEffectiveParserFlags(t *testing.T) {
	tests := []struct {
		in  Flags
		exp parse.Flags
	}{
		{0, parse.NoImplicitArrays},
		{KeySymbol, parse.NoImplicitArrays},
		{KeyLowercase | KeySymbol, parse.KeyLowercase | parse.NoImplicitArrays},
		{NoTime | DisableMacro | NoFileVars, parse.NoTime | parse.DisableMacro | parse.NoFileVars | parse.NoImplicitArrays},
		{^Flags(0) &^ (1 << 62), parse.KeyLowercase | parse.NoTime | parse.DisableMacro | parse.NoFileVars | parse.NoImplicitArrays},
		{1 << 1, parse.NoImplicitArrays},
	}
	for _, tt := range tests {
		if got := EffectiveParserFlags(tt.in); got != tt.exp {
			t.Errorf("%s: expected %d, got %d", tt.in, tt.exp, got)
		}
	}
}

func TestFlagsOf(t *testing.T) {
	tests := []struct {
		in  any
		exp Flags
		err bool
	}{
		{0, 0, false},
		{int64(KeySymbol), KeySymbol, false},
		{uint8(1), KeyLowercase, false},
		{NoTime, NoTime, false},
		{"NO_TIME | key_lowercase", NoTime | KeyLowercase, false},
		{"0x400", KeySymbol, false},
		{"", 0, false},
		{"BOGUS", 0, true},
		{-4, -4, false},
		{uint64(1) << 63, Flags(-1 << 63), false},
		{"-1", -1, false},
		{"0xffffffffffffffff", -1, false},
		{uintptr(NoTime), NoTime, false},
		{nil, 0, true},
		{true, 0, true},
	}
	for _, tt := range tests {
		got, err := FlagsOf(tt.in)
		if tt.err {
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("%v: expected ErrInvalidArgument, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.exp {
			t.Errorf("%v: expected %s, got %s %v", tt.in, tt.exp, got, err)
		}
	}
}

func TestFlagsString(t *testing.T) {
	for f, exp := range map[Flags]string{
		0:                      "0",
		KeySymbol:              "KEY_SYMBOL",
		NoTime | KeyLowercase:  "KEY_LOWERCASE|NO_TIME",
		DisableMacro | 1<<1:    "DISABLE_MACRO|0x2",
	} {
		if got := f.String(); got != exp {
			t.Errorf("expected %s, got %s", exp, got)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.conf")
	if err := os.WriteFile(path, []byte(`path = "x";`), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]any{"path": "x"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	buf, err := ParseString(`path = "x";`)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(buf, got); diff != "" {
		t.Errorf("file and buffer differ (-buf +file):\n%s", diff)
	}
}

func TestLoadFileVars(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.conf")
	doc := "dir = \"$CURDIR\"\nname = $FILENAME\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]any{"dir": dir, "name": path}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	got, err = LoadFile(path, NoFileVars)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]any{"dir": "$CURDIR", "name": "$FILENAME"}, got); diff != "" {
		t.Errorf("NoFileVars mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileInclude(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"main.conf":   "server { .include \"server.conf\" }\nport = 80",
		"server.conf": "host = localhost; port = 8080",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := LoadFileValue([]byte(filepath.Join(dir, "main.conf")))
	if err != nil {
		t.Fatal(err)
	}
	exp := map[string]any{
		"server": map[string]any{"host": "localhost", "port": int64(8080)},
		"port":   int64(80),
	}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	got, err = LoadFile(filepath.Join(dir, "main.conf"), DisableMacro)
	if err != nil {
		t.Fatal(err)
	}
	exp = map[string]any{"server": map[string]any{}, "port": int64(80)}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("DisableMacro mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.conf"))
	var pe *ParseError
	if !errors.As(err, &pe) || !errors.Is(err, parse.ErrNoInput) {
		t.Errorf("expected ParseError wrapping ErrNoInput, got %v", err)
	}
}

func TestLoaderVars(t *testing.T) {
	l := Loader{Vars: map[string]string{"ENV": "prod"}}
	got, err := l.ParseString(`env = "${ENV}-1"`)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]any{"env": "prod-1"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	got, err = (Loader{Flags: -2}).ParseString(`A = 1`)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]any{"a": int64(1)}, got); diff != "" {
		t.Errorf("negative flags mismatch (-want +got):\n%s", diff)
	}
}

func TestLoaderDecode(t *testing.T) {
	type server struct {
		Host    string   `json:"host"`
		Port    int      `json:"port"`
		Timeout float64  `json:"timeout"`
		Tags    []string `json:"tags"`
	}
	type config struct {
		Server server `json:"server"`
	}
	doc := "server {\n  host = $HOST\n  port = 8k\n  timeout = 1.5s\n  tags = [a, b]\n}\n"
	l := Loader{Flags: KeySymbol, Vars: map[string]string{"HOST": "example.com"}}
	exp := config{Server: server{Host: "example.com", Port: 8000, Timeout: 1.5, Tags: []string{"a", "b"}}}

	var got config
	if err := l.Decode([]byte(doc), &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	path := filepath.Join(t.TempDir(), "server.conf")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	got = config{}
	if err := l.DecodeFile(path, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("file mismatch (-want +got):\n%s", diff)
	}

	if err := l.Decode([]byte("server {"), &got); !errors.As(err, new(*ParseError)) {
		t.Errorf("expected *ParseError, got %v", err)
	}
	var wrong struct {
		Server string `json:"server"`
	}
	var de *gomap.DecodeError
	if err := l.Decode([]byte(doc), &wrong); !errors.As(err, &de) {
		t.Errorf("expected *gomap.DecodeError, got %v", err)
	}
}
