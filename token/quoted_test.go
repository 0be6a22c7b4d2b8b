package token

import "testing"

func TestUnescapeJSON(t *testing.T) {
	tests := map[string]string{
		`plain`:          "plain",
		`a\nb\tc`:        "a\nb\tc",
		`q\"q`:           `q"q`,
		`back\\slash`:    `back\slash`,
		`\/`:             "/",
		`é`:         "é",
		`😀`:   "😀",
		`nul\u0000byte`:  "nul\x00byte",
		`unknown\q`:      "unknownq",
		`trailing\`:      `trailing\`,
	}
	for in, exp := range tests {
		if got := UnescapeJSON([]byte(in)); got != exp {
			t.Errorf("%s: expected %q, got %q", in, exp, got)
		}
	}
}

func TestUnescapeSingle(t *testing.T) {
	tests := map[string]string{
		`it\'s`:        "it's",
		`raw\n`:        `raw\n`,
		"cont\\\ninue": "continue",
		`x\\y`:         `x\\y`,
		`end\`:         `end\`,
	}
	for in, exp := range tests {
		if got := UnescapeSingle([]byte(in)); got != exp {
			t.Errorf("%q: expected %q, got %q", in, exp, got)
		}
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	for _, s := range []string{"", "a b", "tab\there", `"q"`, "$HOME", "nul\x00"} {
		q := Quote(s)
		if q[0] != '"' || q[len(q)-1] != '"' {
			t.Fatalf("not quoted: %s", q)
		}
		un := UnescapeJSON([]byte(q[1 : len(q)-1]))
		if s == "$HOME" {
			if un != "$$HOME" {
				t.Errorf("expected $ doubled, got %q", un)
			}
			continue
		}
		if un != s {
			t.Errorf("expected %q, got %q", s, un)
		}
	}
}

func TestNeedsQuote(t *testing.T) {
	for s, exp := range map[string]bool{
		"plain": false, "": true, "a b": true, "10": true,
		"true": true, "10s": true, "x=y": true, ".macro": true,
	} {
		if got := NeedsQuote(s); got != exp {
			t.Errorf("%q: expected %v", s, exp)
		}
	}
}
