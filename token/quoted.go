package token

import (
	"encoding/hex"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// NeedsQuote reports whether v must be quoted to be read back as the same
// string by the tokenizer.
func NeedsQuote(v string) bool {
	if v == "" {
		return true
	}
	if strings.ContainsAny(v, " \t\r\n\"'{}[](),;=:#$\\") {
		return true
	}
	if v[0] == '.' || strings.HasPrefix(v, "<<") {
		return true
	}
	if n, err := ParseNumber([]byte(v), true); err != nil || n.Kind != NotNumber {
		return true
	}
	if _, ok := ParseKeyword([]byte(v)); ok {
		return true
	}
	for _, r := range v {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}

// Quote renders v as a double quoted string.
func Quote(v string) string {
	d := make([]byte, 1, len(v)+2)
	d[0] = '"'
	ucs := []byte{0, 0}
	cps := []byte{0, 0, 0, 0}
	for i := 0; i < len(v); {
		r, sz := utf8.DecodeRuneInString(v[i:])
		if r == utf8.RuneError && sz == 1 {
			// keep raw bytes, strings are byte strings
			d = append(d, v[i])
			i++
			continue
		}
		i += sz
		switch r {
		case '"':
			d = append(d, '\\', '"')
		case '\\':
			d = append(d, '\\', '\\')
		case '$':
			d = append(d, '$', '$')
		case '\b':
			d = append(d, '\\', 'b')
		case '\f':
			d = append(d, '\\', 'f')
		case '\n':
			d = append(d, '\\', 'n')
		case '\r':
			d = append(d, '\\', 'r')
		case '\t':
			d = append(d, '\\', 't')
		default:
			if unicode.IsControl(r) {
				ucs[0] = byte(r >> 8)
				ucs[1] = byte(r)
				cps = hex.AppendEncode(cps[:0], ucs)
				d = append(d, '\\', 'u', cps[0], cps[1], cps[2], cps[3])
			} else {
				d = utf8.AppendRune(d, r)
			}
		}
	}
	d = append(d, '"')
	return string(d)
}

// UnescapeJSON resolves JSON escapes in the content of a double quoted
// string.  Unknown escapes yield the escaped character itself.
func UnescapeJSON(d []byte) string {
	b := &strings.Builder{}
	b.Grow(len(d))
	i := 0
	for i < len(d) {
		c := d[i]
		i++
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i == len(d) {
			b.WriteByte('\\')
			break
		}
		c = d[i]
		i++
		switch c {
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'f':
			b.WriteByte('\f')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'u':
			r, n := hexRune(d[i:])
			i += n
			if utf16.IsSurrogate(r) && i+1 < len(d) && d[i] == '\\' && d[i+1] == 'u' {
				r2, n2 := hexRune(d[i+2:])
				if dec := utf16.DecodeRune(r, r2); dec != utf8.RuneError {
					r = dec
					i += 2 + n2
				}
			}
			b.WriteRune(r)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func hexRune(d []byte) (rune, int) {
	if len(d) < 4 {
		return utf8.RuneError, 0
	}
	dst := []byte{0, 0}
	if _, err := hex.Decode(dst, d[:4]); err != nil {
		return utf8.RuneError, 0
	}
	return rune(dst[0])<<8 | rune(dst[1]), 4
}

// UnescapeSingle resolves the escapes of a single quoted string: \' and
// a backslash-newline continuation.  Every other byte is literal.
func UnescapeSingle(d []byte) string {
	b := &strings.Builder{}
	b.Grow(len(d))
	for i := 0; i < len(d); i++ {
		c := d[i]
		if c == '\\' && i+1 < len(d) {
			switch d[i+1] {
			case '\'':
				b.WriteByte('\'')
				i++
				continue
			case '\n':
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
