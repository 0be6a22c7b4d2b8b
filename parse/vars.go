package parse

import (
	"strings"

	"github.com/signadot/go-ucl/debug"
)

// expand substitutes registered variables in s.  $NAME and ${NAME} are
// replaced by the value of NAME, $$ is a literal '$' and references to
// unknown variables are left as written.  For the $NAME form the longest
// registered variable which prefixes the name is used, so $CURDIRx
// expands CURDIR followed by "x".
func (p *Parser) expand(s string) string {
	if strings.IndexByte(s, '$') == -1 {
		return s
	}
	b := &strings.Builder{}
	n := len(s)
	i := 0
	for i < n {
		c := s[i]
		if c != '$' || i+1 == n {
			b.WriteByte(c)
			i++
			continue
		}
		switch next := s[i+1]; {
		case next == '$':
			b.WriteByte('$')
			i += 2
		case next == '{':
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				b.WriteString(s[i:])
				i = n
				continue
			}
			name := s[i+2 : i+2+end]
			if v, ok := p.vars[name]; ok {
				b.WriteString(v)
			} else {
				b.WriteString(s[i : i+3+end])
			}
			i += 3 + end
		case isVarByte(next):
			j := i + 1
			for j < n && isVarByte(s[j]) {
				j++
			}
			name, v, ok := p.lookupPrefix(s[i+1 : j])
			if !ok {
				b.WriteString(s[i:j])
				i = j
				continue
			}
			b.WriteString(v)
			i += 1 + len(name)
		default:
			b.WriteByte(c)
			i++
		}
	}
	res := b.String()
	if debug.Vars() {
		debug.Logf("expanded %q to %q\n", s, res)
	}
	return res
}

func (p *Parser) lookupPrefix(run string) (string, string, bool) {
	if v, ok := p.vars[run]; ok {
		return run, v, true
	}
	best := ""
	for name := range p.vars {
		if len(name) > len(best) && strings.HasPrefix(run, name) {
			best = name
		}
	}
	if best == "" {
		return "", "", false
	}
	return best, p.vars[best], true
}

func isVarByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
