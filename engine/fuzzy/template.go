package fuzzy

import (
	"fmt"
	"strconv"
	"strings"
)

// template is a parsed replacement string. Pieces with group < 0 are
// literal text.
type template []piece

type piece struct {
	text  string
	group int
}

// parseTemplate parses a replacement in the Python re style:
//
//	\1 .. \99     group by number
//	\g<n>         group by number (including 0)
//	\g<name>      group by name
//	\n \t \r \f \v \a \b \\   control characters and a backslash
//	\0            NUL
//
// Escapes of other ASCII letters are errors; any other escaped character is
// kept with its backslash.
func (p *program) parseTemplate(s string) (template, error) {
	var (
		t   template
		lit strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			t = append(t, piece{text: lit.String(), group: -1})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			lit.WriteByte(c)
			continue
		}
		i++
		if i == len(s) {
			return nil, fmt.Errorf("bad escape (end of template) at position %d", i-1)
		}
		c = s[i]
		switch {
		case c == 'g':
			if i+1 >= len(s) || s[i+1] != '<' {
				return nil, fmt.Errorf("missing < at position %d", i+1)
			}
			end := strings.IndexByte(s[i+2:], '>')
			if end < 0 {
				return nil, fmt.Errorf("missing >, unterminated name at position %d", i+2)
			}
			name := s[i+2 : i+2+end]
			g, err := p.groupRef(name)
			if err != nil {
				return nil, err
			}
			flush()
			t = append(t, piece{group: g})
			i += 2 + end
		case c == '0':
			lit.WriteByte(0)
		case c >= '1' && c <= '9':
			ref := s[i : i+1]
			if i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9' {
				ref = s[i : i+2]
			}
			g, _ := strconv.Atoi(ref)
			if g > p.numGroups {
				return nil, fmt.Errorf("invalid group reference %d at position %d", g, i)
			}
			flush()
			t = append(t, piece{group: g})
			i += len(ref) - 1
		case c == '\\':
			lit.WriteByte('\\')
		case strings.IndexByte("ntrfvab", c) >= 0:
			lit.WriteByte("\n\t\r\f\v\a\b"[strings.IndexByte("ntrfvab", c)])
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
			return nil, fmt.Errorf("bad escape \\%c at position %d", c, i-1)
		default:
			lit.WriteByte('\\')
			lit.WriteByte(c)
		}
	}
	flush()
	return t, nil
}

func (p *program) groupRef(name string) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("missing group name")
	}
	if g, err := strconv.Atoi(name); err == nil {
		if g < 0 || g > p.numGroups {
			return 0, fmt.Errorf("invalid group reference %d", g)
		}
		return g, nil
	}
	for g, n := range p.names {
		if g > 0 && n == name {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown group name %q", name)
}

// expand appends the template to b using byte offsets caps into text.
// Groups that did not participate expand to nothing.
func (t template) expand(b *strings.Builder, text string, caps []int) {
	for _, pc := range t {
		if pc.group < 0 {
			b.WriteString(pc.text)
			continue
		}
		if s, e := caps[2*pc.group], caps[2*pc.group+1]; s >= 0 {
			b.WriteString(text[s:e])
		}
	}
}
