package fuzzy

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// regionPrefix names the capture groups that mark fuzzy regions in the
// rewritten pattern. User groups may not use it.
const regionPrefix = "__fz"

// annotate finds the fuzzy constraints in pattern and rewrites each
// constrained item into a named group regexp/syntax can parse:
//
//	(rust){e<=2}  ->  (?P<__fz0>(rust))
//	a+{i}         ->  (?P<__fz0>a+)
//
// A constraint applies to the item just before it: a group, a class, an
// escape or a single character, together with any quantifier. The i-th
// returned constraint belongs to group __fz<i>.
func annotate(pattern string) (string, []*constraint, error) {
	type open struct {
		at, seq int
	}
	var (
		cons   []*constraint
		opens  []open
		closes = map[int]int{} // constraint start -> end
		groups []int
	)
	itemStart := -1
	setItem := func(start int) { itemStart = start }

	for i := 0; i < len(pattern); {
		switch c := pattern[i]; c {
		case '\\':
			start := i
			i = skipEscape(pattern, i)
			setItem(start)
		case '[':
			start := i
			i = skipClass(pattern, i)
			setItem(start)
		case '(':
			groups = append(groups, i)
			i++
			itemStart = -1
		case ')':
			i++
			if len(groups) == 0 {
				itemStart = -1
				continue
			}
			setItem(groups[len(groups)-1])
			groups = groups[:len(groups)-1]
		case '|':
			i++
			itemStart = -1
		case '*', '+', '?':
			i++
		case '{':
			end := strings.IndexByte(pattern[i:], '}')
			if end < 0 {
				setItem(i)
				i++
				continue
			}
			end += i
			body := pattern[i+1 : end]
			if !isConstraintBody(body) {
				if isRepeatBody(body) {
					i = end + 1
				} else {
					// Literal brace.
					setItem(i)
					i++
				}
				continue
			}
			if itemStart < 0 {
				return "", nil, fmt.Errorf("fuzzy constraint {%s} has nothing to apply to", body)
			}
			c, err := parseConstraint(body)
			if err != nil {
				return "", nil, err
			}
			opens = append(opens, open{at: itemStart, seq: len(cons)})
			closes[i] = end + 1
			cons = append(cons, c)
			i = end + 1
		default:
			_, w := utf8.DecodeRuneInString(pattern[i:])
			setItem(i)
			i += w
		}
	}

	if len(cons) == 0 {
		return pattern, nil, nil
	}

	// Constraints recorded later enclose earlier ones that start at the
	// same offset, so their groups open first.
	sort.SliceStable(opens, func(a, b int) bool {
		if opens[a].at != opens[b].at {
			return opens[a].at < opens[b].at
		}
		return opens[a].seq > opens[b].seq
	})

	var b strings.Builder
	b.Grow(len(pattern) + 16*len(cons))
	next := 0
	for i := 0; i <= len(pattern); {
		for next < len(opens) && opens[next].at == i {
			b.WriteString("(?P<" + regionPrefix + strconv.Itoa(opens[next].seq) + ">")
			next++
		}
		if i == len(pattern) {
			break
		}
		if end, ok := closes[i]; ok {
			b.WriteByte(')')
			i = end
			continue
		}
		b.WriteByte(pattern[i])
		i++
	}
	return b.String(), cons, nil
}

// isRepeatBody reports whether body is a counted repetition: n, n, or n,m.
func isRepeatBody(body string) bool {
	lo, hi, comma := body, "", false
	if i := strings.IndexByte(body, ','); i >= 0 {
		lo, hi, comma = body[:i], body[i+1:], true
	}
	if !isDigits(lo) {
		return false
	}
	return !comma || hi == "" || isDigits(hi)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// skipEscape returns the offset just past the escape sequence at i.
func skipEscape(p string, i int) int {
	i++ // backslash
	if i >= len(p) {
		return i
	}
	c := p[i]
	i++
	switch c {
	case 'p', 'P', 'x':
		if i < len(p) && p[i] == '{' {
			if end := strings.IndexByte(p[i:], '}'); end >= 0 {
				return i + end + 1
			}
			return len(p)
		}
		if c == 'x' {
			return min(i+2, len(p))
		}
		return min(i+1, len(p))
	case 'Q':
		if end := strings.Index(p[i:], `\E`); end >= 0 {
			return i + end + 2
		}
		return len(p)
	}
	if c >= 0x80 {
		_, w := utf8.DecodeRuneInString(p[i-1:])
		return i - 1 + w
	}
	return i
}

// skipClass returns the offset just past the character class at i.
func skipClass(p string, i int) int {
	i++ // [
	if i < len(p) && p[i] == '^' {
		i++
	}
	if i < len(p) && p[i] == ']' {
		i++
	}
	for i < len(p) {
		switch {
		case p[i] == '\\':
			i = skipEscape(p, i)
		case strings.HasPrefix(p[i:], "[:"):
			if end := strings.Index(p[i+2:], ":]"); end >= 0 {
				i += end + 4
			} else {
				i++
			}
		case p[i] == ']':
			return i + 1
		default:
			i++
		}
	}
	return i
}
