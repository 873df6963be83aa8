package fuzzy

import (
	"fmt"
	"strconv"
	"strings"
)

// errKind indexes the three fuzzy error types.
type errKind int

const (
	errSub errKind = iota
	errIns
	errDel
)

// counts holds error counts indexed by errKind.
type counts [3]int

func (c counts) total() int {
	return c[errSub] + c[errIns] + c[errDel]
}

// bound is an inclusive range; max < 0 is unbounded.
type bound struct {
	min, max int
}

var unbounded = bound{min: 0, max: -1}

func (b bound) allows(n int) bool {
	return b.max < 0 || n <= b.max
}

// constraint limits the errors allowed inside one fuzzy region.
type constraint struct {
	permitted [3]bool
	kind      [3]bound
	errors    bound

	// cost[k] is the cost of one error of kind k; maxCost < 0 disables the
	// cost limit.
	cost    [3]int
	maxCost int
}

// canAdd reports whether one more error of kind k stays within limits.
func (c *constraint) canAdd(cur counts, k errKind) bool {
	if !c.permitted[k] {
		return false
	}
	cur[k]++
	if !c.kind[k].allows(cur[k]) || !c.errors.allows(cur.total()) {
		return false
	}
	if c.maxCost >= 0 {
		cost := c.cost[errSub]*cur[errSub] + c.cost[errIns]*cur[errIns] + c.cost[errDel]*cur[errDel]
		if cost > c.maxCost {
			return false
		}
	}
	return true
}

// satisfied reports whether cur meets the minimums.
func (c *constraint) satisfied(cur counts) bool {
	for k := range cur {
		if cur[k] < c.kind[k].min {
			return false
		}
	}
	return cur.total() >= c.errors.min
}

func (c *constraint) String() string {
	var parts []string
	for k, name := range "sid" {
		if !c.permitted[k] {
			continue
		}
		parts = append(parts, formatBound(string(name), c.kind[k]))
	}
	parts = append(parts, formatBound("e", c.errors))
	if c.maxCost >= 0 {
		parts = append(parts, fmt.Sprintf("%ds+%di+%dd<=%d", c.cost[errSub], c.cost[errIns], c.cost[errDel], c.maxCost))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func formatBound(name string, b bound) string {
	s := name
	if b.min > 0 {
		s = strconv.Itoa(b.min) + "<=" + s
	}
	if b.max >= 0 {
		s += "<=" + strconv.Itoa(b.max)
	}
	return s
}

// isConstraintBody reports whether the text between braces is a fuzzy
// constraint rather than a counted repetition or a literal brace.
func isConstraintBody(body string) bool {
	letter := false
	for i := 0; i < len(body); i++ {
		switch c := body[i]; {
		case c == 'e' || c == 'i' || c == 'd' || c == 's':
			letter = true
		case c >= '0' && c <= '9', c == '<', c == '=', c == '+', c == ',', c == ' ':
		default:
			return false
		}
	}
	return letter
}

// parseConstraint parses the body of a fuzzy constraint such as "e<=2",
// "i<=1,s<=2", "1<=e<=3" or "2i+2d+1s<=4".
//
// When any of i, d or s is named, only the named kinds are permitted;
// otherwise every kind is.
func parseConstraint(body string) (*constraint, error) {
	c := &constraint{
		kind:    [3]bound{unbounded, unbounded, unbounded},
		errors:  unbounded,
		maxCost: -1,
	}
	var named [3]bool
	anyNamed := false

	for _, term := range strings.Split(strings.ReplaceAll(body, " ", ""), ",") {
		if term == "" {
			return nil, fmt.Errorf("empty term in fuzzy constraint {%s}", body)
		}
		parts, rels, err := splitRelations(term)
		if err != nil {
			return nil, fmt.Errorf("%v in fuzzy constraint {%s}", err, body)
		}

		var b *bound
		var lhs string
		switch len(parts) {
		case 1:
			lhs = parts[0]
		case 2:
			if n, err := strconv.Atoi(parts[0]); err == nil {
				// N<=X
				lhs = parts[1]
				b = &bound{min: lowerBound(n, rels[0]), max: -1}
			} else {
				// X<=N
				n, err := strconv.Atoi(parts[1])
				if err != nil {
					return nil, fmt.Errorf("bad limit %q in fuzzy constraint {%s}", parts[1], body)
				}
				lhs = parts[0]
				b = &bound{min: 0, max: upperBound(n, rels[0])}
			}
		case 3:
			lo, err1 := strconv.Atoi(parts[0])
			hi, err2 := strconv.Atoi(parts[2])
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("bad limits in fuzzy constraint {%s}", body)
			}
			lhs = parts[1]
			b = &bound{min: lowerBound(lo, rels[0]), max: upperBound(hi, rels[1])}
		}
		if b != nil && (b.max == emptyMax || (b.max >= 0 && b.min > b.max)) {
			return nil, fmt.Errorf("empty range in fuzzy constraint {%s}", body)
		}

		if len(lhs) == 1 {
			if lhs == "e" {
				if b != nil {
					c.errors = *b
				}
				continue
			}
			k, ok := kindOf(lhs[0])
			if !ok {
				return nil, fmt.Errorf("unknown error type %q in fuzzy constraint {%s}", lhs, body)
			}
			named[k], anyNamed = true, true
			if b != nil {
				c.kind[k] = *b
			}
			continue
		}

		// Cost equation: the limit must be an upper bound.
		if b == nil || len(parts) != 2 || b.min != 0 {
			return nil, fmt.Errorf("bad cost equation in fuzzy constraint {%s}", body)
		}
		for _, t := range strings.Split(lhs, "+") {
			if t == "" {
				return nil, fmt.Errorf("bad cost equation in fuzzy constraint {%s}", body)
			}
			k, ok := kindOf(t[len(t)-1])
			if !ok {
				return nil, fmt.Errorf("bad cost term %q in fuzzy constraint {%s}", t, body)
			}
			coef := 1
			if len(t) > 1 {
				n, err := strconv.Atoi(t[:len(t)-1])
				if err != nil {
					return nil, fmt.Errorf("bad cost term %q in fuzzy constraint {%s}", t, body)
				}
				coef = n
			}
			c.cost[k] = coef
			named[k], anyNamed = true, true
		}
		c.maxCost = b.max
	}

	if anyNamed {
		c.permitted = named
	} else {
		c.permitted = [3]bool{true, true, true}
	}
	return c, nil
}

// splitRelations splits "1<=e<3" into ["1", "e", "3"] and ["<=", "<"].
func splitRelations(term string) (parts, rels []string, err error) {
	for {
		i := strings.IndexByte(term, '<')
		if i < 0 {
			parts = append(parts, term)
			break
		}
		parts = append(parts, term[:i])
		rel := "<"
		if i+1 < len(term) && term[i+1] == '=' {
			rel = "<="
		}
		rels = append(rels, rel)
		term = term[i+len(rel):]
	}
	if len(parts) > 3 {
		return nil, nil, fmt.Errorf("too many relations")
	}
	for _, p := range parts {
		if p == "" || strings.ContainsRune(p, '=') {
			return nil, nil, fmt.Errorf("malformed term")
		}
	}
	return parts, rels, nil
}

func lowerBound(n int, rel string) int {
	if rel == "<" {
		return n + 1
	}
	return n
}

// emptyMax marks "X<0", which no count satisfies.
const emptyMax = -2

func upperBound(n int, rel string) int {
	if rel == "<" {
		if n == 0 {
			return emptyMax
		}
		return n - 1
	}
	return n
}

func kindOf(b byte) (errKind, bool) {
	switch b {
	case 's':
		return errSub, true
	case 'i':
		return errIns, true
	case 'd':
		return errDel, true
	}
	return 0, false
}
