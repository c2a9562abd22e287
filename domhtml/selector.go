package domhtml

import (
	"fmt"
	"strings"
)

// selectorList is a comma-separated list of selectors; an element
// matches the list if it matches any one of them (CSS selector-list
// semantics), e.g. "p, div, article".
type selectorList struct {
	alternatives []*selector
}

// selector is a descendant-combinator chain of compound selectors, e.g.
// "div.content a[href]" parses to two steps: {tag: div, class: content}
// then {tag: a, attrs: [href]}. This covers the subset the engine's test
// corpus exercises (tag name, #id, .class, simple attribute-equals,
// descendant combinators, and comma-separated selector lists), not full
// CSS3 — see spec.md §6 ("any DOM implementation satisfying this shape
// works").
type selector struct {
	steps []compoundSelector
}

type attrMatch struct {
	name   string
	value  string
	hasVal bool
}

type compoundSelector struct {
	tag     string
	id      string
	classes []string
	attrs   []attrMatch
}

func parseSelectorList(s string) (*selectorList, error) {
	parts := strings.Split(s, ",")
	list := &selectorList{}
	for _, p := range parts {
		sel, err := parseSelector(p)
		if err != nil {
			return nil, err
		}
		list.alternatives = append(list.alternatives, sel)
	}
	return list, nil
}

func (l *selectorList) matches(el *Element) bool {
	for _, alt := range l.alternatives {
		if alt.matches(el) {
			return true
		}
	}
	return false
}

func parseSelector(s string) (*selector, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty selector")
	}
	sel := &selector{}
	for _, f := range fields {
		cs, err := parseCompound(f)
		if err != nil {
			return nil, err
		}
		sel.steps = append(sel.steps, cs)
	}
	return sel, nil
}

func parseCompound(s string) (compoundSelector, error) {
	var cs compoundSelector
	i := 0
	n := len(s)
	// Leading tag name (letters, digits, '-', or the '*' wildcard).
	start := i
	for i < n && isTagChar(s[i]) {
		i++
	}
	if i > start {
		cs.tag = s[start:i]
	}
	for i < n {
		switch s[i] {
		case '#':
			i++
			start = i
			for i < n && isIdentChar(s[i]) {
				i++
			}
			cs.id = s[start:i]
		case '.':
			i++
			start = i
			for i < n && isIdentChar(s[i]) {
				i++
			}
			cs.classes = append(cs.classes, s[start:i])
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return cs, fmt.Errorf("unterminated attribute selector in %q", s)
			}
			body := s[i+1 : i+end]
			i += end + 1
			if eq := strings.IndexByte(body, '='); eq >= 0 {
				name := body[:eq]
				val := strings.Trim(body[eq+1:], `"'`)
				cs.attrs = append(cs.attrs, attrMatch{name: name, value: val, hasVal: true})
			} else {
				cs.attrs = append(cs.attrs, attrMatch{name: body})
			}
		default:
			return cs, fmt.Errorf("unexpected character %q in selector %q", s[i], s)
		}
	}
	return cs, nil
}

func isTagChar(b byte) bool {
	return b == '*' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '-'
}

func isIdentChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '-' || b == '_'
}

func (cs compoundSelector) matches(el *Element) bool {
	if cs.tag != "" && cs.tag != "*" && !strings.EqualFold(cs.tag, el.TagName()) {
		return false
	}
	if cs.id != "" {
		v, ok := el.Attr("id")
		if !ok || v != cs.id {
			return false
		}
	}
	if len(cs.classes) > 0 {
		v, ok := el.Attr("class")
		if !ok {
			return false
		}
		have := strings.Fields(v)
		for _, want := range cs.classes {
			found := false
			for _, h := range have {
				if h == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	for _, a := range cs.attrs {
		v, ok := el.Attr(a.name)
		if !ok {
			return false
		}
		if a.hasVal && v != a.value {
			return false
		}
	}
	return true
}

// matches reports whether el satisfies the full descendant chain: the
// last step must match el itself, and each preceding step must match
// some ancestor, in order, walking upward.
func (s *selector) matches(el *Element) bool {
	if len(s.steps) == 0 {
		return false
	}
	last := s.steps[len(s.steps)-1]
	if !last.matches(el) {
		return false
	}
	cur := el
	for i := len(s.steps) - 2; i >= 0; i-- {
		step := s.steps[i]
		found := false
		for p := cur.Parent(); p != nil; {
			pe, ok := p.(*Element)
			if !ok {
				break
			}
			if step.matches(pe) {
				cur = pe
				found = true
				break
			}
			p = pe.Parent()
		}
		if !found {
			return false
		}
	}
	return true
}
