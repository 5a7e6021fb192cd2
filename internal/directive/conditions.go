package directive

import "strings"

// Conditions is the parsed condition list of an import:
//
//	@import "x.css" layer(base) supports(display: grid) screen and (min-width: 40em);
type Conditions struct {
	Layer    string // Layer name; empty for an anonymous layer
	HasLayer bool
	Supports string // Condition inside supports(...)
	Media    string // Media query list
}

// ParseConditions splits a raw condition list. Anything that is not a
// leading layer or supports() clause is taken as the media query list.
func ParseConditions(s string) Conditions {
	var c Conditions
	rest := strings.TrimSpace(s)

	lower := strings.ToLower(rest)
	switch {
	case strings.HasPrefix(lower, "layer("):
		if inner, tail, ok := parenthesized(rest[len("layer"):]); ok {
			c.Layer, c.HasLayer = strings.TrimSpace(inner), true
			rest = tail
		}
	case lower == "layer" || strings.HasPrefix(lower, "layer "):
		c.HasLayer = true
		rest = rest[len("layer"):]
	}

	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(strings.ToLower(rest), "supports(") {
		if inner, tail, ok := parenthesized(rest[len("supports"):]); ok {
			c.Supports = strings.TrimSpace(inner)
			rest = tail
		}
	}

	c.Media = strings.TrimSpace(rest)
	return c
}

// IsZero reports whether no condition is set.
func (c Conditions) IsZero() bool {
	return !c.HasLayer && c.Supports == "" && c.Media == ""
}

// Wrap nests content in the rules the conditions stand for: @media
// innermost, then @supports, then @layer.
func (c Conditions) Wrap(content string) string {
	if c.Media != "" {
		content = "@media " + c.Media + "{" + content + "}"
	}
	if c.Supports != "" {
		content = "@supports (" + c.Supports + "){" + content + "}"
	}
	if c.HasLayer {
		if c.Layer == "" {
			content = "@layer{" + content + "}"
		} else {
			content = "@layer " + c.Layer + "{" + content + "}"
		}
	}
	return content
}

// parenthesized splits s, which must start with "(", at its matching ")".
// It returns the text between the parentheses and what follows them.
func parenthesized(s string) (inner, tail string, ok bool) {
	if !strings.HasPrefix(s, "(") {
		return "", s, false
	}
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[1:i], s[i+1:], true
			}
		}
	}
	return "", s, false
}
