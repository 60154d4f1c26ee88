package routing

import "strings"

const wildcard = "*"

// Pattern is a compiled glob where only '*' is special. It matches any run
// of characters, including an empty one. Matching is anchored and case
// sensitive.
type Pattern struct {
	raw   string
	parts []string
}

// CompilePattern splits the pattern on '*' once so that matching does not
// reparse it on every event.
func CompilePattern(raw string) Pattern {
	return Pattern{
		raw:   raw,
		parts: strings.Split(raw, wildcard),
	}
}

func (p Pattern) String() string {
	return p.raw
}

// Match reports whether text matches the whole pattern.
func (p Pattern) Match(text string) bool {
	if len(p.parts) == 1 {
		return text == p.raw
	}

	first := p.parts[0]
	last := p.parts[len(p.parts)-1]

	if len(text) < len(first)+len(last) {
		return false
	}

	if !strings.HasPrefix(text, first) || !strings.HasSuffix(text, last) {
		return false
	}

	// prefix and suffix are fixed; middle literals are matched leftmost first
	rest := text[len(first) : len(text)-len(last)]

	for _, part := range p.parts[1 : len(p.parts)-1] {
		if part == "" {
			continue
		}

		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}

		rest = rest[idx+len(part):]
	}

	return true
}
