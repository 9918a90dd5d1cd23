// Package template provides parsing and rendering of regex replacement
// templates. A template is plain text mixed with numbered backreferences
// ($1, ${2}, ...) and backslash escapes for the two special characters
// ($ and \). Templates are parsed into a segment list and rendered against
// capture groups as pure data; replacement text is never evaluated as code.
package template

// SegmentType indicates the type of segment in a replacement template.
type SegmentType int

const (
	// SegmentLiteral represents literal text (no capture reference).
	SegmentLiteral SegmentType = iota
	// SegmentBackref represents a reference to a capture group by index ($1, ${2}, etc.).
	SegmentBackref
)

// Segment represents a parsed segment of a replacement template.
type Segment struct {
	Type    SegmentType
	Literal string // For SegmentLiteral: the literal text
	Backref int    // For SegmentBackref: 0-based capture index ($1 is stored as 0)
}

// Template represents a fully parsed replacement template.
// It is immutable after Parse and may be rendered any number of times.
type Template struct {
	Original string
	Segments []Segment
}

// Parse parses a replacement template string into segments.
// Template syntax:
//   - $1, $2, ..., or ${1}, ${2}, ...: capture group by 1-based index
//   - \$: literal dollar sign
//   - \\: literal backslash
//   - Everything else: literal text
//
// Capture references are not validated against any particular pattern here;
// an out-of-range reference surfaces at Render time.
func Parse(template string) (*Template, error) {
	result := &Template{
		Original: template,
		Segments: make([]Segment, 0),
	}

	if len(template) == 0 {
		return result, nil
	}

	i := 0
	literalStart := 0

	// flushLiteral pushes the pending literal run, merging into the previous
	// segment when it is also a literal. Escaped characters re-enter the run
	// through appendLiteral, so a template like `a\$b` stays one segment.
	flushLiteral := func(end int) {
		if end > literalStart {
			result.appendLiteral(template[literalStart:end])
		}
	}

	for i < len(template) {
		c := template[i]
		if c != '$' && c != '\\' {
			i++
			continue
		}

		flushLiteral(i)

		if c == '\\' {
			if i+1 >= len(template) {
				return nil, &SyntaxError{Kind: TrailingEscape, Pos: i}
			}
			next := template[i+1]
			if next != '$' && next != '\\' {
				return nil, &SyntaxError{Kind: IllegalEscapeChar, Pos: i + 1, Char: next}
			}
			result.appendLiteral(string(next))
			i += 2
			literalStart = i
			continue
		}

		// c == '$'
		seg, consumed, err := parseBackref(template, i)
		if err != nil {
			return nil, err
		}
		result.Segments = append(result.Segments, seg)
		i += consumed
		literalStart = i
	}

	flushLiteral(i)

	return result, nil
}

// appendLiteral adds literal text, coalescing with a trailing literal segment.
func (t *Template) appendLiteral(text string) {
	if n := len(t.Segments); n > 0 && t.Segments[n-1].Type == SegmentLiteral {
		t.Segments[n-1].Literal += text
		return
	}
	t.Segments = append(t.Segments, Segment{Type: SegmentLiteral, Literal: text})
}

// parseBackref parses $N or ${N} starting at template[start]='$'.
// N is a positive decimal integer with no leading zero.
// Returns the segment and the number of bytes consumed.
func parseBackref(template string, start int) (Segment, int, error) {
	i := start + 1
	if i >= len(template) {
		return Segment{}, 0, &SyntaxError{Kind: InvalidBackrefSyntax, Pos: start}
	}

	braced := template[i] == '{'
	if braced {
		i++
	}

	n, digits := scanPositiveInt(template[i:])
	if digits == 0 {
		e := &SyntaxError{Kind: InvalidBackrefSyntax, Pos: start}
		if i < len(template) {
			e.Char = template[i]
		}
		return Segment{}, 0, e
	}
	i += digits

	if braced {
		if i >= len(template) || template[i] != '}' {
			return Segment{}, 0, &SyntaxError{Kind: MissingClosingBrace, Pos: start}
		}
		i++
	}

	return Segment{Type: SegmentBackref, Backref: n - 1}, i - start, nil
}

// scanPositiveInt reads a maximal digit run forming a positive integer.
// Leading zero is rejected ($0 and ${01} are not valid references).
func scanPositiveInt(s string) (value, consumed int) {
	if len(s) == 0 || s[0] < '1' || s[0] > '9' {
		return 0, 0
	}
	n := 0
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	return n, i
}
