package template

import "strings"

// Render builds the replacement text for one match. captures holds the
// matched text of each capture group in order; captures[0] is group $1.
// Rendering is pure: the same template may be rendered against any number
// of capture lists.
func (t *Template) Render(captures []string) (string, error) {
	var b strings.Builder
	for _, seg := range t.Segments {
		switch seg.Type {
		case SegmentLiteral:
			b.WriteString(seg.Literal)
		case SegmentBackref:
			if seg.Backref >= len(captures) {
				return "", &BackrefOutOfRangeError{
					Requested: seg.Backref + 1,
					Available: len(captures),
				}
			}
			b.WriteString(captures[seg.Backref])
		}
	}
	return b.String(), nil
}

// MaxBackref returns the largest 1-based group number the template
// references, or 0 if it references none. Callers that know the pattern's
// capture-group count ahead of time can use this to reject out-of-range
// references before any matching happens.
func (t *Template) MaxBackref() int {
	max := 0
	for _, seg := range t.Segments {
		if seg.Type == SegmentBackref && seg.Backref+1 > max {
			max = seg.Backref + 1
		}
	}
	return max
}
