// Package resub performs regex search-and-replace driven by replacement
// templates supplied at run time. Templates reference capture groups by
// number ($1, ${2}) and escape $ and \ with a backslash; they are parsed
// into data and rendered per match, never evaluated as code, so
// user-supplied replacement strings carry no injection surface.
//
// The regex engine is a collaborator, not part of this package: anything
// implementing Pattern works, including *regexp.Regexp.
package resub

import (
	"strings"
	"unicode/utf8"

	"github.com/KromDaniel/resub/template"
)

// Pattern is the matching capability the substitution engine requires.
// FindStringSubmatchIndex must return the leftmost match as index pairs in
// stdlib regexp layout (pairs[0:2] is the full match, pairs[2*g:2*g+2] is
// group g, -1 for groups that did not participate), or nil for no match.
// *regexp.Regexp satisfies this interface.
//
// Resumed searches are performed against a tail slice of the input, so a
// pattern anchored with ^ sees every resume point as the start of text.
type Pattern interface {
	FindStringSubmatchIndex(s string) []int
}

// Replacer binds a pattern to a compiled replacement template. The template
// is parsed once in New and reused for every match of every input, which is
// the cheap path when the same rewrite is applied repeatedly.
type Replacer struct {
	pattern Pattern
	tmpl    *template.Template
}

// New compiles tmpl and returns a reusable Replacer. Template syntax errors
// are reported here, before any input is matched.
func New(pattern Pattern, tmpl string) (*Replacer, error) {
	t, err := template.Parse(tmpl)
	if err != nil {
		return nil, err
	}
	return &Replacer{pattern: pattern, tmpl: t}, nil
}

// Template returns the compiled replacement template.
func (r *Replacer) Template() *template.Template {
	return r.tmpl
}

// ReplaceAllString replaces every non-overlapping match in input with the
// rendered template.
func (r *Replacer) ReplaceAllString(input string) (string, error) {
	return r.replace(input, true)
}

// ReplaceFirstString replaces only the first match in input.
func (r *Replacer) ReplaceFirstString(input string) (string, error) {
	return r.replace(input, false)
}

// replace is a single forward pass over input: unmatched spans are copied
// verbatim into the result and each match is replaced by the rendered
// template. Both cursors only ever advance, so replacement text is never
// rescanned for further matches. Zero-width match handling follows stdlib
// regexp: an empty match immediately after the previous match is skipped,
// and the search always advances by at least one rune.
func (r *Replacer) replace(input string, global bool) (string, error) {
	var b strings.Builder
	searchPos := 0
	lastMatchEnd := 0

	for searchPos <= len(input) {
		m := r.pattern.FindStringSubmatchIndex(input[searchPos:])
		if m == nil {
			break
		}
		start, end := searchPos+m[0], searchPos+m[1]

		b.WriteString(input[lastMatchEnd:start])

		// Don't render for an empty match directly after the previous
		// match; patterns matching both empty and nonempty strings would
		// otherwise replace twice at the same position.
		replaced := false
		if end > lastMatchEnd || start == 0 {
			captures := make([]string, 0, len(m)/2-1)
			for g := 1; g < len(m)/2; g++ {
				lo, hi := m[2*g], m[2*g+1]
				if lo < 0 {
					// Group did not participate in the match.
					captures = append(captures, "")
				} else {
					captures = append(captures, input[searchPos+lo:searchPos+hi])
				}
			}

			rendered, err := r.tmpl.Render(captures)
			if err != nil {
				return "", err
			}
			b.WriteString(rendered)
			replaced = true
		}
		lastMatchEnd = end

		_, width := utf8.DecodeRuneInString(input[searchPos:])
		switch {
		case searchPos+width > end:
			searchPos += width
		case searchPos+1 > end:
			searchPos++
		default:
			searchPos = end
		}

		if !global && replaced {
			break
		}
	}

	b.WriteString(input[lastMatchEnd:])
	return b.String(), nil
}

// ReplaceAllString replaces every non-overlapping match of pattern in input
// with the expansion of tmpl. The template is parsed before matching begins,
// so a malformed template fails even when the pattern never matches.
func ReplaceAllString(input string, pattern Pattern, tmpl string) (string, error) {
	r, err := New(pattern, tmpl)
	if err != nil {
		return "", err
	}
	return r.ReplaceAllString(input)
}

// ReplaceFirstString replaces the first match of pattern in input with the
// expansion of tmpl.
func ReplaceFirstString(input string, pattern Pattern, tmpl string) (string, error) {
	r, err := New(pattern, tmpl)
	if err != nil {
		return "", err
	}
	return r.ReplaceFirstString(input)
}
