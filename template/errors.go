package template

import "fmt"

// SyntaxErrorKind identifies the class of template syntax error.
type SyntaxErrorKind int

const (
	// TrailingEscape indicates the template ends with an unfinished backslash.
	TrailingEscape SyntaxErrorKind = iota
	// IllegalEscapeChar indicates a backslash followed by a character other than $ or \.
	IllegalEscapeChar
	// MissingClosingBrace indicates a ${N reference not terminated by }.
	MissingClosingBrace
	// InvalidBackrefSyntax indicates $ or ${ not followed by a positive integer.
	InvalidBackrefSyntax
)

// SyntaxError describes a malformed replacement template.
// Pos is the byte offset of the construct that failed; Char, when nonzero,
// is the offending character.
type SyntaxError struct {
	Kind SyntaxErrorKind
	Pos  int
	Char byte
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	switch e.Kind {
	case TrailingEscape:
		return fmt.Sprintf("template: trailing escape at position %d", e.Pos)
	case IllegalEscapeChar:
		return fmt.Sprintf("template: illegal escape character %q at position %d (only \\$ and \\\\ are allowed)", e.Char, e.Pos)
	case MissingClosingBrace:
		return fmt.Sprintf("template: missing closing brace for reference at position %d", e.Pos)
	case InvalidBackrefSyntax:
		if e.Char != 0 {
			return fmt.Sprintf("template: invalid backreference at position %d: unexpected %q", e.Pos, e.Char)
		}
		return fmt.Sprintf("template: invalid backreference at position %d", e.Pos)
	}
	return fmt.Sprintf("template: syntax error at position %d", e.Pos)
}

// BackrefOutOfRangeError indicates a template referenced a capture group
// beyond what the match produced. Requested is the 1-based group number as
// written in the template; Available is the number of capture groups.
type BackrefOutOfRangeError struct {
	Requested int
	Available int
}

// Error implements the error interface.
func (e *BackrefOutOfRangeError) Error() string {
	return fmt.Sprintf("template: backreference $%d out of range: match has %d capture group(s)", e.Requested, e.Available)
}
