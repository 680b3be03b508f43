package lexer

import "strings"

// cutSpace splits s around the first single space.
func cutSpace(s string) (before, after string, found bool) {
	return strings.Cut(s, " ")
}
