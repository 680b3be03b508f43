package lexer

import "fmt"

// Line is a single non-blank, non-comment line of MukuroL source.
type Line struct {
	Start Location
	Depth int

	// Raw is the line as it appeared in the source, without the line terminator.
	Raw string
	// Text is Raw with surrounding whitespace removed.
	Text string
}

// Command returns the leading keyword of the line and the remainder after it.
func (l *Line) Command() (command, rest string) {
	command, rest, _ = cutSpace(l.Text)
	return command, rest
}

type Location struct {
	File string

	// 0-based
	Line, Column int
}

func (l *Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line+1, l.Column+1)
}
