package lexer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	mkerrors "github.com/pipe01/mukuro/errors"
)

const (
	commentChar = '#'

	DefaultMaxLines      = 10000
	DefaultMaxLineLength = 4096
)

type LexerError struct {
	Inner    error
	Location Location
	Line     string
}

func (e *LexerError) Unwrap() error {
	return e.Inner
}

func (e *LexerError) Error() string {
	return fmt.Sprintf("%s at %s", e.Inner, &e.Location)
}

func (e *LexerError) At() Location {
	return e.Location
}

func (e *LexerError) RawLine() string {
	return e.Line
}

// Lexer classifies the lines of a MukuroL file. Blank lines and comment lines
// are dropped, every other line is kept with its depth and source position.
type Lexer struct {
	filename string
	file     []byte

	// Zero means no limit.
	MaxLines, MaxLineLength int

	line  int
	kept  int
	err   *LexerError
	atEOF bool
}

func New(file []byte, fileName string) *Lexer {
	return &Lexer{
		file:          file,
		filename:      fileName,
		MaxLines:      DefaultMaxLines,
		MaxLineLength: DefaultMaxLineLength,
	}
}

// Next returns the next kept line. ok is false once the input is exhausted.
func (l *Lexer) Next() (line Line, ok bool, err error) {
	if l.err != nil {
		return Line{}, false, l.err
	}

	for !l.atEOF {
		raw := l.readLine()
		lineNum := l.line
		l.line++

		text := strings.TrimSpace(raw)
		if text == "" || text[0] == commentChar {
			continue
		}

		loc := Location{File: l.filename, Line: lineNum}

		if l.MaxLineLength > 0 && len(raw) > l.MaxLineLength {
			return Line{}, false, l.fail(&mkerrors.ResourceLimitError{Limit: "line length", Max: l.MaxLineLength}, loc, raw)
		}

		l.kept++
		if l.MaxLines > 0 && l.kept > l.MaxLines {
			return Line{}, false, l.fail(&mkerrors.ResourceLimitError{Limit: "line count", Max: l.MaxLines}, loc, raw)
		}

		depth := leadingWhitespace(raw)
		loc.Column = depth

		return Line{
			Start: loc,
			Depth: depth,
			Raw:   raw,
			Text:  text,
		}, true, nil
	}

	return Line{}, false, nil
}

// Collect reads every kept line.
func (l *Lexer) Collect() ([]Line, error) {
	// Blank and comment lines don't count towards MaxLines, so the newline
	// count alone can't size the slice when a limit is set.
	size := bytes.Count(l.file, []byte{'\n'}) + 1
	if l.MaxLines > 0 && size > l.MaxLines {
		size = l.MaxLines
	}

	lines := make([]Line, 0, size)

	for {
		line, ok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		lines = append(lines, line)
	}

	return lines, nil
}

func (l *Lexer) fail(inner error, loc Location, raw string) *LexerError {
	l.err = &LexerError{
		Inner:    inner,
		Location: loc,
		Line:     raw,
	}
	return l.err
}

func (l *Lexer) readLine() string {
	idx := bytes.IndexByte(l.file, '\n')

	var line []byte
	if idx < 0 {
		line = l.file
		l.file = nil
		l.atEOF = true
	} else {
		line = l.file[:idx]
		l.file = l.file[idx+1:]
	}

	line = bytes.TrimSuffix(line, []byte{'\r'})

	return string(line)
}

func leadingWhitespace(s string) int {
	n := 0

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if !unicode.IsSpace(r) {
			break
		}

		n++
		s = s[size:]
	}

	return n
}
