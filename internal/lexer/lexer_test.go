package lexer

import (
	"errors"
	"runtime"
	"strings"
	"testing"

	mkerrors "github.com/pipe01/mukuro/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect(t *testing.T) {
	src := "page title:Home\n\n  # a comment\n  box\r\n\t\tbutton Go\n   \n"

	lines, err := New([]byte(src), "home.mkl").Collect()
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, "page title:Home", lines[0].Text)
	assert.Equal(t, 0, lines[0].Depth)
	assert.Equal(t, 0, lines[0].Start.Line)

	assert.Equal(t, "box", lines[1].Text)
	assert.Equal(t, "  box", lines[1].Raw)
	assert.Equal(t, 2, lines[1].Depth)
	assert.Equal(t, 3, lines[1].Start.Line)

	assert.Equal(t, 2, lines[2].Depth, "tabs count as one character each")
	assert.Equal(t, 4, lines[2].Start.Line)
	assert.Equal(t, "home.mkl:5:3", lines[2].Start.String())
}

func TestCollectBlankLinesBounded(t *testing.T) {
	src := []byte(strings.Repeat("\n", 5_000_000) + "box")

	l := New(src, "blank.mkl")
	l.MaxLines = 10

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)

	lines, err := l.Collect()

	runtime.ReadMemStats(&after)

	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.LessOrEqual(t, cap(lines), 10)
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20), "allocation grows with blank lines")
}

func TestCollectEmpty(t *testing.T) {
	for _, src := range []string{"", "\n\n", "# only a comment", "   "} {
		lines, err := New([]byte(src), "x").Collect()
		require.NoError(t, err)
		assert.Empty(t, lines, "source %q", src)
	}
}

func TestCommand(t *testing.T) {
	cases := []struct {
		text, command, rest string
	}{
		{"page title:Test", "page", "title:Test"},
		{"button", "button", ""},
		{"textfield label:First name", "textfield", "label:First name"},
	}

	for _, c := range cases {
		l := Line{Text: c.text}
		command, rest := l.Command()
		assert.Equal(t, c.command, command)
		assert.Equal(t, c.rest, rest)
	}
}

func TestLimits(t *testing.T) {
	t.Run("line count", func(t *testing.T) {
		l := New([]byte("box\nbox\n# skipped\nbox\n"), "x")
		l.MaxLines = 2

		_, err := l.Collect()
		require.Error(t, err)

		var lexErr *LexerError
		require.True(t, errors.As(err, &lexErr))
		assert.Equal(t, 3, lexErr.At().Line)
		assert.Equal(t, "box", lexErr.RawLine())

		var limitErr *mkerrors.ResourceLimitError
		require.True(t, errors.As(err, &limitErr))
		assert.Equal(t, 2, limitErr.Max)
	})

	t.Run("line length", func(t *testing.T) {
		l := New([]byte("box text:aaaaaaaaaaaaaaaa"), "x")
		l.MaxLineLength = 10

		_, err := l.Collect()
		assert.Equal(t, mkerrors.KindResourceLimit, mkerrors.KindOf(err))
	})

	t.Run("disabled", func(t *testing.T) {
		l := New([]byte("box\nbox\nbox"), "x")
		l.MaxLines = 0

		lines, err := l.Collect()
		require.NoError(t, err)
		assert.Len(t, lines, 3)
	})
}
