package generator

import (
	"testing"

	mkerrors "github.com/pipe01/mukuro/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGridPosition(t *testing.T) {
	cases := []struct {
		input    string
		col, row Placement
	}{
		{"1-3/2", Placement{1, 4}, Placement{2, 3}},
		{"5/1", Placement{5, 6}, Placement{1, 2}},
		{"1-10/1-2", Placement{1, 11}, Placement{1, 3}},
		{" 2 / 3 ", Placement{2, 3}, Placement{3, 4}},
	}

	for _, c := range cases {
		col, row, err := ParseGridPosition(c.input)
		require.NoError(t, err, c.input)
		assert.Equal(t, c.col, col, c.input)
		assert.Equal(t, c.row, row, c.input)
	}
}

func TestParseGridPositionErrors(t *testing.T) {
	for _, input := range []string{"abc/1", "1", "1/2/3", "", "1-/2", "-1/2", "1-2-3/1", "1/x-2"} {
		_, _, err := ParseGridPosition(input)
		assert.Equal(t, mkerrors.KindStructuralFormat, mkerrors.KindOf(err), "input %q", input)
	}
}

func TestPlacementString(t *testing.T) {
	assert.Equal(t, "1 / 4", Placement{1, 4}.String())
}
