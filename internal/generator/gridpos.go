package generator

import (
	"fmt"
	"strconv"
	"strings"

	mkerrors "github.com/pipe01/mukuro/errors"
	"github.com/pipe01/mukuro/internal/css"
)

// Placement is a grid line range, End is exclusive.
type Placement struct {
	Start, End int
}

func (p Placement) String() string {
	return fmt.Sprintf("%d / %d", p.Start, p.End)
}

// ParseGridPosition parses a "col/row" token where each side is a cell number
// or an inclusive "start-end" range.
func ParseGridPosition(s string) (col, row Placement, err error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return col, row, &mkerrors.StructuralFormatError{
			Attribute: "gpos",
			Value:     s,
			Reason:    "expected 'col_range/row_range'",
		}
	}

	if col, err = parseRange(parts[0]); err != nil {
		return col, row, &mkerrors.StructuralFormatError{Attribute: "gpos", Value: s, Reason: err.Error()}
	}
	if row, err = parseRange(parts[1]); err != nil {
		return col, row, &mkerrors.StructuralFormatError{Attribute: "gpos", Value: s, Reason: err.Error()}
	}

	return col, row, nil
}

func parseRange(s string) (Placement, error) {
	startStr, endStr, isRange := strings.Cut(s, "-")

	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil {
		return Placement{}, fmt.Errorf("invalid number %q", startStr)
	}

	if !isRange {
		return Placement{Start: start, End: start + 1}, nil
	}

	end, err := strconv.Atoi(strings.TrimSpace(endStr))
	if err != nil {
		return Placement{}, fmt.Errorf("invalid number %q", endStr)
	}

	return Placement{Start: start, End: end + 1}, nil
}

func gridPositionRules(s string) ([]css.Declaration, error) {
	col, row, err := ParseGridPosition(s)
	if err != nil {
		return nil, err
	}

	return []css.Declaration{
		css.Decl("grid-column", col.String()),
		css.Decl("grid-row", row.String()),
	}, nil
}
