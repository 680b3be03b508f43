package mukuro

import (
	goerrors "errors"

	mkerrors "github.com/pipe01/mukuro/errors"
	"github.com/pipe01/mukuro/internal/lexer"
)

type Location = lexer.Location

// SituatedErr is implemented by every error Compile returns: it knows where in
// the source it happened and which line caused it.
type SituatedErr interface {
	error
	Unwrap() error
	At() Location
	RawLine() string
}

// Situate returns the situated error in err's chain, if any.
func Situate(err error) (SituatedErr, bool) {
	var serr SituatedErr
	if goerrors.As(err, &serr) {
		return serr, true
	}
	return nil, false
}

// KindOf reports which kind of compilation failure err is.
func KindOf(err error) mkerrors.Kind {
	return mkerrors.KindOf(err)
}
