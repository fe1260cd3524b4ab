package cpp

import (
	"errors"
	"fmt"
)

// ErrRedefinition is returned when a define or macro name is registered twice.
var ErrRedefinition = errors.New("macro redefinition")

type ErrorLoc struct {
	Err error
	Pos FilePos
}

func ErrWithLoc(e error, pos FilePos) error {
	return ErrorLoc{
		Err: e,
		Pos: pos,
	}
}

func (e ErrorLoc) Error() string {
	return fmt.Sprintf("%s at %s", e.Err, e.Pos)
}

func (e ErrorLoc) Unwrap() error {
	return e.Err
}
