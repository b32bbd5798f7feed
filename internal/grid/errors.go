package grid

import (
	"errors"
	"fmt"
)

// Kind classifies a grid failure.
type Kind int

const (
	// KindInvalidArgument covers bad counts, unknown enum values and non-text cells.
	KindInvalidArgument Kind = iota + 1
	// KindOutOfRange covers row or column indexes outside the current bounds.
	KindOutOfRange
	// KindInvalidState covers operations that would break a structural invariant.
	KindInvalidState
)

// Sentinels for errors.Is matching. Every *Error matches the sentinel of its Kind.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrOutOfRange      = errors.New("index out of range")
	ErrInvalidState    = errors.New("invalid state")
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindOutOfRange:
		return "out of range"
	case KindInvalidState:
		return "invalid state"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is returned by every failing grid operation.
type Error struct {
	Op   string // operation name, e.g. "DeleteRow"
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("grid: %s: %s: %s", e.Op, e.Kind, e.Msg)
}

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindInvalidArgument:
		return target == ErrInvalidArgument
	case KindOutOfRange:
		return target == ErrOutOfRange
	case KindInvalidState:
		return target == ErrInvalidState
	}
	return false
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return 0
}

func invalidArgument(op, format string, args ...any) error {
	return &Error{Op: op, Kind: KindInvalidArgument, Msg: fmt.Sprintf(format, args...)}
}

func outOfRange(op, format string, args ...any) error {
	return &Error{Op: op, Kind: KindOutOfRange, Msg: fmt.Sprintf(format, args...)}
}

func invalidState(op, format string, args ...any) error {
	return &Error{Op: op, Kind: KindInvalidState, Msg: fmt.Sprintf(format, args...)}
}
