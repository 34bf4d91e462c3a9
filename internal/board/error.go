package board

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateOperation = errors.New("duplicate operation")
	ErrOperationFailure   = errors.New("operation failure")
	ErrMineHit            = errors.New("mine hit")
	ErrOutOfRange         = errors.New("position out of range")
	ErrInvalidParams      = errors.New("invalid board params")
)

type Kind int

const (
	KindNone Kind = iota
	KindDuplicateOperation
	KindOperationFailure
	KindMineHit
	KindOutOfRange
	KindInvalidParams
	KindUnknown
)

var kindErrors = map[Kind]error{
	KindDuplicateOperation: ErrDuplicateOperation,
	KindOperationFailure:   ErrOperationFailure,
	KindMineHit:            ErrMineHit,
	KindOutOfRange:         ErrOutOfRange,
	KindInvalidParams:      ErrInvalidParams,
}

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindDuplicateOperation:
		return "duplicate_operation"
	case KindOperationFailure:
		return "operation_failure"
	case KindMineHit:
		return "mine_hit"
	case KindOutOfRange:
		return "out_of_range"
	case KindInvalidParams:
		return "invalid_params"
	default:
		return "unknown"
	}
}

// Fatal reports whether the outcome ends the game.
func (k Kind) Fatal() bool {
	return k == KindMineHit
}

// KindOf classifies err. A nil error is [KindNone].
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	for k, e := range kindErrors {
		if errors.Is(err, e) {
			return k
		}
	}
	return KindUnknown
}

type Action string

const (
	ActionOpen   Action = "open"
	ActionMark   Action = "mark"
	ActionUnmark Action = "unmark"
	ActionQuery  Action = "query"
)

// OpError is returned by every failing cell operation.
type OpError struct {
	Action Action
	X, Y   int
	Kind   Kind
}

// [OpError] implements [error]
func (e *OpError) Error() string {
	return fmt.Sprintf("%s %d:%d: %s", e.Action, e.X, e.Y, kindErrors[e.Kind])
}

func (e *OpError) Unwrap() error {
	return kindErrors[e.Kind]
}

func opError(action Action, x, y int, kind Kind) error {
	return &OpError{Action: action, X: x, Y: y, Kind: kind}
}
