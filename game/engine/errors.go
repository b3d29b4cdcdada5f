package engine

import "errors"

var (
	ErrInvalidPosition   = errors.New("position outside board")
	ErrIllegalSelection  = errors.New("unit not owned by this controller")
	ErrMoveUnavailable   = errors.New("move unavailable")
	ErrOutOfRangeTarget  = errors.New("target out of range")
	ErrAttackUnavailable = errors.New("attack unavailable")
	ErrIllegalTarget     = errors.New("illegal attack target")
	ErrUnknownUnit       = errors.New("unknown unit")
	ErrUnknownCommand    = errors.New("unknown command")
	ErrInvalidScenario   = errors.New("invalid scenario")
)
