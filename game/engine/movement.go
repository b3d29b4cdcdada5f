package engine

import "fmt"

// MoveKind distinguishes the three ways a unit can change position
type MoveKind string

const (
	MoveWalk       MoveKind = "move"
	MoveSprint     MoveKind = "sprint"
	MoveOvercharge MoveKind = "overcharge_move"
)

// MoveStatus reports what a consumed move attempt did to the unit
type MoveStatus string

const (
	// MoveApplied means the unit now stands on the target
	MoveApplied MoveStatus = "applied"
	// MoveIgnored means the target was out of range; the unit stayed but the move was spent
	MoveIgnored MoveStatus = "ignored"
)

// MoveResult describes a consumed move attempt
type MoveResult struct {
	Kind       MoveKind   `json:"kind"`
	Status     MoveStatus `json:"status"`
	From       Position   `json:"from"`
	To         Position   `json:"to"`
	Target     Position   `json:"target"`
	Facing     Facing     `json:"facing"`
	Distance   int        `json:"distance"`
	Allowance  int        `json:"allowance"`
	HealthCost int        `json:"health_cost,omitempty"`
}

// Err returns ErrOutOfRangeTarget when the target was out of reach
func (r MoveResult) Err() error {
	if r.Status == MoveIgnored {
		return fmt.Errorf("%w: %s is %d steps away, allowance %d", ErrOutOfRangeTarget, r.Target, r.Distance, r.Allowance)
	}
	return nil
}

// Reachable lists the cells u can move to this turn and the cells only a
// sprint reaches. Both lists are empty once the unit has moved.
func Reachable(b *Board, u *Unit) Reach {
	reach := Reach{Moves: []Position{}, Sprints: []Position{}}
	if u == nil || u.Flags.MoveDisabled {
		return reach
	}

	sizeX, sizeY := b.Size()
	for x := 0; x < sizeX; x++ {
		for y := 0; y < sizeY; y++ {
			pos := Position{X: x, Y: y}
			steps := ManhattanDistance(u.Position, pos)

			if steps != 0 && steps <= u.Stats.MovementRange {
				reach.Moves = append(reach.Moves, pos)
			} else if steps == u.Stats.MovementRange+1 {
				reach.Sprints = append(reach.Sprints, pos)
			}
		}
	}

	return reach
}

// Move walks u up to its movement range. An out-of-range target leaves the
// unit in place but still spends its move.
func Move(b *Board, u *Unit, target Position, facing *Facing) (MoveResult, error) {
	if err := checkMove(b, u, target); err != nil {
		return MoveResult{}, err
	}
	return moveWithin(u, target, facing, MoveWalk, u.Stats.MovementRange), nil
}

// Sprint moves u one step further than its movement range and forfeits its attack
func Sprint(b *Board, u *Unit, target Position, facing *Facing) (MoveResult, error) {
	if err := checkMove(b, u, target); err != nil {
		return MoveResult{}, err
	}
	result := moveWithin(u, target, facing, MoveSprint, u.Stats.MovementRange+1)
	u.Flags.AttackDisabled = true
	return result, nil
}

// OverchargeMove walks u like Move and burns health for it
func OverchargeMove(b *Board, u *Unit, target Position, facing *Facing) (MoveResult, error) {
	if err := checkMove(b, u, target); err != nil {
		return MoveResult{}, err
	}
	result := moveWithin(u, target, facing, MoveOvercharge, u.Stats.MovementRange)
	u.Stats.Health -= OverchargeHP
	result.HealthCost = OverchargeHP
	return result, nil
}

func checkMove(b *Board, u *Unit, target Position) error {
	if !target.Valid() || !b.Contains(target) {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, target)
	}
	if u.Flags.MoveDisabled {
		return fmt.Errorf("%w: %s has already moved this turn", ErrMoveUnavailable, u.Name)
	}
	if u.Position == target {
		return fmt.Errorf("%w: %s is already at %s", ErrMoveUnavailable, u.Name, target)
	}
	return nil
}

func moveWithin(u *Unit, target Position, facing *Facing, kind MoveKind, allowedSteps int) MoveResult {
	result := MoveResult{
		Kind:      kind,
		Status:    MoveIgnored,
		From:      u.Position,
		Target:    target,
		Distance:  ManhattanDistance(u.Position, target),
		Allowance: allowedSteps,
	}

	if result.Distance <= allowedSteps {
		u.Position = target
		if facing != nil {
			u.Facing = *facing
		}
		result.Status = MoveApplied
	}

	u.Flags.MoveDisabled = true

	result.To = u.Position
	result.Facing = u.Facing
	return result
}
