package engine

import (
	"errors"
	"testing"
)

func createTestBoard() *Board {
	return NewBoard(&sequenceSource{values: []int{2}})
}

func TestReachable_RangePartition(t *testing.T) {
	board := createTestBoard()
	unit := Lancehorn(Position{X: 3, Y: 4})
	r := unit.Stats.MovementRange

	reach := Reachable(board, unit)

	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			pos := Position{X: x, Y: y}
			d := ManhattanDistance(unit.Position, pos)
			inMoves := Contains(reach.Moves, pos)
			inSprints := Contains(reach.Sprints, pos)

			switch {
			case d == 0:
				if inMoves || inSprints {
					t.Errorf("%s at distance 0 must be in neither list", pos)
				}
			case d <= r:
				if !inMoves || inSprints {
					t.Errorf("%s at distance %d must be in moves only (moves=%v sprints=%v)", pos, d, inMoves, inSprints)
				}
			case d == r+1:
				if inMoves || !inSprints {
					t.Errorf("%s at distance %d must be in sprints only (moves=%v sprints=%v)", pos, d, inMoves, inSprints)
				}
			default:
				if inMoves || inSprints {
					t.Errorf("%s at distance %d must be in neither list", pos, d)
				}
			}
		}
	}
}

func TestReachable_CornerScenario(t *testing.T) {
	board := createTestBoard()
	unit := Lancehorn(Position{X: 0, Y: 7})

	reach := Reachable(board, unit)

	for _, pos := range []Position{{X: 0, Y: 5}, {X: 2, Y: 7}, {X: 1, Y: 6}} {
		if !Contains(reach.Moves, pos) {
			t.Errorf("Expected %s in moves", pos)
		}
	}
	for _, pos := range []Position{{X: 0, Y: 4}, {X: 3, Y: 7}} {
		if !Contains(reach.Sprints, pos) {
			t.Errorf("Expected %s in sprints", pos)
		}
	}
	if Contains(reach.Moves, unit.Position) || Contains(reach.Sprints, unit.Position) {
		t.Error("Unit's own cell must not be reachable")
	}

	// From a corner with range 2: 2 cells at d=1, 3 at d=2, 4 at d=3
	if len(reach.Moves) != 5 {
		t.Errorf("Expected 5 moves, got %d", len(reach.Moves))
	}
	if len(reach.Sprints) != 4 {
		t.Errorf("Expected 4 sprints, got %d", len(reach.Sprints))
	}
}

func TestReachable_MoveDisabled(t *testing.T) {
	board := createTestBoard()
	unit := Lancehorn(Position{X: 3, Y: 3})
	unit.Flags.MoveDisabled = true

	reach := Reachable(board, unit)
	if len(reach.Moves) != 0 || len(reach.Sprints) != 0 {
		t.Errorf("Expected empty reach, got %+v", reach)
	}
}

func TestReachable_DoesNotMutate(t *testing.T) {
	board := createTestBoard()
	unit := Lancehorn(Position{X: 3, Y: 3})
	before := *unit

	Reachable(board, unit)

	if *unit != before {
		t.Errorf("Reachable mutated the unit: %+v -> %+v", before, *unit)
	}
}

func TestMove_WithinRange(t *testing.T) {
	board := createTestBoard()
	unit := Lancehorn(Position{X: 0, Y: 7})
	east := East

	result, err := Move(board, unit, Position{X: 1, Y: 6}, &east)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Status != MoveApplied {
		t.Errorf("Expected status %s, got %s", MoveApplied, result.Status)
	}
	if unit.Position != (Position{X: 1, Y: 6}) {
		t.Errorf("Expected unit at (1,6), got %s", unit.Position)
	}
	if unit.Facing != East {
		t.Errorf("Expected facing E, got %s", unit.Facing)
	}
	if !unit.Flags.MoveDisabled {
		t.Error("Expected MoveDisabled after move")
	}
	if unit.Flags.AttackDisabled {
		t.Error("Move must not disable attack")
	}
	if result.Err() != nil {
		t.Errorf("Expected no range error, got %v", result.Err())
	}
}

func TestMove_KeepsFacingWhenNil(t *testing.T) {
	board := createTestBoard()
	unit := Lancehorn(Position{X: 4, Y: 4})
	unit.Facing = West

	if _, err := Move(board, unit, Position{X: 4, Y: 3}, nil); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if unit.Facing != West {
		t.Errorf("Expected facing to stay W, got %s", unit.Facing)
	}
}

func TestMove_OutOfRangeConsumesMove(t *testing.T) {
	board := createTestBoard()
	unit := Lancehorn(Position{X: 0, Y: 7})
	north := North
	unit.Facing = East

	result, err := Move(board, unit, Position{X: 0, Y: 3}, &north)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Status != MoveIgnored {
		t.Errorf("Expected status %s, got %s", MoveIgnored, result.Status)
	}
	if unit.Position != (Position{X: 0, Y: 7}) {
		t.Errorf("Expected unit to stay at (0,7), got %s", unit.Position)
	}
	if unit.Facing != East {
		t.Errorf("Expected facing unchanged, got %s", unit.Facing)
	}
	if !unit.Flags.MoveDisabled {
		t.Error("Expected out-of-range move to still spend the move")
	}
	if !errors.Is(result.Err(), ErrOutOfRangeTarget) {
		t.Errorf("Expected ErrOutOfRangeTarget, got %v", result.Err())
	}
}

func TestMove_Rejections(t *testing.T) {
	board := createTestBoard()

	tests := []struct {
		name     string
		setup    func(u *Unit)
		target   Position
		expected error
	}{
		{"already moved", func(u *Unit) { u.Flags.MoveDisabled = true }, Position{X: 2, Y: 3}, ErrMoveUnavailable},
		{"same cell", func(u *Unit) {}, Position{X: 2, Y: 2}, ErrMoveUnavailable},
		{"negative x", func(u *Unit) {}, Position{X: -1, Y: 2}, ErrInvalidPosition},
		{"y past edge", func(u *Unit) {}, Position{X: 2, Y: 8}, ErrInvalidPosition},
	}

	movers := map[string]func(*Board, *Unit, Position, *Facing) (MoveResult, error){
		"move":           Move,
		"sprint":         Sprint,
		"overchargeMove": OverchargeMove,
	}

	for moverName, mover := range movers {
		for _, test := range tests {
			t.Run(moverName+"/"+test.name, func(t *testing.T) {
				unit := Lancehorn(Position{X: 2, Y: 2})
				test.setup(unit)
				before := *unit

				_, err := mover(board, unit, test.target, nil)
				if !errors.Is(err, test.expected) {
					t.Fatalf("Expected %v, got %v", test.expected, err)
				}
				if *unit != before {
					t.Errorf("Rejected command mutated the unit: %+v -> %+v", before, *unit)
				}
			})
		}
	}
}

func TestSprint(t *testing.T) {
	tests := []struct {
		name       string
		target     Position
		expectMove bool
	}{
		{"sprint distance", Position{X: 0, Y: 4}, true},
		{"walk distance", Position{X: 0, Y: 6}, true},
		{"too far", Position{X: 0, Y: 3}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board := createTestBoard()
			unit := Lancehorn(Position{X: 0, Y: 7})

			result, err := Sprint(board, unit, test.target, nil)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			moved := unit.Position == test.target
			if moved != test.expectMove {
				t.Errorf("Expected moved=%v, unit at %s", test.expectMove, unit.Position)
			}
			if result.Allowance != 3 {
				t.Errorf("Expected allowance 3, got %d", result.Allowance)
			}
			if !unit.Flags.MoveDisabled || !unit.Flags.AttackDisabled {
				t.Errorf("Sprint must disable move and attack, got %+v", unit.Flags)
			}
		})
	}
}

func TestOverchargeMove_CostsHealth(t *testing.T) {
	tests := []struct {
		name       string
		target     Position
		expectMove bool
	}{
		{"in range", Position{X: 2, Y: 7}, true},
		{"sprint distance is out of range", Position{X: 3, Y: 7}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board := createTestBoard()
			unit := Lancehorn(Position{X: 0, Y: 7})
			startHealth := unit.Stats.Health

			result, err := OverchargeMove(board, unit, test.target, nil)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if (unit.Position == test.target) != test.expectMove {
				t.Errorf("Expected moved=%v, unit at %s", test.expectMove, unit.Position)
			}
			if unit.Stats.Health != startHealth-OverchargeHP {
				t.Errorf("Expected health %d, got %d", startHealth-OverchargeHP, unit.Stats.Health)
			}
			if result.HealthCost != OverchargeHP {
				t.Errorf("Expected health cost %d, got %d", OverchargeHP, result.HealthCost)
			}
			if !unit.Flags.MoveDisabled {
				t.Error("Expected MoveDisabled")
			}
			if unit.Flags.AttackDisabled {
				t.Error("Overcharge move must not disable attack")
			}
		})
	}
}
