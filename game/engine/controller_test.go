package engine

import (
	"errors"
	"testing"
)

func createTestController() (*Controller, *Unit, *Unit) {
	board := createTestBoard()
	first := Lancehorn(Position{X: 0, Y: 7})
	first.ID = "A1"
	second := Lancehorn(Position{X: 3, Y: 7})
	second.ID = "A2"
	return NewController("red", board, first, second), first, second
}

func TestController_SelectUnit(t *testing.T) {
	ctrl, first, _ := createTestController()

	if _, ok := ctrl.Selection(); ok {
		t.Fatal("Expected no initial selection")
	}

	if err := ctrl.SelectUnit(first); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	sel, ok := ctrl.Selection()
	if !ok || sel.ID != "A1" {
		t.Errorf("Expected A1 selected, got %+v (ok=%v)", sel, ok)
	}

	// A look-alike that is not a member must be refused
	stranger := Lancehorn(Position{X: 0, Y: 7})
	stranger.ID = "A1"
	err := ctrl.SelectUnit(stranger)
	if !errors.Is(err, ErrIllegalSelection) {
		t.Errorf("Expected ErrIllegalSelection, got %v", err)
	}
	if ctrl.Selected() != first {
		t.Error("Illegal selection must leave the selection unchanged")
	}

	if err := ctrl.SelectUnit(nil); err != nil {
		t.Fatalf("Unexpected error clearing selection: %v", err)
	}
	if ctrl.Selected() != nil {
		t.Error("Expected nil to clear the selection")
	}
}

func TestController_CanMoveTo(t *testing.T) {
	ctrl, first, _ := createTestController()

	reach := ctrl.CanMoveTo()
	if len(reach.Moves) != 0 || len(reach.Sprints) != 0 {
		t.Errorf("Expected empty reach without selection, got %+v", reach)
	}

	ctrl.SelectUnit(first)
	reach = ctrl.CanMoveTo()
	if !Contains(reach.Moves, Position{X: 0, Y: 5}) || !Contains(reach.Sprints, Position{X: 3, Y: 7}) {
		t.Errorf("Unexpected reach for A1: %+v", reach)
	}
}

func TestController_PassThroughsUseGivenUnit(t *testing.T) {
	ctrl, first, second := createTestController()
	ctrl.SelectUnit(first)

	if _, err := ctrl.Move(second, Position{X: 3, Y: 6}, nil); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if second.Position != (Position{X: 3, Y: 6}) {
		t.Errorf("Expected A2 to move, got %s", second.Position)
	}
	if first.Flags.MoveDisabled {
		t.Error("Selected unit must not be affected by a move of another unit")
	}
}

func TestController_EndTurnResetsEverything(t *testing.T) {
	ctrl, first, second := createTestController()
	enemy := Lancehorn(Position{X: 7, Y: 0})

	ctrl.SelectUnit(first)
	ctrl.Sprint(first, Position{X: 0, Y: 4}, nil)
	ctrl.OverchargeAttack(second, enemy)
	second.Flags.OverchargeDisabled = true

	ctrl.EndTurn()

	for _, u := range ctrl.Units() {
		if u.Flags != (TurnFlags{}) {
			t.Errorf("Expected %s flags reset, got %+v", u.ID, u.Flags)
		}
	}
	if _, ok := ctrl.Selection(); ok {
		t.Error("Expected EndTurn to clear the selection")
	}
	if first.Position != (Position{X: 0, Y: 4}) {
		t.Error("EndTurn must not move units")
	}
}

func TestController_UnitsAreSnapshots(t *testing.T) {
	ctrl, first, _ := createTestController()

	units := ctrl.Units()
	units[0].Stats.Health = 0

	if first.Stats.Health != 5 {
		t.Error("Mutating a snapshot changed the owned unit")
	}
	if units[0].ID != "A1" || units[1].ID != "A2" {
		t.Errorf("Expected insertion order A1, A2, got %s, %s", units[0].ID, units[1].ID)
	}
}

func TestController_RosterValue(t *testing.T) {
	ctrl, _, _ := createTestController()
	if ctrl.RosterValue() != 4 {
		t.Errorf("Expected roster value 4, got %d", ctrl.RosterValue())
	}
}
