package engine

import "fmt"

// Controller owns the roster of one side and tracks its selected unit
type Controller struct {
	name     string
	board    *Board
	units    []*Unit
	selected *Unit
}

// NewController creates a controller for one side playing on board
func NewController(name string, board *Board, units ...*Unit) *Controller {
	c := &Controller{
		name:  name,
		board: board,
	}
	c.units = append(c.units, units...)
	return c
}

// Name returns the side name
func (c *Controller) Name() string {
	return c.name
}

// Add registers a unit with this controller
func (c *Controller) Add(u *Unit) {
	c.units = append(c.units, u)
}

// Owns reports whether u is one of this controller's units (by identity)
func (c *Controller) Owns(u *Unit) bool {
	for _, owned := range c.units {
		if owned == u {
			return true
		}
	}
	return false
}

// Unit returns the owned unit with the given ID
func (c *Controller) Unit(id string) (*Unit, bool) {
	for _, u := range c.units {
		if u.ID == id {
			return u, true
		}
	}
	return nil, false
}

// Units returns snapshots of the owned units in registration order
func (c *Controller) Units() []Unit {
	out := make([]Unit, len(c.units))
	for i, u := range c.units {
		out[i] = *u
	}
	return out
}

// RosterValue sums the point value of every owned unit
func (c *Controller) RosterValue() int {
	total := 0
	for _, u := range c.units {
		total += u.Value
	}
	return total
}

// SelectUnit selects u when it belongs to this controller. A nil unit
// clears the selection; a foreign unit leaves it unchanged.
func (c *Controller) SelectUnit(u *Unit) error {
	if u == nil {
		c.selected = nil
		return nil
	}
	if !c.Owns(u) {
		return fmt.Errorf("%w: %s", ErrIllegalSelection, u.ID)
	}
	c.selected = u
	return nil
}

// Selection returns a snapshot of the selected unit
func (c *Controller) Selection() (Unit, bool) {
	if c.selected == nil {
		return Unit{}, false
	}
	return *c.selected, true
}

// Selected returns the selected unit itself, or nil
func (c *Controller) Selected() *Unit {
	return c.selected
}

// CanMoveTo returns the reach of the selected unit
func (c *Controller) CanMoveTo() Reach {
	return Reachable(c.board, c.selected)
}

// Move walks u toward target
func (c *Controller) Move(u *Unit, target Position, facing *Facing) (MoveResult, error) {
	return Move(c.board, u, target, facing)
}

// Sprint moves u one step past its range and disables its attack
func (c *Controller) Sprint(u *Unit, target Position, facing *Facing) (MoveResult, error) {
	return Sprint(c.board, u, target, facing)
}

// OverchargeMove moves u at the cost of health
func (c *Controller) OverchargeMove(u *Unit, target Position, facing *Facing) (MoveResult, error) {
	return OverchargeMove(c.board, u, target, facing)
}

// Attack resolves an attack by attacker on defender
func (c *Controller) Attack(attacker, defender *Unit) CombatResult {
	return Attack(attacker, defender)
}

// OverchargeAttack resolves an overcharged attack by attacker on defender
func (c *Controller) OverchargeAttack(attacker, defender *Unit) CombatResult {
	return OverchargeAttack(attacker, defender)
}

// EndTurn re-enables every owned unit and clears the selection
func (c *Controller) EndTurn() {
	for _, u := range c.units {
		u.Flags.MoveDisabled = false
		u.Flags.AttackDisabled = false
		u.Flags.OverchargeDisabled = false
	}
	c.selected = nil
}
