package engine

import (
	"fmt"
	"strings"
)

// GameState is a read-only snapshot of a game for presentation layers
type GameState struct {
	Scenario   string          `json:"scenario"`
	Board      [][]TerrainCell `json:"board"`
	Turn       int             `json:"turn"`
	ActiveSide string          `json:"active_side"`
	Sides      []SideState     `json:"sides"`
}

// SideState is the snapshot of one side
type SideState struct {
	Name        string `json:"name"`
	Units       []Unit `json:"units"`
	Selected    string `json:"selected,omitempty"`
	RosterValue int    `json:"roster_value"`
}

// Game is one match: a board and the two sides playing on it. It is not
// safe for concurrent use.
type Game struct {
	scenario *Scenario
	board    *Board
	sides    []*Controller
	active   int
	turn     int
	history  []CommandResult
}

// NewGame creates a game from a scenario. rng overrides the scenario seed
// when non-nil.
func NewGame(scenario *Scenario, rng RandSource) (*Game, error) {
	if err := ValidateScenario(scenario); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRandSource(scenario.Seed)
	}
	return NewGameOnBoard(scenario, NewBoard(rng))
}

// NewGameOnBoard creates a game from a scenario on an existing board
func NewGameOnBoard(scenario *Scenario, board *Board) (*Game, error) {
	if err := ValidateScenario(scenario); err != nil {
		return nil, err
	}

	g := &Game{
		scenario: scenario,
		board:    board,
		history:  []CommandResult{},
	}

	for i, side := range scenario.Sides {
		ctrl := NewController(side.Name, board)
		prefix := string(rune('A' + i))

		for j, placement := range side.Units {
			pos := Position{X: placement.X, Y: placement.Y}
			if !board.Contains(pos) {
				return nil, fmt.Errorf("%w: %s", ErrInvalidPosition, pos)
			}

			unit, err := NewUnit(placement.Archetype, pos)
			if err != nil {
				return nil, err
			}
			unit.ID = fmt.Sprintf("%s%d", prefix, j+1)
			if placement.Facing != "" {
				facing, err := ParseFacing(placement.Facing)
				if err != nil {
					return nil, fmt.Errorf("%w: unit %s: %w", ErrInvalidScenario, unit.ID, err)
				}
				unit.Facing = facing
			}
			if placement.Stats != nil {
				unit.Stats = *placement.Stats
			}

			ctrl.Add(unit)
		}

		g.sides = append(g.sides, ctrl)
	}

	return g, nil
}

// NewGameWithDefaults creates a game from the default scenario
func NewGameWithDefaults(rng RandSource) *Game {
	g, err := NewGame(DefaultScenario(), rng)
	if err != nil {
		panic(fmt.Sprintf("default scenario is invalid: %v", err))
	}
	return g
}

// Scenario returns the scenario the game was created from
func (g *Game) Scenario() *Scenario {
	return g.scenario
}

// Board returns the terrain board
func (g *Game) Board() *Board {
	return g.board
}

// Sides returns both controllers in scenario order
func (g *Game) Sides() []*Controller {
	return g.sides
}

// Active returns the controller whose turn it is
func (g *Game) Active() *Controller {
	return g.sides[g.active]
}

// Opponent returns the controller waiting for its turn
func (g *Game) Opponent() *Controller {
	return g.sides[1-g.active]
}

// Turn returns the number of completed turns
func (g *Game) Turn() int {
	return g.turn
}

// Units returns snapshots of every unit, side by side
func (g *Game) Units() []Unit {
	var out []Unit
	for _, side := range g.sides {
		out = append(out, side.Units()...)
	}
	return out
}

// Unit returns a snapshot of the unit with the given ID
func (g *Game) Unit(id string) (Unit, bool) {
	if u, _ := g.find(id); u != nil {
		return *u, true
	}
	return Unit{}, false
}

// Selection returns the active side's selected unit
func (g *Game) Selection() (Unit, bool) {
	return g.Active().Selection()
}

// CanMoveTo returns the reach of the active side's selected unit
func (g *Game) CanMoveTo() Reach {
	return g.Active().CanMoveTo()
}

// History returns the commands executed so far
func (g *Game) History() []CommandResult {
	return g.history
}

// State returns a snapshot of the whole game
func (g *Game) State() *GameState {
	state := &GameState{
		Scenario:   g.scenario.Name,
		Board:      g.board.Cells(),
		Turn:       g.turn,
		ActiveSide: g.Active().Name(),
	}
	for _, side := range g.sides {
		ss := SideState{
			Name:        side.Name(),
			Units:       side.Units(),
			RosterValue: side.RosterValue(),
		}
		if sel, ok := side.Selection(); ok {
			ss.Selected = sel.ID
		}
		state.Sides = append(state.Sides, ss)
	}
	return state
}

// Execute applies a command on behalf of the active side
func (g *Game) Execute(cmd Command) (*CommandResult, error) {
	active := g.Active()
	result := &CommandResult{
		Command: cmd,
		Side:    active.Name(),
		Turn:    g.turn,
	}

	switch cmd.Kind {
	case CmdSelect:
		unit, err := g.ownUnit(cmd.UnitID)
		if err != nil {
			return nil, err
		}
		if err := active.SelectUnit(unit); err != nil {
			return nil, err
		}
		result.Message = fmt.Sprintf("%s selected", unit.ID)

	case CmdDeselect:
		active.SelectUnit(nil)
		result.Message = "selection cleared"

	case CmdMove, CmdSprint, CmdOverchargeMove:
		unit, err := g.ownUnit(cmd.UnitID)
		if err != nil {
			return nil, err
		}

		var move MoveResult
		switch cmd.Kind {
		case CmdMove:
			move, err = active.Move(unit, cmd.Target, cmd.Facing)
		case CmdSprint:
			move, err = active.Sprint(unit, cmd.Target, cmd.Facing)
		default:
			move, err = active.OverchargeMove(unit, cmd.Target, cmd.Facing)
		}
		if err != nil {
			return nil, err
		}

		result.Move = &move
		if move.Status == MoveApplied {
			result.Message = fmt.Sprintf("%s %s to %s facing %s", unit.ID, pastTense(move.Kind), move.To, move.Facing)
		} else {
			result.Message = fmt.Sprintf("%s could not reach %s (%d steps, allowance %d); move spent", unit.ID, move.Target, move.Distance, move.Allowance)
		}

	case CmdAttack, CmdOverchargeAttack:
		attacker, defender, err := g.combatants(cmd.UnitID, cmd.TargetID)
		if err != nil {
			return nil, err
		}

		var combat CombatResult
		if cmd.Kind == CmdAttack {
			combat = active.Attack(attacker, defender)
		} else {
			combat = active.OverchargeAttack(attacker, defender)
		}

		result.Combat = &combat
		if combat.DefenseBreak {
			result.Message = fmt.Sprintf("defense break: %s and %s each lose 1 health", attacker.ID, defender.ID)
		} else {
			result.Message = fmt.Sprintf("%s hits %s for %d", attacker.ID, defender.ID, combat.DamageDealt)
		}
		if combat.Overcharged {
			result.Message += fmt.Sprintf("; overcharge costs %s %d health", attacker.ID, OverchargeHP)
		}

	case CmdEndTurn:
		active.EndTurn()
		g.active = 1 - g.active
		g.turn++
		result.Message = fmt.Sprintf("%s ends turn; %s to play", active.Name(), g.Active().Name())

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Kind)
	}

	g.history = append(g.history, *result)
	return result, nil
}

// ownUnit resolves a unit ID on the active side
func (g *Game) ownUnit(id string) (*Unit, error) {
	unit, side := g.find(id)
	if unit == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, id)
	}
	if side != g.Active() {
		return nil, fmt.Errorf("%w: %s belongs to %s", ErrIllegalSelection, unit.ID, side.Name())
	}
	return unit, nil
}

// combatants resolves an attacker on the active side and a defender on the
// opposing side
func (g *Game) combatants(attackerID, defenderID string) (*Unit, *Unit, error) {
	attacker, err := g.ownUnit(attackerID)
	if err != nil {
		return nil, nil, err
	}
	if attacker.Flags.AttackDisabled {
		return nil, nil, fmt.Errorf("%w: %s cannot attack again this turn", ErrAttackUnavailable, attacker.ID)
	}

	defender, side := g.find(defenderID)
	if defender == nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownUnit, defenderID)
	}
	if side == g.Active() {
		return nil, nil, fmt.Errorf("%w: %s is on your own side", ErrIllegalTarget, defender.ID)
	}
	return attacker, defender, nil
}

// find looks a unit up by ID (case-insensitive) across both sides
func (g *Game) find(id string) (*Unit, *Controller) {
	id = strings.ToUpper(strings.TrimSpace(id))
	for _, side := range g.sides {
		if u, ok := side.Unit(id); ok {
			return u, side
		}
	}
	return nil, nil
}

func pastTense(kind MoveKind) string {
	switch kind {
	case MoveSprint:
		return "sprinted"
	case MoveOvercharge:
		return "overcharged"
	}
	return "moved"
}
