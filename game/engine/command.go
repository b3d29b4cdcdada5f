package engine

import (
	"fmt"
	"strings"
)

// CommandKind identifies an engine command
type CommandKind string

const (
	CmdSelect           CommandKind = "select"
	CmdDeselect         CommandKind = "deselect"
	CmdMove             CommandKind = "move"
	CmdSprint           CommandKind = "sprint"
	CmdOverchargeMove   CommandKind = "overcharge_move"
	CmdAttack           CommandKind = "attack"
	CmdOverchargeAttack CommandKind = "overcharge_attack"
	CmdEndTurn          CommandKind = "end_turn"
)

// CommandKinds lists every command the engine understands
var CommandKinds = []CommandKind{
	CmdSelect, CmdDeselect, CmdMove, CmdSprint, CmdOverchargeMove,
	CmdAttack, CmdOverchargeAttack, CmdEndTurn,
}

// ParseCommandKind resolves a command name, accepting dashes for underscores
func ParseCommandKind(s string) (CommandKind, error) {
	name := CommandKind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	for _, kind := range CommandKinds {
		if kind == name {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}

// Command is one request from the presentation layer. UnitID names the
// acting unit, TargetID the defender of an attack, Target the destination
// of a move. Facing is optional and only used by moves.
type Command struct {
	Kind     CommandKind `json:"kind"`
	UnitID   string      `json:"unit_id,omitempty"`
	TargetID string      `json:"target_id,omitempty"`
	Target   Position    `json:"target"`
	Facing   *Facing     `json:"facing,omitempty"`
}

// CommandResult is the outcome of a successfully executed command
type CommandResult struct {
	Command Command       `json:"command"`
	Side    string        `json:"side"`
	Turn    int           `json:"turn"`
	Message string        `json:"message"`
	Move    *MoveResult   `json:"move,omitempty"`
	Combat  *CombatResult `json:"combat,omitempty"`
}
