package mcp

import (
	"fmt"
	"strings"

	"github.com/wricardo/strike-tactics/game/engine"
	"github.com/wricardo/strike-tactics/game/service"
)

// Instructions is the full rules text returned by game_instructions
const Instructions = `Strike Tactics - Rules

BOARD:
8x8 grid, x left to right and y top to bottom, both 0..7. The terrain is
point-symmetric so neither side starts with a better map.
  # chasm   ~ marsh   . grassland   f forest   h hill   ^ mountain
Terrain is descriptive only; it does not block or slow units.

UNITS:
Each unit has attack power, attack range, movement range, health and an
armor rating per side. Units are named by side letter and number: A1 is the
first unit of the first side.

YOUR TURN:
Every unit may move once and attack once.
- move: up to movement range (Manhattan distance).
- sprint: one cell further than movement range, but the unit cannot attack.
- overcharge_move: like move, costs 2 health.
A move aimed out of range leaves the unit in place and still spends its move.
- attack: power difference = attacker power - defender power.
  If positive the defender loses that much health. Otherwise it is a defense
  break and both units lose 1 health.
- overcharge_attack: attack, then the attacker pays 2 health and cannot
  attack again this turn.
end_turn refreshes your units and passes the turn to the other side.

Units are not removed at 0 health and nothing stops two units sharing a cell.`

// FormatGameState renders the board with units on top of the terrain,
// followed by each side's roster
func FormatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	units := make(map[engine.Position]string)
	for _, side := range state.Sides {
		for _, u := range side.Units {
			units[u.Position] = u.ID
		}
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Scenario: %s | Turn: %d | %s to play\n\n", state.Scenario, state.Turn, state.ActiveSide)

	result.WriteString("  ")
	for x := range state.Board {
		fmt.Fprintf(&result, " %d ", x)
	}
	result.WriteString("\n")

	sizeY := 0
	if len(state.Board) > 0 {
		sizeY = len(state.Board[0])
	}
	for y := 0; y < sizeY; y++ {
		fmt.Fprintf(&result, "%d ", y)
		for x := range state.Board {
			if id, ok := units[engine.Position{X: x, Y: y}]; ok {
				fmt.Fprintf(&result, "%-3s", id)
			} else {
				fmt.Fprintf(&result, " %c ", state.Board[x][y].Symbol())
			}
		}
		result.WriteString("\n")
	}

	for _, side := range state.Sides {
		result.WriteString("\n")
		marker := ""
		if side.Name == state.ActiveSide {
			marker = " (to play)"
		}
		fmt.Fprintf(&result, "%s%s, roster value %d\n", side.Name, marker, side.RosterValue)
		for _, u := range side.Units {
			result.WriteString(formatUnit(u, u.ID == side.Selected))
			result.WriteString("\n")
		}
	}

	return result.String()
}

func formatUnit(u engine.Unit, selected bool) string {
	var b strings.Builder
	if selected {
		b.WriteString("* ")
	} else {
		b.WriteString("  ")
	}
	fmt.Fprintf(&b, "%s %s %s facing %s | hp %d atk %d rng %d mv %d",
		u.ID, u.Name, u.Position, u.Facing,
		u.Stats.Health, u.Stats.AttackPower, u.Stats.AttackRange, u.Stats.MovementRange)

	var spent []string
	if u.Flags.MoveDisabled {
		spent = append(spent, "moved")
	}
	if u.Flags.AttackDisabled {
		spent = append(spent, "no attack")
	}
	if len(spent) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(spent, ", "))
	}
	return b.String()
}

func formatSessionInfo(info *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nScenario: %s\nCreated: %s\n\n%s",
		info.ID, info.ScenarioID,
		info.CreatedAt.Format("2006-01-02 15:04:05"),
		FormatGameState(info.GameState))
}

func formatReach(reach *service.ReachInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s at %s\n", reach.UnitID, reach.Position)
	if len(reach.Moves) == 0 && len(reach.Sprints) == 0 {
		b.WriteString("No moves left this turn")
		return b.String()
	}
	fmt.Fprintf(&b, "Move (%d): %s\n", len(reach.Moves), formatPositions(reach.Moves))
	fmt.Fprintf(&b, "Sprint only (%d): %s", len(reach.Sprints), formatPositions(reach.Sprints))
	return b.String()
}

func formatPositions(list []engine.Position) string {
	parts := make([]string, len(list))
	for i, p := range list {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}

func formatCommandResponse(resp *service.CommandResponse) string {
	var b strings.Builder
	b.WriteString(resp.Message)
	b.WriteString("\n")
	if resp.Warning != "" {
		fmt.Fprintf(&b, "Warning: %s\n", resp.Warning)
	}
	if c := resp.Result.Combat; c != nil {
		fmt.Fprintf(&b, "%s health %d, %s health %d\n", c.AttackerID, c.AttackerHealth, c.DefenderID, c.DefenderHealth)
	}
	b.WriteString("\n")
	b.WriteString(FormatGameState(resp.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Commands %d total (page %d/%d)\n\n", history.TotalCommands, history.Page, history.TotalPages)
	for _, entry := range history.Commands {
		fmt.Fprintf(&b, "turn %d %s: %s\n", entry.Turn, entry.Side, entry.Message)
	}
	return b.String()
}
