package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wricardo/strike-tactics/game/engine"
	"github.com/wricardo/strike-tactics/game/service"
	"github.com/wricardo/strike-tactics/transport/mcp"
)

const replHelp = `Commands:
  show                             board, units and whose turn it is
  select <unit> | deselect         pick or clear the active unit
  reach [unit]                     cells a unit can move or sprint to
  move <unit> <x> <y> [N|E|S|W]    walk up to movement range
  sprint <unit> <x> <y> [facing]   one cell further, no attack afterwards
  overcharge-move <unit> <x> <y>   walk for 2 health
  attack <unit> <target>           attack an enemy unit
  overcharge-attack <unit> <target>
  end                              end the turn
  history                          last commands
  reset                            restart the scenario
  help | quit`

// repl is a hot-seat text front end: both sides type commands into the
// same terminal
type repl struct {
	svc       service.GameService
	in        io.Reader
	out       io.Writer
	sessionID string
}

func newREPL(svc service.GameService, in io.Reader, out io.Writer) *repl {
	return &repl{svc: svc, in: in, out: out}
}

// Run starts a session for scenario and reads commands until quit or EOF
func (r *repl) Run(ctx context.Context, scenario string) error {
	info, err := r.svc.CreateSession(ctx, scenario)
	if err != nil {
		return err
	}
	r.sessionID = info.ID

	fmt.Fprintf(r.out, "%s v%s - scenario %s\nType 'help' for commands.\n\n", AppName, Version, info.ScenarioID)
	fmt.Fprintln(r.out, mcp.FormatGameState(info.GameState))

	scanner := bufio.NewScanner(r.in)
	for {
		state, err := r.svc.GetGameState(ctx, r.sessionID)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "%s> ", state.ActiveSide)

		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		quit, err := r.handle(ctx, fields)
		if err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// handle runs one input line
func (r *repl) handle(ctx context.Context, fields []string) (bool, error) {
	switch strings.ToLower(fields[0]) {
	case "quit", "exit", "q":
		return true, nil

	case "help", "?":
		fmt.Fprintln(r.out, replHelp)
		return false, nil

	case "show", "state":
		state, err := r.svc.GetGameState(ctx, r.sessionID)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(r.out, mcp.FormatGameState(state))
		return false, nil

	case "reach":
		unitID := ""
		if len(fields) > 1 {
			unitID = fields[1]
		}
		reach, err := r.svc.CanMoveTo(ctx, r.sessionID, unitID)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(r.out, "%s at %s\n  move:   %s\n  sprint: %s\n", reach.UnitID, reach.Position, joinPositions(reach.Moves), joinPositions(reach.Sprints))
		return false, nil

	case "history":
		history, err := r.svc.GetHistory(ctx, r.sessionID, service.HistoryOptions{Limit: 10})
		if err != nil {
			return false, err
		}
		for _, entry := range history.Commands {
			fmt.Fprintf(r.out, "  turn %d %s: %s\n", entry.Turn, entry.Side, entry.Message)
		}
		return false, nil

	case "reset":
		state, err := r.svc.ResetSession(ctx, r.sessionID)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(r.out, mcp.FormatGameState(state))
		return false, nil

	case "end":
		fields[0] = string(engine.CmdEndTurn)
	}

	cmd, err := parseCommand(fields)
	if err != nil {
		return false, err
	}

	resp, err := r.svc.Execute(ctx, r.sessionID, cmd)
	if err != nil {
		return false, err
	}

	fmt.Fprintln(r.out, resp.Message)
	if resp.Warning != "" {
		fmt.Fprintf(r.out, "warning: %s\n", resp.Warning)
	}
	if cmd.Kind == engine.CmdEndTurn {
		fmt.Fprintln(r.out, mcp.FormatGameState(resp.GameState))
	}
	return false, nil
}

// parseCommand turns "move A1 3 4 E" style input into an engine command
func parseCommand(fields []string) (engine.Command, error) {
	kind, err := engine.ParseCommandKind(fields[0])
	if err != nil {
		return engine.Command{}, fmt.Errorf("%w (type 'help')", err)
	}

	cmd := engine.Command{Kind: kind}
	args := fields[1:]

	switch kind {
	case engine.CmdSelect:
		if len(args) != 1 {
			return cmd, fmt.Errorf("usage: select <unit>")
		}
		cmd.UnitID = args[0]

	case engine.CmdMove, engine.CmdSprint, engine.CmdOverchargeMove:
		if len(args) < 3 || len(args) > 4 {
			return cmd, fmt.Errorf("usage: %s <unit> <x> <y> [facing]", kind)
		}
		cmd.UnitID = args[0]

		x, err := strconv.Atoi(args[1])
		if err != nil {
			return cmd, fmt.Errorf("invalid x %q", args[1])
		}
		y, err := strconv.Atoi(args[2])
		if err != nil {
			return cmd, fmt.Errorf("invalid y %q", args[2])
		}
		cmd.Target = engine.Position{X: x, Y: y}

		if len(args) == 4 {
			facing, err := engine.ParseFacing(args[3])
			if err != nil {
				return cmd, err
			}
			cmd.Facing = &facing
		}

	case engine.CmdAttack, engine.CmdOverchargeAttack:
		if len(args) != 2 {
			return cmd, fmt.Errorf("usage: %s <unit> <target>", kind)
		}
		cmd.UnitID = args[0]
		cmd.TargetID = args[1]
	}

	return cmd, nil
}

func joinPositions(list []engine.Position) string {
	if len(list) == 0 {
		return "-"
	}
	parts := make([]string, len(list))
	for i, p := range list {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}
