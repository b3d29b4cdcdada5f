package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/strike-tactics/game/engine"
	"github.com/wricardo/strike-tactics/game/service"
)

// Version is reported to MCP clients during initialization
const Version = "1.0.0"

// Server exposes a GameService as MCP tools
type Server struct {
	svc       service.GameService
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server backed by svc
func NewServer(svc service.GameService) *Server {
	s := &Server{svc: svc}
	s.initMCPServer()
	return s
}

// initMCPServer initializes the MCP server with all tools
func (s *Server) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		"Strike Tactics",
		Version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Strike Tactics - MCP Interface

Two sides take turns moving and attacking with their machines on an 8x8 board.
Start with create_session, then read the board with get_state.

AVAILABLE TOOLS:
- create_session / list_sessions / get_session / delete_session / reset_game
- get_state: board, units and whose turn it is
- select_unit, can_move_to: pick a unit and see where it can go
- move, sprint, overcharge_move: reposition a unit (one per unit per turn)
- attack, overcharge_attack: attack an enemy unit
- end_turn: reset your units and pass the turn
- command_history, list_scenarios, game_instructions

Units are named by side letter and number (A1, B2). Coordinates are x,y in 0..7.`),
	)

	s.registerTools()
}

// GetMCPServer returns the underlying MCP server for serving
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves the tools over stdin/stdout until the client disconnects
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func unitProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func coordinateProperty(axis string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": fmt.Sprintf("Target %s coordinate (0-7)", axis),
		"minimum":     engine.MinPosition,
		"maximum":     engine.MaxPosition,
	}
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	// Session management
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Start a new game from a scenario (default scenario when omitted)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"scenario": map[string]interface{}{
					"type":        "string",
					"description": "Scenario ID from list_scenarios (optional)",
				},
			},
		},
	}, s.handleCreateSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListSessions)

	for _, tool := range []struct {
		name, description string
		handler           server.ToolHandlerFunc
	}{
		{"get_session", "Get details of a specific session", s.handleGetSession},
		{"delete_session", "Delete a session", s.handleDeleteSession},
		{"reset_game", "Restart the session's scenario from the beginning", s.handleReset},
		{"get_state", "Get the board, every unit and whose turn it is", s.handleGetState},
		{"end_turn", "Reset the active side's units and pass the turn to the other side", s.commandHandler(engine.CmdEndTurn)},
	} {
		s.mcpServer.AddTool(mcp.Tool{
			Name:        tool.name,
			Description: tool.description,
			InputSchema: mcp.ToolInputSchema{
				Type:       "object",
				Properties: map[string]interface{}{"session_id": sessionProperty()},
				Required:   []string{"session_id"},
			},
		}, tool.handler)
	}

	// Selection
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "select_unit",
		Description: "Select one of the active side's units; omit unit_id to clear the selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"unit_id":    unitProperty("Unit to select, e.g. A1 (optional)"),
			},
			Required: []string{"session_id"},
		},
	}, s.handleSelectUnit)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "can_move_to",
		Description: "List the cells a unit can move to and the cells only a sprint reaches",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"unit_id":    unitProperty("Unit to inspect (defaults to the selected unit)"),
			},
			Required: []string{"session_id"},
		},
	}, s.handleCanMoveTo)

	// Movement
	moves := []struct {
		kind        engine.CommandKind
		description string
	}{
		{engine.CmdMove, "Move a unit up to its movement range. An out-of-range target still spends the unit's move."},
		{engine.CmdSprint, "Move a unit up to one cell past its movement range. The unit cannot attack afterwards."},
		{engine.CmdOverchargeMove, fmt.Sprintf("Move a unit up to its movement range at the cost of %d health", engine.OverchargeHP)},
	}
	for _, m := range moves {
		s.mcpServer.AddTool(mcp.Tool{
			Name:        string(m.kind),
			Description: m.description,
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"session_id": sessionProperty(),
					"unit_id":    unitProperty("Unit to move, e.g. A1"),
					"x":          coordinateProperty("x"),
					"y":          coordinateProperty("y"),
					"facing": map[string]interface{}{
						"type":        "string",
						"description": "Facing after the move: N, E, S or W (optional)",
						"enum":        []string{"N", "E", "S", "W"},
					},
				},
				Required: []string{"session_id", "unit_id", "x", "y"},
			},
		}, s.commandHandler(m.kind))
	}

	// Combat
	attacks := []struct {
		kind        engine.CommandKind
		description string
	}{
		{engine.CmdAttack, "Attack an enemy unit. If the attacker is not stronger both units lose 1 health."},
		{engine.CmdOverchargeAttack, fmt.Sprintf("Attack an enemy unit and pay %d health; the attacker cannot attack again this turn", engine.OverchargeHP)},
	}
	for _, a := range attacks {
		s.mcpServer.AddTool(mcp.Tool{
			Name:        string(a.kind),
			Description: a.description,
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"session_id": sessionProperty(),
					"unit_id":    unitProperty("Attacking unit, e.g. A1"),
					"target_id":  unitProperty("Defending enemy unit, e.g. B2"),
				},
				Required: []string{"session_id", "unit_id", "target_id"},
			},
		}, s.commandHandler(a.kind))
	}

	// Reference
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "command_history",
		Description: "Get the session's executed commands with pagination",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number (default 1)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Commands per page (default 20, max 100)",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"description": "asc or desc (default desc)",
					"enum":        []string{"asc", "desc"},
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleHistory)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_scenarios",
		Description: "List the scenarios a session can be created from",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListScenarios)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the full rules of the game",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameInstructions)
}

func (s *Server) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	scenario, _ := args["scenario"].(string)

	info, err := s.svc.CreateSession(ctx, scenario)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nScenario: %s\n\n%s", info.ID, info.ScenarioID, FormatGameState(info.GameState))
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := s.svc.ListSessions(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Active Sessions (%d):\n\n", len(sessions))
	for _, info := range sessions {
		fmt.Fprintf(&result, "- %s (Scenario: %s, Turn: %d, %s to play, Created: %s)\n",
			info.ID, info.ScenarioID, info.GameState.Turn, info.GameState.ActiveSide,
			info.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := requireString(arguments(request), "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	info, err := s.svc.GetSession(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(info)), nil
}

func (s *Server) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := requireString(arguments(request), "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.svc.DeleteSession(ctx, sessionID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Deleted session: %s", sessionID)), nil
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := requireString(arguments(request), "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state, err := s.svc.ResetSession(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("Game reset\n\n" + FormatGameState(state)), nil
}

func (s *Server) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := requireString(arguments(request), "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state, err := s.svc.GetGameState(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(FormatGameState(state)), nil
}

func (s *Server) handleSelectUnit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	if unitID, _ := args["unit_id"].(string); unitID == "" {
		return s.commandHandler(engine.CmdDeselect)(ctx, request)
	}
	return s.commandHandler(engine.CmdSelect)(ctx, request)
}

func (s *Server) handleCanMoveTo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, err := requireString(args, "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	unitID, _ := args["unit_id"].(string)

	reach, err := s.svc.CanMoveTo(ctx, sessionID, unitID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatReach(reach)), nil
}

// commandHandler builds the handler for one engine command
func (s *Server) commandHandler(kind engine.CommandKind) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(request)
		sessionID, err := requireString(args, "session_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		cmd, err := buildCommand(kind, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		resp, err := s.svc.Execute(ctx, sessionID, cmd)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(formatCommandResponse(resp)), nil
	}
}

func (s *Server) handleHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, err := requireString(args, "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	opts := service.HistoryOptions{}
	if page, ok := args["page"].(float64); ok {
		opts.Page = int(page)
	}
	if limit, ok := args["limit"].(float64); ok {
		opts.Limit = int(limit)
	}
	opts.Order, _ = args["order"].(string)

	history, err := s.svc.GetHistory(ctx, sessionID, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(history)), nil
}

func (s *Server) handleListScenarios(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scenarios, err := s.svc.ListScenarios(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	result.WriteString("Available Scenarios:\n\n")
	for _, info := range scenarios {
		fmt.Fprintf(&result, "• %s (%s)\n  %s\n  Sides: %s, Units: %d\n\n",
			info.ScenarioID, info.Name, info.Description, strings.Join(info.Sides, " vs "), info.Units)
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (s *Server) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(Instructions), nil
}

// buildCommand turns tool arguments into an engine command
func buildCommand(kind engine.CommandKind, args map[string]interface{}) (engine.Command, error) {
	cmd := engine.Command{Kind: kind}
	cmd.UnitID, _ = args["unit_id"].(string)

	switch kind {
	case engine.CmdMove, engine.CmdSprint, engine.CmdOverchargeMove:
		if cmd.UnitID == "" {
			return cmd, fmt.Errorf("unit_id is required")
		}
		x, err := requireInt(args, "x")
		if err != nil {
			return cmd, err
		}
		y, err := requireInt(args, "y")
		if err != nil {
			return cmd, err
		}
		cmd.Target = engine.Position{X: x, Y: y}

		if raw, _ := args["facing"].(string); raw != "" {
			facing, err := engine.ParseFacing(raw)
			if err != nil {
				return cmd, err
			}
			cmd.Facing = &facing
		}

	case engine.CmdAttack, engine.CmdOverchargeAttack:
		if cmd.UnitID == "" {
			return cmd, fmt.Errorf("unit_id is required")
		}
		target, err := requireString(args, "target_id")
		if err != nil {
			return cmd, err
		}
		cmd.TargetID = target
	}

	return cmd, nil
}

// arguments returns the tool arguments, empty when the client sent none
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return args
}

func requireString(args map[string]interface{}, key string) (string, error) {
	v, _ := args[key].(string)
	if v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

// requireInt reads a whole number; JSON numbers arrive as float64
func requireInt(args map[string]interface{}, key string) (int, error) {
	switch v := args[key].(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%s must be a whole number", key)
		}
		return int(v), nil
	case int:
		return v, nil
	case nil:
		return 0, fmt.Errorf("%s is required", key)
	}
	return 0, fmt.Errorf("%s must be a number", key)
}
