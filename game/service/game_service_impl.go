package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/wricardo/strike-tactics/game/engine"
)

// ErrScenarioUnavailable is returned when a session asks for a scenario that
// cannot be loaded
var ErrScenarioUnavailable = errors.New("scenario unavailable")

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	log      zerolog.Logger
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance that does not log
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return NewGameServiceWithLogger(sessions, configs, zerolog.Nop())
}

// NewGameServiceWithLogger creates a new game service instance
func NewGameServiceWithLogger(sessions SessionManager, configs ConfigManager, log zerolog.Logger) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		log:      log.With().Str("component", "service").Logger(),
	}
}

// CreateSession creates a new game session. An empty scenario name uses the
// default scenario.
func (s *gameServiceImpl) CreateSession(ctx context.Context, scenarioName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scenarioID := scenarioName
	var scenario *engine.Scenario
	if scenarioName != "" {
		var err error
		scenario, err = s.configs.LoadScenario(scenarioName)
		if err != nil {
			return nil, s.scenarioError(scenarioName, err)
		}
	} else {
		scenario = s.configs.GetDefault()
		scenarioID = scenario.Name
	}

	session, err := s.sessions.Create("", scenarioID, scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.log.Info().Str("session", session.ID).Str("scenario", scenarioID).Msg("game started")
	return s.sessionInfo(session), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("session not found: %w", err)
	}
	return nil
}

// ResetSession starts the session's scenario over on a freshly generated
// board. Seeded scenarios get the same board back.
func (s *gameServiceImpl) ResetSession(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	game, err := engine.NewGame(sess.Scenario, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to reset game: %w", err)
	}
	sess.Game = game

	s.log.Info().Str("session", sess.ID).Msg("game reset")
	return game.State(), nil
}

// Execute runs one command for the side whose turn it is
func (s *gameServiceImpl) Execute(ctx context.Context, sessionID string, cmd engine.Command) (*CommandResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	result, err := sess.Game.Execute(cmd)
	if err != nil {
		s.log.Debug().Str("session", sess.ID).Str("command", string(cmd.Kind)).Err(err).Msg("command rejected")
		return nil, err
	}

	resp := &CommandResponse{
		Success:   true,
		Message:   result.Message,
		Result:    result,
		GameState: sess.Game.State(),
	}
	if result.Move != nil {
		if moveErr := result.Move.Err(); moveErr != nil {
			resp.Success = false
			resp.Warning = moveErr.Error()
		}
	}

	s.log.Debug().
		Str("session", sess.ID).
		Str("side", result.Side).
		Str("command", string(cmd.Kind)).
		Msg(result.Message)
	return resp, nil
}

// SelectUnit selects a unit of the active side
func (s *gameServiceImpl) SelectUnit(ctx context.Context, sessionID, unitID string) (*CommandResponse, error) {
	return s.Execute(ctx, sessionID, engine.Command{Kind: engine.CmdSelect, UnitID: unitID})
}

// Deselect clears the active side's selection
func (s *gameServiceImpl) Deselect(ctx context.Context, sessionID string) (*CommandResponse, error) {
	return s.Execute(ctx, sessionID, engine.Command{Kind: engine.CmdDeselect})
}

// Move walks a unit within its movement range
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, unitID string, target engine.Position, facing *engine.Facing) (*CommandResponse, error) {
	return s.Execute(ctx, sessionID, engine.Command{Kind: engine.CmdMove, UnitID: unitID, Target: target, Facing: facing})
}

// Sprint moves a unit one cell past its range and spends its attack
func (s *gameServiceImpl) Sprint(ctx context.Context, sessionID, unitID string, target engine.Position, facing *engine.Facing) (*CommandResponse, error) {
	return s.Execute(ctx, sessionID, engine.Command{Kind: engine.CmdSprint, UnitID: unitID, Target: target, Facing: facing})
}

// OverchargeMove moves a unit at the cost of health
func (s *gameServiceImpl) OverchargeMove(ctx context.Context, sessionID, unitID string, target engine.Position, facing *engine.Facing) (*CommandResponse, error) {
	return s.Execute(ctx, sessionID, engine.Command{Kind: engine.CmdOverchargeMove, UnitID: unitID, Target: target, Facing: facing})
}

// Attack resolves an attack against an enemy unit
func (s *gameServiceImpl) Attack(ctx context.Context, sessionID, attackerID, defenderID string) (*CommandResponse, error) {
	return s.Execute(ctx, sessionID, engine.Command{Kind: engine.CmdAttack, UnitID: attackerID, TargetID: defenderID})
}

// OverchargeAttack attacks and pays health for it
func (s *gameServiceImpl) OverchargeAttack(ctx context.Context, sessionID, attackerID, defenderID string) (*CommandResponse, error) {
	return s.Execute(ctx, sessionID, engine.Command{Kind: engine.CmdOverchargeAttack, UnitID: attackerID, TargetID: defenderID})
}

// EndTurn resets the active side and passes the turn
func (s *gameServiceImpl) EndTurn(ctx context.Context, sessionID string) (*CommandResponse, error) {
	return s.Execute(ctx, sessionID, engine.Command{Kind: engine.CmdEndTurn})
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Game.State(), nil
}

// CanMoveTo lists the reach of a unit. An empty unitID uses the active
// side's selection.
func (s *gameServiceImpl) CanMoveTo(ctx context.Context, sessionID, unitID string) (*ReachInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var unit engine.Unit
	if unitID == "" {
		sel, ok := sess.Game.Selection()
		if !ok {
			return nil, fmt.Errorf("%w: no unit selected", engine.ErrIllegalSelection)
		}
		unit = sel
	} else {
		u, ok := sess.Game.Unit(unitID)
		if !ok {
			return nil, fmt.Errorf("%w: %q", engine.ErrUnknownUnit, unitID)
		}
		unit = u
	}

	// Reachable only reads the unit, so a snapshot is enough
	reach := engine.Reachable(sess.Game.Board(), &unit)
	return &ReachInfo{
		UnitID:   unit.ID,
		Position: unit.Position,
		Moves:    reach.Moves,
		Sprints:  reach.Sprints,
	}, nil
}

// GetHistory returns paginated command history
func (s *gameServiceImpl) GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Game.History()
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	commands := []engine.CommandResult{}
	if start < total {
		if opts.Order == "desc" {
			for i := total - 1 - start; i >= total-end; i-- {
				commands = append(commands, history[i])
			}
		} else {
			commands = append(commands, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Commands:      commands,
		TotalCommands: total,
		Page:          opts.Page,
		PageSize:      opts.Limit,
		TotalPages:    totalPages,
		HasNext:       opts.Page < totalPages,
		HasPrevious:   opts.Page > 1,
	}, nil
}

// ListScenarios returns available scenarios
func (s *gameServiceImpl) ListScenarios(ctx context.Context) ([]*ScenarioInfo, error) {
	return s.configs.ListScenarios()
}

// LoadScenario loads a specific scenario
func (s *gameServiceImpl) LoadScenario(ctx context.Context, name string) (*engine.Scenario, error) {
	scenario, err := s.configs.LoadScenario(name)
	if err != nil {
		return nil, s.scenarioError(name, err)
	}
	return scenario, nil
}

// session looks up a session and marks it as used
func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	if err := s.sessions.UpdateLastAccessed(sess.ID); err != nil {
		s.log.Debug().Err(err).Str("session", sess.ID).Msg("session removed during lookup")
		return nil, fmt.Errorf("session not found: %w", err)
	}
	return sess, nil
}

// scenarioError lists the available scenarios next to a load failure
func (s *gameServiceImpl) scenarioError(name string, err error) error {
	available, listErr := s.configs.ListScenarios()
	if listErr != nil || len(available) == 0 {
		return fmt.Errorf("%w: %s: %w", ErrScenarioUnavailable, name, err)
	}

	ids := make([]string, 0, len(available))
	for _, info := range available {
		ids = append(ids, info.ScenarioID)
	}
	return fmt.Errorf("%w: %s (available: %s): %w", ErrScenarioUnavailable, name, strings.Join(ids, ", "), err)
}

// sessionInfo reads the access time through the session manager, which
// owns that field
func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	lastAccessed, err := s.sessions.LastAccessed(sess.ID)
	if err != nil {
		lastAccessed = sess.CreatedAt
	}
	return &SessionInfo{
		ID:             sess.ID,
		ScenarioID:     sess.ScenarioID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: lastAccessed,
		GameState:      sess.Game.State(),
	}
}
