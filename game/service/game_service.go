package service

import (
	"context"
	"time"

	"github.com/wricardo/strike-tactics/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, scenarioName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error
	ResetSession(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Commands
	Execute(ctx context.Context, sessionID string, cmd engine.Command) (*CommandResponse, error)
	SelectUnit(ctx context.Context, sessionID, unitID string) (*CommandResponse, error)
	Deselect(ctx context.Context, sessionID string) (*CommandResponse, error)
	Move(ctx context.Context, sessionID, unitID string, target engine.Position, facing *engine.Facing) (*CommandResponse, error)
	Sprint(ctx context.Context, sessionID, unitID string, target engine.Position, facing *engine.Facing) (*CommandResponse, error)
	OverchargeMove(ctx context.Context, sessionID, unitID string, target engine.Position, facing *engine.Facing) (*CommandResponse, error)
	Attack(ctx context.Context, sessionID, attackerID, defenderID string) (*CommandResponse, error)
	OverchargeAttack(ctx context.Context, sessionID, attackerID, defenderID string) (*CommandResponse, error)
	EndTurn(ctx context.Context, sessionID string) (*CommandResponse, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	CanMoveTo(ctx context.Context, sessionID, unitID string) (*ReachInfo, error)
	GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Scenarios
	ListScenarios(ctx context.Context) ([]*ScenarioInfo, error)
	LoadScenario(ctx context.Context, name string) (*engine.Scenario, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, scenarioID string, scenario *engine.Scenario) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	LastAccessed(id string) (time.Time, error)
}

// ConfigManager handles scenario loading
type ConfigManager interface {
	LoadScenario(name string) (*engine.Scenario, error)
	ListScenarios() ([]*ScenarioInfo, error)
	GetDefault() *engine.Scenario
}

// Session represents an active game session
type Session struct {
	ID             string
	ScenarioID     string
	Game           *engine.Game
	Scenario       *engine.Scenario
	CreatedAt      time.Time
	LastAccessedAt time.Time // guarded by the session manager
}
