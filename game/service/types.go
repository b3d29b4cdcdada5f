package service

import (
	"time"

	"github.com/wricardo/strike-tactics/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string            `json:"id"`
	ScenarioID     string            `json:"scenario_id"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
}

// CommandResponse contains the result of one command
type CommandResponse struct {
	Success   bool                  `json:"success"`
	Message   string                `json:"message"`
	Warning   string                `json:"warning,omitempty"`
	Result    *engine.CommandResult `json:"result"`
	GameState *engine.GameState     `json:"game_state"`
}

// ReachInfo lists where a unit can go this turn
type ReachInfo struct {
	UnitID   string            `json:"unit_id"`
	Position engine.Position   `json:"position"`
	Moves    []engine.Position `json:"moves"`
	Sprints  []engine.Position `json:"sprints"`
}

// HistoryOptions configures command history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated command history
type HistoryResponse struct {
	Commands      []engine.CommandResult `json:"commands"`
	TotalCommands int                    `json:"total_commands"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
	TotalPages    int                    `json:"total_pages"`
	HasNext       bool                   `json:"has_next"`
	HasPrevious   bool                   `json:"has_previous"`
}

// ScenarioInfo provides information about a scenario file
type ScenarioInfo struct {
	Filename    string   `json:"filename"`
	ScenarioID  string   `json:"scenario_id"` // The identifier to use for session creation
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Sides       []string `json:"sides"`
	Units       int      `json:"units"`
	Seed        int64    `json:"seed,omitempty"`
}

// NewScenarioInfo summarizes a scenario loaded from filename
func NewScenarioInfo(id, filename string, s *engine.Scenario) *ScenarioInfo {
	info := &ScenarioInfo{
		Filename:    filename,
		ScenarioID:  id,
		Name:        s.Name,
		Description: s.Description,
		Seed:        s.Seed,
	}
	for _, side := range s.Sides {
		info.Sides = append(info.Sides, side.Name)
		info.Units += len(side.Units)
	}
	return info
}
