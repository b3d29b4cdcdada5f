package engine

import (
	"fmt"
	"strings"
)

// Scenario describes how a game starts: the seed for terrain and the
// starting roster of both sides
type Scenario struct {
	Name        string       `json:"name" mapstructure:"name"`
	Description string       `json:"description" mapstructure:"description"`
	Seed        int64        `json:"seed,omitempty" mapstructure:"seed"`
	Sides       []SideConfig `json:"sides" mapstructure:"sides"`
}

// SideConfig is the roster of one side
type SideConfig struct {
	Name  string          `json:"name" mapstructure:"name"`
	Units []UnitPlacement `json:"units" mapstructure:"units"`
}

// UnitPlacement places one archetype on the board. Stats, when set,
// replaces the archetype's stats.
type UnitPlacement struct {
	Archetype string `json:"archetype" mapstructure:"archetype"`
	X         int    `json:"x" mapstructure:"x"`
	Y         int    `json:"y" mapstructure:"y"`
	Facing    string `json:"facing,omitempty" mapstructure:"facing"`
	Stats     *Stats `json:"stats,omitempty" mapstructure:"stats"`
}

// DefaultScenario is two Lancehorns per side on opposite back rows
func DefaultScenario() *Scenario {
	return &Scenario{
		Name:        "skirmish",
		Description: "Two Lancehorns per side on opposite back rows",
		Sides: []SideConfig{
			{
				Name: "red",
				Units: []UnitPlacement{
					{Archetype: "lancehorn", X: 0, Y: 7, Facing: "N"},
					{Archetype: "lancehorn", X: 3, Y: 7, Facing: "N"},
				},
			},
			{
				Name: "blue",
				Units: []UnitPlacement{
					{Archetype: "lancehorn", X: 7, Y: 0, Facing: "S"},
					{Archetype: "lancehorn", X: 4, Y: 0, Facing: "S"},
				},
			},
		},
	}
}

// ValidateScenario validates a scenario for correctness and playability
func ValidateScenario(s *Scenario) error {
	if s == nil {
		return fmt.Errorf("%w: scenario is nil", ErrInvalidScenario)
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidScenario)
	}
	if len(s.Sides) != 2 {
		return fmt.Errorf("%w: exactly 2 sides required, got %d", ErrInvalidScenario, len(s.Sides))
	}

	names := make(map[string]bool)
	occupied := make(map[Position]string)

	for i, side := range s.Sides {
		name := strings.ToLower(strings.TrimSpace(side.Name))
		if name == "" {
			return fmt.Errorf("%w: side %d has no name", ErrInvalidScenario, i+1)
		}
		if names[name] {
			return fmt.Errorf("%w: duplicate side name %q", ErrInvalidScenario, side.Name)
		}
		names[name] = true

		if len(side.Units) == 0 {
			return fmt.Errorf("%w: side %q has no units", ErrInvalidScenario, side.Name)
		}
		if len(side.Units) > MaxUnitsSide {
			return fmt.Errorf("%w: side %q has %d units, max is %d", ErrInvalidScenario, side.Name, len(side.Units), MaxUnitsSide)
		}

		for j, placement := range side.Units {
			where := fmt.Sprintf("side %q unit %d", side.Name, j+1)

			if _, err := NewUnit(placement.Archetype, Position{}); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidScenario, where, err)
			}

			pos := Position{X: placement.X, Y: placement.Y}
			if !pos.Valid() {
				return fmt.Errorf("%w: %s: position %s outside board", ErrInvalidScenario, where, pos)
			}
			if other, taken := occupied[pos]; taken {
				return fmt.Errorf("%w: %s: position %s already taken by %s", ErrInvalidScenario, where, pos, other)
			}
			occupied[pos] = where

			if placement.Facing != "" {
				if _, err := ParseFacing(placement.Facing); err != nil {
					return fmt.Errorf("%w: %s: %v", ErrInvalidScenario, where, err)
				}
			}

			if st := placement.Stats; st != nil {
				if st.AttackPower < 0 || st.AttackRange < 0 || st.MovementRange < 0 || st.Health < 0 {
					return fmt.Errorf("%w: %s: stats must be non-negative", ErrInvalidScenario, where)
				}
			}
		}
	}

	return nil
}
