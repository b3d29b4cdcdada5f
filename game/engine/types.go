package engine

import (
	"fmt"
	"strings"
)

const (
	// BoardSize is the width and height of the playing grid
	BoardSize = 8

	// Validation constants
	MinPosition  = 0
	MaxPosition  = BoardSize - 1
	OverchargeHP = 2
	MaxUnitsSide = BoardSize * BoardSize / 2
)

// TerrainCell represents the terrain of a single board cell
type TerrainCell int

const (
	Chasm     TerrainCell = -2
	Marsh     TerrainCell = -1
	Grassland TerrainCell = 0
	Forest    TerrainCell = 1
	Hill      TerrainCell = 2
	Mountain  TerrainCell = 3
)

// TerrainTypes lists every terrain value in ordinal order
var TerrainTypes = []TerrainCell{Chasm, Marsh, Grassland, Forest, Hill, Mountain}

func (t TerrainCell) String() string {
	switch t {
	case Chasm:
		return "chasm"
	case Marsh:
		return "marsh"
	case Grassland:
		return "grassland"
	case Forest:
		return "forest"
	case Hill:
		return "hill"
	case Mountain:
		return "mountain"
	}
	return fmt.Sprintf("terrain(%d)", int(t))
}

// Symbol returns the single character used for text rendering
func (t TerrainCell) Symbol() byte {
	switch t {
	case Chasm:
		return '#'
	case Marsh:
		return '~'
	case Grassland:
		return '.'
	case Forest:
		return 'f'
	case Hill:
		return 'h'
	case Mountain:
		return '^'
	}
	return '?'
}

// Position represents x,y coordinates on the board
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Valid reports whether both coordinates are inside the board
func (p Position) Valid() bool {
	return p.X >= MinPosition && p.X <= MaxPosition && p.Y >= MinPosition && p.Y <= MaxPosition
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Facing is a unit orientation; it also keys the armor table
type Facing int

const (
	North Facing = iota
	East
	South
	West
)

// Facings lists the four orientations clockwise from North
var Facings = []Facing{North, East, South, West}

// Next returns the facing rotated 90 degrees clockwise
func (f Facing) Next() Facing {
	return (f + 1) % 4
}

// Prev returns the facing rotated 90 degrees counter-clockwise
func (f Facing) Prev() Facing {
	return (f + 3) % 4
}

func (f Facing) String() string {
	switch f {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	}
	return fmt.Sprintf("facing(%d)", int(f))
}

// ParseFacing accepts N/E/S/W or the full direction name, case-insensitive
func ParseFacing(s string) (Facing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "north":
		return North, nil
	case "e", "east":
		return East, nil
	case "s", "south":
		return South, nil
	case "w", "west":
		return West, nil
	}
	return North, fmt.Errorf("unknown facing %q", s)
}

// ArmorType is the protection a unit has on one side
type ArmorType int

const (
	Weak ArmorType = iota
	Neutral
	Armored
)

func (a ArmorType) String() string {
	switch a {
	case Weak:
		return "weak"
	case Neutral:
		return "neutral"
	case Armored:
		return "armored"
	}
	return fmt.Sprintf("armor(%d)", int(a))
}

// Armor maps every facing to an armor type
type Armor [4]ArmorType

// For returns the armor on the given side
func (a Armor) For(f Facing) ArmorType {
	return a[f%4]
}

// ArchetypeKind is the machine class of a unit
type ArchetypeKind int

const (
	Swoop ArchetypeKind = iota
	Melee
	Dash
	Ram
	Gunner
	Pull
)

func (k ArchetypeKind) String() string {
	switch k {
	case Swoop:
		return "swoop"
	case Melee:
		return "melee"
	case Dash:
		return "dash"
	case Ram:
		return "ram"
	case Gunner:
		return "gunner"
	case Pull:
		return "pull"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Stats are the numeric attributes of a unit
type Stats struct {
	AttackPower   int `json:"attack_power" mapstructure:"attack_power"`
	AttackRange   int `json:"attack_range" mapstructure:"attack_range"`
	MovementRange int `json:"movement_range" mapstructure:"movement_range"`
	Health        int `json:"health" mapstructure:"health"`
}

// TurnFlags gate what a unit may still do this turn
type TurnFlags struct {
	MoveDisabled       bool `json:"move_disabled"`
	AttackDisabled     bool `json:"attack_disabled"`
	OverchargeDisabled bool `json:"overcharge_disabled"`
}

// Unit represents a single machine on the board
type Unit struct {
	ID       string        `json:"id"`
	Value    int           `json:"value"`
	Name     string        `json:"name"`
	Kind     ArchetypeKind `json:"kind"`
	Position Position      `json:"position"`
	Facing   Facing        `json:"facing"`
	Stats    Stats         `json:"stats"`
	Armor    Armor         `json:"armor"`
	Flags    TurnFlags     `json:"flags"`
}

// Reach holds the cells a unit can walk to and the cells it can sprint to
type Reach struct {
	Moves   []Position `json:"moves"`
	Sprints []Position `json:"sprints"`
}

// Contains reports whether p is in the given list
func Contains(list []Position, p Position) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}
