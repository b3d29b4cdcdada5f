package engine

import (
	"fmt"
	"sort"
	"strings"
)

// ArchetypeFactory builds a fresh unit of one archetype at a start position
type ArchetypeFactory func(pos Position) *Unit

var archetypes = map[string]ArchetypeFactory{
	"lancehorn": Lancehorn,
}

// Lancehorn is a cheap ram machine: weak attack, short movement, heavily
// armored front and exposed flanks.
func Lancehorn(pos Position) *Unit {
	return &Unit{
		Value:    2,
		Name:     "Lancehorn",
		Kind:     Ram,
		Position: pos,
		Facing:   North,
		Stats: Stats{
			AttackPower:   2,
			AttackRange:   2,
			MovementRange: 2,
			Health:        5,
		},
		Armor: Armor{
			North: Armored,
			East:  Weak,
			South: Neutral,
			West:  Weak,
		},
	}
}

// NewUnit builds a unit from a registered archetype name
func NewUnit(archetype string, pos Position) (*Unit, error) {
	factory, ok := archetypes[strings.ToLower(archetype)]
	if !ok {
		return nil, fmt.Errorf("unknown archetype %q (available: %s)", archetype, strings.Join(Archetypes(), ", "))
	}
	return factory(pos), nil
}

// Archetypes returns the registered archetype names, sorted
func Archetypes() []string {
	names := make([]string, 0, len(archetypes))
	for name := range archetypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
