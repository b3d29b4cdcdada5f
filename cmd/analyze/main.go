// Command analyze prints quick, human-readable heuristics about the scenario
// files in a configs directory. For each scenario it summarizes the terrain
// mix of the generated board, the roster value of each side, and how many
// turns every unit needs before it can strike its nearest enemy.
//
// Usage:
//
//	analyze [configs-dir]
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/wricardo/strike-tactics/game/config"
	"github.com/wricardo/strike-tactics/game/engine"
)

// Contact describes the closest enemy of one unit
type Contact struct {
	UnitID   string
	EnemyID  string
	Distance int
	Turns    int
}

func main() {
	dir := "configs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := run(os.Stdout, dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, dir string) error {
	manager, err := config.NewManager(dir)
	if err != nil {
		return err
	}

	infos, err := manager.ListScenarios()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		return fmt.Errorf("no scenarios in %s", dir)
	}

	for _, info := range infos {
		fmt.Fprintf(w, "\n=== Analyzing %s ===\n", info.Filename)
		scenario, err := config.ReadScenario(filepath.Join(dir, info.Filename))
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			continue
		}
		if err := analyzeScenario(w, scenario); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
		}
	}
	return nil
}

func analyzeScenario(w io.Writer, scenario *engine.Scenario) error {
	game, err := engine.NewGame(scenario, nil)
	if err != nil {
		return err
	}
	state := game.State()

	fmt.Fprintf(w, "Name: %s\n", scenario.Name)
	if scenario.Seed != 0 {
		fmt.Fprintf(w, "Seed: %d\n", scenario.Seed)
	} else {
		fmt.Fprintf(w, "Seed: none (board differs per game)\n")
	}

	counts := terrainHistogram(state.Board)
	fmt.Fprintf(w, "Terrain:")
	for _, t := range engine.TerrainTypes {
		fmt.Fprintf(w, " %s=%d", t, counts[t])
	}
	fmt.Fprintln(w)

	if game.Board().IsSymmetric() {
		fmt.Fprintf(w, "✅ Board is point-symmetric\n")
	} else {
		fmt.Fprintf(w, "⚠️  WARNING: board is not point-symmetric\n")
	}

	for _, side := range state.Sides {
		fmt.Fprintf(w, "Side %s: %d units, roster value %d\n", side.Name, len(side.Units), side.RosterValue)
	}

	contacts := nearestContacts(state.Sides)
	if len(contacts) == 0 {
		fmt.Fprintf(w, "⚠️  WARNING: no opposing units to engage\n")
		return nil
	}
	for _, c := range contacts {
		fmt.Fprintf(w, "   %s -> %s: distance %d, can strike on turn %d\n", c.UnitID, c.EnemyID, c.Distance, c.Turns)
	}
	return nil
}

// terrainHistogram counts the cells of each terrain type
func terrainHistogram(cells [][]engine.TerrainCell) map[engine.TerrainCell]int {
	counts := make(map[engine.TerrainCell]int)
	for _, column := range cells {
		for _, cell := range column {
			counts[cell]++
		}
	}
	return counts
}

// nearestContacts pairs every unit with the closest unit of another side
func nearestContacts(sides []engine.SideState) []Contact {
	var contacts []Contact
	for i, side := range sides {
		for _, u := range side.Units {
			best := Contact{UnitID: u.ID, Distance: -1}
			for j, other := range sides {
				if i == j {
					continue
				}
				for _, enemy := range other.Units {
					d := engine.ManhattanDistance(u.Position, enemy.Position)
					if best.Distance < 0 || d < best.Distance {
						best.EnemyID = enemy.ID
						best.Distance = d
					}
				}
			}
			if best.Distance < 0 {
				continue
			}
			best.Turns = turnsToStrike(best.Distance, u.Stats.MovementRange, u.Stats.AttackRange)
			contacts = append(contacts, best)
		}
	}

	sort.Slice(contacts, func(i, j int) bool {
		if contacts[i].Turns != contacts[j].Turns {
			return contacts[i].Turns < contacts[j].Turns
		}
		return contacts[i].UnitID < contacts[j].UnitID
	})
	return contacts
}

// turnsToStrike is the first turn on which a unit can attack a target
// distance cells away, sprinting (movement+1, no attack) on every earlier
// turn and walking then attacking on the last one
func turnsToStrike(distance, movement, attackRange int) int {
	gap := distance - attackRange - movement
	if gap <= 0 {
		return 1
	}
	sprint := movement + 1
	return 1 + (gap+sprint-1)/sprint
}
