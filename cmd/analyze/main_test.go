package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/strike-tactics/game/engine"
)

func TestTurnsToStrike(t *testing.T) {
	tests := []struct {
		distance, movement, attackRange int
		expected                        int
	}{
		{1, 2, 2, 1},
		{4, 2, 2, 1},
		{5, 2, 2, 2},
		{7, 2, 2, 2},
		{8, 2, 2, 3},
		{11, 2, 2, 4},
		{3, 0, 1, 3},
	}

	for _, test := range tests {
		result := turnsToStrike(test.distance, test.movement, test.attackRange)
		if result != test.expected {
			t.Errorf("turnsToStrike(%d, %d, %d) = %d, expected %d",
				test.distance, test.movement, test.attackRange, result, test.expected)
		}
	}
}

func TestTerrainHistogram(t *testing.T) {
	board := engine.NewBoard(engine.NewRandSource(5))
	counts := terrainHistogram(board.Cells())

	total := 0
	for _, n := range counts {
		total += n
	}
	if total != engine.BoardSize*engine.BoardSize {
		t.Errorf("Expected %d cells, got %d", engine.BoardSize*engine.BoardSize, total)
	}
}

func TestNearestContacts(t *testing.T) {
	game, err := engine.NewGame(engine.DefaultScenario(), engine.NewRandSource(1))
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}

	contacts := nearestContacts(game.State().Sides)
	if len(contacts) != 4 {
		t.Fatalf("Expected 4 contacts, got %d", len(contacts))
	}

	first := contacts[0]
	if first.UnitID != "A2" || first.EnemyID != "B2" || first.Distance != 8 || first.Turns != 3 {
		t.Errorf("Expected A2 -> B2 at 8 on turn 3, got %+v", first)
	}

	for _, c := range contacts {
		if c.UnitID == "A1" && (c.EnemyID != "B2" || c.Distance != 11 || c.Turns != 4) {
			t.Errorf("Expected A1 -> B2 at 11 on turn 4, got %+v", c)
		}
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	duel := `{
		"name": "duel",
		"seed": 7,
		"sides": [
			{"name": "red", "units": [{"archetype": "lancehorn", "x": 3, "y": 5}]},
			{"name": "blue", "units": [{"archetype": "lancehorn", "x": 4, "y": 2, "facing": "S"}]}
		]
	}`
	if err := os.WriteFile(filepath.Join(dir, "duel.json"), []byte(duel), 0644); err != nil {
		t.Fatalf("Failed to write scenario: %v", err)
	}

	var out bytes.Buffer
	if err := run(&out, dir); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, want := range []string{
		"=== Analyzing duel.json ===",
		"Seed: 7",
		"✅ Board is point-symmetric",
		"Side red: 1 units, roster value 2",
		"A1 -> B1: distance 4, can strike on turn 1",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected output to contain %q\n%s", want, out.String())
		}
	}
}

func TestRun_EmptyDir(t *testing.T) {
	var out bytes.Buffer
	if err := run(&out, t.TempDir()); err == nil {
		t.Error("Expected error for directory without scenarios")
	}
}

func TestRun_MissingDir(t *testing.T) {
	var out bytes.Buffer
	if err := run(&out, "/non/existent/dir"); err == nil {
		t.Error("Expected error for missing directory")
	}
}
