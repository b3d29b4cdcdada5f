// Package engine provides the rules engine for the Strike tactics game.
//
// The engine package implements the game mechanics including:
//   - Point-symmetric 8x8 terrain generation
//   - Machine archetypes with stats, armor by facing and per-turn flags
//   - Move and sprint reach computation on Manhattan distance
//   - Combat resolution, defense breaks and overcharge costs
//   - Per-side turn control and an explicit command dispatcher
//
// Core Types:
//
// Board holds the immutable terrain grid. Unit describes one machine.
// Controller owns the roster of one side, tracks its selection and resets
// turn flags at the end of its turn. Game ties a board to two controllers
// and executes Commands on behalf of the side to play.
//
// Usage:
//
//	game, err := engine.NewGame(engine.DefaultScenario(), nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Select a unit and look at where it can go
//	game.Execute(engine.Command{Kind: engine.CmdSelect, UnitID: "A1"})
//	reach := game.CanMoveTo()
//
//	// Walk it two cells north
//	res, err := game.Execute(engine.Command{
//		Kind:   engine.CmdMove,
//		UnitID: "A1",
//		Target: engine.Position{X: 0, Y: 5},
//	})
//
// Game Rules:
//
// A unit may walk up to its movement range or sprint one cell further, which
// costs it its attack for the turn. Any move attempt spends the unit's move,
// even one aimed at a cell out of reach. An attack deals the difference in
// attack power; when that difference is not positive both units lose one
// health instead. Overcharged actions cost the acting unit two health.
//
// The engine is synchronous and holds no locks. Callers that share a Game
// between goroutines must serialize access themselves.
package engine
