// Package mcp serves the game as Model Context Protocol tools.
//
// Server registers one tool per engine command (select_unit, move, sprint,
// overcharge_move, attack, overcharge_attack, end_turn) plus session and
// scenario tools, and forwards every call to a service.GameService running in
// the same process. Results are plain text: a message, then the board with
// units drawn over the terrain.
//
// Usage:
//
//	srv := mcp.NewServer(gameService)
//	if err := srv.ServeStdio(); err != nil {
//		log.Fatal(err)
//	}
//
// Rejected commands come back as tool errors carrying the engine's message,
// so an agent can read why a move or attack was refused and try again.
package mcp
