// Package service is the layer transports talk to.
//
// GameService wraps sessions, scenarios and the engine behind a
// context-taking API. All commands funnel through Execute, which runs them
// against the session's engine.Game one at a time and returns a
// CommandResponse with the updated state.
//
// SessionManager and ConfigManager are implemented by the session and
// config packages; tests substitute their own.
//
// Usage:
//
//	sessions := session.NewManager()
//	scenarios, _ := config.NewManager("configs")
//	svc := service.NewGameService(sessions, scenarios)
//
//	info, err := svc.CreateSession(ctx, "skirmish")
//	if err != nil {
//		return err
//	}
//
//	resp, err := svc.Move(ctx, info.ID, "A1", engine.Position{X: 0, Y: 5}, nil)
//	resp, err = svc.EndTurn(ctx, info.ID)
//
// A move aimed out of range is not an error: the unit stays put, its move is
// spent, and the response carries Success=false with a Warning.
package service
