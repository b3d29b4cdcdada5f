// Package session keeps the games that are in progress.
//
// Manager is a thread-safe registry of service.Session values keyed by a
// short case-insensitive ID. Each session owns one engine.Game built from
// the scenario it was created with; sessions never share units or boards.
//
// Usage:
//
//	manager := session.NewManagerWithLogger(logger)
//
//	sess, err := manager.Create("", "skirmish", scenario)
//	if err != nil {
//		return err
//	}
//
//	sess, err = manager.Get(sess.ID)
//	sessions := manager.List()
//
// Sessions live in memory only. CleanupExpiredSessions drops the ones that
// have not been touched for a while.
package session
