package session

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/strike-tactics/game/engine"
)

func TestManager_Create(t *testing.T) {
	manager := NewManager()
	scenario := engine.DefaultScenario()

	t.Run("create with custom ID", func(t *testing.T) {
		session, err := manager.Create("test-session", "skirmish", scenario)
		require.NoError(t, err)
		assert.Equal(t, "test-session", session.ID)
		assert.Equal(t, "skirmish", session.ScenarioID)
		require.NotNil(t, session.Game)
		assert.Len(t, session.Game.Units(), 4)
	})

	t.Run("create with auto-generated ID", func(t *testing.T) {
		session, err := manager.Create("", "skirmish", scenario)
		require.NoError(t, err)
		assert.Len(t, session.ID, 4)
	})

	t.Run("duplicate session ID", func(t *testing.T) {
		_, err := manager.Create("test-session", "skirmish", scenario)
		assert.ErrorIs(t, err, ErrSessionAlreadyExists)
	})

	t.Run("case-insensitive duplicate check", func(t *testing.T) {
		_, err := manager.Create("TEST-SESSION", "skirmish", scenario)
		assert.ErrorIs(t, err, ErrSessionAlreadyExists)
	})

	t.Run("invalid ID", func(t *testing.T) {
		_, err := manager.Create("has space", "skirmish", scenario)
		assert.ErrorIs(t, err, ErrInvalidSessionID)
	})

	t.Run("invalid scenario", func(t *testing.T) {
		bad := engine.DefaultScenario()
		bad.Sides = nil
		_, err := manager.Create("bad", "bad", bad)
		assert.ErrorIs(t, err, engine.ErrInvalidScenario)
		assert.False(t, manager.Exists("bad"))
	})
}

func TestManager_Get(t *testing.T) {
	manager := NewManager()
	created, err := manager.Create("Abc1", "skirmish", engine.DefaultScenario())
	require.NoError(t, err)

	t.Run("get existing session", func(t *testing.T) {
		session, err := manager.Get("Abc1")
		require.NoError(t, err)
		assert.Same(t, created, session)
	})

	t.Run("case-insensitive get", func(t *testing.T) {
		session, err := manager.Get("ABC1")
		require.NoError(t, err)
		assert.Same(t, created, session)
	})

	t.Run("get non-existent session", func(t *testing.T) {
		_, err := manager.Get("nope")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager()
	_, err := manager.Create("gone", "skirmish", engine.DefaultScenario())
	require.NoError(t, err)

	require.NoError(t, manager.Delete("GONE"))
	assert.False(t, manager.Exists("gone"))
	assert.ErrorIs(t, manager.Delete("gone"), ErrSessionNotFound)
}

func TestManager_List(t *testing.T) {
	manager := NewManager()
	assert.Empty(t, manager.List())

	ids := []string{"s1", "s2", "s3"}
	for _, id := range ids {
		_, err := manager.Create(id, "skirmish", engine.DefaultScenario())
		require.NoError(t, err)
	}

	sessions := manager.List()
	require.Len(t, sessions, 3)
	for i, session := range sessions {
		assert.Equal(t, ids[i], session.ID)
	}
	assert.Equal(t, 3, manager.Count())
}

func TestManager_CleanupExpired(t *testing.T) {
	manager := NewManager()
	old, err := manager.Create("old", "skirmish", engine.DefaultScenario())
	require.NoError(t, err)
	_, err = manager.Create("fresh", "skirmish", engine.DefaultScenario())
	require.NoError(t, err)

	old.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	removed := manager.CleanupExpiredSessions(time.Hour)
	assert.Equal(t, 1, removed)
	assert.False(t, manager.Exists("old"))
	assert.True(t, manager.Exists("fresh"))
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager()
	session, err := manager.Create("touch", "skirmish", engine.DefaultScenario())
	require.NoError(t, err)

	session.LastAccessedAt = time.Now().Add(-time.Minute)
	before := session.LastAccessedAt

	require.NoError(t, manager.UpdateLastAccessed("TOUCH"))
	assert.True(t, session.LastAccessedAt.After(before))

	assert.ErrorIs(t, manager.UpdateLastAccessed("missing"), ErrSessionNotFound)

	last, err := manager.LastAccessed("touch")
	require.NoError(t, err)
	assert.True(t, last.After(before))

	_, err = manager.LastAccessed("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager()
	scenario := engine.DefaultScenario()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session, err := manager.Create("", "skirmish", scenario)
			if !assert.NoError(t, err) {
				return
			}
			_, err = manager.Get(session.ID)
			assert.NoError(t, err)
			manager.List()
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, manager.Count())
}

func TestManager_SessionIsolation(t *testing.T) {
	manager := NewManager()
	scenario := engine.DefaultScenario()

	s1, err := manager.Create("one", "skirmish", scenario)
	require.NoError(t, err)
	s2, err := manager.Create("two", "skirmish", scenario)
	require.NoError(t, err)

	_, err = s1.Game.Execute(engine.Command{Kind: engine.CmdMove, UnitID: "A1", Target: engine.Position{X: 0, Y: 5}})
	require.NoError(t, err)

	u1, _ := s1.Game.Unit("A1")
	u2, _ := s2.Game.Unit("A1")
	assert.Equal(t, engine.Position{X: 0, Y: 5}, u1.Position)
	assert.Equal(t, engine.Position{X: 0, Y: 7}, u2.Position)
	assert.False(t, u2.Flags.MoveDisabled)
}

func TestManager_SessionIDGeneration(t *testing.T) {
	manager := NewManager()
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		session, err := manager.Create("", "skirmish", engine.DefaultScenario())
		require.NoError(t, err)

		assert.Len(t, session.ID, 4)
		assert.Equal(t, strings.ToLower(session.ID), session.ID)
		assert.False(t, seen[session.ID], "duplicate ID %s", session.ID)
		seen[session.ID] = true
	}
}
