package storage

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubesim"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.MigrateUp())
	return db
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.MigrateUp())

	v, err := db.CurrentVersion()
	require.NoError(t, err)
	require.Equal(t, LatestVersion(), v)
}

func TestOpenAppliesPragmas(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	require.Equal(t, 1, fk)

	var mode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	require.Equal(t, "wal", mode)
}

func TestInTxRollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec("CREATE TABLE scratch (n INTEGER)")
	require.NoError(t, err)

	boom := errors.New("boom")
	err = db.InTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("INSERT INTO scratch (n) VALUES (1)"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM scratch").Scan(&n))
	require.Zero(t, n)
}

func TestFreshDatabaseHasVersionZero(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "nested", "fresh.db"))
	require.NoError(t, err)
	defer db.Close()

	v, err := db.CurrentVersion()
	require.NoError(t, err)
	require.Zero(t, v)
}

func TestSessionLifecycle(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)

	id, err := sessions.Create(SourcePlay, 1<<63+5)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.NoError(t, sessions.SetShuffle(id, "R U F'"))
	require.NoError(t, sessions.End(id, 12, true))

	s, err := sessions.Get(id)
	require.NoError(t, err)
	require.NotNil(t, s)
	require.Equal(t, SourcePlay, s.Source)
	require.Equal(t, uint64(1<<63+5), s.Seed)
	require.NotNil(t, s.ShuffleText)
	require.Equal(t, "R U F'", *s.ShuffleText)
	require.NotNil(t, s.EndedAt)
	require.NotNil(t, s.DurationMs)
	require.Equal(t, 12, s.MoveCount)
	require.True(t, s.Solved)
	require.False(t, s.StartedAt.IsZero())
}

func TestGetMissingSession(t *testing.T) {
	db := openTestDB(t)
	s, err := NewSessionRepository(db).Get("missing")
	require.NoError(t, err)
	require.Nil(t, s)
}

func TestEndMissingSession(t *testing.T) {
	db := openTestDB(t)
	require.Error(t, NewSessionRepository(db).End("missing", 0, false))
}

func TestListSessionsNewestFirst(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := sessions.Create(SourceApply, uint64(i))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	all, err := sessions.List(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, ids[2], all[0].SessionID)
	require.Equal(t, ids[0], all[2].SessionID)
	require.Nil(t, all[0].EndedAt)

	limited, err := sessions.List(2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
}

func TestMoveRoundTrip(t *testing.T) {
	db := openTestDB(t)
	id, err := NewSessionRepository(db).Create(SourcePlay, 1)
	require.NoError(t, err)

	moves := NewMoveRepository(db)
	require.NoError(t, moves.CreateBatch(id, cubesim.TPerm[:3], 0, 100, KindShuffle))

	next, err := moves.NextSeq(id)
	require.NoError(t, err)
	require.Equal(t, 3, next)

	_, err = moves.Create(id, next, 200, cubesim.MPrime, KindMove)
	require.NoError(t, err)

	records, err := moves.ListBySession(id)
	require.NoError(t, err)
	require.Len(t, records, 4)
	require.Equal(t, "M'", records[3].Notation)
	require.Equal(t, KindMove, records[3].Kind)
	require.Equal(t, []cubesim.Move{cubesim.R, cubesim.U, cubesim.RPrime, cubesim.MPrime}, ToMoves(records))

	n, err := moves.Count(id, "")
	require.NoError(t, err)
	require.Equal(t, 4, n)
	n, err = moves.Count(id, KindShuffle)
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestMoveRequiresSession(t *testing.T) {
	db := openTestDB(t)
	_, err := NewMoveRepository(db).Create("missing", 0, 0, cubesim.R, KindMove)
	require.Error(t, err)
}

func TestDuplicateSeqRollsBackBatch(t *testing.T) {
	db := openTestDB(t)
	id, err := NewSessionRepository(db).Create(SourcePlay, 1)
	require.NoError(t, err)

	moves := NewMoveRepository(db)
	_, err = moves.Create(id, 1, 0, cubesim.R, KindMove)
	require.NoError(t, err)

	err = moves.CreateBatch(id, []cubesim.Move{cubesim.U, cubesim.F}, 0, 0, KindMove)
	require.Error(t, err)

	n, err := moves.Count(id, "")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestEvents(t *testing.T) {
	db := openTestDB(t)
	id, err := NewSessionRepository(db).Create(SourceMirror, 0)
	require.NoError(t, err)

	events := NewEventRepository(db)
	raw := "KgYBAAEAMg0K"
	_, err = events.Create(id, 10, "rotation", `{"moves":["R"]}`, &raw)
	require.NoError(t, err)
	_, err = events.Create(id, 5, "battery", `{"level":80}`, nil)
	require.NoError(t, err)

	list, err := events.ListBySession(id)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "battery", list[0].EventType)
	require.Nil(t, list[0].RawPayloadBase64)
	require.Equal(t, raw, *list[1].RawPayloadBase64)

	n, err := events.Count(id)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}
