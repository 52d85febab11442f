package store_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/routeboard/board"
	"github.com/katalvlaran/routeboard/cost"
	"github.com/katalvlaran/routeboard/snapshot"
	"github.com/katalvlaran/routeboard/store"
)

// Compile-time conformance of every backend.
var (
	_ store.Store = (*store.Memory)(nil)
	_ store.Store = (*store.SQLite)(nil)
	_ store.Store = (*store.Postgres)(nil)
)

// session builds a small valid snapshot with the given waypoint count, so
// tests can save several distinguishable documents.
func session(t *testing.T, waypoints int) *snapshot.Document {
	t.Helper()

	b := board.New()
	prev, err := b.Insert(board.KindStart, board.Position{X: 0, Y: 0})
	require.NoError(t, err)
	for i := 0; i < waypoints; i++ {
		w, err := b.Insert(board.KindWaypoint, board.Position{X: float64(100 * (i + 1)), Y: 0})
		require.NoError(t, err)
		require.NoError(t, b.Connect(board.OutPort{Node: prev}, board.InPort{Node: w}))
		prev = w
	}
	f, err := b.Insert(board.KindFinish, board.Position{X: float64(100 * (waypoints + 1)), Y: 0})
	require.NoError(t, err)
	require.NoError(t, b.Connect(board.OutPort{Node: prev}, board.InPort{Node: f}))

	m := cost.NewEdgeModel()
	require.NoError(t, m.SetArrival(prev, f, 4))

	return snapshot.Capture(b, m)
}

// backends enumerates every Store under test. Postgres joins in when
// TEST_POSTGRES_DSN points at a reachable database.
func backends() []struct {
	name string
	open func(t *testing.T) store.Store
} {
	return []struct {
		name string
		open func(t *testing.T) store.Store
	}{
		{
			name: "memory",
			open: func(t *testing.T) store.Store { return store.NewMemory() },
		},
		{
			name: "sqlite",
			open: func(t *testing.T) store.Store {
				s, err := store.NewSQLite(filepath.Join(t.TempDir(), "routeboard.db"))
				require.NoError(t, err)
				return s
			},
		},
		{
			name: "postgres",
			open: func(t *testing.T) store.Store {
				dsn := os.Getenv("TEST_POSTGRES_DSN")
				if dsn == "" {
					t.Skip("TEST_POSTGRES_DSN not set")
				}
				ctx := context.Background()
				s, err := store.OpenPostgres(ctx, dsn)
				require.NoError(t, err)

				// The database outlives test runs; start from a clean slate.
				recs, err := s.List(ctx)
				require.NoError(t, err)
				for _, r := range recs {
					require.NoError(t, s.Delete(ctx, r.ID))
				}
				return s
			},
		},
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	for _, be := range backends() {
		t.Run(be.name, func(t *testing.T) {
			ctx := context.Background()
			st := be.open(t)
			defer func() { require.NoError(t, st.Close()) }()

			doc := session(t, 2)
			id, err := st.Save(ctx, "afternoon session", doc)
			require.NoError(t, err)
			require.NotEmpty(t, id)

			got, err := st.Load(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, doc, got)
		})
	}
}

func TestStore_LatestTracksSaves(t *testing.T) {
	for _, be := range backends() {
		t.Run(be.name, func(t *testing.T) {
			ctx := context.Background()
			st := be.open(t)
			defer func() { require.NoError(t, st.Close()) }()

			_, err := st.Save(ctx, "first", session(t, 1))
			require.NoError(t, err)
			second := session(t, 3)
			secondID, err := st.Save(ctx, "second", second)
			require.NoError(t, err)

			got, err := st.Latest(ctx)
			require.NoError(t, err)
			assert.Equal(t, second, got)

			// Deleting the newest save promotes the previous one, which had
			// a single waypoint between its terminals.
			require.NoError(t, st.Delete(ctx, secondID))
			got, err = st.Latest(ctx)
			require.NoError(t, err)
			assert.Len(t, got.Nodes, 3)
		})
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	for _, be := range backends() {
		t.Run(be.name, func(t *testing.T) {
			ctx := context.Background()
			st := be.open(t)
			defer func() { require.NoError(t, st.Close()) }()

			labels := []string{"one", "two", "three"}
			ids := make([]string, len(labels))
			for i, l := range labels {
				id, err := st.Save(ctx, l, session(t, 1))
				require.NoError(t, err)
				ids[i] = id
			}

			recs, err := st.List(ctx)
			require.NoError(t, err)
			require.Len(t, recs, 3)
			for i, rec := range recs {
				assert.Equal(t, ids[len(ids)-1-i], rec.ID)
				assert.Equal(t, labels[len(labels)-1-i], rec.Label)
				assert.False(t, rec.SavedAt.IsZero())
			}
		})
	}
}

func TestStore_MissingID(t *testing.T) {
	for _, be := range backends() {
		t.Run(be.name, func(t *testing.T) {
			ctx := context.Background()
			st := be.open(t)
			defer func() { require.NoError(t, st.Close()) }()

			_, err := st.Load(ctx, "no-such-id")
			require.ErrorIs(t, err, store.ErrNotFound)

			err = st.Delete(ctx, "no-such-id")
			require.ErrorIs(t, err, store.ErrNotFound)

			_, err = st.Latest(ctx)
			require.ErrorIs(t, err, store.ErrNotFound)
		})
	}
}

func TestStore_SaveRejectsInvalidDocument(t *testing.T) {
	for _, be := range backends() {
		t.Run(be.name, func(t *testing.T) {
			ctx := context.Background()
			st := be.open(t)
			defer func() { require.NoError(t, st.Close()) }()

			bad := session(t, 1)
			bad.Version = 99
			_, err := st.Save(ctx, "bad", bad)
			require.Error(t, err)

			_, err = st.Save(ctx, "nil", nil)
			require.ErrorIs(t, err, snapshot.ErrInvalidDocument)

			// Nothing slipped in.
			recs, err := st.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, recs)
		})
	}
}

func TestStore_ClosedRefusesOperations(t *testing.T) {
	for _, be := range backends() {
		t.Run(be.name, func(t *testing.T) {
			ctx := context.Background()
			st := be.open(t)
			require.NoError(t, st.Close())

			_, err := st.Save(ctx, "late", session(t, 1))
			require.ErrorIs(t, err, store.ErrClosed)
			_, err = st.Load(ctx, "any")
			require.ErrorIs(t, err, store.ErrClosed)
			_, err = st.Latest(ctx)
			require.ErrorIs(t, err, store.ErrClosed)
			_, err = st.List(ctx)
			require.ErrorIs(t, err, store.ErrClosed)
			require.ErrorIs(t, st.Delete(ctx, "any"), store.ErrClosed)

			// Double close stays quiet.
			require.NoError(t, st.Close())
		})
	}
}

func TestMemory_ConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	doc := session(t, 1)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				if _, err := st.Save(ctx, "burst", doc); err != nil {
					t.Error(err)
				}
			}
		}()
	}
	wg.Wait()

	recs, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 80)

	seen := make(map[string]bool, len(recs))
	for _, r := range recs {
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
	}
}
