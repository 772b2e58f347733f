package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *SQLiteDB {
	t.Helper()
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "rounds.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleRound(player string) RoundRecord {
	return RoundRecord{
		ID:             uuid.New(),
		Player:         player,
		Game:           "coinflip",
		Amount:         10_00,
		SelectionJSON:  `{"side":"heads"}`,
		OutcomeJSON:    `{"kind":"coinflip","face":"heads"}`,
		Won:            true,
		Multiplier:     "2",
		Payout:         20_00,
		ServerSeedHash: "abc123",
		CreatedAt:      time.Now().UTC().Truncate(time.Second),
	}
}

func TestSaveAndGetRound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rec := sampleRound("p1")
	require.NoError(t, db.SaveRound(ctx, rec))

	got, err := db.GetRound(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Player, got.Player)
	assert.Equal(t, rec.SelectionJSON, got.SelectionJSON)
	assert.Equal(t, rec.OutcomeJSON, got.OutcomeJSON)
	assert.Equal(t, rec.Multiplier, got.Multiplier)
	assert.Equal(t, rec.Payout, got.Payout)
	assert.True(t, got.Won)
}

func TestGetRoundNotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := db.GetRound(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListRoundsByPlayer(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rec := sampleRound("p1")
		rec.CreatedAt = rec.CreatedAt.Add(time.Duration(i) * time.Second)
		require.NoError(t, db.SaveRound(ctx, rec))
	}
	require.NoError(t, db.SaveRound(ctx, sampleRound("p2")))

	recs, err := db.ListRounds(ctx, "p1", 10)
	require.NoError(t, err)
	assert.Len(t, recs, 3)
	for _, r := range recs {
		assert.Equal(t, "p1", r.Player)
	}

	recs, err = db.ListRounds(ctx, "p1", 2)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}
