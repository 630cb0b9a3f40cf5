package localstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/MrJamesThe3rd/cofre/internal/localstore"
	"github.com/MrJamesThe3rd/cofre/internal/observability"
)

func open(t *testing.T) (*localstore.Store, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zap.WarnLevel)

	s, err := localstore.Open(context.Background(), filepath.Join(t.TempDir(), "cofre.db"), zap.New(core), observability.NewMetrics())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s, logs
}

func TestStore_InsertAndGetAll(t *testing.T) {
	s, _ := open(t)
	ctx := context.Background()

	id, err := s.Insert(ctx, localstore.TableTransactions, localstore.Record{
		"id":           "caller-chosen",
		"user_id":      "u1",
		"description":  "Mercado",
		"amount":       "120.50",
		"type":         "expense",
		"is_recurring": true,
		"date":         "2024-01-31",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "caller-chosen", id)

	recs := s.GetAll(ctx, localstore.TableTransactions)
	require.Len(t, recs, 1)

	r := recs[0]
	assert.Equal(t, id, r.ID())
	assert.Equal(t, "Mercado", r.String("description"))
	assert.Equal(t, "120.50", r.String("amount"))
	assert.Equal(t, "pending", r.String("status"))
	assert.Equal(t, "acc1", r.String("account_id"))
	assert.Equal(t, "2024-01-31", r.String("date"))
	assert.Equal(t, int64(1), r["is_recurring"])
	assert.True(t, r.Bool("is_recurring"))
	assert.NotEmpty(t, r.String("created_at"))
}

func TestStore_UpdateAndRemove(t *testing.T) {
	s, _ := open(t)
	ctx := context.Background()

	id, err := s.Insert(ctx, localstore.TableCategories, localstore.Record{
		"user_id": "u1", "name": "Mercado", "type": "expense",
	})
	require.NoError(t, err)

	n, err := s.Update(ctx, localstore.TableCategories, id, localstore.Record{"name": "Feira"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.Update(ctx, localstore.TableCategories, "9999", localstore.Record{"name": "X"})
	require.NoError(t, err)
	assert.Zero(t, n)

	recs := s.GetAll(ctx, localstore.TableCategories)
	require.Len(t, recs, 1)
	assert.Equal(t, "Feira", recs[0].String("name"))

	n, err = s.Remove(ctx, localstore.TableCategories, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.Remove(ctx, localstore.TableCategories, id)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Empty(t, s.GetAll(ctx, localstore.TableCategories))
}

func TestStore_WritesFailHard(t *testing.T) {
	s, _ := open(t)
	ctx := context.Background()

	_, err := s.Insert(ctx, localstore.TableTransactions, localstore.Record{
		"user_id": "u1", "type": "transfer", "date": "2024-01-01",
	})
	assert.Error(t, err, "check constraint")

	_, err = s.Insert(ctx, localstore.TableGoals, localstore.Record{"user_id": "u1", "bogus": 1})
	assert.ErrorIs(t, err, localstore.ErrUnknownColumn)

	_, err = s.Insert(ctx, "users", localstore.Record{"name": "x"})
	assert.ErrorIs(t, err, localstore.ErrUnknownTable)

	_, err = s.Insert(ctx, localstore.TableGoals, localstore.Record{"id": 7})
	assert.ErrorIs(t, err, localstore.ErrNoFields)

	_, err = s.Remove(ctx, "users", "1")
	assert.ErrorIs(t, err, localstore.ErrUnknownTable)
}

func TestStore_ReadsFailSoft(t *testing.T) {
	s, logs := open(t)

	assert.Empty(t, s.GetAll(context.Background(), "users"))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "local read failed, returning empty result", logs.All()[0].Message)

	require.NoError(t, s.Close())
	assert.Empty(t, s.GetAll(context.Background(), localstore.TableGoals))
	assert.Equal(t, 2, logs.Len())
}

func TestStore_AllTablesExist(t *testing.T) {
	s, logs := open(t)

	for _, table := range []localstore.Table{
		localstore.TableTransactions,
		localstore.TableCategories,
		localstore.TableInvestments,
		localstore.TableGoals,
		localstore.TableProfiles,
	} {
		assert.Empty(t, s.GetAll(context.Background(), table))
	}

	assert.Zero(t, logs.Len())
}
