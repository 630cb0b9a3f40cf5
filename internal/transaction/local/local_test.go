package local_test

import (
	"context"
	"path/filepath"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cofre/internal/localstore"
	"github.com/MrJamesThe3rd/cofre/internal/observability"
	"github.com/MrJamesThe3rd/cofre/internal/transaction"
	"github.com/MrJamesThe3rd/cofre/internal/transaction/local"
)

func newService(t *testing.T) *transaction.Service {
	t.Helper()

	gw, err := localstore.Open(context.Background(), filepath.Join(t.TempDir(), "cofre.db"), zap.NewNop(), observability.NewMetrics())
	require.NoError(t, err)
	t.Cleanup(func() { gw.Close() })

	return transaction.NewService(local.New(gw, zap.NewNop()))
}

func TestLocalStore_RoundTrip(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.CreateBatch(ctx, []transaction.CreateParams{
		{
			UserID: "u1", Description: "TV (2/2)", Amount: decimal.RequireFromString("1499.95"),
			Type: transaction.TypeExpense, Category: "Casa", Date: civil.Date{Year: 2024, Month: 3, Day: 10}, IsRecurring: true,
		},
		{
			UserID: "u1", Description: "TV (1/2)", Amount: decimal.RequireFromString("1499.95"),
			Type: transaction.TypeExpense, Category: "Casa", Date: civil.Date{Year: 2024, Month: 2, Day: 10}, IsRecurring: true,
		},
		{
			UserID: "u2", Description: "Salário", Amount: decimal.NewFromInt(5000),
			Type: transaction.TypeIncome, Date: civil.Date{Year: 2024, Month: 2, Day: 5},
		},
	})
	require.NoError(t, err)
	require.Len(t, created, 3)

	for _, tx := range created {
		assert.NotEmpty(t, tx.ID)
	}

	list, err := svc.List(ctx, transaction.ListFilter{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "TV (1/2)", list[0].Description)
	assert.True(t, list[0].Amount.Equal(decimal.RequireFromString("1499.95")))
	assert.True(t, list[0].IsRecurring)
	assert.Equal(t, transaction.StatusPending, list[0].Status)
	assert.Equal(t, transaction.DefaultAccountID, list[0].AccountID)

	got, err := svc.Get(ctx, created[2].ID)
	require.NoError(t, err)
	assert.Empty(t, got.Category)
	assert.False(t, got.IsRecurring)
}

func TestLocalStore_PaymentAndDelete(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	tx, err := svc.Create(ctx, transaction.CreateParams{
		UserID: "u1", Description: "Luz", Amount: decimal.NewFromInt(100),
		Type: transaction.TypeExpense, Date: civil.Date{Year: 2024, Month: 4, Day: 1},
	})
	require.NoError(t, err)

	require.NoError(t, svc.ConfirmPayment(ctx, tx.ID, decimal.RequireFromString("102.50")))

	got, err := svc.Get(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusCompleted, got.Status)
	assert.Equal(t, "2.5", got.Interest().String())

	completed := transaction.StatusCompleted
	list, err := svc.List(ctx, transaction.ListFilter{Status: &completed})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, tx.ID))
	assert.ErrorIs(t, svc.Delete(ctx, tx.ID), transaction.ErrNotFound)

	_, err = svc.Get(ctx, tx.ID)
	assert.ErrorIs(t, err, transaction.ErrNotFound)
	assert.ErrorIs(t, svc.ConfirmPayment(ctx, tx.ID, decimal.NewFromInt(1)), transaction.ErrNotFound)
}

func TestLocalStore_DateFilter(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	for _, day := range []int{1, 15, 28} {
		_, err := svc.Create(ctx, transaction.CreateParams{
			UserID: "u1", Description: "x", Amount: decimal.NewFromInt(1),
			Type: transaction.TypeExpense, Date: civil.Date{Year: 2024, Month: 6, Day: day},
		})
		require.NoError(t, err)
	}

	start := civil.Date{Year: 2024, Month: 6, Day: 10}
	end := civil.Date{Year: 2024, Month: 6, Day: 28}

	list, err := svc.List(ctx, transaction.ListFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 15, list[0].Date.Day)
	assert.Equal(t, 28, list[1].Date.Day)
}
